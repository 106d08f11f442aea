package parser

import (
	"strings"

	"asisto/internal/stringx"
)

// Normalize prepares raw input for tokenization: replaces invalid UTF-8,
// strips diacritics, drops trailing sentence terminators and collapses
// whitespace. Returns "" for empty or whitespace-only input, which the
// parser treats as unrecognized. Normalize is idempotent.
func Normalize(raw string) string {
	s := stringx.StripDiacritics(raw)
	s = stringx.CollapseSpace(s)
	s = stringx.TrimSentenceEnd(s)
	return strings.TrimSpace(s)
}
