// Package stringx provides the text helpers shared by the command parser
// and the store: whitespace collapsing, sentence trimming and diacritic
// stripping so recognition and persistence stay accent-insensitive.
package stringx

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes accent and tilde marks from s by canonical
// decomposition, so "categoría" becomes "categoria" and "añadir" "anadir".
// Invalid UTF-8 sequences are replaced, never rejected.
func StripDiacritics(s string) string {
	s = strings.ToValidUTF8(s, string(unicode.ReplacementChar))
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return out
}

// CollapseSpace reduces every run of whitespace to a single space and trims
// the ends. Returns "" for whitespace-only input.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TrimSentenceEnd removes trailing sentence terminators (".", "!", "?")
func TrimSentenceEnd(s string) string {
	return strings.TrimRight(s, ".!?")
}
