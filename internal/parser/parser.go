// Package parser turns short Spanish commands ("Nueva categoria Conciertos",
// "Editar categoria 1 descripcion Teatro") into validated instructions.
//
// The pipeline is a chain of pure functions threading an explicit cursor
// over the token slice: action detection, entity resolution, action-specific
// parameter extraction and a completeness check. No state is shared between
// calls, Parse is safe for concurrent use.
package parser

import (
	"strconv"
	"strings"

	"asisto/internal/instruction"
)

// Parse interprets text as a command and returns the instruction, or nil
// when no action or entity is recognized or required parameters are missing.
// A nil result means the caller should show usage examples, it is never a
// partially filled instruction.
func Parse(text string) *instruction.Instruction {
	t := Normalize(text)
	if t == "" {
		return nil
	}
	words := strings.Split(t, " ")
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}

	action, pos, ok := detectAction(lower)
	if !ok {
		return nil
	}
	entity, pos, ok := resolveEntity(lower, pos)
	if !ok {
		return nil
	}
	params := extractParams(action, words, lower, pos)
	if !complete(action, params) {
		return nil
	}

	return &instruction.Instruction{Action: action, Entity: entity, Params: params}
}

// detectAction matches the leading token against the action vocabulary and
// returns the cursor past the action words. "ver todas"/"ver todos" consumes
// both tokens so the list scan starts after them.
func detectAction(lower []string) (instruction.Action, int, bool) {
	if len(lower) == 0 {
		return "", 0, false
	}
	if lower[0] == "ver" && len(lower) >= 2 && (lower[1] == "todas" || lower[1] == "todos") {
		return instruction.ActionList, 2, true
	}
	if a, ok := actionWords[lower[0]]; ok {
		return a, 1, true
	}
	return "", 0, false
}

// resolveEntity scans forward from start, skipping stopwords, and looks up
// the first real token in the entity vocabulary. An unknown token or running
// out of tokens fails the whole parse.
func resolveEntity(lower []string, start int) (instruction.Entity, int, bool) {
	for i := start; i < len(lower); i++ {
		if stopwords[lower[i]] {
			continue
		}
		if e, ok := entityWords[lower[i]]; ok {
			return e, i + 1, true
		}
		return "", start, false
	}
	return "", start, false
}

// extractParams pulls the action-specific parameters out of the tokens after
// the entity. words carries the original casing for values, lower is used
// for matching.
func extractParams(action instruction.Action, words, lower []string, start int) map[string]any {
	params := make(map[string]any)

	switch action {
	case instruction.ActionCreate:
		if desc := strings.TrimSpace(strings.Join(words[start:], " ")); desc != "" {
			params["descripcion"] = desc
		}

	case instruction.ActionList:
		// no parameters

	case instruction.ActionUpdate:
		pos := extractID(words, lower, start, params)
		extractFieldValues(words, lower, pos, params)

	case instruction.ActionDelete:
		extractID(words, lower, start, params)
	}

	return params
}

// extractID skips leading stopwords and consumes one purely numeric token as
// the id. Returns the cursor after the id, or after the skipped stopwords
// when no id is present.
func extractID(words, lower []string, start int, params map[string]any) int {
	i := start
	for i < len(lower) && stopwords[lower[i]] {
		i++
	}
	if i < len(words) && isDigits(words[i]) {
		if id, err := strconv.Atoi(words[i]); err == nil {
			params["id"] = id
			i++
		}
	}
	return i
}

// extractFieldValues scans for recognized field names and collects the
// tokens after each one as its value, up to the next field name or the end.
// Noise words before a field are tolerated, stopwords inside a value are
// dropped and an empty value discards the pair.
func extractFieldValues(words, lower []string, start int, params map[string]any) {
	i := start
	for i < len(lower) {
		for i < len(lower) && stopwords[lower[i]] {
			i++
		}
		if i >= len(lower) {
			return
		}
		if !updatableFields[lower[i]] {
			i++
			continue
		}
		i++

		var value []string
		for i < len(lower) && !updatableFields[lower[i]] {
			if !stopwords[lower[i]] {
				value = append(value, words[i])
			}
			i++
		}
		v := strings.TrimSpace(strings.Join(value, " "))
		if v == "" {
			continue
		}
		// The grammar recognizes several field anchors but the entity has a
		// single updatable column, every value lands on the description.
		params["descripcion"] = coerceValue(v)
	}
}

// coerceValue maps boolean surface forms onto bool and keeps anything else
// as the trimmed string.
func coerceValue(v string) any {
	switch low := strings.ToLower(v); {
	case trueWords[low]:
		return true
	case falseWords[low]:
		return false
	default:
		return v
	}
}

// complete applies the per-action completeness rules: create needs a
// description, update an id plus at least one field, delete an id.
func complete(action instruction.Action, params map[string]any) bool {
	switch action {
	case instruction.ActionCreate:
		desc, ok := params["descripcion"].(string)
		return ok && desc != ""
	case instruction.ActionUpdate:
		_, ok := params["id"]
		return ok && len(params) > 1
	case instruction.ActionDelete:
		_, ok := params["id"]
		return ok
	default:
		return true
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
