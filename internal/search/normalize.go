// Package search turns free-text directory queries into backend queries and
// builds the folded text that companies are indexed under.
package search

import (
	"regexp"
	"strings"

	"bizdir.app/directory/common"
)

const maxTokens = 8

var nonWordChars = regexp.MustCompile(`[^a-z0-9]+`)

var stopWords = map[string]struct{}{
	// en
	"a": {}, "an": {}, "and": {}, "at": {}, "for": {}, "in": {}, "near": {}, "of": {},
	"or": {}, "the": {}, "to": {}, "with": {},
	// fr (accents already folded)
	"au": {}, "aux": {}, "dans": {}, "de": {}, "des": {}, "du": {}, "en": {}, "et": {},
	"l": {}, "la": {}, "le": {}, "les": {}, "ou": {}, "pour": {}, "pres": {}, "sur": {},
	"un": {}, "une": {},
}

// Normalize lowercases s, strips accents and collapses every run of
// non-alphanumeric characters into a single space.
func Normalize(s string) string {
	folded := common.Fold(s)
	return strings.TrimSpace(nonWordChars.ReplaceAllString(folded, " "))
}

// Tokenize normalizes q and returns its distinct non-stop-word tokens in
// order, capped at maxTokens.
func Tokenize(q string) []string {
	fields := strings.Fields(Normalize(q))
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
		if len(tokens) == maxTokens {
			break
		}
	}
	return tokens
}
