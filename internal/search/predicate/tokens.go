package predicate

import (
	"strings"
	"unicode/utf8"
)

// stopWords are discarded during tokenization: articles, prepositions and
// conjunctions carry no discriminative value for catalog matching.
var stopWords = map[string]struct{}{
	"the":  {},
	"a":    {},
	"an":   {},
	"and":  {},
	"or":   {},
	"but":  {},
	"for":  {},
	"nor":  {},
	"so":   {},
	"yet":  {},
	"in":   {},
	"on":   {},
	"at":   {},
	"to":   {},
	"of":   {},
	"by":   {},
	"with": {},
	"from": {},
	"is":   {},
	"are":  {},
	"was":  {},
	"be":   {},
}

// Tokenize lowercases and splits a free-text query on whitespace, dropping
// single-character tokens and stop words. An empty result means the query
// imposes no keyword constraint.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= 1 {
			continue
		}
		if _, ok := stopWords[f]; ok {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
