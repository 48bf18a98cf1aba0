package vectorize

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into word tokens on anything
// that is not a letter, digit, or in-word apostrophe.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	raw := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})

	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = strings.Trim(tok, "'")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// ContentTokens tokenizes and removes English stopwords.
func ContentTokens(text string) []string {
	raw := Tokenize(text)
	tokens := raw[:0]
	for _, tok := range raw {
		if !stopwords[tok] {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
