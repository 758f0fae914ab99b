// Package textnorm cleans and lemmatizes free text into canonical token sequences.
package textnorm

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Normalizer turns raw text into lowercase lemmatized tokens. It owns the
// lemmatizer dictionary, which is loaded once at construction and shared by
// reference; there is no process-wide cache.
type Normalizer struct {
	lem *golem.Lemmatizer
}

// New loads the English lemmatizer dictionary and returns a Normalizer.
func New() (*Normalizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading lemmatizer dictionary: %w", err)
	}
	return &Normalizer{lem: lem}, nil
}

// Normalize lowercases the text, strips every character that is not a
// lowercase letter, digit, or whitespace, splits on whitespace, and
// lemmatizes each token independently. Blank input yields an empty slice,
// never an error.
func (n *Normalizer) Normalize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	cleaned := clean(strings.ToLower(text))
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return nil
	}

	tokens := make([]string, len(fields))
	for i, w := range fields {
		tokens[i] = n.lem.Lemma(w)
	}
	return tokens
}

// clean removes every character outside [a-z0-9] and whitespace. Punctuation
// is removed, not replaced: a hyphenated word collapses into one token, the
// same way the vocabulary was prepared. Whitespace is Unicode-aware, so a
// non-breaking space still separates words instead of fusing them.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
