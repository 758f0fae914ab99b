// Package vocab loads and queries the controlled keyword vocabulary.
package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned when a vocabulary file yields no keywords.
var ErrEmptyVocabulary = errors.New("vocabulary is empty")

// Vocabulary is a set of standardized keyword phrases: lemmatized tokens,
// sorted alphabetically within each phrase, joined by single spaces.
type Vocabulary struct {
	keywords map[string]struct{}
	lengths  []int // distinct phrase lengths, ascending
}

// Load reads a line-delimited vocabulary file. Each non-blank line is one
// pre-standardized keyword phrase. Duplicate lines collapse into one entry.
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vocabulary file: %w", err)
	}
	defer f.Close()

	keywords := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		keywords[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading vocabulary file: %w", err)
	}
	if len(keywords) == 0 {
		return nil, ErrEmptyVocabulary
	}

	return New(keywordList(keywords)), nil
}

// New builds a Vocabulary from keyword phrases, deduplicating as it goes.
func New(keywords []string) *Vocabulary {
	set := make(map[string]struct{}, len(keywords))
	lengthSet := make(map[int]struct{})
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		set[k] = struct{}{}
		lengthSet[len(strings.Fields(k))] = struct{}{}
	}

	lengths := make([]int, 0, len(lengthSet))
	for n := range lengthSet {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)

	return &Vocabulary{keywords: set, lengths: lengths}
}

// Contains reports whether the standardized phrase is in the vocabulary.
func (v *Vocabulary) Contains(phrase string) bool {
	_, ok := v.keywords[phrase]
	return ok
}

// Len returns the number of distinct keywords.
func (v *Vocabulary) Len() int {
	return len(v.keywords)
}

// Lengths returns the distinct phrase lengths present, in ascending order.
func (v *Vocabulary) Lengths() []int {
	return v.lengths
}

// Keywords returns every keyword in sorted order. The order fixes the row
// order of the frequency tables.
func (v *Vocabulary) Keywords() []string {
	return keywordList(v.keywords)
}

// Standardize canonicalizes a token window: tokens sorted alphabetically,
// joined by single spaces. This matches how the vocabulary itself was
// prepared, making lookups independent of word order.
func Standardize(tokens []string) string {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

func keywordList(set map[string]struct{}) []string {
	list := make([]string, 0, len(set))
	for k := range set {
		list = append(list, k)
	}
	sort.Strings(list)
	return list
}
