// Package freq counts keyword occurrences (TF) and document presence (DF)
// per year by matching standardized n-grams against the vocabulary.
package freq

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/matsen/weaksig/internal/corpus"
	"github.com/matsen/weaksig/internal/table"
	"github.com/matsen/weaksig/internal/textnorm"
	"github.com/matsen/weaksig/internal/vocab"
)

// Counter scans normalized documents for vocabulary keywords.
type Counter struct {
	norm *textnorm.Normalizer
	voc  *vocab.Vocabulary
}

// NewCounter creates a Counter over the given normalizer and vocabulary.
func NewCounter(norm *textnorm.Normalizer, voc *vocab.Vocabulary) *Counter {
	return &Counter{norm: norm, voc: voc}
}

// Count computes the TF and DF tables for the documents. Both tables cover
// the full vocabulary (zero rows for keywords that never match) and the
// contiguous year span of the corpus (zero columns for gap years).
//
// TF counts every occurrence of a keyword's standardized n-gram; DF counts
// each document at most once per keyword, so DF <= TF cell-wise.
func (c *Counter) Count(docs []corpus.Document) (tf, df *table.Table, err error) {
	years, err := corpus.YearSpan(docs)
	if err != nil {
		return nil, nil, err
	}

	keywords := c.voc.Keywords()
	tf, err = table.New(keywords, years)
	if err != nil {
		return nil, nil, fmt.Errorf("building TF table: %w", err)
	}
	df, err = table.New(keywords, years)
	if err != nil {
		return nil, nil, fmt.Errorf("building DF table: %w", err)
	}

	lengths := c.voc.Lengths()
	for _, doc := range docs {
		tokens := c.norm.Normalize(doc.FullText())
		seen := make(map[string]struct{})

		for _, n := range lengths {
			if len(tokens) < n {
				continue // document shorter than this phrase length
			}
			for i := 0; i+n <= len(tokens); i++ {
				std := vocab.Standardize(tokens[i : i+n])
				if !c.voc.Contains(std) {
					continue
				}
				if err := tf.Inc(std, doc.Year, 1); err != nil {
					return nil, nil, err
				}
				seen[std] = struct{}{}
			}
		}

		for std := range seen {
			if err := df.Inc(std, doc.Year, 1); err != nil {
				return nil, nil, err
			}
		}
	}

	log.Info().
		Int("documents", len(docs)).
		Int("keywords", len(keywords)).
		Ints("phraseLengths", lengths).
		Msg("frequency counting complete")
	return tf, df, nil
}
