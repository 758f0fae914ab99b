// Package score converts raw frequency tables into time-weighted visibility
// and diffusion scores (DoV, DoD) and tunes the decay parameter w.
package score

import (
	"errors"
	"fmt"

	"github.com/matsen/weaksig/internal/table"
)

// ErrNoCandidates is returned when the optimizer is given an empty grid.
var ErrNoCandidates = errors.New("no w candidates")

// Weighted computes the time-weighted score table from a frequency table
// (TF or DF) and the per-year document counts.
//
// For the column at 1-based position j of N (ascending years) the weight is
// 1 - w*(N-j): exactly 1 for the most recent year and larger for older ones.
// Each cell is (count / docs[year]) * weight; a year with zero documents
// yields an all-zero column rather than a division error.
func Weighted(src *table.Table, counts map[int]int, w float64) (*table.Table, error) {
	if err := src.AlignCounts(counts); err != nil {
		return nil, err
	}

	out := src.Empty()
	years := src.Years()
	n := len(years)

	for j, year := range years {
		docs := counts[year]
		if docs == 0 {
			continue // column stays zero
		}
		weight := 1 - w*float64(n-(j+1))
		for _, k := range src.Keywords() {
			v := src.At(k, year) / float64(docs) * weight
			if err := out.Set(k, year, v); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// GrowthRates returns each keyword's across-year geometric mean of
// score+Epsilon, in the table's row order.
func GrowthRates(t *table.Table) []float64 {
	years := t.Years()
	rates := make([]float64, 0, len(t.Keywords()))
	vals := make([]float64, len(years))
	for _, k := range t.Keywords() {
		row, _ := t.Row(k)
		for i, v := range row {
			vals[i] = v + Epsilon
		}
		rates = append(rates, GeoMean(vals))
	}
	return rates
}

// Trial records the dispersion one candidate w produced.
type Trial struct {
	W      float64 `json:"w"`
	StdDev float64 `json:"std_dev"`
}

// Result is the outcome of the w grid search.
type Result struct {
	W      float64      `json:"w"`
	StdDev float64      `json:"std_dev"`
	Trials []Trial      `json:"trials"`
	Table  *table.Table `json:"-"`
}

// Optimize runs the one-shot grid search over the candidate w values and
// returns the candidate whose growth rates have the strictly largest
// population standard deviation. Ties keep the first-seen maximum, so the
// search is deterministic for a fixed candidate order.
func Optimize(tf *table.Table, counts map[int]int, candidates []float64) (*Result, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	res := &Result{StdDev: -1}
	for _, w := range candidates {
		weighted, err := Weighted(tf, counts, w)
		if err != nil {
			return nil, fmt.Errorf("scoring with w=%g: %w", w, err)
		}
		sd := PopStdDev(GrowthRates(weighted))
		res.Trials = append(res.Trials, Trial{W: w, StdDev: sd})
		if sd > res.StdDev {
			res.W = w
			res.StdDev = sd
			res.Table = weighted
		}
	}
	return res, nil
}
