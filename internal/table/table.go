// Package table provides the dense keyword-by-year matrices the pipeline
// passes between stages, with CSV persistence keyed by keyword.
package table

import (
	"errors"
	"fmt"
	"sort"
)

// Validation errors.
var (
	ErrNoKeywords       = errors.New("table has no keywords")
	ErrNoYears          = errors.New("table has no years")
	ErrUnknownKeyword   = errors.New("keyword not in table")
	ErrUnknownYear      = errors.New("year not in table")
	ErrYearMisalignment = errors.New("year columns do not align")
)

// Table is a dense matrix with keyword rows and ascending year columns.
// Frequency tables (TF, DF) and score tables (DoV, DoD) share this shape.
type Table struct {
	keywords []string
	years    []int
	rowIdx   map[string]int
	colIdx   map[int]int
	cells    [][]float64
}

// New creates a zero-filled table over the given keywords and years.
// Keyword order is preserved; years are sorted ascending.
func New(keywords []string, years []int) (*Table, error) {
	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}
	if len(years) == 0 {
		return nil, ErrNoYears
	}

	ks := make([]string, len(keywords))
	copy(ks, keywords)
	ys := make([]int, len(years))
	copy(ys, years)
	sort.Ints(ys)

	t := &Table{
		keywords: ks,
		years:    ys,
		rowIdx:   make(map[string]int, len(ks)),
		colIdx:   make(map[int]int, len(ys)),
		cells:    make([][]float64, len(ks)),
	}
	for i, k := range ks {
		if _, dup := t.rowIdx[k]; dup {
			return nil, fmt.Errorf("duplicate keyword %q", k)
		}
		t.rowIdx[k] = i
		t.cells[i] = make([]float64, len(ys))
	}
	for j, y := range ys {
		if _, dup := t.colIdx[y]; dup {
			return nil, fmt.Errorf("duplicate year %d", y)
		}
		t.colIdx[y] = j
	}
	return t, nil
}

// Keywords returns the row labels in row order.
func (t *Table) Keywords() []string {
	return t.keywords
}

// Years returns the year columns in ascending order.
func (t *Table) Years() []int {
	return t.years
}

// HasKeyword reports whether the keyword has a row.
func (t *Table) HasKeyword(keyword string) bool {
	_, ok := t.rowIdx[keyword]
	return ok
}

// HasYear reports whether the year has a column.
func (t *Table) HasYear(year int) bool {
	_, ok := t.colIdx[year]
	return ok
}

// At returns the cell value, or 0 for an unknown keyword or year.
func (t *Table) At(keyword string, year int) float64 {
	i, ok := t.rowIdx[keyword]
	if !ok {
		return 0
	}
	j, ok := t.colIdx[year]
	if !ok {
		return 0
	}
	return t.cells[i][j]
}

// Set assigns the cell value.
func (t *Table) Set(keyword string, year int, v float64) error {
	i, ok := t.rowIdx[keyword]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKeyword, keyword)
	}
	j, ok := t.colIdx[year]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownYear, year)
	}
	t.cells[i][j] = v
	return nil
}

// Inc adds delta to the cell value.
func (t *Table) Inc(keyword string, year int, delta float64) error {
	i, ok := t.rowIdx[keyword]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKeyword, keyword)
	}
	j, ok := t.colIdx[year]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownYear, year)
	}
	t.cells[i][j] += delta
	return nil
}

// Row returns a copy of the keyword's values in year order.
func (t *Table) Row(keyword string) ([]float64, error) {
	i, ok := t.rowIdx[keyword]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeyword, keyword)
	}
	row := make([]float64, len(t.cells[i]))
	copy(row, t.cells[i])
	return row, nil
}

// RowSlice returns a copy of the keyword's values restricted to the given
// years, in the given order.
func (t *Table) RowSlice(keyword string, years []int) ([]float64, error) {
	i, ok := t.rowIdx[keyword]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeyword, keyword)
	}
	out := make([]float64, len(years))
	for n, y := range years {
		j, ok := t.colIdx[y]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownYear, y)
		}
		out[n] = t.cells[i][j]
	}
	return out, nil
}

// Empty creates a zero-filled table with the same keywords and years.
func (t *Table) Empty() *Table {
	out, _ := New(t.keywords, t.years)
	return out
}

// AlignYears verifies that other covers exactly the same year columns.
// A mismatch is fatal for downstream scoring, so callers must abort on error.
func (t *Table) AlignYears(other *Table) error {
	if len(t.years) != len(other.years) {
		return fmt.Errorf("%w: %d vs %d columns", ErrYearMisalignment, len(t.years), len(other.years))
	}
	for i, y := range t.years {
		if other.years[i] != y {
			return fmt.Errorf("%w: column %d is %d vs %d", ErrYearMisalignment, i, y, other.years[i])
		}
	}
	return nil
}

// AlignCounts verifies that the per-year document-count series covers every
// year column of the table.
func (t *Table) AlignCounts(counts map[int]int) error {
	for _, y := range t.years {
		if _, ok := counts[y]; !ok {
			return fmt.Errorf("%w: year %d missing from document counts", ErrYearMisalignment, y)
		}
	}
	return nil
}
