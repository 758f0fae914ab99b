// Package corpus defines the core document types for the analysis corpus.
package corpus

import (
	"errors"
	"sort"
)

// Document represents one scientific record: a publication year plus the
// combined text body the pipeline scans.
type Document struct {
	ID       string `json:"id"`
	Year     int    `json:"year"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Source   string `json:"source,omitempty"` // import, arxiv
}

// ErrEmptyCorpus is returned when an operation needs at least one document.
var ErrEmptyCorpus = errors.New("corpus is empty")

// FullText returns the text body scanned by the counting stage: title and
// abstract joined with a single space. Missing fields contribute nothing.
func (d Document) FullText() string {
	switch {
	case d.Title == "":
		return d.Abstract
	case d.Abstract == "":
		return d.Title
	}
	return d.Title + " " + d.Abstract
}

// YearSpan returns the contiguous list of years covered by the documents,
// from the earliest to the latest publication year inclusive. Years inside
// the span with no documents are included so that downstream tables carry
// a column for them.
func YearSpan(docs []Document) ([]int, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}
	minYear, maxYear := docs[0].Year, docs[0].Year
	for _, d := range docs[1:] {
		if d.Year < minYear {
			minYear = d.Year
		}
		if d.Year > maxYear {
			maxYear = d.Year
		}
	}
	years := make([]int, 0, maxYear-minYear+1)
	for y := minYear; y <= maxYear; y++ {
		years = append(years, y)
	}
	return years, nil
}

// CountByYear returns the number of documents per year. Years inside the
// span with no documents map to zero.
func CountByYear(docs []Document) map[int]int {
	counts := make(map[int]int)
	years, err := YearSpan(docs)
	if err != nil {
		return counts
	}
	for _, y := range years {
		counts[y] = 0
	}
	for _, d := range docs {
		counts[d.Year]++
	}
	return counts
}

// SortedYears returns the keys of a per-year count map in ascending order.
func SortedYears(counts map[int]int) []int {
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
