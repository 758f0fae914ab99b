package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteCSV writes the table with a "keyword" label column followed by one
// column per year. The keyword stays the row key for downstream joins.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, 0, len(t.years)+1)
	header = append(header, "keyword")
	for _, y := range t.years {
		header = append(header, strconv.Itoa(y))
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(t.years)+1)
	for i, k := range t.keywords {
		record[0] = k
		for j, v := range t.cells[i] {
			record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing row %q: %w", k, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// ReadCSV reads a table written by WriteCSV.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("%s: no year columns", path)
	}
	years := make([]int, 0, len(header)-1)
	for _, cell := range header[1:] {
		y, err := strconv.Atoi(cell)
		if err != nil {
			return nil, fmt.Errorf("%s: bad year column %q: %w", path, cell, err)
		}
		years = append(years, y)
	}

	keywords := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		keywords = append(keywords, rec[0])
	}

	t, err := New(keywords, years)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, rec := range records[1:] {
		if len(rec) != len(years)+1 {
			return nil, fmt.Errorf("%s: row %q has %d cells, want %d", path, rec[0], len(rec)-1, len(years))
		}
		for j, cell := range rec[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad value %q in row %q: %w", path, cell, rec[0], err)
			}
			if err := t.Set(rec[0], years[j], v); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}
