package signal

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Evolution is the wide table tracking one map family's category per keyword
// across all periods. Keywords absent from a period hold NotPresent.
type Evolution struct {
	Prefix   string   // column prefix, e.g. "kem" or "kim"
	Codes    []string // period short codes in period order
	Keywords []string // sorted union of per-period keywords
	cells    map[string]map[string]Category
}

// Consolidate merges per-period signal maps into one evolution table. The
// keyword index is the union over all periods; a keyword missing from a
// period's map gets the NotPresent sentinel.
func Consolidate(maps []*PeriodMap, prefix string) *Evolution {
	e := &Evolution{
		Prefix: prefix,
		cells:  make(map[string]map[string]Category),
	}

	union := make(map[string]struct{})
	for _, m := range maps {
		code := m.Period.Code()
		e.Codes = append(e.Codes, code)
		for _, entry := range m.Entries {
			union[entry.Keyword] = struct{}{}
			row, ok := e.cells[entry.Keyword]
			if !ok {
				row = make(map[string]Category)
				e.cells[entry.Keyword] = row
			}
			row[code] = entry.Category
		}
	}

	e.Keywords = make([]string, 0, len(union))
	for k := range union {
		e.Keywords = append(e.Keywords, k)
	}
	sort.Strings(e.Keywords)
	return e
}

// Category returns the keyword's category for a period code, defaulting to
// NotPresent for absent cells.
func (e *Evolution) Category(keyword, code string) Category {
	if row, ok := e.cells[keyword]; ok {
		if c, ok := row[code]; ok {
			return c
		}
	}
	return NotPresent
}

// columnName builds the per-period column header, e.g. "kem_P1".
func (e *Evolution) columnName(code string) string {
	return e.Prefix + "_" + code
}

// WriteCSV writes the evolution table with the keyword as the row key and
// one category column per period.
func (e *Evolution) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, 0, len(e.Codes)+1)
	header = append(header, "keyword")
	for _, code := range e.Codes {
		header = append(header, e.columnName(code))
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(e.Codes)+1)
	for _, k := range e.Keywords {
		record[0] = k
		for i, code := range e.Codes {
			record[i+1] = string(e.Category(k, code))
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

// ReadEvolutionCSV reads an evolution table written by WriteCSV. The column
// prefix and period codes are recovered from the header.
func ReadEvolutionCSV(path string) (*Evolution, error) {
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
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	header := records[0]
	if len(header) < 2 || header[0] != "keyword" {
		return nil, fmt.Errorf("%s: not an evolution table", path)
	}

	e := &Evolution{cells: make(map[string]map[string]Category)}
	for _, col := range header[1:] {
		idx := strings.LastIndex(col, "_")
		if idx <= 0 || idx == len(col)-1 {
			return nil, fmt.Errorf("%s: bad column name %q", path, col)
		}
		prefix, code := col[:idx], col[idx+1:]
		if e.Prefix == "" {
			e.Prefix = prefix
		} else if e.Prefix != prefix {
			return nil, fmt.Errorf("%s: mixed column prefixes %q and %q", path, e.Prefix, prefix)
		}
		e.Codes = append(e.Codes, code)
	}

	for _, rec := range records[1:] {
		if len(rec) != len(e.Codes)+1 {
			return nil, fmt.Errorf("%s: row %q has %d cells, want %d", path, rec[0], len(rec)-1, len(e.Codes))
		}
		keyword := rec[0]
		row := make(map[string]Category, len(e.Codes))
		for i, cell := range rec[1:] {
			c, err := ParseCategory(cell)
			if err != nil {
				return nil, fmt.Errorf("%s: row %q: %w", path, keyword, err)
			}
			row[e.Codes[i]] = c
		}
		e.cells[keyword] = row
		e.Keywords = append(e.Keywords, keyword)
	}
	sort.Strings(e.Keywords)
	return e, nil
}
