package signal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteCSV writes the period map with the keyword as the row key and the
// two axis values plus the category label as columns.
func (m *PeriodMap) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"keyword", "axis_x", "axis_y", "category"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range m.Entries {
		record := []string{
			e.Keyword,
			strconv.FormatFloat(e.X, 'g', -1, 64),
			strconv.FormatFloat(e.Y, 'g', -1, 64),
			string(e.Category),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing row %q: %w", e.Keyword, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}
