package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// metadataRecord is the shape of one line in an arXiv-style metadata dump.
// The update_date field doubles as the publication date.
type metadataRecord struct {
	ID         string `json:"id"`
	UpdateDate string `json:"update_date"`
	Title      string `json:"title"`
	Abstract   string `json:"abstract"`
}

// Filter selects which dump records enter the corpus.
type Filter struct {
	Topics    []string // case-insensitive substrings matched against title or abstract
	StartYear int      // inclusive
	EndYear   int      // inclusive
}

// Match reports whether a document passes the topic and year-range filter.
// An empty topic list matches every document.
func (f Filter) Match(d Document) bool {
	if d.Year < f.StartYear || d.Year > f.EndYear {
		return false
	}
	if len(f.Topics) == 0 {
		return true
	}
	title := strings.ToLower(d.Title)
	abstract := strings.ToLower(d.Abstract)
	for _, topic := range f.Topics {
		t := strings.ToLower(topic)
		if strings.Contains(title, t) || strings.Contains(abstract, t) {
			return true
		}
	}
	return false
}

// maxDumpLineCapacity is the maximum buffer size for reading dump lines.
// Abstracts are short but some records carry long author lists.
const maxDumpLineCapacity = 1024 * 1024

// ReadMetadataDump reads a line-delimited JSON metadata dump and returns the
// documents passing the filter. Records with an unparseable date are skipped;
// a malformed JSON line aborts the read.
func ReadMetadataDump(path string, filter Filter) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metadata dump: %w", err)
	}
	defer f.Close()

	var docs []Document
	scanner := bufio.NewScanner(f)
	buf := make([]byte, maxDumpLineCapacity)
	scanner.Buffer(buf, maxDumpLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec metadataRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}

		year, ok := yearOf(rec.UpdateDate)
		if !ok {
			continue
		}
		doc := Document{
			ID:       rec.ID,
			Year:     year,
			Title:    strings.TrimSpace(rec.Title),
			Abstract: strings.TrimSpace(rec.Abstract),
			Source:   "import",
		}
		if filter.Match(doc) {
			docs = append(docs, doc)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading metadata dump: %w", err)
	}
	return docs, nil
}

// yearOf extracts the year from a YYYY-MM-DD style date string.
func yearOf(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year < 1000 || year > 9999 {
		return 0, false
	}
	return year, true
}
