package arxiv

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matsen/weaksig/internal/corpus"
)

// Feed is one page of the Atom feed returned by the export API.
type Feed struct {
	XMLName      xml.Name `xml:"feed"`
	TotalResults int      `xml:"totalResults"`
	StartIndex   int      `xml:"startIndex"`
	Entries      []Entry  `xml:"entry"`
}

// Entry is one paper in the feed.
type Entry struct {
	ID        string `xml:"id"`
	Published string `xml:"published"`
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
}

// ParseFeed decodes an Atom feed from the reader.
func ParseFeed(r io.Reader) (*Feed, error) {
	var feed Feed
	if err := xml.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding Atom feed: %w", err)
	}
	return &feed, nil
}

// Documents converts the feed entries into corpus documents. Entries without
// a parseable publication date are skipped.
func (f *Feed) Documents() []corpus.Document {
	docs := make([]corpus.Document, 0, len(f.Entries))
	for _, e := range f.Entries {
		t, err := time.Parse(time.RFC3339, e.Published)
		if err != nil {
			continue
		}
		docs = append(docs, corpus.Document{
			ID:       shortID(e.ID),
			Year:     t.Year(),
			Title:    collapseWhitespace(e.Title),
			Abstract: collapseWhitespace(e.Summary),
			Source:   "arxiv",
		})
	}
	return docs
}

// shortID strips the URL prefix from an entry id, leaving e.g. "2104.01234v1".
func shortID(id string) string {
	if idx := strings.LastIndex(id, "/abs/"); idx >= 0 {
		return id[idx+len("/abs/"):]
	}
	return id
}

// collapseWhitespace folds the hard-wrapped feed text onto single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
