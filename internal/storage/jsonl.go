// Package storage handles corpus persistence in JSONL and SQLite formats.
//
// The JSONL file is the durable, versionable corpus; the SQLite database is
// an ephemeral cache rebuilt from it for fast queries.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/weaksig/internal/corpus"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all documents from a JSONL file.
func ReadAll(path string) ([]corpus.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file returns empty slice
		}
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	var docs []corpus.Document
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var doc corpus.Document
		if err := json.Unmarshal(line, &doc); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		docs = append(docs, doc)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	return docs, nil
}

// WriteAll writes documents to a JSONL file, replacing any existing content.
func WriteAll(path string, docs []corpus.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating corpus file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encoding document %s: %w", doc.ID, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing document: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing document: %w", err)
		}
	}
	return w.Flush()
}

// AppendNew appends only the documents whose ID is not already in the file,
// creating it if needed. Returns the documents actually appended. The ID is
// the primary key of the corpus cache, so duplicates must never reach the
// JSONL in the first place.
func AppendNew(path string, docs []corpus.Document) ([]corpus.Document, error) {
	existing, err := ReadAll(path)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		seen[d.ID] = struct{}{}
	}

	var fresh []corpus.Document
	for _, d := range docs {
		if _, dup := seen[d.ID]; dup {
			continue
		}
		seen[d.ID] = struct{}{}
		fresh = append(fresh, d)
	}
	if len(fresh) == 0 {
		return nil, nil
	}
	if err := Append(path, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Append adds documents to the end of a JSONL file, creating it if needed.
func Append(path string, docs []corpus.Document) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening corpus file for append: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encoding document %s: %w", doc.ID, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing document: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing document: %w", err)
		}
	}
	return w.Flush()
}
