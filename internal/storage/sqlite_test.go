package storage

import (
	"path/filepath"
	"testing"

	"github.com/matsen/weaksig/internal/corpus"
)

// setupTestDB creates a test database rebuilt from a JSONL corpus.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	jsonlPath := filepath.Join(tmpDir, "corpus.jsonl")

	docs := []corpus.Document{
		{ID: "1001.0001", Year: 2010, Title: "First vision paper", Abstract: "Edge detection methods.", Source: "import"},
		{ID: "1001.0002", Year: 2010, Title: "Second vision paper", Abstract: "Segmentation methods.", Source: "import"},
		{ID: "1201.0003", Year: 2012, Title: "Late paper", Abstract: "Deep networks.", Source: "import"},
	}
	if err := WriteAll(jsonlPath, docs); err != nil {
		t.Fatalf("writing test JSONL: %v", err)
	}

	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	n, err := db.RebuildFromJSONL(jsonlPath)
	if err != nil {
		t.Fatalf("rebuilding from JSONL: %v", err)
	}
	if n != len(docs) {
		t.Fatalf("rebuilt %d documents, want %d", n, len(docs))
	}
	return db
}

func TestRebuildAndCount(t *testing.T) {
	db := setupTestDB(t)

	n, err := db.CountDocuments()
	if err != nil {
		t.Fatalf("CountDocuments() error = %v", err)
	}
	if n != 3 {
		t.Errorf("CountDocuments() = %d, want 3", n)
	}
}

func TestDocCountsByYear(t *testing.T) {
	db := setupTestDB(t)

	counts, err := db.DocCountsByYear()
	if err != nil {
		t.Fatalf("DocCountsByYear() error = %v", err)
	}

	// 2011 has no documents but sits inside the span
	want := map[int]int{2010: 2, 2011: 0, 2012: 1}
	if len(counts) != len(want) {
		t.Fatalf("got %d years, want %d: %v", len(counts), len(want), counts)
	}
	for y, n := range want {
		if counts[y] != n {
			t.Errorf("counts[%d] = %d, want %d", y, counts[y], n)
		}
	}
}

func TestAllDocumentsOrdering(t *testing.T) {
	db := setupTestDB(t)

	docs, err := db.AllDocuments()
	if err != nil {
		t.Fatalf("AllDocuments() error = %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3", len(docs))
	}
	for i := 1; i < len(docs); i++ {
		if docs[i].Year < docs[i-1].Year {
			t.Errorf("documents out of year order: %v", docs)
		}
	}
	if docs[0].Title != "First vision paper" {
		t.Errorf("first document = %+v", docs[0])
	}
}

func TestDocumentsByYear(t *testing.T) {
	db := setupTestDB(t)

	docs, err := db.DocumentsByYear(2010)
	if err != nil {
		t.Fatalf("DocumentsByYear() error = %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("got %d documents for 2010, want 2", len(docs))
	}

	docs, err = db.DocumentsByYear(2011)
	if err != nil {
		t.Fatalf("DocumentsByYear() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d documents for 2011, want 0", len(docs))
	}
}

func TestDocCountsByYearEmpty(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	counts, err := db.DocCountsByYear()
	if err != nil {
		t.Fatalf("DocCountsByYear() error = %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("DocCountsByYear() on empty cache = %v, want no entries", counts)
	}
}

func TestRebuildWithDuplicateIDs(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "corpus.jsonl")

	if err := Append(jsonlPath, []corpus.Document{
		{ID: "dup", Year: 2010, Title: "First copy"},
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := Append(jsonlPath, []corpus.Document{
		{ID: "dup", Year: 2010, Title: "Second copy"},
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	db, err := OpenDB(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	n, err := db.RebuildFromJSONL(jsonlPath)
	if err != nil {
		t.Fatalf("RebuildFromJSONL() with duplicate IDs error = %v", err)
	}
	if n != 1 {
		t.Errorf("RebuildFromJSONL() = %d, want 1", n)
	}

	docs, err := db.AllDocuments()
	if err != nil {
		t.Fatalf("AllDocuments() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Title != "Second copy" {
		t.Errorf("AllDocuments() = %+v, want the last copy only", docs)
	}
}

func TestAppendNewSkipsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.jsonl")

	first := []corpus.Document{
		{ID: "a", Year: 2010, Title: "A"},
		{ID: "b", Year: 2011, Title: "B"},
	}
	added, err := AppendNew(path, first)
	if err != nil {
		t.Fatalf("AppendNew() error = %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("AppendNew() added %d documents, want 2", len(added))
	}

	// A repeat fetch returns the same records plus one new one
	second := []corpus.Document{
		{ID: "a", Year: 2010, Title: "A"},
		{ID: "b", Year: 2011, Title: "B"},
		{ID: "c", Year: 2012, Title: "C"},
	}
	added, err = AppendNew(path, second)
	if err != nil {
		t.Fatalf("AppendNew() error = %v", err)
	}
	if len(added) != 1 || added[0].ID != "c" {
		t.Fatalf("AppendNew() added %+v, want just c", added)
	}

	// Nothing new left to add
	added, err = AppendNew(path, second)
	if err != nil {
		t.Fatalf("AppendNew() error = %v", err)
	}
	if added != nil {
		t.Errorf("AppendNew() with all duplicates = %+v, want nil", added)
	}

	docs, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(docs) != 3 {
		t.Errorf("corpus holds %d documents after repeated appends, want 3", len(docs))
	}
}

func TestReadAllMissingFile(t *testing.T) {
	docs, err := ReadAll(filepath.Join(t.TempDir(), "missing.jsonl"))
	if err != nil {
		t.Fatalf("ReadAll() on missing file error = %v", err)
	}
	if docs != nil {
		t.Errorf("ReadAll() on missing file = %v, want nil", docs)
	}
}

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.jsonl")

	first := []corpus.Document{{ID: "a", Year: 2010, Title: "A"}}
	second := []corpus.Document{{ID: "b", Year: 2011, Title: "B"}}
	if err := Append(path, first); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := Append(path, second); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	docs, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "a" || docs[1].ID != "b" {
		t.Errorf("ReadAll() = %+v", docs)
	}
}
