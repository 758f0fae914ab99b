package storage

import (
	"database/sql"
	"fmt"

	"github.com/matsen/weaksig/internal/corpus"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection holding the corpus cache.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS docs (
			id TEXT PRIMARY KEY,
			pub_year INTEGER NOT NULL,
			title TEXT,
			abstract TEXT,
			source TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_docs_year ON docs(pub_year);
	`
	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
// Duplicate IDs in the file resolve to the last occurrence, so a corpus that
// somehow picked up repeats still rebuilds instead of wedging the cache.
// Returns the number of documents in the rebuilt cache.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	docs, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	if _, err := d.db.Exec("DELETE FROM docs"); err != nil {
		return 0, fmt.Errorf("clearing docs table: %w", err)
	}

	stmt, err := d.db.Prepare(`
		INSERT OR REPLACE INTO docs (id, pub_year, title, abstract, source)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing docs insert: %w", err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		if _, err := stmt.Exec(doc.ID, doc.Year, doc.Title, doc.Abstract, doc.Source); err != nil {
			return 0, fmt.Errorf("inserting document %s: %w", doc.ID, err)
		}
	}

	return d.CountDocuments()
}

// CountDocuments returns the total number of documents in the cache.
func (d *DB) CountDocuments() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM docs").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// DocCountsByYear returns the per-year document counts over the contiguous
// span from the earliest to the latest publication year. Years inside the
// span with no documents map to zero.
func (d *DB) DocCountsByYear() (map[int]int, error) {
	rows, err := d.db.Query("SELECT pub_year, COUNT(*) FROM docs GROUP BY pub_year ORDER BY pub_year")
	if err != nil {
		return nil, fmt.Errorf("querying year counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	minYear, maxYear := 0, 0
	for rows.Next() {
		var year, n int
		if err := rows.Scan(&year, &n); err != nil {
			return nil, fmt.Errorf("scanning year count: %w", err)
		}
		counts[year] = n
		if len(counts) == 1 || year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading year counts: %w", err)
	}
	if len(counts) == 0 {
		return counts, nil // empty cache, no span to fill
	}

	// Zero-fill gap years so downstream tables keep a column for them
	for y := minYear; y <= maxYear; y++ {
		if _, ok := counts[y]; !ok {
			counts[y] = 0
		}
	}
	return counts, nil
}

// AllDocuments returns every document ordered by year then id.
func (d *DB) AllDocuments() ([]corpus.Document, error) {
	rows, err := d.db.Query("SELECT id, pub_year, title, abstract, source FROM docs ORDER BY pub_year, id")
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []corpus.Document
	for rows.Next() {
		var doc corpus.Document
		var title, abstract, source sql.NullString
		if err := rows.Scan(&doc.ID, &doc.Year, &title, &abstract, &source); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.Title = title.String
		doc.Abstract = abstract.String
		doc.Source = source.String
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading documents: %w", err)
	}
	return docs, nil
}

// DocumentsByYear returns the documents published in the given year.
func (d *DB) DocumentsByYear(year int) ([]corpus.Document, error) {
	rows, err := d.db.Query("SELECT id, pub_year, title, abstract, source FROM docs WHERE pub_year = ? ORDER BY id", year)
	if err != nil {
		return nil, fmt.Errorf("querying documents for %d: %w", year, err)
	}
	defer rows.Close()

	var docs []corpus.Document
	for rows.Next() {
		var doc corpus.Document
		var title, abstract, source sql.NullString
		if err := rows.Scan(&doc.ID, &doc.Year, &title, &abstract, &source); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.Title = title.String
		doc.Abstract = abstract.String
		doc.Source = source.String
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading documents: %w", err)
	}
	return docs, nil
}
