package main

import (
	"os"

	"github.com/matsen/weaksig/internal/config"
	"github.com/matsen/weaksig/internal/signal"
	"github.com/matsen/weaksig/internal/storage"
	"github.com/matsen/weaksig/internal/table"
)

// mustFindRepository locates the enclosing weaksig repository or exits.
// The WS_ROOT environment variable overrides the search start.
func mustFindRepository() string {
	start := os.Getenv("WS_ROOT")
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			exitWithError(ExitError, "getting current directory: %v", err)
		}
		start = cwd
	}

	root, err := config.FindRepository(start)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return root
}

// mustLoadConfig loads the repository configuration or exits.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}

// mustOpenDB opens the corpus cache database or exits.
func mustOpenDB(root string) *storage.DB {
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening corpus cache: %v", err)
	}
	return db
}

// mustReadTable reads a CSV table artifact or exits.
func mustReadTable(path string) *table.Table {
	t, err := table.ReadCSV(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return t
}

// mustDocCounts loads the per-year document counts or exits.
func mustDocCounts(db *storage.DB) map[int]int {
	counts, err := db.DocCountsByYear()
	if err != nil {
		exitWithError(ExitError, "reading document counts: %v", err)
	}
	if len(counts) == 0 {
		exitWithError(ExitDataError, "corpus cache is empty; run 'ws corpus import' first")
	}
	return counts
}

// periodsOf converts the configured periods to signal periods.
func periodsOf(cfg *config.Config) []signal.Period {
	periods := make([]signal.Period, 0, len(cfg.Periods))
	for _, p := range cfg.Periods {
		periods = append(periods, signal.Period{Name: p.Name, Start: p.Start, End: p.End})
	}
	return periods
}
