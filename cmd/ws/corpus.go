package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/matsen/weaksig/internal/arxiv"
	"github.com/matsen/weaksig/internal/config"
	"github.com/matsen/weaksig/internal/corpus"
	"github.com/matsen/weaksig/internal/storage"
)

var fetchMax int

func init() {
	rootCmd.AddCommand(corpusCmd)
	corpusCmd.AddCommand(corpusImportCmd)
	corpusCmd.AddCommand(corpusFetchCmd)
	corpusCmd.AddCommand(corpusInfoCmd)

	corpusFetchCmd.Flags().IntVar(&fetchMax, "max", 1000, "Maximum number of records to fetch")
}

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the analysis corpus",
	Long:  `Commands for importing, fetching, and inspecting the document corpus.`,
}

// CorpusImportResult is the response for corpus import and fetch commands.
type CorpusImportResult struct {
	Status    string `json:"status"`
	Added     int    `json:"added"`
	Total     int    `json:"total"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
}

var corpusImportCmd = &cobra.Command{
	Use:   "import <metadata.jsonl>",
	Short: "Import an arXiv-style metadata dump into the corpus",
	Long: `Read a line-delimited JSON metadata dump, keep the records matching
the configured topics and year range, and rebuild the corpus cache.

The import replaces the existing corpus.`,
	Args: cobra.ExactArgs(1),
	RunE: runCorpusImport,
}

func runCorpusImport(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	filter := corpus.Filter{
		Topics:    cfg.Topics,
		StartYear: cfg.StartYear,
		EndYear:   cfg.EndYear,
	}
	docs, err := corpus.ReadMetadataDump(args[0], filter)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if len(docs) == 0 {
		exitWithError(ExitDataError, "no records match the configured topics and year range")
	}

	if err := storage.WriteAll(config.CorpusPath(root), docs); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	total := rebuildCache(root)
	log.Info().Int("documents", total).Msg("corpus imported")

	resp := CorpusImportResult{
		Status:    "imported",
		Added:     len(docs),
		Total:     total,
		StartYear: cfg.StartYear,
		EndYear:   cfg.EndYear,
	}
	if humanOutput {
		outputHuman("Imported %d documents (%d-%d)\n", resp.Added, resp.StartYear, resp.EndYear)
		return nil
	}
	return outputJSON(resp)
}

var corpusFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch abstracts from the arXiv export API",
	Long: `Query the arXiv export API for the configured topics and append the
matching records to the corpus. Requests are rate-limited per the API
terms of use; set WS_CONTACT_EMAIL to identify yourself.`,
	RunE: runCorpusFetch,
}

func runCorpusFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	if len(cfg.Topics) == 0 {
		exitWithError(ExitConfigError, "no topics configured; set topics in %s", config.ConfigPath(root))
	}

	terms := make([]string, 0, len(cfg.Topics))
	for _, t := range cfg.Topics {
		terms = append(terms, fmt.Sprintf("all:%q", t))
	}
	query := strings.Join(terms, " OR ")

	filter := corpus.Filter{
		Topics:    cfg.Topics,
		StartYear: cfg.StartYear,
		EndYear:   cfg.EndYear,
	}

	client := arxiv.NewClient()
	var fetched []corpus.Document
	for start := 0; start < fetchMax; start += arxiv.DefaultPageSize {
		pageSize := arxiv.DefaultPageSize
		if remaining := fetchMax - start; remaining < pageSize {
			pageSize = remaining
		}
		feed, err := client.Search(ctx, query, start, pageSize)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		docs := feed.Documents()
		for _, d := range docs {
			if filter.Match(d) {
				fetched = append(fetched, d)
			}
		}
		log.Info().Int("start", start).Int("entries", len(docs)).Msg("fetched arXiv page")
		if start+len(feed.Entries) >= feed.TotalResults || len(feed.Entries) == 0 {
			break
		}
	}
	if len(fetched) == 0 {
		exitWithError(ExitDataError, "no fetched records match the configured topics and year range")
	}

	// A re-run of the same query returns the same records; only new IDs
	// may enter the corpus, or the cache rebuild would hit its primary key.
	added, err := storage.AppendNew(config.CorpusPath(root), fetched)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	total := rebuildCache(root)
	log.Info().
		Int("fetched", len(fetched)).
		Int("added", len(added)).
		Int("total", total).
		Msg("corpus fetch complete")

	resp := CorpusImportResult{
		Status:    "fetched",
		Added:     len(added),
		Total:     total,
		StartYear: cfg.StartYear,
		EndYear:   cfg.EndYear,
	}
	if humanOutput {
		outputHuman("Fetched %d documents (%d total)\n", resp.Added, resp.Total)
		return nil
	}
	return outputJSON(resp)
}

// YearCount is one year's document count in corpus info output.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CorpusInfoResult is the response for the corpus info command.
type CorpusInfoResult struct {
	Documents int         `json:"documents"`
	Years     []YearCount `json:"years"`
}

var corpusInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show per-year document counts",
	RunE:  runCorpusInfo,
}

func runCorpusInfo(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	db := mustOpenDB(root)
	defer db.Close()

	counts, err := db.DocCountsByYear()
	if err != nil {
		exitWithError(ExitError, "reading document counts: %v", err)
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	resp := CorpusInfoResult{}
	for _, y := range years {
		resp.Documents += counts[y]
		resp.Years = append(resp.Years, YearCount{Year: y, Count: counts[y]})
	}

	if humanOutput {
		outputHuman("%d documents\n", resp.Documents)
		for _, yc := range resp.Years {
			outputHuman("  %d: %d\n", yc.Year, yc.Count)
		}
		return nil
	}
	return outputJSON(resp)
}

// rebuildCache rebuilds the SQLite cache from the corpus JSONL and returns
// the document count.
func rebuildCache(root string) int {
	db := mustOpenDB(root)
	defer db.Close()

	total, err := db.RebuildFromJSONL(config.CorpusPath(root))
	if err != nil {
		exitWithError(ExitError, "rebuilding corpus cache: %v", err)
	}
	return total
}
