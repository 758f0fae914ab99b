package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/weaksig/internal/config"
	"github.com/matsen/weaksig/internal/freq"
	"github.com/matsen/weaksig/internal/textnorm"
	"github.com/matsen/weaksig/internal/vocab"
)

func init() {
	rootCmd.AddCommand(freqCmd)
}

// FreqResult is the response for the freq command.
type FreqResult struct {
	Status          string  `json:"status"`
	Keywords        int     `json:"keywords"`
	Documents       int     `json:"documents"`
	Years           int     `json:"years"`
	TFPath          string  `json:"tf_path"`
	DFPath          string  `json:"df_path"`
	DurationSeconds float64 `json:"duration_seconds"`
}

var freqCmd = &cobra.Command{
	Use:   "freq",
	Short: "Compute the TF and DF frequency tables",
	Long: `Scan every corpus document for vocabulary keywords and write the
term-frequency (TF) and document-frequency (DF) tables to the results
directory. Both tables cover the full vocabulary and the whole corpus
year span, zero-filled where a keyword never occurs.`,
	RunE: runFreq,
}

func runFreq(cmd *cobra.Command, args []string) error {
	start := time.Now()
	root := mustFindRepository()

	voc, err := vocab.Load(config.VocabPath(root))
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	norm, err := textnorm.New()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	db := mustOpenDB(root)
	defer db.Close()

	docs, err := db.AllDocuments()
	if err != nil {
		exitWithError(ExitError, "reading corpus: %v", err)
	}
	if len(docs) == 0 {
		exitWithError(ExitDataError, "corpus is empty; run 'ws corpus import' first")
	}

	counter := freq.NewCounter(norm, voc)
	tf, df, err := counter.Count(docs)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	tfPath := config.ResultPath(root, config.TFFile)
	dfPath := config.ResultPath(root, config.DFFile)
	if err := tf.WriteCSV(tfPath); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := df.WriteCSV(dfPath); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	resp := FreqResult{
		Status:          "computed",
		Keywords:        voc.Len(),
		Documents:       len(docs),
		Years:           len(tf.Years()),
		TFPath:          tfPath,
		DFPath:          dfPath,
		DurationSeconds: time.Since(start).Seconds(),
	}
	if humanOutput {
		outputHuman("Counted %d keywords over %d documents (%d years) in %.1fs\n",
			resp.Keywords, resp.Documents, resp.Years, resp.DurationSeconds)
		outputHuman("  TF: %s\n  DF: %s\n", resp.TFPath, resp.DFPath)
		return nil
	}
	return outputJSON(resp)
}
