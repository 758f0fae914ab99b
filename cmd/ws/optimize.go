package main

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/matsen/weaksig/internal/config"
	"github.com/matsen/weaksig/internal/score"
)

func init() {
	rootCmd.AddCommand(optimizeCmd)
}

// OptimizeResult is the response for the optimize command.
type OptimizeResult struct {
	Status     string        `json:"status"`
	W          float64       `json:"w"`
	StdDev     float64       `json:"std_dev"`
	Trials     []score.Trial `json:"trials"`
	ResultPath string        `json:"result_path"`
	DoVPath    string        `json:"dov_path"`
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Grid-search the decay parameter w",
	Long: `Score the TF table with every configured w candidate and pick the one
whose per-keyword growth rates have the widest population standard
deviation: the wider the spread, the better keywords separate into
signal categories.

The selection is written to results/best_w.json as an ordinary input
for later stages; the configuration file is never rewritten. The
winning DoV table is written to results/dov.csv.`,
	RunE: runOptimize,
}

func runOptimize(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	tf := mustReadTable(config.ResultPath(root, config.TFFile))

	db := mustOpenDB(root)
	defer db.Close()
	counts := mustDocCounts(db)

	res, err := score.Optimize(tf, counts, cfg.WCandidates)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	for _, trial := range res.Trials {
		log.Info().Float64("w", trial.W).Float64("stdDev", trial.StdDev).Msg("optimizer trial")
	}
	log.Info().Float64("w", res.W).Msg("selected decay parameter")

	resultPath := config.ResultPath(root, config.BestWFile)
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		exitWithError(ExitError, "encoding result: %v", err)
	}
	if err := os.WriteFile(resultPath, append(data, '\n'), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", resultPath, err)
	}

	dovPath := config.ResultPath(root, config.DoVFile)
	if err := res.Table.WriteCSV(dovPath); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	resp := OptimizeResult{
		Status:     "optimized",
		W:          res.W,
		StdDev:     res.StdDev,
		Trials:     res.Trials,
		ResultPath: resultPath,
		DoVPath:    dovPath,
	}
	if humanOutput {
		for _, trial := range resp.Trials {
			outputHuman("w=%-6g std dev of growth rates = %.6f\n", trial.W, trial.StdDev)
		}
		outputHuman("Selected w=%g (%s)\n", resp.W, resp.ResultPath)
		return nil
	}
	return outputJSON(resp)
}
