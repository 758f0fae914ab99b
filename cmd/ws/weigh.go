package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/weaksig/internal/config"
	"github.com/matsen/weaksig/internal/score"
)

var weighW float64

func init() {
	rootCmd.AddCommand(weighCmd)
	weighCmd.Flags().Float64Var(&weighW, "w", 0, "Decay parameter (defaults to the configured w)")
}

// WeighResult is the response for the weigh command.
type WeighResult struct {
	Status  string  `json:"status"`
	W       float64 `json:"w"`
	DoVPath string  `json:"dov_path"`
	DoDPath string  `json:"dod_path"`
}

var weighCmd = &cobra.Command{
	Use:   "weigh",
	Short: "Compute the time-weighted DoV and DoD score tables",
	Long: `Convert the TF and DF tables into Degree of Visibility (DoV) and
Degree of Diffusion (DoD) tables: each cell is normalized by that
year's document count and scaled by the linear time weight 1 - w*(N-j).

Run 'ws freq' first; run 'ws optimize' to pick w by growth-rate
dispersion.`,
	RunE: runWeigh,
}

func runWeigh(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	w := cfg.W
	if cmd.Flags().Changed("w") {
		w = weighW
	}

	tf := mustReadTable(config.ResultPath(root, config.TFFile))
	df := mustReadTable(config.ResultPath(root, config.DFFile))

	db := mustOpenDB(root)
	defer db.Close()
	counts := mustDocCounts(db)

	dov, err := score.Weighted(tf, counts, w)
	if err != nil {
		exitWithError(ExitDataError, "computing DoV: %v", err)
	}
	dod, err := score.Weighted(df, counts, w)
	if err != nil {
		exitWithError(ExitDataError, "computing DoD: %v", err)
	}

	dovPath := config.ResultPath(root, config.DoVFile)
	dodPath := config.ResultPath(root, config.DoDFile)
	if err := dov.WriteCSV(dovPath); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := dod.WriteCSV(dodPath); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	resp := WeighResult{Status: "computed", W: w, DoVPath: dovPath, DoDPath: dodPath}
	if humanOutput {
		outputHuman("Computed DoV and DoD with w=%g\n  DoV: %s\n  DoD: %s\n", w, dovPath, dodPath)
		return nil
	}
	return outputJSON(resp)
}
