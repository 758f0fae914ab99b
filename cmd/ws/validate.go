package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/matsen/weaksig/internal/config"
	"github.com/matsen/weaksig/internal/signal"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

// ValidateResult is the response for the validate command.
type ValidateResult struct {
	Status         string `json:"status"`
	Keywords       int    `json:"keywords"`
	AllValidated   int    `json:"all_validated"`
	HighImpact     int    `json:"high_impact"`
	AllPath        string `json:"all_path"`
	HighImpactPath string `json:"high_impact_path"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Cross-validate the KEM and KIM classifications",
	Long: `Outer-join the KEM and KIM evolution tables and derive one validated
verdict per keyword per period: agreement keeps the common category,
any disagreement or one-sided absence becomes Not Validated.

Writes the full validated table filtered to analytically useful
keywords, plus the narrower high-impact (Weak/Strong) report.

Run 'ws kem' and 'ws kim' first.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()

	kem, err := signal.ReadEvolutionCSV(config.ResultPath(root, "kem_evolution.csv"))
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	kim, err := signal.ReadEvolutionCSV(config.ResultPath(root, "kim_evolution.csv"))
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	validated, err := signal.CrossValidate(kem, kim)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	all := validated.FilterAllValidated()
	high := all.FilterHighImpact()
	log.Info().
		Int("keywords", len(validated.Keywords)).
		Int("allValidated", len(all.Keywords)).
		Int("highImpact", len(high.Keywords)).
		Msg("cross-validation complete")

	allPath := config.ResultPath(root, config.AllSignalsFile)
	highPath := config.ResultPath(root, config.HighImpactFile)
	if err := all.WriteCSV(allPath); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := high.WriteCSV(highPath); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	resp := ValidateResult{
		Status:         "validated",
		Keywords:       len(validated.Keywords),
		AllValidated:   len(all.Keywords),
		HighImpact:     len(high.Keywords),
		AllPath:        allPath,
		HighImpactPath: highPath,
	}
	if humanOutput {
		outputHuman("%d keywords, %d validated, %d high-impact\n",
			resp.Keywords, resp.AllValidated, resp.HighImpact)
		outputHuman("  All: %s\n  High-impact: %s\n", resp.AllPath, resp.HighImpactPath)
		return nil
	}
	return outputJSON(resp)
}
