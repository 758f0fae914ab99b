package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/weaksig/internal/config"
	"github.com/matsen/weaksig/internal/signal"
)

func init() {
	rootCmd.AddCommand(kemCmd)
	rootCmd.AddCommand(kimCmd)
}

// PeriodMapSummary summarizes one period's signal map in command output.
type PeriodMapSummary struct {
	Period   string `json:"period"`
	Keywords int    `json:"keywords"`
	Path     string `json:"path"`
}

// MapResult is the response for the kem and kim commands.
type MapResult struct {
	Status        string             `json:"status"`
	Map           string             `json:"map"`
	Periods       []PeriodMapSummary `json:"periods"`
	EvolutionPath string             `json:"evolution_path"`
}

var kemCmd = &cobra.Command{
	Use:   "kem",
	Short: "Build the Keyword Emergence Map (TF x DoV growth)",
	Long: `For each configured period, average the TF table (x-axis), take the
geometric mean of the DoV table (y-axis), classify every keyword into
a quadrant against the period medians, and write one map per period
plus the consolidated evolution table.

Run 'ws freq' and 'ws weigh' (or 'ws optimize') first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSignalMap("kem", config.TFFile, config.DoVFile)
	},
}

var kimCmd = &cobra.Command{
	Use:   "kim",
	Short: "Build the Keyword Issue Map (DF x DoD growth)",
	Long: `The document-based twin of 'ws kem': x-axis from the DF table, y-axis
from the DoD table. Both maps cover the same periods so 'ws validate'
can reconcile them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSignalMap("kim", config.DFFile, config.DoDFile)
	},
}

func runSignalMap(prefix, xFile, yFile string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	x := mustReadTable(config.ResultPath(root, xFile))
	y := mustReadTable(config.ResultPath(root, yFile))

	maps, err := signal.BuildMaps(x, y, periodsOf(cfg))
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if len(maps) == 0 {
		exitWithError(ExitDataError, "no period produced a signal map")
	}

	resp := MapResult{Status: "computed", Map: prefix}
	for _, m := range maps {
		path := config.ResultPath(root, fmt.Sprintf("%s_%s.csv", prefix, m.Period.Code()))
		if err := m.WriteCSV(path); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		resp.Periods = append(resp.Periods, PeriodMapSummary{
			Period:   m.Period.Label(),
			Keywords: len(m.Entries),
			Path:     path,
		})
	}

	evolution := signal.Consolidate(maps, prefix)
	evoPath := config.ResultPath(root, prefix+"_evolution.csv")
	if err := evolution.WriteCSV(evoPath); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	resp.EvolutionPath = evoPath

	if humanOutput {
		for _, p := range resp.Periods {
			outputHuman("%s: %d keywords -> %s\n", p.Period, p.Keywords, p.Path)
		}
		outputHuman("Evolution: %s\n", resp.EvolutionPath)
		return nil
	}
	return outputJSON(resp)
}
