// Package main provides the ws CLI entry point.
package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if os.Getenv("WS_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ws",
	Short: "Weak-signal detection for scientific abstracts",
	Long: `ws computes bibliometric weak-signal indicators over a corpus of
scientific abstracts: per-keyword, per-period visibility (TF/DoV) and
diffusion (DF/DoD) measures, quadrant classification against period
medians, and cross-map validation of the resulting categories.

A project lives in a directory holding a .weaksig/ repository with the
corpus, configuration, and result artifacts. Commands output JSON by
default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
