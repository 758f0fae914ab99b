package main

import (
	"os"
	"path/filepath"

	"github.com/matsen/weaksig/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a weaksig repository in the current directory",
	Long: `Create a .weaksig/ directory with a default config.yml, an empty
corpus, and the cache and results directories.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsRepository(cwd) {
		exitWithError(ExitError, "already a weaksig repository: %s", config.WeaksigPath(cwd))
	}

	for _, dir := range []string{
		config.WeaksigPath(cwd),
		config.CachePath(cwd),
		config.ResultsPath(cwd),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			exitWithError(ExitError, "creating %s: %v", dir, err)
		}
	}

	if err := config.Default().Save(cwd); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	corpusPath := config.CorpusPath(cwd)
	if err := os.WriteFile(corpusPath, nil, 0644); err != nil {
		exitWithError(ExitError, "creating %s: %v", corpusPath, err)
	}

	resp := StatusResponse{Status: "initialized", Path: config.WeaksigPath(cwd)}
	if humanOutput {
		outputHuman("Initialized weaksig repository in %s\n", resp.Path)
		outputHuman("Edit %s and add your vocabulary to %s\n",
			config.ConfigPath(cwd), filepath.Join(cwd, config.VocabFile))
		return nil
	}
	return outputJSON(resp)
}
