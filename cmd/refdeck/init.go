package main

import (
	"os"

	"github.com/refdeck/refdeck/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a refdeck repository in the current directory",
	Long: `Create a refdeck repository in the current directory.

This creates a .refdeck/ directory holding the refs.jsonl library file,
the repository config and the SQLite search cache.

Example:
  refdeck init`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if err := config.Init(cwd); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if humanOutput {
		outputHuman("Initialized refdeck repository in %s\n", config.RefdeckPath(cwd))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.RefdeckPath(cwd)})
	}

	return nil
}
