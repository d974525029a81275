package main

import (
	"github.com/refdeck/refdeck/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search cache from the refs file",
	Long: `Rebuild the SQLite search cache from refs.jsonl.

The cache is ephemeral; run this after editing refs.jsonl by hand or
pulling changes from a collaborator.

Example:
  refdeck rebuild`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	n, err := db.RebuildFromJSONL(config.RefsPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding cache: %v", err)
	}

	if humanOutput {
		outputHuman("Rebuilt cache with %d reference(s)\n", n)
	} else {
		outputJSON(StatusResponse{Status: "rebuilt", Count: n})
	}
	return nil
}
