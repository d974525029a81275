package main

import (
	"github.com/refdeck/refdeck/internal/config"
	"github.com/refdeck/refdeck/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a reference from the library",
	Long: `Delete a reference from the library. The PDF file itself is not
touched.

Example:
  refdeck delete Matsen2010-pp`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	refsPath := config.RefsPath(repoRoot)

	refs, err := storage.ReadAll(refsPath)
	if err != nil {
		exitWithError(ExitDataError, "reading library: %v", err)
	}

	idx, found := storage.FindByID(refs, args[0])
	if !found {
		exitWithError(ExitError, "reference not found: %s", args[0])
	}

	refs = append(refs[:idx], refs[idx+1:]...)

	if err := storage.WriteAll(refsPath, refs); err != nil {
		exitWithError(ExitDataError, "writing library: %v", err)
	}
	mustRebuildCache(repoRoot)

	if humanOutput {
		outputHuman("Deleted %s\n", args[0])
	} else {
		outputJSON(StatusResponse{Status: "deleted", ID: args[0]})
	}
	return nil
}
