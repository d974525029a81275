package main

import (
	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of references to list (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List references in the library",
	Long: `List references in the library, ordered by ID.

Examples:
  refdeck list
  refdeck list --limit 20 --human`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	refs, err := db.ListAll(listLimit)
	if err != nil {
		exitWithError(ExitError, "listing references: %v", err)
	}

	if humanOutput {
		for _, ref := range refs {
			printRefLine(ref)
		}
		outputHuman("%d reference(s)\n", len(refs))
	} else {
		outputJSON(refs)
	}

	return nil
}
