package main

import (
	"fmt"
	"os"

	"github.com/refdeck/refdeck/internal/export"
	"github.com/refdeck/refdeck/internal/reference"
	"github.com/spf13/cobra"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [id]...",
	Short: "Export references as BibTeX",
	Long: `Export references as BibTeX. With no arguments the whole library is
exported; otherwise only the given IDs.

Examples:
  refdeck export -o library.bib
  refdeck export Matsen2010-pp Jones2025-dl`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	var refs []reference.Reference
	if len(args) == 0 {
		all, err := db.ListAll(0)
		if err != nil {
			exitWithError(ExitError, "listing references: %v", err)
		}
		refs = all
	} else {
		for _, id := range args {
			ref, err := db.GetByID(id)
			if err != nil {
				exitWithError(ExitError, "getting reference: %v", err)
			}
			if ref == nil {
				exitWithError(ExitError, "reference not found: %s", id)
			}
			refs = append(refs, *ref)
		}
	}

	bibtex := export.ToBibTeXList(refs)

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, []byte(bibtex), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", exportOutput, err)
		}
		if humanOutput {
			outputHuman("Exported %d reference(s) to %s\n", len(refs), exportOutput)
		} else {
			outputJSON(StatusResponse{Status: "exported", Path: exportOutput, Count: len(refs)})
		}
		return nil
	}

	fmt.Print(bibtex)
	return nil
}
