package main

import (
	"github.com/refdeck/refdeck/internal/reference"
	"github.com/spf13/cobra"
)

var (
	editTitle   string
	editYear    int
	editJournal string
	editDOI     string
	editNotes   string
	editPDFPath string
)

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "Set the title")
	editCmd.Flags().IntVar(&editYear, "year", 0, "Set the publication year")
	editCmd.Flags().StringVar(&editJournal, "journal", "", "Set the journal name")
	editCmd.Flags().StringVar(&editDOI, "doi", "", "Set the DOI")
	editCmd.Flags().StringVar(&editNotes, "notes", "", "Set the notes text")
	editCmd.Flags().StringVar(&editPDFPath, "pdf", "", "Set the PDF path")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit fields of a reference",
	Long: `Edit fields of a reference. Only the fields given as flags change;
the ID and the date added are immutable.

Examples:
  refdeck edit Matsen2010-pp --year 2011
  refdeck edit Matsen2010-pp --journal "BMC Bioinformatics" --notes "key method paper"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	ref := mutateRef(repoRoot, args[0], func(r *reference.Reference) {
		if cmd.Flags().Changed("title") {
			r.Title = editTitle
		}
		if cmd.Flags().Changed("year") {
			r.Year = editYear
		}
		if cmd.Flags().Changed("journal") {
			r.Journal = editJournal
		}
		if cmd.Flags().Changed("doi") {
			r.DOI = editDOI
		}
		if cmd.Flags().Changed("notes") {
			r.Notes = editNotes
		}
		if cmd.Flags().Changed("pdf") {
			r.PDFPath = editPDFPath
		}
	})

	if humanOutput {
		printRefDetail(ref)
	} else {
		outputJSON(ref)
	}

	return nil
}
