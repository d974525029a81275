package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/refdeck/refdeck/internal/config"
	"github.com/refdeck/refdeck/internal/pipeline"
	"github.com/refdeck/refdeck/internal/storage"
	"github.com/spf13/cobra"
)

var addOffline bool

func init() {
	addCmd.Flags().BoolVar(&addOffline, "offline", false, "Skip external lookups, use PDF heuristics only")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <pdf>...",
	Short: "Ingest PDF files into the library",
	Long: `Ingest one or more PDF files into the library.

Each PDF's text and embedded metadata are mined for a rough record, which
is then refined against CrossRef, OpenAlex and Semantic Scholar and tagged
with a journal-quality tier. Files are processed in argument order; an
unreadable PDF yields a default empty record and never aborts the batch.

Examples:
  refdeck add paper.pdf
  refdeck add downloads/*.pdf
  refdeck add --offline scan.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

// AddResult reports one ingested file.
type AddResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	DOI     string `json:"doi,omitempty"`
	Ranking string `json:"journal_ranking,omitempty"`
	PDFPath string `json:"pdf_path"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	var p *pipeline.Pipeline
	if addOffline {
		p = pipeline.New(nil, nil)
	} else {
		p = pipeline.NewDefault(config.GetMailto(cfg))
	}

	refs, err := storage.ReadAll(config.RefsPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "reading library: %v", err)
	}

	results := make([]AddResult, 0, len(args))
	for _, ref := range p.IngestBatch(context.Background(), args) {
		ref.ID = storage.GenerateUniqueID(refs, ref.ID)
		refs = append(refs, ref)

		if err := storage.Append(config.RefsPath(repoRoot), ref); err != nil {
			exitWithError(ExitDataError, "appending reference: %v", err)
		}

		results = append(results, AddResult{
			ID:      ref.ID,
			Title:   ref.Title,
			DOI:     ref.DOI,
			Ranking: ref.JournalRanking,
			PDFPath: ref.PDFPath,
		})
	}

	mustRebuildCache(repoRoot)

	if humanOutput {
		for _, r := range results {
			outputHuman("Added %s: %s\n", r.ID, truncateString(r.Title, ListTitleMaxLen))
			if r.Ranking != "" {
				outputHuman("  %s\n", r.Ranking)
			}
		}
		outputHuman("%d reference(s) added\n", len(results))
	} else {
		outputJSON(results)
	}

	return nil
}
