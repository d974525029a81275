package main

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/refdeck/refdeck/internal/config"
	"github.com/refdeck/refdeck/internal/lookup"
	"github.com/spf13/cobra"
)

var lookupDOI string

func init() {
	lookupCmd.Flags().StringVar(&lookupDOI, "doi", "", "Look up by DOI instead of title")
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [title]",
	Short: "Look up metadata in the academic databases",
	Long: `Look up metadata by title or DOI without touching the library.

Title lookups try CrossRef, then OpenAlex, then Semantic Scholar, and
return the first hit. DOI lookups go straight to CrossRef.

Examples:
  refdeck lookup "Phylogenetic placement of short reads"
  refdeck lookup --doi 10.1186/1471-2105-11-538`,
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	// The repository is optional here; it only contributes the polite-pool
	// address when present.
	mailto := config.GetMailto(nil)
	if cwd, err := os.Getwd(); err == nil {
		if root, err := config.FindRepository(cwd); err == nil {
			if cfg, err := config.Load(root); err == nil {
				mailto = config.GetMailto(cfg)
			}
		}
	}

	ctx := context.Background()

	if lookupDOI != "" {
		client := lookup.NewCrossRef(lookup.WithCrossRefMailto(mailto))
		rec, err := client.LookupDOI(ctx, lookupDOI)
		if err != nil {
			exitWithError(ExitError, "DOI lookup failed: %v", err)
		}
		if rec == nil {
			exitWithError(ExitError, "no record for DOI %s", lookupDOI)
		}
		outputJSON(rec)
		return nil
	}

	if len(args) == 0 {
		exitWithError(ExitError, "a title argument or --doi is required")
	}
	title := strings.Join(args, " ")

	orch := lookup.NewOrchestrator(
		lookup.NewCrossRef(lookup.WithCrossRefMailto(mailto)),
		lookup.NewOpenAlex(lookup.WithOpenAlexMailto(mailto)),
		lookup.NewSemanticScholar(),
	)

	rec := orch.Search(ctx, title)
	if rec == nil {
		exitWithError(ExitError, "no match for title %q", title)
	}

	outputJSON(rec)
	return nil
}
