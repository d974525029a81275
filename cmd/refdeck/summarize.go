package main

import (
	"context"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/refdeck/refdeck/internal/config"
	"github.com/refdeck/refdeck/internal/pdftext"
	"github.com/refdeck/refdeck/internal/summarize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <id>",
	Short: "Generate a structured review of a reference's PDF",
	Long: `Generate a structured review (summary, key findings, methodology,
limitations) from a reference's full PDF text.

Requires a summarizer API key, set via the REFDECK_SUMMARIZER_KEY
environment variable or summarizer_api_key in the global config.

Example:
  refdeck summarize Matsen2010-pp`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	db := mustOpenDatabase(repoRoot)
	ref, err := db.GetByID(args[0])
	db.Close()
	if err != nil {
		exitWithError(ExitError, "getting reference: %v", err)
	}
	if ref == nil {
		exitWithError(ExitError, "reference not found: %s", args[0])
	}
	if ref.PDFPath == "" {
		exitWithError(ExitError, "reference %s has no PDF attached", ref.ID)
	}

	key := config.GetSummarizerKey()
	if key == "" {
		exitWithError(ExitAuthError, "no summarizer API key configured\n  Hint: set REFDECK_SUMMARIZER_KEY or summarizer_api_key in %s", config.GlobalConfigPath())
	}

	pdfPath := ref.PDFPath
	if !filepath.IsAbs(pdfPath) && cfg.PDFRoot != "" {
		pdfPath = filepath.Join(config.ExpandPath(cfg.PDFRoot), pdfPath)
	}

	doc, err := pdftext.Read(pdfPath, 0)
	if err != nil {
		exitWithError(ExitError, "reading PDF %s: %v", pdfPath, err)
	}

	opts := []summarize.ClientOption{}
	global, _ := config.LoadGlobalConfig()
	if global != nil && len(global.SummarizerModels) > 0 {
		opts = append(opts, summarize.WithModels(global.SummarizerModels...))
	}

	client := summarize.NewClient(key, opts...)
	review, err := client.Summarize(context.Background(), doc.Text())
	if err != nil {
		if summarize.IsInvalidKey(err) {
			exitWithError(ExitAuthError, "summarizer rejected the API key: %v", err)
		}
		exitWithError(ExitError, "summarizing: %v", err)
	}

	if humanOutput {
		outputHuman("%s (%s)\n\n", ref.ID, review.Model)
		outputHuman("Summary:\n  %s\n\n", wrapText(review.Summary, DetailTextWrapWidth, "  "))
		if len(review.KeyFindings) > 0 {
			outputHuman("Key findings:\n")
			for _, f := range review.KeyFindings {
				outputHuman("  - %s\n", wrapText(f, DetailTextWrapWidth, "    "))
			}
			outputHuman("\n")
		}
		if review.Methodology != "" {
			outputHuman("Methodology:\n  %s\n\n", wrapText(review.Methodology, DetailTextWrapWidth, "  "))
		}
		if review.Limitations != "" {
			outputHuman("Limitations:\n  %s\n", wrapText(review.Limitations, DetailTextWrapWidth, "  "))
		}
	} else {
		outputJSON(review)
	}

	return nil
}
