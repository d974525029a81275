// Package main provides the refdeck CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/refdeck/refdeck/internal/config"
	"github.com/refdeck/refdeck/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refdeck",
	Short: "Personal research reference manager",
	Long: `refdeck is a CLI reference manager for research papers.

Core features:
  - PDF ingest with metadata reconciliation against CrossRef, OpenAlex
    and Semantic Scholar
  - Journal quality ranking (Q1-Q4 tags)
  - Full-text search over the local library
  - BibTeX export

Data is stored as git-versionable JSONL with an ephemeral SQLite cache
for queries. All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustFindRepository finds the repository starting from the working
// directory, exits on error.
func mustFindRepository() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	repoRoot, err := config.FindRepository(cwd)
	if err != nil {
		exitWithError(ExitConfigError, "%v\n  Hint: run 'refdeck init' to create a repository here", err)
	}
	return repoRoot
}

// mustOpenDatabase opens the SQLite cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(repoRoot string) *storage.DB {
	db, err := storage.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadConfig loads repository configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustRebuildCache rebuilds the SQLite cache from the JSONL file. Called
// after every mutation so queries always see current data.
func mustRebuildCache(repoRoot string) {
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	if _, err := db.RebuildFromJSONL(config.RefsPath(repoRoot)); err != nil {
		exitWithError(ExitDataError, "rebuilding cache: %v", err)
	}
}
