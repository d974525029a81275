package main

import (
	"context"
	"strings"

	"github.com/joho/godotenv"
	"github.com/refdeck/refdeck/internal/config"
	"github.com/refdeck/refdeck/internal/lookup"
	"github.com/refdeck/refdeck/internal/ranking"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rankCmd)
}

var rankCmd = &cobra.Command{
	Use:   "rank <journal name>",
	Short: "Resolve a journal's quality tier",
	Long: `Resolve a journal name to a quality tier (Q1-Q4).

The resolver checks a curated table first, then live OpenAlex
bibliometrics, then name-pattern heuristics.

Examples:
  refdeck rank "Nature"
  refdeck rank "Journal of Theoretical Biology"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

// RankResult is the JSON response for the rank command.
type RankResult struct {
	Journal string `json:"journal"`
	Tier    string `json:"tier,omitempty"`
	Tag     string `json:"tag,omitempty"`
}

func runRank(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	name := strings.Join(args, " ")
	mailto := config.GetMailto(nil)

	openAlex := lookup.NewOpenAlex(lookup.WithOpenAlexMailto(mailto))
	resolver := ranking.NewResolver(openAlex)

	ctx := context.Background()
	tier, ok := resolver.Resolve(ctx, name)

	result := RankResult{Journal: name}
	if ok {
		result.Tier = string(tier)
		result.Tag = resolver.Tag(ctx, name)
	}

	if humanOutput {
		if ok {
			outputHuman("%s: %s\n", name, result.Tag)
		} else {
			outputHuman("%s: no tier resolved\n", name)
		}
	} else {
		outputJSON(result)
	}
	return nil
}
