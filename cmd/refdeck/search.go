package main

import (
	"github.com/refdeck/refdeck/internal/storage"
	"github.com/spf13/cobra"
)

var (
	searchTitle    string
	searchAuthors  []string
	searchTag      string
	searchJournal  string
	searchDOI      string
	searchYearFrom int
	searchYearTo   int
	searchFavorite bool
	searchLimit    int
)

func init() {
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "Search in title only")
	searchCmd.Flags().StringSliceVar(&searchAuthors, "author", nil, "Filter by author name (repeatable, AND logic)")
	searchCmd.Flags().StringVar(&searchTag, "tag", "", "Filter by tag")
	searchCmd.Flags().StringVar(&searchJournal, "journal", "", "Filter by journal name substring")
	searchCmd.Flags().StringVar(&searchDOI, "doi", "", "Exact DOI match")
	searchCmd.Flags().IntVar(&searchYearFrom, "year-from", 0, "Minimum publication year")
	searchCmd.Flags().IntVar(&searchYearTo, "year-to", 0, "Maximum publication year")
	searchCmd.Flags().BoolVar(&searchFavorite, "favorite", false, "Favorites only")
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search the library",
	Long: `Search the library with full-text search and filters.

The optional keyword argument searches titles, abstracts, journals,
authors and tags. Flags narrow the results; all criteria must match.

Examples:
  refdeck search phylogenetics
  refdeck search --author Matsen --year-from 2015
  refdeck search placement --tag "Q1 Journal" --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	filters := storage.SearchFilters{
		Title:        searchTitle,
		Authors:      searchAuthors,
		Tag:          searchTag,
		Journal:      searchJournal,
		DOI:          searchDOI,
		YearFrom:     searchYearFrom,
		YearTo:       searchYearTo,
		FavoriteOnly: searchFavorite,
	}
	if len(args) == 1 {
		filters.Keyword = args[0]
	}

	refs, err := db.SearchWithFilters(filters, searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if humanOutput {
		for _, ref := range refs {
			printRefLine(ref)
		}
		outputHuman("%d result(s)\n", len(refs))
	} else {
		outputJSON(refs)
	}

	return nil
}
