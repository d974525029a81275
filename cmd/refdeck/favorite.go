package main

import (
	"github.com/refdeck/refdeck/internal/reference"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(favoriteCmd)
}

var favoriteCmd = &cobra.Command{
	Use:     "favorite <id>",
	Aliases: []string{"fav"},
	Short:   "Toggle the favorite flag on a reference",
	Args:    cobra.ExactArgs(1),
	RunE:    runFavorite,
}

func runFavorite(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	ref := mutateRef(repoRoot, args[0], func(r *reference.Reference) {
		r.Favorite = !r.Favorite
	})

	if humanOutput {
		state := "unfavorited"
		if ref.Favorite {
			state = "favorited"
		}
		outputHuman("%s %s\n", ref.ID, state)
	} else {
		outputJSON(ref)
	}
	return nil
}
