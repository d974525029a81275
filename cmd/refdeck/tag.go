package main

import (
	"strings"

	"github.com/refdeck/refdeck/internal/reference"
	"github.com/spf13/cobra"
)

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
	rootCmd.AddCommand(tagCmd)
}

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage reference tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <id> <tag>...",
	Short: "Add tags to a reference",
	Long: `Add one or more tags to a reference. Duplicate tags are ignored.

Example:
  refdeck tag add Matsen2010-pp phylogenetics methods`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTagAdd,
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove <id> <tag>...",
	Short: "Remove tags from a reference",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTagRemove,
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	ref := mutateRef(repoRoot, args[0], func(r *reference.Reference) {
		for _, tag := range args[1:] {
			r.AddTag(tag)
		}
	})

	if humanOutput {
		outputHuman("%s tags: %s\n", ref.ID, strings.Join(ref.Tags, ", "))
	} else {
		outputJSON(ref)
	}
	return nil
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	ref := mutateRef(repoRoot, args[0], func(r *reference.Reference) {
		for _, tag := range args[1:] {
			r.RemoveTag(tag)
		}
	})

	if humanOutput {
		outputHuman("%s tags: %s\n", ref.ID, strings.Join(ref.Tags, ", "))
	} else {
		outputJSON(ref)
	}
	return nil
}
