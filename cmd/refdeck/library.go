package main

import (
	"github.com/refdeck/refdeck/internal/config"
	"github.com/refdeck/refdeck/internal/reference"
	"github.com/refdeck/refdeck/internal/storage"
)

// mutateRef loads the library, applies fn to the reference with the given
// ID, writes the library back and rebuilds the cache. Exits if the ID is
// unknown. Returns the updated reference.
func mutateRef(repoRoot, id string, fn func(*reference.Reference)) reference.Reference {
	refsPath := config.RefsPath(repoRoot)

	refs, err := storage.ReadAll(refsPath)
	if err != nil {
		exitWithError(ExitDataError, "reading library: %v", err)
	}

	idx, found := storage.FindByID(refs, id)
	if !found {
		exitWithError(ExitError, "reference not found: %s", id)
	}

	fn(&refs[idx])

	if err := storage.WriteAll(refsPath, refs); err != nil {
		exitWithError(ExitDataError, "writing library: %v", err)
	}
	mustRebuildCache(repoRoot)

	return refs[idx]
}
