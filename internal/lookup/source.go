// Package lookup queries external bibliographic services and normalizes
// their heterogeneous responses into metadata records.
package lookup

import (
	"context"
	"strings"

	"github.com/refdeck/refdeck/internal/metadata"
)

// MinSearchTitleLen is the shortest trimmed title worth searching on.
// Anything shorter is assumed too unreliable to produce a meaningful hit.
const MinSearchTitleLen = 10

// Source is one bibliographic lookup service. Search returns (nil, nil)
// when the service has no match; errors indicate transport or protocol
// failures and are treated as "no match" by the orchestrator.
type Source interface {
	Name() metadata.Source
	Search(ctx context.Context, title string) (*metadata.Record, error)
}

// Orchestrator tries lookup sources in a fixed priority order and returns
// the first hit. CrossRef leads because its bibliographic records are the
// most complete (DOI, volume/issue/pages); the later sources only cover
// its gaps.
type Orchestrator struct {
	sources []Source
}

// NewOrchestrator builds an orchestrator over the given sources in priority
// order. With no arguments it uses the default chain: CrossRef, OpenAlex,
// Semantic Scholar.
func NewOrchestrator(sources ...Source) *Orchestrator {
	if len(sources) == 0 {
		sources = []Source{NewCrossRef(), NewOpenAlex(), NewSemanticScholar()}
	}
	return &Orchestrator{sources: sources}
}

// Search queries the sources sequentially, short-circuiting on the first
// record found. Source failures are soft: a failing source is skipped and
// the next one tried. Returns nil when the title is too short to search on
// or no source produced a record.
func (o *Orchestrator) Search(ctx context.Context, title string) *metadata.Record {
	if len(strings.TrimSpace(title)) < MinSearchTitleLen {
		return nil
	}
	for _, src := range o.sources {
		rec, err := src.Search(ctx, title)
		if err != nil {
			continue
		}
		if rec != nil {
			return rec
		}
	}
	return nil
}
