// Package pipeline reconciles PDF text heuristics with external lookup
// results into a single canonical reference record.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/refdeck/refdeck/internal/lookup"
	"github.com/refdeck/refdeck/internal/metadata"
	"github.com/refdeck/refdeck/internal/pdftext"
	"github.com/refdeck/refdeck/internal/ranking"
	"github.com/refdeck/refdeck/internal/reference"
)

// minRefineTitleLen is the shortest guessed title worth refining against
// the external databases. A title this short is assumed too unreliable
// to search on.
const minRefineTitleLen = 10

// Searcher is the academic-search dependency: best-effort, returns nil on
// any miss or failure.
type Searcher interface {
	Search(ctx context.Context, title string) *metadata.Record
}

// Ranker is the journal-ranking dependency: returns the tag string, or ""
// when no tier resolves.
type Ranker interface {
	Tag(ctx context.Context, name string) string
}

// Pipeline orchestrates extraction, lookup, ranking and merging.
type Pipeline struct {
	search Searcher
	rank   Ranker
	now    func() time.Time

	// readDoc is swappable for tests; the default reads via pdftext.
	readDoc func(path string) (*pdftext.Document, error)
}

// New creates a pipeline. Both dependencies may be nil, which disables the
// corresponding enrichment stage.
func New(search Searcher, rank Ranker) *Pipeline {
	return &Pipeline{
		search: search,
		rank:   rank,
		now:    time.Now,
		readDoc: func(path string) (*pdftext.Document, error) {
			return pdftext.Read(path, pdftext.DefaultMaxPages)
		},
	}
}

// ExtractPDFMetadata turns a PDF file into a canonical reference. It is
// total: document-parse failures produce a default empty record rather
// than an error, so a corrupt PDF never blocks the rest of an ingest run.
func (p *Pipeline) ExtractPDFMetadata(ctx context.Context, path string) reference.Reference {
	doc, err := p.readDoc(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: unreadable PDF %s: %v\n", path, err)
		return reference.New(p.defaultRecord(), "", p.now())
	}

	pdfGuess := pdftext.Extract(doc)
	rec, rankingTag := p.Reconcile(ctx, pdfGuess)
	ref := reference.New(rec, rankingTag, p.now())
	ref.PDFPath = path
	return ref
}

// Reconcile refines a heuristic guess against the academic databases and
// the journal-ranking resolver, merging with academic-over-guess field
// precedence. It returns the merged record and the ranking tag ("" when
// none resolved).
func (p *Pipeline) Reconcile(ctx context.Context, pdfGuess metadata.Record) (metadata.Record, string) {
	if len(strings.TrimSpace(pdfGuess.Title)) <= minRefineTitleLen || p.search == nil {
		pdfGuess.Type = metadata.MapPublicationType(pdfGuess.Type)
		return pdfGuess, ""
	}

	academicHit := p.search.Search(ctx, pdfGuess.Title)
	if academicHit == nil {
		pdfGuess.Type = metadata.MapPublicationType(pdfGuess.Type)
		return pdfGuess, ""
	}

	rankingTag := ""
	journalName := academicHit.Journal
	if journalName == "" {
		journalName = pdfGuess.Journal
	}
	if strings.TrimSpace(journalName) != "" && p.rank != nil {
		rankingTag = p.rank.Tag(ctx, journalName)
	}

	merged := metadata.Merge(*academicHit, pdfGuess)
	merged.Type = metadata.MapPublicationType(merged.Type)
	return merged, rankingTag
}

// IngestBatch processes PDF files one at a time in argument order. Each
// file yields exactly one reference; failures degrade to default records.
func (p *Pipeline) IngestBatch(ctx context.Context, paths []string) []reference.Reference {
	refs := make([]reference.Reference, 0, len(paths))
	for _, path := range paths {
		refs = append(refs, p.ExtractPDFMetadata(ctx, path))
	}
	return refs
}

// defaultRecord is what an unreadable document degrades to: empty fields,
// current year, heuristic source.
func (p *Pipeline) defaultRecord() metadata.Record {
	return metadata.Record{
		Year:   p.now().Year(),
		Type:   metadata.TypeJournalArticle,
		Source: metadata.SourcePDFHeuristic,
	}
}

// NewDefault wires the pipeline with the production lookup chain and the
// OpenAlex-backed ranking resolver. The mailto address is optional and
// routes CrossRef/OpenAlex calls into their polite pools.
func NewDefault(mailto string) *Pipeline {
	openAlex := lookup.NewOpenAlex(lookup.WithOpenAlexMailto(mailto))
	orchestrator := lookup.NewOrchestrator(
		lookup.NewCrossRef(lookup.WithCrossRefMailto(mailto)),
		openAlex,
		lookup.NewSemanticScholar(),
	)
	return New(orchestrator, ranking.NewResolver(openAlex))
}
