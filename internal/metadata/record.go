// Package metadata defines the normalized metadata record that every
// lookup source and the PDF extractor produce, plus shared DOI and
// abstract-cleaning utilities.
package metadata

import "strings"

// Source identifies where a metadata record came from.
type Source string

const (
	SourceCrossRef        Source = "crossref"
	SourceOpenAlex        Source = "openalex"
	SourceSemanticScholar Source = "semanticscholar"
	SourcePDFHeuristic    Source = "pdf-heuristic"
)

// Record is the common shape every metadata source is mapped into before
// merging. All fields except Source are optional; zero values mean
// "unknown". Authors are "Family, Given" strings for sources that split
// names (CrossRef, PDF embedded info) and flat display names otherwise,
// always in document order.
type Record struct {
	Title          string   `json:"title,omitempty"`
	Authors        []string `json:"authors,omitempty"`
	Year           int      `json:"year,omitempty"`
	Journal        string   `json:"journal,omitempty"`
	Abstract       string   `json:"abstract,omitempty"`
	DOI            string   `json:"doi,omitempty"`
	Type           string   `json:"type,omitempty"` // raw source type until mapped
	Volume         string   `json:"volume,omitempty"`
	Issue          string   `json:"issue,omitempty"`
	Pages          string   `json:"pages,omitempty"`
	Publisher      string   `json:"publisher,omitempty"`
	URL            string   `json:"url,omitempty"`
	ISSN           string   `json:"issn,omitempty"`
	ISBN           string   `json:"isbn,omitempty"`
	Language       string   `json:"language,omitempty"`
	ReferenceCount int      `json:"reference_count,omitempty"`
	CitationCount  int      `json:"citation_count,omitempty"`
	Source         Source   `json:"source"`
}

// Canonical publication types.
const (
	TypeJournalArticle  = "Journal Article"
	TypeConferencePaper = "Conference Paper"
	TypeBookChapter     = "Book Chapter"
	TypeThesis          = "Thesis"
	TypeTechnicalReport = "Technical Report"
	TypePreprint        = "Preprint"
)

// publicationTypes maps lowercased source-specific type strings to the
// canonical publication types. Keys cover CrossRef, OpenAlex and Semantic
// Scholar vocabularies.
var publicationTypes = map[string]string{
	// CrossRef
	"journal-article":     TypeJournalArticle,
	"proceedings-article": TypeConferencePaper,
	"book-chapter":        TypeBookChapter,
	"dissertation":        TypeThesis,
	"report":              TypeTechnicalReport,
	"posted-content":      TypePreprint,
	// OpenAlex
	"article":  TypeJournalArticle,
	"preprint": TypePreprint,
	"erratum":  TypeJournalArticle,
	// Semantic Scholar
	"journalarticle": TypeJournalArticle,
	"conference":     TypeConferencePaper,
	"review":         TypeJournalArticle,
	"booksection":    TypeBookChapter,
	"study":          TypeJournalArticle,
}

// MapPublicationType converts a source-specific publication type string to
// one of the canonical types. Unknown or empty input maps to Journal
// Article, the overwhelmingly common case for reference-manager entries.
func MapPublicationType(raw string) string {
	if mapped, ok := publicationTypes[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return mapped
	}
	return TypeJournalArticle
}

// Merge builds a record that prefers primary's value for every field when
// present and non-empty, falling back to secondary otherwise. Source is
// taken from primary unconditionally.
func Merge(primary, secondary Record) Record {
	out := Record{Source: primary.Source}
	out.Title = firstNonEmpty(primary.Title, secondary.Title)
	if len(primary.Authors) > 0 {
		out.Authors = primary.Authors
	} else {
		out.Authors = secondary.Authors
	}
	if primary.Year != 0 {
		out.Year = primary.Year
	} else {
		out.Year = secondary.Year
	}
	out.Journal = firstNonEmpty(primary.Journal, secondary.Journal)
	out.Abstract = firstNonEmpty(primary.Abstract, secondary.Abstract)
	out.DOI = firstNonEmpty(primary.DOI, secondary.DOI)
	out.Type = firstNonEmpty(primary.Type, secondary.Type)
	out.Volume = firstNonEmpty(primary.Volume, secondary.Volume)
	out.Issue = firstNonEmpty(primary.Issue, secondary.Issue)
	out.Pages = firstNonEmpty(primary.Pages, secondary.Pages)
	out.Publisher = firstNonEmpty(primary.Publisher, secondary.Publisher)
	out.URL = firstNonEmpty(primary.URL, secondary.URL)
	out.ISSN = firstNonEmpty(primary.ISSN, secondary.ISSN)
	out.ISBN = firstNonEmpty(primary.ISBN, secondary.ISBN)
	out.Language = firstNonEmpty(primary.Language, secondary.Language)
	if primary.ReferenceCount > 0 {
		out.ReferenceCount = primary.ReferenceCount
	} else {
		out.ReferenceCount = secondary.ReferenceCount
	}
	if primary.CitationCount > 0 {
		out.CitationCount = primary.CitationCount
	} else {
		out.CitationCount = secondary.CitationCount
	}
	return out
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
