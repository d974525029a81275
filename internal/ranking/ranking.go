// Package ranking derives a coarse journal-quality tier (Q1 highest to Q4)
// from a journal name, using a curated table, live bibliometric statistics,
// and name-pattern heuristics, in that order.
package ranking

import (
	"context"
	"regexp"
	"strings"
)

// Tier is a journal-quality classification.
type Tier string

const (
	Q1 Tier = "Q1"
	Q2 Tier = "Q2"
	Q3 Tier = "Q3"
	Q4 Tier = "Q4"
)

// MinJournalNameLen is the shortest trimmed journal name worth resolving.
const MinJournalNameLen = 3

// minTrustedWorksCount gates the citation-rate statistic: low-volume venues
// produce noisy citedness numbers.
const minTrustedWorksCount = 100

// Citation-rate (2-year mean citedness) tier thresholds.
const (
	citednessQ1 = 3.0
	citednessQ2 = 1.5
	citednessQ3 = 0.5
)

// h-index tier thresholds, used when citedness is unavailable.
const (
	hIndexQ1 = 100
	hIndexQ2 = 50
	hIndexQ3 = 20
)

// SourceStats are the bibliometric statistics of one publication venue.
// Nil pointers mean the statistic was not reported.
type SourceStats struct {
	WorksCount           int
	TwoYearMeanCitedness *float64
	HIndex               *int
}

// BibliometricSource looks up live venue statistics by name. A nil record
// with nil error means the venue was not found.
type BibliometricSource interface {
	JournalStats(ctx context.Context, name string) (*SourceStats, error)
}

// Resolver resolves journal names to tiers. The bibliometric source is
// optional; without one, resolution uses only the curated table and the
// name-pattern heuristics.
type Resolver struct {
	stats BibliometricSource
}

// NewResolver creates a Resolver backed by the given bibliometric source,
// which may be nil.
func NewResolver(stats BibliometricSource) *Resolver {
	return &Resolver{stats: stats}
}

// Resolve determines the tier for a journal name, trying the curated
// table, then the bibliometric source, then the name-pattern heuristics,
// short-circuiting on the first answer. Returns ("", false) when the name
// is too short or no strategy produced a tier.
func (r *Resolver) Resolve(ctx context.Context, name string) (Tier, bool) {
	if len(strings.TrimSpace(name)) < MinJournalNameLen {
		return "", false
	}

	if tier, ok := lookupCurated(name); ok {
		return tier, true
	}
	if tier, ok := r.lookupBibliometric(ctx, name); ok {
		return tier, true
	}
	return lookupPattern(name)
}

// Tag returns the literal tag string stored on a reference, e.g.
// "Q1 Journal", or "" when no tier could be resolved.
func (r *Resolver) Tag(ctx context.Context, name string) string {
	tier, ok := r.Resolve(ctx, name)
	if !ok {
		return ""
	}
	return string(tier) + " Journal"
}

// lookupBibliometric derives a tier from live venue statistics. The
// citation rate is only trusted for venues above the works-count gate;
// otherwise the h-index is used if reported.
func (r *Resolver) lookupBibliometric(ctx context.Context, name string) (Tier, bool) {
	if r.stats == nil {
		return "", false
	}
	stats, err := r.stats.JournalStats(ctx, name)
	if err != nil || stats == nil {
		return "", false
	}

	if stats.WorksCount > minTrustedWorksCount && stats.TwoYearMeanCitedness != nil {
		return citednessTier(*stats.TwoYearMeanCitedness), true
	}
	if stats.HIndex != nil {
		return hIndexTier(*stats.HIndex), true
	}
	return "", false
}

func citednessTier(citedness float64) Tier {
	switch {
	case citedness >= citednessQ1:
		return Q1
	case citedness >= citednessQ2:
		return Q2
	case citedness >= citednessQ3:
		return Q3
	default:
		return Q4
	}
}

func hIndexTier(h int) Tier {
	switch {
	case h >= hIndexQ1:
		return Q1
	case h >= hIndexQ2:
		return Q2
	case h >= hIndexQ3:
		return Q3
	default:
		return Q4
	}
}

var namePunctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
var nameWhitespace = regexp.MustCompile(`\s+`)

// normalizeName lowercases, strips a leading "the", removes punctuation
// and collapses whitespace.
func normalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "the ")
	n = namePunctuation.ReplaceAllString(n, "")
	n = nameWhitespace.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}

// lookupCurated checks the curated table: exact match on the normalized
// name first, then a bidirectional substring match where the first table
// entry that matches wins. First-match (not longest-match) is deliberate:
// it mirrors the behavior users have come to rely on, so the table is kept
// ordered with specific entries ahead of generic ones.
func lookupCurated(name string) (Tier, bool) {
	n := normalizeName(name)
	if n == "" {
		return "", false
	}

	for _, e := range curatedJournals {
		if e.name == n {
			return e.tier, true
		}
	}
	for _, e := range curatedJournals {
		if strings.Contains(n, e.name) || strings.Contains(e.name, n) {
			return e.tier, true
		}
	}
	return "", false
}

// lookupPattern matches the name against fixed fragment lists, Q1 first.
func lookupPattern(name string) (Tier, bool) {
	n := strings.ToLower(name)
	for _, fragment := range q1Fragments {
		if strings.Contains(n, fragment) {
			return Q1, true
		}
	}
	for _, fragment := range q2Fragments {
		if strings.Contains(n, fragment) {
			return Q2, true
		}
	}
	return "", false
}
