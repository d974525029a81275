package metadata

import (
	"regexp"
	"strings"
)

// DOI extraction patterns in priority order. A prefixed DOI is more likely
// to be the document's own identifier than a bare match, which can come
// from the reference list.
var doiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`doi:\s*(10\.\d{4,9}/[^\s<>"]+)`),
	regexp.MustCompile(`(?:https?://)?(?:dx\.)?doi\.org/(10\.\d{4,9}/[^\s<>"]+)`),
	regexp.MustCompile(`DOI:\s*(10\.\d{4,9}/[^\s<>"]+)`),
	regexp.MustCompile(`\b(10\.\d{4,9}/[^\s<>"]+)`),
}

// validDOIPattern matches a bare DOI: "10." + at least 4 registrant digits
// + "/" + a non-empty suffix.
var validDOIPattern = regexp.MustCompile(`^10\.\d{4,}/\S+$`)

// jatsTagPattern matches JATS-namespaced tags (<jats:p>, </jats:italic>, ...)
// as returned in CrossRef abstracts.
var jatsTagPattern = regexp.MustCompile(`</?jats:[^>]*>`)

// anyTagPattern matches any remaining angle-bracket tag.
var anyTagPattern = regexp.MustCompile(`<[^>]*>`)

// whitespacePattern collapses runs of whitespace.
var whitespacePattern = regexp.MustCompile(`\s+`)

// ExtractDOI finds the best DOI candidate in free text. Patterns are tried
// in priority order and the first capturing-group match wins; trailing
// punctuation is stripped. Returns "" when no pattern matches.
func ExtractDOI(text string) string {
	for _, pattern := range doiPatterns {
		m := pattern.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		doi := strings.TrimRight(m[1], ".,;:!?")
		if doi != "" {
			return doi
		}
	}
	return ""
}

// IsValidDOI reports whether s is a DOI, tolerating a doi.org URL prefix
// and surrounding whitespace.
func IsValidDOI(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "https://doi.org/")
	return validDOIPattern.MatchString(s)
}

// NormalizeDOI strips URL and "DOI:" prefixes and lowercases, giving a
// stable form for comparison and deduplication.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}

// CleanAbstract strips JATS and any other angle-bracket tags from an
// abstract, decodes the five standard entities, and collapses whitespace.
// Idempotent on its own output.
func CleanAbstract(s string) string {
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&apos;", "'")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = jatsTagPattern.ReplaceAllString(s, " ")
	s = anyTagPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
