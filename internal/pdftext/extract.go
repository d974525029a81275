package pdftext

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/refdeck/refdeck/internal/metadata"
)

const (
	maxTitleLen    = 300
	maxAbstractLen = 1000
	maxJournalLen  = 200
	minYear        = 1900
)

var (
	whitespacePattern   = regexp.MustCompile(`\s+`)
	leadingTokenPattern = regexp.MustCompile(`^\d+[.)]?\s+`)

	// "by J. Smith, A. Jones" or "Authors: ..." on its own line.
	bylinePattern = regexp.MustCompile(`(?im)^(?:by|authors?)\s*[:\s]\s*([A-Z][^\n]+)$`)

	// Sequences of "First M. Last" shaped tokens.
	namePattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z]\.)?\s+[A-Z][a-z]+(?:-[A-Z][a-z]+)?)\b`)

	yearPattern = regexp.MustCompile(`\b(19\d{2}|20[0-2]\d)\b`)

	// PDF creation dates look like "D:20210315120000Z"; the year is not
	// delimited, so no word boundaries here.
	creationYearPattern = regexp.MustCompile(`19\d{2}|20\d{2}`)

	abstractPattern = regexp.MustCompile(`(?is)(?:abstract|summary)\s*[:.\-]?\s+(.+)`)

	journalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)published in\s+([A-Z][^\n,.;]+)`),
		regexp.MustCompile(`\b(Journal of [A-Z][A-Za-z&\- ]+)`),
		regexp.MustCompile(`\b([A-Z][A-Za-z&\- ]+ Journal)\b`),
	}

	abstractBoundaries = []string{"introduction", "keywords", "1.", "references"}
)

// Extract guesses bibliographic fields from a document's page text and
// embedded metadata. It always returns a record with Source set to the
// PDF heuristic; fields it cannot guess stay empty except Year, which
// defaults to the current year.
func Extract(doc *Document) metadata.Record {
	return extract(doc, time.Now())
}

func extract(doc *Document, now time.Time) metadata.Record {
	text := doc.Text()
	return metadata.Record{
		Title:    extractTitle(text, doc.Info.Title),
		Authors:  extractAuthors(text, doc.Info.Author),
		Year:     extractYear(text, doc.Info.CreationDate, now),
		Abstract: extractAbstract(text),
		DOI:      metadata.ExtractDOI(text),
		Journal:  extractJournal(text),
		Source:   metadata.SourcePDFHeuristic,
	}
}

// extractTitle prefers the embedded-metadata title; otherwise the first
// text line longer than 10 characters, with any leading numeric token
// stripped.
func extractTitle(text, embedded string) string {
	if t := strings.TrimSpace(embedded); t != "" {
		return truncate(collapseWhitespace(t), maxTitleLen)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 10 {
			continue
		}
		line = leadingTokenPattern.ReplaceAllString(line, "")
		return truncate(collapseWhitespace(line), maxTitleLen)
	}
	return ""
}

// extractAuthors prefers the embedded-metadata author string, split on
// commas and semicolons. Otherwise it tries a byline pattern, then
// name-shaped token sequences. The first strategy that matches wins;
// partial matches are never combined.
func extractAuthors(text, embedded string) []string {
	if strings.TrimSpace(embedded) != "" {
		return splitNameList(embedded)
	}

	if m := bylinePattern.FindStringSubmatch(text); len(m) > 1 {
		if names := splitNameList(m[1]); len(names) > 0 {
			return names
		}
	}

	if matches := namePattern.FindAllString(text, 10); len(matches) > 0 {
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, collapseWhitespace(m))
		}
		return names
	}

	return nil
}

func splitNameList(s string) []string {
	var names []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		part = collapseWhitespace(strings.TrimSpace(part))
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

// extractYear prefers a valid 4-digit year in the embedded creation-date
// string. Otherwise it takes the most recent in-range year found anywhere
// in the text, defaulting to the current year. The maximum can pick up a
// reference-list year rather than the paper's own; the bias is accepted
// because front-matter years skew early (submission dates, copyrights).
func extractYear(text, creationDate string, now time.Time) int {
	maxValid := now.Year() + 1

	if m := creationYearPattern.FindString(creationDate); m != "" {
		if y, err := strconv.Atoi(m); err == nil && y >= minYear && y <= maxValid {
			return y
		}
	}

	best := 0
	for _, m := range yearPattern.FindAllString(text, -1) {
		y, err := strconv.Atoi(m)
		if err != nil || y < minYear || y > maxValid {
			continue
		}
		if y > best {
			best = y
		}
	}
	if best != 0 {
		return best
	}
	return now.Year()
}

// extractAbstract captures the block following "abstract" or "summary" up
// to the next blank line or section-boundary keyword.
func extractAbstract(text string) string {
	m := abstractPattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	body := m[1]

	cut := len(body)
	if i := strings.Index(body, "\n\n"); i >= 0 && i < cut {
		cut = i
	}
	lower := strings.ToLower(body)
	for _, boundary := range abstractBoundaries {
		if i := strings.Index(lower, boundary); i >= 0 && i < cut {
			cut = i
		}
	}
	return truncate(collapseWhitespace(strings.TrimSpace(body[:cut])), maxAbstractLen)
}

// extractJournal looks for "published in X", "Journal of X" or "X Journal"
// phrases.
func extractJournal(text string) string {
	for _, pattern := range journalPatterns {
		if m := pattern.FindStringSubmatch(text); len(m) > 1 {
			return truncate(collapseWhitespace(strings.TrimSpace(m[1])), maxJournalLen)
		}
	}
	return ""
}

func collapseWhitespace(s string) string {
	return whitespacePattern.ReplaceAllString(s, " ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max])
}
