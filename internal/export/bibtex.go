// Package export provides functions to export references to citation
// formats.
package export

import (
	"fmt"
	"strings"

	"github.com/refdeck/refdeck/internal/metadata"
	"github.com/refdeck/refdeck/internal/reference"
)

// ToBibTeX converts a reference to BibTeX format.
func ToBibTeX(ref reference.Reference) string {
	entryType := determineEntryType(ref)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, ref.ID))

	if len(ref.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(ref.Authors)))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(ref.Title)))

	if ref.Journal != "" {
		fieldName := "journal"
		switch entryType {
		case "inproceedings":
			fieldName = "booktitle"
		case "incollection":
			fieldName = "booktitle"
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", fieldName, escapeLatex(ref.Journal)))
	}

	b.WriteString(fmt.Sprintf("  year = {%d},\n", ref.Year))

	if ref.Volume != "" {
		b.WriteString(fmt.Sprintf("  volume = {%s},\n", escapeLatex(ref.Volume)))
	}
	if ref.Issue != "" {
		b.WriteString(fmt.Sprintf("  number = {%s},\n", escapeLatex(ref.Issue)))
	}
	if ref.Pages != "" {
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", strings.ReplaceAll(ref.Pages, "-", "--")))
	}
	if ref.Publisher != "" {
		b.WriteString(fmt.Sprintf("  publisher = {%s},\n", escapeLatex(ref.Publisher)))
	}
	if ref.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", ref.DOI))
	}
	if ref.URL != "" {
		b.WriteString(fmt.Sprintf("  url = {%s},\n", ref.URL))
	}
	if ref.Abstract != "" {
		b.WriteString(fmt.Sprintf("  abstract = {%s},\n", escapeLatex(ref.Abstract)))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts multiple references to BibTeX format.
func ToBibTeXList(refs []reference.Reference) string {
	var entries []string
	for _, ref := range refs {
		entries = append(entries, ToBibTeX(ref))
	}
	return strings.Join(entries, "\n")
}

// determineEntryType returns the BibTeX entry type for a reference, based
// on the canonical publication type with a venue-name fallback for records
// that never got one.
func determineEntryType(ref reference.Reference) string {
	switch ref.Type {
	case metadata.TypeConferencePaper:
		return "inproceedings"
	case metadata.TypeBookChapter:
		return "incollection"
	case metadata.TypeThesis:
		return "phdthesis"
	case metadata.TypeTechnicalReport:
		return "techreport"
	case metadata.TypePreprint, metadata.TypeJournalArticle:
		return "article"
	}

	venue := strings.ToLower(ref.Journal)
	if strings.Contains(venue, "proceedings") ||
		strings.Contains(venue, "conference") ||
		strings.Contains(venue, "workshop") ||
		strings.Contains(venue, "symposium") {
		return "inproceedings"
	}

	return "article"
}

// formatAuthors formats authors in BibTeX style: "Last, First and Last,
// First". Author strings already in "Family, Given" form pass through;
// flat display names are rewritten around the family name.
func formatAuthors(authors []string) string {
	var formatted []string
	for _, a := range authors {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if strings.Contains(a, ",") {
			formatted = append(formatted, a)
			continue
		}
		family := reference.FamilyName(a)
		given := strings.TrimSpace(strings.TrimSuffix(a, family))
		if given == "" {
			formatted = append(formatted, family)
		} else {
			formatted = append(formatted, fmt.Sprintf("%s, %s", family, given))
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
