package reference

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/refdeck/refdeck/internal/metadata"
)

// Stop words skipped when deriving the title suffix.
var suffixStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "and": true,
	"in": true, "on": true, "for": true, "to": true, "with": true,
}

// CiteKey generates a citation-style ID from a metadata record.
// Format: FamilyName + year + two-letter title suffix, e.g. "Matsen2010-pp".
// Not guaranteed globally unique; the storage layer resolves collisions
// before persisting.
func CiteKey(rec metadata.Record) string {
	family := "Unknown"
	if len(rec.Authors) > 0 {
		if f := sanitizeForCiteKey(FamilyName(rec.Authors[0])); f != "" {
			family = f
		}
	}

	year := rec.Year
	if year == 0 {
		year = 9999
	}

	return fmt.Sprintf("%s%d-%s", family, year, titleSuffix(rec.Title))
}

// sanitizeForCiteKey removes non-alphanumeric characters.
func sanitizeForCiteKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// titleSuffix creates a two-letter suffix from the first significant
// title words, padded with 'x'.
func titleSuffix(title string) string {
	var suffix strings.Builder
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if suffixStopWords[word] || word == "" {
			continue
		}
		suffix.WriteByte(word[0])
		if suffix.Len() >= 2 {
			break
		}
	}
	for suffix.Len() < 2 {
		suffix.WriteByte('x')
	}
	return suffix.String()
}
