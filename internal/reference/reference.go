// Package reference defines the canonical bibliographic record owned by
// the local library.
package reference

import (
	"strings"
	"time"

	"github.com/refdeck/refdeck/internal/metadata"
)

// Reference is the final merged, user-owned entity: a metadata record plus
// library bookkeeping. ID and DateAdded are immutable once set; everything
// else is editable by the user.
type Reference struct {
	ID string `json:"id"`

	metadata.Record

	JournalRanking string    `json:"journal_ranking,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	CollectionIDs  []string  `json:"collection_ids,omitempty"`
	Favorite       bool      `json:"favorite,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	PDFPath        string    `json:"pdf_path,omitempty"`
	DateAdded      time.Time `json:"date_added"`
}

// New builds a reference from a merged metadata record, assigning an ID
// and stamping DateAdded. The journal-ranking tag, when non-empty, is
// recorded both as a field and in the tag set; it is not re-validated
// afterwards.
func New(rec metadata.Record, rankingTag string, now time.Time) Reference {
	ref := Reference{
		ID:             CiteKey(rec),
		Record:         rec,
		JournalRanking: rankingTag,
		DateAdded:      now,
	}
	if rankingTag != "" {
		ref.Tags = append(ref.Tags, rankingTag)
	}
	return ref
}

// HasTag reports whether the reference carries the given tag.
func (r *Reference) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag adds a tag if not already present.
func (r *Reference) AddTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" || r.HasTag(tag) {
		return
	}
	r.Tags = append(r.Tags, tag)
}

// RemoveTag removes a tag if present.
func (r *Reference) RemoveTag(tag string) {
	for i, t := range r.Tags {
		if t == tag {
			r.Tags = append(r.Tags[:i], r.Tags[i+1:]...)
			return
		}
	}
}

// FamilyName extracts the family-name part of an author string, which may
// be "Family, Given" or a flat "First M. Last" display name.
func FamilyName(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return ""
	}
	if i := strings.Index(author, ","); i >= 0 {
		return strings.TrimSpace(author[:i])
	}
	parts := strings.Fields(author)
	return parts[len(parts)-1]
}
