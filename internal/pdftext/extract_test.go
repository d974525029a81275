package pdftext

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/refdeck/refdeck/internal/metadata"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		embedded string
		want     string
	}{
		{
			name:     "embedded metadata preferred",
			text:     "Some First Line That Is Long Enough\n",
			embedded: "The Actual   Title",
			want:     "The Actual Title",
		},
		{
			name: "first substantial line",
			text: "short\nDeep Learning for Phylogenetic Inference\nJ. Smith",
			want: "Deep Learning for Phylogenetic Inference",
		},
		{
			name: "leading numeric token stripped",
			text: "1. Deep Learning for Phylogenetic Inference\n",
			want: "Deep Learning for Phylogenetic Inference",
		},
		{
			name: "no usable line",
			text: "short\ntiny\n",
			want: "",
		},
		{
			name: "long title truncated",
			text: strings.Repeat("word ", 100),
			want: strings.TrimSpace(strings.Repeat("word ", 100))[:300],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractTitle(tt.text, tt.embedded)
			if got != strings.TrimSpace(tt.want) {
				t.Errorf("extractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractAuthors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		embedded string
		want     []string
	}{
		{
			name:     "embedded author string split",
			embedded: "Smith, John; Doe, Jane",
			want:     []string{"Smith", "John", "Doe", "Jane"},
		},
		{
			name: "byline pattern",
			text: "A Great Paper\nby Alice Johnson, Bob Lee\nAbstract: ...",
			want: []string{"Alice Johnson", "Bob Lee"},
		},
		{
			name: "name token sequences",
			text: "a lowercase heading line\nAlice B. Johnson Robert Lee\n",
			want: []string{"Alice B. Johnson", "Robert Lee"},
		},
		{
			name: "nothing found",
			text: "no names here\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAuthors(tt.text, tt.embedded)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractAuthors() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		creationDate string
		want         int
	}{
		{
			name:         "creation date preferred",
			text:         "published 2019",
			creationDate: "D:20210315120000Z",
			want:         2021,
		},
		{
			name: "max valid year from text",
			text: "founded 1995, revised 2010, projected 2099",
			want: 2010, // 2099 is out of range, max of the rest wins
		},
		{
			name: "default to current year",
			text: "no year tokens",
			want: 2024,
		},
		{
			name:         "invalid creation date falls through to text",
			creationDate: "D:18501231",
			text:         "copyright 2008",
			want:         2008,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractYear(tt.text, tt.creationDate, testNow)
			if got != tt.want {
				t.Errorf("extractYear() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExtractAbstract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "up to blank line",
			text: "Abstract: We present a new\nmethod for things.\n\nThe rest of the paper.",
			want: "We present a new method for things.",
		},
		{
			name: "up to section keyword",
			text: "Abstract We present a method. Keywords: stuff, things",
			want: "We present a method.",
		},
		{
			name: "summary synonym",
			text: "Summary: Short summary text.\n\nBody",
			want: "Short summary text.",
		},
		{
			name: "absent",
			text: "No marker in this text.",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAbstract(tt.text)
			if got != tt.want {
				t.Errorf("extractAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJournal(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"published in", "First published in Nature Methods 2021", "Nature Methods 2021"},
		{"journal of", "appears in Journal of Molecular Biology vol 3", "Journal of Molecular Biology vol"},
		{"x journal", "The Astrophysical Journal, 900:1", "The Astrophysical Journal"},
		{"absent", "no venue named", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJournal(tt.text)
			if got != tt.want {
				t.Errorf("extractJournal() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_AlwaysReturnsRecord(t *testing.T) {
	doc := &Document{Pages: []string{""}}
	rec := extract(doc, testNow)

	if rec.Source != metadata.SourcePDFHeuristic {
		t.Errorf("Source = %q, want %q", rec.Source, metadata.SourcePDFHeuristic)
	}
	if rec.Year != 2024 {
		t.Errorf("Year = %d, want current year default", rec.Year)
	}
	if rec.Title != "" || len(rec.Authors) != 0 {
		t.Errorf("empty document should produce empty title/authors, got %q / %v", rec.Title, rec.Authors)
	}
}

func TestExtract_FullFrontMatter(t *testing.T) {
	doc := &Document{
		Pages: []string{
			"Phylogenetic Placement of Short Reads\n" +
				"by Erick Matsen, Aaron Gallagher\n" +
				"Abstract: We describe an algorithm for placement.\n\n" +
				"1. Introduction\n" +
				"doi: 10.1186/1471-2105-11-538\n" +
				"BMC Bioinformatics 2010",
		},
	}
	rec := extract(doc, testNow)

	if rec.Title != "Phylogenetic Placement of Short Reads" {
		t.Errorf("Title = %q", rec.Title)
	}
	if want := []string{"Erick Matsen", "Aaron Gallagher"}; !reflect.DeepEqual(rec.Authors, want) {
		t.Errorf("Authors = %v, want %v", rec.Authors, want)
	}
	if rec.Year != 2010 {
		t.Errorf("Year = %d, want 2010", rec.Year)
	}
	if rec.DOI != "10.1186/1471-2105-11-538" {
		t.Errorf("DOI = %q", rec.DOI)
	}
	if rec.Abstract != "We describe an algorithm for placement." {
		t.Errorf("Abstract = %q", rec.Abstract)
	}
}
