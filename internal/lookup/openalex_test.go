package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/refdeck/refdeck/internal/metadata"
)

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{
			name:  "simple sentence",
			index: map[string][]int{"We": {0}, "infer": {1}, "trees": {2}},
			want:  "We infer trees",
		},
		{
			name:  "repeated word",
			index: map[string][]int{"the": {0, 2}, "more": {1}, "merrier": {3}},
			want:  "the more the merrier",
		},
		{
			name:  "gap positions skipped",
			index: map[string][]int{"alpha": {0}, "omega": {5}},
			want:  "alpha omega",
		},
		{
			name:  "empty index",
			index: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReconstructAbstract(tt.index); got != tt.want {
				t.Errorf("ReconstructAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenAlexSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/works" {
			t.Errorf("path = %q, want /works", r.URL.Path)
		}
		w.Write([]byte(`{
  "results": [
    {
      "title": "Adaptive Sampling Strategies",
      "authorships": [
        {"author": {"display_name": "Alice Johnson"}},
        {"author": {"display_name": "Bob Lee"}}
      ],
      "publication_year": 2020,
      "primary_location": {"source": {"display_name": "PLOS Computational Biology"}},
      "abstract_inverted_index": {"Sampling": [0], "matters": [1]},
      "doi": "https://doi.org/10.1371/journal.pcbi.1007999",
      "type": "article",
      "biblio": {"volume": "16", "issue": "5", "first_page": "1", "last_page": "22"},
      "cited_by_count": 31
    }
  ]
}`))
	}))
	defer srv.Close()

	c := NewOpenAlex(WithOpenAlexBaseURL(srv.URL))
	rec, err := c.Search(context.Background(), "adaptive sampling strategies")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec == nil {
		t.Fatal("Search() = nil, want record")
	}

	if rec.Title != "Adaptive Sampling Strategies" {
		t.Errorf("Title = %q", rec.Title)
	}
	if len(rec.Authors) != 2 || rec.Authors[0] != "Alice Johnson" {
		t.Errorf("Authors = %v, want flat display names", rec.Authors)
	}
	if rec.Year != 2020 {
		t.Errorf("Year = %d", rec.Year)
	}
	if rec.Journal != "PLOS Computational Biology" {
		t.Errorf("Journal = %q", rec.Journal)
	}
	if rec.Abstract != "Sampling matters" {
		t.Errorf("Abstract = %q, want reconstructed from inverted index", rec.Abstract)
	}
	if rec.DOI != "10.1371/journal.pcbi.1007999" {
		t.Errorf("DOI = %q, want URL prefix stripped", rec.DOI)
	}
	if rec.Volume != "16" || rec.Issue != "5" || rec.Pages != "1-22" {
		t.Errorf("biblio = %q/%q/%q", rec.Volume, rec.Issue, rec.Pages)
	}
	if rec.CitationCount != 31 {
		t.Errorf("CitationCount = %d", rec.CitationCount)
	}
	if rec.Source != metadata.SourceOpenAlex {
		t.Errorf("Source = %q", rec.Source)
	}
}

func TestOpenAlexSearch_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	c := NewOpenAlex(WithOpenAlexBaseURL(srv.URL))
	rec, err := c.Search(context.Background(), "nothing matches this")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec != nil {
		t.Errorf("Search() = %v, want nil", rec)
	}
}

func TestOpenAlexJournalStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sources" {
			t.Errorf("path = %q, want /sources", r.URL.Path)
		}
		w.Write([]byte(`{
  "results": [
    {
      "works_count": 8421,
      "summary_stats": {"2yr_mean_citedness": 4.2, "h_index": 310}
    }
  ]
}`))
	}))
	defer srv.Close()

	c := NewOpenAlex(WithOpenAlexBaseURL(srv.URL))
	stats, err := c.JournalStats(context.Background(), "Systematic Biology")
	if err != nil {
		t.Fatalf("JournalStats() error = %v", err)
	}
	if stats == nil {
		t.Fatal("JournalStats() = nil, want stats")
	}
	if stats.WorksCount != 8421 {
		t.Errorf("WorksCount = %d", stats.WorksCount)
	}
	if stats.TwoYearMeanCitedness == nil || *stats.TwoYearMeanCitedness != 4.2 {
		t.Errorf("TwoYearMeanCitedness = %v", stats.TwoYearMeanCitedness)
	}
	if stats.HIndex == nil || *stats.HIndex != 310 {
		t.Errorf("HIndex = %v", stats.HIndex)
	}
}

func TestOpenAlexJournalStats_MissingStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"works_count": 12, "summary_stats": {}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAlex(WithOpenAlexBaseURL(srv.URL))
	stats, err := c.JournalStats(context.Background(), "Tiny Venue")
	if err != nil {
		t.Fatalf("JournalStats() error = %v", err)
	}
	if stats.TwoYearMeanCitedness != nil || stats.HIndex != nil {
		t.Errorf("missing statistics should be nil, got %v / %v", stats.TwoYearMeanCitedness, stats.HIndex)
	}
}
