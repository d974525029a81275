package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/refdeck/refdeck/internal/metadata"
)

func TestSemanticScholarSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/paper/search" {
			t.Errorf("path = %q, want /paper/search", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("limit = %q, want 1", got)
		}
		if got := r.URL.Query().Get("fields"); got == "" {
			t.Error("fields parameter missing")
		}
		w.Write([]byte(`{
  "data": [
    {
      "title": "Graph Attention Networks",
      "abstract": "We present graph attention networks.",
      "year": 2018,
      "venue": "",
      "publicationVenue": {"name": "ICLR"},
      "authors": [{"name": "Petar Velickovic"}, {"name": "Guillem Cucurull"}],
      "externalIds": {"DOI": "10.48550/arXiv.1710.10903"},
      "publicationTypes": ["Conference"],
      "citationCount": 9000,
      "referenceCount": 45,
      "url": "https://www.semanticscholar.org/paper/abc"
    }
  ]
}`))
	}))
	defer srv.Close()

	c := NewSemanticScholar(WithSemanticScholarBaseURL(srv.URL))
	rec, err := c.Search(context.Background(), "graph attention networks")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec == nil {
		t.Fatal("Search() = nil, want record")
	}

	if rec.Title != "Graph Attention Networks" {
		t.Errorf("Title = %q", rec.Title)
	}
	if len(rec.Authors) != 2 || rec.Authors[0] != "Petar Velickovic" {
		t.Errorf("Authors = %v, want flat display names", rec.Authors)
	}
	if rec.Journal != "ICLR" {
		t.Errorf("Journal = %q, want publicationVenue fallback", rec.Journal)
	}
	if rec.DOI != "10.48550/arXiv.1710.10903" {
		t.Errorf("DOI = %q", rec.DOI)
	}
	if rec.Type != "Conference" {
		t.Errorf("Type = %q", rec.Type)
	}
	if rec.Volume != "" || rec.Issue != "" || rec.Pages != "" {
		t.Errorf("volume/issue/pages must be empty for this source, got %q/%q/%q",
			rec.Volume, rec.Issue, rec.Pages)
	}
	if rec.CitationCount != 9000 || rec.ReferenceCount != 45 {
		t.Errorf("counts = %d/%d", rec.CitationCount, rec.ReferenceCount)
	}
	if rec.Source != metadata.SourceSemanticScholar {
		t.Errorf("Source = %q", rec.Source)
	}
}

func TestSemanticScholarSearch_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	c := NewSemanticScholar(WithSemanticScholarBaseURL(srv.URL))
	rec, err := c.Search(context.Background(), "nothing matches this")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec != nil {
		t.Errorf("Search() = %v, want nil", rec)
	}
}

func TestSemanticScholarSearch_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewSemanticScholar(WithSemanticScholarBaseURL(srv.URL))
	if _, err := c.Search(context.Background(), "whatever title here"); err == nil {
		t.Error("Search() error = nil, want error on 429")
	}
}
