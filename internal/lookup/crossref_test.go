package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/refdeck/refdeck/internal/metadata"
)

const crossRefSearchBody = `{
  "message": {
    "items": [
      {
        "title": ["Deep Phylogenetic Inference"],
        "container-title": ["Systematic Biology"],
        "author": [
          {"given": "Erick", "family": "Matsen"},
          {"given": "Jane", "family": "Doe"}
        ],
        "published": {"date-parts": [[2021, 3, 15]]},
        "abstract": "<jats:p>We infer <jats:italic>deep</jats:italic> trees.</jats:p>",
        "DOI": "10.1093/sysbio/syab001",
        "type": "journal-article",
        "volume": "70",
        "issue": "2",
        "page": "210-224",
        "publisher": "Oxford University Press",
        "URL": "https://doi.org/10.1093/sysbio/syab001",
        "ISSN": ["1063-5157"],
        "language": "en",
        "references-count": 48,
        "is-referenced-by-count": 12
      }
    ]
  }
}`

func TestCrossRefSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/works" {
			t.Errorf("path = %q, want /works", r.URL.Path)
		}
		if got := r.URL.Query().Get("rows"); got != "1" {
			t.Errorf("rows = %q, want 1", got)
		}
		if got := r.URL.Query().Get("query.title"); got != "deep phylogenetic inference" {
			t.Errorf("query.title = %q", got)
		}
		w.Write([]byte(crossRefSearchBody))
	}))
	defer srv.Close()

	c := NewCrossRef(WithCrossRefBaseURL(srv.URL))
	rec, err := c.Search(context.Background(), "deep phylogenetic inference")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec == nil {
		t.Fatal("Search() = nil, want record")
	}

	if rec.Title != "Deep Phylogenetic Inference" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Journal != "Systematic Biology" {
		t.Errorf("Journal = %q", rec.Journal)
	}
	if len(rec.Authors) != 2 || rec.Authors[0] != "Matsen, Erick" {
		t.Errorf("Authors = %v, want Family, Given order", rec.Authors)
	}
	if rec.Year != 2021 {
		t.Errorf("Year = %d, want 2021", rec.Year)
	}
	if rec.Abstract != "We infer deep trees." {
		t.Errorf("Abstract = %q, want JATS tags cleaned", rec.Abstract)
	}
	if rec.DOI != "10.1093/sysbio/syab001" {
		t.Errorf("DOI = %q, want pass-through", rec.DOI)
	}
	if rec.Volume != "70" || rec.Issue != "2" || rec.Pages != "210-224" {
		t.Errorf("biblio = %q/%q/%q", rec.Volume, rec.Issue, rec.Pages)
	}
	if rec.ISSN != "1063-5157" {
		t.Errorf("ISSN = %q", rec.ISSN)
	}
	if rec.ReferenceCount != 48 || rec.CitationCount != 12 {
		t.Errorf("counts = %d/%d", rec.ReferenceCount, rec.CitationCount)
	}
	if rec.Source != metadata.SourceCrossRef {
		t.Errorf("Source = %q", rec.Source)
	}
}

func TestCrossRefSearch_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": {"items": []}}`))
	}))
	defer srv.Close()

	c := NewCrossRef(WithCrossRefBaseURL(srv.URL))
	rec, err := c.Search(context.Background(), "nothing matches this")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec != nil {
		t.Errorf("Search() = %v, want nil for empty result set", rec)
	}
}

func TestCrossRefSearch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewCrossRef(WithCrossRefBaseURL(srv.URL))
	if _, err := c.Search(context.Background(), "whatever title here"); err == nil {
		t.Error("Search() error = nil, want error on non-200")
	}
}

func TestCrossRefLookupDOI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/works/10.1093/sysbio/syab001" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{
  "message": {
    "title": ["Deep Phylogenetic Inference"],
    "DOI": "10.1093/sysbio/syab001",
    "type": "journal-article"
  }
}`))
	}))
	defer srv.Close()

	c := NewCrossRef(WithCrossRefBaseURL(srv.URL))
	rec, err := c.LookupDOI(context.Background(), "https://doi.org/10.1093/sysbio/syab001")
	if err != nil {
		t.Fatalf("LookupDOI() error = %v", err)
	}
	if rec == nil || rec.Title != "Deep Phylogenetic Inference" {
		t.Errorf("LookupDOI() = %v", rec)
	}
}

func TestCrossRef_TypeDefault(t *testing.T) {
	rec := mapCrossRefWork(crossRefWork{Title: []string{"T"}})
	if rec.Type != "journal-article" {
		t.Errorf("Type = %q, want journal-article default", rec.Type)
	}
}
