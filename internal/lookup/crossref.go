package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/refdeck/refdeck/internal/metadata"
)

const (
	// CrossRefBaseURL is the CrossRef REST API base URL.
	CrossRefBaseURL = "https://api.crossref.org"

	// crossRefRateLimit keeps anonymous use well inside CrossRef's polite
	// pool expectations.
	crossRefRateLimit = 2.0

	crossRefTimeout = 30 * time.Second
)

// CrossRef queries the CrossRef works API, by title similarity or by DOI.
type CrossRef struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// CrossRefOption configures a CrossRef client.
type CrossRefOption func(*CrossRef)

// WithCrossRefHTTPClient sets a custom HTTP client.
func WithCrossRefHTTPClient(hc *http.Client) CrossRefOption {
	return func(c *CrossRef) { c.httpClient = hc }
}

// WithCrossRefBaseURL sets a custom base URL (for testing).
func WithCrossRefBaseURL(u string) CrossRefOption {
	return func(c *CrossRef) { c.baseURL = u }
}

// WithCrossRefMailto adds a contact address to requests, which routes them
// into CrossRef's polite pool.
func WithCrossRefMailto(addr string) CrossRefOption {
	return func(c *CrossRef) { c.mailto = addr }
}

// NewCrossRef creates a CrossRef client.
func NewCrossRef(opts ...CrossRefOption) *CrossRef {
	c := &CrossRef{
		httpClient: &http.Client{Timeout: crossRefTimeout},
		limiter:    rate.NewLimiter(rate.Limit(crossRefRateLimit), 1),
		baseURL:    CrossRefBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements Source.
func (c *CrossRef) Name() metadata.Source { return metadata.SourceCrossRef }

// crossRefWork is the subset of a CrossRef work record we consume.
type crossRefWork struct {
	Title          []string `json:"title"`
	ContainerTitle []string `json:"container-title"`
	Author         []struct {
		Given  string `json:"given"`
		Family string `json:"family"`
	} `json:"author"`
	Published struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"published"`
	Abstract            string   `json:"abstract"`
	DOI                 string   `json:"DOI"`
	Type                string   `json:"type"`
	Volume              string   `json:"volume"`
	Issue               string   `json:"issue"`
	Page                string   `json:"page"`
	Publisher           string   `json:"publisher"`
	URL                 string   `json:"URL"`
	ISSN                []string `json:"ISSN"`
	ISBN                []string `json:"ISBN"`
	Language            string   `json:"language"`
	ReferencesCount     int      `json:"references-count"`
	IsReferencedByCount int      `json:"is-referenced-by-count"`
}

// Search implements Source: top-1 result by CrossRef's title-similarity
// ranking. Returns (nil, nil) when nothing matches.
func (c *CrossRef) Search(ctx context.Context, title string) (*metadata.Record, error) {
	q := url.Values{}
	q.Set("query.title", title)
	q.Set("rows", "1")
	if c.mailto != "" {
		q.Set("mailto", c.mailto)
	}

	var envelope struct {
		Message struct {
			Items []crossRefWork `json:"items"`
		} `json:"message"`
	}
	if err := c.get(ctx, c.baseURL+"/works?"+q.Encode(), &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Message.Items) == 0 {
		return nil, nil
	}

	rec := mapCrossRefWork(envelope.Message.Items[0])
	return &rec, nil
}

// LookupDOI fetches a single work by exact DOI. Used for DOI-based refresh;
// independent of the title search but sharing the response mapping.
func (c *CrossRef) LookupDOI(ctx context.Context, doi string) (*metadata.Record, error) {
	u := c.baseURL + "/works/" + url.PathEscape(metadata.NormalizeDOI(doi))
	if c.mailto != "" {
		u += "?mailto=" + url.QueryEscape(c.mailto)
	}

	var envelope struct {
		Message crossRefWork `json:"message"`
	}
	if err := c.get(ctx, u, &envelope); err != nil {
		return nil, err
	}
	if envelope.Message.DOI == "" && len(envelope.Message.Title) == 0 {
		return nil, nil
	}

	rec := mapCrossRefWork(envelope.Message)
	return &rec, nil
}

func (c *CrossRef) get(ctx context.Context, u string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("crossref request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("crossref: HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("crossref: decoding response: %w", err)
	}
	return nil
}

func mapCrossRefWork(w crossRefWork) metadata.Record {
	rec := metadata.Record{
		Abstract:       metadata.CleanAbstract(w.Abstract),
		DOI:            w.DOI,
		Type:           w.Type,
		Volume:         w.Volume,
		Issue:          w.Issue,
		Pages:          w.Page,
		Publisher:      w.Publisher,
		URL:            w.URL,
		Language:       w.Language,
		ReferenceCount: w.ReferencesCount,
		CitationCount:  w.IsReferencedByCount,
		Source:         metadata.SourceCrossRef,
	}
	if len(w.Title) > 0 {
		rec.Title = w.Title[0]
	}
	if len(w.ContainerTitle) > 0 {
		rec.Journal = w.ContainerTitle[0]
	}
	if len(w.ISSN) > 0 {
		rec.ISSN = w.ISSN[0]
	}
	if len(w.ISBN) > 0 {
		rec.ISBN = w.ISBN[0]
	}
	for _, a := range w.Author {
		switch {
		case a.Family != "" && a.Given != "":
			rec.Authors = append(rec.Authors, a.Family+", "+a.Given)
		case a.Family != "":
			rec.Authors = append(rec.Authors, a.Family)
		case a.Given != "":
			rec.Authors = append(rec.Authors, a.Given)
		}
	}
	if parts := w.Published.DateParts; len(parts) > 0 && len(parts[0]) > 0 {
		rec.Year = parts[0][0]
	}
	if rec.Type == "" {
		rec.Type = "journal-article"
	}
	return rec
}
