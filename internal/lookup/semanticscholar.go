package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/refdeck/refdeck/internal/metadata"
)

const (
	// SemanticScholarBaseURL is the Semantic Scholar Graph API base URL.
	SemanticScholarBaseURL = "https://api.semanticscholar.org/graph/v1"

	// semanticScholarRateLimit respects the anonymous shared pool, which
	// throttles aggressively.
	semanticScholarRateLimit = 1.0

	semanticScholarTimeout = 30 * time.Second

	// semanticScholarFields are the fields requested on every search.
	semanticScholarFields = "title,abstract,authors,year,venue,publicationVenue,externalIds,publicationTypes,citationCount,referenceCount,url"
)

// SemanticScholar queries the Semantic Scholar Graph API paper search.
type SemanticScholar struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// SemanticScholarOption configures a SemanticScholar client.
type SemanticScholarOption func(*SemanticScholar)

// WithSemanticScholarHTTPClient sets a custom HTTP client.
func WithSemanticScholarHTTPClient(hc *http.Client) SemanticScholarOption {
	return func(c *SemanticScholar) { c.httpClient = hc }
}

// WithSemanticScholarBaseURL sets a custom base URL (for testing).
func WithSemanticScholarBaseURL(u string) SemanticScholarOption {
	return func(c *SemanticScholar) { c.baseURL = u }
}

// NewSemanticScholar creates a Semantic Scholar client.
func NewSemanticScholar(opts ...SemanticScholarOption) *SemanticScholar {
	c := &SemanticScholar{
		httpClient: &http.Client{Timeout: semanticScholarTimeout},
		limiter:    rate.NewLimiter(rate.Limit(semanticScholarRateLimit), 1),
		baseURL:    SemanticScholarBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements Source.
func (c *SemanticScholar) Name() metadata.Source { return metadata.SourceSemanticScholar }

// s2Paper is the subset of a Semantic Scholar paper record we consume.
// The Graph API has no volume/issue/pages, so those stay empty.
type s2Paper struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Year     int    `json:"year"`
	Venue    string `json:"venue"`
	Authors  []struct {
		Name string `json:"name"`
	} `json:"authors"`
	PublicationVenue *struct {
		Name string `json:"name"`
	} `json:"publicationVenue"`
	ExternalIDs struct {
		DOI string `json:"DOI"`
	} `json:"externalIds"`
	PublicationTypes []string `json:"publicationTypes"`
	CitationCount    int      `json:"citationCount"`
	ReferenceCount   int      `json:"referenceCount"`
	URL              string   `json:"url"`
}

// Search implements Source: top-1 paper by relevance. Returns (nil, nil)
// when nothing matches.
func (c *SemanticScholar) Search(ctx context.Context, title string) (*metadata.Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("query", title)
	q.Set("limit", "1")
	q.Set("fields", semanticScholarFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/paper/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("semantic scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semantic scholar: HTTP %d", resp.StatusCode)
	}

	var envelope struct {
		Data []s2Paper `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("semantic scholar: decoding response: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil, nil
	}

	rec := mapS2Paper(envelope.Data[0])
	return &rec, nil
}

func mapS2Paper(p s2Paper) metadata.Record {
	rec := metadata.Record{
		Title:          p.Title,
		Year:           p.Year,
		Journal:        p.Venue,
		Abstract:       p.Abstract,
		DOI:            p.ExternalIDs.DOI,
		URL:            p.URL,
		CitationCount:  p.CitationCount,
		ReferenceCount: p.ReferenceCount,
		Source:         metadata.SourceSemanticScholar,
	}
	if rec.Journal == "" && p.PublicationVenue != nil {
		rec.Journal = p.PublicationVenue.Name
	}
	for _, a := range p.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			rec.Authors = append(rec.Authors, name)
		}
	}
	if len(p.PublicationTypes) > 0 {
		rec.Type = p.PublicationTypes[0]
	}
	return rec
}
