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
	"github.com/refdeck/refdeck/internal/ranking"
)

const (
	// OpenAlexBaseURL is the OpenAlex REST API base URL.
	OpenAlexBaseURL = "https://api.openalex.org"

	// openAlexRateLimit stays inside the anonymous 10 req/s policy.
	openAlexRateLimit = 5.0

	openAlexTimeout = 30 * time.Second

	maxReconstructedAbstractLen = 1000
)

// OpenAlex queries the OpenAlex works and sources APIs. It doubles as the
// bibliometric source for journal ranking.
type OpenAlex struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// OpenAlexOption configures an OpenAlex client.
type OpenAlexOption func(*OpenAlex)

// WithOpenAlexHTTPClient sets a custom HTTP client.
func WithOpenAlexHTTPClient(hc *http.Client) OpenAlexOption {
	return func(c *OpenAlex) { c.httpClient = hc }
}

// WithOpenAlexBaseURL sets a custom base URL (for testing).
func WithOpenAlexBaseURL(u string) OpenAlexOption {
	return func(c *OpenAlex) { c.baseURL = u }
}

// WithOpenAlexMailto adds a contact address, which OpenAlex rewards with
// the polite pool.
func WithOpenAlexMailto(addr string) OpenAlexOption {
	return func(c *OpenAlex) { c.mailto = addr }
}

// NewOpenAlex creates an OpenAlex client.
func NewOpenAlex(opts ...OpenAlexOption) *OpenAlex {
	c := &OpenAlex{
		httpClient: &http.Client{Timeout: openAlexTimeout},
		limiter:    rate.NewLimiter(rate.Limit(openAlexRateLimit), 1),
		baseURL:    OpenAlexBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements Source.
func (c *OpenAlex) Name() metadata.Source { return metadata.SourceOpenAlex }

// openAlexWork is the subset of an OpenAlex work record we consume.
type openAlexWork struct {
	Title       string `json:"title"`
	Authorships []struct {
		Author struct {
			DisplayName string `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
	PublicationYear int `json:"publication_year"`
	PrimaryLocation *struct {
		Source *struct {
			DisplayName string `json:"display_name"`
		} `json:"source"`
	} `json:"primary_location"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
	DOI                   string           `json:"doi"`
	Type                  string           `json:"type"`
	Biblio                struct {
		Volume    string `json:"volume"`
		Issue     string `json:"issue"`
		FirstPage string `json:"first_page"`
		LastPage  string `json:"last_page"`
	} `json:"biblio"`
	CitedByCount         int `json:"cited_by_count"`
	ReferencedWorksCount int `json:"referenced_works_count"`
}

// Search implements Source: top-1 work by relevance. Returns (nil, nil)
// when nothing matches.
func (c *OpenAlex) Search(ctx context.Context, title string) (*metadata.Record, error) {
	q := url.Values{}
	q.Set("search", title)
	q.Set("per-page", "1")
	if c.mailto != "" {
		q.Set("mailto", c.mailto)
	}

	var envelope struct {
		Results []openAlexWork `json:"results"`
	}
	if err := c.get(ctx, c.baseURL+"/works?"+q.Encode(), &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Results) == 0 {
		return nil, nil
	}

	rec := mapOpenAlexWork(envelope.Results[0])
	return &rec, nil
}

// JournalStats implements ranking.BibliometricSource using the OpenAlex
// sources endpoint: top-1 source matching the name, with its summary
// statistics. A missing venue is (nil, nil).
func (c *OpenAlex) JournalStats(ctx context.Context, name string) (*ranking.SourceStats, error) {
	q := url.Values{}
	q.Set("search", name)
	q.Set("per-page", "1")
	if c.mailto != "" {
		q.Set("mailto", c.mailto)
	}

	var envelope struct {
		Results []struct {
			WorksCount   int `json:"works_count"`
			SummaryStats struct {
				TwoYearMeanCitedness *float64 `json:"2yr_mean_citedness"`
				HIndex               *int     `json:"h_index"`
			} `json:"summary_stats"`
		} `json:"results"`
	}
	if err := c.get(ctx, c.baseURL+"/sources?"+q.Encode(), &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Results) == 0 {
		return nil, nil
	}

	top := envelope.Results[0]
	return &ranking.SourceStats{
		WorksCount:           top.WorksCount,
		TwoYearMeanCitedness: top.SummaryStats.TwoYearMeanCitedness,
		HIndex:               top.SummaryStats.HIndex,
	}, nil
}

func (c *OpenAlex) get(ctx context.Context, u string, out any) error {
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
		return fmt.Errorf("openalex request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openalex: HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("openalex: decoding response: %w", err)
	}
	return nil
}

func mapOpenAlexWork(w openAlexWork) metadata.Record {
	rec := metadata.Record{
		Title:          w.Title,
		Year:           w.PublicationYear,
		Abstract:       ReconstructAbstract(w.AbstractInvertedIndex),
		DOI:            metadata.NormalizeDOI(w.DOI),
		Type:           w.Type,
		Volume:         w.Biblio.Volume,
		Issue:          w.Biblio.Issue,
		CitationCount:  w.CitedByCount,
		ReferenceCount: w.ReferencedWorksCount,
		Source:         metadata.SourceOpenAlex,
	}
	for _, a := range w.Authorships {
		if name := strings.TrimSpace(a.Author.DisplayName); name != "" {
			rec.Authors = append(rec.Authors, name)
		}
	}
	if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil {
		rec.Journal = w.PrimaryLocation.Source.DisplayName
	}
	if w.Biblio.FirstPage != "" {
		rec.Pages = w.Biblio.FirstPage
		if w.Biblio.LastPage != "" && w.Biblio.LastPage != w.Biblio.FirstPage {
			rec.Pages += "-" + w.Biblio.LastPage
		}
	}
	return rec
}

// ReconstructAbstract inverts OpenAlex's word-to-positions index back into
// text: each word is placed at each of its token positions and the
// non-empty slots joined with single spaces. Lossy but order-preserving;
// positions never filled are simply absent.
func ReconstructAbstract(index map[string][]int) string {
	if len(index) == 0 {
		return ""
	}

	maxPos := -1
	for _, positions := range index {
		for _, p := range positions {
			if p > maxPos {
				maxPos = p
			}
		}
	}
	if maxPos < 0 {
		return ""
	}

	slots := make([]string, maxPos+1)
	for word, positions := range index {
		for _, p := range positions {
			if p >= 0 {
				slots[p] = word
			}
		}
	}

	words := make([]string, 0, len(slots))
	for _, w := range slots {
		if w != "" {
			words = append(words, w)
		}
	}

	abstract := strings.Join(words, " ")
	if len(abstract) > maxReconstructedAbstractLen {
		abstract = abstract[:maxReconstructedAbstractLen]
	}
	return abstract
}
