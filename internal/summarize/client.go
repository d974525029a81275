// Package summarize extracts structured review fields from full paper text
// through a chat-completion endpoint, falling back across an ordered list
// of models.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// BaseURL is the default OpenAI-compatible chat-completion endpoint.
	BaseURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout is the default HTTP request timeout. Generation is
	// slow, so this is much longer than the lookup clients use.
	DefaultTimeout = 2 * time.Minute

	// maxInputChars caps the document text sent per request.
	maxInputChars = 24000
)

// DefaultModels is the fallback order tried by Summarize. Models that the
// endpoint rejects as unknown (400/404) are skipped; a 401 aborts the
// whole chain.
var DefaultModels = []string{
	"openai/gpt-4o-mini",
	"anthropic/claude-3.5-haiku",
	"meta-llama/llama-3.1-8b-instruct",
}

// Review is the structured output extracted from a paper's text.
type Review struct {
	Summary     string   `json:"summary"`
	KeyFindings []string `json:"key_findings"`
	Methodology string   `json:"methodology"`
	Limitations string   `json:"limitations"`
	Model       string   `json:"model,omitempty"`
}

// Client calls the chat-completion endpoint with a caller-supplied bearer
// key. The core lookup pipeline never sees this client or its credential.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	models     []string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithModels overrides the model fallback order.
func WithModels(models ...string) ClientOption {
	return func(c *Client) {
		c.models = models
	}
}

// NewClient creates a summarizer client. The key is required; it is
// threaded in explicitly rather than read from ambient configuration.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		apiKey:     apiKey,
		baseURL:    BaseURL,
		models:     DefaultModels,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const systemPrompt = `You are an academic paper reviewer. Read the paper text and respond with a single JSON object with exactly these fields: "summary" (2-3 sentences), "key_findings" (array of strings), "methodology" (1-2 sentences), "limitations" (1-2 sentences). Respond with the JSON object only.`

// Summarize tries each model in order until one yields a parseable review.
// A 400 or 404 means the model is unavailable and the next one is tried; a
// 401 aborts immediately with ErrInvalidKey since no model can fix a bad
// credential.
func (c *Client) Summarize(ctx context.Context, text string) (*Review, error) {
	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	var lastErr error
	for _, model := range c.models {
		review, err := c.complete(ctx, model, text)
		if err != nil {
			if IsInvalidKey(err) {
				return nil, fmt.Errorf("model %s: %w", model, ErrInvalidKey)
			}
			lastErr = err
			continue
		}
		review.Model = model
		return review, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllModelsFailed, lastErr)
	}
	return nil, ErrAllModelsFailed
}

func (c *Client) complete(ctx context.Context, model, text string) (*Review, error) {
	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Model:      model,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", model, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("model %s: %w", model, ErrNoReview)
	}

	obj, ok := extractJSONObject(chat.Choices[0].Message.Content)
	if !ok {
		return nil, fmt.Errorf("model %s: %w", model, ErrNoReview)
	}

	var review Review
	if err := json.Unmarshal([]byte(obj), &review); err != nil {
		return nil, fmt.Errorf("model %s: %w: %v", model, ErrNoReview, err)
	}
	return &review, nil
}

// extractJSONObject returns the first balanced JSON object found anywhere
// in s. The scan is string-aware so braces inside string values do not
// confuse the depth count. Models wrap output in prose or markdown fences
// often enough that decoding the raw content directly is not reliable.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
