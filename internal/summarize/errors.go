package summarize

import (
	"errors"
	"fmt"
)

// Common errors returned by the summarizer client.
var (
	// ErrInvalidKey indicates the bearer key was rejected. Retrying with a
	// different model cannot fix this, so it aborts the fallback chain.
	ErrInvalidKey = errors.New("invalid summarizer API key")

	// ErrAllModelsFailed indicates every model in the fallback list failed.
	ErrAllModelsFailed = errors.New("all summarizer models failed")

	// ErrNoReview indicates a model responded but no parseable review
	// could be extracted from its output.
	ErrNoReview = errors.New("no review object in model output")
)

// APIError represents a non-2xx response from the chat-completion endpoint.
type APIError struct {
	StatusCode int
	Model      string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("summarizer API error (status %d, model %s): %s", e.StatusCode, e.Model, e.Message)
}

// IsInvalidKey returns true if the error indicates a credential problem.
func IsInvalidKey(err error) bool {
	if errors.Is(err, ErrInvalidKey) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}
