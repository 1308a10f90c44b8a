// Package guide answers free-form questions about using durok by asking a
// remote question-answering service.
package guide

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FallbackAnswer is shown whenever no answer could be obtained
const FallbackAnswer = "Sorry, I couldn't get a response. Please try again."

// ErrNoEndpoint is returned when no service endpoint is configured
var ErrNoEndpoint = errors.New("no guide endpoint configured")

// Answerer answers a single question
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// HTTPAnswerer posts {"query": ...} to an endpoint and reads {"answer": ...}
type HTTPAnswerer struct {
	endpoint string
	client   *http.Client
}

// NewHTTPAnswerer creates an answerer for endpoint with a request timeout
func NewHTTPAnswerer(endpoint string, timeout time.Duration) *HTTPAnswerer {
	return &HTTPAnswerer{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: timeout},
	}
}

type request struct {
	Query string `json:"query"`
}

type response struct {
	Answer string `json:"answer"`
}

// Answer sends the question and returns the service's answer
func (a *HTTPAnswerer) Answer(ctx context.Context, question string) (string, error) {
	if a.endpoint == "" {
		return "", ErrNoEndpoint
	}

	body, err := json.Marshal(request{Query: question})
	if err != nil {
		return "", fmt.Errorf("encode question: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ask guide: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("guide returned status %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("decode answer: %w", err)
	}
	if strings.TrimSpace(out.Answer) == "" {
		return "", errors.New("guide returned an empty answer")
	}
	return out.Answer, nil
}

// Ask returns the answer to question, or FallbackAnswer when anything goes
// wrong. A blank question gets an empty answer without contacting the service.
func Ask(ctx context.Context, a Answerer, question string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return ""
	}
	if a == nil {
		return FallbackAnswer
	}

	answer, err := a.Answer(ctx, question)
	if err != nil {
		return FallbackAnswer
	}
	return answer
}
