package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/time/rate"

	"suggestbox/internal/domain"
)

// RequestIDHeader carries the per-query request id
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of a failed response is logged
const maxErrorBody = 4096

// HTTPOptions configures an HTTPSource
type HTTPOptions struct {
	// Timeout bounds a single request; zero means no client timeout
	Timeout time.Duration
	// RateLimit caps outgoing queries per second; zero disables limiting
	RateLimit float64
	// Client overrides the pooled cleanhttp client
	Client *http.Client
}

// HTTPSource queries a remote `/v1/autocomplete` style endpoint
type HTTPSource struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// wireResponse is the JSON body returned by the endpoint
type wireResponse struct {
	Data []domain.Suggestion `json:"data"`
	Type string              `json:"type"`
}

// NewHTTPSource creates a source for the given endpoint URL
// (scheme, host and path, without the query string)
func NewHTTPSource(endpoint string, opts HTTPOptions) *HTTPSource {
	var client *http.Client
	if opts.Client != nil {
		c := *opts.Client
		client = &c
	} else {
		client = cleanhttp.DefaultPooledClient()
	}
	if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}

	s := &HTTPSource{
		endpoint: endpoint,
		client:   client,
	}
	if opts.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return s
}

// QueryURL returns the request URL for a query
func (s *HTTPSource) QueryURL(query string) string {
	return s.endpoint + "?query=" + url.QueryEscape(query)
}

// Suggest fetches suggestions for query
func (s *HTTPSource) Suggest(ctx context.Context, query string) (domain.Results, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return domain.Results{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.QueryURL(query), nil)
	if err != nil {
		return domain.Results{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Results{}, fmt.Errorf("suggestion request %s failed: %w", requestID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Printf("Suggestion request %s for %q returned %s: %s", requestID, query, resp.Status, bytes.TrimSpace(text))
		return domain.Results{}, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			RequestID:  requestID,
		}
	}

	var body wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Results{}, fmt.Errorf("failed to decode suggestions for request %s: %w", requestID, err)
	}

	return domain.Results{
		Query:       query,
		Suggestions: body.Data,
		Mode:        domain.DisplayMode(body.Type),
	}, nil
}
