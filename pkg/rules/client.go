// Package rules provides a client for the remote parser-rule endpoint.
package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Record types understood by the pattern resolver.
const (
	RecordTypeCity     = "CITY"
	RecordTypeLocation = "LOCATION"
	RecordTypeType     = "TYPE"
)

// Record is one dynamic parser rule.
type Record struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Category string `json:"category,omitempty"`
}

// Client defines the rule endpoint operations.
type Client interface {
	// Fetch returns the current dynamic rule records.
	Fetch(ctx context.Context) ([]Record, error)
}

// Option configures the rules client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the request rate limit.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a rules client for the given endpoint URL.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(5, 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type fetchResponse struct {
	Data []Record `json:"data"`
}

// Fetch retrieves the dynamic rule records from the endpoint.
func (c *httpClient) Fetch(ctx context.Context) ([]Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "rules: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "rules: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "rules: fetch")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.New(fmt.Sprintf("rules: unexpected status %d", resp.StatusCode))
	}

	var parsed fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, eris.Wrap(err, "rules: decode response")
	}

	return parsed.Data, nil
}
