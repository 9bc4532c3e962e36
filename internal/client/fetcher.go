package client

import (
	"builtat/pkg/domain"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// SubdomainsPath is the aggregator endpoint the client reads.
const SubdomainsPath = "/api/subdomains"

// HTTPFetcher reads the result set from an aggregator over HTTP.
type HTTPFetcher struct {
	httpClient *http.Client
	endpoint   string
}

// NewHTTPFetcher returns a Fetcher for the aggregator rooted at endpoint.
func NewHTTPFetcher(httpClient *http.Client, endpoint string) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(endpoint, "/"),
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context) (domain.ResultSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint+SubdomainsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("aggregator returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	rs, err := domain.DecodePayload(b)
	if err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	return rs, nil
}

var _ Fetcher = (*HTTPFetcher)(nil)
