// Package vercel provides a platform.Client implementation backed by the
// Vercel REST API.
package vercel

import (
	"builtat/pkg/domain"
	"builtat/pkg/metrics"
	"builtat/pkg/platform"
	"builtat/pkg/serrors"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Vercel API endpoint.
const DefaultBaseURL = "https://api.vercel.com"

// Client talks to the Vercel REST API and fulfills the platform.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the API
	baseURL    string       // baseURL is the API root without a trailing slash
	token      string       // token is the bearer credential for the API
}

// ListProjects lists every project owned by teamID.
func (c *Client) ListProjects(ctx context.Context, teamID string) ([]domain.Project, error) {
	// https://vercel.com/docs/rest-api/endpoints/projects#find-projects
	var body struct {
		Projects *[]domain.Project `json:"projects"`
	}
	if err := c.get(ctx, "list_projects", "/v9/projects", teamID, &body); err != nil {
		return nil, err
	}
	if body.Projects == nil {
		return nil, serrors.With(serrors.ErrUpstream, "response has no projects")
	}

	return *body.Projects, nil
}

// ListDomains lists the domains bound to project, identified by name or ID.
func (c *Client) ListDomains(ctx context.Context, teamID string, project string) ([]domain.Domain, error) {
	// https://vercel.com/docs/rest-api/endpoints/projects#retrieve-project-domains
	var body struct {
		Domains *[]domain.Domain `json:"domains"`
	}
	if err := c.get(ctx, "list_domains", "/v9/projects/"+url.PathEscape(project)+"/domains", teamID, &body); err != nil {
		return nil, err
	}
	if body.Domains == nil {
		return nil, serrors.With(serrors.ErrUpstream, "response has no domains")
	}

	return *body.Domains, nil
}

// get performs an authenticated GET against path and decodes the JSON body
// into out. No request is sent when the credential is missing.
func (c *Client) get(ctx context.Context, operation string, path string, teamID string, out any) error {
	if c.token == "" {
		return serrors.With(serrors.ErrConfiguration, "missing platform API token")
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("could not build URL: %w", err)
	}
	if teamID != "" {
		q := u.Query()
		q.Set("teamId", teamID)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.PlatformRequestDuration.WithLabelValues(operation, "error").Observe(time.Since(start).Seconds())
		if isTimeout(err) {
			return serrors.Wrap(serrors.ErrTimeout, err, "%s timed out", operation)
		}

		return serrors.Wrap(serrors.ErrUnavailable, err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	metrics.PlatformRequestDuration.
		WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).
		Observe(time.Since(start).Seconds())

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return serrors.With(statusKind(resp.StatusCode), "%s failed with status %d: %s",
			operation, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if err := json.Unmarshal(b, out); err != nil {
		return serrors.Wrap(serrors.ErrUpstream, err, "could not decode response")
	}

	return nil
}

// statusKind classifies a non-2xx platform status.
func statusKind(status int) serrors.Kind {
	switch {
	case status == http.StatusUnauthorized:
		return serrors.ErrUnauthorized
	case status == http.StatusForbidden:
		return serrors.ErrForbidden
	case status == http.StatusNotFound:
		return serrors.ErrNotFound
	case status == http.StatusTooManyRequests:
		return serrors.ErrRateLimited
	case status >= 500:
		return serrors.ErrUnavailable
	case status >= 400:
		return serrors.ErrBadRequest
	default:
		return serrors.ErrUpstream
	}
}

// isTimeout reports whether a transport error is a context deadline or a
// client timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error

	return errors.As(err, &ne) && ne.Timeout()
}

// Ensure Client conforms to the platform.Client interface at compile time.
var _ platform.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client, API root and
// bearer token. An empty baseURL selects DefaultBaseURL.
func New(httpClient *http.Client, baseURL string, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}
