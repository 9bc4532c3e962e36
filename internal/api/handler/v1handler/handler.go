// Package v1handler serves the public subdomain listing endpoint.
package v1handler

import (
	"builtat/internal/aggregator"
	"builtat/internal/config"
	"builtat/pkg/domain"
	"builtat/pkg/logger"
	"builtat/pkg/serrors"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Path is the route the Handler is mounted at.
const Path = "/api/subdomains"

const (
	msgMissingToken     = "missing platform API token"
	msgProjectsFailed   = "failed to fetch projects"
	msgServerError      = "server error"
	msgMethodNotAllowed = "method not allowed"

	allowedMethods = "GET, HEAD"
)

// Deps are the collaborators of the Handler.
type Deps struct {
	Aggregator aggregator.Aggregator
}

// Options controls the shared-cache directive of successful responses.
type Options struct {
	// MaxAge is emitted as s-maxage.
	MaxAge time.Duration
	// StaleWhileRevalidate is emitted as stale-while-revalidate.
	StaleWhileRevalidate time.Duration
}

// NewOptions maps the cache section of cfg.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxAge:               cfg.Cache.MaxAge,
		StaleWhileRevalidate: cfg.Cache.StaleWhileRevalidate,
	}
}

// CacheControl renders the Cache-Control header value, e.g.
// "s-maxage=3600, stale-while-revalidate=86400".
func (o Options) CacheControl() string {
	return fmt.Sprintf("s-maxage=%d, stale-while-revalidate=%d",
		int64(o.MaxAge/time.Second), int64(o.StaleWhileRevalidate/time.Second))
}

type Handler struct {
	deps         Deps
	cacheControl string
}

// Ensure Handler implements http.Handler.
var _ http.Handler = (*Handler)(nil)

func New(deps Deps, opts Options) *Handler {
	return &Handler{
		deps:         deps,
		cacheControl: opts.CacheControl(),
	}
}

// ErrorResponse is the status and public message of a failed request.
type ErrorResponse struct {
	StatusCode int
	Message    string
}

// ServeHTTP answers GET with the aggregated result set and HEAD with the same
// headers and no body. Every request runs a fresh aggregation; caching is left
// to the shared cache in front.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", allowedMethods)
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write(domain.EncodeError(msgMethodNotAllowed))

		return
	}

	rs, err := h.deps.Aggregator.Subdomains(ctx)
	if err != nil {
		res := h.NewError(ctx, err)
		w.WriteHeader(res.StatusCode)
		_, _ = w.Write(domain.EncodeError(res.Message))

		return
	}

	body := domain.EncodePayload(rs)
	w.Header().Set("Cache-Control", h.cacheControl)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

// NewError logs err in full and maps it to a generic public message. All
// failures are reported as 500.
func (h *Handler) NewError(ctx context.Context, err error) ErrorResponse {
	logger.Error(ctx, "failed to list subdomains", zap.Error(err))

	res := ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Message:    msgServerError,
	}
	switch {
	case errors.Is(err, serrors.ErrConfiguration):
		res.Message = msgMissingToken
	case errors.Is(err, serrors.ErrUpstream):
		res.Message = msgProjectsFailed
	}

	return res
}
