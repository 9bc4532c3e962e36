package api_test

import (
	mockaggregator "builtat/internal/aggregator/mock"
	"builtat/internal/api"
	"builtat/internal/api/handler/v1handler"
	"builtat/pkg/domain"
	"builtat/pkg/logger"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func newTestServer(t *testing.T, agg *mockaggregator.MockAggregator, opts api.Options) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(api.NewHandler(api.Deps{Deps: v1handler.Deps{Aggregator: agg}}, opts))
	t.Cleanup(srv.Close)

	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() {
		_ = res.Body.Close()
	}()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(body)
}

func TestServer_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	agg := mockaggregator.NewMockAggregator(ctrl)
	agg.EXPECT().Subdomains(gomock.Any()).Return(domain.ResultSet{
		{Name: "Docs", URL: "https://docs.built.at"},
	}, nil)

	srv := newTestServer(t, agg, api.Options{
		HandlerOptions: v1handler.Options{MaxAge: time.Hour, StaleWhileRevalidate: 24 * time.Hour},
		RequestTimeout: 5 * time.Second,
		MetricsPath:    "/metrics",
	})

	res, body := get(t, srv.URL+"/api/subdomains")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "s-maxage=3600, stale-while-revalidate=86400", res.Header.Get("Cache-Control"))
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, res.Header.Get("X-Request-Id"))
	require.JSONEq(t, `{"subdomains":[{"name":"Docs","url":"https://docs.built.at"}]}`, body)

	res, body = get(t, srv.URL+"/specs/v1.yaml")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/yaml", res.Header.Get("Content-Type"))
	require.Contains(t, body, "/api/subdomains")

	res, _ = get(t, srv.URL+"/v1/docs/")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body = get(t, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, "go_goroutines")

	res, _ = get(t, srv.URL+"/debug/pprof/")
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServer_RequestTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	agg := mockaggregator.NewMockAggregator(ctrl)
	agg.EXPECT().Subdomains(gomock.Any()).DoAndReturn(func(ctx context.Context) (domain.ResultSet, error) {
		<-ctx.Done()

		return nil, ctx.Err()
	})

	srv := newTestServer(t, agg, api.Options{RequestTimeout: 50 * time.Millisecond})

	res, body := get(t, srv.URL+"/api/subdomains")
	require.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	require.JSONEq(t, `{"error":"request timed out"}`, body)
}

func TestNewServer_AppliesOptions(t *testing.T) {
	s := api.NewServer(api.Deps{}, api.Options{
		Addr:              ":9999",
		ReadHeaderTimeout: time.Second,
		MaxHeaderBytes:    1 << 10,
	})

	require.Equal(t, ":9999", s.Addr)
	require.Equal(t, time.Second, s.ReadHeaderTimeout)
	require.Equal(t, 1<<10, s.MaxHeaderBytes)
	require.NotNil(t, s.ErrorLog)
	require.NotNil(t, s.Handler)
}

func TestServer_HeadMatchesAdvertisedMethods(t *testing.T) {
	ctrl := gomock.NewController(t)
	agg := mockaggregator.NewMockAggregator(ctrl)
	agg.EXPECT().Subdomains(gomock.Any()).Return(domain.ResultSet{}, nil)

	srv := newTestServer(t, agg, api.Options{RequestTimeout: 5 * time.Second})

	preflight, err := http.NewRequestWithContext(context.Background(), http.MethodOptions, srv.URL+"/api/subdomains", nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(preflight)
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Contains(t, res.Header.Get("Access-Control-Allow-Methods"), http.MethodHead)

	head, err := http.NewRequestWithContext(context.Background(), http.MethodHead, srv.URL+"/api/subdomains", nil)
	require.NoError(t, err)
	res, err = http.DefaultClient.Do(head)
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NotEmpty(t, res.Header.Get("Cache-Control"))
}
