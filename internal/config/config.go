package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, the upstream
// deployment platform, the parent domain, response caching, the terminal
// client and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Upstream contains the deployment platform API settings
	Upstream struct {
		// Token is the bearer credential for the platform API. Requests fail with a
		// configuration error when it is empty.
		Token string `env:"UPSTREAM_TOKEN" yaml:"token"`
		// TeamID is the team whose projects are listed
		TeamID string `env:"UPSTREAM_TEAM_ID" yaml:"teamId"`
		// BaseURL is the platform API root
		BaseURL string `env:"UPSTREAM_BASE_URL" env-default:"https://api.vercel.com" yaml:"baseUrl"`
		// Timeout bounds every single platform API call
		Timeout time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"10s" yaml:"timeout"`
		// LookupTimeout bounds each per-project domain lookup of the fan-out
		LookupTimeout time.Duration `env:"UPSTREAM_LOOKUP_TIMEOUT" env-default:"5s" yaml:"lookupTimeout"`
	} `yaml:"upstream"`

	// Domain describes the parent domain whose subdomains are listed
	Domain struct {
		// Parent is the bare parent domain, e.g. "built.at"
		Parent string `env:"DOMAIN_PARENT" env-default:"built.at" yaml:"parent"`
		// Locale is the BCP 47 tag used to collate record names
		Locale string `env:"DOMAIN_LOCALE" env-default:"en" yaml:"locale"`
	} `yaml:"domain"`

	// Cache controls the Cache-Control directive attached to successful responses
	Cache struct {
		// MaxAge is how long shared caches treat a response as fresh (s-maxage)
		MaxAge time.Duration `env:"CACHE_MAX_AGE" env-default:"1h" yaml:"maxAge"`
		// StaleWhileRevalidate is how long a stale response may be served while revalidating
		StaleWhileRevalidate time.Duration `env:"CACHE_STALE_WHILE_REVALIDATE" env-default:"24h" yaml:"staleWhileRevalidate"` //nolint: lll
	} `yaml:"cache"`

	// Client contains the terminal client settings
	Client struct {
		// Endpoint is the base URL of the aggregator the client fetches from
		Endpoint string `env:"CLIENT_ENDPOINT" env-default:"http://localhost:8080" yaml:"endpoint"`
		// CacheDir is the directory holding the client cache slot. Empty means the
		// user cache directory.
		CacheDir string `env:"CLIENT_CACHE_DIR" yaml:"cacheDir"`
		// CacheSlot is the name of the single client cache slot
		CacheSlot string `env:"CLIENT_CACHE_SLOT" env-default:"builtAtSubdomains" yaml:"cacheSlot"`
		// FetchTimeout bounds the client's request to the aggregator
		FetchTimeout time.Duration `env:"CLIENT_FETCH_TIMEOUT" env-default:"15s" yaml:"fetchTimeout"`
	} `yaml:"client"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// A missing file is not an error: the configuration is then read from the
// environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
