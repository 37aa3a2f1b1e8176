package wistia

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// DefaultConcurrency bounds the fan-out of batch calls such as ShowMedias.
const (
	DefaultConcurrency = 10
	MaxConcurrency     = 20
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL     string
	logger      zerolog.Logger
	transport   Transport
	httpClient  *http.Client
	timeout     time.Duration
	debug       DebugMode
	breaker     *BreakerSettings
	registerer  prometheus.Registerer
	concurrency int
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:     DefaultBaseURL,
		logger:      zerolog.Nop(),
		timeout:     30 * time.Second,
		concurrency: DefaultConcurrency,
	}
}

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithTransport replaces the HTTP transport. Breaker and metrics options
// still wrap it; timeout and HTTP client options are ignored.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// WithHTTPClient sets the *http.Client used by the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout of the default transport.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithDebugMode enables request diagnostics.
func WithDebugMode(mode DebugMode) Option {
	return func(o *clientOptions) {
		o.debug = mode
	}
}

// WithCircuitBreaker wraps the transport in a BreakerTransport.
func WithCircuitBreaker(settings BreakerSettings) Option {
	return func(o *clientOptions) {
		o.breaker = &settings
	}
}

// WithMetrics records request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *clientOptions) {
		o.registerer = reg
	}
}

// WithConcurrency bounds concurrent requests of batch calls.
func WithConcurrency(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.concurrency = min(n, MaxConcurrency)
		}
	}
}
