package wistia

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the versioned root of the Data and Stats APIs.
	DefaultBaseURL = "https://api.wistia.com/v1/"

	// CredentialParam is the query key that carries the API password.
	CredentialParam = "api_password"
)

// Method is the HTTP verb of a request.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
)

// Request is a fully composed, transport ready call.
type Request struct {
	Route  Route
	Method Method
	URL    *url.URL
	// Body is sent verbatim. Nil means no body.
	Body []byte
}

// RequestOption customizes a request built by RequestBuilder.Build.
type RequestOption func(*requestOpts)

type requestOpts struct {
	method Method
	query  url.Values
	body   []byte
}

// WithMethod overrides the default GET verb.
func WithMethod(m Method) RequestOption {
	return func(o *requestOpts) {
		o.method = m
	}
}

// WithQuery adds caller supplied query parameters. Later calls replace
// earlier values for the same key. The credential parameter is always
// written last and cannot be overridden.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOpts) {
		if o.query == nil {
			o.query = url.Values{}
		}
		for k, v := range q {
			o.query[k] = append([]string(nil), v...)
		}
	}
}

// WithBody attaches a pre-serialized body. No content type is inferred.
func WithBody(b []byte) RequestOption {
	return func(o *requestOpts) {
		o.body = b
	}
}

// RequestBuilder composes requests against a fixed base URL and credential.
// It holds only read-only configuration and is safe for concurrent use.
type RequestBuilder struct {
	baseURL    string
	credential string
	debug      DebugMode
	logger     zerolog.Logger
}

// NewRequestBuilder validates the base URL and credential and returns a
// builder. A malformed base URL is a configuration defect and is reported
// here rather than on the first request.
func NewRequestBuilder(baseURL, credential string, debug DebugMode, logger zerolog.Logger) (*RequestBuilder, error) {
	if credential == "" {
		return nil, ErrMissingCredential
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if _, err := parseAbsolute(baseURL); err != nil {
		return nil, &URLError{URL: baseURL, Err: err}
	}

	return &RequestBuilder{
		baseURL:    baseURL,
		credential: credential,
		debug:      debug,
		logger:     logger,
	}, nil
}

// BaseURL returns the normalized base URL, always ending in a slash.
func (b *RequestBuilder) BaseURL() string { return b.baseURL }

// Build resolves the route against the base URL, merges the query
// parameters, injects the credential and attaches method and body.
func (b *RequestBuilder) Build(route Route, opts ...RequestOption) (*Request, error) {
	settings := requestOpts{method: MethodGet}
	for _, opt := range opts {
		opt(&settings)
	}

	if err := route.validate(); err != nil {
		return nil, &URLError{Route: route, Err: err}
	}

	raw := route.Path()
	if route.IsAbsolute() {
		// Absolute routes render against the default host; rebase them onto
		// the configured one.
		raw = b.baseURL + strings.TrimPrefix(raw, DefaultBaseURL)
	} else {
		raw = b.baseURL + raw
	}

	target, err := parseAbsolute(raw)
	if err != nil {
		return nil, &URLError{Route: route, URL: raw, Err: err}
	}

	// Parameters the route itself carries (the heatmap public token) win
	// over caller parameters; the credential wins over both.
	query := url.Values{}
	for k, v := range settings.query {
		query[k] = v
	}
	for k, v := range target.Query() {
		query[k] = v
	}
	query.Set(CredentialParam, b.credential)
	target.RawQuery = query.Encode()

	req := &Request{
		Route:  route,
		Method: settings.method,
		URL:    target,
		Body:   settings.body,
	}

	b.logRequest(req)

	return req, nil
}

// MustBuild is like Build but panics on a construction error. It is meant for
// routes whose identifiers are compile time constants.
func (b *RequestBuilder) MustBuild(route Route, opts ...RequestOption) *Request {
	req, err := b.Build(route, opts...)
	if err != nil {
		panic(err)
	}
	return req
}

func (b *RequestBuilder) logRequest(req *Request) {
	switch b.debug {
	case DebugSummary:
		b.logger.Debug().
			Str("method", string(req.Method)).
			Str("route", req.Route.Name()).
			Str("path", req.URL.Path).
			Msg("Built Wistia request")
	case DebugVerbose:
		keys := make([]string, 0, len(req.URL.Query()))
		for k := range req.URL.Query() {
			keys = append(keys, k)
		}
		b.logger.Debug().
			Str("method", string(req.Method)).
			Str("route", req.Route.String()).
			Str("url", redact(req.URL)).
			Strs("query_keys", keys).
			Int("body_bytes", len(req.Body)).
			Msg("Built Wistia request")
	}
}

// redact renders u with the credential value masked. u is not modified.
func redact(u *url.URL) string {
	clone := *u
	q := clone.Query()
	if q.Has(CredentialParam) {
		q.Set(CredentialParam, "REDACTED")
	}
	clone.RawQuery = q.Encode()
	return clone.String()
}

func parseAbsolute(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute URL", raw)
	}
	return u, nil
}

// DebugMode controls request diagnostics.
type DebugMode int

const (
	DebugOff DebugMode = iota
	DebugSummary
	DebugVerbose
)

// String returns the config spelling of the mode
func (d DebugMode) String() string {
	switch d {
	case DebugSummary:
		return "summary"
	case DebugVerbose:
		return "verbose"
	default:
		return "off"
	}
}

// ParseDebugMode parses off, summary or verbose. The empty string is off.
func ParseDebugMode(s string) (DebugMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off":
		return DebugOff, nil
	case "summary":
		return DebugSummary, nil
	case "verbose":
		return DebugVerbose, nil
	}
	return DebugOff, fmt.Errorf("invalid debug mode: %s", s)
}
