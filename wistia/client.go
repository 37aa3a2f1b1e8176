package wistia

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
)

// Client wraps the Wistia Data and Stats APIs
type Client struct {
	builder     *RequestBuilder
	transport   Transport
	logger      zerolog.Logger
	concurrency int
}

// NewClient creates a new Wistia client authorized by apiPassword.
//
// Configuration defects (empty password, malformed base URL, metrics
// registration conflicts) are reported here, before any request is made.
func NewClient(apiPassword string, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	builder, err := NewRequestBuilder(o.baseURL, apiPassword, o.debug, o.logger)
	if err != nil {
		return nil, err
	}

	transport := o.transport
	if transport == nil {
		httpClient := o.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: o.timeout}
		}
		transport = NewHTTPTransport(httpClient, o.logger)
	}

	if o.breaker != nil {
		transport = NewBreakerTransport(transport, *o.breaker, o.logger)
	}

	if o.registerer != nil {
		transport, err = NewMetricsTransport(transport, o.registerer)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	return &Client{
		builder:     builder,
		transport:   transport,
		logger:      o.logger,
		concurrency: o.concurrency,
	}, nil
}

// Builder returns the client's request builder.
func (c *Client) Builder() *RequestBuilder {
	return c.builder
}

// fetch runs one round trip: build, send, decode. Transport errors are
// returned as-is and skip decoding.
func fetch[T any](ctx context.Context, c *Client, route Route, opts ...RequestOption) Outcome[T] {
	req, err := c.builder.Build(route, opts...)
	if err != nil {
		return Failure[T](err)
	}

	raw, err := c.transport.Send(ctx, req)
	if err != nil {
		return Failure[T](err)
	}

	return Decode[T](raw)
}

// fetchList is fetch for list endpoints. Absence yields a nil slice.
func fetchList[T any](ctx context.Context, c *Client, route Route, opts ...RequestOption) ([]T, error) {
	items, err := fetch[[]T](ctx, c, route, opts...).Result()
	if err != nil || items == nil {
		return nil, err
	}

	c.logger.Debug().Msgf("Retrieved %d %s from Wistia", len(*items), route.Name())
	return *items, nil
}

// ListOptions are the paging parameters shared by list endpoints.
type ListOptions struct {
	Search  string `url:"search,omitempty"`
	Page    int    `url:"page,omitempty"`
	PerPage int    `url:"per_page,omitempty"`
}

// EventListOptions narrows the events listing.
type EventListOptions struct {
	ListOptions
	VisitorKey string `url:"visitor_key,omitempty"`
	MediaID    string `url:"media_id,omitempty"`
	StartDate  string `url:"start_date,omitempty"`
	EndDate    string `url:"end_date,omitempty"`
}

// queryOption encodes an options struct into a WithQuery option.
func queryOption(opts any) (RequestOption, error) {
	values, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	return WithQuery(values), nil
}
