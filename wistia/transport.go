package wistia

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxErrorBodySize limits how much of a failed response is kept in an APIError
const maxErrorBodySize = 64 * 1024

// Transport executes a built request and returns the raw response body.
//
// A nil body with a nil error means the call succeeded but returned nothing
// to decode. Errors are forwarded to callers of the client unchanged.
type Transport interface {
	Send(ctx context.Context, req *Request) ([]byte, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) ([]byte, error)

// Send calls f(ctx, req).
func (f TransportFunc) Send(ctx context.Context, req *Request) ([]byte, error) {
	return f(ctx, req)
}

// HTTPTransport sends requests with an *http.Client.
type HTTPTransport struct {
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPTransport creates a transport. A nil client gets a default one with
// a 30 second timeout.
func NewHTTPTransport(client *http.Client, logger zerolog.Logger) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPTransport{
		client: client,
		logger: logger,
	}
}

// Send implements Transport. Non-2xx responses become *APIError. A 204 No
// Content response yields a nil body.
func (t *HTTPTransport) Send(ctx context.Context, req *Request) ([]byte, error) {
	var body io.Reader = http.NoBody
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), req.URL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	t.logger.Trace().
		Str("request_id", requestID).
		Str("route", req.Route.Name()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Wistia API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     string(req.Method),
			Route:      req.Route.String(),
			Body:       string(excerpt),
		}
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if data == nil {
		// A present but empty body is not absence.
		data = []byte{}
	}

	return data, nil
}
