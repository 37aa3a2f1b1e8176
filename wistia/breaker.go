package wistia

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerTransport stops sending requests after repeated transport failures
// and lets a few probes through once the open period has passed. Errors it
// produces while open (gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests)
// are transport errors like any other.
type BreakerTransport struct {
	next Transport
	cb   *gobreaker.CircuitBreaker[[]byte]
}

// BreakerSettings tunes a BreakerTransport. Zero fields take defaults.
type BreakerSettings struct {
	// MaxRequests allowed while half-open. Default 3.
	MaxRequests uint32
	// Interval after which closed-state counts reset. Default 1m.
	Interval time.Duration
	// Timeout before an open breaker goes half-open. Default 2m.
	Timeout time.Duration
	// ConsecutiveFailures that open the breaker. Default 5.
	ConsecutiveFailures uint32
}

// NewBreakerTransport wraps next with a circuit breaker.
func NewBreakerTransport(next Transport, settings BreakerSettings, logger zerolog.Logger) *BreakerTransport {
	if settings.MaxRequests == 0 {
		settings.MaxRequests = 3
	}
	if settings.Interval == 0 {
		settings.Interval = time.Minute
	}
	if settings.Timeout == 0 {
		settings.Timeout = 2 * time.Minute
	}
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = 5
	}

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "wistia-api",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state change")
		},
		// Client errors mean the API is up; they must not open the circuit.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.StatusCode < 500
		},
	})

	return &BreakerTransport{next: next, cb: cb}
}

// Send implements Transport.
func (t *BreakerTransport) Send(ctx context.Context, req *Request) ([]byte, error) {
	return t.cb.Execute(func() ([]byte, error) {
		return t.next.Send(ctx, req)
	})
}

// State returns the current breaker state.
func (t *BreakerTransport) State() gobreaker.State {
	return t.cb.State()
}
