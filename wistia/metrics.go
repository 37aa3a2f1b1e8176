package wistia

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsTransport records request counts and latencies per route.
type MetricsTransport struct {
	next     Transport
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsTransport wraps next and registers its collectors with reg. If
// the collectors are already registered (a second client on the same
// registry) the existing ones are reused.
func NewMetricsTransport(next Transport, reg prometheus.Registerer) (*MetricsTransport, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wistia",
		Name:      "requests_total",
		Help:      "Wistia API requests by route and outcome.",
	}, []string{"route", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wistia",
		Name:      "request_duration_seconds",
		Help:      "Wistia API request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &MetricsTransport{
		next:     next,
		requests: requests,
		duration: duration,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Send implements Transport.
func (t *MetricsTransport) Send(ctx context.Context, req *Request) ([]byte, error) {
	route := req.Route.Name()

	start := time.Now()
	data, err := t.next.Send(ctx, req)
	t.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	t.requests.WithLabelValues(route, outcomeLabel(data, err)).Inc()

	return data, err
}

func outcomeLabel(data []byte, err error) string {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return strconv.Itoa(apiErr.StatusCode)
	case err != nil:
		return "error"
	case data == nil:
		return "empty"
	default:
		return "ok"
	}
}
