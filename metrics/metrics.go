// Package metrics provides Prometheus instrumentation for spap servers.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sagarc03/spap"
)

// Metrics holds the collectors recorded for every served request.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	errorsTotal     prometheus.Counter
	durationSeconds prometheus.Histogram
}

// New creates the collectors and registers them with reg.
// It panics if registration fails, for example on duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spap_requests_total",
				Help: "Requests served, by response status code.",
			},
			[]string{"status"},
		),
		errorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "spap_errors_total",
				Help: "Requests that failed with a storage or internal error.",
			},
		),
		durationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "spap_request_duration_seconds",
				Help:    "Time to resolve, fetch and render a request.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	reg.MustRegister(m.requestsTotal, m.errorsTotal, m.durationSeconds)

	return m
}

type instrumented struct {
	next    spap.Server
	metrics *Metrics
}

// Instrument wraps next so that every Serve call is recorded in m.
func Instrument(next spap.Server, m *Metrics) spap.Server {
	return &instrumented{next: next, metrics: m}
}

func (i *instrumented) Serve(ctx context.Context, req spap.Request) (spap.HTTPResponse, error) {
	start := time.Now()
	resp, err := i.next.Serve(ctx, req)
	i.metrics.durationSeconds.Observe(time.Since(start).Seconds())

	if err != nil {
		i.metrics.errorsTotal.Inc()
		return resp, err
	}

	i.metrics.requestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}
