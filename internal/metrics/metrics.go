// Package metrics exposes Prometheus collectors for the coordinate API.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Conversion outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeDomainError = "domain_error"
	OutcomeBadRequest  = "bad_request"
)

// Collector bundles the service metrics and the gatherer they are served from.
type Collector struct {
	gatherer prometheus.Gatherer

	Conversions      *prometheus.CounterVec
	RequestDurations *prometheus.HistogramVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// Prometheus registry when nil. Registering twice against the same registry
// reuses the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	conversions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geocoord_conversions_total",
		Help: "Coordinate operations handled, labeled by operation and outcome.",
	}, []string{"operation", "outcome"})
	if err := reg.Register(conversions); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		conversions = existing
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geocoord_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1},
	}, []string{"path"})
	if err := reg.Register(durations); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, err
		}
		durations = existing
	}

	return &Collector{
		gatherer:         gatherer,
		Conversions:      conversions,
		RequestDurations: durations,
	}, nil
}

// ObserveConversion counts one operation with its outcome. Safe on a nil
// collector.
func (c *Collector) ObserveConversion(operation, outcome string) {
	if c == nil || c.Conversions == nil {
		return
	}
	c.Conversions.WithLabelValues(operation, outcome).Inc()
}

// ObserveRequest records the latency of an HTTP request. Safe on a nil
// collector.
func (c *Collector) ObserveRequest(path string, d time.Duration) {
	if c == nil || c.RequestDurations == nil {
		return
	}
	c.RequestDurations.WithLabelValues(path).Observe(d.Seconds())
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil || c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
