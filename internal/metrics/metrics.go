package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the client-side metrics of the screen. A nil *Collector
// is valid and records nothing.
type Collector struct {
	OutboundRequestsTotal   *prometheus.CounterVec
	OutboundRequestDuration *prometheus.HistogramVec
	SuggestionsTotal        *prometheus.CounterVec
	FlowsTotal              *prometheus.CounterVec
	StaleResultsTotal       *prometheus.CounterVec
	StoreErrorsTotal        *prometheus.CounterVec
}

// NewCollector registers the collector's metrics on reg.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		OutboundRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outbound_requests_total",
				Help:      "Outbound API calls by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		OutboundRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "outbound_request_duration_seconds",
				Help:      "Outbound API call duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"endpoint"},
		),

		SuggestionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suggestions_total",
				Help:      "Suggestion requests by outcome (ok, empty, error)",
			},
			[]string{"outcome"},
		),

		FlowsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "location_flows_total",
				Help:      "Location resolution flows by trigger",
			},
			[]string{"trigger"},
		),

		StaleResultsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stale_results_dropped_total",
				Help:      "Results discarded because a newer flow started",
			},
			[]string{"kind"},
		),

		StoreErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_errors_total",
				Help:      "Local store failures by operation",
			},
			[]string{"op"},
		),
	}
}

// RecordOutbound records one outbound call.
func (c *Collector) RecordOutbound(endpoint string, start time.Time, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.OutboundRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	c.OutboundRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (c *Collector) RecordSuggestion(outcome string) {
	if c == nil {
		return
	}
	c.SuggestionsTotal.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordFlow(trigger string) {
	if c == nil {
		return
	}
	c.FlowsTotal.WithLabelValues(trigger).Inc()
}

func (c *Collector) RecordStale(kind string) {
	if c == nil {
		return
	}
	c.StaleResultsTotal.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordStoreError(op string) {
	if c == nil {
		return
	}
	c.StoreErrorsTotal.WithLabelValues(op).Inc()
}
