// Package bridgemetrics exposes Prometheus counters and histograms for
// every PDP call the bridge makes, so operators can see call volume,
// latency, and denial rate without reading application logs.
package bridgemetrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisionsTotal   *prometheus.CounterVec
	decisionDuration *prometheus.HistogramVec
	decisionErrors   *prometheus.CounterVec
	filterCandidates *prometheus.HistogramVec

	initOnce sync.Once
)

// Init registers every bridge metric with the given constant labels.
// Safe to call multiple times; only the first call registers.
func Init(constLabels prometheus.Labels) {
	initOnce.Do(func() {
		initInner(constLabels)
	})
}

func initInner(constLabels prometheus.Labels) {
	reg := prometheus.WrapRegistererWith(constLabels, prometheus.DefaultRegisterer)
	f := promauto.With(reg)

	decisionsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opa_trino_bridge_decisions_total",
			Help: "Total number of PDP decisions by operation and verdict",
		},
		[]string{"operation", "verdict"},
	)

	decisionDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opa_trino_bridge_decision_duration_seconds",
			Help:    "PDP call duration in seconds by operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	decisionErrors = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opa_trino_bridge_decision_errors_total",
			Help: "Total number of non-denial errors from PDP calls, by operation and error kind",
		},
		[]string{"operation", "kind"},
	)

	filterCandidates = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opa_trino_bridge_filter_candidates",
			Help:    "Number of candidates passed to a filter callback, by operation",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
		[]string{"operation"},
	)
}

// ObserveDecision records a single PDP round trip: its duration and
// whether it allowed or denied.
func ObserveDecision(operation string, allowed bool, duration time.Duration) {
	if decisionsTotal == nil {
		return
	}
	verdict := "deny"
	if allowed {
		verdict = "allow"
	}
	decisionsTotal.WithLabelValues(operation, verdict).Inc()
	decisionDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveError records a non-denial failure (transport, serialization,
// status-code) for operation, tagged with its error kind.
func ObserveError(operation, kind string) {
	if decisionErrors == nil {
		return
	}
	decisionErrors.WithLabelValues(operation, kind).Inc()
}

// ObserveFilterCandidates records how many candidates a filter callback
// was asked to evaluate.
func ObserveFilterCandidates(operation string, n int) {
	if filterCandidates == nil {
		return
	}
	filterCandidates.WithLabelValues(operation).Observe(float64(n))
}
