// Package metrics contains Prometheus metrics for the bot service
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the bot service.
// Implements deps.MetricsRecorder interface.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	FaultsTotal     *prometheus.CounterVec
	FetchedBytes    prometheus.Counter
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance registered
// with the default Prometheus registry
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		defaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// NewMetrics creates a new Metrics instance registered with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tubeflow_download_requests_total",
				Help: "Total number of download requests by outcome",
			},
			[]string{"outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tubeflow_download_request_duration_seconds",
				Help:    "Duration of download requests in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"outcome"},
		),
		FaultsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tubeflow_download_faults_total",
				Help: "Total number of failed download requests by fault kind",
			},
			[]string{"kind"},
		),
		FetchedBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "tubeflow_fetched_bytes_total",
			Help: "Total number of bytes fetched from the video host",
		}),
	}
}

// RecordRequest records a finished download request
func (m *Metrics) RecordRequest(outcome string, duration float64) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.RequestsTotal.WithLabelValues(outcome).Inc()
	m.RequestDuration.WithLabelValues(outcome).Observe(duration)
}

// RecordFault records a fault by kind
func (m *Metrics) RecordFault(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	m.FaultsTotal.WithLabelValues(kind).Inc()
}

// RecordFetchedBytes records the size of a fetched file
func (m *Metrics) RecordFetchedBytes(bytes int64) {
	// counters never go backwards
	if bytes > 0 {
		m.FetchedBytes.Add(float64(bytes))
	}
}
