package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Aggregation kinds reported by CounterAggregations.
const (
	AggHabitStreak    = "habit_streak"
	AggDailyNutrition = "daily_nutrition"
	AggWeeklyReport   = "weekly_nutrition"
	AggWorkoutSummary = "workout_summary"
)

type Manager struct {
	// counters
	CounterRequests     *prometheus.CounterVec
	CounterAggregations *prometheus.CounterVec
	CounterExports      *prometheus.CounterVec

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("lifelog", "test_server", reg), reg
}

// NewManager registers every collector on reg.
func NewManager(namespace, subsystem string, reg *prometheus.Registry) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "The total number of handled requests",
		}, []string{"method", "route", "status"}),
		CounterAggregations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "aggregations_total",
			Help:      "The total number of computed aggregations",
		}, []string{"kind"}),
		CounterExports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workout_exports_total",
			Help:      "The total number of workout exports by destination",
		}, []string{"destination"}),
		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of requests in flight",
		}),
		HistRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of requests in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}, []string{"route"}),
		gatherer: reg,
	}
}

// Aggregated counts one computed aggregation of the given kind.
func (m *Manager) Aggregated(kind string) {
	if m == nil {
		return
	}
	m.CounterAggregations.WithLabelValues(kind).Inc()
}

// Exported counts one workout export to destination ("download" or "s3").
func (m *Manager) Exported(destination string) {
	if m == nil {
		return
	}
	m.CounterExports.WithLabelValues(destination).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
