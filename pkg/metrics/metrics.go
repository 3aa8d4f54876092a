package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge
	RateLimited     prometheus.Counter

	ReadingsRecorded  *prometheus.CounterVec
	ScoresComputed    prometheus.Counter
	WellnessScore     prometheus.Histogram
	ScoringFailures   *prometheus.CounterVec
	AnalyticsRequests *prometheus.CounterVec
	AnalyticsDuration prometheus.Histogram
	AnalyticsEntries  prometheus.Histogram

	DBQueryDuration *prometheus.HistogramVec

	AuditEntriesTotal  prometheus.Counter
	AuditBufferDropped prometheus.Counter
}

// NewCollector registers every metric on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func NewCollector(serviceName string, reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)

	return &Collector{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: f.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter.",
		}),

		ReadingsRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "health",
			Name:      "readings_recorded_total",
			Help:      "Body-composition readings stored, by source.",
		}, []string{"source"}),

		ScoresComputed: f.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "health",
			Name:      "wellness_scores_total",
			Help:      "Wellness scores computed and stored.",
		}),

		WellnessScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "health",
			Name:      "wellness_score",
			Help:      "Distribution of computed wellness scores.",
			Buckets:   prometheus.LinearBuckets(50, 5, 10),
		}),

		ScoringFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "health",
			Name:      "scoring_failures_total",
			Help:      "Score requests that could not be computed, by reason.",
		}, []string{"reason"}),

		AnalyticsRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "analytics",
			Name:      "requests_total",
			Help:      "Analytics reports built, by period and timeline.",
		}, []string{"period", "timeline"}),

		AnalyticsDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "analytics",
			Name:      "build_duration_seconds",
			Help:      "Time spent shaping readings into a report, excluding the fetch.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),

		AnalyticsEntries: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "analytics",
			Name:      "entries",
			Help:      "Number of readings per analytics report.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query latency distribution.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}, []string{"operation", "table"}),

		AuditEntriesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "entries_total",
			Help:      "Total audit log entries written.",
		}),

		AuditBufferDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "buffer_dropped_total",
			Help:      "Audit entries dropped due to full buffer. Alert if non-zero.",
		}),
	}
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
