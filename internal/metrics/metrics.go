// Package metrics exports Prometheus metrics for the scheduling service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "studystreak"

// Exporter collects API, scheduler and calendar-source metrics on its own
// registry so the metrics endpoint serves only what the service registers.
type Exporter struct {
	registry *prometheus.Registry

	apiRequests     *prometheus.CounterVec
	calendarFetches *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	recommendations prometheus.Histogram
	milestones      prometheus.Counter
}

// NewExporter creates an Exporter with all collectors registered.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total API requests by route and status code.",
			},
			[]string{"route", "status"},
		),
		calendarFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "calendar",
				Name:      "fetches_total",
				Help:      "Total calendar source fetches by source and outcome.",
			},
			[]string{"source", "status"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "calendar",
				Name:      "fetch_duration_seconds",
				Help:      "Calendar source fetch latency in seconds.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"source"},
		),
		recommendations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "recommendations_returned",
				Help:      "Recommended slots returned per request.",
				Buckets:   []float64{0, 1, 2, 5, 10},
			},
		),
		milestones: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "habit",
				Name:      "milestones_total",
				Help:      "Milestone rewards crossed by session completions.",
			},
		),
	}

	e.registry.MustRegister(
		e.apiRequests,
		e.calendarFetches,
		e.fetchDuration,
		e.recommendations,
		e.milestones,
	)
	return e
}

// RecordAPIRequest counts one handled request.
func (e *Exporter) RecordAPIRequest(route string, status int) {
	e.apiRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// RecordCalendarFetch observes one source fetch. The error decides the
// outcome label; the latency lands in the per-source histogram either way.
func (e *Exporter) RecordCalendarFetch(source string, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	e.calendarFetches.WithLabelValues(source, status).Inc()
	e.fetchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// RecordRecommendations observes how many slots a recommendation returned.
func (e *Exporter) RecordRecommendations(count int) {
	e.recommendations.Observe(float64(count))
}

// RecordMilestones counts newly crossed milestone rewards.
func (e *Exporter) RecordMilestones(count int) {
	e.milestones.Add(float64(count))
}

// Handler returns the HTTP handler serving the registry.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
