// Package metrics exposes Prometheus counters for the HTTP API and the
// score cache writer.
package metrics

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gridpredict"

// Metrics holds every collector registered by the service.
type Metrics struct {
	Registry *prometheus.Registry

	RequestCounter       *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	PredictionsSubmitted prometheus.Counter
	PredictionsRejected  *prometheus.CounterVec
	ResultsPublished     *prometheus.CounterVec
	RescoreDuration      prometheus.Histogram
	ScoresWritten        prometheus.Counter
}

// New registers the service collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestCounter: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		PredictionsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_submitted_total",
			Help:      "Predictions accepted",
		}),
		PredictionsRejected: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "predictions_rejected_total",
				Help:      "Predictions refused, by reason",
			},
			[]string{"reason"},
		),
		ResultsPublished: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "results_published_total",
				Help:      "Session groups published",
			},
			[]string{"group"},
		),
		RescoreDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rescore_duration_seconds",
			Help:      "Time to recompute the score cache of one GP",
			Buckets:   prometheus.DefBuckets,
		}),
		ScoresWritten: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_scores_written_total",
			Help:      "Score cache rows written",
		}),
	}
}

// WithRuntime adds the Go runtime, process and database pool collectors.
func (m *Metrics) WithRuntime(db *sql.DB) *Metrics {
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if db != nil {
		m.Registry.MustRegister(collectors.NewDBStatsCollector(db, namespace))
	}
	return m
}

// Middleware records request count and latency per route template.
func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		// echo's error handler writes the response after this returns
		status := c.Response().Status
		if err != nil {
			status = http.StatusInternalServerError
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}

		m.RequestCounter.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
