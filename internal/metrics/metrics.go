package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "showcase/internal/errors"
)

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	AssetsStored    prometheus.Counter
	AssetCleanup    *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		AssetsStored: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "assets_stored_total",
				Help: "Total number of uploaded assets written to storage",
			},
		),
		// result is "removed" or "failed"; reason is why the removal was attempted.
		AssetCleanup: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asset_cleanup_total",
				Help: "Asset removal attempts by result and reason",
			},
			[]string{"result", "reason"},
		),
	}

	m.registry.MustRegister(
		m.RequestDuration,
		m.RequestTotal,
		m.AssetsStored,
		m.AssetCleanup,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware records request count and latency per route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				// The error handler has not rendered the response yet.
				var he *echo.HTTPError
				if errors.As(err, &he) && he.Code != http.StatusRequestEntityTooLarge {
					status = he.Code
				} else if he != nil {
					status = apperrors.MapErrorToHTTP(apperrors.ErrPayloadTooLarge).StatusCode
				} else {
					status = apperrors.MapErrorToHTTP(err).StatusCode
				}
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			labels := prometheus.Labels{
				"method": c.Request().Method,
				"path":   path,
				"status": strconv.Itoa(status),
			}
			m.RequestTotal.With(labels).Inc()
			m.RequestDuration.With(labels).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
