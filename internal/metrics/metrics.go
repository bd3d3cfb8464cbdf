package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Metrics holds the collectors for the weather pipeline and the HTTP API.
// Each instance owns its registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	fetches     *prometheus.CounterVec
	fetchTime   prometheus.Histogram
	requests    *prometheus.CounterVec
	temperature *prometheus.GaugeVec
	lastUpdate  prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_dashboard_fetches_total",
				Help: "Resolve-and-fetch cycles by outcome.",
			},
			[]string{"outcome"},
		),
		fetchTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "weather_dashboard_fetch_duration_seconds",
			Help:    "Duration of resolve-and-fetch cycles.",
			Buckets: prometheus.DefBuckets,
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_dashboard_requests_total",
				Help: "HTTP requests by route, method and status.",
			},
			[]string{"route", "method", "status"},
		),
		temperature: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "weather_dashboard_temperature_celsius",
				Help: "Current temperature of the last fetched location.",
			},
			[]string{"location"},
		),
		lastUpdate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weather_dashboard_last_update_timestamp_seconds",
			Help: "Unix time of the last successful fetch.",
		}),
	}

	m.registry.MustRegister(
		m.fetches,
		m.fetchTime,
		m.requests,
		m.temperature,
		m.lastUpdate,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveFetch implements weather.FetchObserver.
func (m *Metrics) ObserveFetch(outcome string, elapsed time.Duration) {
	m.fetches.WithLabelValues(outcome).Inc()
	m.fetchTime.Observe(elapsed.Seconds())
}

// RecordSnapshot is a session subscriber that exports the latest reading.
func (m *Metrics) RecordSnapshot(snap *weather.WeatherSnapshot) {
	if snap == nil {
		return
	}
	m.temperature.Reset()
	if snap.Current.Temperature != nil {
		m.temperature.WithLabelValues(snap.Location.Label()).Set(*snap.Current.Temperature)
	}
	m.lastUpdate.Set(float64(snap.FetchedAt.Unix()))
}

// Middleware counts every request once the handler chain has finished.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		route := c.Route().Path
		m.requests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
