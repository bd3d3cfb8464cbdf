package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func TestObserveFetch(t *testing.T) {
	m := New()
	m.ObserveFetch("success", 120*time.Millisecond)
	m.ObserveFetch("success", 80*time.Millisecond)
	m.ObserveFetch("busy", 0)

	if got := testutil.ToFloat64(m.fetches.WithLabelValues("success")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.fetches.WithLabelValues("busy")); got != 1 {
		t.Fatalf("expected 1 busy, got %v", got)
	}
}

func TestRecordSnapshot(t *testing.T) {
	m := New()
	temp := 21.5
	fetched := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	m.RecordSnapshot(&weather.WeatherSnapshot{
		Location:  weather.Location{Name: "Paris", CountryCode: "FR"},
		Current:   weather.CurrentConditions{Temperature: &temp},
		FetchedAt: fetched,
	})
	m.RecordSnapshot(nil)

	if got := testutil.ToFloat64(m.temperature.WithLabelValues("Paris, FR")); got != 21.5 {
		t.Fatalf("expected 21.5, got %v", got)
	}
	if got := testutil.ToFloat64(m.lastUpdate); got != float64(fetched.Unix()) {
		t.Fatalf("unexpected last update: %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "nope") })

	for _, path := range []string{"/ok", "/ok", "/missing"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp.Body.Close()
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("/ok", "GET", "200")); got != 2 {
		t.Fatalf("expected 2 requests to /ok, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("/missing", "GET", "404")); got != 1 {
		t.Fatalf("expected 1 request to /missing, got %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "weather_dashboard_requests_total") {
		t.Fatalf("expected request counter in exposition output")
	}
}
