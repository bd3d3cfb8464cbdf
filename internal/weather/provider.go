package weather

import (
	"context"
	"time"
)

// GeocodingClient abstracts the geocoding lookup (Open-Meteo in production).
// Candidates are returned in upstream rank order.
type GeocodingClient interface {
	Search(ctx context.Context, name string, count int) ([]Location, error)
}

// ForecastClient abstracts the forecast lookup.
type ForecastClient interface {
	Forecast(ctx context.Context, lat, lon float64) (RawForecast, error)
}

// Store is the contract the in-memory snapshot history must satisfy.
type Store interface {
	SaveSnapshot(loc Location, snapshot WeatherSnapshot)
	GetLatest(loc Location) (WeatherSnapshot, error)
	GetRange(loc Location, from, to time.Time) ([]WeatherSnapshot, error)
}

// FetchObserver is told about every settled fetch cycle. outcome is one of
// "success", "validation", "not_found", "service", "busy" or "error".
type FetchObserver interface {
	ObserveFetch(outcome string, elapsed time.Duration)
}
