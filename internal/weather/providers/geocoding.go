package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultGeocodingURL is the Open-Meteo geocoding search endpoint.
const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// OpenMeteoGeocoder implements weather.GeocodingClient for Open-Meteo.
type OpenMeteoGeocoder struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoGeocoder creates a geocoder. An empty baseURL uses DefaultGeocodingURL.
func NewOpenMeteoGeocoder(client *http.Client, baseURL string, backoff BackoffConfig) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &OpenMeteoGeocoder{
		name:    "openmeteo-geocoding",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

func (g *OpenMeteoGeocoder) Name() string {
	return g.name
}

// Search returns up to count ranked candidates for name. No results is not
// an error here; the resolver decides what that means.
func (g *OpenMeteoGeocoder) Search(ctx context.Context, name string, count int) ([]weather.Location, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", name)
		values.Set("count", strconv.Itoa(count))
		values.Set("language", "en")
		values.Set("format", "json")

		u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	var payload struct {
		Results []struct {
			Name        string  `json:"name"`
			CountryCode string  `json:"country_code"`
			Country     string  `json:"country"`
			Admin1      string  `json:"admin1"`
			Latitude    float64 `json:"latitude"`
			Longitude   float64 `json:"longitude"`
			Timezone    string  `json:"timezone"`
		} `json:"results"`
	}

	if err := getJSON(ctx, g.httpCfg, g.circuit, buildRequest, &payload); err != nil {
		return nil, &weather.ServiceError{
			Service: "geocoding",
			Message: "Failed to contact the geocoding service.",
			Err:     err,
		}
	}

	locations := make([]weather.Location, 0, len(payload.Results))
	for _, r := range payload.Results {
		locations = append(locations, weather.Location{
			Name:        r.Name,
			CountryCode: r.CountryCode,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Country:     r.Country,
			Admin1:      r.Admin1,
			Timezone:    r.Timezone,
		})
	}
	return locations, nil
}
