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

// DefaultForecastURL is the Open-Meteo forecast endpoint.
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

const (
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m"
	hourlyFields  = "uv_index,visibility"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min"
)

// OpenMeteoProvider implements weather.ForecastClient for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider creates a forecast client. An empty baseURL uses DefaultForecastURL.
func NewOpenMeteoProvider(client *http.Client, baseURL string, backoff BackoffConfig) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// openMeteoForecast mirrors the forecast response. Every value is a pointer
// because Open-Meteo sends null for samples it does not have.
type openMeteoForecast struct {
	Timezone             string `json:"timezone"`
	TimezoneAbbreviation string `json:"timezone_abbreviation"`
	Current              *struct {
		Time                string   `json:"time"`
		Temperature2m       *float64 `json:"temperature_2m"`
		RelativeHumidity2m  *float64 `json:"relative_humidity_2m"`
		ApparentTemperature *float64 `json:"apparent_temperature"`
		WeatherCode         *int     `json:"weather_code"`
		WindSpeed10m        *float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Hourly *struct {
		Time       []string   `json:"time"`
		UVIndex    []*float64 `json:"uv_index"`
		Visibility []*float64 `json:"visibility"`
	} `json:"hourly"`
	Daily *struct {
		Time             []string   `json:"time"`
		WeatherCode      []*int     `json:"weather_code"`
		Temperature2mMax []*float64 `json:"temperature_2m_max"`
		Temperature2mMin []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// Forecast fetches current, hourly and daily data for the coordinates.
func (p *OpenMeteoProvider) Forecast(ctx context.Context, lat, lon float64) (weather.RawForecast, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("current", currentFields)
		values.Set("hourly", hourlyFields)
		values.Set("daily", dailyFields)
		values.Set("timezone", "auto")
		values.Set("windspeed_unit", "kmh")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	var payload openMeteoForecast
	if err := getJSON(ctx, p.httpCfg, p.circuit, buildRequest, &payload); err != nil {
		return weather.RawForecast{}, &weather.ServiceError{
			Service: "forecast",
			Message: "Failed to retrieve weather data.",
			Err:     err,
		}
	}

	return payload.toRaw(), nil
}

func (f openMeteoForecast) toRaw() weather.RawForecast {
	raw := weather.RawForecast{
		Timezone:             f.Timezone,
		TimezoneAbbreviation: f.TimezoneAbbreviation,
	}

	if c := f.Current; c != nil {
		raw.Current = weather.CurrentConditions{
			Temperature:  c.Temperature2m,
			FeelsLike:    c.ApparentTemperature,
			Humidity:     c.RelativeHumidity2m,
			WindSpeedKmh: c.WindSpeed10m,
			WeatherCode:  c.WeatherCode,
			ObservedAt:   c.Time,
		}
	}

	if h := f.Hourly; h != nil {
		raw.Hourly = weather.HourlySeries{
			Time:       h.Time,
			UVIndex:    h.UVIndex,
			Visibility: h.Visibility,
		}
	}

	if d := f.Daily; d != nil {
		raw.Daily = &weather.DailySeries{
			Date:           d.Time,
			WeatherCode:    d.WeatherCode,
			TemperatureMax: d.Temperature2mMax,
			TemperatureMin: d.Temperature2mMin,
		}
	}

	return raw
}
