package weather

import (
	"strings"
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Location is one geocoded place selected by the resolver.
// Name, CountryCode, Latitude and Longitude are always set; the rest is
// informational and may be empty.
type Location struct {
	Name        string  `json:"name"`
	CountryCode string  `json:"countryCode"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	Country  string `json:"country,omitempty"`
	Admin1   string `json:"admin1,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return strings.ToLower(strings.TrimSpace(l.Name)) + ":" + strings.ToUpper(strings.TrimSpace(l.CountryCode))
}

// Label is the "Name, CC" form shown to users.
func (l Location) Label() string {
	if l.CountryCode == "" {
		return l.Name
	}
	return l.Name + ", " + l.CountryCode
}

// CurrentConditions is the latest real-time sample from the forecast API.
// Nil fields were missing from the response.
type CurrentConditions struct {
	Temperature  *float64 `json:"temperature"`
	FeelsLike    *float64 `json:"feelsLike"`
	Humidity     *float64 `json:"humidity"`
	WindSpeedKmh *float64 `json:"windSpeedKmh"`
	WeatherCode  *int     `json:"weatherCode"`
	ObservedAt   string   `json:"observedAt"`
}

// HourlySeries holds index-aligned hourly samples.
type HourlySeries struct {
	Time       []string   `json:"time"`
	UVIndex    []*float64 `json:"uvIndex"`
	Visibility []*float64 `json:"visibility"`
}

// DailySeries holds one entry per calendar day, ascending by date.
type DailySeries struct {
	Date           []string   `json:"date"`
	WeatherCode    []*int     `json:"weatherCode"`
	TemperatureMax []*float64 `json:"temperatureMax"`
	TemperatureMin []*float64 `json:"temperatureMin"`
}

// Len returns the number of days in the series.
func (d *DailySeries) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Date)
}

// TomorrowForecast is the daily entry picked as "tomorrow".
type TomorrowForecast struct {
	Date           string   `json:"date"`
	WeatherCode    *int     `json:"weatherCode"`
	TemperatureMax *float64 `json:"temperatureMax"`
	TemperatureMin *float64 `json:"temperatureMin"`
}

// RawForecast is the decoded forecast response before alignment.
type RawForecast struct {
	Current              CurrentConditions
	Hourly               HourlySeries
	Daily                *DailySeries
	Timezone             string
	TimezoneAbbreviation string
}

// ForecastResult bundles what the fetcher derives from one forecast response.
type ForecastResult struct {
	Current              CurrentConditions `json:"current"`
	UVIndex              *float64          `json:"uvIndex"`
	VisibilityLabel      string            `json:"visibility"`
	Timezone             string            `json:"timezone"`
	TimezoneAbbreviation string            `json:"timezoneAbbreviation"`
	Daily                *DailySeries      `json:"daily,omitempty"`
	Tomorrow             *TomorrowForecast `json:"tomorrow,omitempty"`
}

// Presentation is the icon/description pair shown for a weather code.
type Presentation struct {
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	Condition   Condition `json:"condition"`
}

// WeatherSnapshot is the result of one successful fetch cycle.
// A snapshot is never modified after NewSnapshot returns it.
type WeatherSnapshot struct {
	Location             Location          `json:"location"`
	Current              CurrentConditions `json:"current"`
	UVIndex              *float64          `json:"uvIndex"`
	VisibilityLabel      string            `json:"visibility"`
	Timezone             string            `json:"timezone"`
	TimezoneAbbreviation string            `json:"timezoneAbbreviation"`
	Daily                *DailySeries      `json:"daily,omitempty"`
	Tomorrow             *TomorrowForecast `json:"tomorrow,omitempty"`
	Presentation         Presentation      `json:"presentation"`
	UVCategory           string            `json:"uvCategory"`
	FetchedAt            time.Time         `json:"fetchedAt"` // always UTC
}
