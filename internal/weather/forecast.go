package weather

import (
	"context"
	"fmt"
	"math"
	"time"
)

// VisibilityPlaceholder is rendered when no visibility sample is available.
const VisibilityPlaceholder = "—"

// Layouts accepted for upstream timestamps. Open-Meteo sends local ISO time
// without seconds or offset.
var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Fetcher retrieves a forecast for coordinates and derives the aligned
// hourly values and the tomorrow summary.
type Fetcher struct {
	client ForecastClient
	now    func() time.Time
}

// NewFetcher creates a Fetcher using the wall clock.
func NewFetcher(client ForecastClient) *Fetcher {
	return &Fetcher{client: client, now: time.Now}
}

// Fetch requests the forecast and builds a ForecastResult from it.
func (f *Fetcher) Fetch(ctx context.Context, lat, lon float64) (ForecastResult, error) {
	raw, err := f.client.Forecast(ctx, lat, lon)
	if err != nil {
		return ForecastResult{}, err
	}
	return BuildForecastResult(raw, f.now()), nil
}

// BuildForecastResult aligns the hourly series to the current sample and
// extracts tomorrow relative to now.
func BuildForecastResult(raw RawForecast, now time.Time) ForecastResult {
	result := ForecastResult{
		Current:              raw.Current,
		VisibilityLabel:      VisibilityPlaceholder,
		Timezone:             raw.Timezone,
		TimezoneAbbreviation: raw.TimezoneAbbreviation,
		Daily:                raw.Daily,
	}

	if idx, ok := FindHourlyIndex(raw.Hourly.Time, raw.Current.ObservedAt); ok {
		result.UVIndex = sampleAt(raw.Hourly.UVIndex, idx)
		result.VisibilityLabel = FormatVisibility(sampleAt(raw.Hourly.Visibility, idx))
	}

	result.Tomorrow = ExtractTomorrow(raw.Daily, localNow(now, raw.Timezone))
	return result
}

// FindHourlyIndex picks the hourly sample to use for target.
//
// It returns false when times is empty. An empty target selects index 0.
// An exact string match wins; otherwise the entry closest in time is used,
// with ties going to the earliest entry.
func FindHourlyIndex(times []string, target string) (int, bool) {
	if len(times) == 0 {
		return 0, false
	}
	if target == "" {
		return 0, true
	}

	for i, t := range times {
		if t == target {
			return i, true
		}
	}

	targetTS, ok := parseTimestamp(target)
	if !ok {
		return 0, true
	}

	closest := 0
	smallest := time.Duration(math.MaxInt64)
	for i, t := range times {
		ts, ok := parseTimestamp(t)
		if !ok {
			continue
		}
		diff := ts.Sub(targetTS)
		if diff < 0 {
			diff = -diff
		}
		if diff < smallest {
			smallest = diff
			closest = i
		}
	}
	return closest, true
}

// FormatVisibility renders metres as kilometres with one decimal.
func FormatVisibility(meters *float64) string {
	if !finite(meters) {
		return VisibilityPlaceholder
	}
	return fmt.Sprintf("%.1f km", *meters/1000)
}

// ExtractTomorrow picks the daily entry dated the day after now. When no
// entry carries that date it falls back to position min(1, len-1).
func ExtractTomorrow(daily *DailySeries, now time.Time) *TomorrowForecast {
	if daily.Len() == 0 {
		return nil
	}

	key := now.AddDate(0, 0, 1).Format("2006-01-02")
	idx := -1
	for i, d := range daily.Date {
		if d == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = min(1, daily.Len()-1)
	}

	return &TomorrowForecast{
		Date:           daily.Date[idx],
		WeatherCode:    intAt(daily.WeatherCode, idx),
		TemperatureMax: sampleAt(daily.TemperatureMax, idx),
		TemperatureMin: sampleAt(daily.TemperatureMin, idx),
	}
}

// localNow moves now into the forecast's zone so "tomorrow" follows the
// location's calendar. Unknown zones keep the process-local date.
func localNow(now time.Time, timezone string) time.Time {
	if timezone == "" {
		return now.Local()
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return now.Local()
	}
	return now.In(loc)
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// sampleAt returns values[idx] when present and finite.
func sampleAt(values []*float64, idx int) *float64 {
	if idx < 0 || idx >= len(values) || !finite(values[idx]) {
		return nil
	}
	v := *values[idx]
	return &v
}

func intAt(values []*int, idx int) *int {
	if idx < 0 || idx >= len(values) || values[idx] == nil {
		return nil
	}
	v := *values[idx]
	return &v
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
