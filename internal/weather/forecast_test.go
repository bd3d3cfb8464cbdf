package weather

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int { return &v }

func TestFindHourlyIndex(t *testing.T) {
	times := []string{"2024-05-01T10:00", "2024-05-01T11:00", "2024-05-01T12:00"}

	tests := []struct {
		name   string
		times  []string
		target string
		want   int
		ok     bool
	}{
		{"empty series", nil, "2024-05-01T10:00", 0, false},
		{"empty target", times, "", 0, true},
		{"exact match", times, "2024-05-01T11:00", 1, true},
		{"nearest later", times, "2024-05-01T11:40", 2, true},
		{"nearest earlier", times, "2024-05-01T10:20", 0, true},
		{"tie goes to earliest", times, "2024-05-01T10:30", 0, true},
		{"target past the end", times, "2024-05-02T00:00", 2, true},
		{"unparseable target", times, "not a time", 0, true},
		{"unparseable entries skipped", []string{"garbage", "2024-05-01T11:00"}, "2024-05-01T10:00", 1, true},
		{"target with seconds", times, "2024-05-01T12:00:00", 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindHourlyIndex(tt.times, tt.target)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("FindHourlyIndex(%v, %q) = (%d, %v), want (%d, %v)", tt.times, tt.target, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFormatVisibility(t *testing.T) {
	tests := []struct {
		in   *float64
		want string
	}{
		{fp(24140), "24.1 km"},
		{fp(12000), "12.0 km"},
		{fp(0), "0.0 km"},
		{fp(1500), "1.5 km"},
		{nil, VisibilityPlaceholder},
		{fp(math.NaN()), VisibilityPlaceholder},
		{fp(math.Inf(1)), VisibilityPlaceholder},
	}
	for _, tt := range tests {
		if got := FormatVisibility(tt.in); got != tt.want {
			t.Errorf("FormatVisibility(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractTomorrow(t *testing.T) {
	now := time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC)
	daily := &DailySeries{
		Date:           []string{"2024-05-01", "2024-05-02", "2024-05-03"},
		WeatherCode:    []*int{ip(0), ip(61), ip(3)},
		TemperatureMax: []*float64{fp(20), fp(18.4), fp(22)},
		TemperatureMin: []*float64{fp(10), fp(9.6), fp(12)},
	}

	got := ExtractTomorrow(daily, now)
	if got == nil || got.Date != "2024-05-02" || *got.WeatherCode != 61 || *got.TemperatureMax != 18.4 {
		t.Fatalf("unexpected tomorrow: %+v", got)
	}

	// No date matches: fall back to the second entry.
	got = ExtractTomorrow(daily, now.AddDate(1, 0, 0))
	if got == nil || got.Date != "2024-05-02" {
		t.Fatalf("expected positional fallback to index 1, got %+v", got)
	}

	single := &DailySeries{Date: []string{"2024-05-01"}, WeatherCode: []*int{ip(2)}}
	got = ExtractTomorrow(single, now.AddDate(1, 0, 0))
	if got == nil || got.Date != "2024-05-01" {
		t.Fatalf("expected fallback to index 0 for single entry, got %+v", got)
	}
	if got.TemperatureMax != nil || got.TemperatureMin != nil {
		t.Fatalf("expected missing temperatures to stay nil, got %+v", got)
	}

	if ExtractTomorrow(nil, now) != nil || ExtractTomorrow(&DailySeries{}, now) != nil {
		t.Fatalf("expected nil for empty daily series")
	}
}

type fakeForecaster struct {
	raw RawForecast
	err error
}

func (f *fakeForecaster) Forecast(context.Context, float64, float64) (RawForecast, error) {
	return f.raw, f.err
}

func TestFetcherAlignsHourlySamples(t *testing.T) {
	raw := RawForecast{
		Current: CurrentConditions{
			Temperature: fp(22.4),
			WeatherCode: ip(2),
			ObservedAt:  "2024-05-01T10:45",
		},
		Hourly: HourlySeries{
			Time:       []string{"2024-05-01T10:00", "2024-05-01T11:00"},
			UVIndex:    []*float64{fp(3.5), fp(6.2)},
			Visibility: []*float64{fp(20000), fp(24140)},
		},
		Daily: &DailySeries{
			Date:        []string{"2024-05-01", "2024-05-02"},
			WeatherCode: []*int{ip(2), ip(63)},
		},
		Timezone: "UTC",
	}

	f := NewFetcher(&fakeForecaster{raw: raw})
	f.now = func() time.Time { return time.Date(2024, 5, 1, 10, 45, 0, 0, time.UTC) }

	got, err := f.Fetch(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UVIndex == nil || *got.UVIndex != 6.2 {
		t.Fatalf("expected UV 6.2, got %v", got.UVIndex)
	}
	if got.VisibilityLabel != "24.1 km" {
		t.Fatalf("expected 24.1 km, got %q", got.VisibilityLabel)
	}
	if got.Tomorrow == nil || got.Tomorrow.Date != "2024-05-02" {
		t.Fatalf("unexpected tomorrow: %+v", got.Tomorrow)
	}
}

func TestFetcherHandlesPartialResponse(t *testing.T) {
	raw := RawForecast{
		Current: CurrentConditions{ObservedAt: "2024-05-01T10:00"},
		Hourly: HourlySeries{
			Time:    []string{"2024-05-01T10:00", "2024-05-01T11:00"},
			UVIndex: []*float64{nil},
		},
	}

	got := BuildForecastResult(raw, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	if got.UVIndex != nil {
		t.Fatalf("expected nil UV, got %v", *got.UVIndex)
	}
	if got.VisibilityLabel != VisibilityPlaceholder {
		t.Fatalf("expected placeholder visibility, got %q", got.VisibilityLabel)
	}
	if got.Tomorrow != nil {
		t.Fatalf("expected no tomorrow without a daily block, got %+v", got.Tomorrow)
	}
}

func TestFetcherReturnsClientError(t *testing.T) {
	want := &ServiceError{Service: "forecast", Message: "Failed to retrieve weather data."}
	_, err := NewFetcher(&fakeForecaster{err: want}).Fetch(context.Background(), 0, 0)
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
