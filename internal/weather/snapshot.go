package weather

import "time"

// NewSnapshot assembles the snapshot for one successful fetch cycle.
func NewSnapshot(loc Location, forecast ForecastResult, fetchedAt time.Time) *WeatherSnapshot {
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	return &WeatherSnapshot{
		Location:             loc,
		Current:              forecast.Current,
		UVIndex:              forecast.UVIndex,
		VisibilityLabel:      forecast.VisibilityLabel,
		Timezone:             forecast.Timezone,
		TimezoneAbbreviation: forecast.TimezoneAbbreviation,
		Daily:                forecast.Daily,
		Tomorrow:             forecast.Tomorrow,
		Presentation:         PresentationFor(forecast.Current.WeatherCode),
		UVCategory:           UVCategory(forecast.UVIndex),
		FetchedAt:            fetchedAt.UTC(),
	}
}
