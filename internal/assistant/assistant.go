// Package assistant produces the simulated chat and voice replies shown on
// the dashboard. Every reply is a function of the current snapshot and the
// user's input; nothing here performs I/O.
package assistant

import (
	"fmt"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// rainyCodes are the weather codes that warrant an umbrella.
var rainyCodes = map[int]struct{}{
	51: {}, 53: {}, 55: {},
	61: {}, 63: {}, 65: {}, 66: {}, 67: {},
	80: {}, 81: {}, 82: {},
	95: {}, 96: {}, 99: {},
}

func isRainy(code *int) bool {
	if code == nil {
		return false
	}
	_, ok := rainyCodes[*code]
	return ok
}

// rainOutlook reports whether rain is falling now or expected tomorrow.
func rainOutlook(snap *weather.WeatherSnapshot) (now, tomorrow bool) {
	if snap == nil {
		return false, false
	}
	now = isRainy(snap.Current.WeatherCode)
	if snap.Tomorrow != nil {
		tomorrow = isRainy(snap.Tomorrow.WeatherCode)
	}
	return now, tomorrow
}

func locationName(snap *weather.WeatherSnapshot) string {
	if snap == nil || snap.Location.Name == "" {
		return "your area"
	}
	return snap.Location.Label()
}

func degrees(v *float64) string {
	if n, ok := weather.Rounded(v); ok {
		return fmt.Sprintf("%d°C", n)
	}
	return "N/A"
}

// visibility returns the snapshot's visibility label when a reading exists.
func visibility(snap *weather.WeatherSnapshot) (string, bool) {
	if snap == nil || snap.VisibilityLabel == "" || snap.VisibilityLabel == weather.VisibilityPlaceholder {
		return "", false
	}
	return snap.VisibilityLabel, true
}

// tomorrowOutlook returns the description, high and low for tomorrow.
func tomorrowOutlook(t *weather.TomorrowForecast) (desc, high, low string) {
	p := weather.PresentationFor(t.WeatherCode)
	return p.Description, degrees(t.TemperatureMax), degrees(t.TemperatureMin)
}
