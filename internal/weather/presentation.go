package weather

import (
	"fmt"
	"math"
	"strings"
)

// fallbackPresentation is used for codes outside the WMO table.
var fallbackPresentation = Presentation{Icon: "🌡️", Description: "Weather update", Condition: ConditionUnknown}

// weatherCodes maps WMO weather interpretation codes as used by Open-Meteo.
var weatherCodes = map[int]Presentation{
	0:  {Icon: "☀️", Description: "Clear sky", Condition: ConditionClear},
	1:  {Icon: "🌤️", Description: "Mainly clear", Condition: ConditionClear},
	2:  {Icon: "⛅", Description: "Partly cloudy", Condition: ConditionCloudy},
	3:  {Icon: "☁️", Description: "Overcast", Condition: ConditionCloudy},
	45: {Icon: "🌫️", Description: "Fog", Condition: ConditionMist},
	48: {Icon: "🌫️", Description: "Depositing rime fog", Condition: ConditionMist},
	51: {Icon: "🌦️", Description: "Light drizzle", Condition: ConditionRain},
	53: {Icon: "🌦️", Description: "Drizzle", Condition: ConditionRain},
	55: {Icon: "🌧️", Description: "Dense drizzle", Condition: ConditionRain},
	61: {Icon: "🌦️", Description: "Light rain", Condition: ConditionRain},
	63: {Icon: "🌧️", Description: "Rain", Condition: ConditionRain},
	65: {Icon: "🌧️", Description: "Heavy rain", Condition: ConditionRain},
	71: {Icon: "🌨️", Description: "Snow fall", Condition: ConditionSnow},
	73: {Icon: "🌨️", Description: "Snow showers", Condition: ConditionSnow},
	75: {Icon: "❄️", Description: "Heavy snow", Condition: ConditionSnow},
	77: {Icon: "🌨️", Description: "Snow grains", Condition: ConditionSnow},
	80: {Icon: "🌦️", Description: "Rain showers", Condition: ConditionRain},
	81: {Icon: "🌧️", Description: "Heavy showers", Condition: ConditionRain},
	82: {Icon: "⛈️", Description: "Violent showers", Condition: ConditionRain},
	85: {Icon: "🌨️", Description: "Snow showers", Condition: ConditionSnow},
	86: {Icon: "❄️", Description: "Heavy snow showers", Condition: ConditionSnow},
	95: {Icon: "⛈️", Description: "Thunderstorm", Condition: ConditionStorm},
	96: {Icon: "⛈️", Description: "Thunderstorm with hail", Condition: ConditionStorm},
	99: {Icon: "⛈️", Description: "Severe thunderstorm", Condition: ConditionStorm},
}

// MapWeatherCode returns the presentation for a weather code. Unknown codes
// get a generic "Weather update".
func MapWeatherCode(code int) Presentation {
	if p, ok := weatherCodes[code]; ok {
		return p
	}
	return fallbackPresentation
}

// PresentationFor is MapWeatherCode for a possibly missing code.
func PresentationFor(code *int) Presentation {
	if code == nil {
		return fallbackPresentation
	}
	return MapWeatherCode(*code)
}

// UVCategory buckets a UV index. Boundary values belong to the higher
// category; missing or non-finite input yields "N/A".
func UVCategory(uv *float64) string {
	if !finite(uv) {
		return "N/A"
	}
	switch v := *uv; {
	case v < 3:
		return "Low"
	case v < 6:
		return "Moderate"
	case v < 8:
		return "High"
	case v < 11:
		return "Very High"
	default:
		return "Extreme"
	}
}

// Summary renders the one-sentence current-conditions summary read by the
// chat and voice responders. Unavailable fields are left out.
func Summary(s *WeatherSnapshot) (string, bool) {
	if s == nil {
		return "", false
	}

	c := s.Current
	parts := make([]string, 0, 5)
	if finite(c.Temperature) {
		parts = append(parts, fmt.Sprintf("%d°C", round(*c.Temperature)))
	}
	if d := strings.ToLower(s.Presentation.Description); d != "" {
		parts = append(parts, d)
	}
	if finite(c.FeelsLike) {
		parts = append(parts, fmt.Sprintf("feels like %d°C", round(*c.FeelsLike)))
	}
	if finite(c.Humidity) {
		parts = append(parts, fmt.Sprintf("%d%% humidity", round(*c.Humidity)))
	}
	if finite(c.WindSpeedKmh) {
		parts = append(parts, fmt.Sprintf("%d km/h winds", round(*c.WindSpeedKmh)))
	}

	name := s.Location.Label()
	if name == "" {
		name = "your area"
	}
	return fmt.Sprintf("%s: %s.", name, strings.Join(parts, ", ")), true
}

// FormatCoordinates renders "40.71° N, 74.01° W".
func FormatCoordinates(lat, lon float64) string {
	format := func(v float64, pos, neg string) string {
		suffix := pos
		if v < 0 {
			suffix = neg
		}
		return fmt.Sprintf("%.2f° %s", math.Abs(v), suffix)
	}
	return format(lat, "N", "S") + ", " + format(lon, "E", "W")
}

// round rounds halves toward +Inf (-2.5 -> -2, 2.5 -> 3).
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Rounded formats a reading as an integer, or ok=false if unavailable.
func Rounded(v *float64) (int, bool) {
	if !finite(v) {
		return 0, false
	}
	return round(*v), true
}
