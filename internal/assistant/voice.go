package assistant

import (
	"strings"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Supported voice commands.
const (
	CommandWeather    = "what's the weather"
	CommandTomorrow   = "show me tomorrow's forecast"
	CommandAirQuality = "what's the air quality"
	CommandUmbrella   = "should i carry an umbrella"
	CommandGlobe      = "show me the 3d globe"
	CommandCommunity  = "open community reports"
)

// Commands lists the supported voice commands in display order.
var Commands = []string{
	CommandWeather,
	CommandTomorrow,
	CommandAirQuality,
	CommandUmbrella,
	CommandGlobe,
	CommandCommunity,
}

// VoiceResponse is what the dashboard shows after a voice command. Section,
// when set, is the dashboard section the UI should switch to.
type VoiceResponse struct {
	Command    string `json:"command"`
	Recognized bool   `json:"recognized"`
	Level      string `json:"level"`
	Message    string `json:"message"`
	Section    string `json:"section,omitempty"`
}

// Voice answers a spoken command.
func Voice(snap *weather.WeatherSnapshot, command string) VoiceResponse {
	cmd := normalizeCommand(command)
	resp := VoiceResponse{Command: cmd, Recognized: true, Level: weather.LevelInfo}

	switch cmd {
	case CommandWeather:
		if summary, ok := weather.Summary(snap); ok {
			resp.Message = "🎤 " + summary
		} else {
			resp.Message = "🎤 I am still gathering the latest readings, try again in a moment."
		}

	case CommandTomorrow:
		resp.Section = "predictions"
		if snap != nil && snap.Tomorrow != nil {
			desc, high, low := tomorrowOutlook(snap.Tomorrow)
			resp.Message = "🎤 Tomorrow in " + locationName(snap) + ": " + desc + ", high " + high + ", low " + low + "."
		} else {
			resp.Level = weather.LevelWarning
			resp.Message = "🎤 Forecast data is loading, check back shortly for tomorrow's outlook."
		}

	case CommandAirQuality:
		if vis, ok := visibility(snap); ok {
			resp.Message = "🎤 I don't have air-quality sensors yet, but visibility is around " + vis + "."
		} else {
			resp.Level = weather.LevelWarning
			resp.Message = "🎤 Air-quality data is not available yet, but I will add it soon!"
		}

	case CommandUmbrella:
		if now, tomorrow := rainOutlook(snap); now || tomorrow {
			resp.Message = "🎤 Keep an umbrella close, rain is either happening now or expected soon."
		} else {
			resp.Message = "🎤 Skies look dry for now. No umbrella needed!"
		}

	case CommandGlobe:
		resp.Section = "globe"
		resp.Message = "🎤 Opening 3D weather globe..."

	case CommandCommunity:
		resp.Section = "community"
		resp.Message = "🎤 Opening community weather reports..."

	default:
		resp.Recognized = false
		resp.Level = weather.LevelWarning
		resp.Message = `🎤 Sorry, I didn't catch that. Try saying "` + CommandWeather + `".`
	}

	return resp
}

func normalizeCommand(command string) string {
	cmd := strings.ReplaceAll(command, "’", "'")
	cmd = common.Normalize(cmd)
	cmd = strings.TrimPrefix(cmd, "hey weather")
	return strings.Trim(cmd, " ?!.,")
}
