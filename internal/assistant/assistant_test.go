package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int { return &v }

func snapshot(code, tomorrowCode int) *weather.WeatherSnapshot {
	forecast := weather.ForecastResult{
		Current: weather.CurrentConditions{
			Temperature:  fp(22.4),
			FeelsLike:    fp(21.5),
			Humidity:     fp(72),
			WindSpeedKmh: fp(25),
			WeatherCode:  ip(code),
		},
		UVIndex:         fp(6.2),
		VisibilityLabel: "24.1 km",
		Tomorrow: &weather.TomorrowForecast{
			Date:           "2024-05-02",
			WeatherCode:    ip(tomorrowCode),
			TemperatureMax: fp(18.4),
			TemperatureMin: fp(9.6),
		},
	}
	loc := weather.Location{Name: "New York", CountryCode: "US"}
	return weather.NewSnapshot(loc, forecast, time.Now())
}

func newTestChat() *Chat {
	return &Chat{pick: func(int) int { return 2 }}
}

func TestChatTomorrow(t *testing.T) {
	got := newTestChat().Reply(snapshot(0, 61), "What's the FORECAST for tomorrow?")
	want := "Tomorrow in New York, US looks light rain, with a high near 18°C and a low around 10°C. I'll keep you posted if conditions change."
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}

	if got := newTestChat().Reply(nil, "tomorrow?"); !strings.Contains(got, "still gathering") {
		t.Fatalf("expected loading reply, got %q", got)
	}
}

func TestChatUmbrella(t *testing.T) {
	c := newTestChat()
	if got := c.Reply(snapshot(63, 0), "do I need an umbrella"); !strings.Contains(got, "showers are around right now") {
		t.Fatalf("expected rain-now reply, got %q", got)
	}
	if got := c.Reply(snapshot(0, 95), "will it rain"); !strings.Contains(got, "chance of rain tomorrow") {
		t.Fatalf("expected rain-tomorrow reply, got %q", got)
	}
	if got := c.Reply(snapshot(0, 1), "umbrella?"); !strings.HasPrefix(got, "No umbrella needed at the moment in New York, US.") {
		t.Fatalf("expected dry reply, got %q", got)
	}
}

func TestChatAirQuality(t *testing.T) {
	c := newTestChat()
	if got := c.Reply(snapshot(0, 0), "how's the air quality"); !strings.Contains(got, "visibility is around 24.1 km") {
		t.Fatalf("expected visibility proxy, got %q", got)
	}

	s := snapshot(0, 0)
	s.VisibilityLabel = weather.VisibilityPlaceholder
	if got := c.Reply(s, "pollution today?"); got != "I'm not tracking air quality right now, but I'll add it soon!" {
		t.Fatalf("expected unavailable reply, got %q", got)
	}
}

func TestChatOutdoorAndHealth(t *testing.T) {
	c := newTestChat()
	got := c.Reply(snapshot(2, 0), "any outdoor activities?")
	if !strings.Contains(got, "22°C, partly cloudy") || !strings.Contains(got, "UV index is 6.2 (High).") {
		t.Fatalf("unexpected outdoor reply: %q", got)
	}

	got = c.Reply(snapshot(0, 0), "health recommendation please")
	for _, want := range []string{"stay hydrated", "SPF 30+", "gusty winds"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}

	calm := snapshot(0, 0)
	calm.Current.Humidity = fp(40)
	calm.Current.WindSpeedKmh = fp(5)
	calm.UVIndex = nil
	if got := c.Reply(calm, "health"); !strings.HasPrefix(got, "Nothing extreme right now.") {
		t.Fatalf("expected calm reply, got %q", got)
	}
}

func TestChatFallback(t *testing.T) {
	if got := newTestChat().Reply(nil, "tell me a joke"); got != cannedReplies[2] {
		t.Fatalf("expected canned reply, got %q", got)
	}
	if WelcomeMessage != cannedReplies[0] {
		t.Fatalf("welcome message should be the first canned reply")
	}
}

func TestVoiceCommands(t *testing.T) {
	snap := snapshot(2, 61)

	tests := []struct {
		command    string
		recognized bool
		section    string
		contains   string
	}{
		{"What's the weather?", true, "", "New York, US: 22°C, partly cloudy"},
		{"Hey weather, show me tomorrow’s forecast", true, "predictions", "Tomorrow in New York, US: Light rain, high 18°C, low 10°C."},
		{"what's the air quality", true, "", "visibility is around 24.1 km"},
		{"Should I carry an umbrella", true, "", "Keep an umbrella close"},
		{"show me the 3D globe", true, "globe", "Opening 3D weather globe"},
		{"  open   community reports. ", true, "community", "Opening community weather reports"},
		{"play some music", false, "", "Sorry, I didn't catch that."},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			resp := Voice(snap, tt.command)
			if resp.Recognized != tt.recognized || resp.Section != tt.section {
				t.Fatalf("unexpected response: %+v", resp)
			}
			if !strings.Contains(resp.Message, tt.contains) {
				t.Fatalf("expected %q in %q", tt.contains, resp.Message)
			}
		})
	}
}

func TestVoiceWithoutData(t *testing.T) {
	resp := Voice(nil, CommandTomorrow)
	if resp.Level != weather.LevelWarning || resp.Section != "predictions" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp := Voice(nil, CommandAirQuality); resp.Level != weather.LevelWarning {
		t.Fatalf("expected warning without visibility data, got %+v", resp)
	}
	if resp := Voice(nil, CommandUmbrella); !strings.Contains(resp.Message, "No umbrella needed") {
		t.Fatalf("unexpected umbrella reply: %+v", resp)
	}
}
