package assistant

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// cannedReplies answer messages that match no intent. The first one doubles
// as the welcome message.
var cannedReplies = []string{
	"I can help you with weather forecasts, climate patterns, and personalized recommendations. What would you like to know?",
	"Based on current conditions, I recommend light layers and an umbrella for today.",
	"The atmospheric pressure is dropping, which typically indicates incoming weather changes.",
	"Would you like me to set up health alerts based on tomorrow's weather conditions?",
}

// WelcomeMessage opens every chat.
var WelcomeMessage = cannedReplies[0]

// Chat answers free-text questions about the current weather.
type Chat struct {
	pick func(n int) int
}

// NewChat creates a Chat that picks fallback replies at random.
func NewChat() *Chat {
	return &Chat{pick: rand.Intn}
}

// Reply answers message using snap, which may be nil before the first fetch.
func (c *Chat) Reply(snap *weather.WeatherSnapshot, message string) string {
	msg := common.Normalize(message)
	summary, hasSummary := weather.Summary(snap)
	name := locationName(snap)

	switch {
	case common.HasAny(msg, "tomorrow", "forecast"):
		if snap != nil && snap.Tomorrow != nil {
			desc, high, low := tomorrowOutlook(snap.Tomorrow)
			return fmt.Sprintf("Tomorrow in %s looks %s, with a high near %s and a low around %s. I'll keep you posted if conditions change.",
				name, strings.ToLower(desc), high, low)
		}
		if hasSummary {
			return "I don't have tomorrow's forecast yet, but right now " + summary
		}
		return "I'm still gathering data for that forecast. Ask me again in a bit!"

	case common.HasAny(msg, "umbrella", "rain"):
		rainNow, rainTomorrow := rainOutlook(snap)
		switch {
		case rainNow:
			return "I'd keep an umbrella handy, showers are around right now. Better to stay dry!"
		case rainTomorrow:
			return "I'd keep an umbrella handy, there is a decent chance of rain tomorrow. Better to stay dry!"
		}
		return fmt.Sprintf("No umbrella needed at the moment in %s. Skies look clear, but I'll alert you if that changes.", name)

	case common.HasAny(msg, "air quality", "pollution"):
		if vis, ok := visibility(snap); ok && hasSummary {
			return fmt.Sprintf("I don't have live air-quality sensors yet, but visibility is around %s, which usually indicates clean air. %s", vis, summary)
		}
		return "I'm not tracking air quality right now, but I'll add it soon!"

	case common.HasAny(msg, "outdoor", "activities"):
		if snap == nil {
			return "Once I have the latest readings, I'll help you plan outdoor time."
		}
		temp := "comfortable temperatures"
		if n, ok := weather.Rounded(snap.Current.Temperature); ok {
			temp = fmt.Sprintf("%d°C", n)
		}
		uvAdvice := "UV index looks mild."
		if snap.UVIndex != nil {
			uvAdvice = fmt.Sprintf("UV index is %.1f (%s).", *snap.UVIndex, snap.UVCategory)
		}
		return fmt.Sprintf("Conditions in %s are great for being outdoors: %s, %s. %s Plan your activities and stay hydrated!",
			name, temp, strings.ToLower(snap.Presentation.Description), uvAdvice)

	case common.HasAny(msg, "health", "recommendation"):
		if tips := healthTips(snap); len(tips) > 0 {
			return fmt.Sprintf("Health check for %s: %s. Enjoy your day safely!", name, strings.Join(tips, ", "))
		}
		if hasSummary {
			return "Nothing extreme right now. " + summary + " Enjoy the fresh air!"
		}
		return "Everything looks stable, enjoy the day!"
	}

	return cannedReplies[c.pick(len(cannedReplies))]
}

// healthTips lists advice triggered by humidity above 60%, UV of 3 or more
// and winds above 20 km/h.
func healthTips(snap *weather.WeatherSnapshot) []string {
	if snap == nil {
		return nil
	}

	var tips []string
	if h := snap.Current.Humidity; h != nil && !math.IsNaN(*h) && *h > 60 {
		tips = append(tips, "stay hydrated because humidity is elevated")
	}
	if uv := snap.UVIndex; uv != nil && *uv >= 3 {
		tips = append(tips, fmt.Sprintf("apply SPF 30+ sunscreen (UV index %.1f, %s)", *uv, snap.UVCategory))
	}
	if w := snap.Current.WindSpeedKmh; w != nil && !math.IsNaN(*w) && *w > 20 {
		tips = append(tips, "watch for gusty winds")
	}
	return tips
}
