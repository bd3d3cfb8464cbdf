// Package dashboard turns weather snapshots into the display-ready view the
// dashboard UI binds to.
package dashboard

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const unavailable = "N/A"

// DefaultAreas are the micro-areas shown under the main reading.
var DefaultAreas = []string{"Downtown Manhattan", "Central Park", "Brooklyn Bridge"}

// microAdjustments are applied to the base temperature by area position,
// wrapping around when there are more areas than adjustments.
var microAdjustments = []float64{1.2, -0.8, 0.5, -1.5, 0.9}

// Microclimate is one micro-area card.
type Microclimate struct {
	Area        string `json:"area"`
	Temperature string `json:"temperature"`
	Variance    string `json:"variance"`
}

// View is everything the dashboard displays for one snapshot.
type View struct {
	Ready         bool           `json:"ready"`
	Location      string         `json:"location"`
	Coordinates   string         `json:"coordinates"`
	Temperature   string         `json:"temperature"`
	FeelsLike     string         `json:"feelsLike"`
	Humidity      string         `json:"humidity"`
	Wind          string         `json:"wind"`
	UV            string         `json:"uv"`
	Visibility    string         `json:"visibility"`
	Icon          string         `json:"icon"`
	Description   string         `json:"description"`
	Tomorrow      string         `json:"tomorrow,omitempty"`
	Timezone      string         `json:"timezone,omitempty"`
	Microclimates []Microclimate `json:"microclimates,omitempty"`
	UpdatedAt     string         `json:"updatedAt,omitempty"`
}

// Build renders snap. A nil snapshot yields a view with Ready unset.
func Build(snap *weather.WeatherSnapshot, areas []string) View {
	if snap == nil {
		return View{}
	}

	c := snap.Current
	v := View{
		Ready:       true,
		Location:    snap.Location.Label(),
		Coordinates: weather.FormatCoordinates(snap.Location.Latitude, snap.Location.Longitude),
		Temperature: withUnit(c.Temperature, "°C"),
		FeelsLike:   withUnit(c.FeelsLike, "°C"),
		Humidity:    withUnit(c.Humidity, "%"),
		Wind:        withUnit(c.WindSpeedKmh, " km/h"),
		UV:          unavailable,
		Visibility:  snap.VisibilityLabel,
		Icon:        snap.Presentation.Icon,
		Description: snap.Presentation.Description,
		Timezone:    snap.TimezoneAbbreviation,
		UpdatedAt:   snap.FetchedAt.Format(time.RFC3339),
	}
	if v.Visibility == "" {
		v.Visibility = weather.VisibilityPlaceholder
	}
	if snap.UVCategory != unavailable && snap.UVIndex != nil {
		v.UV = fmt.Sprintf("%.1f %s", *snap.UVIndex, snap.UVCategory)
	}
	if t := snap.Tomorrow; t != nil {
		p := weather.PresentationFor(t.WeatherCode)
		v.Tomorrow = fmt.Sprintf("%s %s, %s / %s", p.Icon, p.Description,
			withUnit(t.TemperatureMax, "°C"), withUnit(t.TemperatureMin, "°C"))
	}
	v.Microclimates = microclimates(c.Temperature, areas)
	return v
}

// microclimates returns nil when the base temperature is unavailable.
func microclimates(base *float64, areas []string) []Microclimate {
	if _, ok := weather.Rounded(base); !ok {
		return nil
	}

	out := make([]Microclimate, 0, len(areas))
	for i, area := range areas {
		adj := microAdjustments[i%len(microAdjustments)]
		t := *base + adj

		prefix := ""
		if adj > 0 {
			prefix = "+"
		}
		out = append(out, Microclimate{
			Area:        area,
			Temperature: withUnit(&t, "°C"),
			Variance:    fmt.Sprintf("%s%.1f°C from average", prefix, adj),
		})
	}
	return out
}

func withUnit(v *float64, unit string) string {
	n, ok := weather.Rounded(v)
	if !ok {
		return unavailable
	}
	return fmt.Sprintf("%d%s", n, unit)
}

// Renderer keeps the latest View. Register Render as a session subscriber.
type Renderer struct {
	areas []string

	mu      sync.RWMutex
	view    View
	renders int
}

// NewRenderer creates a Renderer for areas; nil means DefaultAreas.
func NewRenderer(areas []string) *Renderer {
	if areas == nil {
		areas = DefaultAreas
	}
	return &Renderer{areas: areas}
}

// Render rebuilds the view from snap.
func (r *Renderer) Render(snap *weather.WeatherSnapshot) {
	v := Build(snap, r.areas)

	r.mu.Lock()
	r.view = v
	r.renders++
	r.mu.Unlock()

	if v.Ready {
		log.Printf("DEBUG: dashboard: rendered %s (%s, %s)", v.Location, v.Temperature, v.Description)
	}
}

// View returns the last rendered view.
func (r *Renderer) View() View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view
}

// Renders returns how many times Render ran.
func (r *Renderer) Renders() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.renders
}
