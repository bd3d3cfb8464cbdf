// Package community holds the user-submitted side of the dashboard:
// temperature predictions with their leaderboard, and community weather
// reports. Everything lives in memory for the lifetime of the process.
package community

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// maxEntries bounds each list; the oldest entries are dropped first.
const maxEntries = 500

// DefaultUser is credited when a submission carries no user name.
const DefaultUser = "You"

var validate = validator.New()

// Report is a community weather observation.
type Report struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Location    string    `json:"location"`
	Report      string    `json:"report"`
	SubmittedAt time.Time `json:"submittedAt"`
	Verified    bool      `json:"verified"`
}

// Prediction is one leaderboard entry.
type Prediction struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Prediction  string    `json:"prediction"`
	Confidence  int       `json:"confidence"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ReportInput is a report as submitted by a user.
type ReportInput struct {
	User        string `json:"user" validate:"omitempty,max=64"`
	Location    string `json:"location" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=500"`
}

// PredictionInput is a temperature prediction as submitted by a user.
type PredictionInput struct {
	User         string   `json:"user" validate:"omitempty,max=64"`
	TemperatureC *float64 `json:"temperatureC" validate:"required,gte=-90,lte=60"`
}

// Board stores reports and predictions. It is safe for concurrent use.
type Board struct {
	mu          sync.RWMutex
	reports     []Report     // newest first
	predictions []Prediction // submission order
	scores      map[string]int

	intN func(n int) int
	now  func() time.Time
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{
		scores: make(map[string]int),
		intN:   rand.Intn,
		now:    time.Now,
	}
}

// NewSeededBoard creates a board pre-filled with the demo entries shown on
// first load.
func NewSeededBoard() *Board {
	b := NewBoard()
	now := b.now().UTC()

	b.predictions = []Prediction{
		{ID: uuid.NewString(), User: "WeatherMaster", Prediction: "Rain in NYC tomorrow at 3PM", Confidence: 85, Score: 1250, SubmittedAt: now},
		{ID: uuid.NewString(), User: "ClimateGuru", Prediction: "Temperature will hit 30°C in Tokyo", Confidence: 72, Score: 980, SubmittedAt: now},
		{ID: uuid.NewString(), User: "StormChaser", Prediction: "Clear skies in London by evening", Confidence: 91, Score: 1580, SubmittedAt: now},
	}
	for _, p := range b.predictions {
		b.scores[p.User] = p.Score
	}

	b.reports = []Report{
		{ID: uuid.NewString(), User: "SkyObserver", Location: "Tower Bridge, London", Report: "Light drizzle starting, umbrellas recommended", SubmittedAt: now.Add(-45 * time.Minute), Verified: true},
		{ID: uuid.NewString(), User: "WeatherEnthusiast", Location: "Shibuya, Tokyo", Report: "Perfect blue skies, great day for outdoor activities", SubmittedAt: now.Add(-1 * time.Hour), Verified: false},
		{ID: uuid.NewString(), User: "LocalWeatherWatcher", Location: "Central Park, NYC", Report: "Heavy morning fog, visibility under 100m", SubmittedAt: now.Add(-2 * time.Hour), Verified: true},
	}
	return b
}

// SubmitReport validates and stores a report. New reports are unverified.
func (b *Board) SubmitReport(in ReportInput) (Report, error) {
	in.User = strings.TrimSpace(in.User)
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)

	if err := validate.Struct(in); err != nil {
		return Report{}, &weather.ValidationError{Field: "report", Message: "Please fill in both location and description!"}
	}

	r := Report{
		ID:          uuid.NewString(),
		User:        userOrDefault(in.User),
		Location:    in.Location,
		Report:      in.Description,
		SubmittedAt: b.now().UTC(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.reports = append([]Report{r}, b.reports...)
	if len(b.reports) > maxEntries {
		b.reports = b.reports[:maxEntries]
	}
	return r, nil
}

// Reports returns all reports, newest first.
func (b *Board) Reports() []Report {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Report, len(b.reports))
	copy(out, b.reports)
	return out
}

// SubmitPrediction validates and records a prediction. The user's score
// grows by 10-59 points per prediction and the entry gets a confidence of
// 70-99%. It returns the entry and the user's new total.
func (b *Board) SubmitPrediction(in PredictionInput) (Prediction, error) {
	in.User = strings.TrimSpace(in.User)
	if err := validate.Struct(in); err != nil {
		return Prediction{}, &weather.ValidationError{Field: "temperatureC", Message: "Please enter a temperature prediction!"}
	}
	user := userOrDefault(in.User)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.scores[user] += b.intN(50) + 10

	p := Prediction{
		ID:          uuid.NewString(),
		User:        user,
		Prediction:  fmt.Sprintf("Temperature: %s°C at 6 PM", strconv.FormatFloat(*in.TemperatureC, 'f', -1, 64)),
		Confidence:  b.intN(30) + 70,
		Score:       b.scores[user],
		SubmittedAt: b.now().UTC(),
	}

	b.predictions = append(b.predictions, p)
	if len(b.predictions) > maxEntries {
		b.predictions = b.predictions[len(b.predictions)-maxEntries:]
	}
	return p, nil
}

// Leaderboard returns predictions ordered by score, highest first. Equal
// scores keep submission order.
func (b *Board) Leaderboard() []Prediction {
	b.mu.RLock()
	out := make([]Prediction, len(b.predictions))
	copy(out, b.predictions)
	b.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Score returns the accumulated score of user.
func (b *Board) Score(user string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.scores[userOrDefault(strings.TrimSpace(user))]
}

func userOrDefault(user string) string {
	if user == "" {
		return DefaultUser
	}
	return user
}
