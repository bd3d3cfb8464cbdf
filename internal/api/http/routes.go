package httpapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/assistant"
	"github.com/i474232898/weather-dashboard/internal/community"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// Deps are the components the HTTP API serves.
type Deps struct {
	Session  *weather.Session
	Renderer *dashboard.Renderer
	Chat     *assistant.Chat
	Board    *community.Board
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		if c.Query("city") == "" {
			snapshot := d.Session.Snapshot()
			if snapshot == nil {
				return fiber.NewError(fiber.StatusNotFound, "no weather data yet")
			}
			return c.JSON(snapshot)
		}

		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := d.Session.GetLatest(locReq.toLocation())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) || errors.Is(err, weather.ErrNoHistory) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		return c.JSON(snapshot)
	})

	v1.Get("/weather/summary", func(c *fiber.Ctx) error {
		summary, ok := d.Session.Summary()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no weather data yet")
		}
		return c.JSON(fiber.Map{"summary": summary})
	})

	v1.Post("/weather/fetch", func(c *fiber.Ctx) error {
		var req fetchRequest
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := d.Session.ResolveAndFetch(c.UserContext(), req.City, req.Country)
		notification := weather.NotificationFor(snapshot, err)
		if err != nil {
			return fiber.NewError(fetchErrorStatus(err), notification.Message)
		}

		return c.JSON(fiber.Map{
			"notification": notification,
			"snapshot":     snapshot,
		})
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := req.Location.toLocation()
		snapshots, err := d.Session.GetRange(loc, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) || errors.Is(err, weather.ErrNoHistory) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}

		return c.JSON(fiber.Map{
			"location":  loc,
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"fetching": d.Session.Fetching(),
			"view":     d.Renderer.View(),
		})
	})

	v1.Post("/assistant/chat", func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		req.Message = strings.TrimSpace(req.Message)
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "message is required")
		}

		return c.JSON(fiber.Map{
			"message": req.Message,
			"reply":   d.Chat.Reply(d.Session.Snapshot(), req.Message),
		})
	})

	v1.Post("/assistant/voice", func(c *fiber.Ctx) error {
		var req voiceRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "command is required")
		}

		return c.JSON(assistant.Voice(d.Session.Snapshot(), req.Command))
	})

	v1.Get("/assistant/commands", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"welcome":  assistant.WelcomeMessage,
			"commands": assistant.Commands,
		})
	})

	v1.Get("/community/reports", func(c *fiber.Ctx) error {
		return c.JSON(d.Board.Reports())
	})

	v1.Post("/community/reports", func(c *fiber.Ctx) error {
		var in community.ReportInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		report, err := d.Board.SubmitReport(in)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"notification": weather.Notification{
				Level:   weather.LevelSuccess,
				Message: "Weather report submitted! Thank you for contributing to the community.",
			},
			"report": report,
		})
	})

	v1.Get("/community/leaderboard", func(c *fiber.Ctx) error {
		return c.JSON(d.Board.Leaderboard())
	})

	v1.Post("/community/predictions", func(c *fiber.Ctx) error {
		var in community.PredictionInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		prediction, err := d.Board.SubmitPrediction(in)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"notification": weather.Notification{
				Level: weather.LevelSuccess,
				Message: "Prediction submitted! You predicted " +
					strconv.FormatFloat(*in.TemperatureC, 'f', -1, 64) +
					"°C. Current score: " + strconv.Itoa(prediction.Score) + " points",
			},
			"prediction": prediction,
		})
	})
}

// fetchErrorStatus maps ResolveAndFetch errors onto HTTP statuses.
func fetchErrorStatus(err error) int {
	var (
		validation *weather.ValidationError
		notFound   *weather.NotFoundError
		service    *weather.ServiceError
	)
	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.Is(err, weather.ErrFetchInProgress):
		return fiber.StatusConflict
	case errors.As(err, &service):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// fetchRequest is read from the query string, or from a JSON body when the
// query carries no city. Country is free text; an unknown code falls back to
// the top geocoding candidate.
type fetchRequest struct {
	City    string `query:"city" json:"city"`
	Country string `query:"country" json:"country" validate:"max=64"`
}

func (f *fetchRequest) bind(c *fiber.Ctx) error {
	f.City = c.Query("city")
	f.Country = c.Query("country")

	if f.City == "" && len(c.Body()) > 0 {
		if err := c.BodyParser(f); err != nil {
			return errors.New("invalid request body")
		}
	}

	f.Country = strings.TrimSpace(f.Country)
	if err := validate.Struct(f); err != nil {
		return errors.New("country must be at most 64 characters")
	}
	return nil
}

type chatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

type voiceRequest struct {
	Command string `json:"command" validate:"required,max=200"`
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string `validate:"required"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		Name:        l.City,
		CountryCode: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = c.Query("city")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
