package weather

import "errors"

// Notification levels.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// GenericFailureMessage is shown when a failure carries no message.
const GenericFailureMessage = "Unable to retrieve weather information right now."

// Notification is the user-visible outcome of a fetch request.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NotificationFor turns the result of ResolveAndFetch into a notification.
func NotificationFor(snapshot *WeatherSnapshot, err error) Notification {
	if err == nil {
		if snapshot == nil {
			return Notification{Level: LevelInfo, Message: GenericFailureMessage}
		}
		return Notification{Level: LevelSuccess, Message: "Weather updated for " + snapshot.Location.Label()}
	}

	var validation *ValidationError
	switch {
	case errors.As(err, &validation):
		return Notification{Level: LevelWarning, Message: validation.Error()}
	case errors.Is(err, ErrFetchInProgress):
		return Notification{Level: LevelInfo, Message: "A weather update is already in progress."}
	}

	msg := err.Error()
	if msg == "" {
		msg = GenericFailureMessage
	}
	return Notification{Level: LevelError, Message: msg}
}
