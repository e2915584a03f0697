package editor

import (
	"errors"

	"causalflow/core"
	"causalflow/logging"
)

// Severity tags a notification.
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Notification is a short, fire-and-forget message for the user.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
	Err         error // the rejection that caused it, if any
}

// Notifier shows notifications. Nothing is returned to the caller.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

// Notify calls f.
func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier writes notifications to the package logger.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(n Notification) {
	if n.Severity == SeverityDestructive {
		logging.Warnf("%s: %s", n.Title, n.Description)
		return
	}
	logging.Infof("%s: %s", n.Title, n.Description)
}

// notificationFor maps a drawing rejection to the message shown to the user.
func notificationFor(err error) Notification {
	switch {
	case errors.Is(err, core.ErrSelfConnection):
		return Notification{
			Title:       "Invalid Path",
			Description: "Cannot connect a variable to itself in the same period instance.",
			Severity:    SeverityDestructive,
			Err:         err,
		}
	case errors.Is(err, core.ErrInvalidTemporalOrder):
		return Notification{
			Title:       "Invalid Path",
			Description: "Connections are allowed only within the same period or to the immediate next period; a variable may only carry over to a later period.",
			Severity:    SeverityDestructive,
			Err:         err,
		}
	case errors.Is(err, core.ErrDuplicatePath):
		return Notification{
			Title:       "Duplicate Path",
			Description: "This path already exists.",
			Severity:    SeverityDestructive,
			Err:         err,
		}
	case errors.Is(err, core.ErrDrawingCancelled):
		return Notification{
			Title:       "Path Drawing Cancelled",
			Description: "Clicked on background.",
			Severity:    SeverityDefault,
			Err:         err,
		}
	default:
		return Notification{
			Title:       "Invalid Path",
			Description: err.Error(),
			Severity:    SeverityDestructive,
			Err:         err,
		}
	}
}
