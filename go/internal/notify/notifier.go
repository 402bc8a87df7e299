package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Level is the severity of a notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient message shown to the user
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// New builds a notification stamped at the given time
func New(level Level, message string, at time.Time) Notification {
	return Notification{
		ID:        uuid.New(),
		Level:     level,
		Message:   message,
		CreatedAt: at.UTC(),
	}
}

// Notifier delivers notifications to a surface. Delivery is best effort and
// never fails the operation that produced the notification.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// Fanout delivers every notification to each of its notifiers in order
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n Notification) {
	for _, notifier := range f {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}

// Discard drops every notification
var Discard Notifier = NotifierFunc(func(context.Context, Notification) {})

// LogNotifier writes notifications to the zerolog logger
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) {
	event := log.Info()
	if n.Level == LevelError {
		event = log.Error()
	}
	event.
		Str("notification_id", n.ID.String()).
		Str("level", string(n.Level)).
		Msg(n.Message)
}

// Success sends a success notification stamped at at
func Success(ctx context.Context, n Notifier, message string, at time.Time) {
	n.Notify(ctx, New(LevelSuccess, message, at))
}

// Error sends an error notification stamped at at
func Error(ctx context.Context, n Notifier, message string, at time.Time) {
	n.Notify(ctx, New(LevelError, message, at))
}
