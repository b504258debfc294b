// Package notify delivers change notifications to whoever listens.
// Services depend on the Notifier interface only; wiring picks the transport.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier publishes a single notification.
type Notifier interface {
	Notify(ctx context.Context, title, description string, data any) error
}

// Event is the envelope every transport emits.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Data        any       `json:"data,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func newEvent(title, description string, data any) Event {
	return Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Data:        data,
		OccurredAt:  time.Now().UTC(),
	}
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(context.Context, string, string, any) error { return nil }

// LogNotifier writes notifications to a zerolog logger at info level.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: logger.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Notify(_ context.Context, title, description string, data any) error {
	ev := newEvent(title, description, data)
	n.log.Info().
		Str("event_id", ev.ID).
		Str("title", ev.Title).
		Str("description", ev.Description).
		Interface("data", ev.Data).
		Msg("notification")
	return nil
}

// Multi fans a notification out to several notifiers and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, title, description string, data any) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, title, description, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ Notifier = Nop{}
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = Multi(nil)
)
