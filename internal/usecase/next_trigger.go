package usecase

import (
	"log/slog"

	"github.com/edan-ais/Hubbalicious-Siren/internal/bridge"
	"github.com/edan-ais/Hubbalicious-Siren/internal/domain/trigger"
)

// NextTrigger serves at most one pending trigger per authorized call.
// A served trigger is gone; there is no redelivery or acknowledgment.
type NextTrigger struct {
	queue  *bridge.EventQueue
	secret string
}

func NewNextTrigger(queue *bridge.EventQueue, secret string) *NextTrigger {
	return &NextTrigger{queue: queue, secret: secret}
}

func (uc *NextTrigger) Execute(suppliedSecret string) (trigger.Event, bool, error) {
	if !secretsEqual(uc.secret, suppliedSecret) {
		return trigger.Event{}, false, ErrForbidden
	}

	ev, ok := uc.queue.PopOldest()
	if ok {
		slog.Info("trigger served", "kind", ev.Kind, "event_id", ev.ID, "queued", uc.queue.Len())
	}
	return ev, ok, nil
}
