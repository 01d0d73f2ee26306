package usecase

import (
	"log/slog"

	"github.com/edan-ais/Hubbalicious-Siren/internal/bridge"
	"github.com/edan-ais/Hubbalicious-Siren/internal/domain/trigger"
)

// FireTest enqueues a synthetic test trigger behind the shared secret.
type FireTest struct {
	queue  *bridge.EventQueue
	secret string
}

func NewFireTest(queue *bridge.EventQueue, secret string) *FireTest {
	return &FireTest{queue: queue, secret: secret}
}

func (uc *FireTest) Execute(suppliedSecret string) error {
	if !secretsEqual(uc.secret, suppliedSecret) {
		return ErrForbidden
	}

	ev := trigger.New(trigger.KindTest, nil)
	uc.queue.Push(ev)
	slog.Info("test trigger queued", "event_id", ev.ID, "queued", uc.queue.Len())

	return nil
}
