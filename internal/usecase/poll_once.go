package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edan-ais/Hubbalicious-Siren/internal/bridge"
	"github.com/edan-ais/Hubbalicious-Siren/internal/clover"
	"github.com/edan-ais/Hubbalicious-Siren/internal/domain/trigger"
)

// PollOnce queries the payments API for the single latest payment and
// enqueues it if it has not been seen before. It is the fallback delivery
// path when webhooks are not reaching us; the schedule it runs on is also
// its retry mechanism, so a failed poll mutates nothing.
type PollOnce struct {
	queue  *bridge.EventQueue
	cursor *bridge.DedupCursor
	creds  *bridge.CredentialStore
	client *clover.Client
}

func NewPollOnce(state *bridge.State, client *clover.Client) *PollOnce {
	return &PollOnce{
		queue:  state.Queue,
		cursor: state.Cursor,
		creds:  state.Credentials,
		client: client,
	}
}

type PollResult struct {
	NewEvent bool
}

func (uc *PollOnce) Execute(ctx context.Context) (PollResult, error) {
	cred, ok := uc.creds.Get()
	if !ok {
		return PollResult{}, ErrNotAuthorized
	}

	latest, err := uc.client.LatestPayment(ctx, cred.MerchantID, cred.AccessToken)
	if err != nil {
		return PollResult{}, fmt.Errorf("fetch latest payment: %w", err)
	}
	if latest == nil {
		return PollResult{}, nil
	}

	if uc.cursor.HasSeen(latest.ID) {
		return PollResult{}, nil
	}
	uc.cursor.MarkSeen(latest.ID)

	var metadata map[string]any
	if latest.Amount != nil {
		metadata = map[string]any{"amount": *latest.Amount}
	}

	ev := trigger.New(trigger.KindPaymentCreated, metadata)
	uc.queue.Push(ev)
	slog.Info("poll enqueued payment", "payment_id", latest.ID, "event_id", ev.ID)

	return PollResult{NewEvent: true}, nil
}
