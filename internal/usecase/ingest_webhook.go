package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/edan-ais/Hubbalicious-Siren/internal/bridge"
	"github.com/edan-ais/Hubbalicious-Siren/internal/domain/trigger"
)

// IngestWebhook classifies an inbound webhook body and enqueues accepted
// events. It never fails: the source platform must always see a 2xx, so
// malformed bodies degrade to the ignore outcome.
type IngestWebhook struct {
	queue *bridge.EventQueue
}

func NewIngestWebhook(queue *bridge.EventQueue) *IngestWebhook {
	return &IngestWebhook{queue: queue}
}

type IngestResult struct {
	Outcome          trigger.Outcome
	Kind             trigger.Kind
	VerificationCode string
}

func (uc *IngestWebhook) Execute(ctx context.Context, body []byte) IngestResult {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.Debug("webhook body is not a JSON object, ignoring", "error", err)
		return IngestResult{Outcome: trigger.OutcomeIgnore}
	}

	cls := trigger.Classify(payload)
	switch cls.Outcome {
	case trigger.OutcomeVerification:
		slog.Info("webhook verification challenge", "code", cls.VerificationCode)
		return IngestResult{Outcome: cls.Outcome, VerificationCode: cls.VerificationCode}

	case trigger.OutcomeAccept:
		ev := trigger.New(cls.Kind, map[string]any{"raw": payload})
		uc.queue.Push(ev)
		slog.Info("webhook event enqueued", "kind", cls.Kind, "event_id", ev.ID, "queued", uc.queue.Len())
		return IngestResult{Outcome: cls.Outcome, Kind: cls.Kind}

	default:
		slog.Debug("webhook event ignored", "type", payload["type"])
		return IngestResult{Outcome: trigger.OutcomeIgnore}
	}
}
