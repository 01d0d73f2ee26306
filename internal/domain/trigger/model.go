package trigger

import (
	"time"

	"github.com/google/uuid"
)

// Kind is the closed set of trigger kinds the bridge will enqueue.
type Kind string

const (
	KindPaymentCreated Kind = "PAYMENT_CREATED"
	KindOrderCreated   Kind = "ORDER_CREATED"
	KindTest           Kind = "TEST"
)

// Event is one unit of work for the remote agent. Events are immutable
// once created and are destroyed the moment they are served.
type Event struct {
	ID         string         `json:"id"`
	Kind       Kind           `json:"kind"`
	EnqueuedAt time.Time      `json:"enqueued_at"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// New stamps a fresh event. Metadata is carried for diagnostics only.
func New(kind Kind, metadata map[string]any) Event {
	return Event{
		ID:         uuid.New().String(),
		Kind:       kind,
		EnqueuedAt: time.Now().UTC(),
		Metadata:   metadata,
	}
}
