package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/edan-ais/Hubbalicious-Siren/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollsNewEvent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_polls_new_event_total",
		Help: "The total number of polls that enqueued a new trigger",
	})
	pollsNoop = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_polls_noop_total",
		Help: "The total number of polls with nothing new",
	})
	pollErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_poll_errors_total",
		Help: "The total number of failed poll attempts",
	})
)

// TriggerPoller drives the active-poll fallback on a fixed interval. The
// interval itself is the retry mechanism: a failed tick mutates nothing and
// the next tick tries again.
type TriggerPoller struct {
	pollUC   *usecase.PollOnce
	interval time.Duration
}

func NewTriggerPoller(pollUC *usecase.PollOnce, interval time.Duration) *TriggerPoller {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &TriggerPoller{
		pollUC:   pollUC,
		interval: interval,
	}
}

func (p *TriggerPoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	slog.Info("trigger poller started", "interval", p.interval.String())

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *TriggerPoller) tick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := p.pollUC.Execute(tickCtx)
	switch {
	case errors.Is(err, usecase.ErrNotAuthorized):
		// Normal until the merchant completes the install flow
		pollsNoop.Inc()
	case err != nil:
		slog.Error("poll failed", "error", err)
		pollErrors.Inc()
	case res.NewEvent:
		pollsNewEvent.Inc()
	default:
		pollsNoop.Inc()
	}
}
