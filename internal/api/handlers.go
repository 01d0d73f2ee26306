package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/edan-ais/Hubbalicious-Siren/internal/bridge"
	"github.com/edan-ais/Hubbalicious-Siren/internal/clover"
	"github.com/edan-ais/Hubbalicious-Siren/internal/domain/trigger"
	"github.com/edan-ais/Hubbalicious-Siren/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhooksReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_webhooks_received_total",
		Help: "The total number of webhook deliveries received",
	})
	webhooksEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_webhooks_enqueued_total",
		Help: "The total number of webhook deliveries enqueued as triggers",
	})
	verificationPings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_verification_pings_total",
		Help: "The total number of subscription verification challenges answered",
	})
	triggersServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_triggers_served_total",
		Help: "The total number of triggers handed to the polling agent",
	})
)

type Handlers struct {
	ingestUC   *usecase.IngestWebhook
	exchangeUC *usecase.ExchangeToken
	pollUC     *usecase.PollOnce
	nextUC     *usecase.NextTrigger
	fireUC     *usecase.FireTest
	queue      *bridge.EventQueue
}

func NewHandlers(
	ingestUC *usecase.IngestWebhook,
	exchangeUC *usecase.ExchangeToken,
	pollUC *usecase.PollOnce,
	nextUC *usecase.NextTrigger,
	fireUC *usecase.FireTest,
	queue *bridge.EventQueue,
) *Handlers {
	return &Handlers{
		ingestUC:   ingestUC,
		exchangeUC: exchangeUC,
		pollUC:     pollUC,
		nextUC:     nextUC,
		fireUC:     fireUC,
		queue:      queue,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"ok":     true,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"queued": h.queue.Len(),
	})
}

// CloverWebhook always acknowledges with 200: Clover suspends delivery on
// repeated non-2xx responses, so even garbage gets a success status.
func (h *Handlers) CloverWebhook(w http.ResponseWriter, r *http.Request) {
	webhooksReceived.Inc()

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	res := h.ingestUC.Execute(r.Context(), body)
	switch res.Outcome {
	case trigger.OutcomeVerification:
		verificationPings.Inc()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(res.VerificationCode))
	case trigger.OutcomeAccept:
		webhooksEnqueued.Inc()
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func (h *Handlers) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	merchantID := r.URL.Query().Get("merchant_id")

	err := h.exchangeUC.Execute(r.Context(), code, merchantID)
	if err != nil {
		if errors.Is(err, usecase.ErrMissingCode) {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			return
		}
		var remote *clover.RemoteError
		if errors.As(err, &remote) {
			http.Error(w, remote.Body, http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("App installed for merchant " + merchantID + ". Webhook bridge is ready."))
}

func (h *Handlers) PollClover(w http.ResponseWriter, r *http.Request) {
	res, err := h.pollUC.Execute(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrNotAuthorized) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"new": res.NewEvent})
}

func (h *Handlers) NextTrigger(w http.ResponseWriter, r *http.Request) {
	secret := r.URL.Query().Get("secret")

	_, served, err := h.nextUC.Execute(secret)
	if err != nil {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	if served {
		triggersServed.Inc()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"trigger": served})
}

func (h *Handlers) TestFire(w http.ResponseWriter, r *http.Request) {
	secret := r.URL.Query().Get("secret")

	if err := h.fireUC.Execute(secret); err != nil {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("queued"))
}
