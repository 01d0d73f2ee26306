package api

import (
	"net/http"

	"github.com/edan-ais/Hubbalicious-Siren/internal/api/middleware"

	"github.com/go-chi/chi/v5"
	ChiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func NewRouter(h *Handlers, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	r.Use(ChiMiddleware.Logger)
	r.Use(ChiMiddleware.Recoverer)
	r.Use(ChiMiddleware.RequestID)

	r.Get("/health", h.Health)

	// Inbound webhook from Clover, deduped on the event id when Redis is up
	r.With(middleware.Idempotency(redisClient)).Post("/clover_webhook", h.CloverWebhook)

	// OAuth install flow
	r.Get("/oauth/callback", h.OAuthCallback)

	// Active-poll fallback path
	r.Post("/poll-clover", h.PollClover)

	// Local agent surface
	r.Post("/next-trigger", h.NextTrigger)
	r.Get("/test_fire", h.TestFire)

	r.Handle("/metrics", promhttp.Handler())

	return r
}
