package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Idempotency suppresses duplicate webhook deliveries keyed on the payload's
// top-level event id. Duplicates still get a 200 — the source must never see
// a failure status — they just skip the handler. Deliveries without an id,
// or a nil redisClient, pass straight through.
func Idempotency(redisClient *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if redisClient == nil || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			var payload struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal(body, &payload); err != nil || payload.ID == "" {
				next.ServeHTTP(w, r)
				return
			}

			idemKey := fmt.Sprintf("webhook:event:%s", payload.ID)
			ctx := r.Context()

			// 1. Already seen?
			if _, err := redisClient.Get(ctx, idemKey).Result(); err == nil {
				w.Header().Set("X-Idempotency-Hit", "true")
				w.WriteHeader(http.StatusOK)
				return
			} else if err != redis.Nil {
				// Redis error: fail open, a duplicate trigger beats a lost one
				next.ServeHTTP(w, r)
				return
			}

			// 2. Lock key with a short TTL to prevent forever-lock if crash
			acquired, err := redisClient.SetNX(ctx, idemKey, "PROCESSING", 10*time.Second).Result()
			if err != nil || !acquired {
				w.Header().Set("X-Idempotency-Hit", "true")
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)

			// 3. Mark delivered, extending the TTL past Clover's retry window
			redisClient.Set(ctx, idemKey, "DELIVERED", 24*time.Hour)
		})
	}
}
