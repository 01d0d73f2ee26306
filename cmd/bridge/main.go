package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edan-ais/Hubbalicious-Siren/internal/api"
	"github.com/edan-ais/Hubbalicious-Siren/internal/bridge"
	"github.com/edan-ais/Hubbalicious-Siren/internal/clover"
	"github.com/edan-ais/Hubbalicious-Siren/internal/config"
	redisInfra "github.com/edan-ais/Hubbalicious-Siren/internal/infrastructure/redis"
	"github.com/edan-ais/Hubbalicious-Siren/internal/usecase"
	"github.com/edan-ais/Hubbalicious-Siren/internal/worker"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// Initialize structured JSON logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Queue.Secret == "change-me" {
		logger.Warn("QUEUE_SECRET is the insecure placeholder; set it before exposing this service")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Redis (optional, backs the webhook idempotency guard)
	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redisInfra.NewClient(ctx, redisInfra.Config{
			Addr: cfg.Redis.Addr,
		})
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	// Shared bridge state: queue, dedup cursor, credential
	state := bridge.NewState()

	cloverClient := clover.NewClient(clover.Config{
		ClientID:     cfg.Clover.ClientID,
		ClientSecret: cfg.Clover.ClientSecret,
		BaseURL:      cfg.Clover.BaseURL,
		TokenURL:     cfg.Clover.TokenURL,
	})

	// UseCases
	ingestUC := usecase.NewIngestWebhook(state.Queue)
	exchangeUC := usecase.NewExchangeToken(state.Credentials, cloverClient)
	pollUC := usecase.NewPollOnce(state, cloverClient)
	nextUC := usecase.NewNextTrigger(state.Queue, cfg.Queue.Secret)
	fireUC := usecase.NewFireTest(state.Queue, cfg.Queue.Secret)

	// REST API Handler
	handlers := api.NewHandlers(ingestUC, exchangeUC, pollUC, nextUC, fireUC, state.Queue)
	apiHandler := api.NewRouter(handlers, redisClient)

	// Active-poll loop, only when the OAuth feature is configured
	if cfg.PollEnabled() {
		poller := worker.NewTriggerPoller(pollUC, cfg.Poll.Interval)
		go func() {
			if err := poller.Run(ctx); err != nil {
				logger.Error("poller stopped with error", "error", err)
			}
		}()
	} else {
		logger.Info("clover client id not set, active-poll path disabled")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: apiHandler,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exiting")
}
