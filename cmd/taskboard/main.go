package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/taskboard/internal/auth"
	"github.com/gosuda/taskboard/internal/config"
	"github.com/gosuda/taskboard/internal/fanout"
	"github.com/gosuda/taskboard/internal/hub"
	"github.com/gosuda/taskboard/internal/notify"
	"github.com/gosuda/taskboard/internal/server"
	"github.com/gosuda/taskboard/internal/store/postgres"
	redisstore "github.com/gosuda/taskboard/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("TASKBOARD_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("TASKBOARD_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	// Connect to Redis.
	pubsub, err := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer pubsub.Close()

	// Build the identity provider strategies. Local email/password is
	// always available; Google only when configured.
	strategies := map[string]auth.Strategy{
		"local": auth.NewLocalStrategy(store.Users()),
	}
	if cfg.Google.ClientID != "" && cfg.Google.ClientSecret != "" {
		strategies["google"] = auth.NewGoogleStrategy(
			store.Users(),
			cfg.Google.ClientID,
			cfg.Google.ClientSecret,
			cfg.Google.RedirectURL,
		)
		log.Info().Msg("google identity provider enabled")
	}

	authSvc := auth.NewService(store.Users(), strategies, cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	// Live-channel hubs, bridged across nodes via Redis.
	registry := hub.NewRegistry(pubsub, cfg.Hub.WriteTimeout)

	// Webhook delivery and event fan-out.
	dispatcher := fanout.NewDispatcher(store.Webhooks(), cfg.Webhook.Timeout, cfg.Webhook.MaxConcurrent)
	events := fanout.New(pubsub, dispatcher)

	// Durable notification sink, optionally mirrored to Slack.
	sink := notify.NewSink(store.Notifications(), cfg.Slack.WebhookURL)
	if cfg.Slack.WebhookURL != "" {
		log.Info().Msg("slack notification mirror enabled")
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, server.Deps{
		Store:    store,
		Auth:     authSvc,
		Fanout:   events,
		Sink:     sink,
		Registry: registry,
	})

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	// Let in-flight webhook deliveries finish before exiting.
	dispatcher.Wait()

	log.Info().Msg("stopped")
	return nil
}
