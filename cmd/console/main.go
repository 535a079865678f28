package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"invdesk/internal/api"
	"invdesk/internal/auth"
	"invdesk/internal/config"
	"invdesk/internal/handler"
	"invdesk/internal/service"
	"invdesk/internal/session"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("failed to load config")
	}

	log := newLogger(cfg.LogLevel)

	// 2. Session store + authenticated API client
	store, err := session.NewFileStore(cfg.SessionDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}

	var authMgr *auth.Manager
	client := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Store:   store,
		Logger:  log,
		OnSessionExpired: func() {
			authMgr.Invalidate()
		},
	})
	authMgr = auth.New(client, store)

	// 3. Services + console surface
	h := handler.New(
		log,
		authMgr,
		service.NewItems(client),
		service.NewCustomers(client),
		service.NewSales(client),
		service.NewReports(client),
	)

	// 4. Run server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.ListenPort,
		Handler: h,
	}

	go func() {
		log.Info().Str("port", cfg.ListenPort).Str("api", cfg.APIBaseURL).Msg("console listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("console exiting")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
