package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"adstudio/internal/backend"
	"adstudio/internal/http/handlers"
	httpapi "adstudio/internal/http/httpapi"
	"adstudio/internal/infra"
	"adstudio/internal/workflow"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// Cancelled on SIGINT/SIGTERM; every backend request derives from it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := backend.NewClient(backend.Options{
		BaseURL:      cfg.BackendURL,
		Timeout:      cfg.BackendTimeout,
		AllowedHosts: cfg.ImageSourceAllowlist,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid backend configuration")
	}

	sessions := workflow.NewStore(workflow.Deps{
		Context: ctx,
		Motion:  client,
		Ads:     client,
		Logger:  logger,
	}, cfg.SessionIdleTimeout)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		sessions.Run(ctx, time.Minute)
	}()

	app := handlers.NewApp(cfg, logger, sessions, client)
	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(ctx, cfg, router)

	go func() {
		logger.Info().
			Str("addr", server.Addr()).
			Str("backend", client.BaseURL()).
			Msg("studio listening")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	<-sweepDone
	logger.Info().Msg("server stopped")
}
