package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"clamood/console/internal/config"
	"clamood/console/internal/gateway"
	"clamood/console/internal/handlers"
	"clamood/console/internal/jobs"
	"clamood/console/internal/log"
	"clamood/console/internal/middleware"
	"clamood/console/internal/notice"
	"clamood/console/internal/query"
	"clamood/console/internal/server"
	"clamood/console/internal/service"
	"clamood/console/internal/session"
	"clamood/console/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Log.Level)

	ctx := context.Background()

	store, closeStore, err := session.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Session.Backend).Msg("failed to open session store")
	}

	sessions := session.NewManager(store, logger)
	restored, err := sessions.Restore(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("session restore failed, starting logged out")
	}
	logger.Info().Bool("authenticated", restored.IsAuthenticated()).Msg("session restored")

	notices := notice.NewCenter(0, logger)
	cache := query.New(query.Options{StaleTime: cfg.Cache.StaleTime}, logger)
	sessions.OnChange(func(session.Session) { cache.Reset() })

	client, err := gateway.New(gateway.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		CSRFCookieName: cfg.API.CSRFCookieName,
	}, sessions, notices, middleware.NewNavigator(logger), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init api gateway")
	}

	var uploader service.Uploader
	objectStore, err := storage.NewObjectStore(cfg.Storage)
	switch {
	case errors.Is(err, storage.ErrDisabled):
		logger.Info().Msg("object storage disabled, exports are downloaded directly")
	case err != nil:
		logger.Fatal().Err(err).Msg("failed to init object store")
	default:
		if err := objectStore.EnsureBucket(ctx); err != nil {
			logger.Warn().Err(err).Msg("ensure export bucket failed")
		}
		uploader = objectStore
	}

	services := service.NewSet(client, sessions, cache, notices, uploader, logger)
	handlerSet := handlers.NewHandlerSet(logger, cfg, services, sessions, store, notices, cache)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet, sessions, notices)

	scheduler := jobs.NewScheduler(cfg.Jobs, services.Auth, cache, cfg.Cache.GCTime, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, cache, closeStore)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, cache *query.Cache, closeStore func() error) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		logger.Warn().Msg("scheduled jobs still running at shutdown")
	}

	cache.Close()
	if err := closeStore(); err != nil {
		logger.Error().Err(err).Msg("session store close error")
	}

	logger.Info().Msg("console exited cleanly")
}
