package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-house/internal/domain/assistant"
	"pet-house/internal/domain/petstore"
	"pet-house/internal/middleware"
	"pet-house/internal/platform/config"
	"pet-house/internal/platform/logger"
	"pet-house/internal/platform/metrics"
	"pet-house/internal/router"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title Pet House API
// @version 1.0
// @description Mascotas, carnet de vacunas, recordatorios y asistente de síntomas.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("invalid config", logger.Fields{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, closeBlobs, err := openBlobs(ctx, cfg.Storage, log)
	if err != nil {
		log.Error("storage init failed", logger.Fields{"driver": string(cfg.Storage.Driver), "err": err})
		os.Exit(1)
	}
	defer closeBlobs()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	col := metrics.NewCollector(reg)

	store, err := petstore.Open(ctx, petstore.Options{
		Blobs:   blobs,
		Logger:  log,
		Metrics: col,
	})
	if err != nil {
		log.Error("store load failed", logger.Fields{"err": err})
		os.Exit(1)
	}

	rl := middleware.NewRateLimiter(middleware.PerMinute(cfg.AssistantRatePerMinute), log)
	defer rl.Stop()

	r := router.NewRouter(router.Options{
		Store:       store,
		Assistant:   assistant.NewService(log, col),
		Logger:      log,
		Gatherer:    reg,
		RateLimiter: rl,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": srv.Addr, "storage": string(cfg.Storage.Driver)})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", logger.Fields{"err": err})
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", logger.Fields{"err": err})
	}
	log.Info("server stopped", nil)
}
