package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexpardox/mercaproject/internal/config"
	"github.com/alexpardox/mercaproject/internal/infra"
	"github.com/alexpardox/mercaproject/internal/repository"
	"github.com/alexpardox/mercaproject/internal/router"
	"github.com/alexpardox/mercaproject/internal/service"
	"github.com/alexpardox/mercaproject/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Async plumbing: notice-email worker pool plus the expiry sweep cron.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	formularioRepo := repository.NewFormularioRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	formularioSvc := service.NewFormularioService(formularioRepo, proveedorRepo)

	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.Handlers{
		Aviso: worker.NewAvisoWorker(mailer),
	})
	worker.StartVencimientoCron(ctx, worker.VencimientoCronConfig{
		Formularios:    formularioSvc,
		FormularioRepo: formularioRepo,
		Dispatcher:     dispatcher,
		RDB:            rdb,
		Interval:       time.Duration(cfg.SweepIntervalMinutes) * time.Minute,
		DiasAviso:      cfg.DiasAvisoVencimiento,
	})

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("merca backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
