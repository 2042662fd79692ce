package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gkms/internal/config"
	"gkms/internal/infra"
	"gkms/internal/repository"
	"gkms/internal/router"
	"gkms/internal/service"
	"gkms/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger with pretty console output
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

	// External providers share one circuit breaker so a downed upstream
	// trips everything that depends on it at once.
	providerCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	eftClient := infra.NewEFTClient(cfg.EFTServiceURL)
	payoutClient := infra.NewPayoutClient(cfg.PayoutServiceURL)
	courierClient := infra.NewCourierClient(cfg.CourierAPIURL)
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)

	// Worker handlers are wired here (composition root) so the pool has
	// full access to all infrastructure dependencies.
	handlers := worker.Handlers{
		Courier: worker.NewCourierWorker(courierClient, providerCB),
		EFT:     worker.NewEFTWorker(eftClient, providerCB),
		Email:   worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)

	// Daily position batch runs after the 3 PM payout snapshot and emails
	// treasury on limit breaches.
	locationRepo := repository.NewLocationRepository(db)
	positionSvc := service.NewPositionService(
		repository.NewDailyPositionRepository(db),
		repository.NewCashDeliveryRepository(db),
		locationRepo,
		repository.NewCashRequestRepository(db),
		eftClient,
		payoutClient,
	)
	worker.StartPositionCron(ctx, worker.PositionCronConfig{
		Locations:  locationRepo,
		Positions:  positionSvc,
		CB:         providerCB,
		Dispatcher: dispatcher,
		AlertsTo:   cfg.AlertsTo,
	})

	r := router.New(cfg, db, rdb, router.Deps{
		EFTClient:    eftClient,
		PayoutClient: payoutClient,
		Dispatcher:   dispatcher,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("GKMS backend listening on :%d", cfg.Port)
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
