package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tavola/internal/config"
	"tavola/internal/infra"
	"tavola/internal/repository"
	"tavola/internal/router"
	"tavola/internal/service"
	"tavola/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	debugSQL := cfg.Env == "development" && cfg.LogLevel == "debug"
	db, err := infra.NewDatabase(cfg.DatabaseURL, debugSQL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Warn().Msg("REDIS_URL not set: job queue, menu cache and stock alerts disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Seed ─────────────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permRepo := repository.NewPermissionRepository(db)
	seeder := service.NewSeeder(roleRepo, permRepo, userRepo)
	if err := seeder.Run(ctx, service.AdminAccount{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	// ── Workers ──────────────────────────────────────────────────────────────
	// Job handlers are wired here (composition root) so the pool sees every
	// infrastructure dependency.
	dispatcher := worker.NewDispatcher(rdb)
	mailer := infra.NewMailer(cfg)
	breaker := infra.NewCircuitBreaker(infra.MailerBreakerConfig())

	orderRepo := repository.NewOrderRepository(db)
	invoices := service.NewPaymentService(
		repository.NewPaymentRepository(db), orderRepo, dispatcher, cfg.TaxRateDecimal(), cfg.AppName)

	dispatcher.Handle(worker.JobReceipt,
		worker.NewReceiptWorker(invoices, dispatcher, cfg.PDFStoragePath, cfg.AppName).Process)
	dispatcher.Handle(worker.JobEmail, worker.NewEmailWorker(mailer, breaker).Process)
	worker.StartWorkerPool(ctx, dispatcher, cfg.WorkerPoolSize)

	worker.StartStockAlertCron(ctx, worker.StockAlertConfig{
		Ingredients: repository.NewIngredientRepository(db),
		RDB:         rdb,
		Dispatcher:  dispatcher,
		AlertEmail:  cfg.StockAlertEmail,
		Interval:    time.Duration(cfg.StockAlertIntervalMinutes) * time.Minute,
	})

	// ── HTTP ─────────────────────────────────────────────────────────────────
	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("env", cfg.Env).Msgf("%s %s listening on :%d", cfg.AppName, cfg.AppVersion, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited")
}

// setupLogger: console output in development, JSON in production, level from LOG_LEVEL.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
