package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/isanahealth/practice-api/cmd/mainconfig"
	"github.com/isanahealth/practice-api/internal/api/router"
	"github.com/isanahealth/practice-api/internal/auth"
	"github.com/isanahealth/practice-api/internal/calendar"
	"github.com/isanahealth/practice-api/internal/clients"
	appconfig "github.com/isanahealth/practice-api/internal/config"
	"github.com/isanahealth/practice-api/internal/dashboard"
	"github.com/isanahealth/practice-api/internal/documents"
	"github.com/isanahealth/practice-api/internal/notify"
	"github.com/isanahealth/practice-api/internal/observability/metrics"
	"github.com/isanahealth/practice-api/internal/reminders"
	"github.com/isanahealth/practice-api/internal/sessions"
	"github.com/isanahealth/practice-api/internal/store"
	"github.com/isanahealth/practice-api/internal/uistate"
	"github.com/isanahealth/practice-api/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting practice API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Database connections. The pgx pool serves the entity repositories;
	// database/sql serves document metadata and the migration tooling.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis holds UI navigation state, separate from the entity collections.
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() { _ = redisClient.Close() }()

	// Object storage for uploaded documents.
	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AWSEndpointOverride != "" {
			o.UsePathStyle = true
		}
	})

	// Email goes through SendGrid when configured, a logging stub otherwise.
	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		sender = sg
	} else {
		sender = notify.NewStubEmailSender(logger)
	}
	plainSender := notify.Plain{Sender: sender}

	// Services
	authService := auth.NewService(auth.NewPostgresRepository(pool), plainSender,
		cfg.AuthJWTSecret, cfg.AuthTokenTTL, cfg.BcryptCost, logger)

	fileStore := documents.NewFileStore(s3Client, cfg.DocumentsBucket, cfg.AWSRegion, "", logger)
	documentsService := documents.NewService(documents.NewSQLRepository(sqlDB), fileStore, cfg.MaxUploadBytes, logger)

	storeMetrics := metrics.NewStoreMetrics(nil)

	appStore := store.New(store.Backend{
		Clients:   clients.NewPostgresRepository(pool),
		Sessions:  sessions.NewPostgresRepository(pool),
		Reminders: reminders.NewPostgresRepository(pool),
		Documents: documentsService,
	}, authService, logger).WithMetrics(storeMetrics)

	uiStateStore := uistate.NewStore(redisClient, cfg.UIStateTTL, otel.Tracer("uistate"))
	calendarService := calendar.NewService(calendar.NewPostgresRepository(pool), appStore, logger)

	// Background reminder sweep
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	worker := reminders.NewWorker(appStore, appStore, plainSender, logger)
	go worker.Run(workerCtx, cfg.ReminderSweepInterval)

	// Setup router
	routerCfg := &router.Config{
		Logger:           logger,
		TokenVerifier:    authService,
		SessionStore:     appStore,
		AuthHandler:      auth.NewHandler(appStore, authService, logger),
		ClientsHandler:   clients.NewHandler(appStore, logger),
		SessionsHandler:  sessions.NewHandler(appStore, logger),
		RemindersHandler: reminders.NewHandler(appStore, logger),
		DocumentsHandler: documents.NewHandler(appStore, cfg.MaxUploadBytes, logger),
		CalendarHandler:  calendar.NewHandler(calendarService, logger),
		DashboardHandler: dashboard.NewHandler(dashboard.NewStatsRepository(pool), appStore, logger),
		UIStateHandler:   uistate.NewHandler(uiStateStore, logger),
		Metrics:          storeMetrics,
		MetricsHandler:   promhttp.Handler(),

		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	stopWorker()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
