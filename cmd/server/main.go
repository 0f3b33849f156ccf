package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	httpapi "acharya-admissions-backend/internal/api/http"
	"acharya-admissions-backend/internal/config"
	"acharya-admissions-backend/internal/jobs"
	"acharya-admissions-backend/internal/logger"
	"acharya-admissions-backend/internal/ratelimit"
	"acharya-admissions-backend/internal/repository/postgres"
	"acharya-admissions-backend/internal/scheduler"
	"acharya-admissions-backend/internal/security"
	"acharya-admissions-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Acharya Admissions Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Redis (sessions and rate limiting)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("Failed to ping redis", "error", err)
		log.Fatalf("Failed to ping redis: %v", err)
	}
	logger.Info("Redis connection established", "addr", cfg.Redis.Addr)

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	accessTTL := time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute
	refreshTTL := time.Duration(cfg.JWT.RefreshTokenExpiry) * time.Minute
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, accessTTL, refreshTTL)
	sessionStore := security.NewRedisSessionStore(redisClient)
	limiter := ratelimit.NewRedisLimiter(redisClient)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		cfg.SendGrid.TrackingURL,
	)

	// Initialize Services
	admissionSvc := service.NewAdmissionService(
		store.ApplicationRepository,
		store.DecisionRepository,
		store.SchoolRepository,
		store.VerificationRepository,
		emailSvc,
		limiter,
	)
	decisionSvc := service.NewDecisionService(
		store.DecisionRepository,
		store.ApplicationRepository,
		store.SchoolRepository,
		emailSvc,
	)
	enrollmentSvc := service.NewEnrollmentService(
		store.DecisionRepository,
		store.ApplicationRepository,
		store.FeeRepository,
		emailSvc,
		service.FeePolicy{
			AdmissionFeePaise:       cfg.Admissions.AdmissionFeePaise,
			DefaultTuitionPaise:     cfg.Admissions.DefaultTuitionPaise,
			DefaultLibraryPaise:     cfg.Admissions.DefaultLibraryPaise,
			DefaultLabPaise:         cfg.Admissions.DefaultLabPaise,
			DefaultExamPaise:        cfg.Admissions.DefaultExamPaise,
			InvoiceDueDays:          cfg.Admissions.InvoiceDueDays,
			PaymentBeforeEnrollment: cfg.Admissions.PaymentBeforeEnrollment,
			PaymentSessionValidity:  time.Duration(cfg.Admissions.PaymentSessionMinutes) * time.Minute,
		},
	)
	schoolSvc := service.NewSchoolService(store.SchoolRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, sessionStore, refreshTTL)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Admissions: admissionSvc,
		Decisions:  decisionSvc,
		Enrollment: enrollmentSvc,
		Schools:    schoolSvc,
		Auth:       authSvc,
		Tokens:     tokenManager,
		DB:         db,
		Redis:      redisClient,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start scheduler alongside the server
	jobRunner := jobs.NewJobRunner(db, store, emailSvc, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down...")
	cronScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
