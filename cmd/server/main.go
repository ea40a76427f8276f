package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mockdrill/mockdrill-backend/internal/config"
	"github.com/mockdrill/mockdrill-backend/internal/database"
	"github.com/mockdrill/mockdrill-backend/internal/handler"
	"github.com/mockdrill/mockdrill-backend/internal/logger"
	"github.com/mockdrill/mockdrill-backend/internal/mailer"
	"github.com/mockdrill/mockdrill-backend/internal/payment"
	"github.com/mockdrill/mockdrill-backend/internal/repository"
	"github.com/mockdrill/mockdrill-backend/internal/router"
	"github.com/mockdrill/mockdrill-backend/internal/service"
	"github.com/mockdrill/mockdrill-backend/internal/validator"
	"github.com/mockdrill/mockdrill-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting MockDrill Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	testRepo := repository.NewTestRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	bankRepo := repository.NewQuestionBankRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	mail := mailer.NewMailer(cfg.MailServiceURL, log)
	gateway := payment.NewClient(cfg)

	authService := service.NewAuthService(cfg, rdb)
	studentService := service.NewStudentService(studentRepo, authService, mail, log)
	adminService := service.NewAdminService(adminRepo, authService)
	companyService := service.NewCompanyService(companyRepo)
	testService := service.NewTestService(testRepo, questionRepo, bankRepo, companyRepo, rdb, log)
	questionService := service.NewQuestionService(questionRepo, testService)
	bankService := service.NewBankService(bankRepo, companyRepo, log)
	courseService := service.NewCourseService(courseRepo, enrollmentRepo)
	orderService := service.NewOrderService(orderRepo, enrollmentRepo, testRepo, courseRepo, studentRepo, gateway, mail, cfg.RazorpayKeyID, log)
	attemptService := service.NewAttemptService(attemptRepo, testService, orderService, companyRepo, rdb, log)
	mediaService := service.NewMediaService(cfg)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService, studentService, adminService),
		Company:     handler.NewCompanyHandler(companyService),
		Test:        handler.NewTestHandler(testService),
		Question:    handler.NewQuestionHandler(questionService),
		Bank:        handler.NewBankHandler(bankService, cfg.MaxUploadBytes),
		Course:      handler.NewCourseHandler(courseService),
		Order:       handler.NewOrderHandler(orderService),
		Attempt:     handler.NewAttemptHandler(attemptService),
		Media:       handler.NewMediaHandler(mediaService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		StudentMgmt: handler.NewStudentManagementHandler(studentService),
		WS:          handler.NewWSHandler(attemptService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	autosaveWorker := worker.NewAutosaveWorker(pool, rdb, log)
	scoringWorker := worker.NewScoringWorker(pool, rdb, log)

	go autosaveWorker.Start(workerCtx)
	go scoringWorker.Start(workerCtx)

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load all generated test papers into Redis BEFORE accepting traffic.
	// This avoids race conditions from lazy loading under thundering herd.
	if err := testService.PrewarmAllCaches(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
