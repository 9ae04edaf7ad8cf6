package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/arknat/hr-backend/internal/handler"
	"github.com/arknat/hr-backend/internal/identity"
	"github.com/arknat/hr-backend/internal/infrastructure/logger"
	"github.com/arknat/hr-backend/internal/observability/metrics"
	"github.com/arknat/hr-backend/internal/observability/tracing"
	"github.com/arknat/hr-backend/internal/repository"
	"github.com/arknat/hr-backend/internal/security"
	"github.com/arknat/hr-backend/internal/security/audit"
	"github.com/arknat/hr-backend/internal/security/auth"
	"github.com/arknat/hr-backend/internal/security/middleware"
	"github.com/arknat/hr-backend/internal/service"
	"github.com/arknat/hr-backend/pkg/config"
	"github.com/arknat/hr-backend/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting hr-backend server", slog.String("environment", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialize tracing (no-op unless an OTLP endpoint is configured)
	shutdownTracing, err := tracing.Init(ctx, log, "hr-backend", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Connect to the relational store
	pool, err := database.NewConnectionPool(ctx, &database.Config{
		Host:     cfg.DatabaseHost,
		Port:     cfg.DatabasePort,
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	}, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	db := pool.GetDB()

	// 5. Initialize repositories
	applicantRepo := repository.NewPostgresApplicantRepository(db, log)
	shiftRepo := repository.NewPostgresShiftRepository(db, log)
	employeeRepo := repository.NewPostgresEmployeeRepository(db, log)
	paymentRepo := repository.NewPostgresPaymentRepository(db, log)
	assignmentRepo := repository.NewPostgresAssignmentRepository(db, log)
	vacancyRepo := repository.NewPostgresVacancyRepository(db, log)

	// 6. Security components. The identity factory builds a short-lived
	// privileged client per call; credentials are injected here, never
	// cached in a global.
	identityCreds := identity.Credentials{
		BaseURL:    cfg.IdentityBaseURL,
		ServiceKey: cfg.IdentityServiceKey,
	}
	identityFactory := func() service.IdentityAdmin {
		return identity.NewAdminClient(identityCreds, log)
	}
	tokenManager := auth.NewTokenManager(cfg.IdentityJWTSecret)
	authz := security.NewAuthorizationService(log)
	auditLogger := audit.NewLogger(log)

	// 7. Initialize services
	coverageService := service.NewCoverageService(
		applicantRepo, shiftRepo, employeeRepo, paymentRepo, assignmentRepo,
		identityFactory, log,
	)
	employeeService := service.NewEmployeeService(employeeRepo, vacancyRepo, identityFactory, auditLogger, log)
	adminService := service.NewAdminService(employeeRepo, identityFactory, tokenManager, authz, auditLogger, log)

	// 8. Initialize handlers
	coverageHandler := handler.NewCoverageHandler(coverageService, log)
	employeeHandler := handler.NewEmployeeHandler(employeeService, log)
	adminHandler := handler.NewAdminHandler(adminService, log)
	healthHandler := handler.NewHealthHandler(pool, log)

	// 9. Setup HTTP routes
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/coverage/assign-guard", coverageHandler.AssignGuard)
	mux.HandleFunc("POST /api/coverage/finalize-payment", coverageHandler.FinalizePayment)
	mux.HandleFunc("POST /api/admin/impersonate", adminHandler.Impersonate)
	mux.HandleFunc("POST /api/admin/reset-password", adminHandler.ResetPassword)
	mux.HandleFunc("POST /api/employees", employeeHandler.Create)
	mux.HandleFunc("POST /api/employees/delete", employeeHandler.Delete)
	mux.HandleFunc("POST /api/employees/password", employeeHandler.UpdatePassword)
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Chain middleware: request ID -> CORS (answers preflights) -> content
	// type -> metrics -> tracing -> routes
	rootHandler := middleware.RequestID(
		middleware.CORS(
			middleware.ValidateJSONContentType(log)(
				metrics.HTTPMiddleware(
					otelhttp.NewHandler(mux, "hr-backend"),
				),
			),
		),
		log,
	)

	// 10. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      rootHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting", slog.Int("port", cfg.ServerPort))

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
