package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/walletd/walletd/internal/adapter/http/handler"
	"github.com/walletd/walletd/internal/adapter/http/middleware"
	"github.com/walletd/walletd/internal/infrastructure/auth"
	"github.com/walletd/walletd/internal/infrastructure/metrics"
	"github.com/walletd/walletd/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	TransferHandler  *handler.TransferHandler
	StreamHandler    *handler.StreamHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	JWTManager       *auth.JWTManager
	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Reads stay open; a valid token still scopes them to an account.
		// Mutations require a token whenever auth is configured.
		requireAuth := func(next http.Handler) http.Handler { return next }
		if cfg.JWTManager != nil {
			r.Use(middleware.OptionalAuth(cfg.JWTManager))
			requireAuth = middleware.AuthMiddleware(cfg.JWTManager)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.With(requireAuth).Post("/", cfg.AccountHandler.Create)
			r.Get("/{id}/balance", cfg.AccountHandler.GetBalance)
			r.Get("/{id}/balance/stream", cfg.StreamHandler.StreamBalance)
			r.With(requireAuth).Post("/{id}/deposits", cfg.TransferHandler.Deposit)
			r.Get("/{id}/transactions", cfg.AccountHandler.ListTransactions)
			r.Get("/{id}/transactions/stream", cfg.StreamHandler.StreamRecords)
		})

		// Transfers
		r.With(requireAuth).Post("/transfers", cfg.TransferHandler.Create)

		// Ledger
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
