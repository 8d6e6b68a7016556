package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/walletd/walletd/internal/adapter/http"
	"github.com/walletd/walletd/internal/adapter/http/handler"
	"github.com/walletd/walletd/internal/adapter/pubsub"
	postgresRepo "github.com/walletd/walletd/internal/adapter/repository/postgres"
	redisRepo "github.com/walletd/walletd/internal/adapter/repository/redis"
	"github.com/walletd/walletd/internal/fanout"
	"github.com/walletd/walletd/internal/infrastructure/auth"
	"github.com/walletd/walletd/internal/infrastructure/config"
	"github.com/walletd/walletd/internal/infrastructure/dispatcher"
	"github.com/walletd/walletd/internal/infrastructure/logger"
	"github.com/walletd/walletd/internal/infrastructure/metrics"
	"github.com/walletd/walletd/internal/infrastructure/postgres"
	"github.com/walletd/walletd/internal/infrastructure/redis"
	"github.com/walletd/walletd/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	idGen := postgresRepo.NewULIDGenerator()
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool, outboxRepo, idGen)
	recordRepo := postgresRepo.NewRecordRepository(pool, outboxRepo, idGen)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	walletUC := usecase.NewWalletUseCase(usecase.WalletConfig{
		BalanceRepo:      balanceRepo,
		Log:              recordRepo,
		IDGen:            idGen,
		Metrics:          m,
		Logger:           log,
		AtomicSentRecord: cfg.TransferAtomicSentRecord,
	})
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	// Live subscription plumbing: outbox -> dispatcher -> redis pub/sub ->
	// fanout hub -> SSE handlers.
	hub := fanout.NewHub(fanout.Config{
		RecordBuffer: cfg.FanoutRecordBuffer,
		Metrics:      m,
		Logger:       log,
	})

	publisher := pubsub.NewPublisher(redisClient, log)
	listener := pubsub.NewListener(redisClient, hub, log)

	disp := dispatcher.New(dispatcher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  publisher,
		Logger:     log,
		Metrics:    m,
		BatchSize:  cfg.DispatcherBatchSize,
		Interval:   cfg.DispatcherInterval,
		Retention:  cfg.OutboxRetention,
	})

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	go func() {
		if err := listener.Run(workerCtx); err != nil && workerCtx.Err() == nil {
			log.Error().Err(err).Msg("pubsub listener stopped")
		}
	}()
	go func() {
		if err := disp.Start(workerCtx); err != nil && workerCtx.Err() == nil {
			log.Error().Err(err).Msg("dispatcher stopped")
		}
	}()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				m.DBConnections.Set(float64(pool.Stat().TotalConns()))
			}
		}
	}()

	// Optional JWT auth
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		log.Info().Msg("JWT authentication enabled")
	}

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(walletUC)
	transferHandler := handler.NewTransferHandler(walletUC)
	streamHandler := handler.NewStreamHandler(walletUC, hub, log)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		TransferHandler:  transferHandler,
		StreamHandler:    streamHandler,
		LedgerHandler:    ledgerHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		JWTManager:       jwtManager,
		Logger:           log,
		Metrics:          m,
	})

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:     router,
		ReadTimeout: cfg.HTTPReadTimeout,
		// No write timeout: the stream endpoints hold their response open
		// for as long as the client stays subscribed.
		WriteTimeout: 0,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	stopWorkers()
	log.Info().Msg("server stopped")
}
