package main

import (
	"context"
	"errors"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gtfunds/config"
	"gtfunds/internal/adapters/logger"
	"gtfunds/internal/adapters/mongodb"
	"gtfunds/internal/app"
	"gtfunds/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()
	ctx := context.Background()
	appLogger.Info(ctx, "Logger initialized", map[string]interface{}{"level": cfg.LogLevel})

	// 3. Connect to MongoDB
	store, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.MongoURL,
		Database: cfg.DatabaseName,
		Logger:   appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to connect to MongoDB")
		log.Fatalf("FATAL: Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			appLogger.Error(context.Background(), err, "Error closing MongoDB connection")
		}
	}()
	appLogger.Info(ctx, "MongoDB connection established", map[string]interface{}{"database": cfg.DatabaseName})

	if err := store.EnsureIndexes(ctx); err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to ensure indexes")
		log.Fatalf("FATAL: Failed to ensure indexes: %v", err)
	}

	// 4. Initialize Repositories
	tiroRepo := mongodb.NewTiroRepository(store)
	cycleRepo := mongodb.NewCycleRepository(store)
	accountRepo := mongodb.NewTradingAccountRepository(store)
	kycRepo := mongodb.NewKycRepository(store)
	payoutRepo := mongodb.NewPayoutRepository(store)
	investorRepo := mongodb.NewInvestorRepository(store)
	clientRepo := mongodb.NewClientRepository(store)
	userRepo := mongodb.NewUserRepository(store)

	// 5. Initialize Application Services
	tiroService, err := app.NewTiroService(tiroRepo, cycleRepo, accountRepo, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize tiro service: %v", err)
	}
	cycleService, err := app.NewCycleService(cycleRepo, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize cycle service: %v", err)
	}
	accountService, err := app.NewAccountService(accountRepo, kycRepo, cycleRepo, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize account service: %v", err)
	}
	kycService, err := app.NewKycService(kycRepo, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize KYC service: %v", err)
	}
	payoutService, err := app.NewPayoutService(payoutRepo, kycRepo, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize payout service: %v", err)
	}
	investorService, err := app.NewInvestorService(investorRepo, cycleRepo, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize investor service: %v", err)
	}
	clientService, err := app.NewClientService(clientRepo, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize client service: %v", err)
	}
	dashboardService, err := app.NewDashboardService(cycleRepo, accountRepo, tiroRepo, kycRepo, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize dashboard service: %v", err)
	}
	authService, err := app.NewAuthService(app.AuthConfig{
		Users:    userRepo,
		Logger:   appLogger,
		Secret:   cfg.JWTSecret,
		TokenTTL: cfg.TokenTTL,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize auth service: %v", err)
	}

	// 6. Assemble HTTP Server
	srv, err := server.New(server.Config{
		Tiros:       tiroService,
		Cycles:      cycleService,
		Accounts:    accountService,
		Kycs:        kycService,
		Payouts:     payoutService,
		Investors:   investorService,
		Clients:     clientService,
		Dashboard:   dashboardService,
		Auth:        authService,
		Logger:      appLogger,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to assemble HTTP server")
		log.Fatalf("FATAL: Failed to assemble HTTP server: %v", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 7. Run until interrupted, then drain in-flight requests
	errCh := make(chan error, 1)
	go func() {
		appLogger.Info(ctx, "HTTP server listening", map[string]interface{}{"addr": cfg.ListenAddr})
		errCh <- httpServer.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error(ctx, err, "HTTP server failed")
			log.Fatalf("FATAL: HTTP server failed: %v", err)
		}
	case sig := <-quit:
		appLogger.Info(ctx, "Shutdown signal received", map[string]interface{}{"signal": sig.String()})
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error(shutdownCtx, err, "Graceful shutdown failed")
		}
	}

	appLogger.Info(ctx, "Server stopped")
}
