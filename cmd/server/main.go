// Package main is the entry point for the agriaccount API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"agriaccount/internal/config"
	"agriaccount/internal/domain/auth"
	v1 "agriaccount/internal/infrastructure/http/v1"
	"agriaccount/internal/infrastructure/storage/postgres"
	"agriaccount/internal/infrastructure/storage/postgres/auth_repo"
	"agriaccount/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting agriaccount server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DSN()))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- JWT and auth ---
	jwtConfig := auth.DefaultJWTConfig(cfg.JWT.Secret)
	if cfg.JWT.Issuer != "" {
		jwtConfig.Issuer = cfg.JWT.Issuer
	}
	if cfg.JWT.ExpirationHours > 0 {
		jwtConfig.AccessTokenTTL = time.Duration(cfg.JWT.ExpirationHours) * time.Hour
	}
	jwtService := auth.NewJWTService(jwtConfig)

	userRepo := auth_repo.NewUserRepo(txManager)
	authService := auth.NewService(userRepo, jwtService, auth.DefaultServiceConfig())

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:               pool,
		TxManager:          txManager,
		Audit:              auditService,
		Logger:             log,
		JWTValidator:       jwtService,
		AuthService:        authService,
		CorsAllowedOrigins: cfg.Server.CorsAllowedOrigins,
	})

	// --- HTTP server ---
	addr := ":" + strconv.Itoa(cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
