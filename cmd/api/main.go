package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/bridal_booking/internal/app"
	"github.com/Freeeeeet/bridal_booking/internal/config"
	"github.com/Freeeeeet/bridal_booking/internal/controller/httpapi"
	"github.com/Freeeeeet/bridal_booking/internal/repository"
	"github.com/Freeeeeet/bridal_booking/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Пул соединений живёт столько же сколько процесс,
	// каждый запрос берёт соединение из пула и возвращает обратно
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(pool)
	dressRepo := repository.NewDressRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, logger)
	bookingService := service.NewBookingService(dressRepo, bookingRepo, logger)

	router := httpapi.NewRouter(authService, bookingService, cfg.AdminKey, logger)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("Starting bridal booking API",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
