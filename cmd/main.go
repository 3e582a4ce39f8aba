package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/AnthoniusHendriyanto/jwt-auth-service/config"
	"github.com/AnthoniusHendriyanto/jwt-auth-service/db"
	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/auth/password"
	repo "github.com/AnthoniusHendriyanto/jwt-auth-service/internal/auth/repository/postgres"
	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/auth/service"
	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/logger"
	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	dbPool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
		dbPool.Close()
		logger.Fatal("failed to run migrations", "error", err)
	}

	userRepo := repo.NewPostgresRepository(dbPool)
	hasher := password.NewArgon2(password.Params{
		Memory:      cfg.Argon2.Memory,
		Time:        cfg.Argon2.Time,
		Parallelism: cfg.Argon2.Parallelism,
	})
	tokenService, err := service.NewTokenService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry.Duration(),
		cfg.JWT.RefreshExpiry.Duration(),
	)
	if err != nil {
		dbPool.Close()
		logger.Fatal("failed to initialize token service", "error", err)
	}
	userService := service.NewUserService(userRepo, tokenService, hasher, cfg, logger)

	if err := userService.SeedTestAccounts(ctx); err != nil {
		dbPool.Close()
		logger.Fatal("failed to seed test accounts", "error", err)
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: "*"}))
	app.Use(middleware.NewLogging(logger).Handle)
	handler.RegisterRoutes(app, handler.NewAuthHandler(userService, logger))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	wg.Wait()
	dbPool.Close()
	logger.Info("shutdown complete")
}
