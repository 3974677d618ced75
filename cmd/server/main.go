// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/handlers"
	applog "marketplace/internal/logger"
	"marketplace/internal/middleware"
	"marketplace/internal/repositories"
	"marketplace/internal/repositories/cache"
	"marketplace/internal/routes"
	"marketplace/internal/services/access"
	"marketplace/internal/services/account"
	"marketplace/internal/services/card"
	"marketplace/internal/services/readthrough"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	zl, err := applog.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repositories.Connect(cfg.Database, zl)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			zl.Warn("failed to close database connection", zap.Error(err))
		}
	}()
	if err := repositories.Migrate(db); err != nil {
		return err
	}
	go logPoolStats(ctx, zl, sqlDB.Stats)

	cacheStore, err := cache.Open(cfg.Cache, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := cacheStore.Close(); err != nil {
			zl.Warn("failed to close cache connection", zap.Error(err))
		}
	}()
	prepareCache(ctx, cfg.Cache, cacheStore, zl)

	stats := cache.NewStats()
	rt := readthrough.New(cache.New(cacheStore, stats, zl.Named("cache")), access.OwnershipGate{})
	store := repositories.NewStore(db)
	accountService := account.NewService(store, rt, zl)
	cardService := card.NewService(store, rt, zl)

	app := fiber.New(fiber.Config{
		AppName:      "marketplace",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:request_id}\n",
	}))
	app.Use("/api", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("RATE_LIMIT_MAX", 100),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	if cfg.Auth.JWTSecret == "" {
		zl.Warn("JWT_SECRET is empty, every authenticated request will be rejected")
	}
	routes.SetupRoutes(app, routes.Handlers{
		Accounts: handlers.NewAccountHandler(accountService, zl),
		Cards:    handlers.NewCardHandler(cardService, zl),
		Health:   handlers.NewHealthHandler(store, cacheStore, stats),
	}, middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, zl))

	errc := make(chan error, 1)
	go func() {
		zl.Info("http server listening", zap.String("port", cfg.Server.Port), zap.String("cache_driver", cfg.Cache.Driver))
		errc <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

// prepareCache checks the cache is reachable and flushes it when asked to.
// An unreachable cache is not fatal: reads fall through to the database.
func prepareCache(ctx context.Context, cfg config.CacheConfig, s cache.Store, zl *zap.Logger) {
	if err := s.Ping(ctx); err != nil {
		zl.Warn("cache unreachable, serving from database until it recovers", zap.Error(err))
		return
	}
	if !cfg.FlushOnStart {
		return
	}
	if err := s.Flush(ctx); err != nil {
		zl.Warn("failed to flush cache", zap.Error(err))
		return
	}
	zl.Info("cache flushed on startup")
}
