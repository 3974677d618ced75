package handlers

import (
	"context"
	"time"

	"marketplace/internal/repositories"
	"marketplace/internal/repositories/cache"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	store repositories.Store
	cache cache.Store
	stats *cache.Stats
}

func NewHealthHandler(store repositories.Store, cacheStore cache.Store, stats *cache.Stats) *HealthHandler {
	return &HealthHandler{store: store, cache: cacheStore, stats: stats}
}

// HealthCheck reports 503 when the database is unreachable. An unreachable
// cache only degrades the status since reads fall back to the database.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status, code := "ok", fiber.StatusOK
	database, redis := "connected", "connected"
	if err := h.store.Ping(ctx); err != nil {
		database = "unreachable"
		status, code = "down", fiber.StatusServiceUnavailable
	}
	if err := h.cache.Ping(ctx); err != nil {
		redis = "unreachable"
		if code == fiber.StatusOK {
			status = "degraded"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"version": "1.0.0",
		"services": fiber.Map{
			"database": database,
			"cache":    redis,
		},
	})
}

func (h *HealthHandler) CacheStats(c *fiber.Ctx) error {
	body := fiber.Map{"cache_stats": h.stats.Snapshot()}

	if rs, ok := h.cache.(*cache.RedisStore); ok {
		poolStats := rs.PoolStats()
		body["pool_stats"] = fiber.Map{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		}
	}
	return c.JSON(body)
}
