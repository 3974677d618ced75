package main

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

const poolStatsInterval = time.Minute

func logPoolStats(ctx context.Context, zl *zap.Logger, stats func() sql.DBStats) {
	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := stats()
			zl.Debug("db pool stats",
				zap.Int("open", s.OpenConnections),
				zap.Int("idle", s.Idle),
				zap.Int("in_use", s.InUse),
				zap.Int64("wait_count", s.WaitCount),
				zap.Duration("wait_duration", s.WaitDuration),
			)
		}
	}
}
