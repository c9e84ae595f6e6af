package sqlite

import (
	"context"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"log/slog"
	"time"
)

const optimizeInterval = time.Hour

// startDatabaseOptimizer runs optimize on open and then once per optimizeInterval until ctx is done.
// See https://www.sqlite.org/pragma.html#pragma_optimize.
func (db *Database) startDatabaseOptimizer(ctx context.Context) {
	db.optimize(ctx, "PRAGMA optimize = 0x10002;")
	ticker := time.NewTicker(optimizeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			db.optimize(ctx, "PRAGMA optimize;")
		}
	}
}

// optimize stays silent once ctx is done because the database is about to be closed.
func (db *Database) optimize(ctx context.Context, pragma string) {
	start := time.Now()
	if _, err := db.ReadWrite.ExecContext(ctx, pragma); err != nil {
		if ctx.Err() != nil {
			return
		}
		db.logger.LogAttrs(ctx, slog.LevelError, "failed to optimize database",
			errors.SlogError(errors.Wrap(err, "optimize", slog.String("pragma", pragma))))
		return
	}
	db.logger.LogAttrs(ctx, slog.LevelDebug, "optimized database", slog.Duration("duration", time.Since(start)))
}
