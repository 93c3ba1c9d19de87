package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coursetrack/syllabus-tracker/internal/common"
)

// Open builds the configured cache store.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (RecordRepository, error) {
	switch cfg.Driver {
	case "postgres":
		return OpenPostgres(ctx, PostgresConfig{
			DSN:              cfg.DSN,
			MaxConns:         cfg.MaxConns,
			MinConns:         cfg.MinConns,
			MaxConnLifetime:  cfg.MaxConnLifetime,
			MaxConnIdleTime:  cfg.MaxConnIdleTime,
			DialTimeout:      cfg.DialTimeout,
			StatementTimeout: cfg.StatementTimeout,
		}, logger)
	case "sqlite", "":
		return OpenSQLite(ctx, cfg.Path, logger)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
