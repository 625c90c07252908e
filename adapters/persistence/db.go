package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const connectTimeout = 10 * time.Second

// poolConfig sizes the pool from config. The portfolio is a single row, so
// a handful of connections serve every reader and writer.
func poolConfig(cfg config.Config) (*pgxpool.Config, error) {
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("portfolio database DSN is not set (DB_DSN)")
	}
	pc, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse portfolio database DSN: %w", err)
	}
	if cfg.DB.MaxConns > 0 {
		pc.MaxConns = cfg.DB.MaxConns
	}
	if cfg.DB.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.DB.MaxConnIdleTime
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "portfolio-" + cfg.App.Env
	return pc, nil
}

func NewPostgresPool(cfg config.Config, log logger.Logger) (*pgxpool.Pool, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("open portfolio database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("portfolio database unreachable: %w", err)
	}

	log.Info("Connected to portfolio database",
		zap.String("host", pc.ConnConfig.Host),
		zap.String("database", pc.ConnConfig.Database),
		zap.Int32("max_conns", pc.MaxConns),
	)
	return pool, nil
}
