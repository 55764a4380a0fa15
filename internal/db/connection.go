// Package db contains code for connecting to the remote Postgres database.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aquatrack/hydrosync/internal/config"
)

const (
	defaultMaxConns        = 25
	defaultMinConns        = 0
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnectTimeout  = 30 * time.Second
)

// PoolOption configures NewPool
type PoolOption func(*poolOptions)

type poolOptions struct {
	connectTimeout time.Duration
}

// WithConnectTimeout bounds how long NewPool keeps retrying the first ping
func WithConnectTimeout(d time.Duration) PoolOption {
	return func(o *poolOptions) {
		o.connectTimeout = d
	}
}

// BuildPoolConfig turns the database configuration into a pgxpool configuration
func BuildPoolConfig(cfg *config.DatabaseConfig) (*pgxpool.Config, error) {
	if cfg == nil {
		return nil, errors.New("database configuration is required")
	}
	if cfg.Host == "" {
		return nil, errors.New("database host is required")
	}
	if cfg.Port == 0 {
		return nil, errors.New("database port is required")
	}
	if cfg.User == "" {
		return nil, errors.New("database user is required")
	}
	if cfg.Database == "" {
		return nil, errors.New("database name is required")
	}

	connStr, err := cfg.GetConnectionString()
	if err != nil {
		return nil, fmt.Errorf("failed to get database password: %w", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}

	poolConfig.MaxConns = defaultMaxConns
	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	}
	poolConfig.MinConns = defaultMinConns
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = min(cfg.MaxIdleConns, poolConfig.MaxConns)
	}

	poolConfig.MaxConnLifetime = defaultConnMaxLifetime
	if cfg.ConnMaxLifetime != "" {
		lifetime, err := time.ParseDuration(cfg.ConnMaxLifetime)
		if err != nil {
			return nil, fmt.Errorf("invalid connection max lifetime: %w", err)
		}
		poolConfig.MaxConnLifetime = lifetime
	}

	return poolConfig, nil
}

// NewPool creates a connection pool and waits until the database answers a
// ping, retrying with exponential backoff for up to the connect timeout.
func NewPool(ctx context.Context, cfg *config.DatabaseConfig, opts ...PoolOption) (*pgxpool.Pool, error) {
	o := &poolOptions{connectTimeout: defaultConnectTimeout}
	for _, opt := range opts {
		opt(o)
	}

	poolConfig, err := BuildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	attempt := 0
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		if err := pool.Ping(ctx); err != nil {
			slog.Debug("Database not reachable yet", "attempt", attempt, "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(o.connectTimeout),
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connection established",
		"user", cfg.User,
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Database,
	)
	return pool, nil
}
