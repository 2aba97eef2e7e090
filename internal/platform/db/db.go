package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	return open(ctx, poolCfg)
}

// ConnectWithRetry retries Connect with exponential backoff until the
// database answers, ctx ends or maxElapsed has passed. A malformed URL fails
// at once.
func ConnectWithRetry(ctx context.Context, databaseURL string, maxElapsed time.Duration) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 250 * time.Millisecond
	expBackoff.MaxInterval = 5 * time.Second
	expBackoff.MaxElapsedTime = maxElapsed

	var pool *pgxpool.Pool
	attempt := 0
	operation := func() error {
		attempt++
		p, err := open(ctx, poolCfg.Copy())
		if err != nil {
			slog.Warn("database not reachable", "attempt", attempt, "err", err)
			return err
		}
		pool = p
		return nil
	}
	if err := backoff.Retry(operation, backoff.WithContext(expBackoff, ctx)); err != nil {
		return nil, err
	}
	return pool, nil
}

func poolConfig(databaseURL string) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	return poolCfg, nil
}

func open(ctx context.Context, poolCfg *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
