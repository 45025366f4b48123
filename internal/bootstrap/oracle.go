package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/betterrest/internal/infra/config"
	"github.com/yanqian/betterrest/internal/infra/oracle"
)

// NewOracleLoader builds the artifact loader selected by cfg.Oracle.Source. The returned cleanup releases
// any connection pool the source opened.
func NewOracleLoader(cfg *config.Config, logger *slog.Logger) (*oracle.Loader, func(), error) {
	oc := cfg.Oracle
	switch oc.Source {
	case config.OracleSourceFile:
		logger.Info("oracle artifact from file", "path", oc.Path)
		return oracle.NewLoader(oracle.NewFileFetcher(oc.Path), oc.RefreshInterval, logger), func() {}, nil
	case config.OracleSourceObject:
		fetcher, err := oracle.NewObjectFetcher(oracle.ObjectConfig{
			Endpoint:  oc.Object.Endpoint,
			AccessKey: oc.Object.AccessKey,
			SecretKey: oc.Object.SecretKey,
			Bucket:    oc.Object.Bucket,
			Region:    oc.Object.Region,
			Key:       oc.Object.Key,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("oracle artifact from object storage", "bucket", oc.Object.Bucket, "key", oc.Object.Key)
		return oracle.NewLoader(fetcher, oc.RefreshInterval, logger), func() {}, nil
	case config.OracleSourceRegistry:
		pool, err := newRegistryPool(oc.Registry)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("oracle artifact from postgres registry", "model", oc.Registry.Model)
		return oracle.NewLoader(oracle.NewRegistryFetcher(pool, oc.Registry.Model), oc.RefreshInterval, logger), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown oracle source %q", oc.Source)
	}
}

func newRegistryPool(rc config.RegistryConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(rc.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse registry dsn: %w", err)
	}
	if rc.MaxConns > 0 {
		poolConfig.MaxConns = rc.MaxConns
	}
	if rc.MinConns > 0 {
		poolConfig.MinConns = rc.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("open registry pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping registry: %w", err)
	}
	return pool, nil
}
