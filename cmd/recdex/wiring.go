package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/config"
	"github.com/kailas-cloud/recdex/internal/db"
	dbRedis "github.com/kailas-cloud/recdex/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/recdex/internal/db/sqlite"
	"github.com/kailas-cloud/recdex/internal/transport/elastic"
)

// openStore creates the permission store selected by database.driver and
// waits until it answers.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err = dbSQLite.Open(cfg.DSN)
	case config.DriverRedis:
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Addrs,
			Username:  cfg.Username,
			Password:  cfg.Password,
			DB:        cfg.DB,
			KeyPrefix: cfg.KeyPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, cfg.ReadinessTimeoutDuration()); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database", zap.String("driver", cfg.Driver))
	return store, nil
}

func newIndexClient(cfg config.IndexConfig, logger *zap.Logger) (*elastic.Client, error) {
	client, err := elastic.New(&elastic.Config{
		URL:      cfg.URL,
		Index:    cfg.Name,
		Username: cfg.Username,
		Password: cfg.Password,
		Timeout:  cfg.Timeout(),
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create index client: %w", err)
	}
	return client, nil
}
