package recdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/recdex/internal/db"
	dbRedis "github.com/kailas-cloud/recdex/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/recdex/internal/db/sqlite"
	dombatch "github.com/kailas-cloud/recdex/internal/domain/batch"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/query"
	"github.com/kailas-cloud/recdex/internal/domain/search/request"
	"github.com/kailas-cloud/recdex/internal/domain/search/result"
	recordrepo "github.com/kailas-cloud/recdex/internal/repository/record"
	"github.com/kailas-cloud/recdex/internal/transport/elastic"
	healthuc "github.com/kailas-cloud/recdex/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/recdex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/recdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced by mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, userID int64, req *request.Request) (result.Page, error)
	Explain(req *request.Request) query.Search
}

type ingestUseCase interface {
	Put(ctx context.Context, p domrec.Params) error
	Ingest(ctx context.Context, items []domrec.Params) []dombatch.Result
}

type indexManager interface {
	EnsureIndex(ctx context.Context, def *db.IndexDefinition) (bool, error)
	Index() string
}

// Client is the recdex SDK entry point.
type Client struct {
	store     db.Store
	index     indexManager
	searchSvc searchUseCase
	ingestSvc ingestUseCase
	healthSvc healthUseCase
	limits    request.Limits
	obs       *observer

	maxAllowList int
}

// New creates a recdex Client and connects to the permission store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("recdex: permission store required (use WithSQLite or WithRedis)")
	}
	if cfg.indexURL == "" || cfg.indexName == "" {
		return nil, errors.New("recdex: index required (use WithIndex)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	index, err := elastic.New(&elastic.Config{
		URL:      cfg.indexURL,
		Index:    cfg.indexName,
		Username: cfg.indexUser,
		Password: cfg.indexPassword,
		Timeout:  cfg.indexTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("recdex: %w", err)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("recdex: database not ready: %w", err)
	}

	return wireClient(store, index, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "sqlite":
		s, err := dbSQLite.Open(cfg.dsn)
		if err != nil {
			return nil, fmt.Errorf("recdex: open sqlite store: %w", err)
		}
		return s, nil
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.addrs,
			Password:  cfg.password,
			KeyPrefix: cfg.keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("recdex: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("recdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, index *elastic.Client, cfg *clientConfig, obs *observer) *Client {
	ingestSvc := ingestuc.New(recordrepo.New(store), index)
	if cfg.maxBatchSize > 0 {
		ingestSvc = ingestSvc.WithMaxBatchSize(cfg.maxBatchSize)
	}

	return &Client{
		store:     store,
		index:     index,
		searchSvc: searchuc.New(recordrepo.New(store), index).WithMaxAllowList(cfg.maxAllowList),
		ingestSvc: ingestSvc,
		healthSvc: healthuc.New(store, index),
		limits: request.Limits{
			DefaultPerPage: cfg.defaultPerPage,
			MaxPerPage:     cfg.maxPerPage,
		},
		obs:          obs,
		maxAllowList: cfg.maxAllowList,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks permission store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, -1, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsureIndex creates the record index unless it exists and reports
// whether it was created.
func (c *Client) EnsureIndex(ctx context.Context) (created bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("ensure_index", start, -1, err) }()

	return c.index.EnsureIndex(ctx, elastic.RecordIndex(c.index.Index(), c.maxAllowList))
}
