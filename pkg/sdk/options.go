package recdex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "sqlite" or "redis"
	dsn       string
	addrs     []string
	password  string
	keyPrefix string

	indexURL      string
	indexName     string
	indexUser     string
	indexPassword string
	indexTimeout  time.Duration

	defaultPerPage int
	maxPerPage     int
	maxBatchSize   int
	maxAllowList   int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSQLite stores record permissions in the SQLite database at dsn.
func WithSQLite(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "sqlite"
		c.dsn = dsn
	})
}

// WithRedis stores record permissions in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the Redis key prefix. Default: "recdex:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithIndex sets the index engine URL and the record index name.
func WithIndex(url, name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexURL = url
		c.indexName = name
	})
}

// WithIndexAuth sets basic auth credentials for the index engine.
func WithIndexAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexUser = username
		c.indexPassword = password
	})
}

// WithIndexTimeout bounds every index request. Default: 10s.
func WithIndexTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexTimeout = d
	})
}

// WithPageLimits overrides the default and maximum page sizes.
func WithPageLimits(defaultPerPage, maxPerPage int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPerPage = defaultPerPage
		c.maxPerPage = maxPerPage
	})
}

// WithMaxBatchSize sets the maximum number of records per Ingest call.
// Default: 500.
func WithMaxBatchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBatchSize = size
	})
}

// WithMaxAllowList caps the readable record ids sent with one search.
// Searches over more readable records keep the newest ids. A cap above the
// engine default also raises max_terms_count when EnsureIndex creates the index.
func WithMaxAllowList(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxAllowList = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
