// Package elastic is the client of the Elasticsearch-compatible index engine.
package elastic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/metrics"
)

// Operation labels for metrics.
const (
	opSearch      = "search"
	opIndexRecord = "index_record"
	opEnsureIndex = "ensure_index"
	opPing        = "ping"
)

// DefaultTimeout bounds a single index request when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Config holds the index engine connection settings.
type Config struct {
	URL      string
	Index    string
	Username string
	Password string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Client talks to one index of an Elasticsearch-compatible engine.
type Client struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
	logger  *zap.Logger
}

// New creates an index client. Retries are disabled; failures surface to the caller.
func New(cfg *Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("index url is required")
	}
	if cfg.Index == "" {
		return nil, errors.New("index name is required")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    []string{cfg.URL},
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create index client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{es: es, index: cfg.Index, timeout: timeout, logger: logger}, nil
}

// Index returns the index name.
func (c *Client) Index() string { return c.index }

// HealthCheck pings the engine.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.do(ctx, opPing, func(ctx context.Context) (*esapi.Response, error) {
		return c.es.Ping(c.es.Ping.WithContext(ctx))
	}, nil)
	return err
}

// StatusError is a non-2xx response of the engine.
type StatusError struct {
	Op         string
	StatusCode int
	Type       string
	Reason     string
}

func (e *StatusError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("index %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("index %s: status %d: %s: %s", e.Op, e.StatusCode, e.Type, e.Reason)
}

// do runs one request with the client timeout, records metrics and decodes a
// 2xx body into out when out is non-nil. The returned status is 0 on transport errors.
func (c *Client) do(
	ctx context.Context, op string,
	call func(ctx context.Context) (*esapi.Response, error),
	out any,
) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	res, err := call(ctx)
	metrics.IndexRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		c.fail(op, "transport")
		return 0, fmt.Errorf("index %s: %w", op, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		c.fail(op, "status")
		return res.StatusCode, statusError(op, res)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			c.fail(op, "decode")
			return res.StatusCode, fmt.Errorf("index %s: decode response: %w", op, err)
		}
	}
	metrics.IndexRequestsTotal.WithLabelValues(op, "success").Inc()
	return res.StatusCode, nil
}

func (c *Client) fail(op, errorType string) {
	metrics.IndexRequestsTotal.WithLabelValues(op, "error").Inc()
	metrics.IndexErrorsTotal.WithLabelValues(op, errorType).Inc()
}

type errorBody struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

func statusError(op string, res *esapi.Response) *StatusError {
	se := &StatusError{Op: op, StatusCode: res.StatusCode}
	data, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err != nil {
		return se
	}
	var body errorBody
	if json.Unmarshal(data, &body) == nil {
		se.Type = body.Error.Type
		se.Reason = body.Error.Reason
	}
	return se
}
