package datanode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katoyeung/data-node/internal/db"
	"github.com/katoyeung/data-node/internal/db/goredis"
	dbRedis "github.com/katoyeung/data-node/internal/db/redis"
	domdoc "github.com/katoyeung/data-node/internal/domain/document"
	"github.com/katoyeung/data-node/internal/domain/schema"
	"github.com/katoyeung/data-node/internal/domain/search/query"
	"github.com/katoyeung/data-node/internal/domain/search/result"
	"github.com/katoyeung/data-node/internal/logger"
	documentuc "github.com/katoyeung/data-node/internal/usecase/document"
	healthuc "github.com/katoyeung/data-node/internal/usecase/health"
	indexuc "github.com/katoyeung/data-node/internal/usecase/index"
	searchuc "github.com/katoyeung/data-node/internal/usecase/search"
	statusuc "github.com/katoyeung/data-node/internal/usecase/status"
)

const (
	driverRueidis = "rueidis"
	driverGoRedis = "go-redis"

	defaultReadinessTimeout = 10 * time.Second
	defaultPoolSize         = 20
)

type documentUseCase interface {
	Ingest(ctx context.Context, doc domdoc.Document) (string, error)
	IngestBatch(ctx context.Context, docs []domdoc.Document) ([]string, error)
	Delete(ctx context.Context, keys []string, source string) (int64, error)
}

type searchUseCase interface {
	Search(ctx context.Context, q *query.Query) (result.Result, error)
}

type indexUseCase interface {
	Define(ctx context.Context, s *schema.Schema) (indexuc.Outcome, error)
	Info(ctx context.Context, name string) ([]any, error)
}

type statusUseCase interface {
	Server(ctx context.Context) (map[string]string, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the data-node SDK entry point.
type Client struct {
	store     *db.Client
	docSvc    documentUseCase
	searchSvc searchUseCase
	indexSvc  indexUseCase
	statusSvc statusUseCase
	healthSvc healthUseCase
	defaults  query.Defaults
	logger    *zap.Logger
	obs       *observer
}

// New creates a Client and waits for the store to answer PING.
// The provided context bounds the readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{poolSize: defaultPoolSize}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.url == "" && len(cfg.addrs) == 0 {
		return nil, errors.New("datanode: store address required (use WithRedisURL, WithRedis or WithGoRedis)")
	}

	drv, err := createDriver(cfg)
	if err != nil {
		return nil, err
	}

	log := cfg.logger
	if log == nil {
		log = zap.NewNop()
	}
	store := db.NewClient(drv, log)

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("datanode: store not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, log, obs), nil
}

func createDriver(cfg *clientConfig) (db.Driver, error) {
	switch cfg.driver {
	case driverRueidis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			URL:      cfg.url,
			Addrs:    cfg.addrs,
			Password: cfg.password,
			PoolSize: cfg.poolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("datanode: create rueidis store: %w", err)
		}
		return s, nil
	case driverGoRedis:
		s, err := goredis.NewStore(goredis.Config{
			URL:      cfg.url,
			PoolSize: cfg.poolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("datanode: create go-redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("datanode: unknown driver %q", cfg.driver)
	}
}

func wireClient(store *db.Client, cfg *clientConfig, log *zap.Logger, obs *observer) *Client {
	docSvc := documentuc.New(store, domdoc.NewEncoder())
	if cfg.maxBatchSize > 0 || cfg.concurrency > 0 {
		docSvc = docSvc.WithBatching(cfg.maxBatchSize, cfg.concurrency)
	}
	searchSvc := searchuc.New(store)
	if cfg.utcOffset != nil {
		searchSvc = searchSvc.WithUTCOffset(*cfg.utcOffset)
	}

	return &Client{
		store:     store,
		docSvc:    docSvc,
		searchSvc: searchSvc,
		indexSvc:  indexuc.New(store),
		statusSvc: statusuc.New(store),
		healthSvc: healthuc.New(store),
		defaults:  cfg.defaults,
		logger:    log,
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

func (c *Client) ctx(ctx context.Context) context.Context {
	return logger.ContextWithLogger(ctx, c.logger)
}

// Add stores one document and returns its generated key.
func (c *Client) Add(ctx context.Context, doc Document) (key string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("add", start, err) }()

	return c.docSvc.Ingest(c.ctx(ctx), doc)
}

// AddBatch stores docs and returns their keys in input order.
// Nothing is written if any document fails validation.
func (c *Client) AddBatch(ctx context.Context, docs []Document) (keys []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("add_batch", start, err) }()

	return c.docSvc.IngestBatch(c.ctx(ctx), docs)
}

// Delete removes the given keys, or every key of source when keys is empty.
func (c *Client) Delete(ctx context.Context, keys []string, source string) (n int64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("delete", start, err) }()

	return c.docSvc.Delete(c.ctx(ctx), keys, source)
}

// Search runs a full-text query with optional time range.
func (c *Client) Search(ctx context.Context, p SearchParams) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	q, err := query.New(p, c.defaults)
	if err != nil {
		return SearchResult{}, err
	}
	r, err := c.searchSvc.Search(c.ctx(ctx), &q)
	if err != nil {
		return SearchResult{}, err
	}
	return searchResultFrom(&r), nil
}

// DefineIndex drops and recreates an index. It returns the success message.
func (c *Client) DefineIndex(ctx context.Context, s Schema) (msg string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("define_index", start, err) }()

	out, err := c.indexSvc.Define(c.ctx(ctx), &s)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

// IndexInfo returns FT.INFO for name with string and integer values kept as-is.
func (c *Client) IndexInfo(ctx context.Context, name string) (info []any, err error) {
	start := time.Now()
	defer func() { c.obs.observe("index_info", start, err) }()

	return c.indexSvc.Info(c.ctx(ctx), name)
}

// ServerInfo returns the parsed INFO reply.
func (c *Client) ServerInfo(ctx context.Context) (info map[string]string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("server_info", start, err) }()

	return c.statusSvc.Server(c.ctx(ctx))
}

// Healthy reports whether the store answers PING.
func (c *Client) Healthy(ctx context.Context) bool {
	return c.healthSvc.Check(c.ctx(ctx)).Status == healthuc.Healthy
}
