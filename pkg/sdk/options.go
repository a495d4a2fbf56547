package datanode

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "rueidis" or "go-redis"
	url      string
	addrs    []string
	password string
	poolSize int

	utcOffset    *int
	maxBatchSize int
	concurrency  int
	defaults     SearchDefaults

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithRedisURL connects through rueidis using a redis:// URL.
func WithRedisURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRueidis
		c.url = url
	})
}

// WithRedis connects through rueidis to addr.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRueidis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithGoRedis connects through go-redis using a redis:// URL.
func WithGoRedis(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverGoRedis
		c.url = url
	})
}

// WithPoolSize caps the number of store connections. Default: 20.
func WithPoolSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.poolSize = n
	})
}

// WithUTCOffset sets the fixed offset, in hours, of search time bounds. Default: 8.
func WithUTCOffset(hours int) Option {
	return optionFunc(func(c *clientConfig) {
		c.utcOffset = &hours
	})
}

// WithBatching sets the write chunk size and the number of chunks written concurrently.
func WithBatching(maxBatchSize, concurrency int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBatchSize = maxBatchSize
		c.concurrency = concurrency
	})
}

// WithSearchDefaults sets fallbacks for omitted search parameters.
func WithSearchDefaults(d SearchDefaults) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaults = d
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
