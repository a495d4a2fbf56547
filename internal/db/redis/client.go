package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/katoyeung/data-node/internal/db"
	"github.com/katoyeung/data-node/internal/db/reply"
)

// Compile-time check: Store implements db.Driver.
var _ db.Driver = (*Store)(nil)

// Config holds connection parameters for a Redis store.
type Config struct {
	URL      string // redis://[user:pass@]host:port/db, takes precedence over Addrs; set credentials and DB override it
	Addrs    []string
	Username string
	Password string
	DB       int
	PoolSize int
}

// Store implements db.Driver via rueidis.
type Store struct {
	client rueidis.Client
}

// NewStore creates a Redis store via rueidis.
func NewStore(cfg Config) (*Store, error) {
	opt, err := clientOption(cfg)
	if err != nil {
		return nil, err
	}

	client, err := rueidis.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client}, nil
}

func clientOption(cfg Config) (rueidis.ClientOption, error) {
	var opt rueidis.ClientOption
	if cfg.URL != "" {
		parsed, err := rueidis.ParseURL(cfg.URL)
		if err != nil {
			return opt, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
		if cfg.Username != "" {
			opt.Username = cfg.Username
		}
		if cfg.Password != "" {
			opt.Password = cfg.Password
		}
		if cfg.DB != 0 {
			opt.SelectDB = cfg.DB
		}
	} else {
		if len(cfg.Addrs) == 0 {
			return opt, fmt.Errorf("addrs is required")
		}
		opt.InitAddress = cfg.Addrs
		opt.Username = cfg.Username
		opt.Password = cfg.Password
		opt.SelectDB = cfg.DB
	}

	opt.DisableCache = true
	opt.AlwaysRESP2 = true // FT.SEARCH reply decoding expects the RESP2 array layout
	if cfg.PoolSize > 0 {
		opt.BlockingPoolSize = cfg.PoolSize
	}
	return opt, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// Do sends one command.
func (s *Store) Do(ctx context.Context, cmd db.Command) (reply.Value, error) {
	return toValue(s.client.Do(ctx, s.build(cmd)))
}

// DoMulti pipelines cmds in a single round trip.
func (s *Store) DoMulti(ctx context.Context, cmds ...db.Command) ([]reply.Value, error) {
	if len(cmds) == 0 {
		return nil, nil
	}

	built := make([]rueidis.Completed, len(cmds))
	for i, c := range cmds {
		built[i] = s.build(c)
	}

	results := s.client.DoMulti(ctx, built...)
	out := make([]reply.Value, len(results))
	for i, res := range results {
		v, err := toValue(res)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", describe(cmds[i]), err)
		}
		out[i] = v
	}
	return out, nil
}

func (s *Store) build(cmd db.Command) rueidis.Completed {
	return s.client.B().Arbitrary(cmd.Name).Keys(cmd.Keys...).Args(cmd.Args...).Build()
}

func describe(cmd db.Command) string {
	if len(cmd.Keys) > 0 {
		return "key " + cmd.Keys[0]
	}
	return cmd.Name
}
