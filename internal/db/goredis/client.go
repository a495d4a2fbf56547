// Package goredis is the go-redis implementation of db.Driver.
package goredis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/katoyeung/data-node/internal/db"
	"github.com/katoyeung/data-node/internal/db/reply"
)

var _ db.Driver = (*Store)(nil)

// Config holds connection parameters.
type Config struct {
	URL         string // takes precedence over Addr; set credentials and DB override it
	Addr        string
	Username    string
	Password    string
	DB          int
	PoolSize    int
	IdleTimeout time.Duration
}

// Store implements db.Driver via go-redis.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a go-redis backed store. No connection is made until first use.
func NewStore(cfg Config) (*Store, error) {
	opt, err := options(cfg)
	if err != nil {
		return nil, err
	}
	return &Store{rdb: redis.NewClient(opt)}, nil
}

func options(cfg Config) (*redis.Options, error) {
	var opt *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
		if cfg.Username != "" {
			opt.Username = cfg.Username
		}
		if cfg.Password != "" {
			opt.Password = cfg.Password
		}
		if cfg.DB != 0 {
			opt.DB = cfg.DB
		}
	} else {
		if cfg.Addr == "" {
			return nil, fmt.Errorf("addr is required")
		}
		opt = &redis.Options{
			Addr:     cfg.Addr,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	opt.Protocol = 2 // FT.SEARCH reply decoding expects the RESP2 array layout
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.IdleTimeout > 0 {
		opt.ConnMaxIdleTime = cfg.IdleTimeout
	}
	return opt, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the pool.
func (s *Store) Close() {
	_ = s.rdb.Close()
}

// Do sends one command.
func (s *Store) Do(ctx context.Context, cmd db.Command) (reply.Value, error) {
	v, err := s.rdb.Do(ctx, argv(cmd)...).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return reply.Nil(), nil
		}
		return reply.Value{}, err
	}
	return fromInterface(v), nil
}

// DoMulti pipelines cmds in a single round trip.
func (s *Store) DoMulti(ctx context.Context, cmds ...db.Command) ([]reply.Value, error) {
	if len(cmds) == 0 {
		return nil, nil
	}

	pipe := s.rdb.Pipeline()
	results := make([]*redis.Cmd, len(cmds))
	for i, c := range cmds {
		results[i] = pipe.Do(ctx, argv(c)...)
	}
	_, execErr := pipe.Exec(ctx)

	out := make([]reply.Value, len(results))
	for i, res := range results {
		v, err := res.Result()
		switch {
		case errors.Is(err, redis.Nil):
			out[i] = reply.Nil()
		case err != nil:
			return nil, fmt.Errorf("%s: %w", describe(cmds[i]), err)
		default:
			out[i] = fromInterface(v)
		}
	}
	if execErr != nil && !errors.Is(execErr, redis.Nil) {
		return nil, execErr
	}
	return out, nil
}

func argv(cmd db.Command) []any {
	parts := cmd.Argv()
	args := make([]any, len(parts))
	for i, p := range parts {
		args[i] = p
	}
	return args
}

func describe(cmd db.Command) string {
	if len(cmd.Keys) > 0 {
		return "key " + cmd.Keys[0]
	}
	return cmd.Name
}
