package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/katoyeung/data-node/internal/db/reply"
)

// Observer receives the outcome of every store round trip.
type Observer func(op string, d time.Duration, err error)

// Client is the store handle shared by use cases. It adds logging, metrics
// and typed helpers on top of a Driver.
type Client struct {
	drv      Driver
	logger   *zap.Logger
	observe  Observer
	scanSize int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithObserver installs a per-command observer.
func WithObserver(o Observer) ClientOption {
	return func(c *Client) { c.observe = o }
}

// WithScanCount sets the SCAN COUNT hint.
func WithScanCount(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.scanSize = n
		}
	}
}

// NewClient wraps drv.
func NewClient(drv Driver, logger *zap.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		drv:      drv,
		logger:   logger,
		observe:  func(string, time.Duration, error) {},
		scanSize: 100,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()
	err := c.drv.Ping(ctx)
	c.observe(OpPing, time.Since(start), err)
	if err != nil {
		return &Error{Op: OpPing, Err: err}
	}
	return nil
}

// Close shuts down the driver.
func (c *Client) Close() {
	c.drv.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := c.drv.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Do sends one command and returns its reply. Failures are wrapped in *Error.
func (c *Client) Do(ctx context.Context, cmd Command) (reply.Value, error) {
	c.logger.Debug("Executing command",
		zap.String("command", cmd.Name),
		zap.Strings("keys", cmd.Keys),
		zap.Int("args", len(cmd.Args)),
	)

	start := time.Now()
	v, err := c.drv.Do(ctx, cmd)
	c.observe(cmd.Name, time.Since(start), err)
	if err != nil {
		return reply.Value{}, &Error{Op: cmd.Name, Err: err}
	}
	return v, nil
}

// DoMulti pipelines cmds in one round trip. The first failing command fails the batch.
func (c *Client) DoMulti(ctx context.Context, cmds ...Command) ([]reply.Value, error) {
	if len(cmds) == 0 {
		return nil, nil
	}
	c.logger.Debug("Executing pipeline",
		zap.String("command", cmds[0].Name),
		zap.Int("size", len(cmds)),
	)

	start := time.Now()
	vals, err := c.drv.DoMulti(ctx, cmds...)
	c.observe(cmds[0].Name, time.Since(start), err)
	if err != nil {
		return nil, &Error{Op: cmds[0].Name, Err: err}
	}
	return vals, nil
}

// Info returns the parsed INFO block.
func (c *Client) Info(ctx context.Context) (map[string]string, error) {
	v, err := c.Do(ctx, NewCommand(OpInfo))
	if err != nil {
		return nil, err
	}
	s, ok := v.Str()
	if !ok {
		return nil, &Error{Op: OpInfo, Err: fmt.Errorf("unexpected reply kind %s", v.Kind())}
	}
	return ParseInfo(s), nil
}

// IndexInfo returns the normalized FT.INFO reply for index.
func (c *Client) IndexInfo(ctx context.Context, index string) ([]any, error) {
	v, err := c.Do(ctx, NewCommand(OpIndexInfo, index))
	if err != nil {
		if IsIndexNotFound(err) {
			return nil, &Error{Op: OpIndexInfo, Err: fmt.Errorf("%w: %s", ErrIndexNotFound, index)}
		}
		return nil, err
	}
	return NormalizeIndexInfo(v), nil
}

// JSONSet stores data as the whole document at key.
func (c *Client) JSONSet(ctx context.Context, key string, data []byte) error {
	_, err := c.Do(ctx, jsonSetCommand(key, data))
	return err
}

// JSONSetMulti stores multiple documents in a single pipelined round trip.
func (c *Client) JSONSetMulti(ctx context.Context, items []JSONSetItem) error {
	if len(items) == 0 {
		return nil
	}
	cmds := make([]Command, len(items))
	for i, item := range items {
		cmds[i] = jsonSetCommand(item.Key, item.Data)
	}
	_, err := c.DoMulti(ctx, cmds...)
	return err
}

// Del removes keys and returns how many existed.
func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	v, err := c.Do(ctx, Command{Name: OpDel, Keys: keys})
	if err != nil {
		return 0, err
	}
	n, _ := v.Int64()
	return n, nil
}

// Scan iterates keys matching a pattern.
func (c *Client) Scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	cursor := "0"

	for {
		v, err := c.Do(ctx, NewCommand(OpScan, cursor, "MATCH", pattern, "COUNT", strconv.Itoa(c.scanSize)))
		if err != nil {
			return nil, err
		}
		next, ok := v.At(0).Str()
		if !ok {
			return nil, &Error{Op: OpScan, Err: fmt.Errorf("unexpected cursor reply %s", v.At(0).Kind())}
		}
		batch, _ := v.At(1).Items()
		for _, k := range batch {
			if s, ok := k.Str(); ok {
				keys = append(keys, s)
			}
		}
		cursor = next
		if cursor == "0" {
			break
		}
	}

	return keys, nil
}

func jsonSetCommand(key string, data []byte) Command {
	return Command{Name: OpJSONSet, Keys: []string{key}, Args: []string{"$", string(data)}}
}
