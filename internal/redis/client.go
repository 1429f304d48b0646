// Package redis confines the go-redis dependency. Stores accept Cmdable
// and compare against Nil instead of importing go-redis directly.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/metacatalog/timefmt/internal/domain"
)

// Cmdable is a type alias for redis.Cmdable.
type Cmdable = redis.Cmdable

// Nil is the reply error for a missing key.
var Nil = redis.Nil

// Config describes the preference store connection.
type Config struct {
	Addr     string
	Password string
	DB       int

	// Timeout bounds dialing and each read and write. Zero means
	// domain.RedisTimeout.
	Timeout time.Duration
}

// Client owns a go-redis connection pool. Stores use RDB as their Cmdable.
type Client struct {
	RDB *redis.Client
}

// NewClient creates a client for cfg. No connection is made until the
// first command; use Ping to check reachability.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.RedisTimeout
	}

	return &Client{RDB: redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})}
}

// Addr returns the configured server address.
func (c *Client) Addr() string {
	return c.RDB.Options().Addr
}

// Ping verifies the server is reachable. Failures wrap domain.ErrUnavailable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.RDB.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis %s: %w: %w", c.Addr(), domain.ErrUnavailable, err)
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.RDB.Close()
}
