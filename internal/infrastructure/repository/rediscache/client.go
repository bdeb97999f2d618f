package rediscache

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 3 * time.Second

type ClientConfig struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// NewClient dials a standalone redis and verifies it answers PING.
func NewClient(ctx context.Context, cfg ClientConfig) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, crerr.New("redis address is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrapf(err, "ping redis %s", cfg.Addr)
	}

	return client, nil
}
