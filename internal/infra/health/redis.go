// Package health holds readiness probes for the service's dependencies.
package health

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisProbe pings the Redis instance that backs the event queue.
type RedisProbe struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisProbe creates a probe for the given Redis instance.
func NewRedisProbe(addr, password string, db int) *RedisProbe {
	return &RedisProbe{
		client: redis.NewClient(&redis.Options{
			Addr:        addr,
			Password:    password,
			DB:          db,
			DialTimeout: 2 * time.Second,
			MaxRetries:  -1,
		}),
		timeout: 2 * time.Second,
	}
}

// Name identifies the probe in health responses.
func (p *RedisProbe) Name() string {
	return "redis"
}

// Check returns an error when Redis does not answer PING.
func (p *RedisProbe) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (p *RedisProbe) Close() error {
	return p.client.Close()
}
