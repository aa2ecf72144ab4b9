package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const coverKeyPrefix = "cover:"

// CoverCache keeps resolved cover URLs in Redis under cover:<isbn>.
type CoverCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

func NewCoverCache(client *redis.Client, ttl time.Duration) *CoverCache {
	return &CoverCache{client: client, ttl: ttl}
}

// Ping verifies the connection.
func (c *CoverCache) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *CoverCache) Get(ctx context.Context, isbn string) (string, bool, error) {
	u, err := c.client.Get(ctx, CoverKey(isbn)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return u, true, nil
}

func (c *CoverCache) Set(ctx context.Context, isbn, url string) error {
	return c.client.Set(ctx, CoverKey(isbn), url, c.ttl).Err()
}

func (c *CoverCache) Close() error {
	return c.client.Close()
}

func CoverKey(isbn string) string {
	return coverKeyPrefix + isbn
}
