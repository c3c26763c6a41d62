// Package cache holds the Redis-backed cache of resolved cover URLs.
package cache

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/redis.v5"
)

const keyPrefix = "library:cover:"

// RedisCoverCache maps normalized ISBNs to cover URLs.
type RedisCoverCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCoverCache connects lazily to the Redis server at addr.
// A zero ttl keeps entries forever.
func NewRedisCoverCache(addr, password string, db int, ttl time.Duration) *RedisCoverCache {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 2 * time.Second,
		ReadTimeout: time.Second,
	})
	return &RedisCoverCache{client: client, ttl: ttl}
}

func key(isbn string) string {
	return keyPrefix + isbn
}

// Get returns the cached URL. A miss is reported as ok=false with a nil error.
func (c *RedisCoverCache) Get(isbn string) (string, bool, error) {
	url, err := c.client.Get(key(isbn)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return url, true, nil
}

func (c *RedisCoverCache) Set(isbn, url string) error {
	if err := c.client.Set(key(isbn), url, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping checks connectivity for the health endpoint. redis.v5 commands take
// no context, so the client's own dial and read timeouts bound the call.
func (c *RedisCoverCache) Ping(_ context.Context) error {
	return c.client.Ping().Err()
}

func (c *RedisCoverCache) Close() error {
	return c.client.Close()
}
