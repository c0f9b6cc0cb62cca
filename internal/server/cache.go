package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/learnloop/internal/agent"
	"github.com/redis/go-redis/v9"
)

// ResponseCache stores generated payloads. Only explain responses are
// cached; quizzes and feedback must be fresh on every request.
type ResponseCache interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, payload json.RawMessage) error
	Ping(ctx context.Context) error
}

// cacheable reports whether responses for rt may be served from cache.
func cacheable(rt agent.RequestType) bool {
	return rt == agent.RequestExplain
}

// cacheKey derives a stable key from the request. The agent id is part
// of the key so two agents behind one Redis never share entries.
func cacheKey(req agent.Request) string {
	sum := sha256.Sum256([]byte(req.AgentID + "\x00" + string(req.RequestType) + "\x00" + req.Message))
	return "learnloop:" + string(req.RequestType) + ":" + hex.EncodeToString(sum[:])
}

// RedisCache is a ResponseCache backed by Redis or Dragonfly.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// ParseCacheURL validates a Redis connection URL.
func ParseCacheURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	return opts, nil
}

// NewRedisCache connects to url and verifies the connection.
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := ParseCacheURL(url)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return json.RawMessage(b), true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, payload json.RawMessage) error {
	if err := c.client.Set(ctx, key, []byte(payload), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close shuts down the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
