package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss indicates a cache miss at either tier.
var ErrMiss = errors.New("cache miss")

// L2 is the distributed KV adapter contract the pipeline consumes (spec
// §6): get/setex/del/ping, all of which may fail without affecting
// correctness.
type L2 interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// RedisL2 implements L2 against a Redis server.
type RedisL2 struct {
	client *redis.Client
	prefix string
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	Prefix   string
}

// NewRedisL2 dials Redis and verifies connectivity with a bounded ping.
func NewRedisL2(cfg RedisConfig) (*RedisL2, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "partsearch:"
	}
	return &RedisL2{client: client, prefix: prefix}, nil
}

func (r *RedisL2) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

func (r *RedisL2) SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis setex: %w", err)
	}
	return nil
}

func (r *RedisL2) Del(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *RedisL2) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (r *RedisL2) Close() error {
	return r.client.Close()
}

// loggingL2 wraps an L2 so every failure is logged and swallowed by the
// caller rather than surfaced as a hard error (spec §4.9: "failures
// against L2 are logged and swallowed").
type loggingL2 struct {
	inner L2
	log   *slog.Logger
}

func (l *loggingL2) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := l.inner.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrMiss) {
		l.log.Warn("l2 cache get failed", slog.String("key", key), slog.Any("error", err))
	}
	return v, err
}

func (l *loggingL2) SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := l.inner.SetEx(ctx, key, value, ttl); err != nil {
		l.log.Warn("l2 cache set failed", slog.String("key", key), slog.Any("error", err))
		return err
	}
	return nil
}

func (l *loggingL2) Del(ctx context.Context, key string) error {
	if err := l.inner.Del(ctx, key); err != nil {
		l.log.Warn("l2 cache del failed", slog.String("key", key), slog.Any("error", err))
		return err
	}
	return nil
}

func (l *loggingL2) Ping(ctx context.Context) error {
	return l.inner.Ping(ctx)
}
