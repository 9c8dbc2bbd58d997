package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-turnip/internal/progress"
)

// DefaultRedisKeyPrefix namespaces progress keys.
const DefaultRedisKeyPrefix = "turnip:progress:"

// RedisClient is the subset of go-redis the progress backend relies on.
type RedisClient interface {
	redis.UniversalClient
}

// RedisOptions configures the Redis client.
type RedisOptions struct {
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
}

// NewRedisClient creates a client for a single Redis instance. The
// connection is established lazily.
func NewRedisClient(addr string, opts *RedisOptions) (RedisClient, error) {
	if addr == "" {
		return nil, errors.New("storage: redis address is required")
	}
	if opts == nil {
		opts = &RedisOptions{}
	}

	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		MaxRetries:   opts.MaxRetries,
		DialTimeout:  opts.DialTimeout,
	}), nil
}

// RedisConfig configures the Redis progress backend.
type RedisConfig struct {
	Client    RedisClient
	KeyPrefix string
}

// Validate checks the config.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.New("storage: redis config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.New("storage: redis client cannot be nil")
	}
	return nil
}

// Redis stores progress blobs as plain string values.
type Redis struct {
	client RedisClient
	prefix string
}

// NewRedis creates a Redis-backed progress backend.
func NewRedis(cfg *RedisConfig) (*Redis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &Redis{client: cfg.Client, prefix: prefix}, nil
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("storage: redis ping: %w", err)
	}
	return nil
}

// Key returns the key holding profile's progress.
func (r *Redis) Key(profile string) string {
	return r.prefix + profile
}

// Load implements progress.Backend.
func (r *Redis) Load(ctx context.Context, profile string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.Key(profile)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, progress.ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load progress for %s: %w", profile, err)
	}
	return data, nil
}

// Save implements progress.Backend.
func (r *Redis) Save(ctx context.Context, profile string, blob []byte) error {
	if err := r.client.Set(ctx, r.Key(profile), blob, 0).Err(); err != nil {
		return fmt.Errorf("storage: cannot save progress for %s: %w", profile, err)
	}
	return nil
}

// Delete implements progress.Backend.
func (r *Redis) Delete(ctx context.Context, profile string) error {
	if err := r.client.Del(ctx, r.Key(profile)).Err(); err != nil {
		return fmt.Errorf("storage: cannot delete progress for %s: %w", profile, err)
	}
	return nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

var _ progress.Backend = (*Redis)(nil)
