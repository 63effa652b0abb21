package cacheinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-todo-service/todocache"
)

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// DefaultRedisConfig returns the default connection settings.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:         "localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
	}
}

// Redis is the networked cache backend. Transport failures are wrapped with
// todocache.ErrUnavailable so the service can tell an unreachable cache from
// a plain miss.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(cfg todocache.Config, rc RedisConfig) (*Redis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := redis.NewClient(&redis.Options{
		Addr:         rc.Addr,
		Password:     rc.Password,
		DB:           rc.DB,
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: ping %s: %v", todocache.ErrUnavailable, rc.Addr, err)
	}

	return &Redis{
		client: client,
		ttl:    cfg.TTL,
		prefix: cfg.KeyPrefix,
	}, nil
}

// Get implements todocache.Cache. redis.Nil maps to an explicit miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, r.fullKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %s: %v", todocache.ErrUnavailable, key, err)
	}
	return data, true, nil
}

// Set implements todocache.Cache with the configured fixed TTL.
func (r *Redis) Set(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, r.fullKey(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", todocache.ErrUnavailable, key, err)
	}
	return nil
}

// Delete implements todocache.Cache. Deleting an absent key succeeds.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.fullKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: delete %s: %v", todocache.ErrUnavailable, key, err)
	}
	return nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) fullKey(key string) string {
	return r.prefix + key
}

var _ todocache.Cache = (*Redis)(nil)
