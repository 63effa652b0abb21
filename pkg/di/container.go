// Package di wires the application graph: database, store, cache backend,
// service, and HTTP server. The container owns the lifecycle of everything it
// builds; Close releases resources in reverse construction order.
package di

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-todo-service/internal/cacheinfra"
	"github.com/goliatone/go-todo-service/internal/storeinfra"
	"github.com/goliatone/go-todo-service/server"
	"github.com/goliatone/go-todo-service/todocache"
	"github.com/goliatone/go-todo-service/todoservice"
)

// StoreConfig selects the relational backend.
type StoreConfig struct {
	// Driver is "sqlite3" or "postgres".
	Driver string
	DSN    string
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend string
	Cache   todocache.Config
	Redis   cacheinfra.RedisConfig
}

// Config is the full application configuration.
type Config struct {
	HTTPAddr string
	Store    StoreConfig
	Cache    CacheConfig
}

// DefaultConfig returns a configuration that runs entirely in-process:
// an in-memory sqlite database and the in-memory cache backend.
func DefaultConfig() Config {
	return Config{
		HTTPAddr: ":8080",
		Store: StoreConfig{
			Driver: "sqlite3",
			DSN:    "file::memory:?cache=shared",
		},
		Cache: CacheConfig{
			Backend: "memory",
			Cache:   todocache.DefaultConfig(),
			Redis:   cacheinfra.DefaultRedisConfig(),
		},
	}
}

// Container holds the wired application components.
type Container struct {
	config  Config
	db      *bun.DB
	store   *storeinfra.BunStore
	cache   todocache.Cache
	service *todoservice.Service
	server  *server.Server
	logger  *slog.Logger
}

// NewContainer builds the full graph: it opens the database, runs the
// migration, constructs the configured cache backend, and wires the service
// and HTTP server on top.
func NewContainer(ctx context.Context, config Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := storeinfra.Open(config.Store.Driver, config.Store.DSN)
	if err != nil {
		return nil, err
	}

	store := storeinfra.NewBunStore(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	cache, err := newCacheBackend(config.Cache)
	if err != nil {
		db.Close()
		return nil, err
	}

	service := todoservice.New(store, cache, todoservice.WithLogger(logger))

	return &Container{
		config:  config,
		db:      db,
		store:   store,
		cache:   cache,
		service: service,
		server:  server.New(service, db.DB, logger),
		logger:  logger,
	}, nil
}

func newCacheBackend(config CacheConfig) (todocache.Cache, error) {
	switch config.Backend {
	case "memory", "":
		return cacheinfra.NewMemory(config.Cache)
	case "redis":
		return cacheinfra.NewRedis(config.Cache, config.Redis)
	default:
		return nil, errors.Errorf("unsupported cache backend: %q", config.Backend)
	}
}

// Close releases the cache backend and the database connection.
func (c *Container) Close() error {
	var firstErr error
	if err := c.cache.Close(); err != nil {
		firstErr = err
	}
	if err := c.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Service returns the wired record service.
func (c *Container) Service() *todoservice.Service {
	return c.service
}

// Server returns the wired HTTP server.
func (c *Container) Server() *server.Server {
	return c.server
}

// Store returns the relational store instance.
func (c *Container) Store() *storeinfra.BunStore {
	return c.store
}

// Cache returns the cache backend instance.
func (c *Container) Cache() todocache.Cache {
	return c.cache
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() Config {
	return c.config
}
