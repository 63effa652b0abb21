package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-todo-service/internal/cacheinfra"
	"github.com/goliatone/go-todo-service/pkg/di"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todod",
		Short: "Todo record service with a cache-aside read path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("addr", ":8080", "HTTP listen address")
	flags.String("store-driver", "sqlite3", "database driver (sqlite3 or postgres)")
	flags.String("store-dsn", "file:todod.db?_fk=1", "database connection string")
	flags.String("cache-backend", "memory", "cache backend (memory or redis)")
	flags.Duration("cache-ttl", 60*time.Second, "snapshot time to live")
	flags.String("redis-addr", "localhost:6379", "redis address")
	flags.String("redis-password", "", "redis password")
	flags.Int("redis-db", 0, "redis database index")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	viper.SetEnvPrefix("todod")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}

	return cmd
}

func run(ctx context.Context) error {
	logger := newLogger(viper.GetString("log-level"))
	slog.SetDefault(logger)

	cfg := di.DefaultConfig()
	cfg.HTTPAddr = viper.GetString("addr")
	cfg.Store.Driver = viper.GetString("store-driver")
	cfg.Store.DSN = viper.GetString("store-dsn")
	cfg.Cache.Backend = viper.GetString("cache-backend")
	cfg.Cache.Cache.TTL = viper.GetDuration("cache-ttl")
	cfg.Cache.Redis = cacheinfra.RedisConfig{
		Addr:     viper.GetString("redis-addr"),
		Password: viper.GetString("redis-password"),
		DB:       viper.GetInt("redis-db"),
	}

	container, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started",
			"addr", cfg.HTTPAddr,
			"store", cfg.Store.Driver,
			"cache", cfg.Cache.Backend,
			"ttl", cfg.Cache.Cache.TTL,
		)
		errCh <- container.Server().Start(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return container.Server().Shutdown(shutdownCtx)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
