package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/lesoria-cart/internal/cart"
	"github.com/rogerio-castellano/lesoria-cart/internal/config"
	"github.com/rogerio-castellano/lesoria-cart/internal/db"
	"github.com/rogerio-castellano/lesoria-cart/internal/http/handlers"
	rl "github.com/rogerio-castellano/lesoria-cart/internal/http/rate_limiter"
	"github.com/rogerio-castellano/lesoria-cart/internal/http/router"
	"github.com/rogerio-castellano/lesoria-cart/internal/logging"
	"github.com/rogerio-castellano/lesoria-cart/internal/redissvc"
	"github.com/rogerio-castellano/lesoria-cart/internal/repo"
	"github.com/rogerio-castellano/lesoria-cart/internal/session"
)

// @title Lesoria Cart API
// @version 1.0
// @description Server-side cart drawer for the Lesoria storefront.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	issuer, err := session.NewIssuer(cfg.SessionSecret)
	if err != nil {
		return err
	}
	if cfg.SessionSecret == "" {
		logger.Warn("using an ephemeral session key; set LESORIA_SESSION_SECRET to keep carts across restarts")
	}

	registry := cart.NewRegistry(storage, cfg.StorageKey, logger)
	handlers.SetCartRegistry(registry)
	handlers.SetRenderer(cart.NewRenderer(cart.NewFormatter(cfg.Locale, cfg.CurrencySymbol)))

	limiter := rl.New(cfg.RateLimit, cfg.RateBurst)
	go limiter.StartVisitorCleanupLoop(ctx)
	go registry.StartPruneLoop(ctx, time.Minute, cfg.StoreIdleTTL)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: router.NewRouter(router.Options{
			Logger:       logger,
			Issuer:       issuer,
			Limiter:      limiter,
			SecureCookie: cfg.IsProd(),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", cfg.HTTPAddr), zap.String("storage", cfg.StorageBackend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// openStorage builds the configured cart storage and a func that releases it.
func openStorage(ctx context.Context, cfg config.Config) (repo.KeyValueStore, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		rs, err := redissvc.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewRedisKeyValueStore(rs.Rdb(), cfg.RedisTTL), func() { rs.Close() }, nil

	case config.BackendPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := repo.NewPostgresKeyValueStore(database)
		if err := store.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("prepare cart storage: %w", err)
		}
		return store, func() { database.Close() }, nil

	default:
		return repo.NewInMemoryKeyValueStore(), func() {}, nil
	}
}
