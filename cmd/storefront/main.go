package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/kv"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/state"
	"github.com/Skotchmaster/storefront/internal/storage"
)

func openBackend(ctx context.Context, cfg config.Config) (kv.Backend, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite, config.DriverPostgres:
		gdb, err := db.Open(ctx, cfg.StoreDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		b, err := kv.NewGormBackend(ctx, gdb, cfg.StoreNamespace)
		if err != nil {
			_ = db.Close(gdb)
			return nil, nil, err
		}
		return b, func() error { return db.Close(gdb) }, nil
	case config.DriverRedis:
		b, err := kv.NewRedisBackend(ctx, cfg.RedisURL, cfg.StoreNamespace)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	case config.DriverMemory:
		return kv.NewMemoryBackend(cfg.StoreQuotaBytes), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatalf("store open: %v", err)
	}

	seed, err := state.LoadSeed(cfg.SeedFile)
	if err != nil {
		cancel()
		log.Fatalf("seed: %v", err)
	}

	store := storage.New(backend, logger)
	app, err := state.Bootstrap(ctx, store, seed, state.WithLogger(logger))
	if err != nil {
		cancel()
		log.Fatalf("bootstrap: %v", err)
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)

	var index service.ProductIndex
	if cfg.ESURL != "" {
		es, err := search.NewClient(ctx, search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		}, logger)
		if err != nil {
			logger.Warn("search_unavailable", "error", err)
		} else {
			index = es
			for _, p := range app.Products {
				if err := es.IndexProduct(ctx, p); err != nil {
					logger.Warn("search_index_failed", "product_id", p.ID, "error", err)
				}
			}
		}
	}
	cancel()

	var pub service.EventPublisher
	if publisher != nil {
		pub = publisher
	}
	svc := service.New(app, pub, index)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Secure())
	e.Use(loggingmw.RequestLogger(logger))
	if cfg.CSRFEnabled {
		e.Use(csrf.Middleware(csrf.Config{
			EnforceSameOrigin: true,
			SkipPaths: []string{
				"/health/live", "/health/ready",
				"/api/v1/auth/login", "/api/v1/auth/register",
			},
		}))
	}

	httpserver.Register(e, httpserver.NewDeps(app, svc))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	if err := publisher.Close(); err != nil {
		logger.Warn("events_close_failed", "error", err)
	}
	if err := closeBackend(); err != nil {
		logger.Warn("store_close_failed", "error", err)
	}

	logger.Info("server_stopped")
}
