package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/httpx"
	"bookstore/internal/logger"
	"bookstore/internal/memstore"
	"bookstore/internal/metrics"
	"bookstore/internal/platform/crypto"
	"bookstore/internal/seller"
	"bookstore/internal/server"
	"bookstore/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// backend bundles the repositories chosen by STORE_DRIVER.
type backend struct {
	sellers seller.Repository
	books   book.Repository
	tx      store.Transactor
	pinger  server.Pinger
	close   func()
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn("using in-memory store; data is lost on exit")
		db := memstore.New()
		return &backend{
			sellers: db.Sellers(),
			books:   db.Books(),
			tx:      db,
			pinger:  db,
			close:   func() {},
		}, nil
	case config.DriverPostgres:
		pool, err := store.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		log.Info("database connection OK", "database", store.RedactDSN(cfg.DatabaseDSN))
		if cfg.AutoMigrate {
			applied, err := store.Migrate(ctx, pool)
			if err != nil {
				pool.Close()
				return nil, err
			}
			log.Info("migrations applied", "versions", applied)
		}
		return &backend{
			sellers: seller.NewPostgresRepo(pool, cfg.DBTimeout),
			books:   book.NewPostgresRepo(pool, cfg.DBTimeout),
			tx:      store.NewPgxTransactor(pool),
			pinger:  pool,
			close:   pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer be.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var limiter *httpx.RateLimitMiddleware
	if cfg.RateLimitRPS > 0 {
		limiter = httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxy)
	}

	router := server.NewRouter(server.Deps{
		Sellers:            seller.NewService(be.sellers, be.tx, crypto.HashPassword),
		Books:              book.NewService(be.books, be.tx),
		Log:                log,
		Store:              be.pinger,
		Metrics:            metrics.NewCollector(reg),
		Gatherer:           reg,
		RateLimiter:        limiter,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MaxBodyBytes:       cfg.MaxBodyBytes,
		EnableHSTS:         cfg.EnableHSTS,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr, "store", cfg.StoreDriver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
