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

	"github.com/alecthomas/kong"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	"github.com/katoyeung/data-node/internal/config"
	"github.com/katoyeung/data-node/internal/db"
	"github.com/katoyeung/data-node/internal/db/goredis"
	dbRedis "github.com/katoyeung/data-node/internal/db/redis"
	domdoc "github.com/katoyeung/data-node/internal/domain/document"
	"github.com/katoyeung/data-node/internal/domain/search/query"
	logpkg "github.com/katoyeung/data-node/internal/logger"
	"github.com/katoyeung/data-node/internal/metrics"
	chiTransport "github.com/katoyeung/data-node/internal/transport/chi"
	documentuc "github.com/katoyeung/data-node/internal/usecase/document"
	healthuc "github.com/katoyeung/data-node/internal/usecase/health"
	indexuc "github.com/katoyeung/data-node/internal/usecase/index"
	searchuc "github.com/katoyeung/data-node/internal/usecase/search"
	statusuc "github.com/katoyeung/data-node/internal/usecase/status"
	"github.com/katoyeung/data-node/internal/version"
)

var cli struct {
	Serve   serveCmd   `cmd:"" help:"Start the HTTP gateway" default:"1"`
	Version versionCmd `cmd:"" help:"Show version information"`
}

type serveCmd struct {
	Env string `help:"Config environment (config/<env>.yaml)" env:"ENV" default:"local"`
}

type versionCmd struct{}

func (v *versionCmd) Run() error {
	fmt.Printf("datanode %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
	return nil
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("datanode"),
		kong.Description("HTTP gateway over a RediSearch/RedisJSON store."),
	)
	kctx.FatalIfErrorf(kctx.Run())
}

func (s *serveCmd) Run() error {
	cfg, err := config.Load(s.Env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(s.Env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting datanode",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", s.Env),
		zap.String("http_addr", cfg.HTTP.Addr()),
		zap.String("db_driver", cfg.Database.Driver),
	)

	drv, err := newDriver(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}

	metrics.RegisterStoreMetrics()
	metrics.RegisterHTTPMetrics()
	store := db.NewClient(drv, logger, db.WithObserver(metrics.ObserveCommand))
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	docSvc := documentuc.New(store, domdoc.NewEncoder()).
		WithBatching(cfg.Ingest.MaxBatchSize, cfg.Ingest.Concurrency).
		WithIngestObserver(metrics.ObserveIngested)
	searchSvc := searchuc.New(store).WithUTCOffset(*cfg.Search.UTCOffsetHours)
	indexSvc := indexuc.New(store)
	statusSvc := statusuc.New(store)
	healthSvc := healthuc.New(store)

	server := chiTransport.NewServer(docSvc, searchSvc, indexSvc, statusSvc, healthSvc, logger,
		chiTransport.WithQueryDefaults(query.Defaults{
			Limit:       cfg.Search.DefaultLimit,
			Language:    cfg.Search.DefaultLanguage,
			SortField:   cfg.Search.DefaultSortField,
			FilterField: cfg.Search.DefaultFilterField,
		}),
		chiTransport.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	if *cfg.HTTP.Compress {
		r.Use(func(next http.Handler) http.Handler { return gzhttp.GzipHandler(next) })
	}
	r.Use(metrics.Middleware())
	server.Routes(r)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

func newDriver(cfg *config.DatabaseConfig) (db.Driver, error) {
	switch cfg.Driver {
	case config.DriverGoRedis:
		var addr string
		if len(cfg.Addrs) > 0 {
			addr = cfg.Addrs[0]
		}
		return goredis.NewStore(goredis.Config{
			URL:         cfg.URL,
			Addr:        addr,
			Username:    cfg.Username,
			Password:    cfg.Password,
			DB:          cfg.DB,
			PoolSize:    cfg.PoolSize,
			IdleTimeout: time.Duration(cfg.IdleTimeoutSec) * time.Second,
		})
	case config.DriverRueidis:
		return dbRedis.NewStore(dbRedis.Config{
			URL:      cfg.URL,
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
