package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sift-ir/sift/internal/cli"
	"github.com/sift-ir/sift/internal/config"
	dbRedis "github.com/sift-ir/sift/internal/db/redis"
	"github.com/sift-ir/sift/internal/engine"
	"github.com/sift-ir/sift/internal/engine/memory"
	logpkg "github.com/sift-ir/sift/internal/logger"
	"github.com/sift-ir/sift/internal/metrics"
	"github.com/sift-ir/sift/internal/query"
	metarepo "github.com/sift-ir/sift/internal/repository/meta"
	"github.com/sift-ir/sift/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	rc := cli.Parse(os.Args[1:], logger)

	// --nonverbose restricts logging to error level.
	if rc.Quiet {
		quiet, err := logpkg.New(env, "error")
		if err == nil {
			logger = quiet
		}
	}

	// Property overrides must land in the config before the engine that
	// reads them is constructed. Bad values are logged, never fatal.
	for key, value := range rc.Props {
		if err := cfg.Override(key, value); err != nil {
			logger.Error("ignoring property override", zap.String("key", key), zap.Error(err))
		}
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration after overrides", zap.Error(err))
	}

	logger.Info("Starting sift",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("engine_driver", cfg.Engine.Driver),
		zap.String("weighting_model", cfg.Retrieval.WeightingModel),
	)

	// Register query metrics explicitly (no init()).
	metrics.Register()
	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr, logger)
	}

	// Engine registry — composition root registers the available drivers.
	memory.Register()

	eng, err := engine.Open(cfg, logger)
	if err != nil {
		logger.Fatal("failed to load engine, perhaps index files are missing", zap.Error(err))
	}
	defer func() {
		if err := eng.Close(); err != nil {
			logger.Warn("problem closing engine", zap.Error(err))
		}
	}()

	ctx := context.Background()

	meta, closeMeta, err := buildMetaIndex(ctx, cfg, eng, logger)
	if err != nil {
		logger.Fatal("failed to connect metadata index", zap.Error(err))
	}
	defer closeMeta()

	formatter := query.NewFormatter(meta, cfg.Output.MetaKeys, cfg.Output.MaxDisplayed)
	driver := query.NewDriver(
		eng, formatter, os.Stdout,
		cfg.Retrieval.MatchingModel, cfg.Retrieval.WeightingModel,
		logger,
	)

	if rc.Interactive() {
		cli.RunInteractive(ctx, driver, os.Stdin, os.Stdout, cli.InteractiveOptions{
			Verbose:   rc.Verbose,
			Lowercase: cfg.Interactive.Lowercase,
			C:         rc.C,
		}, logger)
	} else {
		cli.RunBatch(ctx, driver, rc, logger)
	}

	logger.Info("session finished", zap.Int("queries", driver.Processed()))
}

// buildMetaIndex selects the external metadata lookup: the engine's own
// stored fields by default, or a redis-backed repository.
func buildMetaIndex(ctx context.Context, cfg config.Config, eng engine.Engine, logger *zap.Logger) (query.MetaIndex, func(), error) {
	if cfg.Metadata.Driver != "redis" {
		return eng, func() {}, nil
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Metadata.Addrs,
		Password: cfg.Metadata.Password,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := store.WaitForReady(ctx, 10*time.Second); err != nil {
		store.Close()
		return nil, nil, err
	}
	logger.Info("Connected to metadata store", zap.Strings("addrs", cfg.Metadata.Addrs))

	return metarepo.New(store, cfg.Metadata.KeyPrefix), store.Close, nil
}

// serveMetrics exposes the prometheus handler on its own listener.
func serveMetrics(addr string, logger *zap.Logger) {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())

	logger.Info("Starting metrics listener", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics listener failed", zap.Error(err))
	}
}
