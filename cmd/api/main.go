package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/cache"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/database/migrations"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/integrator/meta"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/migration"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/traffic-optimizer-api/internal/api"
	"github.com/vfg2006/traffic-optimizer-api/internal/api/handler"
	"github.com/vfg2006/traffic-optimizer-api/internal/config"
	"github.com/vfg2006/traffic-optimizer-api/internal/metrics"
	"github.com/vfg2006/traffic-optimizer-api/internal/scheduler"
	"github.com/vfg2006/traffic-optimizer-api/internal/usecases/optimizing"
)

func main() {
	configureLogger()

	// valores monetários saem como número no JSON
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.WithField("log_level", cfg.App.LogLevel).Warn("main: invalid log level, using info")
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	applied, err := migration.Apply(ctx, pgConn, migrations.FS)
	if err != nil {
		logrus.WithError(err).Fatal("main: failed to apply migrations")
	}
	logrus.WithField("applied", applied).Info("main: migrations up to date")

	campaignConfigRepo := repository.NewCampaignConfigRepository(pgConn)

	metaClient := metaclient.NewClient(cfg)
	var source optimizing.AdSetSource = meta.New(cfg, metaClient)

	checks := map[string]handler.Pinger{"postgres": pgConn}

	// o cache é opcional: sem Redis as análises vão sempre ao Meta
	var invalidator scheduler.SnapshotInvalidator
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logrus.WithError(err).Warn("main: redis unavailable, snapshot cache disabled")
		} else {
			defer redisClient.Close()

			snapshotCache := cache.NewAdSetSnapshotCache(source, redisClient, cfg.Redis.SnapshotTTL)
			source = snapshotCache
			invalidator = snapshotCache
			checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			})
		}
	}

	registry := metrics.NewRegistry()
	thresholds := optimizing.ThresholdsFromConfig(cfg.Optimization)

	orchestrator := optimizing.NewOrchestrator(
		thresholds,
		optimizing.WithParallelDetectors(cfg.Optimization.ParallelDetectors),
	)

	optimizer := optimizing.NewService(source, campaignConfigRepo, orchestrator, thresholds, registry)

	digestService := scheduler.NewOptimizationDigestService(campaignConfigRepo, optimizer, invalidator, cfg)
	if err := digestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("main: failed to start optimization digest")
	}

	server, err := api.New(cfg, optimizer, digestService, registry, checks)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger posiciona o processo no diretório do binário para achar o .env
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("main: failed to connect to postgres")
	}

	logrus.Info("main: postgres connection established")
	return conn
}
