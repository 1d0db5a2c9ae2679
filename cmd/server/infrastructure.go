package main

import (
	"context"
	"fmt"

	"github.com/storefront/platform/internal/domain/content"
	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/cache"
	"github.com/storefront/platform/internal/infrastructure/config"
	"github.com/storefront/platform/internal/infrastructure/event"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"github.com/storefront/platform/internal/infrastructure/migration"
	infrapay "github.com/storefront/platform/internal/infrastructure/payment"
	"github.com/storefront/platform/internal/infrastructure/persistence"
	"github.com/storefront/platform/internal/infrastructure/rendering"
	"github.com/storefront/platform/internal/infrastructure/storage"
	"github.com/storefront/platform/internal/infrastructure/telemetry"
	"github.com/storefront/platform/migrations"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const metricsNamespace = "storefront"

var telemetryModule = fx.Module("telemetry",
	fx.Provide(
		newLogger,
		newTracerProvider,
		newMeterProvider,
		func() *telemetry.HTTPMetrics { return telemetry.NewHTTPMetrics(metricsNamespace) },
	),
	fx.Invoke(startProfiler),
)

var infrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newStores,
		newGateway,
		newObjectStore,
		newRenderer,
		newEventBus,
		func(bus *event.InMemoryEventBus) shared.EventPublisher { return bus },
	),
)

// newLogger builds the process logger and tees it into the OTLP log
// exporter when log export is enabled
func newLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	base := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	})

	lp, err := telemetry.NewLoggerProvider(context.Background(), cfg.Telemetry, cfg.App.Version, base)
	if err != nil {
		return nil, err
	}
	log := lp.Bridge(base, cfg.App.Name, logger.ParseLevel(cfg.Log.Level))

	log.Info("Starting Storefront Platform",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", cfg.App.Version),
	)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			err := lp.Shutdown(ctx)
			_ = log.Sync()
			return err
		},
	})
	return log, nil
}

func newTracerProvider(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*telemetry.TracerProvider, error) {
	tp, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, cfg.App.Version, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: tp.Shutdown})
	return tp, nil
}

func newMeterProvider(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*telemetry.MeterProvider, error) {
	mp, err := telemetry.NewMeterProvider(context.Background(), cfg.Telemetry, cfg.App.Version, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: mp.Shutdown})
	return mp, nil
}

// startProfiler pushes continuous profiles to Pyroscope and links them to
// trace spans when tracing is on as well
func startProfiler(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, tp *telemetry.TracerProvider) error {
	p, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		return err
	}
	if p.IsEnabled() && tp.IsEnabled() {
		tp.EnableSpanProfiles()
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return p.Stop() },
	})
	return nil
}

func newDatabase(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	metrics *telemetry.HTTPMetrics,
) (*persistence.Database, error) {
	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Database.SlowQuery)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return db.Close() },
	})
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	traced := cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	if err := telemetry.InstrumentGORM(db.DB, cfg.Database.Driver, traced, log); err != nil {
		log.Warn("Failed to enable database tracing", zap.Error(err))
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, err
	}
	if err := metrics.RegisterDB(sqlDB, cfg.Database.Driver); err != nil {
		log.Warn("Failed to register connection pool metrics", zap.Error(err))
	}

	if !cfg.Database.AutoMigrate {
		return db, nil
	}
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(persistence.Models()...); err != nil {
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
		log.Info("Schema migrated from models")
		return db, nil
	}
	m, err := migration.New(sqlDB, cfg.Database.MigrationsPath, migrations.FS, log)
	if err != nil {
		return nil, err
	}
	if err := m.Up(); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return db, nil
}

func newStores(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*cache.Stores, error) {
	stores, err := cache.NewStores(context.Background(), cfg.Redis, cfg.Cart.TTL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to set up key-value stores: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return stores.Close() },
	})
	return stores, nil
}

func newGateway(cfg *config.Config, log *zap.Logger) (payment.Gateway, error) {
	gw, err := infrapay.NewGateway(cfg.Payment)
	if err != nil {
		return nil, err
	}
	log.Info("Payment gateway selected", zap.String("gateway", gw.Name()))
	return gw, nil
}

// newObjectStore returns a nil store when storage is disabled. Asset uploads
// then answer 503.
func newObjectStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (content.ObjectStore, error) {
	if !cfg.Storage.Enabled {
		log.Info("Object storage disabled")
		return nil, nil
	}
	store, err := storage.NewS3ObjectStore(context.Background(), &cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: store.EnsureBucket,
	})
	return store, nil
}

// newRenderer returns a nil renderer when PDF export is disabled
func newRenderer(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) content.Renderer {
	if !cfg.Renderer.Enabled {
		log.Info("PDF rendering disabled")
		return nil
	}
	r := rendering.NewChromedpRenderer(rendering.ChromedpConfig{
		ExecPath:  cfg.Renderer.ChromePath,
		Timeout:   cfg.Renderer.Timeout,
		NoSandbox: true,
		Logger:    log,
	})
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return r.Close() },
	})
	return r
}

// newEventBus wires the synchronous bus. Business counters are deduplicated
// by event id so a replayed publish is not counted twice.
func newEventBus(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	mp *telemetry.MeterProvider,
	stores *cache.Stores,
) (*event.InMemoryEventBus, error) {
	bus := event.NewInMemoryEventBus(log)

	bm, err := telemetry.NewBusinessMetrics(mp.Meter(metricsNamespace))
	if err != nil {
		return nil, err
	}
	bus.Subscribe(event.NewIdempotentHandler(bm, stores.Idempotency, cfg.Payment.IdempotencyTTL, log))
	log.Info("Event handlers registered", zap.Strings("business_metrics_events", bm.EventTypes()))

	lc.Append(fx.Hook{
		OnStart: bus.Start,
		OnStop:  bus.Stop,
	})
	return bus, nil
}
