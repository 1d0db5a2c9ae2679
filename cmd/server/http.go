package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/storefront/platform/internal/application/identity"
	"github.com/storefront/platform/internal/infrastructure/auth"
	"github.com/storefront/platform/internal/infrastructure/cache"
	"github.com/storefront/platform/internal/infrastructure/config"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"github.com/storefront/platform/internal/infrastructure/persistence"
	"github.com/storefront/platform/internal/infrastructure/scheduler"
	"github.com/storefront/platform/internal/infrastructure/telemetry"
	"github.com/storefront/platform/internal/interfaces/http/handler"
	"github.com/storefront/platform/internal/interfaces/http/middleware"
	"github.com/storefront/platform/internal/interfaces/http/router"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	jobRateLimitSweep = "rate-limit-sweep"
	shutdownTimeout   = 30 * time.Second
)

var httpModule = fx.Module("http",
	fx.Provide(
		newRateLimiter,
		newEngine,
		auth.NewRoleAuthorizer,
	),
	fx.Invoke(registerRoutes),
	fx.Invoke(startScheduler),
	fx.Invoke(runHTTP),
)

// newRateLimiter returns nil when rate limiting is disabled
func newRateLimiter(cfg *config.Config, log *zap.Logger) *middleware.RateLimiter {
	if !cfg.HTTP.RateLimitEnabled {
		return nil
	}
	log.Info("Rate limiting enabled",
		zap.Int("requests", cfg.HTTP.RateLimitRequests),
		zap.Duration("window", cfg.HTTP.RateLimitWindow),
	)
	return middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
}

func newEngine(
	cfg *config.Config,
	log *zap.Logger,
	mp *telemetry.MeterProvider,
	metrics *telemetry.HTTPMetrics,
	limiter *middleware.RateLimiter,
) (*gin.Engine, error) {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	metricsCfg := middleware.HTTPMetricsConfig{Prometheus: metrics}
	if mp.IsEnabled() {
		metricsCfg.Meter = mp.Meter(metricsNamespace)
	}
	httpMetrics, err := middleware.HTTPMetrics(metricsCfg)
	if err != nil {
		return nil, err
	}

	// Middleware order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - Server span per request, enriched with request/user ids
	// 5. Metrics - Prometheus and OTLP request counters
	// 6. Security - Add security headers
	// 7. CORS - Handle cross-origin requests
	// 8. BodyLimit - Limit request body size
	// 9. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(httpMetrics)
	engine.Use(middleware.Secure())

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if limiter != nil {
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.NoRoute(middleware.NoRoute())
	return engine, nil
}

type routeDeps struct {
	fx.In

	Config   *config.Config
	Logger   *zap.Logger
	Engine   *gin.Engine
	Handlers router.Handlers
	Roles    *auth.RoleAuthorizer
	Auth     *identityapp.AuthService
	Database *persistence.Database
	Stores   *cache.Stores
	Metrics  *telemetry.HTTPMetrics
}

func registerRoutes(d routeDeps) {
	cfg := d.Config
	engine := d.Engine

	r := router.NewRouter(engine, router.WithDomains(cfg.App.Services...))

	// System endpoints live on the engine so the guard never sees them
	system := handler.NewSystemHandler(handler.SystemConfig{
		Service:  cfg.App.Name,
		Version:  cfg.App.Version,
		Database: d.Database,
		Cache:    d.Stores,
		Routes:   engine,
		Domains:  r.Domains,
	})
	engine.GET("/health", system.Health)
	engine.GET("/__introspect", system.Introspect)
	engine.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	if cfg.Swagger.Enabled {
		engine.GET("/api/docs/*any",
			middleware.SwaggerProtection(middleware.SwaggerConfig{Enabled: true, AllowedIPs: cfg.Swagger.AllowedIPs}),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
	}

	jwtConfig := middleware.DefaultJWTConfig(d.Auth)
	jwtConfig.Enabled = cfg.Auth.Enabled
	jwtConfig.Logger = d.Logger
	if !cfg.Auth.Enabled {
		d.Logger.Warn("Authentication disabled, every route is open")
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r.Register(router.DomainGroups(d.Handlers, d.Roles)...)
	r.Setup()

	d.Logger.Info("Routes registered",
		zap.Strings("domains", r.Domains()),
		zap.Int("routes", len(engine.Routes())),
	)
}

type schedulerDeps struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *zap.Logger
	Services  *services
	Limiter   *middleware.RateLimiter
}

func startScheduler(d schedulerDeps) error {
	cfg := d.Config
	s := scheduler.New(d.Logger)

	if err := scheduler.RegisterPaymentExpiry(s, cfg.Payment.ExpirySchedule, cfg.Payment.PendingExpiry, d.Services.payments); err != nil {
		return err
	}
	if err := scheduler.RegisterMetricsRetention(s, cfg.Performance.RetentionSchedule, cfg.Performance.Retention, d.Services.metrics); err != nil {
		return err
	}
	if d.Limiter != nil {
		err := s.Register(jobRateLimitSweep, "*/5 * * * *", time.Minute, func(context.Context) error {
			if n := d.Limiter.Sweep(); n > 0 {
				d.Logger.Debug("Rate limiter swept", zap.Int("removed", n))
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	d.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.Start()
			return nil
		},
		OnStop: s.Stop,
	})
	return nil
}

func runHTTP(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("Server starting", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server failed", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			log.Info("Server exited gracefully")
			return nil
		},
	})
}
