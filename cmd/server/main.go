// Command server runs the DonorLink HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/donorlink/backend/internal/infrastructure/auth"
	"github.com/donorlink/backend/internal/infrastructure/cache"
	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/donorlink/backend/internal/infrastructure/logger"
	"github.com/donorlink/backend/internal/infrastructure/persistence"
	"github.com/donorlink/backend/internal/infrastructure/persistence/backends"
	"github.com/donorlink/backend/internal/infrastructure/telemetry"
	"github.com/donorlink/backend/internal/interfaces/http/handler"
	"github.com/donorlink/backend/internal/interfaces/http/middleware"
	"github.com/donorlink/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.ForEnvironment(cfg.App.Env, logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	providers, err := telemetry.Setup(context.Background(), cfg.Telemetry, cfg.App, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	log = providers.BridgeLogger(log, level)

	log.Info("Starting DonorLink backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("store", string(cfg.Store.Mode)),
	)

	store, err := backends.Open(cfg, log)
	if err != nil {
		log.Fatal("Failed to open persistence store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing store", zap.Error(err))
		}
	}()

	if gb, ok := store.(persistence.GormBacked); ok {
		if err := telemetry.RegisterGormTracing(gb.DB(), telemetry.DBTracingConfig{
			Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.TraceDB,
			DBName:  string(cfg.Store.Mode),
		}, log); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
		if providers.Meter.IsEnabled() {
			if sqlDB, err := gb.DB().DB(); err == nil {
				pool, err := telemetry.RegisterDBPoolMetrics(otel.Meter(telemetry.TracerName), sqlDB, string(cfg.Store.Mode))
				if err != nil {
					log.Warn("Failed to register database pool metrics", zap.Error(err))
				}
				defer func() { _ = pool.Stop() }()
			}
		}
	}

	counter := cache.NewCounter(cfg.Redis, log)
	defer func() {
		if err := counter.Close(); err != nil {
			log.Error("Error closing rate limit counter", zap.Error(err))
		}
	}()

	keys := cache.NewKeyStore(cfg.Redis, log)
	defer func() {
		if err := keys.Close(); err != nil {
			log.Error("Error closing idempotency key store", zap.Error(err))
		}
	}()

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var httpMeter metric.Meter
	if providers.Meter.IsEnabled() {
		httpMeter = otel.Meter("http.server")
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	handlers := handler.NewHandlers(store, jwtService, cfg.Auth, log)
	engine := router.NewEngine(handlers, router.EngineOptions{
		HTTP:       cfg.HTTP,
		JWTService: jwtService,
		Counter:    counter,
		Keys:       keys,
		Tracing: middleware.TracingConfig{
			Enabled:     cfg.Telemetry.Enabled,
			ServiceName: cfg.App.Name,
		},
		Meter:     httpMeter,
		Profiling: providers.Profiler.IsEnabled(),
		Logger:    log,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	timeout := cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
