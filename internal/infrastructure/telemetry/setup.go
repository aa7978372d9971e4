package telemetry

import (
	"context"
	"errors"

	"github.com/donorlink/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Providers bundles every telemetry component started by Setup
type Providers struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup starts the providers named by cfg. With telemetry disabled every
// provider is inert and the global OpenTelemetry no-ops stay in place.
func Setup(ctx context.Context, cfg config.TelemetryConfig, app config.AppConfig, logger *zap.Logger) (*Providers, error) {
	base := Config{
		Enabled:           cfg.Enabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		SamplingRatio:     cfg.SamplingRatio,
		ServiceName:       app.Name,
		Insecure:          cfg.Insecure,
	}

	p := &Providers{}
	var err error
	if p.Profiler, err = NewProfiler(ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: app.Name,
	}, logger); err != nil {
		return nil, err
	}
	if p.Tracer, err = NewTracerProvider(ctx, base, logger); err != nil {
		return nil, errors.Join(err, p.Shutdown(ctx))
	}
	if cfg.Profiling.Enabled && cfg.Profiling.SpanProfiles {
		p.Tracer.EnableSpanProfiles()
	}
	if p.Meter, err = NewMeterProvider(ctx, base, cfg.MetricsInterval, logger); err != nil {
		return nil, errors.Join(err, p.Shutdown(ctx))
	}

	logsCfg := base
	logsCfg.Enabled = cfg.Enabled && cfg.ExportLogs
	if p.Logs, err = NewLoggerProvider(ctx, logsCfg, logger); err != nil {
		return nil, errors.Join(err, p.Shutdown(ctx))
	}
	return p, nil
}

// BridgeLogger tees logger into the log exporter at level and above
func (p *Providers) BridgeLogger(logger *zap.Logger, level zapcore.Level) *zap.Logger {
	if p.Logs == nil {
		return logger
	}
	return p.Logs.Bridge(logger, level)
}

// Shutdown flushes and stops every started provider
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Logs != nil {
		errs = append(errs, p.Logs.Shutdown(ctx))
	}
	if p.Meter != nil {
		errs = append(errs, p.Meter.Shutdown(ctx))
	}
	if p.Tracer != nil {
		errs = append(errs, p.Tracer.Shutdown(ctx))
	}
	if p.Profiler != nil {
		errs = append(errs, p.Profiler.Stop())
	}
	return errors.Join(errs...)
}
