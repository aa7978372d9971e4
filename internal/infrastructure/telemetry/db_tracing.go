package telemetry

import (
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds database tracing settings
type DBTracingConfig struct {
	Enabled bool
	// DBName is reported as db.name on every span
	DBName string
	// IncludeVariables puts bound query values into db.statement
	IncludeVariables bool
	SlowThreshold    time.Duration
}

const (
	startTimeKey    = "telemetry:start"
	callbackPrefix  = "telemetry"
	defaultSlowTime = 200 * time.Millisecond
)

// RegisterGormTracing installs the otelgorm plugin on db plus an after-hook
// that tags spans with row counts and slow-query markers.
func RegisterGormTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{}
	if cfg.DBName != "" {
		opts = append(opts, otelgorm.WithDBName(cfg.DBName))
	}
	if !cfg.IncludeVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	threshold := cfg.SlowThreshold
	if threshold <= 0 {
		threshold = defaultSlowTime
	}

	before := func(tx *gorm.DB) { tx.InstanceSet(startTimeKey, time.Now()) }
	after := func(tx *gorm.DB) { annotateSpan(tx, threshold) }

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register(callbackPrefix+":before_create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register(callbackPrefix+":after_create", after); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register(callbackPrefix+":before_query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register(callbackPrefix+":after_query", after); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register(callbackPrefix+":before_update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register(callbackPrefix+":after_update", after); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register(callbackPrefix+":before_delete", before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register(callbackPrefix+":after_delete", after); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_name", cfg.DBName),
		zap.Duration("slow_threshold", threshold),
	)
	return nil
}

func annotateSpan(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		RecordError(span, tx.Error)
	}

	v, ok := tx.InstanceGet(startTimeKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
