package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Pool metric attribute keys
var (
	AttrDBName    = attribute.Key("db_name")
	AttrPoolState = attribute.Key("state")
)

// DBPoolMetrics reports database/sql pool statistics as observable gauges.
// Values are read from sql.DB.Stats on every collection.
type DBPoolMetrics struct {
	registration metric.Registration
}

// RegisterDBPoolMetrics registers db_pool_connections{state=idle|in_use},
// db_pool_connections_max, db_pool_wait_total and db_pool_wait_duration_seconds
// on meter for sqlDB.
func RegisterDBPoolMetrics(meter metric.Meter, sqlDB *sql.DB, dbName string) (*DBPoolMetrics, error) {
	if sqlDB == nil {
		return nil, errors.New("telemetry: nil sql.DB")
	}

	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Number of connections in the pool by state"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge db_pool_connections: %w", err)
	}
	maxOpen, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum number of open connections"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge db_pool_connections_max: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_total",
		metric.WithDescription("Total number of connections waited for"),
		metric.WithUnit("{wait}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter db_pool_wait_total: %w", err)
	}
	waitTime, err := meter.Float64ObservableCounter("db_pool_wait_duration_seconds",
		metric.WithDescription("Total time blocked waiting for a new connection"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter db_pool_wait_duration_seconds: %w", err)
	}

	db := metric.WithAttributes(AttrDBName.String(dbName))
	idle := metric.WithAttributes(AttrDBName.String(dbName), AttrPoolState.String("idle"))
	inUse := metric.WithAttributes(AttrDBName.String(dbName), AttrPoolState.String("in_use"))

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(connections, int64(stats.Idle), idle)
		o.ObserveInt64(connections, int64(stats.InUse), inUse)
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections), db)
		o.ObserveInt64(waits, stats.WaitCount, db)
		o.ObserveFloat64(waitTime, stats.WaitDuration.Seconds(), db)
		return nil
	}, connections, maxOpen, waits, waitTime)
	if err != nil {
		return nil, fmt.Errorf("failed to register pool stats callback: %w", err)
	}
	return &DBPoolMetrics{registration: reg}, nil
}

// Stop unregisters the collection callback. Safe on a nil receiver.
func (m *DBPoolMetrics) Stop() error {
	if m == nil || m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}
