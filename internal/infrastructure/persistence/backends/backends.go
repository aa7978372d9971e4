// Package backends selects and opens the persistence store named by the
// configuration.
package backends

import (
	"fmt"

	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/donorlink/backend/internal/infrastructure/logger"
	"github.com/donorlink/backend/internal/infrastructure/persistence"
	"github.com/donorlink/backend/internal/infrastructure/persistence/hosted"
	"github.com/donorlink/backend/internal/infrastructure/persistence/memory"
	"github.com/donorlink/backend/internal/infrastructure/persistence/relational"
	"go.uber.org/zap"
)

// Open returns the store for cfg.Store.Mode. It is called once at startup.
func Open(cfg *config.Config, log *zap.Logger) (persistence.Store, error) {
	gormLog := logger.NewGormLogger(log, cfg.Log.Level, cfg.Database.SlowThreshold)

	switch cfg.Store.Mode {
	case config.StoreModeMock:
		log.Info("Using in-memory store with fixtures")
		return memory.New(), nil
	case config.StoreModeSQL:
		s, err := relational.Open(cfg.Database, gormLog)
		if err != nil {
			return nil, fmt.Errorf("open sql store: %w", err)
		}
		log.Info("Connected to SQL database",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.DBName),
		)
		return s, nil
	case config.StoreModeSupabase:
		s, err := hosted.Open(cfg.Supabase, log, gormLog)
		if err != nil {
			return nil, fmt.Errorf("open supabase store: %w", err)
		}
		log.Info("Using hosted database; connectivity probe started")
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store mode %q", cfg.Store.Mode)
	}
}
