// Package hosted implements the persistence store on a hosted Postgres
// service where donors and NGOs live in separate tables (donors, ngos).
// Donations, requirements and notifications share the relational layout.
package hosted

import (
	"context"
	"sync"
	"time"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/domain/requirement"
	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/donorlink/backend/internal/infrastructure/persistence"
	"github.com/donorlink/backend/internal/infrastructure/persistence/relational"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SplitTables names the hosted account tables
var SplitTables = relational.Accounts{Donors: "donors", NGOs: "ngos"}

// Store is the hosted persistence backend
type Store struct {
	database *persistence.Database
	logger   *zap.Logger

	mu        sync.RWMutex
	lastProbe persistence.ProbeResult
	probed    bool
}

// New wraps an open GORM connection without probing it
func New(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{
		database: &persistence.Database{DB: db},
		logger:   logger.Named("supabase"),
	}
}

// Open prepares a lazy connection to the hosted database and starts one
// background connectivity probe. A failed probe is logged, never returned.
func Open(cfg config.SupabaseConfig, logger *zap.Logger, gormLog gormlogger.Interface) (*Store, error) {
	database, err := persistence.OpenPostgres(cfg.DSN, persistence.PoolConfig{
		MaxOpenConns: cfg.MaxOpenConns,
		MaxIdleConns: cfg.MaxIdleConns,
	}, gormLog, false)
	if err != nil {
		return nil, err
	}

	s := &Store{database: database, logger: logger.Named("supabase")}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ProbeTimeout)
		defer cancel()
		s.Probe(ctx)
	}()
	return s, nil
}

// DB returns the underlying GORM handle
func (s *Store) DB() *gorm.DB { return s.database.DB }

// Probe pings the hosted database and records the outcome
func (s *Store) Probe(ctx context.Context) persistence.ProbeResult {
	result := persistence.ProbeResult{Connected: true, CheckedAt: time.Now().UTC()}
	if err := s.database.Ping(ctx); err != nil {
		result.Connected = false
		result.Error = err.Error()
		s.logger.Warn("Hosted database probe failed", zap.Error(err))
	} else {
		s.logger.Info("Hosted database reachable")
	}

	s.mu.Lock()
	s.lastProbe = result
	s.probed = true
	s.mu.Unlock()
	return result
}

// LastProbe implements persistence.Prober
func (s *Store) LastProbe() (persistence.ProbeResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastProbe, s.probed
}

func (s *Store) Mode() config.StoreMode { return config.StoreModeSupabase }

func (s *Store) Users() account.UserRepository { return NewUserRepository(s.database.DB) }

func (s *Store) Donations() donation.Repository {
	return relational.NewDonationRepository(s.database.DB, SplitTables)
}

func (s *Store) Requirements() requirement.Repository {
	return relational.NewRequirementRepository(s.database.DB, SplitTables)
}

func (s *Store) Notifications() notification.Repository {
	return relational.NewNotificationRepository(s.database.DB)
}

func (s *Store) Ping(ctx context.Context) error { return s.database.Ping(ctx) }

func (s *Store) Close() error { return s.database.Close() }
