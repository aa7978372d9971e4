// Package relational implements the persistence store on a relational
// database through GORM. Production runs on PostgreSQL; tests run the same
// repositories on SQLite.
package relational

import (
	"context"
	"fmt"
	"time"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/domain/requirement"
	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/donorlink/backend/internal/infrastructure/persistence"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store is the relational persistence backend
type Store struct {
	database *persistence.Database
}

// New wraps an open GORM connection
func New(db *gorm.DB) *Store {
	return &Store{database: &persistence.Database{DB: db}}
}

// Open connects to the configured PostgreSQL database and optionally
// creates the schema
func Open(cfg config.DatabaseConfig, log gormlogger.Interface) (*Store, error) {
	database, err := persistence.OpenPostgres(cfg.DSN(), persistence.PoolConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Minute,
		ConnMaxIdleTime: time.Duration(cfg.ConnMaxIdleTime) * time.Minute,
	}, log, true)
	if err != nil {
		return nil, err
	}

	s := &Store{database: database}
	if cfg.AutoMigrate {
		if err := s.AutoMigrate(); err != nil {
			_ = database.Close()
			return nil, err
		}
	}
	return s, nil
}

// AutoMigrate creates or updates the tables for every model
func (s *Store) AutoMigrate() error {
	if err := s.database.DB.AutoMigrate(
		&UserModel{},
		&ConnectionModel{},
		&DonationModel{},
		&RequirementModel{},
		&NotificationModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// DB returns the underlying GORM handle
func (s *Store) DB() *gorm.DB { return s.database.DB }

func (s *Store) Mode() config.StoreMode { return config.StoreModeSQL }

func (s *Store) Users() account.UserRepository { return NewUserRepository(s.database.DB) }

func (s *Store) Donations() donation.Repository {
	return NewDonationRepository(s.database.DB, UsersTable)
}

func (s *Store) Requirements() requirement.Repository {
	return NewRequirementRepository(s.database.DB, UsersTable)
}

func (s *Store) Notifications() notification.Repository {
	return NewNotificationRepository(s.database.DB)
}

func (s *Store) Ping(ctx context.Context) error { return s.database.Ping(ctx) }

func (s *Store) Close() error { return s.database.Close() }
