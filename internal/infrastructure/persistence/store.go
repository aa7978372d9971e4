package persistence

import (
	"context"
	"time"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/domain/requirement"
	"github.com/donorlink/backend/internal/infrastructure/config"
	"gorm.io/gorm"
)

// Store is the persistence backend chosen once at startup.
// Every implementation returns the same normalized domain structs.
type Store interface {
	Mode() config.StoreMode
	Users() account.UserRepository
	Donations() donation.Repository
	Requirements() requirement.Repository
	Notifications() notification.Repository
	Ping(ctx context.Context) error
	Close() error
}

// ProbeResult is the outcome of a backend connectivity probe
type ProbeResult struct {
	Connected bool
	Error     string
	CheckedAt time.Time
}

// Prober is implemented by stores that probe connectivity in the background.
// ok is false until the first probe has finished.
type Prober interface {
	LastProbe() (result ProbeResult, ok bool)
}

// GormBacked is implemented by stores that run on a GORM connection
type GormBacked interface {
	DB() *gorm.DB
}
