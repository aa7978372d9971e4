// Package memory implements the persistence store over process-local
// collections seeded with fixtures. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/domain/requirement"
	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/google/uuid"
)

// Store owns ordered in-memory collections. Reads return copies so callers
// cannot mutate stored records.
type Store struct {
	mu            sync.RWMutex
	users         []*account.User
	donations     []*donation.Donation
	requirements  []*requirement.Requirement
	notifications []*notification.Notification
}

// New creates a store loaded with the fixture rows
func New() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// NewEmpty creates a store with no rows
func NewEmpty() *Store {
	return &Store{}
}

// Reset discards every change and restores the fixture rows
func (s *Store) Reset() {
	f := fixtures()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = f.users
	s.donations = f.donations
	s.requirements = f.requirements
	s.notifications = nil
}

func (s *Store) Mode() config.StoreMode { return config.StoreModeMock }

func (s *Store) Users() account.UserRepository { return &userRepository{s: s} }

func (s *Store) Donations() donation.Repository { return &donationRepository{s: s} }

func (s *Store) Requirements() requirement.Repository { return &requirementRepository{s: s} }

func (s *Store) Notifications() notification.Repository { return &notificationRepository{s: s} }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() error { return nil }

// userByID must be called with s.mu held
func (s *Store) userByID(id uuid.UUID) *account.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}
