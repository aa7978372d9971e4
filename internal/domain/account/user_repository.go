package account

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence.
//
// Implementations return shared.ErrNotFound for missing accounts and surface
// backend failures as errors rather than empty results.
type UserRepository interface {
	// Create persists a new account
	Create(ctx context.Context, user *User) error

	// FindByID finds an account by ID regardless of its type
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds an account by normalized email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll lists accounts matching the filter, newest first
	FindAll(ctx context.Context, filter UserFilter) ([]*User, error)

	// AddConnection links a donor and an NGO on both sides; repeated calls are no-ops
	AddConnection(ctx context.Context, donorID, ngoID uuid.UUID) error

	// RemoveConnection unlinks a donor and an NGO on both sides
	RemoveConnection(ctx context.Context, donorID, ngoID uuid.UUID) error
}

// UserFilter contains filter options for querying users
type UserFilter struct {
	Type *UserType
	IDs  []uuid.UUID
}

// WithType restricts the filter to one account type
func (f UserFilter) WithType(t UserType) UserFilter {
	f.Type = &t
	return f
}

// WithIDs restricts the filter to the given ids
func (f UserFilter) WithIDs(ids []uuid.UUID) UserFilter {
	f.IDs = ids
	return f
}

// Matches reports whether u satisfies the filter
func (f UserFilter) Matches(u *User) bool {
	if f.Type != nil && u.Type != *f.Type {
		return false
	}
	if f.IDs != nil {
		for _, id := range f.IDs {
			if id == u.ID {
				return true
			}
		}
		return false
	}
	return true
}
