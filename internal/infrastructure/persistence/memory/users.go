package memory

import (
	"context"
	"slices"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

type userRepository struct {
	s *Store
}

func cloneUser(u *account.User) *account.User {
	c := *u
	c.ConnectedNGOs = slices.Clone(u.ConnectedNGOs)
	c.ConnectedDonors = slices.Clone(u.ConnectedDonors)
	c.NGO.Gallery = slices.Clone(u.NGO.Gallery)
	return &c
}

func (r *userRepository) Create(ctx context.Context, user *account.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return shared.NewConflictError("User already exists")
		}
	}
	r.s.users = append(r.s.users, cloneUser(user))
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if u := r.s.userByID(id); u != nil {
		return cloneUser(u), nil
	}
	return nil, shared.ErrNotFound
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email = account.NormalizeEmail(email)

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *userRepository) FindAll(ctx context.Context, filter account.UserFilter) ([]*account.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*account.User, 0)
	for i := len(r.s.users) - 1; i >= 0; i-- {
		if filter.Matches(r.s.users[i]) {
			out = append(out, cloneUser(r.s.users[i]))
		}
	}
	return out, nil
}

func (r *userRepository) AddConnection(ctx context.Context, donorID, ngoID uuid.UUID) error {
	return r.link(ctx, donorID, ngoID, func(u *account.User, other uuid.UUID) { u.AddConnection(other) })
}

func (r *userRepository) RemoveConnection(ctx context.Context, donorID, ngoID uuid.UUID) error {
	return r.link(ctx, donorID, ngoID, func(u *account.User, other uuid.UUID) { u.RemoveConnection(other) })
}

// link applies fn to both sides under one write lock
func (r *userRepository) link(ctx context.Context, donorID, ngoID uuid.UUID, fn func(*account.User, uuid.UUID)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	donor := r.s.userByID(donorID)
	ngo := r.s.userByID(ngoID)
	if donor == nil || !donor.IsDonor() {
		return shared.NewNotFoundError("Donor not found")
	}
	if ngo == nil || !ngo.IsNGO() {
		return shared.NewNotFoundError("NGO not found")
	}
	fn(donor, ngoID)
	fn(ngo, donorID)
	return nil
}
