package requirement

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for requirement persistence
type Repository interface {
	Create(ctx context.Context, r *Requirement) error
	Update(ctx context.Context, r *Requirement) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Requirement, error)
	// FindAll lists requirements matching the filter. Order is unspecified;
	// callers sort with SortByPriority.
	FindAll(ctx context.Context, filter Filter) ([]*Requirement, error)
}

// Filter contains filter options for querying requirements
type Filter struct {
	NGOID    *uuid.UUID
	Category string
	Status   *Status
}

// Matches reports whether r satisfies the filter
func (f Filter) Matches(r *Requirement) bool {
	if f.NGOID != nil && r.NGOID != *f.NGOID {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	return true
}
