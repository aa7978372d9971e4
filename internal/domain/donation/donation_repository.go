package donation

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for donation persistence.
//
// Reads return donations enriched with DonorName and NGOName.
type Repository interface {
	// Create persists a new donation
	Create(ctx context.Context, d *Donation) error

	// Update persists status, delivery date and timestamps of an existing donation
	Update(ctx context.Context, d *Donation) error

	// FindByID finds a donation by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Donation, error)

	// FindAll lists donations matching the filter, newest first
	FindAll(ctx context.Context, filter Filter) ([]*Donation, error)
}

// Filter contains filter options for querying donations
type Filter struct {
	DonorID *uuid.UUID
	NGOID   *uuid.UUID
	Status  *Status
	// Limit caps the result size; zero means unlimited
	Limit int
}

// Matches reports whether d satisfies the filter, ignoring Limit
func (f Filter) Matches(d *Donation) bool {
	if f.DonorID != nil && d.DonorID != *f.DonorID {
		return false
	}
	if f.NGOID != nil && d.NGOID != *f.NGOID {
		return false
	}
	if f.Status != nil && d.Status != *f.Status {
		return false
	}
	return true
}
