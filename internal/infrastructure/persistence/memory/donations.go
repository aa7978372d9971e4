package memory

import (
	"context"

	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

type donationRepository struct {
	s *Store
}

// enrich must be called with s.mu held
func (r *donationRepository) enrich(d *donation.Donation) *donation.Donation {
	c := *d
	if d.Amount != nil {
		v := *d.Amount
		c.Amount = &v
	}
	if d.Quantity != nil {
		v := *d.Quantity
		c.Quantity = &v
	}
	if d.DeliveryDate != nil {
		v := *d.DeliveryDate
		c.DeliveryDate = &v
	}
	if donor := r.s.userByID(d.DonorID); donor != nil {
		c.DonorName = donor.DisplayName()
	}
	if ngo := r.s.userByID(d.NGOID); ngo != nil {
		c.NGOName = ngo.DisplayName()
	}
	return &c
}

func (r *donationRepository) Create(ctx context.Context, d *donation.Donation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := r.enrich(d)
	stored.DonorName, stored.NGOName = "", ""
	r.s.donations = append(r.s.donations, stored)
	return nil
}

func (r *donationRepository) Update(ctx context.Context, d *donation.Donation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.donations {
		if existing.ID != d.ID {
			continue
		}
		existing.Status = d.Status
		existing.DeliveryDate = nil
		if d.DeliveryDate != nil {
			v := *d.DeliveryDate
			existing.DeliveryDate = &v
		}
		existing.UpdatedAt = d.UpdatedAt
		return nil
	}
	return shared.ErrNotFound
}

func (r *donationRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, d := range r.s.donations {
		if d.ID == id {
			return r.enrich(d), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *donationRepository) FindAll(ctx context.Context, filter donation.Filter) ([]*donation.Donation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// stored in insertion order; walk backwards for newest first
	out := make([]*donation.Donation, 0)
	for i := len(r.s.donations) - 1; i >= 0; i-- {
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		if filter.Matches(r.s.donations[i]) {
			out = append(out, r.enrich(r.s.donations[i]))
		}
	}
	return out, nil
}
