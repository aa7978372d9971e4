package memory

import (
	"context"
	"slices"

	"github.com/donorlink/backend/internal/domain/requirement"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

type requirementRepository struct {
	s *Store
}

func cloneRequirement(r *requirement.Requirement) *requirement.Requirement {
	c := *r
	if r.AmountNeeded != nil {
		v := *r.AmountNeeded
		c.AmountNeeded = &v
	}
	if r.Quantity != nil {
		v := *r.Quantity
		c.Quantity = &v
	}
	if r.Deadline != nil {
		v := *r.Deadline
		c.Deadline = &v
	}
	return &c
}

// enrich must be called with s.mu held
func (r *requirementRepository) enrich(req *requirement.Requirement) *requirement.Requirement {
	c := cloneRequirement(req)
	if ngo := r.s.userByID(req.NGOID); ngo != nil {
		c.NGOName = ngo.DisplayName()
	}
	return c
}

func (r *requirementRepository) Create(ctx context.Context, req *requirement.Requirement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := cloneRequirement(req)
	stored.NGOName = ""
	r.s.requirements = append(r.s.requirements, stored)
	return nil
}

func (r *requirementRepository) Update(ctx context.Context, req *requirement.Requirement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, existing := range r.s.requirements {
		if existing.ID == req.ID {
			stored := cloneRequirement(req)
			stored.NGOName = ""
			r.s.requirements[i] = stored
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *requirementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	before := len(r.s.requirements)
	r.s.requirements = slices.DeleteFunc(r.s.requirements, func(req *requirement.Requirement) bool {
		return req.ID == id
	})
	if len(r.s.requirements) == before {
		return shared.ErrNotFound
	}
	return nil
}

func (r *requirementRepository) FindByID(ctx context.Context, id uuid.UUID) (*requirement.Requirement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, req := range r.s.requirements {
		if req.ID == id {
			return r.enrich(req), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *requirementRepository) FindAll(ctx context.Context, filter requirement.Filter) ([]*requirement.Requirement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*requirement.Requirement, 0)
	for _, req := range r.s.requirements {
		if filter.Matches(req) {
			out = append(out, r.enrich(req))
		}
	}
	return out, nil
}
