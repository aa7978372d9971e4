package requirement

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Priority ranks how urgently an NGO needs a requirement met
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Ordinal returns the sort rank of p; unknown priorities sort last
func (p Priority) Ordinal() int {
	switch p {
	case PriorityUrgent:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 4
	}
	return 5
}

// IsValid reports whether p is a known priority
func (p Priority) IsValid() bool {
	return p.Ordinal() < 5
}

// Status is the fulfilment state of a requirement
type Status string

const (
	StatusActive             Status = "active"
	StatusFulfilled          Status = "fulfilled"
	StatusCancelled          Status = "cancelled"
	StatusPartiallyFulfilled Status = "partially_fulfilled"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusFulfilled, StatusCancelled, StatusPartiallyFulfilled:
		return true
	}
	return false
}

// Requirement is a need posted by an NGO
type Requirement struct {
	shared.BaseEntity
	NGOID        uuid.UUID
	Title        string
	Description  string
	Category     string
	RequestType  string
	AmountNeeded *float64
	Currency     string
	Priority     Priority
	Status       Status
	Deadline     *time.Time
	Quantity     *float64
	Unit         string

	// NGOName is read-side enrichment
	NGOName string
}

// Fields carries the mutable fields of a requirement. Nil means "not set".
type Fields struct {
	Title        *string
	Description  *string
	Category     *string
	RequestType  *string
	AmountNeeded *float64
	Currency     *string
	Priority     *Priority
	Status       *Status
	Deadline     *time.Time
	Quantity     *float64
	Unit         *string
}

// IsEmpty reports whether no field is set
func (f Fields) IsEmpty() bool {
	return f.Title == nil && f.Description == nil && f.Category == nil &&
		f.RequestType == nil && f.AmountNeeded == nil && f.Currency == nil &&
		f.Priority == nil && f.Status == nil && f.Deadline == nil &&
		f.Quantity == nil && f.Unit == nil
}

// NewRequirement creates a requirement owned by ngoID.
// Priority defaults to medium and status to active.
func NewRequirement(ngoID uuid.UUID, f Fields) (*Requirement, error) {
	if ngoID == uuid.Nil {
		return nil, shared.NewValidationError("ngo_id is required")
	}
	if f.Title == nil || strings.TrimSpace(*f.Title) == "" {
		return nil, shared.NewValidationError("Title is required")
	}

	r := &Requirement{
		BaseEntity: shared.NewBaseEntity(),
		NGOID:      ngoID,
		Priority:   PriorityMedium,
		Status:     StatusActive,
		Currency:   "INR",
	}
	if err := r.apply(f); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply patches the requirement with the set fields
func (r *Requirement) Apply(f Fields) error {
	if f.IsEmpty() {
		return shared.NewValidationError("No valid fields to update")
	}
	if err := r.apply(f); err != nil {
		return err
	}
	r.Touch()
	return nil
}

func (r *Requirement) apply(f Fields) error {
	if f.Title != nil {
		title := strings.TrimSpace(*f.Title)
		if title == "" {
			return shared.NewValidationError("Title cannot be empty")
		}
		if len(title) > 200 {
			return shared.NewValidationError("Title cannot exceed 200 characters")
		}
		r.Title = title
	}
	if f.Priority != nil {
		p := Priority(strings.ToLower(string(*f.Priority)))
		if !p.IsValid() {
			return shared.NewValidationError("Invalid priority. Must be one of: urgent, high, medium, low")
		}
		r.Priority = p
	}
	if f.Status != nil {
		if !f.Status.IsValid() {
			return shared.NewValidationError("Invalid status. Must be one of: active, fulfilled, cancelled, partially_fulfilled")
		}
		r.Status = *f.Status
	}
	if f.AmountNeeded != nil {
		if *f.AmountNeeded < 0 {
			return shared.NewValidationError("amount_needed cannot be negative")
		}
		v := *f.AmountNeeded
		r.AmountNeeded = &v
	}
	if f.Quantity != nil {
		if *f.Quantity < 0 {
			return shared.NewValidationError("quantity cannot be negative")
		}
		v := *f.Quantity
		r.Quantity = &v
	}
	if f.Description != nil {
		r.Description = *f.Description
	}
	if f.Category != nil {
		r.Category = strings.TrimSpace(*f.Category)
	}
	if f.RequestType != nil {
		r.RequestType = *f.RequestType
	}
	if f.Currency != nil {
		r.Currency = strings.ToUpper(strings.TrimSpace(*f.Currency))
	}
	if f.Deadline != nil {
		d := f.Deadline.UTC()
		r.Deadline = &d
	}
	if f.Unit != nil {
		r.Unit = *f.Unit
	}
	return nil
}

// IsOwnedBy reports whether ngoID posted the requirement
func (r *Requirement) IsOwnedBy(ngoID uuid.UUID) bool {
	return r.NGOID == ngoID
}

// SortByPriority orders requirements urgent first, then newest first
func SortByPriority(items []*Requirement) {
	slices.SortStableFunc(items, func(a, b *Requirement) int {
		if c := cmp.Compare(a.Priority.Ordinal(), b.Priority.Ordinal()); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
