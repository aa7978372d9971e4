package notification

import (
	"strings"
	"time"

	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Type categorizes a notification
type Type string

const (
	TypeDonation    Type = "donation"
	TypeRequirement Type = "requirement"
	TypeConnection  Type = "connection"
	TypeGeneral     Type = "general"
)

// IsValid reports whether t is a known type
func (t Type) IsValid() bool {
	switch t {
	case TypeDonation, TypeRequirement, TypeConnection, TypeGeneral:
		return true
	}
	return false
}

// Notification is a notice addressed to one account
type Notification struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountType string
	Title       string
	Message     string
	Type        Type
	RelatedID   *uuid.UUID
	RelatedType string
	Meta        map[string]any
	Read        bool
	CreatedAt   time.Time
}

// Payload describes a notification before a recipient is bound
type Payload struct {
	Title       string
	Message     string
	Type        Type
	RelatedID   *uuid.UUID
	RelatedType string
	Meta        map[string]any
}

// New binds payload to a recipient. Unknown types fall back to general.
func New(userID uuid.UUID, accountType string, p Payload) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user_id is required")
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, shared.NewValidationError("Notification title is required")
	}
	t := p.Type
	if !t.IsValid() {
		t = TypeGeneral
	}
	meta := p.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	return &Notification{
		ID:          uuid.New(),
		UserID:      userID,
		AccountType: accountType,
		Title:       title,
		Message:     p.Message,
		Type:        t,
		RelatedID:   p.RelatedID,
		RelatedType: p.RelatedType,
		Meta:        meta,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Builder produces the payload for one connected donor, or nil to skip it
type Builder func(donorID uuid.UUID) *Payload
