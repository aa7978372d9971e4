package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for notification persistence
type Repository interface {
	Create(ctx context.Context, n *Notification) error

	// CreateBatch inserts all notifications in one call
	CreateBatch(ctx context.Context, items []*Notification) error

	// FindByUser lists a user's notifications, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter Filter) ([]*Notification, error)

	// MarkRead flips read on the user's unread notifications. An empty ids
	// slice marks all of them. Returns the number of rows changed.
	MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)

	// CountUnread counts read=false rows for the user
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Filter contains filter options for listing notifications
type Filter struct {
	UnreadOnly bool
	// Limit caps the result size; zero means unlimited
	Limit int
}

// Notifier delivers notifications on a best-effort basis.
//
// Implementations log failures and never return them; callers invoke the
// notifier after the primary mutation has been persisted.
type Notifier interface {
	NotifyUser(ctx context.Context, userID uuid.UUID, p Payload)
	NotifyNGO(ctx context.Context, ngoID uuid.UUID, p Payload)
	NotifyConnectedDonors(ctx context.Context, ngoID uuid.UUID, build Builder)
}

// NopNotifier discards every notification
type NopNotifier struct{}

func (NopNotifier) NotifyUser(context.Context, uuid.UUID, Payload)            {}
func (NopNotifier) NotifyNGO(context.Context, uuid.UUID, Payload)             {}
func (NopNotifier) NotifyConnectedDonors(context.Context, uuid.UUID, Builder) {}
