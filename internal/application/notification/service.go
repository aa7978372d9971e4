package notification

import (
	"context"

	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/google/uuid"
)

const (
	// DefaultListLimit applies when the caller gives no limit
	DefaultListLimit = 50
	// MaxListLimit caps any requested limit
	MaxListLimit = 200
)

// ListResult is a page of notifications with the current unread total
type ListResult struct {
	Notifications []*notification.Notification
	UnreadCount   int64
}

// MarkReadResult reports how many notifications flipped to read
type MarkReadResult struct {
	Updated     int64
	UnreadCount int64
}

// Service serves the notification read path
type Service struct {
	repo notification.Repository
}

// NewService creates a new Service
func NewService(repo notification.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's newest notifications and a fresh unread count
func (s *Service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) (*ListResult, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	items, err := s.repo.FindByUser(ctx, userID, notification.Filter{UnreadOnly: unreadOnly, Limit: limit})
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ListResult{Notifications: items, UnreadCount: unread}, nil
}

// MarkRead marks the given notifications read, or all unread ones when ids
// is empty. Ids owned by other users are ignored.
func (s *Service) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (*MarkReadResult, error) {
	updated, err := s.repo.MarkRead(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MarkReadResult{Updated: updated, UnreadCount: unread}, nil
}
