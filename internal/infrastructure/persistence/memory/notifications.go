package memory

import (
	"context"
	"maps"
	"slices"

	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/google/uuid"
)

type notificationRepository struct {
	s *Store
}

func cloneNotification(n *notification.Notification) *notification.Notification {
	c := *n
	c.Meta = maps.Clone(n.Meta)
	if n.RelatedID != nil {
		v := *n.RelatedID
		c.RelatedID = &v
	}
	return &c
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.CreateBatch(ctx, []*notification.Notification{n})
}

func (r *notificationRepository) CreateBatch(ctx context.Context, items []*notification.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, n := range items {
		r.s.notifications = append(r.s.notifications, cloneNotification(n))
	}
	return nil
}

func (r *notificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter notification.Filter) ([]*notification.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*notification.Notification, 0)
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		n := r.s.notifications[i]
		if n.UserID != userID || (filter.UnreadOnly && n.Read) {
			continue
		}
		out = append(out, cloneNotification(n))
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var updated int64
	for _, n := range r.s.notifications {
		if n.UserID != userID || n.Read {
			continue
		}
		if len(ids) > 0 && !slices.Contains(ids, n.ID) {
			continue
		}
		n.Read = true
		updated++
	}
	return updated, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, item := range r.s.notifications {
		if item.UserID == userID && !item.Read {
			n++
		}
	}
	return n, nil
}
