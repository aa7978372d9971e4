package relational

import (
	"context"

	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository implements notification.Repository using GORM
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts one notification
func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Create(notificationModelFromDomain(n)).Error
}

// CreateBatch inserts all notifications in a single statement
func (r *NotificationRepository) CreateBatch(ctx context.Context, items []*notification.Notification) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]*NotificationModel, len(items))
	for i, n := range items {
		models[i] = notificationModelFromDomain(n)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

// FindByUser lists a user's notifications, newest first
func (r *NotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter notification.Filter) ([]*notification.Notification, error) {
	query := r.db.WithContext(ctx).Where(map[string]any{"user_id": userID})
	if filter.UnreadOnly {
		query = query.Where(map[string]any{"read": false})
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var models []NotificationModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]*notification.Notification, len(models))
	for i := range models {
		n, err := models[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// MarkRead flips the read flag on the user's unread notifications
func (r *NotificationRepository) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where(map[string]any{"user_id": userID, "read": false})
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	result := query.Update("read", true)
	return result.RowsAffected, result.Error
}

// CountUnread counts the user's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where(map[string]any{"user_id": userID, "read": false}).
		Count(&count).Error
	return count, err
}
