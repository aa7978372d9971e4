package handler

import (
	"time"

	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// NotificationResponse is the public view of a notification
type NotificationResponse struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"user_id"`
	AccountType string         `json:"account_type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Type        string         `json:"type"`
	RelatedID   *uuid.UUID     `json:"related_id,omitempty"`
	RelatedType string         `json:"related_type,omitempty"`
	Meta        map[string]any `json:"meta"`
	Read        bool           `json:"read"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NotificationListResponse is the body of GET /notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
}

// MarkReadRequest lists the notifications to mark; empty marks all unread
type MarkReadRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"max=500"`
}

// MarkReadResponse is the body of POST /notifications/mark-read
type MarkReadResponse struct {
	Updated     int64 `json:"updated"`
	UnreadCount int64 `json:"unreadCount"`
}

// ToNotificationResponse converts a notification to its public view
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	meta := n.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	return NotificationResponse{
		ID:          n.ID,
		UserID:      n.UserID,
		AccountType: n.AccountType,
		Title:       n.Title,
		Message:     n.Message,
		Type:        string(n.Type),
		RelatedID:   n.RelatedID,
		RelatedType: n.RelatedType,
		Meta:        meta,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}
