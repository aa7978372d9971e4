package handler

import (
	"strconv"

	notificationapp "github.com/donorlink/backend/internal/application/notification"
	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the caller's notification inbox
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.Service
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *notificationapp.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List godoc
// @Summary      List the caller's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        unreadOnly query bool false "Only unread"
// @Param        limit      query int  false "Maximum rows"
// @Success      200 {object} NotificationListResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unreadOnly", "false"))
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "limit must be an integer")
			return
		}
		limit = n
	}

	result, err := h.notificationService.List(c.Request.Context(), actor, unreadOnly, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]NotificationResponse, 0, len(result.Notifications))
	for _, n := range result.Notifications {
		items = append(items, ToNotificationResponse(n))
	}
	h.Success(c, NotificationListResponse{Notifications: items, UnreadCount: result.UnreadCount})
}

// MarkRead godoc
// @Summary      Mark notifications as read
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body MarkReadRequest false "Notification ids"
// @Success      200 {object} MarkReadResponse
// @Router       /notifications/mark-read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req MarkReadRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	result, err := h.notificationService.MarkRead(c.Request.Context(), actor, req.IDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MarkReadResponse{Updated: result.Updated, UnreadCount: result.UnreadCount})
}
