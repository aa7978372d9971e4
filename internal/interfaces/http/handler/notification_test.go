package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/infrastructure/persistence/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInbox(t *testing.T, env *testEnv, userID uuid.UUID, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, n)
	for i := range n {
		item, err := notification.New(userID, "donor", notification.Payload{
			Title: fmt.Sprintf("Notice %d", i),
			Type:  notification.TypeGeneral,
		})
		require.NoError(t, err)
		require.NoError(t, env.store.Notifications().Create(context.Background(), item))
		ids = append(ids, item.ID)
	}
	return ids
}

func TestNotificationHandler_List(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(memory.SeedDonorID)
	seedInbox(t, env, memory.SeedDonorID, 3)

	w := env.do(http.MethodGet, "/api/notifications?limit=2", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[NotificationListResponse](t, w)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, int64(3), list.UnreadCount)
	assert.Contains(t, w.Body.String(), `"unreadCount":3`)

	w = env.do(http.MethodGet, "/api/notifications?limit=many", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/notifications", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(memory.SeedDonorID)
	ids := seedInbox(t, env, memory.SeedDonorID, 3)
	foreign := seedInbox(t, env, memory.SeedNGOFoodForAllID, 1)

	w := env.do(http.MethodPost, "/api/notifications/mark-read",
		map[string]any{"ids": []uuid.UUID{ids[0], foreign[0]}}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[MarkReadResponse](t, w)
	assert.Equal(t, int64(1), got.Updated)
	assert.Equal(t, int64(2), got.UnreadCount)

	w = env.do(http.MethodGet, "/api/notifications?unreadOnly=true", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[NotificationListResponse](t, w).Notifications, 2)

	w = env.do(http.MethodPost, "/api/notifications/mark-read", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[MarkReadResponse](t, w)
	assert.Equal(t, int64(2), got.Updated)
	assert.Equal(t, int64(0), got.UnreadCount)

	ngoInbox := decode[NotificationListResponse](t, env.do(http.MethodGet, "/api/notifications", nil, env.token(memory.SeedNGOFoodForAllID)))
	assert.Equal(t, int64(1), ngoInbox.UnreadCount)
}

func TestToNotificationResponse(t *testing.T) {
	related := uuid.New()
	n, err := notification.New(memory.SeedDonorID, "donor", notification.Payload{
		Title:       "Delivery reminder",
		Type:        notification.TypeDonation,
		RelatedID:   &related,
		RelatedType: "donation",
	})
	require.NoError(t, err)
	n.Meta = nil

	got := ToNotificationResponse(n)
	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, "donation", got.Type)
	assert.Equal(t, &related, got.RelatedID)
	assert.NotNil(t, got.Meta)
	assert.Empty(t, got.Meta)
	assert.False(t, got.Read)
}
