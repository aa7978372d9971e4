package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/infrastructure/logger"
	"github.com/donorlink/backend/internal/infrastructure/persistence/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockRepository is a mock implementation of notification.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockRepository) CreateBatch(ctx context.Context, items []*notification.Notification) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter notification.Filter) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockRepository) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func payload(title string) notification.Payload {
	return notification.Payload{Title: title, Message: "body", Type: notification.TypeGeneral}
}

func TestDispatcher_NotifyNGO(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	d := NewDispatcher(store.Notifications(), store.Users(), zap.NewNop())

	d.NotifyNGO(ctx, memory.SeedNGOFoodForAllID, payload("Hello"))

	got, err := store.Notifications().FindByUser(ctx, memory.SeedNGOFoodForAllID, notification.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ngo", got[0].AccountType)
	assert.Equal(t, "Hello", got[0].Title)
}

func TestDispatcher_NotifyUser(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	d := NewDispatcher(store.Notifications(), store.Users(), zap.NewNop())

	d.NotifyUser(ctx, memory.SeedDonorID, payload("Reminder"))
	d.NotifyUser(ctx, uuid.New(), payload("Lost"))

	got, err := store.Notifications().FindByUser(ctx, memory.SeedDonorID, notification.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "donor", got[0].AccountType)
}

func TestDispatcher_NotifyConnectedDonors(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	d := NewDispatcher(store.Notifications(), store.Users(), zap.NewNop())

	extra := uuid.New()
	require.NoError(t, store.Users().Create(ctx, donorFixture(extra, "second@example.com")))
	require.NoError(t, store.Users().AddConnection(ctx, extra, memory.SeedNGOHelpingHandsID))

	d.NotifyConnectedDonors(ctx, memory.SeedNGOHelpingHandsID, func(donorID uuid.UUID) *notification.Payload {
		if donorID == extra {
			return nil
		}
		p := payload("New requirement")
		return &p
	})

	got, err := store.Notifications().FindByUser(ctx, memory.SeedDonorID, notification.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	skipped, err := store.Notifications().CountUnread(ctx, extra)
	require.NoError(t, err)
	assert.Zero(t, skipped)
}

func TestDispatcher_FailuresAreLoggedNotReturned(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := new(MockRepository)
	boom := errors.New("relation \"notifications\" does not exist")
	repo.On("Create", mock.Anything, mock.Anything).Return(boom)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(boom)

	core, logs := observer.New(zapcore.WarnLevel)
	d := NewDispatcher(repo, store.Users(), zap.New(core))

	assert.NotPanics(t, func() {
		d.NotifyNGO(ctx, memory.SeedNGOHelpingHandsID, payload("a"))
		d.NotifyConnectedDonors(ctx, memory.SeedNGOHelpingHandsID, func(uuid.UUID) *notification.Payload {
			p := payload("b")
			return &p
		})
		d.NotifyNGO(ctx, memory.SeedNGOHelpingHandsID, notification.Payload{})
	})

	assert.Equal(t, 1, logs.FilterMessage("Failed to create notification").Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed to fan out notifications").Len())
	assert.Equal(t, 1, logs.FilterMessage("Skipping invalid notification").Len())
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestDispatcher_UsesRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := logger.WithContext(context.Background(), zap.New(core))
	store := memory.New()
	d := NewDispatcher(store.Notifications(), store.Users(), zap.NewNop())

	d.NotifyUser(ctx, uuid.New(), payload("x"))

	assert.Equal(t, 1, logs.FilterMessage("Notification recipient lookup failed").Len())
}
