package relational

import (
	"context"
	"testing"
	"time"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/donorlink/backend/internal/infrastructure/persistence"
	"github.com/donorlink/backend/internal/infrastructure/persistence/storetest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)

	s := New(db)
	require.NoError(t, s.AutoMigrate())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) persistence.Store { return setupTestStore(t) })
}

func TestStore_Mode(t *testing.T) {
	s := setupTestStore(t)
	assert.Equal(t, config.StoreModeSQL, s.Mode())
	assert.NoError(t, s.Ping(context.Background()))
}

func TestUserRepository_Create(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	t.Run("rejects a taken email", func(t *testing.T) {
		first := storetest.User("taken@x.com", account.UserTypeDonor, "First")
		require.NoError(t, s.Users().Create(ctx, first))

		second := storetest.User("taken@x.com", account.UserTypeNGO, "Second")
		err := s.Users().Create(ctx, second)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("stores an empty gallery as an empty list", func(t *testing.T) {
		ngo := storetest.User("gallery@x.org", account.UserTypeNGO, "Gallery Org")
		ngo.NGO.Gallery = nil
		require.NoError(t, s.Users().Create(ctx, ngo))

		got, err := s.Users().FindByID(ctx, ngo.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.NGO.Gallery)
		assert.Empty(t, got.NGO.Gallery)
	})

	t.Run("finds by email case-insensitively", func(t *testing.T) {
		got, err := s.Users().FindByEmail(ctx, "  TAKEN@x.com ")
		require.NoError(t, err)
		assert.Equal(t, "First", got.Profile.Name)
	})
}

func TestStore_CorruptJSONColumnsSurfaceErrors(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	ngo := storetest.User("broken@x.org", account.UserTypeNGO, "Broken Org")
	require.NoError(t, s.Users().Create(ctx, ngo))
	require.NoError(t, s.DB().Model(&UserModel{}).Where("id = ?", ngo.ID).Update("gallery", "not json").Error)

	_, err := s.Users().FindByID(ctx, ngo.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode gallery")

	_, err = s.Users().FindAll(ctx, account.UserFilter{})
	require.Error(t, err)

	n, err := notification.New(ngo.ID, "ngo", notification.Payload{Title: "Hello"})
	require.NoError(t, err)
	require.NoError(t, s.Notifications().Create(ctx, n))
	require.NoError(t, s.DB().Model(&NotificationModel{}).Where("id = ?", n.ID).Update("meta", "{oops").Error)

	_, err = s.Notifications().FindByUser(ctx, ngo.ID, notification.Filter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode meta")
}

func TestUserRepository_FindAll(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	older := storetest.User("older@x.org", account.UserTypeNGO, "Older")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := storetest.User("newer@x.org", account.UserTypeNGO, "Newer")
	require.NoError(t, s.Users().Create(ctx, older))
	require.NoError(t, s.Users().Create(ctx, newer))

	t.Run("orders newest first", func(t *testing.T) {
		got, err := s.Users().FindAll(ctx, account.UserFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newer.ID, got[0].ID)
		assert.Equal(t, older.ID, got[1].ID)
	})

	t.Run("empty id list matches nothing", func(t *testing.T) {
		got, err := s.Users().FindAll(ctx, account.UserFilter{}.WithIDs([]uuid.UUID{}))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDonationRepository_NamesFallBackToEmail(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	donor := storetest.User("noname@x.com", account.UserTypeDonor, "")
	ngo := storetest.User("ngo@x.org", account.UserTypeNGO, "Care Org")
	require.NoError(t, s.Users().Create(ctx, donor))
	require.NoError(t, s.Users().Create(ctx, ngo))

	amount := 100.0
	d, err := donation.NewDonation(donation.NewDonationInput{DonorID: donor.ID, NGOID: ngo.ID, Amount: &amount})
	require.NoError(t, err)
	require.NoError(t, s.Donations().Create(ctx, d))

	got, err := s.Donations().FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "noname@x.com", got.DonorName)
	assert.Equal(t, "Care Org", got.NGOName)
	require.NotNil(t, got.Amount)
	assert.Equal(t, 100.0, *got.Amount)
	assert.Equal(t, "INR", got.Currency)
}
