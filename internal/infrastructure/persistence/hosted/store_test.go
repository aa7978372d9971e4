package hosted

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/donorlink/backend/internal/infrastructure/persistence/storetest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	selectDonor = `SELECT \* FROM "donors" WHERE id = \$1 ORDER BY .* LIMIT .*`
	selectNGO   = `SELECT \* FROM "ngos" WHERE id = \$1 ORDER BY .* LIMIT .*`
)

// newMockStore creates a Store with a mocked SQL connection
func newMockStore(t *testing.T, logger *zap.Logger) (*Store, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return New(gormDB, logger), mock, mockDB
}

var profileCols = []string{"id", "email", "password_hash", "verified", "name", "city", "created_at", "updated_at"}

func TestStore_Mode(t *testing.T) {
	s, _, mockDB := newMockStore(t, zap.NewNop())
	defer mockDB.Close()

	assert.Equal(t, config.StoreModeSupabase, s.Mode())
}

func TestStore_Probe(t *testing.T) {
	t.Run("records a failed probe without returning it", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		s, mock, mockDB := newMockStore(t, zap.New(core))
		defer mockDB.Close()

		_, ok := s.LastProbe()
		assert.False(t, ok, "no probe has run yet")

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		result := s.Probe(context.Background())
		assert.False(t, result.Connected)
		assert.Contains(t, result.Error, "connection refused")

		last, ok := s.LastProbe()
		require.True(t, ok)
		assert.Equal(t, result, last)
		assert.Equal(t, 1, logs.FilterMessage("Hosted database probe failed").Len())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("records a successful probe", func(t *testing.T) {
		s, mock, mockDB := newMockStore(t, zap.NewNop())
		defer mockDB.Close()

		mock.ExpectPing()

		result := s.Probe(context.Background())
		assert.True(t, result.Connected)
		assert.Empty(t, result.Error)
		assert.False(t, result.CheckedAt.IsZero())
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	now := time.Now().UTC()

	t.Run("returns a donor without touching ngos", func(t *testing.T) {
		s, mock, mockDB := newMockStore(t, zap.NewNop())
		defer mockDB.Close()

		id := uuid.New()
		ngoID := uuid.New()
		rows := sqlmock.NewRows(append(profileCols, "connected_ngos")).
			AddRow(id.String(), "d@x.com", "hash", false, "Dana", "Pune", now, now, "{"+ngoID.String()+"}")
		mock.ExpectQuery(selectDonor).WithArgs(id, 1).WillReturnRows(rows)

		user, err := s.Users().FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, account.UserTypeDonor, user.Type)
		assert.Equal(t, "Dana", user.Profile.Name)
		assert.Equal(t, []uuid.UUID{ngoID}, user.ConnectedNGOs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to ngos and tags the result", func(t *testing.T) {
		s, mock, mockDB := newMockStore(t, zap.NewNop())
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectQuery(selectDonor).WithArgs(id, 1).WillReturnRows(sqlmock.NewRows(profileCols))
		rows := sqlmock.NewRows(append(profileCols, "about", "gallery", "connected_donors")).
			AddRow(id.String(), "n@x.org", "hash", true, "Care Org", "Mumbai", now, now, "We help", "{https://img/1.jpg}", "{}")
		mock.ExpectQuery(selectNGO).WithArgs(id, 1).WillReturnRows(rows)

		user, err := s.Users().FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, account.UserTypeNGO, user.Type)
		assert.True(t, user.Verified)
		assert.Equal(t, "We help", user.NGO.About)
		assert.Equal(t, []string{"https://img/1.jpg"}, user.NGO.Gallery)
		assert.Empty(t, user.ConnectedDonors)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when neither table matches", func(t *testing.T) {
		s, mock, mockDB := newMockStore(t, zap.NewNop())
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectQuery(selectDonor).WithArgs(id, 1).WillReturnRows(sqlmock.NewRows(profileCols))
		mock.ExpectQuery(selectNGO).WithArgs(id, 1).WillReturnRows(sqlmock.NewRows(profileCols))

		user, err := s.Users().FindByID(context.Background(), id)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("surfaces query failures", func(t *testing.T) {
		s, mock, mockDB := newMockStore(t, zap.NewNop())
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectQuery(selectDonor).WithArgs(id, 1).WillReturnError(errors.New("relation does not exist"))

		user, err := s.Users().FindByID(context.Background(), id)
		assert.Nil(t, user)
		require.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "relation does not exist")
	})
}

func TestUserRepository_Create(t *testing.T) {
	t.Run("rejects an email registered in the other table", func(t *testing.T) {
		s, mock, mockDB := newMockStore(t, zap.NewNop())
		defer mockDB.Close()

		now := time.Now().UTC()
		mock.ExpectQuery(`SELECT \* FROM "donors" WHERE email = \$1`).
			WithArgs("taken@x.org", 1).
			WillReturnRows(sqlmock.NewRows(profileCols))
		mock.ExpectQuery(`SELECT \* FROM "ngos" WHERE email = \$1`).
			WithArgs("taken@x.org", 1).
			WillReturnRows(sqlmock.NewRows(profileCols).
				AddRow(uuid.NewString(), "taken@x.org", "", false, "Org", "", now, now))

		user := storetest.User("taken@x.org", account.UserTypeDonor, "D")

		err := s.Users().Create(context.Background(), user)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inserts an NGO into the ngos table", func(t *testing.T) {
		s, mock, mockDB := newMockStore(t, zap.NewNop())
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "donors" WHERE email = \$1`).WillReturnRows(sqlmock.NewRows(profileCols))
		mock.ExpectQuery(`SELECT \* FROM "ngos" WHERE email = \$1`).WillReturnRows(sqlmock.NewRows(profileCols))
		mock.ExpectExec(`INSERT INTO "ngos"`).WillReturnResult(sqlmock.NewResult(0, 1))

		user := storetest.User("new@x.org", account.UserTypeNGO, "New Org")
		require.NoError(t, s.Users().Create(context.Background(), user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_AddConnection(t *testing.T) {
	t.Run("updates the donor row before the NGO row", func(t *testing.T) {
		s, mock, mockDB := newMockStore(t, zap.NewNop())
		defer mockDB.Close()

		donorID, ngoID := uuid.New(), uuid.New()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "donors"`).WithArgs(donorID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "ngos"`).WithArgs(ngoID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(`UPDATE "donors" SET "connected_ngos"=array_append`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "ngos" SET "connected_donors"=array_append`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Users().AddConnection(context.Background(), donorID, ngoID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an unknown donor before writing", func(t *testing.T) {
		s, mock, mockDB := newMockStore(t, zap.NewNop())
		defer mockDB.Close()

		donorID, ngoID := uuid.New(), uuid.New()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "donors"`).WithArgs(donorID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := s.Users().AddConnection(context.Background(), donorID, ngoID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "Donor not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDonationRepository_CoercesNumericColumns(t *testing.T) {
	s, mock, mockDB := newMockStore(t, zap.NewNop())
	defer mockDB.Close()

	id, donorID, ngoID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "donor_id", "ngo_id", "donation_type", "amount", "currency", "quantity",
		"anonymous", "status", "created_at", "updated_at", "donor_name", "ngo_name",
	}).AddRow(id.String(), donorID.String(), ngoID.String(), "money", "1250.50", "INR", nil,
		true, "pending", now, now, "Dana", "Care Org")

	mock.ExpectQuery(`SELECT d\.\*.* FROM donations AS d LEFT JOIN donors du .* LEFT JOIN ngos nu .* WHERE d\.id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(rows)

	got, err := s.Donations().FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, got.Amount)
	assert.Equal(t, 1250.5, *got.Amount)
	assert.Nil(t, got.Quantity)
	assert.Equal(t, donorID, got.DonorID)
	assert.Equal(t, "Dana", got.DonorName)
	assert.Equal(t, "Care Org", got.NGOName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
