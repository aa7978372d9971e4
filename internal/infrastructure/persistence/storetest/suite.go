// Package storetest holds behaviour checks shared by every persistence.Store
// implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/domain/requirement"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/donorlink/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a store with no rows
type Factory func(t *testing.T) persistence.Store

// Run executes the shared checks, each against a fresh store
func Run(t *testing.T, newStore Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("connections", func(t *testing.T) { testConnections(t, newStore(t)) })
	t.Run("donations", func(t *testing.T) { testDonations(t, newStore(t)) })
	t.Run("requirements", func(t *testing.T) { testRequirements(t, newStore(t)) })
	t.Run("notifications", func(t *testing.T) { testNotifications(t, newStore(t)) })
}

// User builds an account without paying the bcrypt cost
func User(email string, typ account.UserType, name string) *account.User {
	return &account.User{
		BaseEntity:      shared.NewBaseEntity(),
		Email:           email,
		PasswordHash:    "$2a$04$placeholderplaceholderplaceholderplaceholderplacehold",
		Type:            typ,
		Profile:         account.Profile{Name: name, City: "Pune"},
		ConnectedNGOs:   []uuid.UUID{},
		ConnectedDonors: []uuid.UUID{},
	}
}

func seedPair(t *testing.T, ctx context.Context, s persistence.Store) (donor, ngo *account.User) {
	t.Helper()
	donor = User("donor-"+uuid.NewString()[:8]+"@x.com", account.UserTypeDonor, "Dana Donor")
	ngo = User("ngo-"+uuid.NewString()[:8]+"@x.org", account.UserTypeNGO, "Care Org")
	ngo.NGO.Gallery = []string{"https://img.example/1.jpg"}
	require.NoError(t, s.Users().Create(ctx, donor))
	require.NoError(t, s.Users().Create(ctx, ngo))
	return donor, ngo
}

func testUsers(t *testing.T, s persistence.Store) {
	ctx := context.Background()
	donor, ngo := seedPair(t, ctx, s)

	got, err := s.Users().FindByID(ctx, ngo.ID)
	require.NoError(t, err)
	assert.Equal(t, account.UserTypeNGO, got.Type)
	assert.Equal(t, ngo.Email, got.Email)
	assert.Equal(t, "Care Org", got.Profile.Name)
	assert.Equal(t, []string{"https://img.example/1.jpg"}, got.NGO.Gallery)

	got, err = s.Users().FindByEmail(ctx, donor.Email)
	require.NoError(t, err)
	assert.Equal(t, donor.ID, got.ID)
	assert.Equal(t, account.UserTypeDonor, got.Type)
	assert.Equal(t, donor.PasswordHash, got.PasswordHash)

	_, err = s.Users().FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = s.Users().FindByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	ngos, err := s.Users().FindAll(ctx, account.UserFilter{}.WithType(account.UserTypeNGO))
	require.NoError(t, err)
	require.Len(t, ngos, 1)
	assert.Equal(t, ngo.ID, ngos[0].ID)

	byIDs, err := s.Users().FindAll(ctx, account.UserFilter{}.WithIDs([]uuid.UUID{donor.ID}))
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	assert.Equal(t, donor.ID, byIDs[0].ID)
}

func testConnections(t *testing.T, s persistence.Store) {
	ctx := context.Background()
	donor, ngo := seedPair(t, ctx, s)
	users := s.Users()

	require.NoError(t, users.AddConnection(ctx, donor.ID, ngo.ID))
	require.NoError(t, users.AddConnection(ctx, donor.ID, ngo.ID))

	d, err := users.FindByID(ctx, donor.ID)
	require.NoError(t, err)
	n, err := users.FindByID(ctx, ngo.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ngo.ID}, d.ConnectedNGOs)
	assert.Equal(t, []uuid.UUID{donor.ID}, n.ConnectedDonors)

	require.NoError(t, users.RemoveConnection(ctx, donor.ID, ngo.ID))
	d, err = users.FindByID(ctx, donor.ID)
	require.NoError(t, err)
	n, err = users.FindByID(ctx, ngo.ID)
	require.NoError(t, err)
	assert.Empty(t, d.ConnectedNGOs)
	assert.Empty(t, n.ConnectedDonors)

	err = users.AddConnection(ctx, ngo.ID, donor.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func testDonations(t *testing.T, s persistence.Store) {
	ctx := context.Background()
	donor, ngo := seedPair(t, ctx, s)
	amount := 250.0

	money, err := donation.NewDonation(donation.NewDonationInput{
		DonorID: donor.ID, NGOID: ngo.ID, Type: donation.TypeMoney, Amount: &amount,
	})
	require.NoError(t, err)
	require.NoError(t, s.Donations().Create(ctx, money))

	qty := 12.5
	when := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	food, err := donation.NewDonation(donation.NewDonationInput{
		DonorID: donor.ID, NGOID: ngo.ID, Type: donation.TypeFood,
		Quantity: &qty, Unit: "kg", DeliveryDate: &when, Anonymous: true,
	})
	require.NoError(t, err)
	food.CreatedAt = money.CreatedAt.Add(time.Second)
	require.NoError(t, s.Donations().Create(ctx, food))

	got, err := s.Donations().FindByID(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, donation.TypeFood, got.Type)
	require.NotNil(t, got.Quantity)
	assert.InDelta(t, 12.5, *got.Quantity, 1e-9)
	assert.Nil(t, got.Amount)
	assert.True(t, got.Anonymous)
	assert.Equal(t, "Dana Donor", got.DonorName)
	assert.Equal(t, "Care Org", got.NGOName)
	require.NotNil(t, got.DeliveryDate)
	assert.True(t, when.Equal(*got.DeliveryDate))

	require.NoError(t, got.SetStatus(donation.StatusCompleted))
	require.NoError(t, s.Donations().Update(ctx, got))

	completed := donation.StatusCompleted
	list, err := s.Donations().FindAll(ctx, donation.Filter{Status: &completed})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, food.ID, list[0].ID)

	byDonor, err := s.Donations().FindAll(ctx, donation.Filter{DonorID: &donor.ID})
	require.NoError(t, err)
	require.Len(t, byDonor, 2)
	assert.Equal(t, food.ID, byDonor[0].ID, "newest first")

	limited, err := s.Donations().FindAll(ctx, donation.Filter{NGOID: &ngo.ID, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = s.Donations().FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	missing := *money
	missing.ID = uuid.New()
	assert.ErrorIs(t, s.Donations().Update(ctx, &missing), shared.ErrNotFound)
}

func testRequirements(t *testing.T, s persistence.Store) {
	ctx := context.Background()
	_, ngo := seedPair(t, ctx, s)

	title := "Blankets"
	urgent := requirement.PriorityUrgent
	req, err := requirement.NewRequirement(ngo.ID, requirement.Fields{Title: &title, Priority: &urgent})
	require.NoError(t, err)
	category := "clothing"
	require.NoError(t, req.Apply(requirement.Fields{Category: &category}))
	require.NoError(t, s.Requirements().Create(ctx, req))

	got, err := s.Requirements().FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blankets", got.Title)
	assert.Equal(t, requirement.PriorityUrgent, got.Priority)
	assert.Equal(t, "Care Org", got.NGOName)

	status := requirement.StatusFulfilled
	require.NoError(t, got.Apply(requirement.Fields{Status: &status}))
	require.NoError(t, s.Requirements().Update(ctx, got))

	active := requirement.StatusActive
	list, err := s.Requirements().FindAll(ctx, requirement.Filter{Status: &active})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = s.Requirements().FindAll(ctx, requirement.Filter{NGOID: &ngo.ID, Category: "clothing"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, requirement.StatusFulfilled, list[0].Status)

	require.NoError(t, s.Requirements().Delete(ctx, req.ID))
	_, err = s.Requirements().FindByID(ctx, req.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, s.Requirements().Delete(ctx, req.ID), shared.ErrNotFound)
}

func testNotifications(t *testing.T, s persistence.Store) {
	ctx := context.Background()
	donor, ngo := seedPair(t, ctx, s)
	repo := s.Notifications()

	first, err := notification.New(ngo.ID, "ngo", notification.Payload{
		Title: "New donation", Type: notification.TypeDonation, Meta: map[string]any{"amount": 10.0},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	var batch []*notification.Notification
	for i := 0; i < 3; i++ {
		n, err := notification.New(ngo.ID, "ngo", notification.Payload{Title: "Update", Type: notification.TypeGeneral})
		require.NoError(t, err)
		n.CreatedAt = first.CreatedAt.Add(time.Duration(i+1) * time.Second)
		batch = append(batch, n)
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	other, err := notification.New(donor.ID, "donor", notification.Payload{Title: "Hi"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	count, err := repo.CountUnread(ctx, ngo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	items, err := repo.FindByUser(ctx, ngo.ID, notification.Filter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, batch[2].ID, items[0].ID, "newest first")

	updated, err := repo.MarkRead(ctx, ngo.ID, []uuid.UUID{first.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	unread, err := repo.FindByUser(ctx, ngo.ID, notification.Filter{UnreadOnly: true})
	require.NoError(t, err)
	assert.Len(t, unread, 3)

	all, err := repo.FindByUser(ctx, ngo.ID, notification.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	last := all[len(all)-1]
	assert.Equal(t, first.ID, last.ID)
	assert.True(t, last.Read)
	assert.Equal(t, 10.0, last.Meta["amount"])

	updated, err = repo.MarkRead(ctx, ngo.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	count, err = repo.CountUnread(ctx, ngo.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.CountUnread(ctx, donor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
