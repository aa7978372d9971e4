package donation

import (
	"testing"
	"time"

	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func moneyInput(amount float64) NewDonationInput {
	return NewDonationInput{
		DonorID: uuid.New(),
		NGOID:   uuid.New(),
		Type:    TypeMoney,
		Amount:  ptr(amount),
	}
}

func inKindInput(t Type, qty float64, unit string) NewDonationInput {
	return NewDonationInput{
		DonorID:      uuid.New(),
		NGOID:        uuid.New(),
		Type:         t,
		Quantity:     ptr(qty),
		Unit:         unit,
		DeliveryDate: ptr(time.Now().Add(72 * time.Hour)),
	}
}

func TestNewDonation(t *testing.T) {
	t.Run("creates money donation at pending", func(t *testing.T) {
		d, err := NewDonation(moneyInput(100))

		require.NoError(t, err)
		assert.Equal(t, TypeMoney, d.Type)
		assert.Equal(t, StatusPending, d.Status)
		require.NotNil(t, d.Amount)
		assert.Equal(t, 100.0, *d.Amount)
		assert.Equal(t, "INR", d.Currency)
		assert.Nil(t, d.Quantity)
		assert.Empty(t, d.Unit)
		assert.NotEqual(t, uuid.Nil, d.ID)
	})

	t.Run("money donation keeps an explicit valid status", func(t *testing.T) {
		in := moneyInput(10)
		in.Status = StatusCompleted

		d, err := NewDonation(in)

		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, d.Status)
	})

	t.Run("money donation rejects an unknown status", func(t *testing.T) {
		in := moneyInput(10)
		in.Status = Status("shipped")

		_, err := NewDonation(in)

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("money donation drops in-kind fields", func(t *testing.T) {
		in := moneyInput(50)
		in.Quantity = ptr(3.0)
		in.Unit = "kg"
		in.EssentialType = "rice"

		d, err := NewDonation(in)

		require.NoError(t, err)
		assert.Nil(t, d.Quantity)
		assert.Empty(t, d.Unit)
		assert.Empty(t, d.EssentialType)
	})

	t.Run("in-kind donation drops money fields", func(t *testing.T) {
		in := inKindInput(TypeFood, 5, "kg")
		in.Amount = ptr(99.0)
		in.PaymentMethod = "upi"

		d, err := NewDonation(in)

		require.NoError(t, err)
		assert.Nil(t, d.Amount)
		assert.Empty(t, d.PaymentMethod)
		require.NotNil(t, d.Quantity)
		assert.Equal(t, 5.0, *d.Quantity)
		assert.Equal(t, "kg", d.Unit)
		assert.Equal(t, StatusPending, d.Status)
	})

	t.Run("in-kind donation ignores caller status", func(t *testing.T) {
		in := inKindInput(TypeServices, 1, "hours")
		in.Status = StatusCompleted

		d, err := NewDonation(in)

		require.NoError(t, err)
		assert.Equal(t, StatusPending, d.Status)
	})

	t.Run("normalizes the essentials alias", func(t *testing.T) {
		d, err := NewDonation(inKindInput(Type("essentials"), 2, "boxes"))

		require.NoError(t, err)
		assert.Equal(t, TypeDailyEssentials, d.Type)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewDonation(inKindInput(Type("crypto"), 1, "coin"))

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("requires delivery date for in-kind donations", func(t *testing.T) {
		in := inKindInput(TypeFood, 1, "kg")
		in.DeliveryDate = nil

		_, err := NewDonation(in)

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Contains(t, err.Error(), "delivery_date")
	})

	t.Run("requires parties", func(t *testing.T) {
		in := moneyInput(1)
		in.NGOID = uuid.Nil

		_, err := NewDonation(in)

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestNewDonation_AmountAndQuantityBounds(t *testing.T) {
	for _, amount := range []float64{0, -1, -0.01} {
		_, err := NewDonation(moneyInput(amount))
		assert.ErrorIs(t, err, shared.ErrInvalidInput, "amount %v", amount)
	}

	in := moneyInput(1)
	in.Amount = nil
	_, err := NewDonation(in)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	for _, typ := range []Type{TypeFood, TypeDailyEssentials, TypeServices} {
		for _, qty := range []float64{0, -3} {
			_, err := NewDonation(inKindInput(typ, qty, "kg"))
			assert.ErrorIs(t, err, shared.ErrInvalidInput, "%s qty %v", typ, qty)
		}
		_, err := NewDonation(inKindInput(typ, 1, "  "))
		assert.ErrorIs(t, err, shared.ErrInvalidInput, "%s missing unit", typ)
	}
}

func TestNewDonation_ExactlyOnePath(t *testing.T) {
	inputs := []NewDonationInput{
		moneyInput(25),
		inKindInput(TypeFood, 3, "kg"),
		inKindInput(TypeDailyEssentials, 1, "box"),
		inKindInput(TypeServices, 4, "hours"),
	}
	for _, in := range inputs {
		in.Amount = ptr(10.0)
		in.Quantity = ptr(2.0)
		in.Unit = "unit"
		in.DeliveryDate = ptr(time.Now().Add(24 * time.Hour))

		d, err := NewDonation(in)
		require.NoError(t, err)

		amountPath := d.Amount != nil
		quantityPath := d.Quantity != nil && d.Unit != ""
		assert.NotEqual(t, amountPath, quantityPath, "type %s", d.Type)
		assert.Equal(t, d.Type.IsMonetary(), amountPath)
	}
}

func TestDonation_SetStatus(t *testing.T) {
	d, err := NewDonation(moneyInput(10))
	require.NoError(t, err)

	for _, s := range AllStatuses {
		require.NoError(t, d.SetStatus(s))
		assert.Equal(t, s, d.Status)
	}

	// completed may move back to pending
	require.NoError(t, d.SetStatus(StatusCompleted))
	require.NoError(t, d.SetStatus(StatusPending))

	err = d.SetStatus(Status("lost"))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Equal(t, StatusPending, d.Status)
}

func TestDonation_NeedsDeliveryReminder(t *testing.T) {
	now := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		status   Status
		delivery *time.Time
		want     bool
	}{
		{"tomorrow", StatusConfirmed, ptr(now.Add(3 * time.Hour)), true},
		{"two days out", StatusConfirmed, ptr(time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)), true},
		{"three days out", StatusConfirmed, ptr(time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)), false},
		{"same day", StatusConfirmed, ptr(now.Add(time.Hour)), false},
		{"past", StatusConfirmed, ptr(now.Add(-48 * time.Hour)), false},
		{"no date", StatusConfirmed, nil, false},
		{"not confirmed", StatusPending, ptr(now.Add(24 * time.Hour)), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &Donation{Status: tc.status, DeliveryDate: tc.delivery}
			assert.Equal(t, tc.want, d.NeedsDeliveryReminder(now))
		})
	}
}

func TestDonation_RequestAgain(t *testing.T) {
	now := time.Now().UTC()

	t.Run("reschedules a lapsed delivery", func(t *testing.T) {
		d := &Donation{Status: StatusConfirmed, DeliveryDate: ptr(now.Add(-time.Hour))}

		require.NoError(t, d.RequestAgain(now, nil))

		assert.Equal(t, StatusPending, d.Status)
		assert.WithinDuration(t, now.Add(DefaultRescheduleDelay), *d.DeliveryDate, time.Second)
	})

	t.Run("uses explicit new date", func(t *testing.T) {
		next := now.Add(48 * time.Hour)
		d := &Donation{Status: StatusFailed, DeliveryDate: ptr(now.Add(-24 * time.Hour))}

		require.NoError(t, d.RequestAgain(now, &next))

		assert.Equal(t, StatusPending, d.Status)
		assert.True(t, next.Equal(*d.DeliveryDate))
	})

	t.Run("rejects future delivery date", func(t *testing.T) {
		d := &Donation{Status: StatusPending, DeliveryDate: ptr(now.Add(time.Hour))}

		err := d.RequestAgain(now, nil)

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Equal(t, StatusPending, d.Status)
	})

	t.Run("rejects delivery date equal to now", func(t *testing.T) {
		d := &Donation{Status: StatusPending, DeliveryDate: ptr(now)}

		assert.ErrorIs(t, d.RequestAgain(now, nil), shared.ErrInvalidInput)
	})

	t.Run("rejects terminal statuses", func(t *testing.T) {
		for _, s := range []Status{StatusCompleted, StatusCancelled} {
			d := &Donation{Status: s, DeliveryDate: ptr(now.Add(-time.Hour))}
			assert.ErrorIs(t, d.RequestAgain(now, nil), shared.ErrInvalidInput, string(s))
			assert.Equal(t, s, d.Status)
		}
	})

	t.Run("rejects missing delivery date", func(t *testing.T) {
		d := &Donation{Status: StatusConfirmed}

		assert.ErrorIs(t, d.RequestAgain(now, nil), shared.ErrInvalidInput)
	})

	t.Run("rejects past new date", func(t *testing.T) {
		d := &Donation{Status: StatusConfirmed, DeliveryDate: ptr(now.Add(-time.Hour))}

		err := d.RequestAgain(now, ptr(now.Add(-time.Minute)))

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Contains(t, err.Error(), "future")
	})
}

func TestDonation_PublicDonorName(t *testing.T) {
	d := &Donation{DonorName: "Asha"}
	assert.Equal(t, "Asha", d.PublicDonorName())

	d.Anonymous = true
	assert.Equal(t, AnonymousDonorName, d.PublicDonorName())
}

func TestFilter_Matches(t *testing.T) {
	donor, ngo := uuid.New(), uuid.New()
	d := &Donation{DonorID: donor, NGOID: ngo, Status: StatusCompleted}

	assert.True(t, Filter{}.Matches(d))
	assert.True(t, Filter{DonorID: &donor, Status: ptr(StatusCompleted)}.Matches(d))
	assert.False(t, Filter{NGOID: ptr(uuid.New())}.Matches(d))
	assert.False(t, Filter{Status: ptr(StatusPending)}.Matches(d))
}
