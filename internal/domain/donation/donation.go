package donation

import (
	"strings"
	"time"

	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Type is the kind of donation being made
type Type string

const (
	TypeMoney           Type = "money"
	TypeFood            Type = "food"
	TypeDailyEssentials Type = "daily_essentials"
	TypeServices        Type = "services"

	// typeEssentialsAlias is accepted on input and stored as TypeDailyEssentials
	typeEssentialsAlias Type = "essentials"
)

// NormalizeType maps legacy aliases onto the stored type tag
func NormalizeType(t Type) Type {
	t = Type(strings.ToLower(strings.TrimSpace(string(t))))
	if t == typeEssentialsAlias {
		return TypeDailyEssentials
	}
	return t
}

// IsValid reports whether t is a known stored type
func (t Type) IsValid() bool {
	switch t {
	case TypeMoney, TypeFood, TypeDailyEssentials, TypeServices:
		return true
	}
	return false
}

// IsMonetary reports whether the donation follows the amount path
func (t Type) IsMonetary() bool {
	return t == TypeMoney
}

// Status is a donation lifecycle state
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// AllStatuses lists every valid status
var AllStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusFailed, StatusCancelled}

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further delivery can happen in this state
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

const (
	// AnonymousDonorName replaces the donor name on anonymous donations
	AnonymousDonorName = "Anonymous"

	// DefaultRescheduleDelay is used by RequestAgain when no date is supplied
	DefaultRescheduleDelay = 7 * 24 * time.Hour
)

// Donation is a donor's gift to an NGO.
//
// Money donations carry Amount/Currency/PaymentMethod/TransactionID; every
// other type carries Quantity/Unit/EssentialType. Exactly one path is set.
type Donation struct {
	shared.BaseEntity
	DonorID       uuid.UUID
	NGOID         uuid.UUID
	Type          Type
	Amount        *float64
	Currency      string
	PaymentMethod string
	TransactionID string
	Quantity      *float64
	Unit          string
	EssentialType string
	Message       string
	Anonymous     bool
	DeliveryDate  *time.Time
	Status        Status

	// Read-side enrichment filled in by the persistence layer
	DonorName string
	NGOName   string
}

// NewDonationInput carries the caller-supplied fields of a donation
type NewDonationInput struct {
	DonorID       uuid.UUID
	NGOID         uuid.UUID
	Type          Type
	Amount        *float64
	Currency      string
	PaymentMethod string
	TransactionID string
	Quantity      *float64
	Unit          string
	EssentialType string
	Message       string
	Anonymous     bool
	DeliveryDate  *time.Time
	Status        Status
}

// NewDonation validates input and builds a donation with exactly one
// populated value path.
func NewDonation(in NewDonationInput) (*Donation, error) {
	if in.DonorID == uuid.Nil {
		return nil, shared.NewValidationError("donor_id is required")
	}
	if in.NGOID == uuid.Nil {
		return nil, shared.NewValidationError("ngo_id is required")
	}

	t := NormalizeType(in.Type)
	if t == "" {
		t = TypeMoney
	}
	if !t.IsValid() {
		return nil, shared.NewValidationError("Invalid donation_type")
	}

	d := &Donation{
		BaseEntity: shared.NewBaseEntity(),
		DonorID:    in.DonorID,
		NGOID:      in.NGOID,
		Type:       t,
		Message:    strings.TrimSpace(in.Message),
		Anonymous:  in.Anonymous,
		Status:     StatusPending,
	}

	if t.IsMonetary() {
		if in.Amount == nil || *in.Amount <= 0 {
			return nil, shared.NewValidationError("Amount must be greater than 0 for money donations")
		}
		amount := *in.Amount
		d.Amount = &amount
		d.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
		if d.Currency == "" {
			d.Currency = "INR"
		}
		d.PaymentMethod = in.PaymentMethod
		d.TransactionID = in.TransactionID
		if in.Status != "" {
			if !in.Status.IsValid() {
				return nil, shared.NewValidationError("Invalid status")
			}
			d.Status = in.Status
		}
	} else {
		if in.Quantity == nil || *in.Quantity <= 0 {
			return nil, shared.NewValidationError("Quantity must be greater than 0 for in-kind donations")
		}
		unit := strings.TrimSpace(in.Unit)
		if unit == "" {
			return nil, shared.NewValidationError("Unit is required for in-kind donations")
		}
		if in.DeliveryDate == nil || in.DeliveryDate.IsZero() {
			return nil, shared.NewValidationError("delivery_date is required for in-kind donations")
		}
		qty := *in.Quantity
		d.Quantity = &qty
		d.Unit = unit
		d.EssentialType = in.EssentialType
	}

	if in.DeliveryDate != nil && !in.DeliveryDate.IsZero() {
		dd := in.DeliveryDate.UTC()
		d.DeliveryDate = &dd
	}

	return d, nil
}

// IsParty reports whether actor is the donor or the NGO of record
func (d *Donation) IsParty(actor uuid.UUID) bool {
	return actor == d.DonorID || actor == d.NGOID
}

// SetStatus moves the donation to status. There is no transition table:
// any valid status may follow any other.
func (d *Donation) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("Invalid status. Must be one of: pending, confirmed, completed, failed, cancelled")
	}
	d.Status = status
	d.Touch()
	return nil
}

// NeedsDeliveryReminder reports whether a confirmed donation's delivery falls
// one to two calendar days after now.
func (d *Donation) NeedsDeliveryReminder(now time.Time) bool {
	if d.Status != StatusConfirmed || d.DeliveryDate == nil {
		return false
	}
	days := calendarDaysBetween(now, *d.DeliveryDate)
	return days >= 1 && days <= 2
}

// RequestAgain reschedules a lapsed delivery and resets the donation to
// pending. newDate defaults to now plus DefaultRescheduleDelay.
func (d *Donation) RequestAgain(now time.Time, newDate *time.Time) error {
	if d.Status.IsTerminal() {
		return shared.NewValidationError("Cannot request again for a " + string(d.Status) + " donation")
	}
	if d.DeliveryDate == nil {
		return shared.NewValidationError("Donation has no delivery date to reschedule")
	}
	if !d.DeliveryDate.Before(now) {
		return shared.NewValidationError("Delivery date has not passed yet")
	}

	next := now.Add(DefaultRescheduleDelay)
	if newDate != nil && !newDate.IsZero() {
		next = *newDate
	}
	if !next.After(now) {
		return shared.NewValidationError("New delivery date must be in the future")
	}

	next = next.UTC()
	d.DeliveryDate = &next
	d.Status = StatusPending
	d.Touch()
	return nil
}

// PublicDonorName is the donor name shown to readers
func (d *Donation) PublicDonorName() string {
	if d.Anonymous {
		return AnonymousDonorName
	}
	return d.DonorName
}

func calendarDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.UTC().Date()
	ty, tm, td := to.UTC().Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
