// Package donation runs the donation lifecycle: creation, status changes,
// rescheduling and the party-scoped read path.
package donation

import (
	"context"
	"fmt"
	"time"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/donorlink/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CompletedFeedLimit caps the public completed-donations feed
const CompletedFeedLimit = 50

// Service handles donation operations
type Service struct {
	donations donation.Repository
	users     account.UserRepository
	notifier  notification.Notifier
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new donation service
func NewService(
	donations donation.Repository,
	users account.UserRepository,
	notifier notification.Notifier,
	logger *zap.Logger,
) *Service {
	if notifier == nil {
		notifier = notification.NopNotifier{}
	}
	return &Service{
		donations: donations,
		users:     users,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Create records a donation from actor to input.NGOID and notifies the NGO
func (s *Service) Create(ctx context.Context, actor uuid.UUID, input donation.NewDonationInput) (_ *donation.Donation, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "donation", "create",
		telemetry.SpanAttrDonorID, actor,
		telemetry.SpanAttrNGOID, input.NGOID,
		telemetry.SpanAttrDonationType, string(input.Type))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	donor, err := s.users.FindByID(ctx, actor)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if donor == nil || !donor.IsDonor() {
		return nil, shared.NewForbiddenError("Only donors can create donations")
	}

	ngo, err := s.users.FindByID(ctx, input.NGOID)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if ngo == nil || !ngo.IsNGO() {
		return nil, shared.NewNotFoundError("NGO not found")
	}

	input.DonorID = donor.ID
	d, err := donation.NewDonation(input)
	if err != nil {
		return nil, err
	}

	if err := s.donations.Create(ctx, d); err != nil {
		s.logger.Error("Failed to create donation", zap.Error(err))
		return nil, err
	}
	d.DonorName = donor.DisplayName()
	d.NGOName = ngo.DisplayName()

	s.logger.Info("Donation created",
		zap.String("donation_id", d.ID.String()),
		zap.String("ngo_id", d.NGOID.String()),
		zap.String("donation_type", string(d.Type)))
	telemetry.SetAttributes(span, telemetry.SpanAttrDonationID, d.ID)
	telemetry.Metrics().DonationCreated(ctx, string(d.Type), d.Currency, d.Amount)

	s.notifier.NotifyNGO(ctx, d.NGOID, receivedPayload(d))
	return d, nil
}

// UpdateStatus moves a donation to status on behalf of one of its parties
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status donation.Status, actor uuid.UUID) (_ *donation.Donation, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "donation", "update_status",
		telemetry.SpanAttrDonationID, id,
		telemetry.SpanAttrDonationStatus, string(status))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.IsParty(actor) {
		return nil, shared.NewForbiddenError("Not authorized to update this donation")
	}
	if err := d.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.donations.Update(ctx, d); err != nil {
		s.logger.Error("Failed to update donation status", zap.String("donation_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Donation status updated",
		zap.String("donation_id", id.String()),
		zap.String("status", string(status)))
	telemetry.Metrics().DonationStatusChanged(ctx, string(status))

	if d.NeedsDeliveryReminder(s.now()) {
		s.notifier.NotifyUser(ctx, d.DonorID, reminderPayload(d))
	}
	return d, nil
}

// RequestAgain reschedules a lapsed delivery. Only the NGO of record may call it.
func (s *Service) RequestAgain(ctx context.Context, id, actor uuid.UUID, newDate *time.Time) (_ *donation.Donation, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "donation", "request_again",
		telemetry.SpanAttrDonationID, id,
		telemetry.SpanAttrNGOID, actor)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.NGOID != actor {
		return nil, shared.NewForbiddenError("Only the receiving NGO can request this donation again")
	}
	if err := d.RequestAgain(s.now(), newDate); err != nil {
		return nil, err
	}
	if err := s.donations.Update(ctx, d); err != nil {
		s.logger.Error("Failed to reschedule donation", zap.String("donation_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Donation requested again",
		zap.String("donation_id", id.String()),
		zap.Time("delivery_date", *d.DeliveryDate))
	telemetry.Metrics().DonationRequestedAgain(ctx, string(d.Type))

	s.notifier.NotifyUser(ctx, d.DonorID, requestAgainPayload(d))
	return d, nil
}

// Get returns a donation to one of its parties
func (s *Service) Get(ctx context.Context, id, actor uuid.UUID) (*donation.Donation, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.IsParty(actor) {
		return nil, shared.NewForbiddenError("Not authorized to view this donation")
	}
	return d, nil
}

// ListByDonor lists a donor's own donations
func (s *Service) ListByDonor(ctx context.Context, donorID, actor uuid.UUID) ([]*donation.Donation, error) {
	if donorID != actor {
		return nil, shared.NewForbiddenError("Not authorized to view these donations")
	}
	return s.donations.FindAll(ctx, donation.Filter{DonorID: &donorID})
}

// ListByNGO lists the donations an NGO received
func (s *Service) ListByNGO(ctx context.Context, ngoID uuid.UUID) ([]*donation.Donation, error) {
	return s.donations.FindAll(ctx, donation.Filter{NGOID: &ngoID})
}

// ListCompleted returns the public feed of the most recent completed donations
func (s *Service) ListCompleted(ctx context.Context) ([]*donation.Donation, error) {
	status := donation.StatusCompleted
	return s.donations.FindAll(ctx, donation.Filter{Status: &status, Limit: CompletedFeedLimit})
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	d, err := s.donations.FindByID(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("Donation not found")
		}
		return nil, err
	}
	return d, nil
}

func describe(d *donation.Donation) string {
	if d.Type.IsMonetary() && d.Amount != nil {
		return fmt.Sprintf("%s %s", decimal.NewFromFloat(*d.Amount).StringFixedBank(2), d.Currency)
	}
	if d.Quantity != nil {
		return fmt.Sprintf("%s %s of %s", decimal.NewFromFloat(*d.Quantity).String(), d.Unit, d.Type)
	}
	return string(d.Type)
}

func meta(d *donation.Donation) map[string]any {
	m := map[string]any{
		"donation_type": string(d.Type),
		"donor_name":    d.PublicDonorName(),
		"status":        string(d.Status),
	}
	if d.Amount != nil {
		m["amount"] = *d.Amount
		m["currency"] = d.Currency
	}
	if d.Quantity != nil {
		m["quantity"] = *d.Quantity
		m["unit"] = d.Unit
	}
	if d.DeliveryDate != nil {
		m["delivery_date"] = d.DeliveryDate.Format(time.RFC3339)
	}
	return m
}

func receivedPayload(d *donation.Donation) notification.Payload {
	id := d.ID
	return notification.Payload{
		Title:       "New donation received",
		Message:     fmt.Sprintf("%s donated %s", d.PublicDonorName(), describe(d)),
		Type:        notification.TypeDonation,
		RelatedID:   &id,
		RelatedType: "donation",
		Meta:        meta(d),
	}
}

func reminderPayload(d *donation.Donation) notification.Payload {
	id := d.ID
	return notification.Payload{
		Title:       "Delivery reminder",
		Message:     fmt.Sprintf("Your donation of %s to %s is due on %s", describe(d), d.NGOName, d.DeliveryDate.Format("2006-01-02")),
		Type:        notification.TypeDonation,
		RelatedID:   &id,
		RelatedType: "donation",
		Meta:        meta(d),
	}
}

func requestAgainPayload(d *donation.Donation) notification.Payload {
	id := d.ID
	return notification.Payload{
		Title:       "Donation requested again",
		Message:     fmt.Sprintf("%s asked for your donation of %s again, now due on %s", d.NGOName, describe(d), d.DeliveryDate.Format("2006-01-02")),
		Type:        notification.TypeDonation,
		RelatedID:   &id,
		RelatedType: "donation",
		Meta:        meta(d),
	}
}
