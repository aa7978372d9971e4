// Package notification delivers best-effort notices and serves the
// notification read path.
package notification

import (
	"context"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/infrastructure/logger"
	"github.com/donorlink/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher persists notifications inline and swallows every failure. A
// primary mutation never fails because its notification did.
type Dispatcher struct {
	notifications notification.Repository
	users         account.UserRepository
	logger        *zap.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(notifications notification.Repository, users account.UserRepository, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		users:         users,
		logger:        logger.Named("notify"),
	}
}

// NotifyUser sends p to any account, looking up its type
func (d *Dispatcher) NotifyUser(ctx context.Context, userID uuid.UUID, p notification.Payload) {
	accountType := ""
	if u, err := d.users.FindByID(ctx, userID); err == nil {
		accountType = string(u.Type)
	} else {
		d.log(ctx).Warn("Notification recipient lookup failed",
			zap.String("recipient", userID.String()), zap.Error(err))
		return
	}
	d.deliver(ctx, userID, accountType, p)
}

// NotifyNGO sends p to an NGO account
func (d *Dispatcher) NotifyNGO(ctx context.Context, ngoID uuid.UUID, p notification.Payload) {
	d.deliver(ctx, ngoID, string(account.UserTypeNGO), p)
}

// NotifyConnectedDonors builds one payload per donor connected to ngoID and
// inserts the non-nil ones as a batch
func (d *Dispatcher) NotifyConnectedDonors(ctx context.Context, ngoID uuid.UUID, build notification.Builder) {
	ngo, err := d.users.FindByID(ctx, ngoID)
	if err != nil {
		d.log(ctx).Warn("Failed to load NGO for donor fan-out",
			zap.String("ngo_id", ngoID.String()), zap.Error(err))
		return
	}

	batch := make([]*notification.Notification, 0, len(ngo.ConnectedDonors))
	for _, donorID := range ngo.ConnectedDonors {
		p := build(donorID)
		if p == nil {
			continue
		}
		n, err := notification.New(donorID, string(account.UserTypeDonor), *p)
		if err != nil {
			d.log(ctx).Warn("Skipping invalid notification", zap.String("recipient", donorID.String()), zap.Error(err))
			continue
		}
		batch = append(batch, n)
	}
	if len(batch) == 0 {
		return
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "notification", "fan_out",
		telemetry.SpanAttrNGOID, ngoID,
		telemetry.SpanAttrNotification, string(batch[0].Type),
		"notification.recipients", len(batch))
	defer span.End()

	if err := d.notifications.CreateBatch(ctx, batch); err != nil {
		telemetry.RecordError(span, err)
		record(ctx, batch, outcomeFailed)
		d.log(ctx).Error("Failed to fan out notifications",
			zap.String("ngo_id", ngoID.String()), zap.Int("recipients", len(batch)), zap.Error(err))
		return
	}
	record(ctx, batch, outcomeStored)
	d.log(ctx).Debug("Notifications fanned out", zap.String("ngo_id", ngoID.String()), zap.Int("recipients", len(batch)))
}

func (d *Dispatcher) deliver(ctx context.Context, userID uuid.UUID, accountType string, p notification.Payload) {
	n, err := notification.New(userID, accountType, p)
	if err != nil {
		d.log(ctx).Warn("Skipping invalid notification", zap.String("recipient", userID.String()), zap.Error(err))
		return
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "notification", "deliver",
		telemetry.SpanAttrRecipientID, userID,
		telemetry.SpanAttrNotification, string(n.Type))
	defer span.End()

	if err := d.notifications.Create(ctx, n); err != nil {
		telemetry.RecordError(span, err)
		record(ctx, []*notification.Notification{n}, outcomeFailed)
		d.log(ctx).Error("Failed to create notification",
			zap.String("recipient", userID.String()),
			zap.String("type", string(n.Type)),
			zap.Error(err))
		return
	}
	record(ctx, []*notification.Notification{n}, outcomeStored)
}

const (
	outcomeStored = "stored"
	outcomeFailed = "failed"
)

func record(ctx context.Context, batch []*notification.Notification, outcome string) {
	for _, n := range batch {
		telemetry.Metrics().NotificationDispatched(ctx, string(n.Type), outcome)
	}
}

// log prefers the request-scoped logger so failures carry the request id
func (d *Dispatcher) log(ctx context.Context) *zap.Logger {
	if l := logger.FromContext(ctx); l.Core().Enabled(zap.ErrorLevel) {
		return l.Named("notify")
	}
	return d.logger
}

var _ notification.Notifier = (*Dispatcher)(nil)
