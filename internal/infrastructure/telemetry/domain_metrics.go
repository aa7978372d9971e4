package telemetry

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// DomainMetrics holds the counters recorded by the application services
type DomainMetrics struct {
	donationsCreated *Counter
	donationAmount   *Histogram
	statusChanges    *Counter
	requestsAgain    *Counter
	requirements     *Counter
	notifications    *Counter
}

// NewDomainMetrics creates the domain instruments on meter
func NewDomainMetrics(meter metric.Meter) (*DomainMetrics, error) {
	var errs []error
	counter := func(name, desc string) *Counter {
		c, err := NewCounter(meter, name, desc)
		errs = append(errs, err)
		return c
	}

	m := &DomainMetrics{
		donationsCreated: counter("donorlink.donations.created", "Donations recorded"),
		statusChanges:    counter("donorlink.donations.status_changes", "Donation status transitions"),
		requestsAgain:    counter("donorlink.donations.requested_again", "Donations repeated through request-again"),
		requirements:     counter("donorlink.requirements.created", "Requirements posted by NGOs"),
		notifications:    counter("donorlink.notifications.dispatched", "Notification dispatch attempts"),
	}
	h, err := NewHistogram(meter, "donorlink.donations.amount", "Money donation amounts", "{currency}", MoneyAmountBuckets...)
	errs = append(errs, err)
	m.donationAmount = h

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

// DonationCreated counts a new donation and records money amounts
func (m *DomainMetrics) DonationCreated(ctx context.Context, donationType, currency string, amount *float64) {
	m.donationsCreated.Inc(ctx, AttrDonationType.String(donationType))
	if amount != nil {
		m.donationAmount.Record(ctx, *amount, AttrCurrency.String(currency))
	}
}

// DonationStatusChanged counts a status transition
func (m *DomainMetrics) DonationStatusChanged(ctx context.Context, status string) {
	m.statusChanges.Inc(ctx, AttrDonationStatus.String(status))
}

// DonationRequestedAgain counts a request-again copy
func (m *DomainMetrics) DonationRequestedAgain(ctx context.Context, donationType string) {
	m.requestsAgain.Inc(ctx, AttrDonationType.String(donationType))
}

// RequirementCreated counts a posted requirement
func (m *DomainMetrics) RequirementCreated(ctx context.Context, priority string) {
	m.requirements.Inc(ctx, AttrPriority.String(priority))
}

// NotificationDispatched counts a dispatch attempt. outcome is "stored" or
// "failed".
func (m *DomainMetrics) NotificationDispatched(ctx context.Context, notificationType, outcome string) {
	m.notifications.Inc(ctx, AttrNotificationType.String(notificationType), AttrOutcome.String(outcome))
}

var defaultMetrics = sync.OnceValue(func() *DomainMetrics {
	m, err := NewDomainMetrics(otel.Meter(TracerName))
	if err != nil {
		otel.Handle(err)
		m, _ = NewDomainMetrics(noop.NewMeterProvider().Meter(TracerName))
	}
	return m
})

// Metrics returns the domain instruments bound to the global meter provider.
// Instruments created before NewMeterProvider runs are forwarded once it
// installs the SDK provider.
func Metrics() *DomainMetrics { return defaultMetrics() }
