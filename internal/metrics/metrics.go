package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type Metrics struct {
	adminLogins        metric.Int64Counter
	contactsSubmitted  metric.Int64Counter
	contactsListViewed metric.Int64Counter
	contactsDeleted    metric.Int64Counter
	contactsMarkedRead metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.adminLogins, err = meter.Int64Counter(
		"contact_service.admin.logins",
		metric.WithDescription("Total number of successful admin logins"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	m.contactsSubmitted, err = meter.Int64Counter(
		"contact_service.contacts.submitted",
		metric.WithDescription("Total number of contact messages submitted"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	m.contactsListViewed, err = meter.Int64Counter(
		"contact_service.contacts.list_viewed",
		metric.WithDescription("Total number of times the contact list was viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.contactsDeleted, err = meter.Int64Counter(
		"contact_service.contacts.deleted",
		metric.WithDescription("Total number of contact messages deleted"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	m.contactsMarkedRead, err = meter.Int64Counter(
		"contact_service.contacts.marked_read",
		metric.WithDescription("Total number of contact messages marked as read"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// NewMock returns metrics backed by a noop meter, for tests.
func NewMock() *Metrics {
	m, _ := New(noop.NewMeterProvider().Meter("test"))
	return m
}

func (m *Metrics) RecordAdminLogin(ctx context.Context) {
	m.adminLogins.Add(ctx, 1)
}

func (m *Metrics) RecordContactSubmitted(ctx context.Context) {
	m.contactsSubmitted.Add(ctx, 1)
}

func (m *Metrics) RecordContactsListViewed(ctx context.Context) {
	m.contactsListViewed.Add(ctx, 1)
}

func (m *Metrics) RecordContactDeleted(ctx context.Context) {
	m.contactsDeleted.Add(ctx, 1)
}

func (m *Metrics) RecordContactMarkedRead(ctx context.Context) {
	m.contactsMarkedRead.Add(ctx, 1)
}
