package telemetry

import (
	"context"
	"fmt"

	"github.com/storefront/platform/internal/domain/accounting"
	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/domain/shipping"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics turns domain events into OpenTelemetry counters.
type BusinessMetrics struct {
	paymentTransitions metric.Int64Counter
	paymentAmount      metric.Float64Counter
	refunds            metric.Int64Counter
	refundAmount       metric.Float64Counter
	shipments          metric.Int64Counter
	shipmentMoves      metric.Int64Counter
	journalEntries     metric.Int64Counter
}

// NewBusinessMetrics creates the instruments on meter.
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	var (
		m   BusinessMetrics
		err error
	)
	if m.paymentTransitions, err = meter.Int64Counter("payment_transitions_total",
		metric.WithDescription("Payment state machine transitions")); err != nil {
		return nil, fmt.Errorf("payment_transitions_total: %w", err)
	}
	if m.paymentAmount, err = meter.Float64Counter("payment_completed_amount",
		metric.WithDescription("Sum of completed payment amounts")); err != nil {
		return nil, fmt.Errorf("payment_completed_amount: %w", err)
	}
	if m.refunds, err = meter.Int64Counter("refunds_total",
		metric.WithDescription("Refunds booked")); err != nil {
		return nil, fmt.Errorf("refunds_total: %w", err)
	}
	if m.refundAmount, err = meter.Float64Counter("refund_amount",
		metric.WithDescription("Sum of refunded amounts")); err != nil {
		return nil, fmt.Errorf("refund_amount: %w", err)
	}
	if m.shipments, err = meter.Int64Counter("shipments_created_total",
		metric.WithDescription("Shipments booked")); err != nil {
		return nil, fmt.Errorf("shipments_created_total: %w", err)
	}
	if m.shipmentMoves, err = meter.Int64Counter("shipment_transitions_total",
		metric.WithDescription("Shipment status changes")); err != nil {
		return nil, fmt.Errorf("shipment_transitions_total: %w", err)
	}
	if m.journalEntries, err = meter.Int64Counter("journal_entries_total",
		metric.WithDescription("Journal entry lifecycle events")); err != nil {
		return nil, fmt.Errorf("journal_entries_total: %w", err)
	}
	return &m, nil
}

// EventTypes implements shared.EventHandler.
func (m *BusinessMetrics) EventTypes() []string {
	return []string{
		payment.EventTypePaymentStatusChanged,
		payment.EventTypeRefundCreated,
		shipping.EventTypeShipmentCreated,
		shipping.EventTypeShipmentStatusChanged,
		accounting.EventTypeJournalEntryCreated,
		accounting.EventTypeJournalEntryPosted,
		accounting.EventTypeJournalEntryReversed,
	}
}

// Handle implements shared.EventHandler.
func (m *BusinessMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *payment.PaymentStatusChangedEvent:
		attrs := metric.WithAttributes(
			attribute.String("method", string(e.Method)),
			attribute.String("status", string(e.To)),
		)
		m.paymentTransitions.Add(ctx, 1, attrs)
		if e.To == payment.StatusCompleted {
			m.paymentAmount.Add(ctx, e.Amount.InexactFloat64(), metric.WithAttributes(attribute.String("method", string(e.Method))))
		}
	case *payment.RefundCreatedEvent:
		m.refunds.Add(ctx, 1)
		m.refundAmount.Add(ctx, e.Amount.InexactFloat64())
	case *shipping.ShipmentCreatedEvent:
		m.shipments.Add(ctx, 1, metric.WithAttributes(attribute.String("carrier", e.Carrier)))
	case *shipping.ShipmentStatusChangedEvent:
		m.shipmentMoves.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(e.To))))
	default:
		if event.AggregateType() == accounting.AggregateTypeJournalEntry {
			m.journalEntries.Add(ctx, 1, metric.WithAttributes(attribute.String("event", event.EventType())))
		}
	}
	return nil
}

var _ shared.EventHandler = (*BusinessMetrics)(nil)
