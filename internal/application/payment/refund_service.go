package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// RefundService books refunds against completed payments
type RefundService struct {
	refundRepo payment.RefundRepository
	txScope    TransactionScope
	events     shared.EventPublisher
	logger     *zap.Logger
}

// NewRefundService creates a new RefundService
func NewRefundService(refundRepo payment.RefundRepository, txScope TransactionScope, events shared.EventPublisher, logger *zap.Logger) *RefundService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RefundService{refundRepo: refundRepo, txScope: txScope, events: events, logger: logger}
}

// Create refunds part or all of a completed payment. The payment's refunded
// amount and the refund row are written in one transaction.
func (s *RefundService) Create(ctx context.Context, req CreateRefundRequest) (*RefundResponse, error) {
	var (
		p      *payment.Payment
		refund *payment.Refund
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		p, err = repos.Payments().FindByID(ctx, req.PaymentID)
		if err != nil {
			return err
		}
		refund, err = payment.NewRefund(p, req.Amount, req.Reason)
		if err != nil {
			return err
		}
		if err := repos.Payments().Save(ctx, p); err != nil {
			return err
		}
		return repos.Refunds().Save(ctx, refund)
	})
	if err != nil {
		logger.With(ctx, s.logger).Warn("Refund rejected",
			zap.String("payment_id", req.PaymentID.String()),
			zap.String("kind", string(shared.KindOf(err))),
			zap.Error(err))
		return nil, err
	}

	publish(ctx, s.events, s.logger, p)
	publish(ctx, s.events, s.logger, refund)
	resp := ToRefundResponse(refund)
	return &resp, nil
}

// GetByID returns a refund
func (s *RefundService) GetByID(ctx context.Context, id uuid.UUID) (*RefundResponse, error) {
	r, err := s.refundRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRefundResponse(r)
	return &resp, nil
}

// List returns every refund
func (s *RefundService) List(ctx context.Context) ([]RefundResponse, error) {
	refunds, err := s.refundRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toRefundResponses(refunds), nil
}

// ListByPayment returns refunds booked against a payment
func (s *RefundService) ListByPayment(ctx context.Context, paymentID uuid.UUID) ([]RefundResponse, error) {
	refunds, err := s.refundRepo.FindByPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return toRefundResponses(refunds), nil
}
