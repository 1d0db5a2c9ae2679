package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ExpiredReason is recorded on pending payments failed by the expiry job
const ExpiredReason = "expired"

// PaymentServiceConfig holds the collaborators of the payment service
type PaymentServiceConfig struct {
	PaymentRepo    payment.PaymentRepository
	Gateway        payment.Gateway
	Idempotency    shared.IdempotencyStore
	IdempotencyTTL time.Duration
	Events         shared.EventPublisher
	Logger         *zap.Logger
}

// PaymentService creates payments and drives them through the state machine
type PaymentService struct {
	paymentRepo    payment.PaymentRepository
	gateway        payment.Gateway
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	events         shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(cfg PaymentServiceConfig) *PaymentService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &PaymentService{
		paymentRepo:    cfg.PaymentRepo,
		gateway:        cfg.Gateway,
		idempotency:    cfg.Idempotency,
		idempotencyTTL: ttl,
		events:         cfg.Events,
		logger:         logger,
		now:            time.Now,
	}
}

// Create opens a pending payment
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	p, err := payment.NewPayment(req.OrderID, req.CustomerID, req.Amount, req.Currency, payment.Method(req.Method))
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, p); err != nil {
		logger.With(ctx, s.logger).Error("Failed to create payment", zap.String("order_id", req.OrderID), zap.String("kind", string(shared.KindOf(err))), zap.Error(err))
		return nil, err
	}
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// GetByID returns a payment
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// List returns payments matching the filter
func (s *PaymentService) List(ctx context.Context, filter payment.Filter) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(payments), nil
}

// ListByOrder returns every payment attempt for an order
func (s *PaymentService) ListByOrder(ctx context.Context, orderID string) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(payments), nil
}

// Stats aggregates counts and amounts by status and by method
func (s *PaymentService) Stats(ctx context.Context) (*StatsResponse, error) {
	byStatus, err := s.paymentRepo.SummaryByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byMethod, err := s.paymentRepo.SummaryByMethod(ctx)
	if err != nil {
		return nil, err
	}
	stats := &StatsResponse{
		TotalAmount: decimal.Zero,
		ByStatus:    toSummaryLines(byStatus),
		ByMethod:    toSummaryLines(byMethod),
	}
	for _, line := range byStatus {
		stats.TotalCount += line.Count
		stats.TotalAmount = stats.TotalAmount.Add(line.Amount)
	}
	return stats, nil
}

func toSummaryLines(in []payment.StatusSummary) []SummaryLine {
	out := make([]SummaryLine, 0, len(in))
	for _, l := range in {
		out = append(out, SummaryLine{Key: l.Key, Count: l.Count, Amount: l.Amount})
	}
	return out
}

// Process authorizes and captures a pending payment through the gateway.
// A non-empty idempotency key makes retries return the stored payment
// instead of charging again. Declines move the payment to failed; gateway
// transport errors leave it pending.
func (s *PaymentService) Process(ctx context.Context, id uuid.UUID, idempotencyKey string) (*PaymentResponse, error) {
	if idempotencyKey != "" && s.idempotency != nil {
		key := fmt.Sprintf("payment:process:%s:%s", id, idempotencyKey)
		fresh, err := s.idempotency.MarkProcessed(ctx, key, s.idempotencyTTL)
		if err != nil {
			return nil, shared.NewUpstreamError("idempotency store unavailable", err)
		}
		if !fresh {
			logger.With(ctx, s.logger).Info("Replayed payment processing request", zap.String("payment_id", id.String()))
			return s.GetByID(ctx, id)
		}
		resp, err := s.process(ctx, id)
		if err != nil {
			if relErr := s.idempotency.Release(ctx, key); relErr != nil {
				logger.With(ctx, s.logger).Warn("Failed to release idempotency key", zap.String("key", key), zap.Error(relErr))
			}
			return nil, err
		}
		return resp, nil
	}
	return s.process(ctx, id)
}

func (s *PaymentService) process(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.EnsureProcessable(); err != nil {
		return nil, err
	}

	req := payment.GatewayRequest{
		PaymentID:     p.ID.String(),
		TransactionID: p.TransactionID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        p.Method,
	}

	auth, err := s.gateway.Authorize(ctx, req)
	if err != nil {
		logger.With(ctx, s.logger).Error("Gateway authorization failed",
			zap.String("gateway", s.gateway.Name()),
			zap.String("payment_id", p.ID.String()),
			zap.Error(err))
		return nil, upstream(err)
	}
	if !auth.Approved {
		if err := p.Fail(auth.Reason); err != nil {
			return nil, err
		}
		return s.save(ctx, p)
	}
	if err := p.Authorize(auth.Reference); err != nil {
		return nil, err
	}

	req.Reference = auth.Reference
	capture, err := s.gateway.Capture(ctx, req)
	if err != nil {
		// Persist the authorization so a later callback can settle it.
		logger.With(ctx, s.logger).Error("Gateway capture failed",
			zap.String("gateway", s.gateway.Name()),
			zap.String("payment_id", p.ID.String()),
			zap.Error(err))
		if _, saveErr := s.save(ctx, p); saveErr != nil {
			return nil, saveErr
		}
		return nil, upstream(err)
	}
	if !capture.Approved {
		if err := p.Fail(capture.Reason); err != nil {
			return nil, err
		}
		return s.save(ctx, p)
	}
	if err := p.Capture(); err != nil {
		return nil, err
	}
	return s.save(ctx, p)
}

// HandleCallback applies an asynchronous processor notification. The state
// machine decides whether the transition is legal.
func (s *PaymentService) HandleCallback(ctx context.Context, id uuid.UUID, req CallbackRequest) (*PaymentResponse, error) {
	event := payment.CallbackEvent(req.Event)
	if !event.IsValid() {
		return nil, shared.NewValidationError("INVALID_EVENT", "Callback event must be authorized, captured or failed")
	}
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch event {
	case payment.CallbackAuthorized:
		err = p.Authorize(req.Reference)
	case payment.CallbackCaptured:
		err = p.Capture()
	case payment.CallbackFailed:
		err = p.Fail(req.Reason)
	}
	if err != nil {
		return nil, err
	}
	return s.save(ctx, p)
}

// ExpirePending fails pending payments created before cutoff and returns
// how many were expired. One failing row does not stop the sweep.
func (s *PaymentService) ExpirePending(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := s.now().Add(-olderThan)
	pending, err := s.paymentRepo.FindPendingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	expired := 0
	for i := range pending {
		p := &pending[i]
		if err := p.Fail(ExpiredReason); err != nil {
			continue
		}
		if _, err := s.save(ctx, p); err != nil {
			logger.With(ctx, s.logger).Warn("Failed to expire payment", zap.String("payment_id", p.ID.String()), zap.Error(err))
			continue
		}
		expired++
	}
	if expired > 0 {
		logger.With(ctx, s.logger).Info("Expired pending payments", zap.Int("count", expired), zap.Time("cutoff", cutoff))
	}
	return expired, nil
}

func (s *PaymentService) save(ctx context.Context, p *payment.Payment) (*PaymentResponse, error) {
	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.logger, p)
	resp := ToPaymentResponse(p)
	return &resp, nil
}

func upstream(err error) error {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	return shared.NewUpstreamError("payment gateway unavailable", err)
}

func publish(ctx context.Context, events shared.EventPublisher, log *zap.Logger, src shared.EventSource) {
	pending := src.GetDomainEvents()
	src.ClearDomainEvents()
	if events == nil || len(pending) == 0 {
		return
	}
	if err := events.Publish(ctx, pending...); err != nil {
		logger.With(ctx, log).Warn("Failed to publish payment events", zap.Error(err))
	}
}
