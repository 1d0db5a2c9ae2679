package payment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter payment.Filter) ([]payment.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByOrder(ctx context.Context, orderID string) ([]payment.Payment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPendingBefore(ctx context.Context, cutoff time.Time) ([]payment.Payment, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) SummaryByStatus(ctx context.Context) ([]payment.StatusSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]payment.StatusSummary), args.Error(1)
}

func (m *MockPaymentRepository) SummaryByMethod(ctx context.Context) ([]payment.StatusSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]payment.StatusSummary), args.Error(1)
}

// MockRefundRepository is a mock implementation of RefundRepository
type MockRefundRepository struct {
	mock.Mock
}

func (m *MockRefundRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Refund, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindAll(ctx context.Context) ([]payment.Refund, error) {
	args := m.Called(ctx)
	return args.Get(0).([]payment.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]payment.Refund, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).([]payment.Refund), args.Error(1)
}

func (m *MockRefundRepository) Save(ctx context.Context, r *payment.Refund) error {
	return m.Called(ctx, r).Error(0)
}

// MockMethodRepository is a mock implementation of PaymentMethodRepository
type MockMethodRepository struct {
	mock.Mock
}

func (m *MockMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentMethod), args.Error(1)
}

func (m *MockMethodRepository) FindByCustomer(ctx context.Context, customerID string) ([]payment.PaymentMethod, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]payment.PaymentMethod), args.Error(1)
}

func (m *MockMethodRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMethodRepository) ClearDefault(ctx context.Context, customerID string) error {
	return m.Called(ctx, customerID).Error(0)
}

func (m *MockMethodRepository) Save(ctx context.Context, pm *payment.PaymentMethod) error {
	return m.Called(ctx, pm).Error(0)
}

func (m *MockMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockGateway is a mock payment processor
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Name() string { return "mock" }

func (m *MockGateway) Authorize(ctx context.Context, req payment.GatewayRequest) (payment.GatewayResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.GatewayResult), args.Error(1)
}

func (m *MockGateway) Capture(ctx context.Context, req payment.GatewayRequest) (payment.GatewayResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.GatewayResult), args.Error(1)
}

// memoryIdempotency is an in-process idempotency store
type memoryIdempotency struct {
	mu       sync.Mutex
	keys     map[string]struct{}
	released []string
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{keys: make(map[string]struct{})}
}

func (s *memoryIdempotency) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = struct{}{}
	return true, nil
}

func (s *memoryIdempotency) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok, nil
}

func (s *memoryIdempotency) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	s.released = append(s.released, key)
	return nil
}

func (s *memoryIdempotency) Close() error { return nil }

// stubScope runs the unit of work directly against the mocks
type stubScope struct {
	payments *MockPaymentRepository
	refunds  *MockRefundRepository
	methods  *MockMethodRepository
}

func (s *stubScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *stubScope) Payments() payment.PaymentRepository { return s.payments }
func (s *stubScope) Refunds() payment.RefundRepository { return s.refunds }
func (s *stubScope) Methods() payment.PaymentMethodRepository { return s.methods }

// recordingPublisher captures published events
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
