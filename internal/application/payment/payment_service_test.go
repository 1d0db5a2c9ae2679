package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	svc     *PaymentService
	repo    *MockPaymentRepository
	gateway *MockGateway
	idem    *memoryIdempotency
	events  *recordingPublisher
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		repo:    new(MockPaymentRepository),
		gateway: new(MockGateway),
		idem:    newMemoryIdempotency(),
		events:  &recordingPublisher{},
	}
	f.svc = NewPaymentService(PaymentServiceConfig{
		PaymentRepo: f.repo,
		Gateway:     f.gateway,
		Idempotency: f.idem,
		Events:      f.events,
	})
	return f
}

func pendingPayment(t *testing.T) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment("ORD-1", "CUST-1", decimal.NewFromInt(1000), "", payment.MethodUPI)
	require.NoError(t, err)
	return p
}

func completedPayment(t *testing.T) *payment.Payment {
	t.Helper()
	p := pendingPayment(t)
	require.NoError(t, p.Authorize("AUTH-1"))
	require.NoError(t, p.Capture())
	p.ClearDomainEvents()
	return p
}

func TestPaymentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a pending payment in the default currency", func(t *testing.T) {
		f := newPaymentFixture()
		f.repo.On("Save", ctx, mock.AnythingOfType("*payment.Payment")).Return(nil)

		resp, err := f.svc.Create(ctx, CreatePaymentRequest{
			OrderID: "ORD-1", CustomerID: "CUST-1", Amount: decimal.NewFromInt(250), Method: "card",
		})
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "INR", resp.Currency)
		assert.Regexp(t, `^TXN-[0-9A-F]{16}$`, resp.TransactionID)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		f := newPaymentFixture()
		_, err := f.svc.Create(ctx, CreatePaymentRequest{
			OrderID: "ORD-1", CustomerID: "CUST-1", Amount: decimal.NewFromInt(250), Method: "cheque",
		})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_Process(t *testing.T) {
	ctx := context.Background()
	approved := payment.GatewayResult{Approved: true, Reference: "GW-123"}

	t.Run("authorizes and captures", func(t *testing.T) {
		f := newPaymentFixture()
		p := pendingPayment(t)
		f.repo.On("FindByID", ctx, p.ID).Return(p, nil)
		f.gateway.On("Authorize", ctx, mock.Anything).Return(approved, nil)
		f.gateway.On("Capture", ctx, mock.MatchedBy(func(r payment.GatewayRequest) bool {
			return r.Reference == "GW-123"
		})).Return(approved, nil)
		f.repo.On("Save", ctx, p).Return(nil)

		resp, err := f.svc.Process(ctx, p.ID, "")
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, "GW-123", resp.GatewayReference)
		assert.NotNil(t, resp.ProcessedAt)
		assert.Len(t, f.events.events, 2)
	})

	t.Run("decline fails the payment", func(t *testing.T) {
		f := newPaymentFixture()
		p := pendingPayment(t)
		f.repo.On("FindByID", ctx, p.ID).Return(p, nil)
		f.gateway.On("Authorize", ctx, mock.Anything).
			Return(payment.GatewayResult{Approved: false, Reason: "insufficient funds"}, nil)
		f.repo.On("Save", ctx, p).Return(nil)

		resp, err := f.svc.Process(ctx, p.ID, "")
		require.NoError(t, err)
		assert.Equal(t, "failed", resp.Status)
		assert.Equal(t, "insufficient funds", resp.FailureReason)
		f.gateway.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
	})

	t.Run("gateway outage leaves payment pending", func(t *testing.T) {
		f := newPaymentFixture()
		p := pendingPayment(t)
		f.repo.On("FindByID", ctx, p.ID).Return(p, nil)
		f.gateway.On("Authorize", ctx, mock.Anything).Return(payment.GatewayResult{}, errors.New("connection refused"))

		_, err := f.svc.Process(ctx, p.ID, "")
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindUpstream))
		assert.Equal(t, payment.StatusPending, p.Status)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("non-pending payment is rejected", func(t *testing.T) {
		f := newPaymentFixture()
		p := completedPayment(t)
		f.repo.On("FindByID", ctx, p.ID).Return(p, nil)

		_, err := f.svc.Process(ctx, p.ID, "")
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindInvalidState))
		f.gateway.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything)
	})

	t.Run("replayed key does not charge twice", func(t *testing.T) {
		f := newPaymentFixture()
		p := pendingPayment(t)
		f.repo.On("FindByID", ctx, p.ID).Return(p, nil)
		f.gateway.On("Authorize", ctx, mock.Anything).Return(approved, nil).Once()
		f.gateway.On("Capture", ctx, mock.Anything).Return(approved, nil).Once()
		f.repo.On("Save", ctx, p).Return(nil)

		first, err := f.svc.Process(ctx, p.ID, "key-1")
		require.NoError(t, err)
		second, err := f.svc.Process(ctx, p.ID, "key-1")
		require.NoError(t, err)

		assert.Equal(t, first.Status, second.Status)
		f.gateway.AssertNumberOfCalls(t, "Authorize", 1)
	})

	t.Run("failed attempt releases its key", func(t *testing.T) {
		f := newPaymentFixture()
		p := pendingPayment(t)
		f.repo.On("FindByID", ctx, p.ID).Return(p, nil)
		f.gateway.On("Authorize", ctx, mock.Anything).Return(payment.GatewayResult{}, errors.New("timeout"))

		_, err := f.svc.Process(ctx, p.ID, "key-2")
		require.Error(t, err)
		require.Len(t, f.idem.released, 1)
		assert.Contains(t, f.idem.released[0], "key-2")
	})
}

func TestPaymentService_HandleCallback(t *testing.T) {
	ctx := context.Background()

	t.Run("authorized then captured", func(t *testing.T) {
		f := newPaymentFixture()
		p := pendingPayment(t)
		f.repo.On("FindByID", ctx, p.ID).Return(p, nil)
		f.repo.On("Save", ctx, p).Return(nil)

		resp, err := f.svc.HandleCallback(ctx, p.ID, CallbackRequest{Event: "authorized", Reference: "CB-1"})
		require.NoError(t, err)
		assert.Equal(t, "authorized", resp.Status)

		resp, err = f.svc.HandleCallback(ctx, p.ID, CallbackRequest{Event: "captured"})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("illegal transition", func(t *testing.T) {
		f := newPaymentFixture()
		p := pendingPayment(t)
		f.repo.On("FindByID", ctx, p.ID).Return(p, nil)

		_, err := f.svc.HandleCallback(ctx, p.ID, CallbackRequest{Event: "captured"})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindInvalidState))
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newPaymentFixture()
		_, err := f.svc.HandleCallback(ctx, pendingPayment(t).ID, CallbackRequest{Event: "disputed"})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
	})
}

func TestPaymentService_Stats(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	f.repo.On("SummaryByStatus", ctx).Return([]payment.StatusSummary{
		{Key: "completed", Count: 3, Amount: decimal.NewFromInt(300)},
		{Key: "failed", Count: 1, Amount: decimal.NewFromInt(50)},
	}, nil)
	f.repo.On("SummaryByMethod", ctx).Return([]payment.StatusSummary{
		{Key: "upi", Count: 4, Amount: decimal.NewFromInt(350)},
	}, nil)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalCount)
	assert.True(t, stats.TotalAmount.Equal(decimal.NewFromInt(350)))
	assert.Len(t, stats.ByStatus, 2)
	assert.Len(t, stats.ByMethod, 1)
}

func TestPaymentService_ExpirePending(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	stale := []payment.Payment{*pendingPayment(t), *pendingPayment(t)}
	f.repo.On("FindPendingBefore", ctx, now.Add(-30*time.Minute)).Return(stale, nil)
	f.repo.On("Save", ctx, mock.AnythingOfType("*payment.Payment")).Return(nil).Once()
	f.repo.On("Save", ctx, mock.AnythingOfType("*payment.Payment")).Return(errors.New("db down")).Once()

	n, err := f.svc.ExpirePending(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, ExpiredReason, stale[0].FailureReason)
}
