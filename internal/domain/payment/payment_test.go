package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompletedPayment(t *testing.T, amount int64) *Payment {
	t.Helper()
	p, err := NewPayment("ORD-1", "CUST-1", decimal.NewFromInt(amount), "", MethodCard)
	require.NoError(t, err)
	require.NoError(t, p.Authorize("auth-1"))
	require.NoError(t, p.Capture())
	return p
}

func TestNewPayment(t *testing.T) {
	t.Run("creates pending payment with defaults", func(t *testing.T) {
		p, err := NewPayment("ORD-1", "CUST-1", decimal.NewFromFloat(499.999), "", MethodUPI)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, p.Status)
		assert.Equal(t, DefaultCurrency, p.Currency)
		assert.Equal(t, "500", p.Amount.String())
		assert.Regexp(t, `^TXN-[0-9A-F]{16}$`, p.TransactionID)
		assert.True(t, p.RefundedAmount.IsZero())
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPayment("ORD-1", "CUST-1", decimal.NewFromInt(1), "INR", Method("cheque"))
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment("ORD-1", "CUST-1", decimal.Zero, "INR", MethodCard)
		require.Error(t, err)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusAuthorized, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusCompleted, false},
		{StatusAuthorized, StatusCompleted, true},
		{StatusAuthorized, StatusFailed, true},
		{StatusCompleted, StatusRefunded, true},
		{StatusCompleted, StatusFailed, false},
		{StatusFailed, StatusPending, false},
		{StatusRefunded, StatusCompleted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusRefunded.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestPayment_Lifecycle(t *testing.T) {
	p, err := NewPayment("ORD-1", "CUST-1", decimal.NewFromInt(100), "INR", MethodCard)
	require.NoError(t, err)
	require.NoError(t, p.EnsureProcessable())

	err = p.Capture()
	require.Error(t, err)
	assert.Equal(t, StatusPending, p.Status)

	require.NoError(t, p.Authorize("ref-9"))
	assert.Equal(t, "ref-9", p.GatewayReference)
	require.Error(t, p.EnsureProcessable())

	require.NoError(t, p.Capture())
	assert.Equal(t, StatusCompleted, p.Status)
	assert.NotNil(t, p.ProcessedAt)
	assert.Len(t, p.GetDomainEvents(), 2)
}

func TestPayment_Fail(t *testing.T) {
	p, err := NewPayment("ORD-1", "CUST-1", decimal.NewFromInt(100), "INR", MethodWallet)
	require.NoError(t, err)

	require.NoError(t, p.Fail("declined"))
	assert.Equal(t, StatusFailed, p.Status)
	assert.Equal(t, "declined", p.FailureReason)

	err = p.EnsureProcessable()
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindInvalidState))
	assert.Equal(t, StatusFailed, p.Status)
}

func TestNewRefund(t *testing.T) {
	t.Run("partial then full refund", func(t *testing.T) {
		p := newCompletedPayment(t, 100)

		r, err := NewRefund(p, decimal.NewFromInt(40), " damaged ")
		require.NoError(t, err)
		assert.Equal(t, "damaged", r.Reason)
		assert.Equal(t, RefundStatusProcessed, r.Status)
		assert.Equal(t, StatusCompleted, p.Status)
		assert.Equal(t, "60", p.RefundableAmount().String())

		_, err = NewRefund(p, decimal.NewFromInt(61), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds refundable amount")

		_, err = NewRefund(p, decimal.NewFromInt(60), "")
		require.NoError(t, err)
		assert.Equal(t, StatusRefunded, p.Status)
	})

	t.Run("requires completed payment", func(t *testing.T) {
		p, err := NewPayment("ORD-1", "CUST-1", decimal.NewFromInt(100), "INR", MethodCard)
		require.NoError(t, err)

		_, err = NewRefund(p, decimal.NewFromInt(10), "")
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindInvalidState))
		assert.True(t, p.RefundedAmount.IsZero())
	})
}

func TestNewPaymentMethod(t *testing.T) {
	m, err := NewPaymentMethod("CUST-1", MethodCard, "visa", "Work card", "4111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "1111", m.Last4)
	assert.False(t, m.IsDefault)

	_, err = NewPaymentMethod("", MethodCard, "", "", "")
	require.Error(t, err)
}
