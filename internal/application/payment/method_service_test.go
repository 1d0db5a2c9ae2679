package payment

import (
	"context"
	"testing"

	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMethodService(t *testing.T) {
	ctx := context.Background()

	newFixture := func() (*MethodService, *MockMethodRepository) {
		repo := new(MockMethodRepository)
		return NewMethodService(repo, &stubScope{methods: repo}), repo
	}

	t.Run("first method becomes default", func(t *testing.T) {
		svc, repo := newFixture()
		repo.On("CountByCustomer", ctx, "CUST-1").Return(int64(0), nil)
		repo.On("ClearDefault", ctx, "CUST-1").Return(nil)
		repo.On("Save", ctx, mock.AnythingOfType("*payment.PaymentMethod")).Return(nil)

		resp, err := svc.Create(ctx, CreateMethodRequest{CustomerID: "CUST-1", Type: "card", Last4: "4242424242424242"})
		require.NoError(t, err)
		assert.True(t, resp.IsDefault)
		assert.Equal(t, "4242", resp.Last4)
	})

	t.Run("later methods are not default unless asked", func(t *testing.T) {
		svc, repo := newFixture()
		repo.On("CountByCustomer", ctx, "CUST-1").Return(int64(2), nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := svc.Create(ctx, CreateMethodRequest{CustomerID: "CUST-1", Type: "upi"})
		require.NoError(t, err)
		assert.False(t, resp.IsDefault)
		repo.AssertNotCalled(t, "ClearDefault", mock.Anything, mock.Anything)
	})

	t.Run("set default clears the others", func(t *testing.T) {
		svc, repo := newFixture()
		m, err := payment.NewPaymentMethod("CUST-1", payment.MethodWallet, "paytm", "Wallet", "")
		require.NoError(t, err)
		repo.On("FindByID", ctx, m.ID).Return(m, nil)
		repo.On("ClearDefault", ctx, "CUST-1").Return(nil)
		repo.On("Save", ctx, m).Return(nil)

		resp, err := svc.SetDefault(ctx, m.ID)
		require.NoError(t, err)
		assert.True(t, resp.IsDefault)
		repo.AssertExpectations(t)
	})

	t.Run("delete missing method", func(t *testing.T) {
		svc, repo := newFixture()
		m, _ := payment.NewPaymentMethod("CUST-1", payment.MethodCard, "", "", "")
		repo.On("FindByID", ctx, m.ID).Return(nil, shared.NewNotFoundError("Payment method"))

		err := svc.Delete(ctx, m.ID)
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindNotFound))
	})
}
