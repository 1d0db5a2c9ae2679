package accounting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/accounting"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewAccountService(repo, nil)
		repo.On("ExistsByCode", ctx, "1000").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*accounting.Account")).Return(nil)

		resp, err := svc.Create(ctx, CreateAccountRequest{Code: "1000", Name: "Cash", Type: "Asset"})
		require.NoError(t, err)
		assert.Equal(t, "1000", resp.Code)
		assert.True(t, resp.IsActive)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewAccountService(repo, nil)
		repo.On("ExistsByCode", ctx, "1000").Return(true, nil)

		_, err := svc.Create(ctx, CreateAccountRequest{Code: "1000", Name: "Cash", Type: "Asset"})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindConflict))
	})

	t.Run("unknown parent is a validation error", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewAccountService(repo, nil)
		parent := uuid.New()
		repo.On("ExistsByCode", ctx, "1010").Return(false, nil)
		repo.On("FindByID", ctx, parent).Return(nil, shared.NewNotFoundError("Account"))

		_, err := svc.Create(ctx, CreateAccountRequest{Code: "1010", Name: "Petty cash", Type: "Asset", ParentID: &parent})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
	})

	t.Run("bad type", func(t *testing.T) {
		svc := NewAccountService(new(MockAccountRepository), nil)
		_, err := svc.Create(ctx, CreateAccountRequest{Code: "1", Name: "X", Type: "Cash"})
		require.Error(t, err)
	})
}

func TestAccountService_Delete(t *testing.T) {
	ctx := context.Background()
	account, _ := accounting.NewAccount("2000", "Payables", accounting.AccountTypeLiability)

	t.Run("refuses referenced account", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewAccountService(repo, nil)
		repo.On("FindByID", ctx, account.ID).Return(account, nil)
		repo.On("HasChildren", ctx, account.ID).Return(false, nil)
		repo.On("IsReferenced", ctx, account.ID).Return(true, nil)

		err := svc.Delete(ctx, account.ID)
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindConflict))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes unused account", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewAccountService(repo, nil)
		repo.On("FindByID", ctx, account.ID).Return(account, nil)
		repo.On("HasChildren", ctx, account.ID).Return(false, nil)
		repo.On("IsReferenced", ctx, account.ID).Return(false, nil)
		repo.On("Delete", ctx, account.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, account.ID))
	})
}
