package accounting

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/accounting"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AccountService manages the chart of accounts
type AccountService struct {
	accountRepo accounting.AccountRepository
	logger      *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo accounting.AccountRepository, logger *zap.Logger) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{accountRepo: accountRepo, logger: logger}
}

// Create opens a new account
func (s *AccountService) Create(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	accountType, err := accounting.ParseAccountType(req.Type)
	if err != nil {
		return nil, err
	}
	account, err := accounting.NewAccount(req.Code, req.Name, accountType)
	if err != nil {
		return nil, err
	}
	account.Description = req.Description

	exists, err := s.accountRepo.ExistsByCode(ctx, account.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("DUPLICATE_CODE", "Account with this code already exists")
	}
	if err := s.attachParent(ctx, account, req.ParentID); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	logger.With(ctx, s.logger).Info("Account created", zap.String("code", account.Code), zap.String("type", string(account.Type)))

	resp := ToAccountResponse(account)
	return &resp, nil
}

// GetByID returns an account
func (s *AccountService) GetByID(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAccountResponse(account)
	return &resp, nil
}

// List returns accounts ordered by code
func (s *AccountService) List(ctx context.Context, filter accounting.AccountFilter) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToAccountResponse(&accounts[i]))
	}
	return out, nil
}

// Update changes an account's mutable fields
func (s *AccountService) Update(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	accountType, err := accounting.ParseAccountType(req.Type)
	if err != nil {
		return nil, err
	}
	active := account.IsActive
	if req.IsActive != nil {
		active = *req.IsActive
	}
	if err := account.Update(req.Name, req.Description, accountType, active); err != nil {
		return nil, err
	}
	if err := s.attachParent(ctx, account, req.ParentID); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	resp := ToAccountResponse(account)
	return &resp, nil
}

// Delete removes an account that nothing depends on
func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.accountRepo.FindByID(ctx, id); err != nil {
		return err
	}
	hasChildren, err := s.accountRepo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewConflictError("HAS_CHILDREN", "Account has child accounts")
	}
	referenced, err := s.accountRepo.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewConflictError("ACCOUNT_IN_USE", "Account is referenced by journal entries")
	}
	return s.accountRepo.Delete(ctx, id)
}

func (s *AccountService) attachParent(ctx context.Context, account *accounting.Account, parentID *uuid.UUID) error {
	if parentID == nil {
		return account.SetParent(nil)
	}
	if *parentID == account.ID {
		return shared.NewValidationError("INVALID_PARENT", "Account cannot be its own parent")
	}
	if _, err := s.accountRepo.FindByID(ctx, *parentID); err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return shared.NewValidationError("INVALID_PARENT", "Parent account not found")
		}
		return err
	}
	return account.SetParent(parentID)
}
