package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/payment"
)

// MethodService manages saved payment instruments. A customer has at most
// one default method.
type MethodService struct {
	methodRepo payment.PaymentMethodRepository
	txScope    TransactionScope
}

// NewMethodService creates a new MethodService
func NewMethodService(methodRepo payment.PaymentMethodRepository, txScope TransactionScope) *MethodService {
	return &MethodService{methodRepo: methodRepo, txScope: txScope}
}

// Create saves an instrument. The first method of a customer, or one saved
// with isDefault, becomes the default and clears any previous default.
func (s *MethodService) Create(ctx context.Context, req CreateMethodRequest) (*MethodResponse, error) {
	m, err := payment.NewPaymentMethod(req.CustomerID, payment.Method(req.Type), req.Provider, req.Label, req.Last4)
	if err != nil {
		return nil, err
	}
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		count, err := repos.Methods().CountByCustomer(ctx, m.CustomerID)
		if err != nil {
			return err
		}
		if req.IsDefault || count == 0 {
			if err := repos.Methods().ClearDefault(ctx, m.CustomerID); err != nil {
				return err
			}
			m.IsDefault = true
		}
		return repos.Methods().Save(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	resp := ToMethodResponse(m)
	return &resp, nil
}

// ListByCustomer returns a customer's saved methods, default first
func (s *MethodService) ListByCustomer(ctx context.Context, customerID string) ([]MethodResponse, error) {
	methods, err := s.methodRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]MethodResponse, 0, len(methods))
	for i := range methods {
		out = append(out, ToMethodResponse(&methods[i]))
	}
	return out, nil
}

// SetDefault makes a method the customer's only default
func (s *MethodService) SetDefault(ctx context.Context, id uuid.UUID) (*MethodResponse, error) {
	var m *payment.PaymentMethod
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		m, err = repos.Methods().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Methods().ClearDefault(ctx, m.CustomerID); err != nil {
			return err
		}
		m.IsDefault = true
		m.Touch()
		return repos.Methods().Save(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	resp := ToMethodResponse(m)
	return &resp, nil
}

// Delete removes a saved method
func (s *MethodService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.methodRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.methodRepo.Delete(ctx, id)
}
