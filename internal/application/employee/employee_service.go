package employee

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/employee"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// EmployeeService manages staff records
type EmployeeService struct {
	repo   employee.EmployeeRepository
	logger *zap.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(repo employee.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{repo: repo, logger: logger}
}

// Create adds an employee. Code and email must be unique.
func (s *EmployeeService) Create(ctx context.Context, req EmployeeRequest) (*EmployeeResponse, error) {
	e, err := employee.NewEmployee(req.EmployeeCode, req.profile())
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByCode(ctx, e.EmployeeCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("DUPLICATE_CODE", "Employee code "+e.EmployeeCode+" already exists")
	}
	if err := s.ensureEmailFree(ctx, e.Email, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, e); err != nil {
		logger.With(ctx, s.logger).Error("Failed to create employee", zap.String("code", e.EmployeeCode), zap.Error(err))
		return nil, err
	}
	resp := ToEmployeeResponse(e)
	return &resp, nil
}

// GetByID returns an employee
func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(e)
	return &resp, nil
}

// List returns employees matching the filter
func (s *EmployeeService) List(ctx context.Context, filter employee.Filter) ([]EmployeeResponse, error) {
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponses(items), nil
}

// ListByDepartment returns the employees of one department
func (s *EmployeeService) ListByDepartment(ctx context.Context, department string) ([]EmployeeResponse, error) {
	return s.List(ctx, employee.Filter{Department: department})
}

// Update overwrites an employee's profile. The code never changes.
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req EmployeeRequest) (*EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := req.profile()
	if profile.HireDate.IsZero() {
		profile.HireDate = e.HireDate
	}
	if err := e.Update(profile); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, e.Email, &e.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(e)
	return &resp, nil
}

// SetStatus changes the employment state
func (s *EmployeeService) SetStatus(ctx context.Context, id uuid.UUID, status employee.Status) (*EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(e)
	return &resp, nil
}

// Delete terminates the employee. The row is kept for payroll history.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	resp, err := s.SetStatus(ctx, id, employee.StatusTerminated)
	if err != nil {
		return nil, err
	}
	logger.With(ctx, s.logger).Info("Employee terminated", zap.String("employee_id", id.String()))
	return resp, nil
}

func (s *EmployeeService) ensureEmailFree(ctx context.Context, email string, excludeID *uuid.UUID) error {
	taken, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewConflictError("DUPLICATE_EMAIL", "Email "+email+" is already in use")
	}
	return nil
}
