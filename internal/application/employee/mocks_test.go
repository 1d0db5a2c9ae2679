package employee

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/employee"
	"github.com/stretchr/testify/mock"
)

// MockEmployeeRepository is a mock implementation of EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, e *employee.Employee) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEmployeeRepository) CountByStatus(ctx context.Context) (map[employee.Status]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[employee.Status]int64), args.Error(1)
}

func (m *MockEmployeeRepository) DepartmentStats(ctx context.Context) ([]employee.DepartmentStat, error) {
	args := m.Called(ctx)
	return args.Get(0).([]employee.DepartmentStat), args.Error(1)
}

func (m *MockEmployeeRepository) AverageSalary(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockPayrollRepository is a mock implementation of PayrollRepository
type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.PayrollRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.PayrollRecord), args.Error(1)
}

func (m *MockPayrollRepository) FindAll(ctx context.Context, filter employee.PayrollFilter) ([]employee.PayrollRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]employee.PayrollRecord), args.Error(1)
}

func (m *MockPayrollRepository) ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, periodStart time.Time) (bool, error) {
	args := m.Called(ctx, employeeID, periodStart)
	return args.Bool(0), args.Error(1)
}

func (m *MockPayrollRepository) Save(ctx context.Context, p *employee.PayrollRecord) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPayrollRepository) Totals(ctx context.Context) (employee.PayrollTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(employee.PayrollTotals), args.Error(1)
}
