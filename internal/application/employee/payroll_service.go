package employee

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/employee"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// PayrollService runs and settles payroll
type PayrollService struct {
	employeeRepo employee.EmployeeRepository
	payrollRepo  employee.PayrollRepository
	logger       *zap.Logger
}

// NewPayrollService creates a new PayrollService
func NewPayrollService(employeeRepo employee.EmployeeRepository, payrollRepo employee.PayrollRepository, logger *zap.Logger) *PayrollService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayrollService{employeeRepo: employeeRepo, payrollRepo: payrollRepo, logger: logger}
}

// Create computes a payroll record. An employee has one record per period start.
func (s *PayrollService) Create(ctx context.Context, req CreatePayrollRequest) (*PayrollResponse, error) {
	e, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	record, err := employee.NewPayrollRecord(e, req.PeriodStart, req.PeriodEnd, req.BasicSalary, req.Allowances, req.Deductions)
	if err != nil {
		return nil, err
	}
	exists, err := s.payrollRepo.ExistsForPeriod(ctx, e.ID, record.PeriodStart)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("DUPLICATE_PAYROLL",
			"Payroll for "+e.EmployeeCode+" starting "+record.PeriodStart.Format("2006-01-02")+" already exists")
	}
	if err := s.payrollRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	resp := ToPayrollResponse(record)
	return &resp, nil
}

// GetByID returns a payroll record
func (s *PayrollService) GetByID(ctx context.Context, id uuid.UUID) (*PayrollResponse, error) {
	p, err := s.payrollRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPayrollResponse(p)
	return &resp, nil
}

// List returns payroll records matching the filter
func (s *PayrollService) List(ctx context.Context, filter employee.PayrollFilter) ([]PayrollResponse, error) {
	items, err := s.payrollRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]PayrollResponse, 0, len(items))
	for i := range items {
		out = append(out, ToPayrollResponse(&items[i]))
	}
	return out, nil
}

// MarkPaid settles a pending record
func (s *PayrollService) MarkPaid(ctx context.Context, id uuid.UUID) (*PayrollResponse, error) {
	p, err := s.payrollRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.payrollRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	logger.With(ctx, s.logger).Info("Payroll paid", zap.String("payroll_id", id.String()), zap.String("net_pay", p.NetPay.StringFixed(2)))
	resp := ToPayrollResponse(p)
	return &resp, nil
}

// Stats summarizes headcount, salary cost and payroll totals
func (s *PayrollService) Stats(ctx context.Context) (*StatsResponse, error) {
	counts, err := s.employeeRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := s.employeeRepo.DepartmentStats(ctx)
	if err != nil {
		return nil, err
	}
	avg, err := s.employeeRepo.AverageSalary(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.payrollRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	stats := &StatsResponse{
		ActiveEmployees: counts[employee.StatusActive],
		AverageSalary:   avg,
		Departments:     make([]DepartmentStatResponse, 0, len(departments)),
		PayrollRecords:  totals.Records,
		TotalGrossPay:   totals.TotalGross,
		TotalNetPay:     totals.TotalNet,
		TotalPaid:       totals.PaidNet,
	}
	for _, n := range counts {
		stats.TotalEmployees += n
	}
	for _, d := range departments {
		stats.Departments = append(stats.Departments, DepartmentStatResponse{
			Department:  d.Department,
			Headcount:   d.Headcount,
			TotalSalary: d.TotalSalary,
		})
	}
	return stats, nil
}
