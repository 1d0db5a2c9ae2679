package employee

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter narrows employee listings
type Filter struct {
	Department string
	Status     *Status
	Search     string
}

// DepartmentStat aggregates active employees of one department
type DepartmentStat struct {
	Department  string
	Headcount   int64
	TotalSalary decimal.Decimal
}

// PayrollTotals aggregates payroll records
type PayrollTotals struct {
	Records    int64
	TotalGross decimal.Decimal
	TotalNet   decimal.Decimal
	PaidNet    decimal.Decimal
}

// EmployeeRepository defines the interface for employee persistence
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindAll(ctx context.Context, filter Filter) ([]Employee, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, e *Employee) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	DepartmentStats(ctx context.Context) ([]DepartmentStat, error)
	AverageSalary(ctx context.Context) (decimal.Decimal, error)
}

// PayrollFilter narrows payroll listings
type PayrollFilter struct {
	EmployeeID *uuid.UUID
	Status     *PayrollStatus
}

// PayrollRepository defines the interface for payroll persistence
type PayrollRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PayrollRecord, error)
	FindAll(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, error)
	ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, periodStart time.Time) (bool, error)
	Save(ctx context.Context, p *PayrollRecord) error
	Totals(ctx context.Context) (PayrollTotals, error)
}
