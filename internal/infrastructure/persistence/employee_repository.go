package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/employee"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements employee.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by its ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	var e employee.Employee
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, classify(err, "Employee")
	}
	return &e, nil
}

// FindAll lists employees ordered by code
func (r *GormEmployeeRepository) FindAll(ctx context.Context, f employee.Filter) ([]employee.Employee, error) {
	q := r.db.WithContext(ctx).Model(&employee.Employee{})
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(employee_code) LIKE ?", p, p, p, p)
	}
	var employees []employee.Employee
	if err := q.Order("employee_code ASC").Find(&employees).Error; err != nil {
		return nil, classify(err, "Employee")
	}
	return employees, nil
}

// ExistsByCode checks if an employee code is taken
func (r *GormEmployeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&employee.Employee{}).
		Where("employee_code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, classify(err, "Employee")
	}
	return count > 0, nil
}

// ExistsByEmail checks if an email is taken by another employee
func (r *GormEmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&employee.Employee{}).Where("email = ?", strings.ToLower(strings.TrimSpace(email)))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, classify(err, "Employee")
	}
	return count > 0, nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, e *employee.Employee) error {
	return saveVersioned(ctx, r.db, e, "Employee")
}

// CountByStatus counts employees per status
func (r *GormEmployeeRepository) CountByStatus(ctx context.Context) (map[employee.Status]int64, error) {
	var rows []struct {
		Status employee.Status
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&employee.Employee{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, classify(err, "Employee")
	}
	out := make(map[employee.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// DepartmentStats aggregates active employees per department
func (r *GormEmployeeRepository) DepartmentStats(ctx context.Context) ([]employee.DepartmentStat, error) {
	var rows []employee.DepartmentStat
	if err := r.db.WithContext(ctx).Model(&employee.Employee{}).
		Select("department, COUNT(*) AS headcount, COALESCE(SUM(salary), 0) AS total_salary").
		Where("status = ?", employee.StatusActive).
		Group("department").
		Order("department ASC").
		Scan(&rows).Error; err != nil {
		return nil, classify(err, "Employee")
	}
	return rows, nil
}

// AverageSalary averages the salary of active employees
func (r *GormEmployeeRepository) AverageSalary(ctx context.Context) (decimal.Decimal, error) {
	var avg decimal.NullDecimal
	if err := r.db.WithContext(ctx).Model(&employee.Employee{}).
		Select("AVG(salary)").
		Where("status = ?", employee.StatusActive).
		Scan(&avg).Error; err != nil {
		return decimal.Zero, classify(err, "Employee")
	}
	if !avg.Valid {
		return decimal.Zero, nil
	}
	return avg.Decimal.Round(2), nil
}

// GormPayrollRepository implements employee.PayrollRepository using GORM
type GormPayrollRepository struct {
	db *gorm.DB
}

// NewGormPayrollRepository creates a new GormPayrollRepository
func NewGormPayrollRepository(db *gorm.DB) *GormPayrollRepository {
	return &GormPayrollRepository{db: db}
}

// FindByID finds a payroll record by its ID
func (r *GormPayrollRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.PayrollRecord, error) {
	var p employee.PayrollRecord
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, classify(err, "Payroll record")
	}
	return &p, nil
}

// FindAll lists payroll records, latest period first
func (r *GormPayrollRepository) FindAll(ctx context.Context, f employee.PayrollFilter) ([]employee.PayrollRecord, error) {
	q := r.db.WithContext(ctx).Model(&employee.PayrollRecord{})
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	var records []employee.PayrollRecord
	if err := q.Order("period_start DESC").Find(&records).Error; err != nil {
		return nil, classify(err, "Payroll record")
	}
	return records, nil
}

// ExistsForPeriod checks if the employee already has a record for the period
func (r *GormPayrollRepository) ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, periodStart time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&employee.PayrollRecord{}).
		Where("employee_id = ? AND period_start = ?", employeeID, periodStart).
		Count(&count).Error; err != nil {
		return false, classify(err, "Payroll record")
	}
	return count > 0, nil
}

// Save creates or updates a payroll record
func (r *GormPayrollRepository) Save(ctx context.Context, p *employee.PayrollRecord) error {
	return saveVersioned(ctx, r.db, p, "Payroll record")
}

// Totals sums gross and net pay across all records
func (r *GormPayrollRepository) Totals(ctx context.Context) (employee.PayrollTotals, error) {
	var totals employee.PayrollTotals
	err := r.db.WithContext(ctx).Model(&employee.PayrollRecord{}).
		Select(`COUNT(*) AS records,
			COALESCE(SUM(gross_pay), 0) AS total_gross,
			COALESCE(SUM(net_pay), 0) AS total_net,
			COALESCE(SUM(CASE WHEN status = ? THEN net_pay ELSE 0 END), 0) AS paid_net`, employee.PayrollStatusPaid).
		Scan(&totals).Error
	if err != nil {
		return employee.PayrollTotals{}, classify(err, "Payroll record")
	}
	return totals, nil
}
