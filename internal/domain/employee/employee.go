package employee

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
)

// Status is an employee's employment state
type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusTerminated Status = "terminated"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusTerminated
}

// Employee is a member of staff
type Employee struct {
	shared.BaseAggregateRoot
	EmployeeCode string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	FirstName    string          `gorm:"type:varchar(100);not null"`
	LastName     string          `gorm:"type:varchar(100);not null"`
	Email        string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone        string          `gorm:"type:varchar(32)"`
	Department   string          `gorm:"type:varchar(100);not null;index"`
	Position     string          `gorm:"type:varchar(100);not null"`
	Salary       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	HireDate     time.Time       `gorm:"not null"`
	Status       Status          `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// Profile carries the editable employee fields
type Profile struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Department string
	Position   string
	Salary     decimal.Decimal
	HireDate   time.Time
}

func (p Profile) validate() error {
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return shared.NewValidationError("INVALID_NAME", "First and last name are required")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return shared.NewValidationError("INVALID_EMAIL", "Email address is not valid")
	}
	if strings.TrimSpace(p.Department) == "" {
		return shared.NewValidationError("INVALID_DEPARTMENT", "Department is required")
	}
	if p.Salary.IsNegative() {
		return shared.NewValidationError("INVALID_SALARY", "Salary cannot be negative")
	}
	return nil
}

// NewEmployee creates an active employee
func NewEmployee(code string, profile Profile) (*Employee, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewValidationError("INVALID_CODE", "Employee code is required")
	}
	if err := profile.validate(); err != nil {
		return nil, err
	}
	e := &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeCode:      code,
		Status:            StatusActive,
	}
	e.apply(profile)
	if e.HireDate.IsZero() {
		e.HireDate = e.CreatedAt
	}
	return e, nil
}

// Update overwrites the profile
func (e *Employee) Update(profile Profile) error {
	if err := profile.validate(); err != nil {
		return err
	}
	e.apply(profile)
	e.UpdatedAt = time.Now()
	return nil
}

func (e *Employee) apply(p Profile) {
	e.FirstName = strings.TrimSpace(p.FirstName)
	e.LastName = strings.TrimSpace(p.LastName)
	e.Email = strings.ToLower(strings.TrimSpace(p.Email))
	e.Phone = p.Phone
	e.Department = strings.TrimSpace(p.Department)
	e.Position = p.Position
	e.Salary = p.Salary
	if !p.HireDate.IsZero() {
		e.HireDate = p.HireDate
	}
}

// SetStatus changes the employment state. Terminated is final.
func (e *Employee) SetStatus(s Status) error {
	if !s.IsValid() {
		return shared.NewValidationError("INVALID_STATUS", fmt.Sprintf("Unknown employee status %q", s))
	}
	if e.Status == StatusTerminated && s != StatusTerminated {
		return shared.NewInvalidStateError("Terminated employees cannot be reinstated")
	}
	e.Status = s
	e.UpdatedAt = time.Now()
	return nil
}

// FullName joins first and last name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// PayrollStatus is the payout state of a payroll record
type PayrollStatus string

const (
	PayrollStatusPending PayrollStatus = "pending"
	PayrollStatusPaid    PayrollStatus = "paid"
)

func (s PayrollStatus) IsValid() bool {
	return s == PayrollStatusPending || s == PayrollStatusPaid
}

// PayrollRecord is one pay period for one employee
type PayrollRecord struct {
	shared.BaseAggregateRoot
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_employee_period,priority:1"`
	PeriodStart time.Time       `gorm:"type:date;not null;uniqueIndex:idx_payroll_employee_period,priority:2"`
	PeriodEnd   time.Time       `gorm:"type:date;not null"`
	BasicSalary decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Allowances  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Deductions  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GrossPay    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	NetPay      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status      PayrollStatus   `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaidAt      *time.Time
}

// TableName returns the table name for GORM
func (PayrollRecord) TableName() string {
	return "payroll_records"
}

// NewPayrollRecord computes gross and net pay for a period
func NewPayrollRecord(e *Employee, start, end time.Time, basic, allowances, deductions decimal.Decimal) (*PayrollRecord, error) {
	if e.Status == StatusTerminated {
		return nil, shared.NewInvalidStateError("Payroll cannot be run for a terminated employee")
	}
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return nil, shared.NewValidationError("INVALID_PERIOD", "Period end must be after period start")
	}
	if basic.IsNegative() || allowances.IsNegative() || deductions.IsNegative() {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Payroll amounts cannot be negative")
	}
	if basic.IsZero() {
		basic = e.Salary
	}
	gross := basic.Add(allowances)
	net := gross.Sub(deductions)
	if net.IsNegative() {
		return nil, shared.NewValidationError("NEGATIVE_NET_PAY", "Deductions exceed gross pay")
	}
	return &PayrollRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        e.ID,
		PeriodStart:       start,
		PeriodEnd:         end,
		BasicSalary:       basic.Round(2),
		Allowances:        allowances.Round(2),
		Deductions:        deductions.Round(2),
		GrossPay:          gross.Round(2),
		NetPay:            net.Round(2),
		Status:            PayrollStatusPending,
	}, nil
}

// MarkPaid records the payout
func (p *PayrollRecord) MarkPaid() error {
	if p.Status == PayrollStatusPaid {
		return shared.NewInvalidStateError("Payroll record is already paid")
	}
	now := time.Now()
	p.Status = PayrollStatusPaid
	p.PaidAt = &now
	p.UpdatedAt = now
	return nil
}
