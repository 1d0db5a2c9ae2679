package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/employee"
)

// EmployeeRequest carries the fields used to create or update an employee
type EmployeeRequest struct {
	EmployeeCode string          `json:"employeeCode" binding:"max=32"`
	FirstName    string          `json:"firstName" binding:"required,max=100"`
	LastName     string          `json:"lastName" binding:"required,max=100"`
	Email        string          `json:"email" binding:"required,email"`
	Phone        string          `json:"phone" binding:"max=32"`
	Department   string          `json:"department" binding:"required,max=100"`
	Position     string          `json:"position" binding:"max=100"`
	Salary       decimal.Decimal `json:"salary"`
	HireDate     *time.Time      `json:"hireDate"`
}

func (r EmployeeRequest) profile() employee.Profile {
	p := employee.Profile{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Department: r.Department,
		Position:   r.Position,
		Salary:     r.Salary,
	}
	if r.HireDate != nil {
		p.HireDate = *r.HireDate
	}
	return p
}

// UpdateStatusRequest changes an employee's employment state
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive terminated"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID           uuid.UUID       `json:"id"`
	EmployeeCode string          `json:"employeeCode"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	FullName     string          `json:"fullName"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone,omitempty"`
	Department   string          `json:"department"`
	Position     string          `json:"position"`
	Salary       decimal.Decimal `json:"salary"`
	HireDate     time.Time       `json:"hireDate"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToEmployeeResponse converts a domain employee
func ToEmployeeResponse(e *employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		FullName:     e.FullName(),
		Email:        e.Email,
		Phone:        e.Phone,
		Department:   e.Department,
		Position:     e.Position,
		Salary:       e.Salary,
		HireDate:     e.HireDate,
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toEmployeeResponses(items []employee.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(items))
	for i := range items {
		out = append(out, ToEmployeeResponse(&items[i]))
	}
	return out
}

// CreatePayrollRequest runs payroll for one employee and period
type CreatePayrollRequest struct {
	EmployeeID  uuid.UUID       `json:"employeeId" binding:"required"`
	PeriodStart time.Time       `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time       `json:"periodEnd" binding:"required"`
	BasicSalary decimal.Decimal `json:"basicSalary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
}

// PayrollResponse represents a payroll record in API responses
type PayrollResponse struct {
	ID          uuid.UUID       `json:"id"`
	EmployeeID  uuid.UUID       `json:"employeeId"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	BasicSalary decimal.Decimal `json:"basicSalary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	GrossPay    decimal.Decimal `json:"grossPay"`
	NetPay      decimal.Decimal `json:"netPay"`
	Status      string          `json:"status"`
	PaidAt      *time.Time      `json:"paidAt"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToPayrollResponse converts a domain payroll record
func ToPayrollResponse(p *employee.PayrollRecord) PayrollResponse {
	return PayrollResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		PeriodStart: p.PeriodStart,
		PeriodEnd:   p.PeriodEnd,
		BasicSalary: p.BasicSalary,
		Allowances:  p.Allowances,
		Deductions:  p.Deductions,
		GrossPay:    p.GrossPay,
		NetPay:      p.NetPay,
		Status:      string(p.Status),
		PaidAt:      p.PaidAt,
		CreatedAt:   p.CreatedAt,
	}
}

// DepartmentStatResponse is headcount and salary cost of one department
type DepartmentStatResponse struct {
	Department  string          `json:"department"`
	Headcount   int64           `json:"headcount"`
	TotalSalary decimal.Decimal `json:"totalSalary"`
}

// StatsResponse summarizes employees and payroll
type StatsResponse struct {
	TotalEmployees  int64                    `json:"totalEmployees"`
	ActiveEmployees int64                    `json:"activeEmployees"`
	AverageSalary   decimal.Decimal          `json:"averageSalary"`
	Departments     []DepartmentStatResponse `json:"departments"`
	PayrollRecords  int64                    `json:"payrollRecords"`
	TotalGrossPay   decimal.Decimal          `json:"totalGrossPay"`
	TotalNetPay     decimal.Decimal          `json:"totalNetPay"`
	TotalPaid       decimal.Decimal          `json:"totalPaid"`
}
