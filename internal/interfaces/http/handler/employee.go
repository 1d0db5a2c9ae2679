package handler

import (
	"github.com/gin-gonic/gin"
	appemp "github.com/storefront/platform/internal/application/employee"
	"github.com/storefront/platform/internal/domain/employee"
	"github.com/storefront/platform/internal/domain/shared"
)

// EmployeeHandler serves employee records and payroll
type EmployeeHandler struct {
	BaseHandler
	employees *appemp.EmployeeService
	payroll   *appemp.PayrollService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employees *appemp.EmployeeService, payroll *appemp.PayrollService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, payroll: payroll}
}

// Create godoc
// @Summary      Hire an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request body appemp.EmployeeRequest true "Employee"
// @Success      201 {object} dto.Response{data=appemp.EmployeeResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req appemp.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	e, err := h.employees.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, e)
}

// List godoc
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Param        department query string false "Department"
// @Param        status     query string false "active, inactive or terminated"
// @Param        search     query string false "Name, code or email fragment"
// @Success      200 {object} dto.Response{data=[]appemp.EmployeeResponse}
// @Security     BearerAuth
// @Router       /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	filter := employee.Filter{
		Department: c.Query("department"),
		Search:     c.Query("search"),
	}
	if raw := c.Query("status"); raw != "" {
		status := employee.Status(raw)
		if !status.IsValid() {
			h.HandleError(c, shared.NewValidationError("INVALID_STATUS", "Unknown employee status: "+raw))
			return
		}
		filter.Status = &status
	}
	items, err := h.employees.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, items, len(items))
}

// ListByDepartment godoc
// @Summary      Employees of a department
// @Tags         employees
// @Produce      json
// @Param        dept path string true "Department"
// @Success      200 {object} dto.Response{data=[]appemp.EmployeeResponse}
// @Security     BearerAuth
// @Router       /employees/department/{dept} [get]
func (h *EmployeeHandler) ListByDepartment(c *gin.Context) {
	items, err := h.employees.ListByDepartment(c.Request.Context(), c.Param("dept"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, items, len(items))
}

// Get godoc
// @Summary      Get an employee
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      200 {object} dto.Response{data=appemp.EmployeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	e, err := h.employees.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, e)
}

// Update godoc
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "Employee ID"
// @Param        request body appemp.EmployeeRequest true "Employee"
// @Success      200 {object} dto.Response{data=appemp.EmployeeResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req appemp.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	e, err := h.employees.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, e)
}

// SetStatus godoc
// @Summary      Change employment status
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Employee ID"
// @Param        request body appemp.UpdateStatusRequest true "Status"
// @Success      200 {object} dto.Response{data=appemp.EmployeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id}/status [patch]
func (h *EmployeeHandler) SetStatus(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req appemp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	e, err := h.employees.SetStatus(c.Request.Context(), id, employee.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, e)
}

// Delete godoc
// @Summary      Terminate an employee
// @Description  The record is kept with status terminated
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      200 {object} dto.Response{data=appemp.EmployeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	e, err := h.employees.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Employee terminated", e)
}

// CreatePayroll godoc
// @Summary      Run payroll for one employee and period
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        request body appemp.CreatePayrollRequest true "Payroll"
// @Success      201 {object} dto.Response{data=appemp.PayrollResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payroll [post]
func (h *EmployeeHandler) CreatePayroll(c *gin.Context) {
	var req appemp.CreatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	p, err := h.payroll.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// ListPayroll godoc
// @Summary      List payroll records
// @Tags         payroll
// @Produce      json
// @Param        employeeId query string false "Employee ID"
// @Param        status     query string false "pending or paid"
// @Success      200 {object} dto.Response{data=[]appemp.PayrollResponse}
// @Security     BearerAuth
// @Router       /payroll [get]
func (h *EmployeeHandler) ListPayroll(c *gin.Context) {
	var filter employee.PayrollFilter
	var err error
	if filter.EmployeeID, err = queryUUID(c, "employeeId"); err != nil {
		h.HandleError(c, err)
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := employee.PayrollStatus(raw)
		if !status.IsValid() {
			h.HandleError(c, shared.NewValidationError("INVALID_STATUS", "status must be pending or paid"))
			return
		}
		filter.Status = &status
	}
	records, err := h.payroll.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, records, len(records))
}

// GetPayroll godoc
// @Summary      Get a payroll record
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Payroll ID"
// @Success      200 {object} dto.Response{data=appemp.PayrollResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payroll/{id} [get]
func (h *EmployeeHandler) GetPayroll(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	p, err := h.payroll.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// MarkPaid godoc
// @Summary      Mark a payroll record paid
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Payroll ID"
// @Success      200 {object} dto.Response{data=appemp.PayrollResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payroll/{id}/pay [patch]
func (h *EmployeeHandler) MarkPaid(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	p, err := h.payroll.MarkPaid(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// PayrollStats godoc
// @Summary      Headcount, salary and payroll totals
// @Tags         payroll
// @Produce      json
// @Success      200 {object} dto.Response{data=appemp.StatsResponse}
// @Security     BearerAuth
// @Router       /payroll/stats [get]
func (h *EmployeeHandler) PayrollStats(c *gin.Context) {
	stats, err := h.payroll.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
