package employee

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/employee"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPayrollService_Create(t *testing.T) {
	ctx := context.Background()
	req := employeeRequest()
	e, err := employee.NewEmployee(req.EmployeeCode, req.profile())
	require.NoError(t, err)
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

	t.Run("computes pay", func(t *testing.T) {
		emps, pays := new(MockEmployeeRepository), new(MockPayrollRepository)
		svc := NewPayrollService(emps, pays, nil)
		emps.On("FindByID", ctx, e.ID).Return(e, nil)
		pays.On("ExistsForPeriod", ctx, e.ID, mock.Anything).Return(false, nil)
		pays.On("Save", ctx, mock.AnythingOfType("*employee.PayrollRecord")).Return(nil)

		resp, err := svc.Create(ctx, CreatePayrollRequest{
			EmployeeID: e.ID, PeriodStart: start, PeriodEnd: end,
			Allowances: decimal.NewFromInt(3000), Deductions: decimal.NewFromInt(1000),
		})
		require.NoError(t, err)
		assert.True(t, resp.GrossPay.Equal(decimal.NewFromInt(45000)))
		assert.True(t, resp.NetPay.Equal(decimal.NewFromInt(44000)))
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("one record per period", func(t *testing.T) {
		emps, pays := new(MockEmployeeRepository), new(MockPayrollRepository)
		svc := NewPayrollService(emps, pays, nil)
		emps.On("FindByID", ctx, e.ID).Return(e, nil)
		pays.On("ExistsForPeriod", ctx, e.ID, mock.Anything).Return(true, nil)

		_, err := svc.Create(ctx, CreatePayrollRequest{EmployeeID: e.ID, PeriodStart: start, PeriodEnd: end})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindConflict))
	})
}

func TestPayrollService_Stats(t *testing.T) {
	ctx := context.Background()
	emps, pays := new(MockEmployeeRepository), new(MockPayrollRepository)
	svc := NewPayrollService(emps, pays, nil)
	emps.On("CountByStatus", ctx).Return(map[employee.Status]int64{
		employee.StatusActive:     4,
		employee.StatusTerminated: 1,
	}, nil)
	emps.On("DepartmentStats", ctx).Return([]employee.DepartmentStat{
		{Department: "Support", Headcount: 4, TotalSalary: decimal.NewFromInt(160000)},
	}, nil)
	emps.On("AverageSalary", ctx).Return(decimal.NewFromInt(40000), nil)
	pays.On("Totals", ctx).Return(employee.PayrollTotals{
		Records: 2, TotalGross: decimal.NewFromInt(80000), TotalNet: decimal.NewFromInt(76000), PaidNet: decimal.NewFromInt(38000),
	}, nil)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalEmployees)
	assert.Equal(t, int64(4), stats.ActiveEmployees)
	require.Len(t, stats.Departments, 1)
	assert.True(t, stats.TotalPaid.Equal(decimal.NewFromInt(38000)))
}
