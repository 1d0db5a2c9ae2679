package employee

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() Profile {
	return Profile{
		FirstName:  "Asha",
		LastName:   "Rao",
		Email:      "Asha.Rao@Example.com",
		Department: "Warehouse",
		Position:   "Picker",
		Salary:     decimal.NewFromInt(30000),
	}
}

func TestNewEmployee(t *testing.T) {
	e, err := NewEmployee("emp-001", testProfile())
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", e.EmployeeCode)
	assert.Equal(t, "asha.rao@example.com", e.Email)
	assert.Equal(t, StatusActive, e.Status)
	assert.Equal(t, "Asha Rao", e.FullName())
	assert.False(t, e.HireDate.IsZero())

	bad := testProfile()
	bad.Email = "nope"
	_, err = NewEmployee("EMP-2", bad)
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindValidation))
}

func TestEmployee_SetStatus(t *testing.T) {
	e, err := NewEmployee("EMP-1", testProfile())
	require.NoError(t, err)

	require.NoError(t, e.SetStatus(StatusInactive))
	require.NoError(t, e.SetStatus(StatusTerminated))
	err = e.SetStatus(StatusActive)
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindInvalidState))
	require.Error(t, e.SetStatus(Status("retired")))
}

func TestNewPayrollRecord(t *testing.T) {
	e, err := NewEmployee("EMP-1", testProfile())
	require.NoError(t, err)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("computes gross and net", func(t *testing.T) {
		p, err := NewPayrollRecord(e, start, end, decimal.NewFromInt(30000), decimal.NewFromInt(5000), decimal.NewFromInt(2500))
		require.NoError(t, err)
		assert.Equal(t, "35000", p.GrossPay.String())
		assert.Equal(t, "32500", p.NetPay.String())
		assert.Equal(t, PayrollStatusPending, p.Status)

		require.NoError(t, p.MarkPaid())
		assert.NotNil(t, p.PaidAt)
		require.Error(t, p.MarkPaid())
	})

	t.Run("defaults basic to salary", func(t *testing.T) {
		p, err := NewPayrollRecord(e, start, end, decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, p.BasicSalary.Equal(decimal.NewFromInt(30000)))
	})

	t.Run("rejects negative net pay", func(t *testing.T) {
		_, err := NewPayrollRecord(e, start, end, decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(101))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Deductions exceed gross pay")
	})

	t.Run("rejects inverted period", func(t *testing.T) {
		_, err := NewPayrollRecord(e, end, start, decimal.NewFromInt(1), decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})
}
