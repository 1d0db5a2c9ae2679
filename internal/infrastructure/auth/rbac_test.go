package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleAuthorizer_Allows(t *testing.T) {
	authz, err := NewRoleAuthorizer()
	require.NoError(t, err)

	tests := []struct {
		name     string
		held     []string
		required []string
		want     bool
	}{
		{"admin inherits manager", []string{RoleAdmin}, []string{RoleManager}, true},
		{"admin inherits staff transitively", []string{RoleAdmin}, []string{RoleStaff}, true},
		{"manager inherits staff", []string{RoleManager}, []string{RoleStaff}, true},
		{"staff is not manager", []string{RoleStaff}, []string{RoleManager}, false},
		{"customer is not staff", []string{RoleCustomer}, []string{RoleStaff}, false},
		{"customer route", []string{RoleCustomer}, []string{RoleCustomer, RoleStaff}, true},
		{"admin is not customer", []string{RoleAdmin}, []string{RoleCustomer}, false},
		{"no requirement", nil, nil, true},
		{"unknown role", []string{"root"}, []string{RoleStaff}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := authz.Allows(tt.held, tt.required...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
