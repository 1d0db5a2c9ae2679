package auth

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed rbac_model.conf
var rbacModelText string

// Role names understood by the guard
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// roleHierarchy lists (member, inherited) pairs: admin ⊃ manager ⊃ staff.
var roleHierarchy = [][2]string{
	{RoleAdmin, RoleManager},
	{RoleManager, RoleStaff},
}

// RoleAuthorizer answers whether a set of held roles satisfies a required role
type RoleAuthorizer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewRoleAuthorizer builds an in-memory enforcer with the storefront role tree
func NewRoleAuthorizer() (*RoleAuthorizer, error) {
	m, err := model.NewModelFromString(rbacModelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rbac model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	// Every role grants itself; inheritance does the rest.
	for _, role := range []string{RoleAdmin, RoleManager, RoleStaff, RoleCustomer} {
		if _, err := enforcer.AddPolicy(role, role); err != nil {
			return nil, err
		}
	}
	for _, link := range roleHierarchy {
		if _, err := enforcer.AddGroupingPolicy(link[0], link[1]); err != nil {
			return nil, err
		}
	}
	return &RoleAuthorizer{enforcer: enforcer}, nil
}

// Allows reports whether any held role satisfies any of the required roles
func (a *RoleAuthorizer) Allows(held []string, required ...string) (bool, error) {
	if len(required) == 0 {
		return true, nil
	}
	for _, h := range held {
		for _, r := range required {
			ok, err := a.enforcer.Enforce(h, r)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}
