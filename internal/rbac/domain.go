package rbac

import (
	"errors"
	"fmt"
	"strings"
)

// Role is a privilege tier with a fixed position in a total order.
// Higher values carry strictly more access, except capabilities
// reserved to SuperAdmin.
type Role int

const (
	RoleGuest Role = iota
	RoleCustomer
	RoleSupportAgent
	RoleAdmin
	RoleSuperAdmin
)

// ErrUnknownRole indicates a role value that is not part of the model.
// Callers are expected to fall back to RoleGuest and log a warning.
var ErrUnknownRole = errors.New("rbac: unknown role")

var roleNames = map[Role]string{
	RoleGuest:        "guest",
	RoleCustomer:     "customer",
	RoleSupportAgent: "support_agent",
	RoleAdmin:        "admin",
	RoleSuperAdmin:   "super_admin",
}

// String returns the canonical lowercase name of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Valid reports whether the role is part of the closed enumeration.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// AtLeast reports whether the role sits at or above min in the privilege order.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// ParseRole maps a role string to its Role value. Unrecognized input fails
// closed: the returned role is RoleGuest together with ErrUnknownRole.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "guest":
		return RoleGuest, nil
	case "customer":
		return RoleCustomer, nil
	case "support_agent", "support-agent", "agent", "staff":
		return RoleSupportAgent, nil
	case "admin":
		return RoleAdmin, nil
	case "super_admin", "super-admin", "superadmin":
		return RoleSuperAdmin, nil
	default:
		return RoleGuest, fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
}

// AllRoles lists every role in ascending privilege order.
func AllRoles() []Role {
	return []Role{RoleGuest, RoleCustomer, RoleSupportAgent, RoleAdmin, RoleSuperAdmin}
}

// Permission is an atomic named capability.
type Permission string

// Permission universe, grouped by concern.
const (
	PermProfileViewOwn Permission = "profile.view_own"
	PermProfileEditOwn Permission = "profile.edit_own"

	PermOrdersViewOwn   Permission = "orders.view_own"
	PermOrdersCancelOwn Permission = "orders.cancel_own"

	PermCustomersViewAny Permission = "customers.view_any"
	PermOrdersEditAny    Permission = "orders.edit_any"

	PermAnalyticsViewGeneral  Permission = "analytics.view_general"
	PermAnalyticsViewRevenue  Permission = "analytics.view_revenue"
	PermAnalyticsViewRankings Permission = "analytics.view_rankings"

	PermAdminManageUsers  Permission = "admin.manage_users"
	PermAdminManageSystem Permission = "admin.manage_system"

	PermProductsView   Permission = "products.view"
	PermProductsManage Permission = "products.manage"
)

// AllPermissions returns the full permission universe.
func AllPermissions() []Permission {
	return []Permission{
		PermProfileViewOwn,
		PermProfileEditOwn,
		PermOrdersViewOwn,
		PermOrdersCancelOwn,
		PermCustomersViewAny,
		PermOrdersEditAny,
		PermAnalyticsViewGeneral,
		PermAnalyticsViewRevenue,
		PermAnalyticsViewRankings,
		PermAdminManageUsers,
		PermAdminManageSystem,
		PermProductsView,
		PermProductsManage,
	}
}
