package rbac

import "sort"

// PermissionSet is an immutable set of permissions held by a role.
type PermissionSet map[Permission]struct{}

// Has reports set membership.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// List returns the permissions in stable sorted order.
func (s PermissionSet) List() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RoleProfile carries the human-readable description of a role.
type RoleProfile struct {
	Description string
	MaxAccess   string
}

// The role-permission matrix is built once at process start and never
// mutated afterwards. Lookups for roles outside the enumeration return
// the guest set so that unknown input never widens access.
var matrix = buildMatrix()

var roleProfiles = map[Role]RoleProfile{
	RoleGuest: {
		Description: "Unauthenticated visitor browsing public catalog data",
		MaxAccess:   "public data only",
	},
	RoleCustomer: {
		Description: "Authenticated customer managing their own account and orders",
		MaxAccess:   "own account data",
	},
	RoleSupportAgent: {
		Description: "Support staff assisting any customer",
		MaxAccess:   "all customer data, no business analytics",
	},
	RoleAdmin: {
		Description: "Platform administrator with business analytics access",
		MaxAccess:   "platform-wide data and analytics",
	},
	RoleSuperAdmin: {
		Description: "Operator holding every capability including system administration",
		MaxAccess:   "unrestricted",
	},
}

func buildMatrix() map[Role]PermissionSet {
	grants := map[Role][]Permission{
		RoleGuest: {
			PermProductsView,
		},
		RoleCustomer: {
			PermProductsView,
			PermProfileViewOwn,
			PermProfileEditOwn,
			PermOrdersViewOwn,
			PermOrdersCancelOwn,
		},
		RoleSupportAgent: {
			PermProductsView,
			PermProfileViewOwn,
			PermProfileEditOwn,
			PermOrdersViewOwn,
			PermOrdersCancelOwn,
			PermCustomersViewAny,
			PermOrdersEditAny,
		},
		RoleAdmin: {
			PermProductsView,
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
			PermProductsManage,
		},
		// SuperAdmin holds the full universe; system administration is
		// deliberately reserved to this tier.
		RoleSuperAdmin: AllPermissions(),
	}

	m := make(map[Role]PermissionSet, len(grants))
	for role, perms := range grants {
		set := make(PermissionSet, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		m[role] = set
	}
	return m
}

// PermissionsFor returns the permission set granted to the role. Unknown
// roles fail closed to the guest set.
func PermissionsFor(role Role) PermissionSet {
	if set, ok := matrix[role]; ok {
		return set
	}
	return matrix[RoleGuest]
}

// ProfileFor returns the descriptive profile for the role, or the guest
// profile with ErrUnknownRole when the role is outside the enumeration.
func ProfileFor(role Role) (RoleProfile, error) {
	if profile, ok := roleProfiles[role]; ok {
		return profile, nil
	}
	return roleProfiles[RoleGuest], ErrUnknownRole
}
