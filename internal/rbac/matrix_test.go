package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixMonotonicity(t *testing.T) {
	roles := AllRoles()
	for i := 0; i < len(roles)-1; i++ {
		lower := PermissionsFor(roles[i])
		higher := PermissionsFor(roles[i+1])
		for perm := range lower {
			assert.True(t, higher.Has(perm),
				"permission %s granted to %s but missing from %s", perm, roles[i], roles[i+1])
		}
	}
}

func TestSuperAdminHoldsFullUniverse(t *testing.T) {
	set := PermissionsFor(RoleSuperAdmin)
	for _, perm := range AllPermissions() {
		assert.True(t, set.Has(perm), "super_admin missing %s", perm)
	}
	assert.Len(t, set, len(AllPermissions()))
}

func TestSystemAdministrationReservedToSuperAdmin(t *testing.T) {
	for _, role := range AllRoles() {
		if role == RoleSuperAdmin {
			continue
		}
		assert.False(t, PermissionsFor(role).Has(PermAdminManageSystem),
			"%s must not hold system administration", role)
	}
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	unknown := Role(99)
	assert.Equal(t, PermissionsFor(RoleGuest).List(), PermissionsFor(unknown).List())

	profile, err := ProfileFor(unknown)
	require.ErrorIs(t, err, ErrUnknownRole)
	guestProfile, _ := ProfileFor(RoleGuest)
	assert.Equal(t, guestProfile, profile)
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{"customer", RoleCustomer, false},
		{"Support_Agent", RoleSupportAgent, false},
		{"staff", RoleSupportAgent, false},
		{" admin ", RoleAdmin, false},
		{"superadmin", RoleSuperAdmin, false},
		{"guest", RoleGuest, false},
		{"root", RoleGuest, true},
		{"", RoleGuest, true},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.raw)
		if tc.wantErr {
			require.ErrorIs(t, err, ErrUnknownRole, "input %q", tc.raw)
		} else {
			require.NoError(t, err, "input %q", tc.raw)
		}
		assert.Equal(t, tc.want, got, "input %q", tc.raw)
	}
}

func TestRoleOrder(t *testing.T) {
	assert.True(t, RoleSuperAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.False(t, RoleCustomer.AtLeast(RoleSupportAgent))
	assert.False(t, RoleGuest.AtLeast(RoleCustomer))
}

func TestPermissionSetListStable(t *testing.T) {
	first := PermissionsFor(RoleAdmin).List()
	second := PermissionsFor(RoleAdmin).List()
	assert.Equal(t, first, second)
}
