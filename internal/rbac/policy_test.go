package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScope(t *testing.T) {
	engine := NewEngine()

	assert.Equal(t, Scope{Kind: ScopePublicOnly}, engine.ResolveScope(RoleGuest, 0))
	assert.Equal(t, Scope{Kind: ScopeCustomerSpecific, CustomerID: 7}, engine.ResolveScope(RoleCustomer, 7))
	assert.Equal(t, Scope{Kind: ScopeCrossCustomer}, engine.ResolveScope(RoleSupportAgent, 3))
	assert.Equal(t, Scope{Kind: ScopePlatformWide}, engine.ResolveScope(RoleAdmin, 0))
	assert.Equal(t, Scope{Kind: ScopePlatformWide}, engine.ResolveScope(RoleSuperAdmin, 0))
	assert.Equal(t, Scope{Kind: ScopePublicOnly}, engine.ResolveScope(Role(42), 1))
}

func TestAuthorizeGuestPersonalData(t *testing.T) {
	engine := NewEngine()

	decision := engine.Authorize(Query{Role: RoleGuest, Operation: OpOrderAnalytics})
	require.False(t, decision.Authorized)
	assert.Contains(t, decision.Reason, "authentication required")
	assert.Contains(t, decision.Alternative, "log in")
}

func TestAuthorizeCustomerOwnData(t *testing.T) {
	engine := NewEngine()

	decision := engine.Authorize(Query{
		Role:             RoleCustomer,
		ActingCustomerID: 7,
		Operation:        "read_orders",
		TargetCustomerID: 7,
	})
	require.True(t, decision.Authorized)
	assert.Equal(t, Scope{Kind: ScopeCustomerSpecific, CustomerID: 7}, decision.Scope)
}

func TestAuthorizeCustomerOtherCustomer(t *testing.T) {
	engine := NewEngine()

	decision := engine.Authorize(Query{
		Role:             RoleCustomer,
		ActingCustomerID: 7,
		Operation:        "read_orders",
		TargetCustomerID: 9,
	})
	require.False(t, decision.Authorized)
	assert.Contains(t, decision.Reason, "other customers")
	assert.Contains(t, decision.Alternative, "own account")
}

func TestAuthorizeSupportAgent(t *testing.T) {
	engine := NewEngine()

	// Cross-customer reads are allowed.
	decision := engine.Authorize(Query{
		Role:             RoleSupportAgent,
		ActingCustomerID: 2,
		Operation:        "read_orders",
		TargetCustomerID: 9,
	})
	require.True(t, decision.Authorized)
	assert.Equal(t, ScopeCrossCustomer, decision.Scope.Kind)

	// Business analytics is denied even though the cross-customer gate passes.
	decision = engine.Authorize(Query{
		Role:             RoleSupportAgent,
		ActingCustomerID: 2,
		Operation:        OpRevenueInsights,
	})
	require.False(t, decision.Authorized)
	assert.Contains(t, decision.Reason, "business analytics")
}

func TestAuthorizeAdminAnalytics(t *testing.T) {
	engine := NewEngine()

	for _, role := range []Role{RoleAdmin, RoleSuperAdmin} {
		decision := engine.Authorize(Query{Role: role, ActingCustomerID: 1, Operation: OpCustomerAnalysis, TargetCustomerID: 9})
		require.True(t, decision.Authorized, "role %s", role)
		assert.Equal(t, ScopePlatformWide, decision.Scope.Kind)

		decision = engine.Authorize(Query{Role: role, ActingCustomerID: 1, Operation: OpRevenueInsights})
		require.True(t, decision.Authorized, "role %s", role)
		assert.Equal(t, ScopePlatformWide, decision.Scope.Kind)
	}
}

func TestAuthorizeRevenueInsightsTargetingSelf(t *testing.T) {
	engine := NewEngine()

	// With an explicit self target revenue_insights is a personal-data
	// request, not a business-analytics one.
	decision := engine.Authorize(Query{
		Role:             RoleCustomer,
		ActingCustomerID: 7,
		Operation:        OpRevenueInsights,
		TargetCustomerID: 7,
	})
	require.True(t, decision.Authorized)
	assert.Equal(t, Scope{Kind: ScopeCustomerSpecific, CustomerID: 7}, decision.Scope)
}

func TestAuthorizeDeterministic(t *testing.T) {
	engine := NewEngine()
	query := Query{Role: RoleSupportAgent, ActingCustomerID: 4, Operation: OpRevenueInsights}

	first := engine.Authorize(query)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, engine.Authorize(query))
	}
}

func TestHasPermission(t *testing.T) {
	engine := NewEngine()

	assert.True(t, engine.HasPermission(RoleCustomer, PermOrdersViewOwn))
	assert.False(t, engine.HasPermission(RoleCustomer, PermCustomersViewAny))
	assert.True(t, engine.HasPermission(RoleSupportAgent, PermCustomersViewAny))
	assert.False(t, engine.HasPermission(RoleSupportAgent, PermAnalyticsViewRevenue))
	assert.True(t, engine.HasPermission(RoleSuperAdmin, PermAdminManageSystem))
}
