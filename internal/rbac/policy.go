package rbac

// ScopeKind identifies the data-visibility boundary resolved for a request.
type ScopeKind string

const (
	ScopePublicOnly       ScopeKind = "public_only"
	ScopeCustomerSpecific ScopeKind = "customer_specific"
	ScopeCrossCustomer    ScopeKind = "cross_customer"
	ScopePlatformWide     ScopeKind = "platform_wide"
)

// Scope is the resolved visibility boundary. CustomerID is set only for
// ScopeCustomerSpecific and names the single customer whose data may be read.
type Scope struct {
	Kind       ScopeKind
	CustomerID int64
}

// Query is the input to an authorization decision. ActingCustomerID and
// TargetCustomerID are zero when no customer is associated with that side of
// the request.
type Query struct {
	Role             Role
	ActingCustomerID int64
	Operation        string
	TargetCustomerID int64
}

// Decision is the outcome of an authorization check. Denials carry a
// machine-distinguishable reason and a suggested alternative; grants carry
// the resolved scope consumed by the query-execution layer.
type Decision struct {
	Authorized  bool
	Scope       Scope
	Reason      string
	Alternative string
}

// Operation categories the policy rules dispatch on.
const (
	OpCustomerAnalysis = "customer_analysis"
	OpRevenueInsights  = "revenue_insights"
	OpOrderAnalytics   = "order_analytics"
)

// Engine computes authorization decisions from the role-permission matrix.
// All methods are pure and safe for concurrent use without locking: the
// matrix is immutable after initialization.
type Engine struct{}

// NewEngine constructs a policy engine.
func NewEngine() *Engine {
	return &Engine{}
}

// HasPermission reports whether the role's permission set contains perm.
func (e *Engine) HasPermission(role Role, perm Permission) bool {
	return PermissionsFor(role).Has(perm)
}

// ResolveScope maps a role to its data-visibility boundary. The scope is the
// single source of truth the data-access layer filters on; the engine itself
// never touches data.
func (e *Engine) ResolveScope(role Role, actingCustomerID int64) Scope {
	switch role {
	case RoleCustomer:
		return Scope{Kind: ScopeCustomerSpecific, CustomerID: actingCustomerID}
	case RoleSupportAgent:
		return Scope{Kind: ScopeCrossCustomer}
	case RoleAdmin, RoleSuperAdmin:
		return Scope{Kind: ScopePlatformWide}
	default:
		// Unknown roles resolve like Guest.
		return Scope{Kind: ScopePublicOnly}
	}
}

// Authorize evaluates the fixed-order rule chain. The analytics gate runs
// before the cross-customer gate so that a support agent, who passes the
// cross-customer check, is still denied business analytics. Same input always
// yields the same decision.
func (e *Engine) Authorize(q Query) Decision {
	scope := e.ResolveScope(q.Role, q.ActingCustomerID)

	if isBusinessAnalytics(q.Operation, q.TargetCustomerID) && scope.Kind != ScopePlatformWide {
		return Decision{
			Reason:      "role cannot access business analytics",
			Alternative: "request access from an administrator or query your own data",
		}
	}

	if q.TargetCustomerID != 0 && q.TargetCustomerID != q.ActingCustomerID &&
		scope.Kind != ScopeCrossCustomer && scope.Kind != ScopePlatformWide {
		return Decision{
			Reason:      "role cannot access other customers' data",
			Alternative: "you may only access your own account data",
		}
	}

	if isPersonalData(q.Operation) && q.ActingCustomerID == 0 && q.Role == RoleGuest {
		return Decision{
			Reason:      "authentication required for personal data access",
			Alternative: "log in to access your account information",
		}
	}

	return Decision{Authorized: true, Scope: scope}
}

// isBusinessAnalytics classifies platform-wide analytics operations.
// revenue_insights with an explicit target is a personal-data request, not a
// business-analytics one.
func isBusinessAnalytics(operation string, targetCustomerID int64) bool {
	switch operation {
	case OpCustomerAnalysis:
		return true
	case OpRevenueInsights:
		return targetCustomerID == 0
	default:
		return false
	}
}

func isPersonalData(operation string) bool {
	switch operation {
	case OpOrderAnalytics, OpRevenueInsights:
		return true
	default:
		return false
	}
}
