package auth

import (
	"time"

	"github.com/caredesk-hq/caredesk/internal/rbac"
)

// IdentityRecord is the result of an identity-directory lookup. The explicit
// Role string, when present, is authoritative; the staff/admin flags are
// informational fallbacks for records without one.
type IdentityRecord struct {
	CustomerID  int64
	Name        string
	Email       string
	Role        string
	IsStaff     bool
	IsAdmin     bool
	Permissions []string
}

// SessionContext is the read-only projection of a session consumed by the
// query-execution layer and route guards.
type SessionContext struct {
	Authenticated bool              `json:"authenticated"`
	CustomerID    int64             `json:"customer_id,omitempty"`
	Name          string            `json:"name,omitempty"`
	Email         string            `json:"email,omitempty"`
	Role          rbac.Role         `json:"-"`
	RoleName      string            `json:"role"`
	Permissions   []rbac.Permission `json:"permissions"`
	IsStaff       bool              `json:"is_staff"`
	IsAdmin       bool              `json:"is_admin"`
	Token         string            `json:"-"`
	LoginAt       time.Time         `json:"login_at,omitempty"`
}
