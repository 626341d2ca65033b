package session

import (
	"time"

	"github.com/caredesk-hq/caredesk/internal/rbac"
)

// UserSession binds an opaque token to an authenticated principal for the
// lifetime of a login. Sessions are immutable after creation: a role change
// requires re-authentication, and replacement in a store is remove+create.
type UserSession struct {
	CustomerID  int64             `json:"customer_id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Role        rbac.Role         `json:"role"`
	IsStaff     bool              `json:"is_staff"`
	IsAdmin     bool              `json:"is_admin"`
	Permissions []rbac.Permission `json:"permissions"`
	Token       string            `json:"token"`
	CreatedAt   time.Time         `json:"created_at"`
}
