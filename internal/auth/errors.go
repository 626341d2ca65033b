package auth

import (
	"errors"
	"fmt"

	"github.com/caredesk-hq/caredesk/internal/platform/httpx"
	"github.com/caredesk-hq/caredesk/internal/rbac"
)

var (
	// ErrUserNotFound indicates the identity lookup returned no active account.
	ErrUserNotFound = errors.New("auth: user not found")
	// ErrNotAuthenticated indicates a missing or invalid token on a
	// token-requiring operation.
	ErrNotAuthenticated = errors.New("auth: not authenticated")
)

// InsufficientRoleError indicates a valid session whose role sits below the
// required threshold.
type InsufficientRoleError struct {
	Required rbac.Role
}

func (e *InsufficientRoleError) Error() string {
	return fmt.Sprintf("auth: insufficient role, %s required", e.Required)
}

// HTTPError chains an auth failure onto the httpx sentinel that carries its
// status code: 401 for an absent or invalid token, 403 for a valid session
// below the required access.
func HTTPError(err error) error {
	var insufficient *InsufficientRoleError
	switch {
	case errors.As(err, &insufficient):
		return fmt.Errorf("%w: %s required", httpx.ErrForbidden, insufficient.Required)
	case errors.Is(err, ErrNotAuthenticated):
		return fmt.Errorf("%w: authentication required", httpx.ErrUnauthorized)
	case errors.Is(err, ErrUserNotFound):
		return fmt.Errorf("%w: no active account for this identity", httpx.ErrUnauthorized)
	default:
		return err
	}
}
