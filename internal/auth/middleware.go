package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/caredesk-hq/caredesk/internal/platform/httpx"
	"github.com/caredesk-hq/caredesk/internal/rbac"
)

// Middleware wires route guards around protected handlers. Denials
// short-circuit before the wrapped handler runs: 401 for an absent or
// invalid token, 403 for a valid session below the required access.
type Middleware struct {
	Manager *Manager
	Logger  *slog.Logger
}

// LoadSession resolves the bearer token into a session context and attaches
// it to the request. Requests without a valid token proceed as Guest.
func (m Middleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc := m.Manager.GetSessionContext(r.Context(), BearerToken(r))
		if sc == nil {
			guest := m.Manager.CreateGuestContext()
			sc = &guest
		}
		next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sc)))
	})
}

// RequireRole ensures the caller holds at least min in the privilege order.
func (m Middleware) RequireRole(min rbac.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc := SessionFromContext(r.Context())
			if sc == nil || !sc.Authenticated {
				httpx.RespondError(w, HTTPError(ErrNotAuthenticated))
				return
			}
			if !sc.Role.AtLeast(min) {
				httpx.RespondError(w, HTTPError(&InsufficientRoleError{Required: min}))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission ensures the caller holds at least one of the required
// permissions. An empty requirement passes everything through.
func (m Middleware) RequirePermission(perms ...rbac.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(perms) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			sc := SessionFromContext(r.Context())
			if sc == nil || !sc.Authenticated {
				httpx.RespondError(w, HTTPError(ErrNotAuthenticated))
				return
			}
			if hasAnyPermission(sc.Permissions, perms) {
				next.ServeHTTP(w, r)
				return
			}
			httpx.RespondError(w, fmt.Errorf("%w: missing permission", httpx.ErrForbidden))
		})
	}
}

// BearerToken extracts the opaque session token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func hasAnyPermission(granted []rbac.Permission, required []rbac.Permission) bool {
	set := make(map[rbac.Permission]struct{}, len(granted))
	for _, p := range granted {
		set[p] = struct{}{}
	}
	for _, p := range required {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}
