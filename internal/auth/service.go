package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/caredesk-hq/caredesk/internal/audit"
	"github.com/caredesk-hq/caredesk/internal/observability"
	"github.com/caredesk-hq/caredesk/internal/rbac"
	"github.com/caredesk-hq/caredesk/internal/session"
)

// Manager orchestrates identity lookup, role derivation, session lifecycle
// and authorization decisions. It owns no transport concerns: every failure
// is a typed return value for the boundary layer to map.
type Manager struct {
	logger  *slog.Logger
	repo    Repository
	store   session.Store
	engine  *rbac.Engine
	auditor *audit.Service
	metrics *observability.Metrics
}

// NewManager constructs a Manager. auditor and metrics may be nil.
func NewManager(logger *slog.Logger, repo Repository, store session.Store, engine *rbac.Engine, auditor *audit.Service, metrics *observability.Metrics) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		logger:  logger,
		repo:    repo,
		store:   store,
		engine:  engine,
		auditor: auditor,
		metrics: metrics,
	}
}

// Authenticate resolves the identifier against the directory, derives the
// role, and creates a session. No session is created when the lookup fails.
func (m *Manager) Authenticate(ctx context.Context, email, ip, ua string) (*session.UserSession, error) {
	record, err := m.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	role := m.deriveRole(record)
	sess := session.UserSession{
		CustomerID: record.CustomerID,
		Name:       record.Name,
		Email:      record.Email,
		Role:       role,
		// Flags are recomputed from the final role so they can never
		// contradict it.
		IsStaff:     role.AtLeast(rbac.RoleSupportAgent),
		IsAdmin:     role.AtLeast(rbac.RoleAdmin),
		Permissions: rbac.PermissionsFor(role).List(),
		CreatedAt:   time.Now().UTC(),
	}

	token, err := m.store.Create(ctx, sess)
	if err != nil {
		return nil, err
	}
	sess.Token = token

	if err := m.repo.RecordLogin(ctx, token, sess.CustomerID, role.String(), ip, ua); err != nil {
		m.logger.Warn("record login", slog.Any("error", err))
	}
	m.metrics.SessionOpened()
	m.auditor.Record(ctx, audit.Event{
		ActorID:   sess.CustomerID,
		Role:      role.String(),
		Operation: "login",
		Outcome:   audit.OutcomeLogin,
	})

	return &sess, nil
}

// deriveRole applies the derivation order: explicit role first, then the
// admin/staff flags, then presence of a customer id. Unrecognized explicit
// roles fall back to Guest with a warning, never a hard failure.
func (m *Manager) deriveRole(record *IdentityRecord) rbac.Role {
	if record.Role != "" {
		role, err := rbac.ParseRole(record.Role)
		if err != nil {
			m.logger.Warn("unknown role string, falling back to guest",
				slog.String("role", record.Role),
				slog.String("email", record.Email))
			return rbac.RoleGuest
		}
		return role
	}
	switch {
	case record.IsAdmin:
		return rbac.RoleAdmin
	case record.IsStaff:
		return rbac.RoleSupportAgent
	case record.CustomerID != 0:
		return rbac.RoleCustomer
	default:
		return rbac.RoleGuest
	}
}

// Authorize answers whether the operation, acting through the session behind
// token, may target the given customer. A missing or unknown token is
// evaluated as Guest.
func (m *Manager) Authorize(ctx context.Context, token, operation string, targetCustomerID int64) rbac.Decision {
	query := rbac.Query{
		Role:             rbac.RoleGuest,
		Operation:        operation,
		TargetCustomerID: targetCustomerID,
	}
	var actorID int64
	if token != "" {
		if sess, ok := m.store.Get(ctx, token); ok {
			query.Role = sess.Role
			query.ActingCustomerID = sess.CustomerID
			actorID = sess.CustomerID
		}
	}

	decision := m.engine.Authorize(query)
	if decision.Authorized {
		m.metrics.RecordDecision("granted", "")
	} else {
		m.metrics.RecordDecision("denied", decision.Reason)
		m.auditor.Record(ctx, audit.Event{
			ActorID:   actorID,
			Role:      query.Role.String(),
			Operation: operation,
			TargetID:  targetCustomerID,
			Outcome:   audit.OutcomeDenied,
			Reason:    decision.Reason,
		})
	}
	return decision
}

// GetSessionContext projects the stored session into the context shape
// consumed by the query layer. Unknown tokens return nil.
func (m *Manager) GetSessionContext(ctx context.Context, token string) *SessionContext {
	if token == "" {
		return nil
	}
	sess, ok := m.store.Get(ctx, token)
	if !ok {
		return nil
	}
	return &SessionContext{
		Authenticated: true,
		CustomerID:    sess.CustomerID,
		Name:          sess.Name,
		Email:         sess.Email,
		Role:          sess.Role,
		RoleName:      sess.Role.String(),
		Permissions:   append([]rbac.Permission(nil), sess.Permissions...),
		IsStaff:       sess.IsStaff,
		IsAdmin:       sess.IsAdmin,
		Token:         sess.Token,
		LoginAt:       sess.CreatedAt,
	}
}

// Logout removes the session. Logging out an unknown token returns false
// without error.
func (m *Manager) Logout(ctx context.Context, token string) bool {
	sess, _ := m.store.Get(ctx, token)
	removed := m.store.Remove(ctx, token)
	if !removed {
		return false
	}
	if err := m.repo.RecordLogout(ctx, token); err != nil {
		m.logger.Warn("record logout", slog.Any("error", err))
	}
	m.metrics.SessionClosed()
	if sess != nil {
		m.auditor.Record(ctx, audit.Event{
			ActorID:   sess.CustomerID,
			Role:      sess.Role.String(),
			Operation: "logout",
			Outcome:   audit.OutcomeLogout,
		})
	}
	return true
}

// RequireRole verifies the session's role sits at or above min in the
// privilege order.
func (m *Manager) RequireRole(ctx context.Context, token string, min rbac.Role) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	sess, ok := m.store.Get(ctx, token)
	if !ok {
		return ErrNotAuthenticated
	}
	if !sess.Role.AtLeast(min) {
		return &InsufficientRoleError{Required: min}
	}
	return nil
}

// CreateGuestContext returns the constant unauthenticated context. It never
// touches the session store.
func (m *Manager) CreateGuestContext() SessionContext {
	return SessionContext{
		Authenticated: false,
		Role:          rbac.RoleGuest,
		RoleName:      rbac.RoleGuest.String(),
		Permissions:   rbac.PermissionsFor(rbac.RoleGuest).List(),
	}
}

// IsAuthError reports whether err belongs to the authentication taxonomy.
func IsAuthError(err error) bool {
	var insufficient *InsufficientRoleError
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrNotAuthenticated) ||
		errors.As(err, &insufficient)
}
