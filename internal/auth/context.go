package auth

import "context"

type sessionContextKey struct{}

// ContextWithSession stores the session context in ctx.
func ContextWithSession(ctx context.Context, sc *SessionContext) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sc)
}

// SessionFromContext extracts the session context from ctx, or nil.
func SessionFromContext(ctx context.Context) *SessionContext {
	sc, _ := ctx.Value(sessionContextKey{}).(*SessionContext)
	return sc
}
