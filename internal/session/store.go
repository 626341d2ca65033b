// Package session owns the lifecycle of login sessions: creation with an
// unguessable token, lookup, and removal. Callers only ever hold the token,
// never a mutable reference to a stored session.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes is the raw entropy per token before encoding.
const tokenBytes = 32

// Store is a concurrent token-to-session map. Implementations must be safe
// under simultaneous Create/Get/Remove calls and must never mutate a stored
// session in place.
type Store interface {
	// Create stores the session under a freshly generated token and
	// returns the token. The Token and CreatedAt fields of the input are
	// populated by the store.
	Create(ctx context.Context, sess UserSession) (string, error)
	// Get returns a copy of the session for the token, or false when the
	// token is unknown.
	Get(ctx context.Context, token string) (*UserSession, bool)
	// Remove deletes the session. Removing an unknown token returns false
	// without error.
	Remove(ctx context.Context, token string) bool
}

// generateToken returns a 256-bit random token encoded as URL-safe base64.
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
