package session

import (
	"context"
	"sync"
	"time"

	"github.com/caredesk-hq/caredesk/internal/rbac"
)

// MemoryStore keeps sessions in a mutex-guarded map. Sessions live until
// explicit removal; no TTL-based expiry exists for this backend.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]UserSession
}

// NewMemoryStore constructs an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]UserSession)}
}

// Create stores the session under a new token.
func (s *MemoryStore) Create(ctx context.Context, sess UserSession) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	sess.Token = token
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()
	return token, nil
}

// Get returns a copy of the stored session. The permission slice is cloned
// so the stored value cannot be reached through the copy.
func (s *MemoryStore) Get(ctx context.Context, token string) (*UserSession, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	sess.Permissions = append([]rbac.Permission(nil), sess.Permissions...)
	return &sess, true
}

// Remove deletes the session for the token.
func (s *MemoryStore) Remove(ctx context.Context, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return false
	}
	delete(s.sessions, token)
	return true
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var _ Store = (*MemoryStore)(nil)
