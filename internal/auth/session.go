package auth

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/dvonne2/vitalvida-command-center-elite/internal/audit"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/obs"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/store"
)

// sessionKey is the durable storage slot holding the logged-in user.
const sessionKey = "auth_user"

// SessionManager owns the single process-wide session slot. All reads go
// through Current; nothing else mutates the slot. Dependencies are injected
// at the composition root, there is no package-level singleton.
type SessionManager struct {
	mu      sync.Mutex
	creds   CredentialStore
	trail   *audit.Log
	kv      store.KV
	current *User
}

func NewSessionManager(creds CredentialStore, trail *audit.Log, kv store.KV) *SessionManager {
	return &SessionManager{creds: creds, trail: trail, kv: kv}
}

// Restore loads a previously persisted session. Malformed or unreadable
// state is discarded and the manager stays anonymous; startup never fails
// because of a corrupt session.
func (s *SessionManager) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.kv.Get(ctx, sessionKey)
	if err != nil {
		obs.LogEvent(map[string]any{"level": "warn", "msg": "session restore read failed", "error": err.Error()})
		return
	}
	if !ok {
		return
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil || strings.TrimSpace(u.Email) == "" {
		obs.LogEvent(map[string]any{"level": "warn", "msg": "discarding corrupt persisted session"})
		if err := s.kv.Delete(ctx, sessionKey); err != nil {
			obs.LogEvent(map[string]any{"level": "warn", "msg": "session cleanup failed", "error": err.Error()})
		}
		return
	}
	s.current = &u
}

// Generic user-facing login messages. Neither reveals which half of the
// credential was wrong; the specifics live only in the audit trail.
const (
	MsgUnauthorized       = "Unauthorized access attempt logged"
	MsgInvalidCredentials = "Invalid credentials"
)

// Login authenticates the pair against the credential store. The returned
// message is safe to show to the caller; the underlying cause is recorded
// in the audit trail, never exposed.
func (s *SessionManager) Login(ctx context.Context, email, password string) (bool, string) {
	email = strings.TrimSpace(email)

	entry, ok := s.creds.Lookup(ctx, email)
	if !ok {
		s.trail.Append(ctx, audit.Event{Action: "Unauthorized login attempt: " + email})
		obs.CountLogin("unauthorized")
		return false, MsgUnauthorized
	}
	if err := VerifyPassword(entry.PasswordHash, password); err != nil {
		s.trail.Append(ctx, audit.Event{Action: "Failed login attempt: " + email})
		obs.CountLogin("failed")
		return false, MsgInvalidCredentials
	}

	user := entry.User

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	s.persist(ctx, &user)
	s.trail.Append(ctx, audit.Event{Action: "Successful login: " + user.Email, Actor: user.Email})
	obs.CountLogin("success")
	return true, "Welcome, " + user.Name
}

// Logout clears the session. With no active session it is a no-op and
// appends nothing.
func (s *SessionManager) Logout(ctx context.Context) {
	s.mu.Lock()
	user := s.current
	s.current = nil
	s.mu.Unlock()

	if user == nil {
		return
	}
	s.trail.Append(ctx, audit.Event{Action: "Logout: " + user.Email, Actor: user.Email})
	if err := s.kv.Delete(ctx, sessionKey); err != nil {
		obs.LogEvent(map[string]any{"level": "warn", "msg": "session delete failed", "error": err.Error()})
	}
}

// Current returns the logged-in user, or nil when anonymous.
func (s *SessionManager) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *SessionManager) persist(ctx context.Context, u *User) {
	data, err := json.Marshal(u)
	if err != nil {
		obs.LogEvent(map[string]any{"level": "warn", "msg": "session marshal failed", "error": err.Error()})
		return
	}
	// Persistence failures must not undo the in-memory login.
	if err := s.kv.Set(ctx, sessionKey, data); err != nil {
		obs.LogEvent(map[string]any{"level": "warn", "msg": "session persist failed", "error": err.Error()})
	}
}
