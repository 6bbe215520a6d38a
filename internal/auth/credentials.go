package auth

import (
	"context"
	"fmt"
	"strings"
)

// CredentialEntry pairs a user profile with its password hash.
type CredentialEntry struct {
	PasswordHash string
	User         User
}

// CredentialStore resolves an email to its credential entry. Lookup is pure
// and case-insensitive; an unknown email returns ok=false, never an error.
type CredentialStore interface {
	Lookup(ctx context.Context, email string) (CredentialEntry, bool)
}

// MemoryCredentials is a static in-memory CredentialStore. It stands in for
// a real identity provider; swapping it out only requires implementing
// CredentialStore.
type MemoryCredentials struct {
	entries map[string]CredentialEntry
}

var _ CredentialStore = (*MemoryCredentials)(nil)

// NewMemoryCredentials builds a store from entries keyed by any-cased email.
func NewMemoryCredentials(entries []CredentialEntry) *MemoryCredentials {
	m := &MemoryCredentials{entries: make(map[string]CredentialEntry, len(entries))}
	for _, e := range entries {
		m.entries[strings.ToLower(strings.TrimSpace(e.User.Email))] = e
	}
	return m
}

func (m *MemoryCredentials) Lookup(ctx context.Context, email string) (CredentialEntry, bool) {
	e, ok := m.entries[strings.ToLower(strings.TrimSpace(email))]
	return e, ok
}

// DefaultCredentials seeds the two authorized command-center identities.
// Passwords are hashed at construction; nothing downstream ever sees a
// plaintext secret.
func DefaultCredentials() (*MemoryCredentials, error) {
	seed := []struct {
		password string
		user     User
	}{
		{
			password: "VitalCEO2024!",
			user: User{
				Email: "admin@vitalvida.ng",
				Role:  RoleCEO,
				Name:  "CEO - Vitalvida",
				Permissions: map[Panel]Capability{
					PanelDangote:     {View: true},
					PanelElumelu:     {View: true},
					PanelAudit:       {View: true, Override: true},
					PanelOlsavsky:    {View: true},
					PanelBookkeeping: {View: true},
				},
			},
		},
		{
			password: "VitalFC2024!",
			user: User{
				Email: "vitalvidafinancecfo@gmail.com",
				Role:  RoleFinancialController,
				Name:  "Financial Controller",
				Permissions: map[Panel]Capability{
					PanelDangote:     {View: true, Edit: true},
					PanelElumelu:     {View: true, Edit: true},
					PanelAudit:       {View: true, Edit: true},
					PanelOlsavsky:    {View: true, Edit: true},
					PanelBookkeeping: {View: true, Edit: true},
				},
			},
		},
	}

	entries := make([]CredentialEntry, 0, len(seed))
	for _, s := range seed {
		hash, err := HashPassword(s.password)
		if err != nil {
			return nil, fmt.Errorf("hash credentials for %s: %w", s.user.Email, err)
		}
		entries = append(entries, CredentialEntry{PasswordHash: hash, User: s.user})
	}
	return NewMemoryCredentials(entries), nil
}
