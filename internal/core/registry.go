package core

import (
	"crypto/subtle"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Limits applied during name and body normalization.
const (
	NameMaxLen = 48
	BodyMaxLen = 2000
)

// IdentityStore is the durable token -> display name mapping consulted
// on identify and flushed on rename and disconnect.
type IdentityStore interface {
	Lookup(token string) (name string, ok bool)
	Upsert(token, name string)
}

// Presence is one row of the user-list snapshot.
type Presence struct {
	Name  string
	Admin bool
}

// Registry is the single source of truth for live sessions and their
// privileges. All mutation is serialized behind one mutex; no lock is
// held across transport I/O.
type Registry struct {
	mu         sync.RWMutex
	sessions   []*Session // registration order
	secret     []byte
	identities IdentityStore
}

// NewRegistry builds a registry gated by adminKey and backed by the
// given identity store.
func NewRegistry(adminKey string, identities IdentityStore) *Registry {
	return &Registry{
		secret:     []byte(adminKey),
		identities: identities,
	}
}

// Register creates a session with a randomized guest name and adds it to
// the live set. The client's identity token is unknown until it sends an
// identify event.
func (r *Registry) Register() *Session {
	id := uuid.NewString()
	s := newSession(id, "guest_"+id[:8])

	r.mu.Lock()
	r.sessions = append(r.sessions, s)
	r.mu.Unlock()

	return s
}

// Identify binds an identity token to the session and resolves its
// display name: the requested name wins, then any name previously stored
// under the token, then the session's current name. An empty token mints
// a fresh one. Re-identifying with the same token and name only
// refreshes lastSeen.
func (r *Registry) Identify(s *Session, token, requested string) (name, boundToken string) {
	if token == "" {
		token = uuid.NewString()
	}

	name = normalizeName(requested)
	if name == "" {
		if stored, ok := r.identities.Lookup(token); ok && stored != "" {
			name = stored
		}
	}
	if name == "" {
		name = s.Name()
	}

	s.bind(token, name)
	r.identities.Upsert(token, name)
	return name, token
}

// Rename changes the session's display name. An empty name after
// normalization is rejected and the prior name is retained.
func (r *Registry) Rename(s *Session, newName string) (string, error) {
	name := normalizeName(newName)
	if name == "" {
		return "", ErrInvalidName
	}

	s.setName(name)
	if token := s.IdentityToken(); token != "" {
		r.identities.Upsert(token, name)
	}
	return name, nil
}

// SetAdmin grants the admin capability iff the provided secret matches
// the configured one. The comparison is constant-time.
func (r *Registry) SetAdmin(s *Session, providedSecret string) bool {
	if subtle.ConstantTimeCompare([]byte(providedSecret), r.secret) != 1 {
		return false
	}
	s.setAdmin(true)
	return true
}

// ClearAdmin unconditionally drops the admin capability.
func (r *Registry) ClearAdmin(s *Session) {
	s.setAdmin(false)
}

// Unregister removes the session from the live set and flushes its
// last-known name to the identity store if a token is bound.
func (r *Registry) Unregister(s *Session) {
	r.mu.Lock()
	for i, live := range r.sessions {
		if live == s {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	if token := s.IdentityToken(); token != "" {
		r.identities.Upsert(token, s.Name())
	}
}

// Snapshot returns a presence view of all live sessions, stable within
// one call.
func (r *Registry) Snapshot() []Presence {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Presence, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, Presence{Name: s.Name(), Admin: s.IsAdmin()})
	}
	return out
}

// Sessions returns a copy of the live set in registration order.
func (r *Registry) Sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, len(r.sessions))
	copy(out, r.sessions)
	return out
}

// FindByDisplayName returns the live session with the exact given name.
// Duplicate names are permitted; the first-registered session wins, so
// the tie-break is deterministic.
func (r *Registry) FindByDisplayName(name string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sessions {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func normalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if runes := []rune(name); len(runes) > NameMaxLen {
		name = string(runes[:NameMaxLen])
	}
	return strings.TrimSpace(name)
}
