package core

import "sync"

// sessionEventBuffer bounds the per-session outbound queue. A session
// that cannot drain this many events is treated as a failed delivery
// target rather than blocking fanout.
const sessionEventBuffer = 32

// Session is one live transport connection as seen by the core. The
// mutable identity fields are owned by the Registry; the transport layer
// references a session only through this handle.
type Session struct {
	ID     string
	Events chan *Event

	mu    sync.RWMutex
	name  string
	token string
	admin bool
}

func newSession(id, name string) *Session {
	return &Session{
		ID:     id,
		Events: make(chan *Event, sessionEventBuffer),
		name:   name,
	}
}

// Name returns the session's current display name.
func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// IsAdmin reports whether the session holds the admin capability.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// IdentityToken returns the bound identity token, empty until the
// session identifies.
func (s *Session) IdentityToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) setName(name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
}

func (s *Session) bind(token, name string) {
	s.mu.Lock()
	s.token = token
	s.name = name
	s.mu.Unlock()
}

func (s *Session) setAdmin(v bool) {
	s.mu.Lock()
	s.admin = v
	s.mu.Unlock()
}
