package mirror

import (
	"strings"
	"sync"
	"time"

	"campus-clinic-backend/internal/model"
)

// Identity is the logged-in user as far as the client cares: enough to
// decide which mirror entries are "mine".
type Identity struct {
	UserID string
	Email  string
	Roll   string
}

// Owns reports whether the gate pass belongs to this identity: email or
// roll match, matching the server's userId-or-email query semantics.
func (id Identity) Owns(gp model.GatePass) bool {
	if id.Email != "" && strings.EqualFold(gp.StudentEmail, id.Email) {
		return true
	}
	if id.UserID != "" && gp.UserID == id.UserID {
		return true
	}
	return id.Roll != "" && gp.StudentRoll == id.Roll
}

// Session holds one user's client-side state. It is created on login or
// restore and closed on logout; there is no process-global current user.
type Session struct {
	identity Identity
	notifier *Notifier
	mirror   *Mirror

	mu      sync.Mutex
	pollers []*Poller
	closed  bool
}

func NewSession(identity Identity) *Session {
	n := NewNotifier()
	return &Session{
		identity: identity,
		notifier: n,
		mirror:   NewMirror(identity.Email, n),
	}
}

func (s *Session) Identity() Identity { return s.identity }
func (s *Session) Mirror() *Mirror    { return s.mirror }
func (s *Session) Notifier() *Notifier {
	return s.notifier
}

// Poll runs fn at the given interval until the session is closed. Used for
// near-real-time propagation of HOD decisions into student views.
func (s *Session) Poll(interval time.Duration, fn func()) *Poller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	p := StartPoller(interval, fn)
	s.pollers = append(s.pollers, p)
	return p
}

// Close stops all polling. The mirror itself is kept; a later session may
// still read it for offline fallback.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, p := range s.pollers {
		p.Stop()
	}
	s.pollers = nil
}
