package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	invoiceform "github.com/porticus-lab/go-invoice-form"
)

const sessionCookie = "invoice_session"

const (
	// DefaultSessionTTL is how long an untouched session is kept.
	DefaultSessionTTL = 24 * time.Hour
	// DefaultMaxSessions caps the number of live sessions.
	DefaultMaxSessions = 10000
)

type session struct {
	form     *invoiceform.Form
	lastSeen time.Time
}

// Store keeps one form per browser session in memory. Sessions idle for
// longer than the TTL are dropped, and once the store is full the least
// recently used session makes room for a new one. Sessions are lost when
// the process exits.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	max      int
	now      func() time.Time
}

// StoreOption configures a [Store].
type StoreOption func(*Store)

// WithSessionTTL sets the idle time after which a session expires.
// Non-positive values are ignored.
func WithSessionTTL(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithMaxSessions caps the number of live sessions. Non-positive values
// are ignored.
func WithMaxSessions(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.max = n
		}
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[string]*session),
		ttl:      DefaultSessionTTL,
		max:      DefaultMaxSessions,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get returns the form of session id and marks the session as used.
func (s *Store) Get(id string) (*invoiceform.Form, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(sess.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastSeen = now
	return sess.form, true
}

// Create starts a new session holding a fresh form. Expired sessions are
// swept first; if the store is still full the oldest session is evicted.
func (s *Store) Create() (string, *invoiceform.Form) {
	id := uuid.NewString()
	f := invoiceform.NewForm()

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweep(now)
	for len(s.sessions) >= s.max {
		s.evictOldest()
	}
	s.sessions[id] = &session{form: f, lastSeen: now}
	return id, f
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sweep drops expired sessions. The caller holds s.mu.
func (s *Store) sweep(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

// evictOldest drops the least recently used session. The caller holds s.mu.
func (s *Store) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, sess := range s.sessions {
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID, oldest = id, sess.lastSeen
		}
	}
	delete(s.sessions, oldestID)
}

// lookup returns the form bound to the request's cookie, if any.
func (s *Store) lookup(r *http.Request) (*invoiceform.Form, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	return s.Get(c.Value)
}

// peek returns the request's form for read-only use. Requests without a
// session see a fresh form that is not stored.
func (s *Store) peek(r *http.Request) *invoiceform.Form {
	if f, ok := s.lookup(r); ok {
		return f
	}
	return invoiceform.NewForm()
}

// session returns the form bound to the request's cookie, creating a new
// session and setting the cookie when there is none.
func (s *Store) session(w http.ResponseWriter, r *http.Request) *invoiceform.Form {
	if f, ok := s.lookup(r); ok {
		return f
	}
	id, f := s.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return f
}
