package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "formwizard_session"

// DefaultSessionTTL is the idle time after which a session is dropped.
const DefaultSessionTTL = 30 * time.Minute

type session struct {
	id     string
	csrf   string
	wizard *wizard.Wizard
	seen   time.Time
}

// sessionStore keeps sessions in memory. Expired sessions are evicted lazily
// on access; a session that is still submitting is never evicted.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session

	ttl      time.Duration
	now      func() time.Time
	build    func() *wizard.Wizard
	onOpen   func()
	onExpire func()
}

func newSessionStore(ttl time.Duration, now func() time.Time, build func() *wizard.Wizard) *sessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      now,
		build:    build,
		onOpen:   func() {},
		onExpire: func() {},
	}
}

func (s *sessionStore) create() *session {
	sess := &session{
		id:     uuid.NewString(),
		csrf:   uuid.NewString(),
		wizard: s.build(),
	}

	s.mu.Lock()
	s.sweepLocked()
	sess.seen = s.now()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.onOpen()
	return sess
}

// get returns the live session for id and refreshes its idle timer.
func (s *sessionStore) get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.seen = s.now()
	return sess, true
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *sessionStore) sweepLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if !sess.seen.Before(cutoff) {
			continue
		}
		if sess.wizard.Snapshot().Status == wizard.StatusSubmitting {
			continue
		}
		delete(s.sessions, id)
		s.onExpire()
	}
}
