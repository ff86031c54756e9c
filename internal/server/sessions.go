package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/f3rmion/abc/internal/lesson"
)

// Session is one browser tracing page. The controller is not safe for
// concurrent use, so every access goes through mu.
type Session struct {
	ID string

	mu       sync.Mutex
	ctl      *lesson.Controller
	lastSeen time.Time
}

// SessionStore keeps sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	newCtl   func() *lesson.Controller
	now      func() time.Time
}

// NewSessionStore creates an empty store. newCtl builds the controller for
// each new session.
func NewSessionStore(newCtl func() *lesson.Controller) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		newCtl:   newCtl,
		now:      time.Now,
	}
}

// Create starts a session on the first letter.
func (s *SessionStore) Create() *Session {
	sess := &Session{ID: uuid.NewString(), ctl: s.newCtl(), lastSeen: s.now()}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns a session by id.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Prune drops sessions idle for longer than ttl and returns how many went.
func (s *SessionStore) Prune(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Do runs fn with the session locked and returns its snapshot afterwards.
func (s *SessionStore) Do(sess *Session, fn func(ctl *lesson.Controller)) SessionView {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if fn != nil {
		fn(sess.ctl)
	}
	sess.lastSeen = s.now()
	return viewOf(sess)
}

// SessionView is the JSON form of a session.
type SessionView struct {
	ID        string `json:"id"`
	Letter    string `json:"letter"`
	Index     int    `json:"index"`
	Attempts  int    `json:"attempts"`
	Tracing   bool   `json:"tracing"`
	MinPoints int    `json:"min_points"`
	Message   string `json:"message"`
}

func viewOf(sess *Session) SessionView {
	return SessionView{
		ID:        sess.ID,
		Letter:    string(sess.ctl.Letter()),
		Index:     sess.ctl.Index(),
		Attempts:  sess.ctl.Attempts(),
		Tracing:   sess.ctl.Tracing(),
		MinPoints: sess.ctl.MinPoints(),
		Message:   sess.ctl.Message(),
	}
}
