package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"adstudio/internal/metrics"
)

// Session is the server-side state of one browser.
type Session struct {
	ID       string
	Shell    *Shell
	lastSeen time.Time
}

// Store keeps sessions in memory. Nothing survives a restart, and sessions idle
// for longer than the configured timeout are dropped along with their state.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idle     time.Duration
	deps     Deps
	now      func() time.Time
}

func NewStore(deps Deps, idle time.Duration) *Store {
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	return &Store{
		sessions: make(map[string]*Session),
		idle:     idle,
		deps:     deps,
		now:      time.Now,
	}
}

// Get returns the live session for id and marks it as used.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(sess.lastSeen) > s.idle {
		s.evictLocked(id, sess)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

// Create starts a session with no workflow selected.
func (s *Store) Create() *Session {
	sess := &Session{ID: uuid.NewString(), Shell: NewShell(s.deps)}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.lastSeen = s.now()
	s.sessions[sess.ID] = sess
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return sess
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts idle sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.idle {
			s.evictLocked(id, sess)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done, then closes all sessions.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.deps.Logger.Debug().Int("evicted", n).Msg("swept idle sessions")
			}
		}
	}
}

func (s *Store) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		s.evictLocked(id, sess)
	}
}

func (s *Store) evictLocked(id string, sess *Session) {
	delete(s.sessions, id)
	sess.Shell.Close()
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}
