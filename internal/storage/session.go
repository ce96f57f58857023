package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/vocab-quiz/internal/service"
)

type session struct {
	engine   *service.QuizEngine
	lastSeen time.Time
}

// SessionStorage provides in-memory storage for quiz engines by session key.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[string]*session
	now      func() time.Time
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// Create stores engine under key, replacing any previous session.
func (s *SessionStorage) Create(key string, engine *service.QuizEngine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = &session{engine: engine, lastSeen: s.now()}
}

// Get returns the engine for key and marks the session as recently used.
func (s *SessionStorage) Get(key string) (*service.QuizEngine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.engine, true
}

// Delete removes the session for key.
func (s *SessionStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}

// Sweep removes sessions last used before olderThan and returns how many were removed.
func (s *SessionStorage) Sweep(olderThan time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, sess := range s.sessions {
		if sess.lastSeen.Before(olderThan) {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
