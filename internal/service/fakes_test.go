package service

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

type fakeSource struct {
	name  string
	words []entities.WordEntry
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context) ([]entities.WordEntry, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.words, f.err
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*QuizEngine
	seen     map[string]time.Time
	now      time.Time
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		sessions: make(map[string]*QuizEngine),
		seen:     make(map[string]time.Time),
		now:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeSessions) Create(key string, engine *QuizEngine) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[key] = engine
	f.seen[key] = f.now
}

func (f *fakeSessions) Get(key string) (*QuizEngine, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.sessions[key]
	if ok {
		f.seen[key] = f.now
	}
	return e, ok
}

func (f *fakeSessions) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, key)
	delete(f.seen, key)
}

func (f *fakeSessions) Sweep(olderThan time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for key, at := range f.seen {
		if at.Before(olderThan) {
			delete(f.sessions, key)
			delete(f.seen, key)
			n++
		}
	}
	return n
}

func (f *fakeSessions) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

type staticCatalog struct {
	words []entities.WordEntry
	err   error
}

func (c staticCatalog) Words() ([]entities.WordEntry, error) {
	return c.words, c.err
}
