package service

import (
	"context"
	"time"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// WordSource fetches a word list from one location.
type WordSource interface {
	Name() string
	Fetch(ctx context.Context) ([]entities.WordEntry, error)
}

// SessionStorage keeps one engine per quiz session.
type SessionStorage interface {
	Create(key string, engine *QuizEngine)
	Get(key string) (*QuizEngine, bool)
	Delete(key string)
	Sweep(olderThan time.Time) int
	Len() int
}

// StoreResult reports the effect of one WordSink.Store call.
type StoreResult struct {
	Created int // words that were not in the table before
	Total   int // rows in the table after the store
}

// WordSink stores a word list into a table.
type WordSink interface {
	Name() string
	Store(ctx context.Context, words []entities.WordEntry) (StoreResult, error)
}
