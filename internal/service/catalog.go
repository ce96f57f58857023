package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// CatalogState is the load state of the process-wide word list.
type CatalogState string

const (
	CatalogLoading CatalogState = "loading"
	CatalogReady   CatalogState = "ready"
	CatalogFailed  CatalogState = "failed"
)

// Loader produces the word list once.
type Loader interface {
	Load(ctx context.Context) ([]entities.WordEntry, error)
}

// Catalog holds the result of the single startup load.
// A failed load is terminal; there is no retry.
type Catalog struct {
	loader Loader
	logger *zap.Logger

	mu    sync.RWMutex
	state CatalogState
	words []entities.WordEntry
	err   error
	done  chan struct{}
	once  sync.Once
}

// NewCatalog creates a catalog in the loading state.
func NewCatalog(loader Loader, logger *zap.Logger) *Catalog {
	return &Catalog{
		loader: loader,
		logger: logger,
		state:  CatalogLoading,
		done:   make(chan struct{}),
	}
}

// Start loads the word list in the background. Later calls do nothing.
func (c *Catalog) Start(ctx context.Context) {
	c.once.Do(func() {
		go c.load(ctx)
	})
}

func (c *Catalog) load(ctx context.Context) {
	words, err := c.loader.Load(ctx)

	c.mu.Lock()
	if err != nil {
		c.state = CatalogFailed
		c.err = err
	} else {
		c.state = CatalogReady
		c.words = words
	}
	c.mu.Unlock()
	close(c.done)

	if err != nil {
		c.logger.Error("word catalog failed", zap.Error(err))
		return
	}
	c.logger.Info("word catalog ready", zap.Int("words", len(words)))
}

// Snapshot returns the current state, the words when ready and the error when failed.
func (c *Catalog) Snapshot() (CatalogState, []entities.WordEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state, c.words, c.err
}

// Words returns the loaded words, ErrWordsLoading while loading, or the load error.
func (c *Catalog) Words() ([]entities.WordEntry, error) {
	state, words, err := c.Snapshot()
	switch state {
	case CatalogReady:
		return words, nil
	case CatalogFailed:
		return nil, err
	default:
		return nil, entities.ErrWordsLoading
	}
}

// Wait blocks until the load finished and returns its outcome.
func (c *Catalog) Wait(ctx context.Context) ([]entities.WordEntry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return c.Words()
	}
}
