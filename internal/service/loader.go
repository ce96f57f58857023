package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// WordLoader loads the word list from a primary source and, when that fails,
// from an optional fallback source. It never retries a source.
type WordLoader struct {
	primary  WordSource
	fallback WordSource
	logger   *zap.Logger
}

// NewWordLoader creates a loader. fallback may be nil.
func NewWordLoader(primary, fallback WordSource, logger *zap.Logger) *WordLoader {
	return &WordLoader{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Load returns a validated word list.
//
// A primary fetch failure, or a primary list too short to quiz on, switches to the
// fallback. Failures of the fallback, or a missing fallback, are final.
func (l *WordLoader) Load(ctx context.Context) ([]entities.WordEntry, error) {
	words, err := l.fetch(ctx, l.primary)
	if err == nil {
		l.logger.Info("word list loaded",
			zap.String("source", l.primary.Name()),
			zap.Int("words", len(words)),
		)
		return words, nil
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if l.fallback == nil {
		l.logger.Error("word list unavailable and no fallback configured",
			zap.String("source", l.primary.Name()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", entities.ErrNoFallbackAvailable, err)
	}

	l.logger.Warn("primary word source failed, trying fallback",
		zap.String("source", l.primary.Name()),
		zap.String("fallback", l.fallback.Name()),
		zap.Error(err),
	)

	words, err = l.fetch(ctx, l.fallback)
	if err != nil {
		l.logger.Error("fallback word source failed",
			zap.String("source", l.fallback.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	l.logger.Info("word list loaded from fallback",
		zap.String("source", l.fallback.Name()),
		zap.Int("words", len(words)),
	)
	return words, nil
}

func (l *WordLoader) fetch(ctx context.Context, src WordSource) ([]entities.WordEntry, error) {
	words, err := src.Fetch(ctx)
	if err != nil {
		var fetchErr *entities.DataFetchError
		if errors.As(err, &fetchErr) {
			return nil, err
		}
		return nil, &entities.DataFetchError{Source: src.Name(), Err: err}
	}

	if err := entities.ValidateWords(words); err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}

	return words, nil
}
