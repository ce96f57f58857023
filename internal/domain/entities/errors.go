package entities

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientData    = errors.New("not enough words to generate options")
	ErrNoFallbackAvailable = errors.New("word source failed and no fallback source is configured")
	ErrNotLoaded           = errors.New("word list is not loaded")
	ErrSessionNotFound     = errors.New("quiz session not found")
	ErrWordsLoading        = errors.New("word list is still loading")
)

// DataFetchError reports a failure to fetch words from a source.
type DataFetchError struct {
	Source string // source name, e.g. "http https://example.com/words.json"
	Err    error
}

func (e *DataFetchError) Error() string {
	return fmt.Sprintf("fetch words from %s: %v", e.Source, e.Err)
}

func (e *DataFetchError) Unwrap() error {
	return e.Err
}
