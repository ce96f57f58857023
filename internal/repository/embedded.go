package repository

import (
	"context"

	"github.com/aliskhannn/vocab-quiz/assets"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// EmbeddedSource serves the word list compiled into the binary.
type EmbeddedSource struct {
	data []byte
}

// NewEmbeddedSource creates a source over the built-in list.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{data: assets.Words()}
}

func (s *EmbeddedSource) Name() string {
	return EmbeddedKeyword
}

func (s *EmbeddedSource) Fetch(_ context.Context) ([]entities.WordEntry, error) {
	return decodeWords(s.data)
}
