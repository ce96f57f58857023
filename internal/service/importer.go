package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// ImportResult summarizes one import run.
type ImportResult struct {
	Read    int // entries read from the source
	Stored  int // distinct entries written to the sink
	Created int // entries that were not in the sink before
	Total   int // rows in the sink after the import
}

// WordImporter copies a word list from a source into a sink.
type WordImporter struct {
	source WordSource
	sink   WordSink
	logger *zap.Logger
}

// NewWordImporter creates a new WordImporter.
func NewWordImporter(source WordSource, sink WordSink, logger *zap.Logger) *WordImporter {
	return &WordImporter{source: source, sink: sink, logger: logger}
}

// Import fetches the source list, keeps the first entry of every word and stores the
// result. A list that could not back a quiz is rejected before anything is written.
func (i *WordImporter) Import(ctx context.Context) (ImportResult, error) {
	words, err := i.source.Fetch(ctx)
	if err != nil {
		return ImportResult{}, &entities.DataFetchError{Source: i.source.Name(), Err: err}
	}

	unique := lo.UniqBy(words, func(w entities.WordEntry) string {
		return strings.TrimSpace(w.Word)
	})
	if err := entities.ValidateWords(unique); err != nil {
		return ImportResult{}, err
	}

	stored, err := i.sink.Store(ctx, unique)
	if err != nil {
		return ImportResult{}, fmt.Errorf("store into %s: %w", i.sink.Name(), err)
	}

	res := ImportResult{
		Read:    len(words),
		Stored:  len(unique),
		Created: stored.Created,
		Total:   stored.Total,
	}
	i.logger.Info("word list imported",
		zap.String("source", i.source.Name()),
		zap.String("sink", i.sink.Name()),
		zap.Int("read", res.Read),
		zap.Int("stored", res.Stored),
		zap.Int("created", res.Created),
		zap.Int("total", res.Total),
	)

	return res, nil
}
