package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

var (
	ErrEmptySource   = errors.New("word source is empty")
	ErrInvalidFormat = errors.New("invalid word list format")
)

// EmbeddedKeyword selects the word list compiled into the binary.
const EmbeddedKeyword = "embedded"

// SourceOptions carries settings shared by the word sources.
type SourceOptions struct {
	Table   string              // table read by SQL sources
	Sheet   string              // sheet read by the xlsx source; first sheet when empty
	Timeout time.Duration       // bound for one fetch
	Pool    postgres.PoolConfig // pool limits for postgres locations
}

// NewSource builds a word source from a location string:
//
//	embedded                     built-in list
//	http(s)://host/words.json    JSON over HTTP
//	postgres://user@host/db      table in PostgreSQL
//	sqlite://path/to/words.db    table in SQLite
//	path/to/words.xlsx           spreadsheet, columns A (word) and B (meaning)
//	path/to/words.json           JSON file
func NewSource(location string, opts SourceOptions) (service.WordSource, error) {
	location = strings.TrimSpace(location)
	if opts.Table == "" {
		opts.Table = "words"
	}

	switch {
	case location == "":
		return nil, ErrEmptySource
	case location == EmbeddedKeyword:
		return NewEmbeddedSource(), nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, nil, opts.Timeout), nil
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		return NewPostgresSource(location, opts.Table, opts.Pool, opts.Timeout), nil
	case strings.HasPrefix(location, "sqlite://"):
		return NewSQLiteSource(strings.TrimPrefix(location, "sqlite://"), opts.Table, opts.Timeout), nil
	case strings.EqualFold(filepath.Ext(location), ".xlsx"):
		return NewXLSXSource(location, opts.Sheet), nil
	default:
		return NewFileSource(location), nil
	}
}

// FileSource reads a JSON word list from disk.
type FileSource struct {
	path string
}

// NewFileSource creates a new FileSource.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file " + s.path
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) ([]entities.WordEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	return decodeWords(data)
}

// decodeWords accepts either a bare JSON array or an object with a "words" array.
func decodeWords(data []byte) ([]entities.WordEntry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidFormat)
	}

	var words []entities.WordEntry
	if data[0] == '[' {
		if err := json.Unmarshal(data, &words); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
		return compact(words), nil
	}

	var wrapper struct {
		Words []entities.WordEntry `json:"words"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	return compact(wrapper.Words), nil
}

// compact drops entries without a word and trims surrounding whitespace.
func compact(words []entities.WordEntry) []entities.WordEntry {
	return lo.FilterMap(words, func(w entities.WordEntry, _ int) (entities.WordEntry, bool) {
		if w.IsBlank() {
			return entities.WordEntry{}, false
		}
		return entities.WordEntry{
			Word:    strings.TrimSpace(w.Word),
			Meaning: strings.TrimSpace(w.Meaning),
		}, true
	})
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
