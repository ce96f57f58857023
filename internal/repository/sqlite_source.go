package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// SQLiteSource reads word and meaning columns from a SQLite table.
type SQLiteSource struct {
	path    string
	table   string
	timeout time.Duration
}

// NewSQLiteSource creates a new SQLiteSource.
func NewSQLiteSource(path, table string, timeout time.Duration) *SQLiteSource {
	return &SQLiteSource{path: path, table: table, timeout: timeout}
}

func (s *SQLiteSource) Name() string {
	return "sqlite " + s.path
}

// Fetch opens the database read-only and reads the table.
func (s *SQLiteSource) Fetch(ctx context.Context) ([]entities.WordEntry, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "sqlite3", fmt.Sprintf("file:%s?mode=ro", s.path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()

	query := fmt.Sprintf(
		`SELECT word, meaning FROM %s WHERE word <> '' ORDER BY rowid`,
		quoteSQLiteIdent(s.table),
	)

	var words []entities.WordEntry
	if err := db.SelectContext(ctx, &words, query); err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}

	return compact(words), nil
}

func quoteSQLiteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
