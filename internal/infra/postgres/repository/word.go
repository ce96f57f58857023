package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
)

// WordRepository writes word lists into a PostgreSQL table.
type WordRepository struct {
	db    postgres.DBTX
	table string
}

// NewWordRepository creates a new WordRepository for table.
func NewWordRepository(db postgres.DBTX, table string) *WordRepository {
	return &WordRepository{db: db, table: table}
}

// EnsureTable creates the words table when it does not exist.
func (r *WordRepository) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			word    TEXT PRIMARY KEY,
			meaning TEXT NOT NULL
		)
	`, pgx.Identifier{r.table}.Sanitize())

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create words table: %w", err)
	}
	return nil
}

// Upsert inserts words, replacing the meaning of words already present.
// It returns how many rows were inserted rather than updated.
func (r *WordRepository) Upsert(ctx context.Context, words []entities.WordEntry) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (word, meaning)
		VALUES ($1, $2)
		ON CONFLICT (word) DO UPDATE SET
			meaning = EXCLUDED.meaning
		RETURNING (xmax = 0) AS created
	`, pgx.Identifier{r.table}.Sanitize())

	batch := &pgx.Batch{}
	for _, w := range words {
		batch.Queue(query, w.Word, w.Meaning)
	}

	results := r.db.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	created := 0
	for _, w := range words {
		var isNew bool
		if err := results.QueryRow().Scan(&isNew); err != nil {
			return created, fmt.Errorf("upsert word %q: %w", w.Word, err)
		}
		if isNew {
			created++
		}
	}

	return created, nil
}

// Count returns the number of rows in the table.
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, pgx.Identifier{r.table}.Sanitize())

	var n int
	if err := r.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}
