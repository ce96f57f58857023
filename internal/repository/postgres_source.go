package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
)

// PostgresSource reads word and meaning columns from a PostgreSQL table.
type PostgresSource struct {
	dsn     string
	table   string
	pool    postgres.PoolConfig
	timeout time.Duration
}

// NewPostgresSource creates a new PostgresSource.
func NewPostgresSource(dsn, table string, pool postgres.PoolConfig, timeout time.Duration) *PostgresSource {
	return &PostgresSource{dsn: dsn, table: table, pool: pool, timeout: timeout}
}

func (s *PostgresSource) Name() string {
	return "postgres table " + s.table
}

// Fetch opens a short-lived pool, reads the table and closes the pool.
// The list is loaded once per process, so no connection is kept around.
func (s *PostgresSource) Fetch(ctx context.Context) ([]entities.WordEntry, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, s.dsn, s.pool)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	query := fmt.Sprintf(
		`SELECT word, meaning FROM %s WHERE word <> '' ORDER BY word`,
		pgx.Identifier{s.table}.Sanitize(),
	)

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}

	words, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.WordEntry])
	if err != nil {
		return nil, fmt.Errorf("scan words: %w", err)
	}

	return compact(words), nil
}
