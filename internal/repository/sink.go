package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/vocab-quiz/internal/infra/postgres/repository"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

var ErrUnsupportedSink = errors.New("unsupported word sink")

// NewSink builds a writable word table from a location string. Only SQL
// locations (postgres://, sqlite://) can be written to.
func NewSink(location string, opts SourceOptions) (service.WordSink, error) {
	location = strings.TrimSpace(location)
	if opts.Table == "" {
		opts.Table = "words"
	}

	switch {
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		return NewPostgresSink(location, opts.Table, opts.Pool, opts.Timeout), nil
	case strings.HasPrefix(location, "sqlite://"):
		return NewSQLiteSink(strings.TrimPrefix(location, "sqlite://"), opts.Table, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSink, location)
	}
}

// PostgresSink upserts words into a PostgreSQL table in one transaction.
type PostgresSink struct {
	dsn     string
	table   string
	pool    postgres.PoolConfig
	timeout time.Duration
}

// NewPostgresSink creates a new PostgresSink.
func NewPostgresSink(dsn, table string, pool postgres.PoolConfig, timeout time.Duration) *PostgresSink {
	return &PostgresSink{dsn: dsn, table: table, pool: pool, timeout: timeout}
}

func (s *PostgresSink) Name() string {
	return "postgres table " + s.table
}

// Store creates the table when needed, upserts words and counts the table.
func (s *PostgresSink) Store(ctx context.Context, words []entities.WordEntry) (service.StoreResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, s.dsn, s.pool)
	if err != nil {
		return service.StoreResult{}, err
	}
	defer pool.Close()

	var res service.StoreResult
	err = postgres.NewTransactor(pool).WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repo := pgrepo.NewWordRepository(tx, s.table)
		if err := repo.EnsureTable(ctx); err != nil {
			return err
		}

		created, err := repo.Upsert(ctx, words)
		if err != nil {
			return err
		}

		total, err := repo.Count(ctx)
		if err != nil {
			return err
		}

		res = service.StoreResult{Created: created, Total: total}
		return nil
	})
	if err != nil {
		return service.StoreResult{}, err
	}

	return res, nil
}

// SQLiteSink upserts words into a SQLite table, creating the file when missing.
type SQLiteSink struct {
	path    string
	table   string
	timeout time.Duration
}

// NewSQLiteSink creates a new SQLiteSink.
func NewSQLiteSink(path, table string, timeout time.Duration) *SQLiteSink {
	return &SQLiteSink{path: path, table: table, timeout: timeout}
}

func (s *SQLiteSink) Name() string {
	return "sqlite " + s.path
}

// Store creates the table when needed and upserts words in one transaction.
func (s *SQLiteSink) Store(ctx context.Context, words []entities.WordEntry) (service.StoreResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "sqlite3", fmt.Sprintf("file:%s?mode=rwc", s.path))
	if err != nil {
		return service.StoreResult{}, fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()

	table := quoteSQLiteIdent(s.table)
	create := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		word    TEXT PRIMARY KEY,
		meaning TEXT NOT NULL
	)`, table)
	if _, err := db.ExecContext(ctx, create); err != nil {
		return service.StoreResult{}, fmt.Errorf("create words table: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return service.StoreResult{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var before int
	if err := tx.GetContext(ctx, &before, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)); err != nil {
		return service.StoreResult{}, fmt.Errorf("count words: %w", err)
	}

	upsert := fmt.Sprintf(`INSERT INTO %s (word, meaning) VALUES (:word, :meaning)
		ON CONFLICT (word) DO UPDATE SET meaning = excluded.meaning`, table)
	for _, w := range words {
		if _, err := tx.NamedExecContext(ctx, upsert, w); err != nil {
			return service.StoreResult{}, fmt.Errorf("upsert word %q: %w", w.Word, err)
		}
	}

	var after int
	if err := tx.GetContext(ctx, &after, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)); err != nil {
		return service.StoreResult{}, fmt.Errorf("count words: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return service.StoreResult{}, fmt.Errorf("commit tx: %w", err)
	}

	return service.StoreResult{Created: after - before, Total: after}, nil
}
