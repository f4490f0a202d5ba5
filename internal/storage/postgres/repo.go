// Package postgres implements a Postgres storage.Repository using pgx v5.
// Rows are loaded with the COPY protocol through pgxpool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"movieratings/internal/storage"
	"movieratings/internal/table"
)

// Dialect is the Postgres spelling of names and column types.
var Dialect = storage.Dialect{
	Name:  "postgres",
	Quote: storage.QuoteDouble,
	Types: map[table.Kind]string{
		table.Text:  "TEXT",
		table.Float: "DOUBLE PRECISION",
		table.Int:   "BIGINT",
	},
}

// pool is the subset of *pgxpool.Pool the repository uses.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Close()
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool pool
}

// NewRepository connects to dsn and returns a Repository plus a Close
// function for cleanup.
func NewRepository(ctx context.Context, dsn string) (*Repository, func(), error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: p}, p.Close, nil
}

// Dialect implements storage.Repository.
func (r *Repository) Dialect() storage.Dialect { return Dialect }

// CopyFrom streams rows into tbl with COPY FROM STDIN.
func (r *Repository) CopyFrom(ctx context.Context, tbl string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := r.pool.CopyFrom(ctx, pgx.Identifier{tbl}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return n, fmt.Errorf("postgres: copy into %s: %s (%s)", tbl, pgErr.Detail, pgErr.SQLState())
		}
		return n, fmt.Errorf("postgres: copy into %s: %w", tbl, err)
	}
	return n, nil
}

// Exec implements storage.Repository.Exec for Postgres.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if _, err := r.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}
