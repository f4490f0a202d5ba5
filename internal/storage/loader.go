package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"movieratings/internal/table"
)

// DefaultBatchSize bounds the rows handed to a single CopyFrom call.
const DefaultBatchSize = 1000

// CopyFn abstracts a backend's bulk insert. It returns the number of rows
// reported as inserted.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBatches splits rows into batches of batchSize and calls copyFn for each.
// It returns the total reported by copyFn and the first error encountered;
// rows after a failed batch are not attempted.
func LoadBatches(ctx context.Context, columns []string, rows [][]any, batchSize int, copyFn CopyFn) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("copyFn must not be nil")
	}

	var total int64
	for start := 0; start < len(rows); start += batchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		n, err := copyFn(ctx, columns, rows[start:end])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Published reports one table written by Publish.
type Published struct {
	Table string
	Rows  int64
}

// Publish replaces each table in repo: the table named prefix+t.Name is
// dropped if present, recreated from t's columns in the backend dialect and
// bulk-loaded. It stops at the first failure.
func Publish(ctx context.Context, repo Repository, prefix string, tables ...table.Table) ([]Published, error) {
	d := repo.Dialect()
	out := make([]Published, 0, len(tables))
	for _, t := range tables {
		start := time.Now()
		name := prefix + t.Name

		create, err := d.CreateTableSQL(name, t.Columns)
		if err != nil {
			return out, err
		}
		if err := repo.Exec(ctx, d.DropTableSQL(name)); err != nil {
			return out, fmt.Errorf("drop %s: %w", name, err)
		}
		if err := repo.Exec(ctx, create); err != nil {
			return out, fmt.Errorf("create %s: %w", name, err)
		}

		n, err := LoadBatches(ctx, t.Header(), t.Rows, DefaultBatchSize,
			func(ctx context.Context, cols []string, rows [][]any) (int64, error) {
				return repo.CopyFrom(ctx, name, cols, rows)
			})
		if err != nil {
			return out, fmt.Errorf("load %s: %w", name, err)
		}

		slog.Debug("storage: published table",
			"kind", d.Name, "table", name, "rows", n, "elapsed", time.Since(start).Truncate(time.Millisecond))
		out = append(out, Published{Table: name, Rows: n})
	}
	return out, nil
}
