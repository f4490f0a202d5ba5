// Package storage defines the storage-agnostic contract for the optional SQL
// sink and a small registry of backends.
//
// Backends register a Factory for their kind from init; importing
// movieratings/internal/storage/all enables every built-in backend. Callers
// then open a Repository with New and publish result tables with Publish,
// without importing a backend package directly.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Repository is the minimal surface the sink needs from a SQL backend.
type Repository interface {
	// Exec runs a single statement, typically DDL.
	Exec(ctx context.Context, sql string) error
	// CopyFrom bulk-inserts rows into table. Rows line up with columns.
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
	// Dialect describes how the backend quotes names and spells types.
	Dialect() Dialect
	// Close releases the underlying connection pool.
	Close()
}

// Config selects and configures a backend.
type Config struct {
	Kind string
	DSN  string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for kind.
func Register(kind string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds in sorted order. The slice is a copy.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
