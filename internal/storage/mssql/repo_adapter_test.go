package mssql

import (
	"context"
	"testing"

	"movieratings/internal/storage"
)

// TestRegistrationUsesNewRepositoryHook verifies that the "mssql" backend
// registered in init() uses the newRepository hook and propagates Close.
func TestRegistrationUsesNewRepositoryHook(t *testing.T) {
	origNewRepository := newRepository
	defer func() { newRepository = origNewRepository }()

	var (
		gotDSN   string
		closed   bool
		fakeRepo = &Repository{}
	)
	newRepository = func(ctx context.Context, dsn string) (*Repository, func(), error) {
		gotDSN = dsn
		return fakeRepo, func() { closed = true }, nil
	}

	repo, err := storage.New(context.Background(), storage.Config{Kind: "mssql", DSN: "sqlserver://sa:pw@localhost:1433?database=movies"})
	if err != nil {
		t.Fatalf("storage.New() error = %v, want nil", err)
	}
	if gotDSN != "sqlserver://sa:pw@localhost:1433?database=movies" {
		t.Errorf("hook DSN = %q", gotDSN)
	}
	w, ok := repo.(*wrappedRepo)
	if !ok || w.Repository != fakeRepo {
		t.Fatalf("storage.New() = %T, want *wrappedRepo around the hook result", repo)
	}
	if repo.Dialect().Name != "mssql" {
		t.Errorf("dialect = %q", repo.Dialect().Name)
	}

	repo.Close()
	if !closed {
		t.Fatalf("Close() did not invoke closeFn")
	}
}
