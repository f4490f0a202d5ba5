// Package file implements the local filesystem input source.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"movieratings/internal/datasource"
)

// ErrIsDir is returned when the input path names a directory.
var ErrIsDir = errors.New("input path is a directory")

// Local opens one file from the local disk.
type Local struct{ path string }

var _ datasource.Source = (*Local)(nil)

// NewLocal returns a Local source bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Name returns the configured path.
func (l *Local) Name() string { return l.path }

// Open opens the configured path for reading.
//
// A canceled context short-circuits without touching the filesystem. Errors
// are wrapped with the path and keep errors.Is(err, os.ErrNotExist) working.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", l.path, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("open %s: %w", l.path, ErrIsDir)
	}
	return f, nil
}
