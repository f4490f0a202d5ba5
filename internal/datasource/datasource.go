// Package datasource defines where the raw input table is read from.
package datasource

import (
	"context"
	"io"
)

// Source opens the raw input table for reading.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	// Name identifies the source in logs and errors.
	Name() string
}
