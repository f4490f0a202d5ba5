// Package parser defines the contract shared by input table parsers.
package parser

import (
	"io"

	"movieratings/internal/records"
)

// Parser turns raw input bytes into records. The int result is the number of
// rows that were skipped as unreadable.
type Parser interface {
	Parse(r io.Reader) ([]records.Record, int, error)
}
