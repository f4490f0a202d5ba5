// Package export writes result tables as CSV files into the output
// directory. Files are overwritten on every run and carry no index column.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"

	"movieratings/internal/table"
)

// Fixed output file names.
const (
	DetailsFile    = "Details_movies.csv"
	GenreAvgFile   = "genre_avg_ratings.csv"
	TopFile        = "top5_movies.csv"
	PerYearFile    = "movies_per_year.csv"
	GenreChartFile = "avg_rating_by_genre.png"
	YearChartFile  = "movies_per_year.png"
)

// Result describes one written file.
type Result struct {
	Path   string
	Rows   int
	Bytes  int
	Digest uint64 // xxh3-64 of the file contents
}

// DigestHex returns Digest as 16 hex digits.
func (r Result) DigestHex() string { return fmt.Sprintf("%016x", r.Digest) }

// Writer writes tables into Dir.
type Writer struct {
	Dir string
}

// NewWriter returns a Writer for dir. The directory must already exist.
func NewWriter(dir string) *Writer { return &Writer{Dir: dir} }

// Write encodes t as CSV into Dir/name, replacing any existing file.
func (w *Writer) Write(name string, t table.Table) (Result, error) {
	path := filepath.Join(w.Dir, name)
	res, err := WriteFile(path, t)
	if err != nil {
		return res, err
	}
	slog.Debug("export: wrote table", "table", t.Name, "path", path, "rows", res.Rows, "xxh3", res.DigestHex())
	return res, nil
}

// WriteFile encodes t as CSV into path, replacing any existing file.
func WriteFile(path string, t table.Table) (Result, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return Result{Path: path}, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Result{Path: path}, fmt.Errorf("export: write %s: %w", path, err)
	}
	return Result{
		Path:   path,
		Rows:   t.Len(),
		Bytes:  buf.Len(),
		Digest: xxh3.Hash(buf.Bytes()),
	}, nil
}

// WriteCSV writes the header followed by every row of t.
func WriteCSV(w io.Writer, t table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return fmt.Errorf("export: %s header: %w", t.Name, err)
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Record(i)); err != nil {
			return fmt.Errorf("export: %s row %d: %w", t.Name, i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: %s flush: %w", t.Name, err)
	}
	return nil
}
