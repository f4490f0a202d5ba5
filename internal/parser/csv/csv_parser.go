// Package csv implements the delimited-text loader. It reads a header row,
// normalizes header names, and turns every body row into a records.Record
// keyed by the normalized header.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"movieratings/internal/parser"
	"movieratings/internal/records"
)

// Options configures the CSV parser behavior. All fields are optional; sensible
// defaults are applied when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing whitespace from each field value.
	TrimSpace bool

	// LazyQuotes accepts a quote inside an unquoted field and a bare quote
	// inside a quoted field instead of failing the row.
	LazyQuotes bool

	// HeaderMap maps normalized header names to canonical keys. It is applied
	// after title-casing, so keys should be written in title case
	// (e.g. "Imdb Rating": "Rating").
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct {
	opt   Options
	title cases.Caser
}

var _ parser.Parser = (*Parser)(nil)

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser {
	return &Parser{opt: opt, title: cases.Title(language.Und)}
}

// ErrNoHeader is returned when the input has no header row at all.
var ErrNoHeader = errors.New("csv: no header row")

// skipLogLimit caps how many skipped rows are logged individually.
const skipLogLimit = 100

// Parse consumes CSV records from r and returns the parsed rows along with the
// number of rows that were skipped due to parse errors or surplus fields.
// An error from r itself aborts the parse.
//
// Rows shorter than the header are padded with nil values; rows longer than
// the header are skipped. A missing or unreadable header is an error.
func (p *Parser) Parse(r io.Reader) ([]records.Record, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.LazyQuotes = p.opt.LazyQuotes
	// Width is enforced below so short rows can be padded.
	cr.FieldsPerRecord = -1

	h, err := cr.Read()
	if err == io.EOF {
		return nil, 0, ErrNoHeader
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	headers := p.NormalizeHeaders(h)

	var out []records.Record
	var skipped int

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Only malformed rows are skipped; a failing reader is fatal.
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return nil, skipped, fmt.Errorf("read csv line %d: %w", line, err)
			}
			if skipped < skipLogLimit {
				slog.Warn("csv: skipping row", "line", line, "err", err)
			}
			skipped++
			continue
		}
		if isBlank(row) {
			continue
		}
		if len(row) > len(headers) {
			if skipped < skipLogLimit {
				slog.Warn("csv: skipping row", "line", line,
					"reason", "too many fields", "expected", len(headers), "got", len(row))
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(headers))
		for i, key := range headers {
			if key == "" {
				continue
			}
			if _, dup := rec[key]; dup {
				// First column with a given name wins.
				continue
			}
			if i >= len(row) {
				rec[key] = nil
				continue
			}
			val := row[i]
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[key] = emptyToNil(val)
		}
		out = append(out, rec)
	}

	return out, skipped, nil
}

// NormalizeHeaders produces canonical header keys: it strips a UTF-8 BOM from
// the first cell, trims whitespace, title-cases each name and finally applies
// HeaderMap.
func (p *Parser) NormalizeHeaders(h []string) []string {
	res := make([]string, len(h))
	copy(res, h)
	res = StripHeaderBOM(res)
	for i, col := range res {
		c := p.title.String(strings.TrimSpace(col))
		if m, ok := p.opt.HeaderMap[c]; ok {
			c = m
		}
		res[i] = c
	}
	return res
}

// emptyToNil converts an empty string to nil; all other values are returned as-is.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// isBlank reports whether a row is a single whitespace-only field, i.e. a
// visually empty line that encoding/csv did not skip on its own.
func isBlank(row []string) bool {
	return len(row) == 1 && strings.TrimSpace(row[0]) == ""
}
