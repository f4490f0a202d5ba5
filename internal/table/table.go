// Package table holds the column-typed tabular shape shared by the exporter
// and the SQL sink.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the value kind of a column.
type Kind int

const (
	Text Kind = iota
	Float
	Int
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Float:
		return "float"
	case Int:
		return "int"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column names one column and its value kind.
type Column struct {
	Name string
	Kind Kind
}

// Table is a named, ordered set of rows. Row values line up with Columns and
// are string, float64 or int according to the column kind.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// New returns an empty table with the given columns.
func New(name string, cols ...Column) Table {
	return Table{Name: name, Columns: cols}
}

// Append adds one row. It panics if the value count does not match the
// column count, which is always a programming error.
func (t *Table) Append(vals ...any) {
	if len(vals) != len(t.Columns) {
		panic(fmt.Sprintf("table %s: append %d values to %d columns", t.Name, len(vals), len(t.Columns)))
	}
	t.Rows = append(t.Rows, vals)
}

// Header returns the column names.
func (t Table) Header() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Len returns the row count.
func (t Table) Len() int { return len(t.Rows) }

// Record formats row i as strings, suitable for a CSV writer.
func (t Table) Record(i int) []string {
	row := t.Rows[i]
	out := make([]string, len(row))
	for j, v := range row {
		out[j] = FormatValue(v)
	}
	return out
}

// FormatValue renders a cell the way the published CSV files spell it.
// Floats use the shortest round-trip form and keep a trailing ".0" when
// integral, so 9 is written as "9.0".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return FormatFloat(x)
	default:
		return fmt.Sprint(x)
	}
}

// FormatFloat formats f in shortest round-trip form with a ".0" suffix for
// integral values.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return ""
	}
	format := byte('f')
	if a := math.Abs(f); a != 0 && (a < 1e-4 || a >= 1e16) {
		format = 'g'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}
