package storage

import (
	"fmt"
	"strings"

	"movieratings/internal/table"
)

// Dialect captures the per-backend spelling of identifiers and column types.
type Dialect struct {
	// Name is the storage kind, e.g. "sqlite".
	Name string
	// Quote quotes a single identifier.
	Quote func(string) string
	// Types maps a column kind to its SQL type.
	Types map[table.Kind]string
}

// ColumnType returns the SQL type for k, falling back to the Text type.
func (d Dialect) ColumnType(k table.Kind) string {
	if t, ok := d.Types[k]; ok {
		return t
	}
	return d.Types[table.Text]
}

// CreateTableSQL returns a CREATE TABLE statement for the named table. All
// columns are nullable; result tables carry no keys.
//
//	CREATE TABLE "name" (
//	  "col1" TYPE,
//	  "col2" TYPE
//	)
func (d Dialect) CreateTableSQL(name string, cols []table.Column) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%s ddl: table name must not be empty", d.Name)
	}
	if len(cols) == 0 {
		return "", fmt.Errorf("%s ddl: table %s has no columns", d.Name, name)
	}
	defs := make([]string, 0, len(cols))
	for _, c := range cols {
		if strings.TrimSpace(c.Name) == "" {
			return "", fmt.Errorf("%s ddl: column with empty name in table %s", d.Name, name)
		}
		defs = append(defs, d.Quote(c.Name)+" "+d.ColumnType(c.Kind))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", d.Quote(name), strings.Join(defs, ",\n  ")), nil
}

// DropTableSQL returns a statement that drops the named table if it exists.
func (d Dialect) DropTableSQL(name string) string {
	return "DROP TABLE IF EXISTS " + d.Quote(name)
}

// QuoteDouble quotes an identifier with double quotes (ANSI, SQLite,
// Postgres), doubling embedded quotes.
func QuoteDouble(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// QuoteBracket quotes an identifier with [brackets] (SQL Server), doubling
// embedded closing brackets.
func QuoteBracket(id string) string { return `[` + strings.ReplaceAll(id, `]`, `]]`) + `]` }
