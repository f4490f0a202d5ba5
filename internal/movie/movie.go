// Package movie defines the cleaned movie record and the cleaning chain that
// turns parsed CSV records into it.
package movie

import (
	"movieratings/internal/records"
	"movieratings/internal/table"
	"movieratings/internal/transformer"
	"movieratings/internal/transformer/builtin"
)

// Canonical column names, in output order.
const (
	ColTitle  = "Title"
	ColGenre  = "Genre"
	ColRating = "Rating"
	ColYear   = "Year"
)

// Columns lists the canonical columns in output order.
var Columns = []string{ColTitle, ColGenre, ColRating, ColYear}

// Rating bounds applied by the cleaner.
const (
	MinRating = 0.0
	MaxRating = 10.0
)

// Movie is one cleaned input row. Genre keeps the raw comma-separated list.
type Movie struct {
	Title  string
	Genre  string
	Rating float64
	Year   int
}

// Cleaner returns the transformer chain that normalizes parsed records:
// drop unknown columns, trim text, coerce numbers (unparsable → missing),
// drop incomplete records and clamp the rating.
func Cleaner() transformer.Chain {
	return transformer.Chain{
		builtin.Project{Columns: Columns},
		builtin.Normalize{},
		builtin.Coerce{Types: map[string]string{
			ColTitle:  "string",
			ColGenre:  "string",
			ColRating: "float",
			ColYear:   "int",
		}},
		builtin.Require{Fields: Columns},
		builtin.Clamp{Field: ColRating, Min: MinRating, Max: MaxRating},
	}
}

// Clean runs the Cleaner over recs and converts the survivors to movies,
// preserving input order. The second result is the number of dropped records.
func Clean(recs []records.Record) ([]Movie, int) {
	total := len(recs)
	kept := Cleaner().Apply(recs)
	out := FromRecords(kept)
	return out, total - len(out)
}

// FromRecords converts cleaned records to movies. Records whose values do not
// have the cleaned types are skipped.
func FromRecords(recs []records.Record) []Movie {
	out := make([]Movie, 0, len(recs))
	for _, r := range recs {
		title, ok1 := r[ColTitle].(string)
		genre, ok2 := r[ColGenre].(string)
		rating, ok3 := r[ColRating].(float64)
		year, ok4 := r[ColYear].(int)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		out = append(out, Movie{Title: title, Genre: genre, Rating: rating, Year: year})
	}
	return out
}

// Table renders movies as the Details table.
func Table(name string, movies []Movie) table.Table {
	t := table.New(name,
		table.Column{Name: ColTitle, Kind: table.Text},
		table.Column{Name: ColGenre, Kind: table.Text},
		table.Column{Name: ColRating, Kind: table.Float},
		table.Column{Name: ColYear, Kind: table.Int},
	)
	for _, m := range movies {
		t.Append(m.Title, m.Genre, m.Rating, m.Year)
	}
	return t
}
