// Package analysis computes the descriptive aggregates over cleaned movies:
// genre explosion, mean rating per genre, releases per year and the top
// rated titles.
package analysis

import (
	"strings"

	"movieratings/internal/movie"
)

// Exploded is one (movie, genre) pair.
type Exploded struct {
	Title  string
	Genre  string
	Rating float64
	Year   int
}

// SplitGenres splits a comma-separated genre list, trimming each token and
// dropping empty ones.
func SplitGenres(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Explode yields one Exploded record per genre token of every movie, in movie
// order and then token order.
func Explode(movies []movie.Movie) []Exploded {
	out := make([]Exploded, 0, len(movies))
	for _, m := range movies {
		for _, g := range SplitGenres(m.Genre) {
			out = append(out, Exploded{Title: m.Title, Genre: g, Rating: m.Rating, Year: m.Year})
		}
	}
	return out
}
