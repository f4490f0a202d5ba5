// Package sample provisions the bundled fallback dataset so that a first run
// without an input file still produces output.
package sample

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"movieratings/internal/export"
	"movieratings/internal/movie"
)

// Movies is the bundled 20-row sample dataset.
var Movies = []movie.Movie{
	{Title: "Inception", Genre: "Sci-Fi", Rating: 8.8, Year: 2010},
	{Title: "Titanic", Genre: "Romance, Drama", Rating: 7.8, Year: 1997},
	{Title: "Interstellar", Genre: "Sci-Fi, Drama", Rating: 8.6, Year: 2014},
	{Title: "The Dark Knight", Genre: "Action, Crime", Rating: 9.0, Year: 2008},
	{Title: "Avengers: Endgame", Genre: "Action, Superhero", Rating: 8.4, Year: 2019},
	{Title: "La La Land", Genre: "Romance, Musical", Rating: 8.0, Year: 2016},
	{Title: "Parasite", Genre: "Thriller, Drama", Rating: 8.6, Year: 2019},
	{Title: "Mad Max: Fury Road", Genre: "Action, Adventure", Rating: 8.1, Year: 2015},
	{Title: "The Godfather", Genre: "Crime, Drama", Rating: 9.2, Year: 1972},
	{Title: "Toy Story 3", Genre: "Animation, Family", Rating: 8.3, Year: 2010},
	{Title: "Whiplash", Genre: "Drama, Music", Rating: 8.5, Year: 2014},
	{Title: "Coco", Genre: "Animation, Family", Rating: 8.4, Year: 2017},
	{Title: "Dangal", Genre: "Drama, Sport", Rating: 8.4, Year: 2016},
	{Title: "3 Idiots", Genre: "Comedy, Drama", Rating: 8.4, Year: 2009},
	{Title: "Joker", Genre: "Crime, Drama", Rating: 8.5, Year: 2019},
	{Title: "The Shawshank Redemption", Genre: "Drama", Rating: 9.3, Year: 1994},
	{Title: "Forrest Gump", Genre: "Drama, Romance", Rating: 8.8, Year: 1994},
	{Title: "RRR", Genre: "Action, Drama", Rating: 8.0, Year: 2022},
	{Title: "K.G.F: Chapter 2", Genre: "Action, Crime", Rating: 8.2, Year: 2022},
	{Title: "The Avengers", Genre: "Action, Superhero", Rating: 8.0, Year: 2012},
}

// Ensure writes the sample dataset to path when nothing exists there yet.
// An existing file (even an empty or malformed one) is left untouched. The
// boolean reports whether the sample was written.
func Ensure(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("sample: stat %s: %w", path, err)
	}

	if _, err := export.WriteFile(path, movie.Table("sample", Movies)); err != nil {
		return false, fmt.Errorf("sample: %w", err)
	}
	return true, nil
}
