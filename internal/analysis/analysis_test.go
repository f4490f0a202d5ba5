package analysis

import (
	"reflect"
	"testing"

	"movieratings/internal/movie"
)

func TestSplitGenres(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want []string
	}{
		{"Action, Drama", []string{"Action", "Drama"}},
		{"Drama, ", []string{"Drama"}},
		{" , ,", []string{}},
		{"Sci-Fi", []string{"Sci-Fi"}},
	}
	for _, c := range cases {
		if got := SplitGenres(c.in); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("SplitGenres(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

/*
TestExplode_TwoGenres checks that a movie carrying two genres yields one
exploded record per genre sharing title, rating and year, and that both
contribute to their genre means.
*/
func TestExplode_TwoGenres(t *testing.T) {
	t.Parallel()

	movies := []movie.Movie{{Title: "Test", Genre: "Action, Drama", Rating: 7.5, Year: 2020}}
	got := Explode(movies)
	want := []Exploded{
		{Title: "Test", Genre: "Action", Rating: 7.5, Year: 2020},
		{Title: "Test", Genre: "Drama", Rating: 7.5, Year: 2020},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}

	avg := GenreAverages(got)
	if len(avg) != 2 {
		t.Fatalf("len=%d want 2", len(avg))
	}
	for _, g := range avg {
		if g.Rating != 7.5 || g.Count != 1 {
			t.Fatalf("unexpected aggregate %#v", g)
		}
	}
}

func TestGenreAverages_OrderAndTies(t *testing.T) {
	t.Parallel()

	exp := []Exploded{
		{Genre: "Drama", Rating: 8},
		{Genre: "Comedy", Rating: 6},
		{Genre: "Drama", Rating: 6},
		{Genre: "Action", Rating: 7},
		{Genre: "Western", Rating: 9},
	}
	got := GenreAverages(exp)
	want := []GenreRating{
		{Genre: "Western", Rating: 9, Count: 1},
		{Genre: "Action", Rating: 7, Count: 1},
		{Genre: "Drama", Rating: 7, Count: 2},
		{Genre: "Comedy", Rating: 6, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v\nwant %#v", got, want)
	}
}

func TestAggregates_Empty(t *testing.T) {
	t.Parallel()

	if got := GenreAverages(nil); len(got) != 0 {
		t.Fatalf("GenreAverages(nil) = %v", got)
	}
	if got := CountByYear(nil); len(got) != 0 {
		t.Fatalf("CountByYear(nil) = %v", got)
	}
	if got := TopRated(nil, 5); len(got) != 0 {
		t.Fatalf("TopRated(nil) = %v", got)
	}
	if got := TopRated([]movie.Movie{{Title: "x"}}, 0); len(got) != 0 {
		t.Fatalf("TopRated(n=0) = %v", got)
	}
}

func TestCountByYear(t *testing.T) {
	t.Parallel()

	movies := []movie.Movie{{Year: 2019}, {Year: 1994}, {Year: 2019}, {Year: 2001}}
	got := CountByYear(movies)
	want := []YearCount{{1994, 1}, {2001, 1}, {2019, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	sum := 0
	for _, y := range got {
		sum += y.Count
	}
	if sum != len(movies) {
		t.Fatalf("sum of counts %d != rows %d", sum, len(movies))
	}
}

// TestTopRated_StableTies verifies ties keep their input order.
func TestTopRated_StableTies(t *testing.T) {
	t.Parallel()

	movies := []movie.Movie{
		{Title: "a", Rating: 8.0, Year: 1},
		{Title: "b", Rating: 9.0, Year: 2},
		{Title: "c", Rating: 8.0, Year: 3},
		{Title: "d", Rating: 7.0, Year: 4},
		{Title: "e", Rating: 8.0, Year: 5},
		{Title: "f", Rating: 9.0, Year: 6},
	}
	got := TopRated(movies, 5)
	var titles []string
	for _, r := range got {
		titles = append(titles, r.Title)
	}
	if want := []string{"b", "f", "a", "c", "e"}; !reflect.DeepEqual(titles, want) {
		t.Fatalf("titles %v, want %v", titles, want)
	}
	if got := TopRated(movies[:2], 5); len(got) != 2 {
		t.Fatalf("len=%d want min(5, 2)", len(got))
	}
}

func sampleMovies() []movie.Movie {
	return []movie.Movie{
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
}

func TestAggregates_SampleDataset(t *testing.T) {
	t.Parallel()

	movies := sampleMovies()
	avg := GenreAverages(Explode(movies))

	wantOrder := []string{
		"Crime", "Sci-Fi", "Thriller", "Drama", "Music", "Comedy", "Sport",
		"Animation", "Family", "Action", "Romance", "Superhero", "Adventure", "Musical",
	}
	var order []string
	for _, g := range avg {
		order = append(order, g.Genre)
	}
	if !reflect.DeepEqual(order, wantOrder) {
		t.Fatalf("genre order %v\nwant %v", order, wantOrder)
	}
	if avg[0].Rating != 8.725 || avg[0].Count != 4 {
		t.Fatalf("Crime = %#v", avg[0])
	}

	years := CountByYear(movies)
	if len(years) != 13 || years[0] != (YearCount{1972, 1}) || years[len(years)-1] != (YearCount{2022, 2}) {
		t.Fatalf("years = %v", years)
	}

	top := TopRated(movies, DefaultTopN)
	want := []Ranked{
		{"The Shawshank Redemption", 9.3, 1994},
		{"The Godfather", 9.2, 1972},
		{"The Dark Knight", 9.0, 2008},
		{"Inception", 8.8, 2010},
		{"Forrest Gump", 8.8, 1994},
	}
	if !reflect.DeepEqual(top, want) {
		t.Fatalf("top = %#v", top)
	}
}

func TestTables(t *testing.T) {
	t.Parallel()

	g := GenreTable("g", []GenreRating{{Genre: "Drama", Rating: 9, Count: 3}})
	if got := g.Record(0); !reflect.DeepEqual(got, []string{"Drama", "9.0"}) {
		t.Fatalf("genre record %v", got)
	}
	y := YearTable("y", []YearCount{{2010, 2}})
	if got := y.Record(0); !reflect.DeepEqual(got, []string{"2010", "2"}) {
		t.Fatalf("year record %v", got)
	}
	top := TopTable("t", []Ranked{{"Coco", 8.4, 2017}})
	if got := top.Header(); !reflect.DeepEqual(got, []string{"Title", "Rating", "Year"}) {
		t.Fatalf("top header %v", got)
	}
}
