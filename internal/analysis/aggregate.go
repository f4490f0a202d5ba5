package analysis

import (
	"sort"

	"movieratings/internal/movie"
	"movieratings/internal/table"
)

// GenreRating is the mean rating of one genre.
type GenreRating struct {
	Genre  string
	Rating float64
	Count  int
}

// YearCount is the number of movies released in one year.
type YearCount struct {
	Year  int
	Count int
}

// Ranked is a movie projected for the top-N table.
type Ranked struct {
	Title  string
	Rating float64
	Year   int
}

// DefaultTopN is the size of the top-rated table.
const DefaultTopN = 5

// GenreAverages groups exploded records by genre and returns the mean rating
// per genre, highest first. Genres with equal means are ordered by label.
func GenreAverages(exp []Exploded) []GenreRating {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range exp {
		sums[e.Genre] += e.Rating
		counts[e.Genre]++
	}

	out := make([]GenreRating, 0, len(sums))
	for g, sum := range sums {
		out = append(out, GenreRating{Genre: g, Rating: sum / float64(counts[g]), Count: counts[g]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Genre < out[j].Genre })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out
}

// CountByYear counts movies per release year, oldest first.
func CountByYear(movies []movie.Movie) []YearCount {
	counts := make(map[int]int)
	for _, m := range movies {
		counts[m.Year]++
	}
	out := make([]YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// TopRated returns the n highest rated movies. Ties keep input order.
func TopRated(movies []movie.Movie, n int) []Ranked {
	if n <= 0 {
		return []Ranked{}
	}
	idx := make([]int, len(movies))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return movies[idx[a]].Rating > movies[idx[b]].Rating })
	if len(idx) > n {
		idx = idx[:n]
	}
	out := make([]Ranked, 0, len(idx))
	for _, i := range idx {
		m := movies[i]
		out = append(out, Ranked{Title: m.Title, Rating: m.Rating, Year: m.Year})
	}
	return out
}

// GenreTable renders genre means with columns Genre, Rating.
func GenreTable(name string, rows []GenreRating) table.Table {
	t := table.New(name,
		table.Column{Name: "Genre", Kind: table.Text},
		table.Column{Name: "Rating", Kind: table.Float},
	)
	for _, r := range rows {
		t.Append(r.Genre, r.Rating)
	}
	return t
}

// YearTable renders per-year counts with columns Year, Count.
func YearTable(name string, rows []YearCount) table.Table {
	t := table.New(name,
		table.Column{Name: "Year", Kind: table.Int},
		table.Column{Name: "Count", Kind: table.Int},
	)
	for _, r := range rows {
		t.Append(r.Year, r.Count)
	}
	return t
}

// TopTable renders the top-N list with columns Title, Rating, Year.
func TopTable(name string, rows []Ranked) table.Table {
	t := table.New(name,
		table.Column{Name: "Title", Kind: table.Text},
		table.Column{Name: "Rating", Kind: table.Float},
		table.Column{Name: "Year", Kind: table.Int},
	)
	for _, r := range rows {
		t.Append(r.Title, r.Rating, r.Year)
	}
	return t
}
