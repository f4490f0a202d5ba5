package chart

import (
	"strconv"

	"movieratings/internal/analysis"
)

// GenreRatings builds the "Average Rating by Genre" chart.
func GenreRatings(rows []analysis.GenreRating, width, height int) Spec {
	bars := make([]Bar, len(rows))
	for i, r := range rows {
		bars[i] = Bar{Label: r.Genre, Value: r.Rating}
	}
	return Spec{
		Title:  "Average Rating by Genre",
		XLabel: "Genre",
		YLabel: "Average Rating",
		Bars:   bars,
		Width:  width,
		Height: height,
	}
}

// MoviesPerYear builds the "Movies Released Per Year" chart. Years are
// plotted as categories, not on a numeric axis.
func MoviesPerYear(rows []analysis.YearCount, width, height int) Spec {
	bars := make([]Bar, len(rows))
	for i, r := range rows {
		bars[i] = Bar{Label: strconv.Itoa(r.Year), Value: float64(r.Count)}
	}
	return Spec{
		Title:  "Movies Released Per Year",
		XLabel: "Year",
		YLabel: "Count",
		Bars:   bars,
		Width:  width,
		Height: height,
	}
}
