package chart

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"movieratings/internal/analysis"
)

func TestNiceTicks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		max  float64
		want []float64
	}{
		{9.3, []float64{0, 2, 4, 6, 8, 10}},
		{3, []float64{0, 1, 2, 3, 4}},
		{0, []float64{0, 0.2, 0.4, 0.6, 0.8, 1, 1.2}},
	}
	for _, c := range cases {
		got := niceTicks(c.max)
		if len(got) != len(c.want) {
			t.Fatalf("niceTicks(%v) = %v, want %v", c.max, got, c.want)
		}
		for i := range got {
			if math.Abs(got[i]-c.want[i]) > 1e-9 {
				t.Fatalf("niceTicks(%v) = %v, want %v", c.max, got, c.want)
			}
		}
		if top := got[len(got)-1]; top < c.max {
			t.Fatalf("top tick %v below max %v", top, c.max)
		}
	}
}

func TestFormatTick(t *testing.T) {
	t.Parallel()

	if got := formatTick(1.5, []float64{0, 0.5, 1, 1.5}); got != "1.5" {
		t.Fatalf("got %q", got)
	}
	if got := formatTick(4, []float64{0, 2, 4}); got != "4" {
		t.Fatalf("got %q", got)
	}
}

/*
TestDraw_BarsAndSize renders a small chart and checks the canvas size and
that the tallest bar is filled with the bar color.
*/
func TestDraw_BarsAndSize(t *testing.T) {
	t.Parallel()

	s := Spec{
		Title:  "Average Rating by Genre",
		XLabel: "Genre",
		YLabel: "Average Rating",
		Bars:   []Bar{{"Crime", 8.7}, {"Drama", 8.5}, {"Action", 8.2}},
		Width:  800,
		Height: 600,
	}
	img := Draw(s)
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Fatalf("bounds = %v", b)
	}

	area := layout(s)
	slot := float64(area.Dx()) / 3
	cx := area.Min.X + int(slot/2)
	cy := area.Max.Y - area.Dy()/4
	if got := img.RGBAAt(cx, cy); got != barColor {
		t.Fatalf("pixel at bar center = %v, want %v", got, barColor)
	}
	if got := img.RGBAAt(2, 2); got != background {
		t.Fatalf("corner pixel = %v, want background", got)
	}
}

func TestDraw_EmptyDefaultsSize(t *testing.T) {
	t.Parallel()

	img := Draw(Spec{Title: "empty"})
	if b := img.Bounds(); b.Dx() != DefaultWidth || b.Dy() != DefaultHeight {
		t.Fatalf("bounds = %v", b)
	}
}

func TestRender_WritesPNG(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "movies_per_year.png")
	rows := []analysis.YearCount{{Year: 1994, Count: 2}, {Year: 2019, Count: 3}}
	if err := Render(path, MoviesPerYear(rows, 600, 400)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 600 || img.Bounds().Dy() != 400 {
		t.Fatalf("bounds = %v", img.Bounds())
	}

	// Same input renders the same bytes.
	if err := Render(path, MoviesPerYear(rows, 600, 400)); err != nil {
		t.Fatalf("second Render: %v", err)
	}
	b2, _ := os.ReadFile(path)
	if !bytes.Equal(b, b2) {
		t.Fatalf("rerender produced different bytes")
	}
}

func TestRender_MissingDir(t *testing.T) {
	t.Parallel()

	err := Render(filepath.Join(t.TempDir(), "missing", "x.png"), Spec{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestSpecs(t *testing.T) {
	t.Parallel()

	g := GenreRatings([]analysis.GenreRating{{Genre: "Drama", Rating: 8.5, Count: 2}}, 0, 0)
	if g.Title != "Average Rating by Genre" || g.XLabel != "Genre" || g.YLabel != "Average Rating" {
		t.Fatalf("genre spec = %+v", g)
	}
	if !reflect.DeepEqual(g.Bars, []Bar{{"Drama", 8.5}}) {
		t.Fatalf("genre bars = %v", g.Bars)
	}
	y := MoviesPerYear([]analysis.YearCount{{Year: 2010, Count: 2}}, 0, 0)
	if !reflect.DeepEqual(y.Bars, []Bar{{"2010", 2}}) || y.YLabel != "Count" {
		t.Fatalf("year spec = %+v", y)
	}
}
