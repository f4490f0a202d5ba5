// Package chart renders the summary bar charts as PNG images.
//
// Rendering is done directly on an image.RGBA: bars and axes are filled
// rectangles and text is drawn with the basicfont bitmap face, then scaled
// and rotated into place with an affine transform.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// Default canvas size: 10x6 inches at 150 dpi.
const (
	DefaultWidth  = 1500
	DefaultHeight = 900
)

// Bar is one category and its value.
type Bar struct {
	Label string
	Value float64
}

// Spec describes a bar chart.
type Spec struct {
	Title  string
	XLabel string
	YLabel string
	Bars   []Bar
	Width  int
	Height int
}

var (
	background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ink        = color.RGBA{0x00, 0x00, 0x00, 0xff}
	gridColor  = color.RGBA{0xe5, 0xe5, 0xe5, 0xff}
	barColor   = color.RGBA{0x1f, 0x77, 0xb4, 0xff}
)

// Text scales relative to the 7x13 bitmap face.
const (
	titleScale = 3.0
	labelScale = 2.4
	tickScale  = 2.0
)

// labelAngle is the rotation of category labels, in degrees counterclockwise.
const labelAngle = 45

// Render draws s and writes it as a PNG to path, replacing any existing file.
// The parent directory must exist.
func Render(path string, s Spec) error {
	img := Draw(s)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("chart: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("chart: close %s: %w", path, err)
	}
	return nil
}

// Draw renders s into a new image.
func Draw(s Spec) *image.RGBA {
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	fill(img, img.Bounds(), background)

	area := layout(s)
	ticks := niceTicks(maxValue(s.Bars))
	top := ticks[len(ticks)-1]
	yFor := func(v float64) int {
		return area.Max.Y - int(math.Round(v/top*float64(area.Dy())))
	}

	// Gridlines and y ticks.
	for _, v := range ticks {
		y := yFor(v)
		fill(img, image.Rect(area.Min.X, y, area.Max.X, y+1), gridColor)
		fill(img, image.Rect(area.Min.X-8, y, area.Min.X, y+2), ink)
		drawText(img, formatTick(v, ticks), float64(area.Min.X-14), float64(y), tickScale, 0, 1, 0.5)
	}

	// Bars and category labels.
	if n := len(s.Bars); n > 0 {
		slot := float64(area.Dx()) / float64(n)
		for i, b := range s.Bars {
			cx := float64(area.Min.X) + slot*(float64(i)+0.5)
			half := slot * 0.4
			x0 := int(math.Round(cx - half))
			x1 := int(math.Round(cx + half))
			if x1 <= x0 {
				x1 = x0 + 1
			}
			v := math.Max(b.Value, 0)
			fill(img, image.Rect(x0, yFor(v), x1, area.Max.Y), barColor)

			fill(img, image.Rect(int(cx), area.Max.Y, int(cx)+2, area.Max.Y+8), ink)
			_, h := textSize(b.Label)
			drawText(img, b.Label, cx, float64(area.Max.Y)+12+float64(h)*tickScale/2, tickScale, labelAngle, 1, 0.5)
		}
	}

	// Axes frame.
	fill(img, image.Rect(area.Min.X-1, area.Min.Y, area.Min.X+1, area.Max.Y+1), ink)
	fill(img, image.Rect(area.Min.X-1, area.Max.Y-1, area.Max.X+1, area.Max.Y+1), ink)
	fill(img, image.Rect(area.Max.X-1, area.Min.Y, area.Max.X+1, area.Max.Y+1), ink)
	fill(img, image.Rect(area.Min.X-1, area.Min.Y-1, area.Max.X+1, area.Min.Y+1), ink)

	// Titles.
	drawText(img, s.Title, float64(s.Width)/2, float64(area.Min.Y)/2, titleScale, 0, 0.5, 0.5)
	drawText(img, s.XLabel, float64(area.Min.X+area.Max.X)/2, float64(s.Height)-30, labelScale, 0, 0.5, 0.5)
	drawText(img, s.YLabel, 30, float64(area.Min.Y+area.Max.Y)/2, labelScale, 90, 0.5, 0.5)

	return img
}

// layout returns the plot rectangle. The bottom margin grows with the
// longest category label so rotated labels stay on the canvas.
func layout(s Spec) image.Rectangle {
	const (
		left  = 150
		right = 40
		top   = 90
	)
	longest := 0
	for _, b := range s.Bars {
		if w, _ := textSize(b.Label); w > longest {
			longest = w
		}
	}
	_, h := textSize("0")
	rad := labelAngle * math.Pi / 180
	drop := (float64(longest)*math.Sin(rad) + float64(h)*math.Cos(rad)) * tickScale
	bottom := 80 + int(math.Ceil(drop))
	if bottom > s.Height/2 {
		bottom = s.Height / 2
	}
	return image.Rect(left, top, s.Width-right, s.Height-bottom)
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func maxValue(bars []Bar) float64 {
	m := 0.0
	for _, b := range bars {
		if b.Value > m && !math.IsInf(b.Value, 1) {
			m = b.Value
		}
	}
	return m
}

// niceTicks returns evenly spaced tick values from 0 to a rounded upper bound
// that leaves a 5% margin over max.
func niceTicks(max float64) []float64 {
	if max <= 0 {
		max = 1
	}
	span := max * 1.05
	raw := span / 6
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	var step float64
	switch n := raw / mag; {
	case n <= 1:
		step = mag
	case n <= 2:
		step = 2 * mag
	case n <= 2.5:
		step = 2.5 * mag
	case n <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}
	count := int(math.Ceil(span/step - 1e-9))
	out := make([]float64, 0, count+1)
	for i := 0; i <= count; i++ {
		out = append(out, float64(i)*step)
	}
	return out
}

// formatTick prints v with just enough decimals for the tick spacing.
func formatTick(v float64, ticks []float64) string {
	step := 1.0
	if len(ticks) > 1 {
		step = ticks[1] - ticks[0]
	}
	dec := 0
	for ; dec < 6; dec++ {
		scaled := step * math.Pow(10, float64(dec))
		if math.Abs(scaled-math.Round(scaled)) < 1e-9 {
			break
		}
	}
	return strconv.FormatFloat(v, 'f', dec, 64)
}

func textSize(s string) (w, h int) {
	face := basicfont.Face7x13
	return font.MeasureString(face, s).Ceil(), face.Metrics().Height.Ceil()
}

// drawText draws s so that the point (ax, ay) of its bounding box, given as
// fractions of width and height, lands on (x, y) after scaling and rotating
// by angle degrees counterclockwise around that point.
func drawText(dst draw.Image, s string, x, y, scale, angle, ax, ay float64) {
	w, h := textSize(s)
	if w == 0 {
		return
	}
	face := basicfont.Face7x13
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)

	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad)*scale, math.Sin(rad)*scale
	px, py := ax*float64(w), ay*float64(h)
	m := f64.Aff3{
		cos, sin, x - (cos*px + sin*py),
		-sin, cos, y - (-sin*px + cos*py),
	}
	draw.BiLinear.Transform(dst, m, src, src.Bounds(), draw.Over, nil)
}
