// File: shapes.go
package captcha

import (
	"image/color"
	"math"
)

// Annotator outlines the text box (x, y, w, h) and returns the shape bounds
// used for hit testing.
type Annotator func(s Surface, x, y, w, h float64, col color.Color) Rect

// AnnotatorFor returns the drawing routine of kind. Unknown kinds get a square.
func AnnotatorFor(kind ShapeKind) Annotator {
	switch kind {
	case Circle:
		return DrawCircle
	case Star:
		return DrawStar
	default:
		return DrawSquare
	}
}

func DrawCircle(s Surface, x, y, w, h float64, col color.Color) Rect {
	cx, cy := x+w/2, y+h/2
	radius := math.Max(w, h)/2 + 10
	s.DrawEllipse(cx, cy, radius*2, radius*2, col)
	return Rect{X: cx - radius, Y: cy - radius, Width: radius * 2, Height: radius * 2}
}

func DrawSquare(s Surface, x, y, w, h float64, col color.Color) Rect {
	size := math.Max(w, h) + 20
	left, top := x+w/2-size/2, y+h/2-size/2
	s.DrawPolygon([]Point{
		{X: left, Y: top},
		{X: left + size, Y: top},
		{X: left + size, Y: top + size},
		{X: left, Y: top + size},
	}, col)
	return Rect{X: left, Y: top, Width: size, Height: size}
}

// DrawStar draws a ten-vertex star. The returned bounds are the square
// around the outer radius, not the polygon's own extent.
func DrawStar(s Surface, x, y, w, h float64, col color.Color) Rect {
	size := math.Max(w, h) + 20
	cx, cy := x+w/2, y+h/2
	outer := size / 2
	inner := outer * 0.5

	pts := make([]Point, 10)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		sin, cos := math.Sincos(float64(36*i) * math.Pi / 180)
		pts[i] = Point{X: cx + r*cos, Y: cy + r*sin}
	}
	s.DrawPolygon(pts, col)
	return Rect{X: cx - outer, Y: cy - outer, Width: outer * 2, Height: outer * 2}
}
