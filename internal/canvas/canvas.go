// File: canvas.go
package canvas

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/ernyoke/imger/blur"
	"github.com/ernyoke/imger/padding"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Point is a pixel coordinate, y grows downward.
type Point struct{ X, Y float64 }

// Rect is an axis-aligned box with its top-left corner at (X, Y).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the middle of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Canvas is a gg-backed drawing surface bound to one typeface.
// It is not safe for concurrent use; create one per request.
type Canvas struct {
	dc    *gg.Context
	tf    *Typeface
	faces map[float64]font.Face
}

// New creates a transparent w×h canvas.
func New(w, h int, tf *Typeface) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}
	if tf == nil {
		return nil, fmt.Errorf("%w: no typeface", ErrFontUnavailable)
	}
	return &Canvas{
		dc:    gg.NewContext(w, h),
		tf:    tf,
		faces: make(map[float64]font.Face),
	}, nil
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

// Clear paints the whole canvas with col.
func (c *Canvas) Clear(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

// Fill paints a filled rectangle.
func (c *Canvas) Fill(r Rect, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	c.dc.Fill()
}

func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(1)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

// DrawEllipse strokes an ellipse centred on (cx, cy) with the given
// full width and height.
func (c *Canvas) DrawEllipse(cx, cy, w, h float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(1)
	c.dc.DrawEllipse(cx, cy, w/2, h/2)
	c.dc.Stroke()
}

func (c *Canvas) DrawFilledEllipse(cx, cy, w, h float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawEllipse(cx, cy, w/2, h/2)
	c.dc.Fill()
}

func (c *Canvas) DrawPolygon(pts []Point, col color.Color) {
	if !c.tracePolygon(pts) {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(1)
	c.dc.Stroke()
}

func (c *Canvas) DrawFilledPolygon(pts []Point, col color.Color) {
	if !c.tracePolygon(pts) {
		return
	}
	c.dc.SetColor(col)
	c.dc.Fill()
}

func (c *Canvas) tracePolygon(pts []Point) bool {
	if len(pts) < 3 {
		return false
	}
	c.dc.NewSubPath()
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	return true
}

// SetPixel blends a single pixel with col.
func (c *Canvas) SetPixel(x, y int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), 1, 1)
	c.dc.Fill()
}

// MeasureText returns the box of text drawn at the origin with the given
// size and counter-clockwise rotation in degrees. Horizontally the box spans
// both the ink and the advance, so blanks and side bearings take up room.
// The origin is the baseline start, so Y is usually negative.
func (c *Canvas) MeasureText(text string, size, angle float64) Rect {
	if text == "" {
		return Rect{}
	}
	b, adv := font.BoundString(c.faceAt(size), text)
	x0, y0 := math.Min(float64(b.Min.X)/64, 0), float64(b.Min.Y)/64
	x1, y1 := math.Max(float64(b.Max.X)/64, float64(adv)/64), float64(b.Max.Y)/64

	sin, cos := math.Sincos(angle * math.Pi / 180)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4]Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}} {
		rx := p.X*cos + p.Y*sin
		ry := -p.X*sin + p.Y*cos
		minX, maxX = math.Min(minX, rx), math.Max(maxX, rx)
		minY, maxY = math.Min(minY, ry), math.Max(maxY, ry)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// DrawText draws text with its baseline starting at (x, y), rotated
// counter-clockwise by angle degrees around that point.
func (c *Canvas) DrawText(x, y, size, angle float64, col color.Color, text string) {
	if text == "" {
		return
	}
	c.dc.Push()
	defer c.dc.Pop()
	c.dc.SetFontFace(c.faceAt(size))
	c.dc.SetColor(col)
	if angle != 0 {
		c.dc.RotateAbout(gg.Radians(-angle), x, y)
	}
	c.dc.DrawString(text, x, y)
}

func (c *Canvas) faceAt(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := c.tf.newFace(size)
	c.faces[size] = f
	return f
}

// Soften applies a Gaussian blur over everything drawn so far.
func (c *Canvas) Soften(radius, sigma float64) error {
	if radius <= 0 {
		return nil
	}
	out, err := blur.GaussianBlurRGBA(c.RGBA(), radius, sigma, padding.BorderReflect)
	if err != nil {
		return fmt.Errorf("soften canvas: %w", err)
	}
	c.dc = gg.NewContextForRGBA(out)
	return nil
}

// RGBA returns the backing image.
func (c *Canvas) RGBA() *image.RGBA {
	if im, ok := c.dc.Image().(*image.RGBA); ok {
		return im
	}
	src := c.dc.Image()
	im := image.NewRGBA(src.Bounds())
	draw.Draw(im, im.Bounds(), src, src.Bounds().Min, draw.Src)
	return im
}

// EncodePNG returns the canvas as PNG bytes.
func (c *Canvas) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURI wraps PNG bytes as an inline image source.
func DataURI(pngBytes []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}
