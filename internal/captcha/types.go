// File: types.go
package captcha

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"shapeWordAuth/internal/canvas"
)

type (
	Rect  = canvas.Rect
	Point = canvas.Point
)

// ShapeKind names the outline drawn around a word.
type ShapeKind string

const (
	Circle ShapeKind = "circle"
	Square ShapeKind = "square"
	Star   ShapeKind = "star"
)

// ParseShapeKind accepts a shape name in any letter case.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch k := ShapeKind(strings.ToLower(strings.TrimSpace(s))); k {
	case Circle, Square, Star:
		return k, nil
	}
	return "", fmt.Errorf("unknown shape %q", s)
}

// PlacedObject is one interactive word/shape pair on the image.
// (TextX, TextY) is the baseline origin of the word; the text extends
// upward from it by TextHeight.
type PlacedObject struct {
	Word       string    `json:"word"`
	Shape      ShapeKind `json:"shape"`
	Bounds     Rect      `json:"bounds"`
	TextX      float64   `json:"textX"`
	TextY      float64   `json:"textY"`
	TextWidth  float64   `json:"textWidth"`
	TextHeight float64   `json:"textHeight"`
}

// TextAnchor returns the baseline origin of the word.
func (o PlacedObject) TextAnchor() Point {
	return Point{X: o.TextX, Y: o.TextY}
}

// Challenge is the stored puzzle state of one session.
type Challenge struct {
	Objects     []PlacedObject `json:"objects"` // render order
	Target      int            `json:"target"`
	Instruction string         `json:"instruction"`
}

// TargetObject returns the object the instruction refers to.
func (c *Challenge) TargetObject() (PlacedObject, bool) {
	if c == nil || c.Target < 0 || c.Target >= len(c.Objects) {
		return PlacedObject{}, false
	}
	return c.Objects[c.Target], true
}

// Surface is the drawing capability the generator paints on.
// *canvas.Canvas implements it.
type Surface interface {
	Size() (int, int)
	Fill(r Rect, c color.Color)
	DrawLine(x1, y1, x2, y2 float64, c color.Color)
	DrawEllipse(cx, cy, w, h float64, c color.Color)
	DrawFilledEllipse(cx, cy, w, h float64, c color.Color)
	DrawPolygon(pts []Point, c color.Color)
	DrawFilledPolygon(pts []Point, c color.Color)
	SetPixel(x, y int, c color.Color)
	MeasureText(text string, size, angle float64) Rect
	DrawText(x, y, size, angle float64, c color.Color, text string)
}

// Store persists challenges by session key.
type Store interface {
	Put(ctx context.Context, key string, c *Challenge) error
	// Get reports ok=false when no challenge exists for key.
	Get(ctx context.Context, key string) (c *Challenge, ok bool, err error)
	Delete(ctx context.Context, key string) error
}
