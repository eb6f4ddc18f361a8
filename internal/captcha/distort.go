// File: distort.go
package captcha

import (
	"image/color"
	"math"
	"math/rand"
)

type glyph struct {
	text           string
	size, angle    float64
	originX, baseY float64
}

// Distort draws word one character at a time with its baseline at (x, y).
// Each character gets its own size, tilt, spacing and baseline jitter, then
// the whole word rides one shared sine wave. It returns the box covering
// the drawn characters.
func Distort(s Surface, rng *rand.Rand, x, y float64, word string, fontSize int, col color.Color) Rect {
	glyphs := make([]glyph, 0, len(word))
	cursor := x
	for _, r := range word {
		g := glyph{
			text:  string(r),
			size:  float64(randInt(rng, fontSize-2, fontSize+3)),
			angle: float64(randInt(rng, -10, 10)),
		}
		box := s.MeasureText(g.text, g.size, g.angle)
		g.originX = cursor
		g.baseY = y + float64(randInt(rng, -2, 2))
		glyphs = append(glyphs, g)
		cursor += box.Width + float64(randInt(rng, -2, 3))
	}

	amplitude := float64(randInt(rng, 2, 4))
	period := float64(randInt(rng, 10, 20))
	phase := float64(randInt(rng, 0, 628)) / 100

	bounds := Rect{X: x, Y: y - float64(fontSize), Width: cursor - x}
	maxHeight := 0.0
	for _, g := range glyphs {
		finalY := g.baseY + amplitude*math.Sin(2*math.Pi*g.originX/period+phase)
		s.DrawText(g.originX, finalY, g.size, g.angle, col, g.text)

		bounds.Y = math.Min(bounds.Y, finalY-g.size)
		maxHeight = math.Max(maxHeight, finalY-bounds.Y)
	}
	bounds.Height = maxHeight * 1.2
	return bounds
}
