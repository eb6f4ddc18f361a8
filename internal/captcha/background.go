// File: background.go
package captcha

import (
	"image/color"
	"math"
	"math/rand"
)

const symbolSet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789~!@#$%^&*()_+=-`[]{};':\",./<>?"

// PaintBackground layers the decoy noise in a fixed order: short lines,
// translucent shapes, speckles, wavy lines, random symbols, decoy words.
func PaintBackground(s Surface, rng *rand.Rand, cfg BackgroundConfig) {
	drawNoiseLines(s, rng, cfg)
	drawGeometricShapes(s, rng, cfg)
	addSpeckles(s, rng, cfg)
	drawWavyLines(s, rng, cfg)
	addRandomCharacters(s, rng, cfg)
	addDecoyWords(s, rng, cfg)
}

func drawNoiseLines(s Surface, rng *rand.Rand, cfg BackgroundConfig) {
	w, h := s.Size()
	n := cfg.NoiseLines.draw(rng)
	for i := 0; i < n; i++ {
		col := color.NRGBA{
			R: uint8(randInt(rng, 180, 255)),
			G: uint8(randInt(rng, 180, 255)),
			B: uint8(randInt(rng, 180, 255)),
			A: 255,
		}
		x1, y1 := randInt(rng, 0, w), randInt(rng, 0, h)
		x2 := x1 + randInt(rng, -cfg.NoiseLength, cfg.NoiseLength)
		y2 := y1 + randInt(rng, -cfg.NoiseLength, cfg.NoiseLength)
		s.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2), col)
	}
}

func drawGeometricShapes(s Surface, rng *rand.Rand, cfg BackgroundConfig) {
	w, h := s.Size()
	n := cfg.Shapes.draw(rng)
	for i := 0; i < n; i++ {
		col := color.NRGBA{
			R: uint8(randInt(rng, 200, 240)),
			G: uint8(randInt(rng, 200, 240)),
			B: uint8(randInt(rng, 200, 240)),
			A: opacity(rng, cfg.ShapeOpacity),
		}
		x, y := float64(randInt(rng, 0, w)), float64(randInt(rng, 0, h))
		size := float64(cfg.ShapeSize.draw(rng))

		switch rng.Intn(4) {
		case 0: // circle
			s.DrawFilledEllipse(x, y, size, size, col)
		case 1: // rectangle
			s.Fill(Rect{X: x, Y: y, Width: size, Height: math.Floor(size * 0.7)}, col)
		case 2: // triangle
			s.DrawFilledPolygon([]Point{
				{X: x, Y: y + size},
				{X: x + size, Y: y + size},
				{X: x + size/2, Y: y},
			}, col)
		case 3: // diamond
			s.DrawFilledPolygon([]Point{
				{X: x, Y: y + size/2},
				{X: x + size/2, Y: y},
				{X: x + size, Y: y + size/2},
				{X: x + size/2, Y: y + size},
			}, col)
		}
	}
}

func addSpeckles(s Surface, rng *rand.Rand, cfg BackgroundConfig) {
	w, h := s.Size()
	n := cfg.Speckles.draw(rng)
	for i := 0; i < n; i++ {
		base := randInt(rng, 100, 200)
		col := color.NRGBA{
			R: uint8(clamp(randInt(rng, base-30, base+30), 0, 255)),
			G: uint8(clamp(randInt(rng, base-30, base+30), 0, 255)),
			B: uint8(clamp(randInt(rng, base-30, base+30), 0, 255)),
			A: opacity(rng, cfg.SpeckleOpacity),
		}
		x, y := randInt(rng, 0, w), randInt(rng, 0, h)

		switch rng.Intn(3) {
		case 0:
			s.SetPixel(x, y, col)
		case 1:
			s.DrawLine(float64(x), float64(y),
				float64(x+randInt(rng, -1, 1)), float64(y+randInt(rng, -1, 1)), col)
		case 2:
			s.Fill(Rect{X: float64(x), Y: float64(y), Width: 2, Height: 2}, col)
		}
	}
}

func drawWavyLines(s Surface, rng *rand.Rand, cfg BackgroundConfig) {
	w, h := s.Size()
	tween := cfg.easing()
	n := cfg.WavyLines.draw(rng)
	for i := 0; i < n; i++ {
		start := color.NRGBA{
			R: uint8(randInt(rng, 80, 180)),
			G: uint8(randInt(rng, 80, 180)),
			B: uint8(randInt(rng, 80, 180)),
			A: opacity(rng, cfg.WavyStartOpacity),
		}
		end := color.NRGBA{
			R: uint8(randInt(rng, 120, 220)),
			G: uint8(randInt(rng, 120, 220)),
			B: uint8(randInt(rng, 120, 220)),
			A: opacity(rng, cfg.WavyEndOpacity),
		}
		amplitude := float64(cfg.WavyAmplitude.draw(rng))
		frequency := float64(randInt(rng, 5, 12)) / 100
		phase := float64(randInt(rng, 0, 314)) / 100
		baseY := float64(randInt(rng, 0, h) + randInt(rng, -10, 10))

		lerp := func(a, b uint8, x float64) uint8 {
			v := tween(float32(x), float32(a), float32(int(b)-int(a)), float32(w))
			return uint8(clamp(int(v), 0, 255))
		}

		prevX, prevY := 0.0, baseY
		for x := 0; x < w; x += cfg.WavyStep {
			fx := float64(x)
			y := baseY + amplitude*math.Sin(frequency*fx+phase)
			col := color.NRGBA{
				R: lerp(start.R, end.R, fx),
				G: lerp(start.G, end.G, fx),
				B: lerp(start.B, end.B, fx),
				A: lerp(start.A, end.A, fx),
			}
			if x > 0 {
				s.DrawLine(prevX, prevY, fx, y, col)
			}
			prevX, prevY = fx, y
		}
	}
}

func addRandomCharacters(s Surface, rng *rand.Rand, cfg BackgroundConfig) {
	w, h := s.Size()
	n := cfg.Characters.draw(rng)
	for i := 0; i < n; i++ {
		col := color.NRGBA{
			R: uint8(randInt(rng, 100, 220)),
			G: uint8(randInt(rng, 100, 220)),
			B: uint8(randInt(rng, 100, 220)),
			A: opacity(rng, cfg.CharOpacity),
		}
		x, y := randInt(rng, 0, w), randInt(rng, 0, h)
		size := float64(cfg.CharSize.draw(rng))
		angle := float64(cfg.CharAngle.draw(rng))
		ch := symbolSet[rng.Intn(len(symbolSet))]

		s.DrawText(float64(x), float64(y), size, angle, col, string(ch))

		dots := randInt(rng, 1, 3)
		for j := 0; j < dots; j++ {
			dot := color.NRGBA{
				R: uint8(randInt(rng, 100, 200)),
				G: uint8(randInt(rng, 100, 200)),
				B: uint8(randInt(rng, 100, 200)),
				A: 255,
			}
			s.SetPixel(x+randInt(rng, -5, 5), y+randInt(rng, -5, 5), dot)
		}
	}
}

func addDecoyWords(s Surface, rng *rand.Rand, cfg BackgroundConfig) {
	if len(cfg.DecoyList) == 0 {
		return
	}
	w, h := s.Size()
	n := cfg.DecoyWords.draw(rng)
	for i := 0; i < n; i++ {
		col := color.NRGBA{
			R: uint8(randInt(rng, 150, 210)),
			G: uint8(randInt(rng, 150, 210)),
			B: uint8(randInt(rng, 150, 210)),
			A: uint8(randInt(rng, 90, 160)),
		}
		word := cfg.DecoyList[rng.Intn(len(cfg.DecoyList))]
		x, y := randInt(rng, 0, w), randInt(rng, 0, h)
		s.DrawText(float64(x), float64(y), float64(cfg.DecoySize.draw(rng)),
			float64(cfg.DecoyAngle.draw(rng)), col, word)
	}
}
