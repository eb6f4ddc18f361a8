// File: placement.go
package captcha

import (
	"math"
	"math/rand"
)

type pairing struct {
	word  string
	shape ShapeKind
}

// slot is the measured, undistorted text box used for overlap tests.
// Y is the baseline.
type slot struct {
	x, y, width, height float64
}

func (a slot) overlaps(b slot, margin float64) bool {
	return a.x < b.x+b.width+margin &&
		a.x+a.width+margin > b.x &&
		a.y < b.y+b.height+margin &&
		a.y+a.height+margin > b.y
}

func overlapsAny(placed []slot, cand slot, margin float64) bool {
	for _, p := range placed {
		if cand.overlaps(p, margin) {
			return true
		}
	}
	return false
}

// displayList pairs ceil(targetCount/2) shuffled words with every shape
// kind, shuffles the pairs and keeps the first targetCount.
func displayList(rng *rand.Rand, words []string, shapes []ShapeKind, targetCount int) []pairing {
	pool := append([]string(nil), words...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	n := min(len(pool), (targetCount+1)/2)

	combos := make([]pairing, 0, n*len(shapes))
	for _, w := range pool[:n] {
		for _, sh := range shapes {
			combos = append(combos, pairing{word: w, shape: sh})
		}
	}
	rng.Shuffle(len(combos), func(i, j int) { combos[i], combos[j] = combos[j], combos[i] })
	return combos[:min(len(combos), targetCount)]
}

// Place draws the interactive word/shape pairs and returns them in render
// order. Pairs that find no free spot within cfg.MaxAttempts samples are
// dropped, so fewer than cfg.TargetCount objects may come back.
func Place(s Surface, rng *rand.Rand, cfg Config) []PlacedObject {
	width, height := s.Size()
	pad := cfg.EdgePadding
	textColor := rgb(cfg.TextColor, 255)

	var placed []slot
	var objects []PlacedObject
	for _, p := range displayList(rng, cfg.Words, cfg.Shapes, cfg.TargetCount) {
		dim := s.MeasureText(p.word, float64(cfg.FontSize), 0)

		minX, maxX := pad, width-int(math.Ceil(dim.Width))-pad
		minY, maxY := pad+cfg.FontSize, height-pad
		if maxX < minX || maxY < minY {
			continue
		}

		var cand slot
		found := false
		for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
			cand = slot{
				x:      float64(randInt(rng, minX, maxX)),
				y:      float64(randInt(rng, minY, maxY)),
				width:  dim.Width,
				height: dim.Height,
			}
			if !overlapsAny(placed, cand, float64(cfg.Margin)) {
				found = true
				break
			}
		}
		if !found {
			continue
		}

		outline := rgb(cfg.ShapeColors[rng.Intn(len(cfg.ShapeColors))], 255)
		rendered := Distort(s, rng, cand.x, cand.y, p.word, cfg.FontSize, textColor)
		boxWidth := math.Max(rendered.Width, cand.width)
		bounds := AnnotatorFor(p.shape)(s, cand.x, cand.y-cand.height, boxWidth, cand.height, outline)

		placed = append(placed, cand)
		objects = append(objects, PlacedObject{
			Word:       p.word,
			Shape:      p.shape,
			Bounds:     bounds,
			TextX:      cand.x,
			TextY:      cand.y,
			TextWidth:  cand.width,
			TextHeight: cand.height,
		})
	}
	return objects
}
