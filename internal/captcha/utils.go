// File: utils.go
package captcha

import (
	"math/rand"
	"time"
)

// NewRand returns an independent generator for one request.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// randInt draws uniformly from [min, max].
func randInt(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

func (r Range) draw(rng *rand.Rand) int {
	return randInt(rng, r.Min, r.Max)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func opacity(rng *rand.Rand, r Range) uint8 {
	return uint8(clamp(r.draw(rng), 0, 255))
}
