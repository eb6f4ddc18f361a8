// File: validate.go
package captcha

import (
	"context"
	"fmt"
	"math"
)

// TextClickArea is the word's box grown by 5px on every side. The stored
// text position is the baseline, so the box starts TextHeight above it.
func TextClickArea(o PlacedObject) Rect {
	return Rect{
		X:      o.TextX - 5,
		Y:      o.TextY - o.TextHeight - 5,
		Width:  o.TextWidth + 10,
		Height: o.TextHeight + 10,
	}
}

// Validate reports whether click hits the target's word or its shape.
// Circles also require the click to be within the radius; squares and
// stars use their bounds as is.
func Validate(click Point, target PlacedObject) bool {
	if TextClickArea(target).Contains(click) {
		return true
	}
	b := target.Bounds
	if !b.Contains(click) {
		return false
	}
	if target.Shape == Circle {
		c := b.Center()
		return math.Hypot(click.X-c.X, click.Y-c.Y) <= b.Width/2
	}
	return true
}

// Verify checks click against the challenge stored under key. The stored
// challenge is left in place.
func Verify(ctx context.Context, store Store, key string, click *Point) (bool, error) {
	if click == nil {
		return false, ErrMissingClick
	}
	ch, ok, err := store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load challenge: %w", err)
	}
	if !ok {
		return false, ErrSessionMissing
	}
	target, ok := ch.TargetObject()
	if !ok {
		return false, fmt.Errorf("%w: target index %d of %d", ErrSessionMissing, ch.Target, len(ch.Objects))
	}
	return Validate(*click, target), nil
}
