// File: captcha.go
package captcha

import (
	"context"
	"fmt"
	"math/rand"

	"shapeWordAuth/internal/canvas"
)

// Generator renders challenges from one config and typeface. It holds no
// per-request state and can be shared.
type Generator struct {
	cfg Config
	tf  *canvas.Typeface
}

// NewGenerator validates cfg. A nil typeface is an asset error.
func NewGenerator(cfg Config, tf *canvas.Typeface) (*Generator, error) {
	if tf == nil {
		return nil, fmt.Errorf("%w: no typeface", ErrAssetUnavailable)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, tf: tf}, nil
}

// Config returns a copy of the generator's config.
func (g *Generator) Config() Config { return g.cfg }

// Result is a rendered challenge.
type Result struct {
	Challenge *Challenge
	PNG       []byte
}

// DataURI returns the image as an inline data URI.
func (r *Result) DataURI() string { return canvas.DataURI(r.PNG) }

// Generate renders one challenge using rng for every random decision.
func (g *Generator) Generate(rng *rand.Rand) (*Result, error) {
	cfg := g.cfg
	cv, err := canvas.New(cfg.Width, cfg.Height, g.tf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetUnavailable, err)
	}
	cv.Clear(rgb(cfg.Background, 255))

	PaintBackground(cv, rng, cfg.Noise)
	if err := cv.Soften(cfg.Noise.SoftenRadius, cfg.Noise.SoftenSigma); err != nil {
		return nil, err
	}

	objects := Place(cv, rng, cfg)
	target, instruction, err := SelectTarget(rng, objects)
	if err != nil {
		return nil, err
	}

	ink := rgb(cfg.TextColor, 255)
	if cfg.InstructionSize > 0 {
		cv.DrawText(20, 30, cfg.InstructionSize, 0, ink, instruction)
	}
	if cfg.FooterText != "" {
		cv.DrawText(20, float64(cfg.Height-20), cfg.FooterSize, 0, ink, cfg.FooterText)
	}

	data, err := cv.EncodePNG()
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return &Result{
		Challenge: &Challenge{Objects: objects, Target: target, Instruction: instruction},
		PNG:       data,
	}, nil
}

// Issue generates a challenge and records it under key. Nothing is stored
// when generation fails.
func (g *Generator) Issue(ctx context.Context, store Store, key string, rng *rand.Rand) (*Result, error) {
	res, err := g.Generate(rng)
	if err != nil {
		return nil, err
	}
	if err := store.Put(ctx, key, res.Challenge); err != nil {
		return nil, fmt.Errorf("store challenge: %w", err)
	}
	return res, nil
}
