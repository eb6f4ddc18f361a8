package captcha

import (
	"math/rand"
	"testing"
)

func quietBackground() BackgroundConfig {
	return BackgroundConfig{WavyStep: 2}
}

func TestPaintBackground_Empty(t *testing.T) {
	s := newRecordingSurface(600, 250)
	PaintBackground(s, rand.New(rand.NewSource(1)), quietBackground())
	if s.lines+s.pixels+s.fills+len(s.texts)+len(s.ellipses) != 0 {
		t.Fatalf("zero counts should draw nothing: %+v", s)
	}
}

func TestPaintBackground_WavyLineSegments(t *testing.T) {
	cfg := quietBackground()
	cfg.WavyLines = Range{1, 1}
	cfg.WavyAmplitude = Range{8, 18}
	s := newRecordingSurface(600, 250)
	PaintBackground(s, rand.New(rand.NewSource(1)), cfg)
	// x = 0, 2, ..., 598 joined by 299 segments
	if s.lines != 299 {
		t.Fatalf("wavy line drew %d segments, want 299", s.lines)
	}
}

func TestPaintBackground_Counts(t *testing.T) {
	cfg := DefaultConfig().Noise
	for seed := int64(0); seed < 5; seed++ {
		s := newRecordingSurface(600, 250)
		PaintBackground(s, rand.New(rand.NewSource(seed)), cfg)

		texts := len(s.texts)
		minTexts := cfg.Characters.Min + cfg.DecoyWords.Min
		maxTexts := cfg.Characters.Max + cfg.DecoyWords.Max
		if texts < minTexts || texts > maxTexts {
			t.Fatalf("seed %d: %d text draws, want %d..%d", seed, texts, minTexts, maxTexts)
		}
		// noise lines plus at least seven wavy lines of 299 segments
		if s.lines < cfg.NoiseLines.Min+7*299 {
			t.Fatalf("seed %d: only %d lines", seed, s.lines)
		}
		// every random symbol leaves at least one dot
		if s.pixels < cfg.Characters.Min {
			t.Fatalf("seed %d: only %d pixels", seed, s.pixels)
		}
		for _, e := range s.ellipses {
			if !e.filled {
				t.Fatalf("background circles must be filled")
			}
		}
	}
}

func TestPaintBackground_DecoyWordsFromList(t *testing.T) {
	cfg := quietBackground()
	cfg.DecoyWords = Range{10, 10}
	cfg.DecoyList = []string{"owl", "fox"}
	cfg.DecoySize = Range{9, 13}
	cfg.DecoyAngle = Range{-30, 30}
	s := newRecordingSurface(600, 250)
	PaintBackground(s, rand.New(rand.NewSource(4)), cfg)
	if len(s.texts) != 10 {
		t.Fatalf("expected 10 decoy words, got %d", len(s.texts))
	}
	for _, d := range s.texts {
		if d.text != "owl" && d.text != "fox" {
			t.Fatalf("unexpected decoy %q", d.text)
		}
		if d.angle < -30 || d.angle > 30 || d.size < 9 || d.size > 13 {
			t.Fatalf("decoy %+v outside configured ranges", d)
		}
	}
}

func TestPaintBackground_Deterministic(t *testing.T) {
	cfg := DefaultConfig().Noise
	a, b := newRecordingSurface(600, 250), newRecordingSurface(600, 250)
	PaintBackground(a, rand.New(rand.NewSource(8)), cfg)
	PaintBackground(b, rand.New(rand.NewSource(8)), cfg)
	if a.lines != b.lines || a.pixels != b.pixels || a.fills != b.fills || len(a.texts) != len(b.texts) {
		t.Fatal("same seed painted different backgrounds")
	}
	for i := range a.texts {
		if a.texts[i] != b.texts[i] {
			t.Fatalf("text %d differs", i)
		}
	}
}
