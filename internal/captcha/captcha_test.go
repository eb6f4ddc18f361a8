package captcha

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"math/rand"
	"reflect"
	"strings"
	"sync"
	"testing"

	"shapeWordAuth/internal/canvas"
)

func newTestGenerator(t *testing.T, cfg Config) *Generator {
	t.Helper()
	tf, err := canvas.DefaultTypeface()
	if err != nil {
		t.Fatalf("typeface: %v", err)
	}
	g, err := NewGenerator(cfg, tf)
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	return g
}

func TestNewGenerator_Errors(t *testing.T) {
	if _, err := NewGenerator(DefaultConfig(), nil); !errors.Is(err, ErrAssetUnavailable) {
		t.Fatalf("nil typeface: expected ErrAssetUnavailable, got %v", err)
	}
	tf, _ := canvas.DefaultTypeface()
	cfg := DefaultConfig()
	cfg.Shapes = nil
	if _, err := NewGenerator(cfg, tf); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestGenerate_Scenario(t *testing.T) {
	g := newTestGenerator(t, testConfig())

	res, err := g.Generate(rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	ch := res.Challenge
	if len(ch.Objects) == 0 || len(ch.Objects) > 5 {
		t.Fatalf("got %d objects, want 1..5", len(ch.Objects))
	}
	target, ok := ch.TargetObject()
	if !ok {
		t.Fatalf("target %d out of range", ch.Target)
	}
	if err := satisfies(ch.Instruction, target); err != nil {
		t.Fatal(err)
	}
	for _, o := range ch.Objects {
		if o.Word != "Apple" && o.Word != "Banana" && o.Word != "Orange" {
			t.Fatalf("unexpected word %q", o.Word)
		}
	}

	if !Validate(target.Bounds.Center(), target) {
		t.Fatalf("click at the shape centre should pass: %+v", target)
	}
	if Validate(Point{X: 0, Y: 0}, target) {
		t.Fatalf("click at the origin should fail: %+v", target)
	}

	im, err := png.Decode(bytes.NewReader(res.PNG))
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if b := im.Bounds(); b.Dx() != 600 || b.Dy() != 250 {
		t.Fatalf("image size %v", b)
	}
	if !strings.HasPrefix(res.DataURI(), "data:image/png;base64,") {
		t.Fatal("bad data uri")
	}
}

func TestGenerate_DeterministicWithSeed(t *testing.T) {
	g := newTestGenerator(t, testConfig())
	a, err := g.Generate(rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Generate(rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Challenge, b.Challenge) {
		t.Fatalf("same seed produced different challenges:\n%+v\n%+v", a.Challenge, b.Challenge)
	}
	if !bytes.Equal(a.PNG, b.PNG) {
		t.Fatal("same seed produced different images")
	}
}

func TestGenerate_NoPlacement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Words = []string{strings.Repeat("W", 60)}
	g := newTestGenerator(t, cfg)
	if _, err := g.Generate(rand.New(rand.NewSource(1))); !errors.Is(err, ErrNoPlacement) {
		t.Fatalf("expected ErrNoPlacement, got %v", err)
	}
}

func TestIssue_StoresOnlyOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()

	bad := DefaultConfig()
	bad.Words = []string{strings.Repeat("W", 60)}
	if _, err := newTestGenerator(t, bad).Issue(ctx, store, "s1", rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected failure")
	}
	if store.puts != 0 {
		t.Fatalf("failed generation wrote %d entries", store.puts)
	}

	g := newTestGenerator(t, testConfig())
	res, err := g.Issue(ctx, store, "s1", rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}
	stored, ok, _ := store.Get(ctx, "s1")
	if !ok || !reflect.DeepEqual(stored, res.Challenge) {
		t.Fatal("stored challenge does not match the issued one")
	}

	target, _ := res.Challenge.TargetObject()
	click := target.Bounds.Center()
	for i := 0; i < 2; i++ {
		ok, err := Verify(ctx, store, "s1", &click)
		if err != nil || !ok {
			t.Fatalf("verify %d: ok=%v err=%v", i+1, ok, err)
		}
	}
}

func TestIssue_IndependentSessions(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	g := newTestGenerator(t, testConfig())

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = g.Issue(ctx, store, string(rune('a'+i)), rand.New(rand.NewSource(int64(i))))
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		if errs[i] != nil {
			t.Fatalf("session %d: %v", i, errs[i])
		}
		stored, ok, _ := store.Get(ctx, string(rune('a'+i)))
		if !ok || !reflect.DeepEqual(stored, res.Challenge) {
			t.Fatalf("session %d: stored challenge mismatch", i)
		}
	}
}
