package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shapeWordAuth/internal/captcha"
)

func TestRun_WritesImageAndRecord(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	err := run(options{count: 2, seed: 42, outDir: dir, targets: 4}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 summary lines, got %q", out.String())
	}

	records, _ := filepath.Glob(filepath.Join(dir, "*.json"))
	if len(records) != 2 {
		t.Fatalf("expected 2 json records, got %d", len(records))
	}
	seeds := map[int64]bool{}
	for _, path := range records {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		seeds[rec.Seed] = true
		if n := len(rec.Challenge.Objects); n == 0 || n > 4 {
			t.Fatalf("record %s has %d objects", rec.ID, n)
		}
		if _, err := os.Stat(filepath.Join(dir, rec.Image)); err != nil {
			t.Fatalf("image for %s missing: %v", rec.ID, err)
		}
	}
	if !seeds[42] || !seeds[43] {
		t.Fatalf("seeds = %v, want 42 and 43", seeds)
	}
}

func TestRun_MissingFont(t *testing.T) {
	err := run(options{count: 1, seed: 1, outDir: t.TempDir(), fontPath: filepath.Join(t.TempDir(), "none.ttf")}, &bytes.Buffer{})
	if !errors.Is(err, captcha.ErrAssetUnavailable) {
		t.Fatalf("expected ErrAssetUnavailable, got %v", err)
	}
}

func TestRun_WordList(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	os.WriteFile(words, []byte("Fig\n"), 0644)
	var out bytes.Buffer
	if err := run(options{count: 1, seed: 7, outDir: dir, wordsPath: words}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "target=Fig/") {
		t.Fatalf("summary does not name the only word: %q", out.String())
	}
}

func TestRun_RejectsNonPositiveCount(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := run(options{count: 0, outDir: dir}, &bytes.Buffer{}); !errors.Is(err, errBadCount) {
		t.Fatalf("expected errBadCount, got %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("output directory created for a rejected run")
	}
}
