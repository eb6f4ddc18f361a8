package captcha

import (
	"context"
	"image/color"
	"sync"
	"unicode/utf8"
)

type drawnText struct {
	x, y, size, angle float64
	text              string
}

type drawnEllipse struct {
	cx, cy, w, h float64
	filled       bool
}

// recordingSurface logs draw calls. Every character measures 0.5·size wide
// and 0.7·size tall, ignoring rotation.
type recordingSurface struct {
	w, h     int
	lines    int
	pixels   int
	fills    int
	texts    []drawnText
	ellipses []drawnEllipse
	polygons [][]Point
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{w: w, h: h}
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Fill(Rect, color.Color) { s.fills++ }

func (s *recordingSurface) DrawLine(_, _, _, _ float64, _ color.Color) { s.lines++ }

func (s *recordingSurface) SetPixel(_, _ int, _ color.Color) { s.pixels++ }

func (s *recordingSurface) DrawFilledPolygon([]Point, color.Color) { s.fills++ }

func (s *recordingSurface) DrawEllipse(cx, cy, w, h float64, _ color.Color) {
	s.ellipses = append(s.ellipses, drawnEllipse{cx, cy, w, h, false})
}

func (s *recordingSurface) DrawFilledEllipse(cx, cy, w, h float64, _ color.Color) {
	s.ellipses = append(s.ellipses, drawnEllipse{cx, cy, w, h, true})
}

func (s *recordingSurface) DrawPolygon(pts []Point, _ color.Color) {
	s.polygons = append(s.polygons, append([]Point(nil), pts...))
}

func (s *recordingSurface) MeasureText(text string, size, _ float64) Rect {
	n := float64(utf8.RuneCountInString(text))
	return Rect{X: 0, Y: -0.7 * size, Width: 0.5 * size * n, Height: 0.7 * size}
}

func (s *recordingSurface) DrawText(x, y, size, angle float64, _ color.Color, text string) {
	s.texts = append(s.texts, drawnText{x, y, size, angle, text})
}

// mapStore is an in-package Store for tests.
type mapStore struct {
	mu   sync.Mutex
	data map[string]*Challenge
	puts int
}

func newMapStore() *mapStore { return &mapStore{data: make(map[string]*Challenge)} }

func (m *mapStore) Put(_ context.Context, key string, c *Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = c
	m.puts++
	return nil
}

func (m *mapStore) Get(_ context.Context, key string) (*Challenge, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.data[key]
	return c, ok, nil
}

func (m *mapStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
