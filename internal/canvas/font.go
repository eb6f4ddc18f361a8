// File: font.go
package canvas

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrFontUnavailable is returned when a font cannot be read or parsed.
var ErrFontUnavailable = errors.New("font unavailable")

// fontDPI makes sizes behave as typographic points on a 96 dpi screen.
const fontDPI = 96

// Typeface is a parsed TrueType font. It is read-only after parsing and can
// be shared by canvases of concurrent requests.
type Typeface struct {
	font *truetype.Font
}

// ParseTypeface parses raw TTF bytes.
func ParseTypeface(data []byte) (*Typeface, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty font data", ErrFontUnavailable)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}
	return &Typeface{font: f}, nil
}

// LoadTypeface reads and parses a TTF file from disk.
func LoadTypeface(path string) (*Typeface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}
	return ParseTypeface(data)
}

// DefaultTypeface returns the embedded Go Regular font.
func DefaultTypeface() (*Typeface, error) {
	return ParseTypeface(goregular.TTF)
}

func (t *Typeface) newFace(size float64) font.Face {
	return truetype.NewFace(t.font, &truetype.Options{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
}
