// File: config.go
package captcha

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	"github.com/tanema/gween/ease"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) valid() bool { return r.Min <= r.Max }

// Config holds every tunable of the generator. Colours are 0xRRGGBB,
// opacities are 0 (transparent) to 255 (opaque).
type Config struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Background  uint32 `json:"background"`
	FontSize    int    `json:"fontSize"`
	TargetCount int    `json:"targetCount"` // word/shape pairs to try to place
	Margin      int    `json:"margin"`      // free space kept around each word
	EdgePadding int    `json:"edgePadding"` // distance kept from the image border
	MaxAttempts int    `json:"maxAttempts"` // position samples per pair

	Words       []string    `json:"words"`
	Shapes      []ShapeKind `json:"shapes"`
	ShapeColors []uint32    `json:"shapeColors"`
	TextColor   uint32      `json:"textColor"`

	// InstructionSize 0 leaves the instruction off the image.
	InstructionSize float64 `json:"instructionSize"`
	FooterText      string  `json:"footerText"`
	FooterSize      float64 `json:"footerSize"`

	Noise BackgroundConfig `json:"noise"`
}

// BackgroundConfig controls the decoy layers painted under the words.
type BackgroundConfig struct {
	NoiseLines  Range `json:"noiseLines"`
	NoiseLength int   `json:"noiseLength"`

	Shapes       Range `json:"shapes"`
	ShapeSize    Range `json:"shapeSize"`
	ShapeOpacity Range `json:"shapeOpacity"`

	Speckles       Range `json:"speckles"`
	SpeckleOpacity Range `json:"speckleOpacity"`

	WavyLines        Range  `json:"wavyLines"`
	WavyStep         int    `json:"wavyStep"`
	WavyAmplitude    Range  `json:"wavyAmplitude"`
	WavyStartOpacity Range  `json:"wavyStartOpacity"`
	WavyEndOpacity   Range  `json:"wavyEndOpacity"`
	WavyEasing       string `json:"wavyEasing"` // linear, inOutQuad, inOutSine, inOutCubic

	Characters  Range `json:"characters"`
	CharSize    Range `json:"charSize"`
	CharAngle   Range `json:"charAngle"`
	CharOpacity Range `json:"charOpacity"`

	DecoyWords Range    `json:"decoyWords"`
	DecoyList  []string `json:"decoyList"`
	DecoySize  Range    `json:"decoySize"`
	DecoyAngle Range    `json:"decoyAngle"`

	// SoftenRadius 0 disables the blur applied after the background layers.
	SoftenRadius float64 `json:"softenRadius"`
	SoftenSigma  float64 `json:"softenSigma"`
}

var defaultWords = []string{
	"Apple", "Banana", "Orange", "Grape", "Kiwi", "Lemon", "Melon", "Cherry", "Peach", "Mango",
	"Strawberry", "Pineapple", "Blueberry", "Watermelon", "Raspberry", "Blackberry", "Plum",
	"Apricot", "Coconut", "Avocado", "Pear", "Papaya", "Guava", "Fig", "Lime", "Tangerine",
	"Pomegranate", "Cantaloupe", "Honeydew", "Dragonfruit", "Lychee", "Passionfruit",
	"Jackfruit", "Durian", "Starfruit", "Persimmon", "Quince", "Mulberry", "Elderberry",
	"Gooseberry", "Currant", "Tamarind", "Sapodilla", "Longan", "Soursop", "Cherimoya",
	"Jujube", "Salak", "Rambutan", "Mangosteen", "Langsat", "Duku", "Bacuri", "Cupuacu",
	"Açaí", "Camu Camu", "Cacoa", "Bacaba", "Buriti", "Brazil Nut", "Cocona", "Guaraná",
	"Jabuticaba", "Cabeludinha", "Pitangueira",
}

var defaultDecoys = []string{"cat", "sun", "box", "map", "pen", "cup", "key", "fox", "hat", "owl"}

// DefaultConfig returns a 600×250 challenge with five pairs.
func DefaultConfig() Config {
	return Config{
		Width:       600,
		Height:      250,
		Background:  0xFFFFFF,
		FontSize:    20,
		TargetCount: 5,
		Margin:      20,
		EdgePadding: 30,
		MaxAttempts: 50,
		Words:       append([]string(nil), defaultWords...),
		Shapes:      []ShapeKind{Circle, Square, Star},
		// blue, green, red, purple, orange
		ShapeColors:     []uint32{0x0000FF, 0x008000, 0xFF0000, 0x800080, 0xFF8C00},
		TextColor:       0x000000,
		InstructionSize: 16,
		FooterSize:      14,
		Noise: BackgroundConfig{
			NoiseLines:       Range{100, 100},
			NoiseLength:      20,
			Shapes:           Range{15, 20},
			ShapeSize:        Range{20, 60},
			ShapeOpacity:     Range{35, 115},
			Speckles:         Range{300, 500},
			SpeckleOpacity:   Range{0, 255},
			WavyLines:        Range{7, 10},
			WavyStep:         2,
			WavyAmplitude:    Range{8, 18},
			WavyStartOpacity: Range{115, 175},
			WavyEndOpacity:   Range{75, 135},
			WavyEasing:       "linear",
			Characters:       Range{15, 25},
			CharSize:         Range{8, 16},
			CharAngle:        Range{-45, 45},
			CharOpacity:      Range{55, 155},
			DecoyWords:       Range{10, 10},
			DecoyList:        append([]string(nil), defaultDecoys...),
			DecoySize:        Range{9, 13},
			DecoyAngle:       Range{-30, 30},
			SoftenRadius:     1,
			SoftenSigma:      0.6,
		},
	}
}

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inOutQuad":  ease.InOutQuad,
	"inOutSine":  ease.InOutSine,
	"inOutCubic": ease.InOutCubic,
}

func (b BackgroundConfig) easing() ease.TweenFunc {
	if fn, ok := easings[b.WavyEasing]; ok {
		return fn
	}
	return ease.Linear
}

// Validate checks the config for values the generator cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.FontSize <= 2:
		return fmt.Errorf("%w: font size %d", ErrInvalidConfig, c.FontSize)
	case c.TargetCount <= 0:
		return fmt.Errorf("%w: target count %d", ErrInvalidConfig, c.TargetCount)
	case c.MaxAttempts <= 0:
		return fmt.Errorf("%w: max attempts %d", ErrInvalidConfig, c.MaxAttempts)
	case c.Margin < 0 || c.EdgePadding < 0:
		return fmt.Errorf("%w: negative margin or padding", ErrInvalidConfig)
	case len(c.Words) == 0:
		return fmt.Errorf("%w: no words", ErrInvalidConfig)
	case len(c.Shapes) == 0:
		return fmt.Errorf("%w: no shapes", ErrInvalidConfig)
	case len(c.ShapeColors) == 0:
		return fmt.Errorf("%w: no shape colours", ErrInvalidConfig)
	}
	for _, s := range c.Shapes {
		if _, err := ParseShapeKind(string(s)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	for _, w := range c.Words {
		if w == "" {
			return fmt.Errorf("%w: empty word", ErrInvalidConfig)
		}
	}
	return c.Noise.validate()
}

func (b BackgroundConfig) validate() error {
	ranges := map[string]Range{
		"noiseLines": b.NoiseLines, "shapes": b.Shapes, "shapeSize": b.ShapeSize,
		"shapeOpacity": b.ShapeOpacity, "speckles": b.Speckles, "speckleOpacity": b.SpeckleOpacity,
		"wavyLines": b.WavyLines, "wavyAmplitude": b.WavyAmplitude,
		"wavyStartOpacity": b.WavyStartOpacity, "wavyEndOpacity": b.WavyEndOpacity,
		"characters": b.Characters, "charSize": b.CharSize, "charAngle": b.CharAngle,
		"charOpacity": b.CharOpacity, "decoyWords": b.DecoyWords, "decoySize": b.DecoySize,
		"decoyAngle": b.DecoyAngle,
	}
	for name, r := range ranges {
		if !r.valid() {
			return fmt.Errorf("%w: %s range [%d,%d] is inverted", ErrInvalidConfig, name, r.Min, r.Max)
		}
	}
	if b.WavyStep <= 0 {
		return fmt.Errorf("%w: wavy step %d", ErrInvalidConfig, b.WavyStep)
	}
	if b.DecoyWords.Max > 0 && len(b.DecoyList) == 0 {
		return fmt.Errorf("%w: decoy words requested but decoy list is empty", ErrInvalidConfig)
	}
	if _, ok := easings[b.WavyEasing]; b.WavyEasing != "" && !ok {
		return fmt.Errorf("%w: unknown easing %q", ErrInvalidConfig, b.WavyEasing)
	}
	return nil
}

// LoadConfig reads a JSON file on top of DefaultConfig. Fields missing
// from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// rgb converts 0xRRGGBB plus an opacity into a colour.
func rgb(v uint32, alpha uint8) color.NRGBA {
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: alpha}
}
