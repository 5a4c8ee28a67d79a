package imaging

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Format is the output encoding of an exported image.
type Format string

const (
	// FormatPNG is lossless, supports transparency and produces larger files.
	FormatPNG Format = "png"
	// FormatJPEG is lossy, has no transparency and produces smaller files.
	FormatJPEG Format = "jpeg"
)

// ParseFormat accepts "png", "jpeg" and "jpg" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f *Format) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Lossy reports whether the format discards data, i.e. whether quality applies.
func (f Format) Lossy() bool {
	return f == FormatJPEG
}

func (f Format) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	default:
		return ""
	}
}

// Config tells the image renderer how to export.
//
// Scale multiplies the rendered resolution: 2-4 suits the web, 4-6 print.
// Quality is in [0,1] and only matters for lossy formats.
type Config struct {
	Scale   float64 `json:"scale" yaml:"scale"`
	Format  Format  `json:"format" yaml:"format"`
	Quality float64 `json:"quality" yaml:"quality"`
}

// Preset names.
const (
	PresetDefault      = "default"
	PresetHighQuality  = "high-quality"
	PresetWebOptimized = "web-optimized"
)

// DefaultConfig returns {scale: 6, format: png, quality: 1}.
func DefaultConfig() Config {
	return Config{Scale: 6, Format: FormatPNG, Quality: 1}
}

// HighQualityConfig returns {scale: 4, format: png, quality: 0.95}, meant for
// print and high-resolution displays.
func HighQualityConfig() Config {
	return Config{Scale: 4, Format: FormatPNG, Quality: 0.95}
}

// WebOptimizedConfig returns {scale: 2, format: jpeg, quality: 0.85}, meant
// for sharing on the web.
func WebOptimizedConfig() Config {
	return Config{Scale: 2, Format: FormatJPEG, Quality: 0.85}
}

// Presets returns a fresh copy of the built-in presets by name.
func Presets() map[string]Config {
	return map[string]Config{
		PresetDefault:      DefaultConfig(),
		PresetHighQuality:  HighQualityConfig(),
		PresetWebOptimized: WebOptimizedConfig(),
	}
}

// Preset returns the built-in preset with the given name.
func Preset(name string) (Config, bool) {
	c, ok := Presets()[name]
	return c, ok
}

// Validate checks scale > 0, a known format and quality within [0,1].
// Using a config without validating it is allowed.
func (c Config) Validate() error {
	var errs []error
	if math.IsNaN(c.Scale) || math.IsInf(c.Scale, 0) || c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidScale, c.Scale))
	}
	if c.Format != FormatPNG && c.Format != FormatJPEG {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format))
	}
	if math.IsNaN(c.Quality) || c.Quality < 0 || c.Quality > 1 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidQuality, c.Quality))
	}
	return errors.Join(errs...)
}

// EffectiveQuality is the quality a renderer should apply: Quality for lossy
// formats, 1 otherwise.
func (c Config) EffectiveQuality() float64 {
	if !c.Format.Lossy() {
		return 1
	}
	return min(max(c.Quality, 0), 1)
}

// JPEGQuality maps EffectiveQuality to the 1-100 scale of image/jpeg.
func (c Config) JPEGQuality() int {
	q := int(math.Round(c.EffectiveQuality() * 100))
	return min(max(q, 1), 100)
}
