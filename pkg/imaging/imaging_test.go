package imaging_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitekit/pkg/imaging"
)

func TestPresets(t *testing.T) {
	t.Parallel()

	require.Equal(t, imaging.Config{Scale: 6, Format: "png", Quality: 1}, imaging.DefaultConfig())
	require.Equal(t, imaging.Config{Scale: 4, Format: "png", Quality: 0.95}, imaging.HighQualityConfig())
	require.Equal(t, imaging.Config{Scale: 2, Format: "jpeg", Quality: 0.85}, imaging.WebOptimizedConfig())

	presets := imaging.Presets()
	require.Len(t, presets, 3)
	require.Equal(t, imaging.DefaultConfig(), presets["default"])
	require.Equal(t, imaging.HighQualityConfig(), presets["high-quality"])
	require.Equal(t, imaging.WebOptimizedConfig(), presets["web-optimized"])

	t.Run("copies are independent", func(t *testing.T) {
		t.Parallel()

		p := imaging.Presets()
		p[imaging.PresetDefault] = imaging.Config{Scale: 1}
		require.Equal(t, imaging.DefaultConfig(), imaging.Presets()[imaging.PresetDefault])
	})

	t.Run("lookup", func(t *testing.T) {
		t.Parallel()

		c, ok := imaging.Preset(imaging.PresetWebOptimized)
		require.True(t, ok)
		require.Equal(t, imaging.WebOptimizedConfig(), c)

		_, ok = imaging.Preset("poster")
		require.False(t, ok)
	})

	t.Run("built-ins are valid", func(t *testing.T) {
		t.Parallel()

		for name, c := range imaging.Presets() {
			require.NoError(t, c.Validate(), name)
		}
	})
}

func TestConfigJSON(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(imaging.WebOptimizedConfig())
	require.NoError(t, err)
	require.JSONEq(t, `{"scale":2,"format":"jpeg","quality":0.85}`, string(raw))

	var c imaging.Config
	require.NoError(t, json.Unmarshal([]byte(`{"scale":3,"format":"JPG","quality":0.5}`), &c))
	require.Equal(t, imaging.Config{Scale: 3, Format: imaging.FormatJPEG, Quality: 0.5}, c)

	require.ErrorIs(t, json.Unmarshal([]byte(`{"format":"gif"}`), &c), imaging.ErrUnknownFormat)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  imaging.Config
		want []error
	}{
		{name: "zero scale", cfg: imaging.Config{Scale: 0, Format: imaging.FormatPNG, Quality: 1}, want: []error{imaging.ErrInvalidScale}},
		{name: "negative scale", cfg: imaging.Config{Scale: -2, Format: imaging.FormatPNG, Quality: 1}, want: []error{imaging.ErrInvalidScale}},
		{name: "infinite scale", cfg: imaging.Config{Scale: math.Inf(1), Format: imaging.FormatPNG, Quality: 1}, want: []error{imaging.ErrInvalidScale}},
		{name: "unknown format", cfg: imaging.Config{Scale: 1, Format: "webp", Quality: 1}, want: []error{imaging.ErrUnknownFormat}},
		{name: "quality above one", cfg: imaging.Config{Scale: 1, Format: imaging.FormatJPEG, Quality: 1.5}, want: []error{imaging.ErrInvalidQuality}},
		{name: "negative quality", cfg: imaging.Config{Scale: 1, Format: imaging.FormatJPEG, Quality: -0.1}, want: []error{imaging.ErrInvalidQuality}},
		{name: "everything wrong", cfg: imaging.Config{}, want: []error{imaging.ErrInvalidScale, imaging.ErrUnknownFormat}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			require.Error(t, err)
			for _, want := range tt.want {
				require.ErrorIs(t, err, want)
			}
		})
	}
}

func TestQuality(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 1.0, imaging.HighQualityConfig().EffectiveQuality(), 0)
	require.Equal(t, 100, imaging.HighQualityConfig().JPEGQuality())

	require.InDelta(t, 0.85, imaging.WebOptimizedConfig().EffectiveQuality(), 1e-9)
	require.Equal(t, 85, imaging.WebOptimizedConfig().JPEGQuality())

	require.Equal(t, 1, imaging.Config{Scale: 1, Format: imaging.FormatJPEG, Quality: 0}.JPEGQuality())
}

func TestFormat(t *testing.T) {
	t.Parallel()

	require.False(t, imaging.FormatPNG.Lossy())
	require.True(t, imaging.FormatJPEG.Lossy())
	require.Equal(t, "image/png", imaging.FormatPNG.MIMEType())
	require.Equal(t, "image/jpeg", imaging.FormatJPEG.MIMEType())
	require.Equal(t, ".png", imaging.FormatPNG.Extension())
	require.Equal(t, ".jpg", imaging.FormatJPEG.Extension())

	f, err := imaging.ParseFormat(" JPEG ")
	require.NoError(t, err)
	require.Equal(t, imaging.FormatJPEG, f)

	_, err = imaging.ParseFormat("bmp")
	require.ErrorIs(t, err, imaging.ErrUnknownFormat)
}
