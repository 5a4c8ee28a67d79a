package imaging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type presetsFile struct {
	Presets map[string]yaml.Node `yaml:"presets"`
}

// LoadPresets reads preset overrides from YAML and merges them over the
// built-in presets. Fields omitted for a built-in preset keep their built-in
// value; new presets start from DefaultConfig. Every resulting preset is validated.
//
//	presets:
//	  default:
//	    scale: 3
//	  thumbnail:
//	    scale: 1
//	    format: jpeg
//	    quality: 0.7
func LoadPresets(r io.Reader) (map[string]Config, error) {
	var f presetsFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPresets, err)
	}

	presets := Presets()
	var errs []error
	for name, node := range f.Presets {
		cfg, ok := presets[name]
		if !ok {
			cfg = DefaultConfig()
		}
		if err := node.Decode(&cfg); err != nil {
			errs = append(errs, fmt.Errorf("preset %q: %w", name, err))
			continue
		}
		if err := cfg.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("preset %q: %w", name, err))
			continue
		}
		presets[name] = cfg
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPresets, errors.Join(errs...))
	}
	return presets, nil
}

// LoadPresetsFile is LoadPresets on a file. An empty path returns the built-ins.
func LoadPresetsFile(path string) (map[string]Config, error) {
	if path == "" {
		return Presets(), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imaging: open presets: %w", err)
	}
	defer fh.Close()
	return LoadPresets(fh)
}
