package imaging

import "errors"

var (
	ErrUnknownFormat  = errors.New("imaging: unknown format")
	ErrInvalidScale   = errors.New("imaging: scale must be positive")
	ErrInvalidQuality = errors.New("imaging: quality must be within [0,1]")
	ErrInvalidPresets = errors.New("imaging: invalid presets file")
)
