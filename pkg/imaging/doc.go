// Package imaging declares how images are exported.
//
// A [Config] carries a scale factor, an output [Format] and a lossy quality.
// Three presets ship with the package:
//
//	default        {scale: 6, format: png,  quality: 1}
//	high-quality   {scale: 4, format: png,  quality: 0.95}
//	web-optimized  {scale: 2, format: jpeg, quality: 0.85}
//
// The renderer that consumes a Config lives elsewhere; quality is ignored for
// lossless formats. Deployments can adjust or add presets with a YAML file
// loaded by [LoadPresets].
package imaging
