package analytics

import "errors"

var (
	// ErrSDKUnavailable is returned when no SDK is loaded in the current runtime.
	ErrSDKUnavailable = errors.New("analytics: sdk unavailable")

	// ErrInvalidUpstream is returned for relay upstreams that are not absolute URLs.
	ErrInvalidUpstream = errors.New("analytics: invalid upstream url")
)
