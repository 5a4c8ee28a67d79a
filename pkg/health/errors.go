package health

import "errors"

// ErrCheckTimeout replaces context.DeadlineExceeded in reports of checks
// that ran past the probe timeout.
var ErrCheckTimeout = errors.New("health: check timeout")
