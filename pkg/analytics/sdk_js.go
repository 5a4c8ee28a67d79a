//go:build js && wasm

package analytics

import (
	"encoding/json"
	"fmt"
	"syscall/js"
)

// posthogSDK drives the posthog-js snippet loaded on the page.
type posthogSDK struct{}

func newSDK() SDK {
	return posthogSDK{}
}

func (posthogSDK) Init(key string, opts Options) error {
	ph := js.Global().Get("posthog")
	if ph.IsUndefined() || ph.IsNull() {
		return ErrSDKUnavailable
	}

	raw, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("analytics: encode options: %w", err)
	}
	cfg := js.Global().Get("JSON").Call("parse", string(raw))
	ph.Call("init", key, cfg)
	return nil
}
