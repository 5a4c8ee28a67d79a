//go:build !(js && wasm)

package publicenv

// Browser always fails outside the browser.
func Browser() (Vars, error) {
	return nil, ErrUnavailable
}
