//go:build js && wasm

package publicenv

import "syscall/js"

// Browser reads the variables rendered by Script.
func Browser() (Vars, error) {
	obj := js.Global().Get(GlobalName)
	if obj.IsUndefined() || obj.IsNull() || obj.Type() != js.TypeObject {
		return nil, ErrUnavailable
	}

	keys := js.Global().Get("Object").Call("keys", obj)
	vars := make(Vars, keys.Length())
	for i := range keys.Length() {
		k := keys.Index(i).String()
		if v := obj.Get(k); v.Type() == js.TypeString {
			vars[k] = v.String()
		}
	}
	return vars, nil
}
