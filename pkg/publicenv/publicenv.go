package publicenv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/a-h/templ"
	"github.com/caarlos0/env/v11"
)

// Prefix marks variables that are safe to ship to the browser.
const Prefix = "PUBLIC_"

// GlobalName is the browser global holding the public variables.
const GlobalName = "__sitekit_env"

// ErrUnavailable is returned when the public environment cannot be read,
// e.g. outside the browser or when the page did not include Script.
var ErrUnavailable = errors.New("publicenv: public environment unavailable")

// Vars holds public configuration values by name.
type Vars map[string]string

// Lookup returns the value for key. Empty values count as absent.
func (v Vars) Lookup(key string) (string, bool) {
	val, ok := v[key]
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

// FromEnviron collects every PUBLIC_* variable of the current process.
func FromEnviron() Vars {
	return FromList(os.Environ(), Prefix)
}

// FromList collects the entries of environ (KEY=value form) whose key starts with prefix.
func FromList(environ []string, prefix string) Vars {
	vars := make(Vars)
	for k, v := range env.ToMap(environ) {
		if strings.HasPrefix(k, prefix) {
			vars[k] = v
		}
	}
	return vars
}

// Script renders an inline script exposing vars to the browser as globalThis.__sitekit_env.
// Values are JSON encoded with HTML escaping, so they cannot close the script element.
func Script(vars Vars) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		payload := vars
		if payload == nil {
			payload = Vars{}
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("publicenv: encode: %w", err)
		}
		_, err = fmt.Fprintf(w, "<script>globalThis.%s=%s;</script>", GlobalName, raw)
		return err
	})
}
