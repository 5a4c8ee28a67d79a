package errreport

import (
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// ClientPath is where the browser posts uncaught errors.
const ClientPath = "/_app/errors"

const defaultMaxBodyBytes = 16 << 10

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

// StripTags removes all markup from s. Browser reports are untrusted and
// end up in logs and dashboards that may render HTML.
func StripTags(s string) string {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

type clientConfig struct {
	maxBodyBytes int64
}

// ClientOption configures ClientHandler.
type ClientOption func(*clientConfig)

// WithMaxBodyBytes limits the accepted report size. Defaults to 16 KiB.
func WithMaxBodyBytes(n int64) ClientOption {
	return func(c *clientConfig) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// ClientHandler accepts JSON error reports from the browser, normalizes them
// with n and hands the record to rep. It answers 202 with the record, or 400
// for a body that is not a JSON object.
//
// Any JSON object is accepted; "message" is the only field that survives.
func ClientHandler(n Normalizer, rep Reporter, opts ...ClientOption) http.Handler {
	cfg := &clientConfig{maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(cfg)
	}
	if n == nil {
		n = Client()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, Record{Message: http.StatusText(http.StatusMethodNotAllowed)})
			return
		}

		var raw map[string]any
		body := http.MaxBytesReader(w, r.Body, cfg.maxBodyBytes)
		if err := json.NewDecoder(body).Decode(&raw); err != nil || raw == nil {
			status := http.StatusBadRequest
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				status = http.StatusRequestEntityTooLarge
			}
			writeJSON(w, status, Record{Message: http.StatusText(status)})
			return
		}
		_, _ = io.Copy(io.Discard, body)

		in := clientInput(raw)
		rec := n(r.Context(), in)
		if rep != nil {
			rep.Report(r.Context(), SourceClient, rec)
		}
		writeJSON(w, http.StatusAccepted, rec)
	})
}

// clientInput maps a decoded browser report onto Input.
func clientInput(raw map[string]any) Input {
	in := Input{Extra: make(map[string]any, len(raw))}
	for k, v := range raw {
		switch k {
		case "message":
			if s, ok := v.(string); ok {
				in.Message = StripTags(s)
			}
		case "stack":
			if s, ok := v.(string); ok {
				in.Stack = []byte(s)
			}
		case "status":
			if f, ok := v.(float64); ok {
				in.Status = int(f)
			}
		default:
			in.Extra[k] = v
		}
	}
	return in
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
