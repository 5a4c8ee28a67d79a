package health

import (
	"encoding/json"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// LivenessHandler returns a handler that answers OK while the process runs.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, r, &Response{Status: StatusHealthy})
	}
}

// ReadinessHandler returns a handler that runs checks on every probe.
// It answers 503 and names the failing checks when any of them fails.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		write(w, r, runChecks(r.Context(), checks, cfg))
	}
}

// write renders resp as JSON (Accept: application/json or ?format=json) or as
// a one-line plain text body.
func write(w http.ResponseWriter, r *http.Request, resp *Response) {
	status := http.StatusOK
	if resp.Status == StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")

	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if status == http.StatusOK {
		_, _ = w.Write([]byte("OK"))
		return
	}
	_, _ = w.Write([]byte(StatusUnhealthy + ": " + strings.Join(resp.Failed(), ", ")))
}

// Failed lists the names of failed checks in lexical order.
func (r *Response) Failed() []string {
	var failed []string
	for _, name := range slices.Sorted(maps.Keys(r.Checks)) {
		if r.Checks[name].Status == StatusUnhealthy {
			failed = append(failed, name)
		}
	}
	return failed
}
