package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithPageTransforms(t *testing.T) {
	t.Parallel()

	r := withPageTransforms(httptest.NewRequest(http.MethodGet, "/", nil))
	pt, ok := r.Context().Value(pageTransformsKey{}).(*pageTransforms)
	require.True(t, ok)
	require.Empty(t, pt.fns)

	// Seeding twice keeps the list already attached.
	require.Same(t, r, withPageTransforms(r))

	// Derived requests share the list.
	derived := r.Clone(r.Context())
	require.Same(t, pt, derived.Context().Value(pageTransformsKey{}))
}
