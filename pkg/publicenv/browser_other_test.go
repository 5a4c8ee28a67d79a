//go:build !(js && wasm)

package publicenv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitekit/pkg/publicenv"
)

func TestBrowserOutsideBrowser(t *testing.T) {
	t.Parallel()

	vars, err := publicenv.Browser()
	require.ErrorIs(t, err, publicenv.ErrUnavailable)
	require.Nil(t, vars)
}
