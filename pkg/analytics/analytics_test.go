package analytics_test

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitekit/pkg/analytics"
)

type fakeSDK struct {
	mu    sync.Mutex
	calls int
	key   string
	opts  analytics.Options
	err   error
	panic bool
}

func (f *fakeSDK) Init(key string, opts analytics.Options) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.key = key
	f.opts = opts
	if f.panic {
		panic("posthog is not a function")
	}
	return f.err
}

func (f *fakeSDK) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func browser() bool    { return true }
func notBrowser() bool { return false }

func keyLookup(v string) analytics.LookupFunc {
	return func(key string) (string, bool) {
		if key != analytics.KeyName {
			return "", false
		}
		return v, true
	}
}

func waitDone(t *testing.T, h *analytics.Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("analytics init did not finish")
	}
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := analytics.DefaultOptions()
	require.Equal(t, "/relay-ujOT", opts.APIHost)
	require.Equal(t, "https://us.posthog.com", opts.UIHost)
	require.Equal(t, analytics.PersonProfilesAlways, opts.PersonProfiles)
	require.Equal(t, analytics.PersistenceLocalStorage, opts.Persistence)
	require.True(t, opts.Persistence.Durable())
	require.False(t, analytics.PersistenceMemory.Durable())
}

func TestHandle(t *testing.T) {
	t.Parallel()

	t.Run("non-browser runtime is a no-op", func(t *testing.T) {
		t.Parallel()

		sdk := &fakeSDK{}
		h := analytics.NewHandle(sdk, analytics.WithRuntime(notBrowser), analytics.WithLookup(keyLookup("phc_test")))
		h.Init()
		h.Init()

		select {
		case <-h.Done():
			t.Fatal("done must stay open outside the browser")
		case <-time.After(20 * time.Millisecond):
		}
		require.Equal(t, analytics.StateUninitialized, h.State())
		require.Zero(t, sdk.Calls())
	})

	t.Run("browser with key enables sdk", func(t *testing.T) {
		t.Parallel()

		sdk := &fakeSDK{}
		h := analytics.NewHandle(sdk, analytics.WithRuntime(browser), analytics.WithLookup(keyLookup("phc_test")))
		h.Init()
		waitDone(t, h)

		require.Equal(t, analytics.StateEnabled, h.State())
		require.Equal(t, 1, sdk.Calls())
		require.Equal(t, "phc_test", sdk.key)
		require.Equal(t, analytics.RelayPath, sdk.opts.APIHost)
		require.Equal(t, "/relay-ujOT", sdk.opts.APIHost)
		require.Equal(t, analytics.PersistenceLocalStorage, sdk.opts.Persistence)
		require.True(t, sdk.opts.Persistence.Durable())
	})

	t.Run("init runs once", func(t *testing.T) {
		t.Parallel()

		sdk := &fakeSDK{}
		h := analytics.NewHandle(sdk, analytics.WithRuntime(browser), analytics.WithLookup(keyLookup("phc_test")))

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.Init()
			}()
		}
		wg.Wait()
		waitDone(t, h)
		h.Init()

		require.Equal(t, 1, sdk.Calls())
	})

	absent := map[string]analytics.LookupFunc{
		"no lookup":   nil,
		"missing key": func(string) (string, bool) { return "", false },
		"empty key":   keyLookup(""),
		"lookup panics": func(string) (string, bool) {
			panic("environment module not found")
		},
	}
	for name, lookup := range absent {
		t.Run("browser with "+name+" disables", func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			sdk := &fakeSDK{}
			h := analytics.NewHandle(sdk,
				analytics.WithRuntime(browser),
				analytics.WithLookup(lookup),
				analytics.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
			)
			require.NotPanics(t, h.Init)
			waitDone(t, h)

			require.Equal(t, analytics.StateDisabled, h.State())
			require.Zero(t, sdk.Calls())
			require.Contains(t, buf.String(), "level=WARN")
			require.Contains(t, buf.String(), analytics.KeyName)
			require.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
		})
	}

	t.Run("sdk failure disables", func(t *testing.T) {
		t.Parallel()

		for _, sdk := range []*fakeSDK{{err: errors.New("blocked")}, {panic: true}} {
			h := analytics.NewHandle(sdk,
				analytics.WithRuntime(browser),
				analytics.WithLookup(keyLookup("phc_test")),
				analytics.WithLogger(slog.New(slog.DiscardHandler)),
			)
			require.NotPanics(t, h.Init)
			waitDone(t, h)
			require.Equal(t, analytics.StateDisabled, h.State())
		}
	})

	t.Run("custom options", func(t *testing.T) {
		t.Parallel()

		opts := analytics.DefaultOptions()
		opts.PersonProfiles = analytics.PersonProfilesIdentifiedOnly

		sdk := &fakeSDK{}
		h := analytics.NewHandle(sdk,
			analytics.WithRuntime(browser),
			analytics.WithLookup(keyLookup("phc_test")),
			analytics.WithOptions(opts),
		)
		require.Equal(t, opts, h.Options())
		h.Init()
		waitDone(t, h)
		require.Equal(t, analytics.PersonProfilesIdentifiedOnly, sdk.opts.PersonProfiles)
	})
}

func TestDefault(t *testing.T) {
	t.Parallel()

	require.Same(t, analytics.Default(), analytics.Default())
	require.False(t, analytics.IsBrowser())

	require.NotPanics(t, analytics.InitPosthog)
	require.Equal(t, analytics.StateUninitialized, analytics.Default().State())
}

func TestStateString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "uninitialized", analytics.StateUninitialized.String())
	require.Equal(t, "disabled", analytics.StateDisabled.String())
	require.Equal(t, "enabled", analytics.StateEnabled.String())
}
