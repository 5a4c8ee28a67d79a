package analytics_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitekit/pkg/analytics"
)

type seen struct {
	path   string
	host   string
	cookie string
	body   string
}

func upstream(t *testing.T, name string, got chan<- seen) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got <- seen{path: r.URL.Path, host: r.Host, cookie: r.Header.Get("Cookie"), body: string(b)}
		w.Header().Set("X-Upstream", name)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRelay(t *testing.T) {
	t.Parallel()

	apiSeen := make(chan seen, 1)
	assetsSeen := make(chan seen, 1)
	api := upstream(t, "api", apiSeen)
	assets := upstream(t, "assets", assetsSeen)

	relay, err := analytics.Relay(analytics.WithUpstream(api.URL), analytics.WithAssetsUpstream(assets.URL))
	require.NoError(t, err)

	t.Run("api traffic", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, analytics.RelayPath+"/e/?ip=1", strings.NewReader(`{"event":"$pageview"}`))
		req.AddCookie(&http.Cookie{Name: "session", Value: "secret"})
		w := httptest.NewRecorder()
		relay.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "api", w.Header().Get("X-Upstream"))

		got := <-apiSeen
		require.Equal(t, "/e/", got.path)
		require.Equal(t, strings.TrimPrefix(api.URL, "http://"), got.host)
		require.Empty(t, got.cookie)
		require.JSONEq(t, `{"event":"$pageview"}`, got.body)
	})

	t.Run("static assets", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, analytics.RelayPath+"/static/array.js", nil)
		w := httptest.NewRecorder()
		relay.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "assets", w.Header().Get("X-Upstream"))
		require.Equal(t, "/static/array.js", (<-assetsSeen).path)
	})
}

func TestRelayUpstreamDown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	relay, err := analytics.Relay(analytics.WithUpstream(addr))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	relay.ServeHTTP(w, httptest.NewRequest(http.MethodPost, analytics.RelayPath+"/e/", nil))
	require.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRelayInvalidUpstream(t *testing.T) {
	t.Parallel()

	for _, u := range []string{"relay-ujOT", "://bad", "/only/path"} {
		_, err := analytics.Relay(analytics.WithUpstream(u))
		require.ErrorIs(t, err, analytics.ErrInvalidUpstream, u)
	}
}

func TestUpstreamCheck(t *testing.T) {
	t.Parallel()

	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(ok.Close)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(failing.Close)

	require.NoError(t, analytics.UpstreamCheck(ok.Client(), ok.URL)(context.Background()))
	require.Error(t, analytics.UpstreamCheck(nil, failing.URL)(context.Background()))

	u, err := url.Parse(failing.URL)
	require.NoError(t, err)
	u.Host = "127.0.0.1:1"
	require.Error(t, analytics.UpstreamCheck(nil, u.String())(context.Background()))
}
