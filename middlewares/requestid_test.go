package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitekit/internal"
	"github.com/dmitrymomot/sitekit/middlewares"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid when not present", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		var captured string
		handler := middlewares.RequestID()(func(c internal.Context) error {
			captured = middlewares.GetRequestID(c)
			return nil
		})

		require.NoError(t, handler(ctx))
		require.Equal(t, captured, rec.Header().Get("X-Request-ID"))
		_, err := uuid.Parse(captured)
		require.NoError(t, err)
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-1")
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handler := middlewares.RequestID()(func(internal.Context) error { return nil })
		require.NoError(t, handler(ctx))
		require.Equal(t, "corr-1", rec.Header().Get("X-Request-ID"))
		require.Equal(t, "corr-1", middlewares.GetRequestID(ctx))
	})

	t.Run("rejects unsafe inbound ids", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "evil\" injected=\"1")
		req.Header.Set("X-Correlation-ID", strings.Repeat("a", middlewares.MaxRequestIDLength+1))
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handler := middlewares.RequestID()(func(internal.Context) error { return nil })
		require.NoError(t, handler(ctx))

		_, err := uuid.Parse(middlewares.GetRequestID(ctx))
		require.NoError(t, err)
	})

	t.Run("custom generator and headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "ignored")
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handler := middlewares.RequestID(
			middlewares.WithRequestIDHeaders("X-Trace"),
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
		)(func(internal.Context) error { return nil })

		require.NoError(t, handler(ctx))
		require.Equal(t, "fixed", rec.Header().Get("X-Trace"))
	})

	t.Run("GetRequestID without middleware", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Empty(t, middlewares.GetRequestID(ctx))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), internal.RequestIDKey{}, "req-1")
	attr, ok := middlewares.RequestIDExtractor()(ctx)
	require.True(t, ok)
	require.Equal(t, "request_id", attr.Key)
	require.Equal(t, "req-1", attr.Value.String())

	_, ok = middlewares.RequestIDExtractor()(context.Background())
	require.False(t, ok)
}

func TestValidRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want bool
	}{
		{"", false},
		{"corr-1", true},
		{"0f8fad5b-d9cb-469f-a165-70867728950e", true},
		{"trace:span.1_2", true},
		{"has space", false},
		{"line\nbreak", false},
		{"ünïcode", false},
		{strings.Repeat("x", middlewares.MaxRequestIDLength), true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, middlewares.ValidRequestID(tt.id), tt.id)
	}
}
