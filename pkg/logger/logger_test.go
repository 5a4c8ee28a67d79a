package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestStdoutHandler(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		slog.New(newStdoutHandler(&buf, Config{})).Info("hello", slog.String("k", "v"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "hello", entry["msg"])
		require.Equal(t, "v", entry["k"])
	})

	t.Run("text uses tint", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		slog.New(newStdoutHandler(&buf, Config{Format: FormatText})).Info("hello")
		require.Contains(t, buf.String(), "hello")
		require.NotContains(t, buf.String(), `"msg"`)
	})

	t.Run("level filter", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		l := slog.New(newStdoutHandler(&buf, Config{Level: "warn"}))
		l.Info("dropped")
		require.Zero(t, buf.Len())
		l.Warn("kept")
		require.Contains(t, buf.String(), "kept")
	})
}

func TestLogHandlerDecorator(t *testing.T) {
	t.Parallel()

	extract := func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(ctxKey{}).(string); ok {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}

	t.Run("adds extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		l := slog.New(NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), extract, nil))
		l.InfoContext(context.WithValue(context.Background(), ctxKey{}, "req-1"), "hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "req-1", entry["request_id"])
	})

	t.Run("skips missing values", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		slog.New(NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), extract)).Info("hello")
		require.NotContains(t, buf.String(), "request_id")
	})

	t.Run("no extractors returns the handler", func(t *testing.T) {
		t.Parallel()

		h := slog.NewJSONHandler(&bytes.Buffer{}, nil)
		require.Same(t, h, NewLogHandlerDecorator(h).(*slog.JSONHandler))
	})

	t.Run("survives WithAttrs and WithGroup", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		l := slog.New(NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), extract)).With("svc", "web")
		l.InfoContext(context.WithValue(context.Background(), ctxKey{}, "req-2"), "hello")
		require.Contains(t, buf.String(), `"svc":"web"`)
		require.Contains(t, buf.String(), `"request_id":"req-2"`)
	})
}

func TestMultiHandler(t *testing.T) {
	t.Parallel()

	var info, errs bytes.Buffer
	h := newMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	l := slog.New(h)

	l.Info("info only")
	require.Contains(t, info.String(), "info only")
	require.Zero(t, errs.Len())

	l.Error("both")
	require.Contains(t, info.String(), "both")
	require.Contains(t, errs.String(), "both")

	require.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewWithSentryWithoutDSN(t *testing.T) {
	t.Parallel()

	l := NewWithSentry(SentryConfig{}, Config{Level: "error"})
	require.NotNil(t, l)
	require.False(t, l.Enabled(context.Background(), slog.LevelInfo))
	require.NoError(t, FlushSentry(context.Background()))
}
