package errreport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitekit/pkg/errreport"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	normalizers := map[string]errreport.Normalizer{
		"server": errreport.Server(),
		"client": errreport.Client(),
	}

	for name, n := range normalizers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec := n(context.Background(), errreport.Input{
				Err:       errors.New("db: connection refused"),
				Message:   "Something broke",
				Status:    503,
				RequestID: "req-1",
				Stack:     []byte("goroutine 1 [running]"),
				Extra:     map[string]any{"user": "42"},
			})
			require.Equal(t, errreport.Record{Message: "Something broke"}, rec)

			raw, err := json.Marshal(rec)
			require.NoError(t, err)
			require.JSONEq(t, `{"message":"Something broke"}`, string(raw))
		})
	}

	t.Run("empty message stays empty", func(t *testing.T) {
		t.Parallel()
		rec := errreport.Normalize(errreport.Input{Status: 500})
		require.Empty(t, rec.Message)

		raw, err := json.Marshal(rec)
		require.NoError(t, err)
		require.JSONEq(t, `{"message":""}`, string(raw))
	})

	t.Run("zero input", func(t *testing.T) {
		t.Parallel()
		require.NotPanics(t, func() {
			_ = errreport.Server()(context.Background(), errreport.Input{})
		})
	})
}

func TestLogReporter(t *testing.T) {
	t.Parallel()

	t.Run("logs message and source only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		l := slog.New(slog.NewJSONHandler(&buf, nil))
		errreport.NewLogReporter(l).Report(context.Background(), errreport.SourceClient, errreport.Record{Message: "boom"})

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "WARN", entry["level"])
		require.Equal(t, "client", entry["source"])
		require.Equal(t, "boom", entry["message"])
	})

	t.Run("nil logger", func(t *testing.T) {
		t.Parallel()
		require.NotPanics(t, func() {
			errreport.NewLogReporter(nil).Report(context.Background(), errreport.SourceServer, errreport.Record{})
		})
	})
}
