package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Write(t *testing.T) {
	var buf bytes.Buffer

	traceID := func(context.Context) string { return "abc123" }
	log := logger.New(&buf, logger.LevelInfo, "KANGAROUTE", traceID)

	log.Info(context.Background(), "startup", "port", 5000)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "startup", entry["msg"])
	assert.Equal(t, "KANGAROUTE", entry["service"])
	assert.Equal(t, "abc123", entry["trace_id"])
	assert.EqualValues(t, 5000, entry["port"])
	assert.Contains(t, entry["file"], "logger_test.go")
}

func Test_MinLevel(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(&buf, logger.LevelWarn, "KANGAROUTE", nil)
	log.Info(context.Background(), "ignored")
	log.Debug(context.Background(), "ignored")

	assert.Zero(t, buf.Len())
}

func Test_Events(t *testing.T) {
	var buf bytes.Buffer
	var got logger.Record

	events := logger.Events{
		Error: func(ctx context.Context, r logger.Record) {
			got = r
		},
	}

	log := logger.NewWithEvents(&buf, logger.LevelInfo, "KANGAROUTE", nil, events)
	log.Error(context.Background(), "db down", "host", "localhost")

	assert.Equal(t, "db down", got.Message)
	assert.Equal(t, logger.LevelError, got.Level)
	assert.Equal(t, "localhost", got.Attribute["host"])
}

func Test_Slog(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(&buf, logger.LevelInfo, "KANGAROUTE", nil)
	log.Slog().Info("applying migration", "version", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "applying migration", entry["msg"])
	assert.Equal(t, "KANGAROUTE", entry["service"])
	assert.EqualValues(t, 3, entry["version"])
}
