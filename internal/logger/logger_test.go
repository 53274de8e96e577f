package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_ProductionWritesJSON(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	Init(Options{Output: &buf})

	slog.Debug("hidden")
	slog.Info("sleep started", "user_id", "u1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sleep started", entry["msg"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Same(t, Log, slog.Default())
}

func TestInit_DevWritesText(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	Init(Options{Dev: true, Output: &buf})

	slog.Debug("note imported", "note_id", "n1")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "note_id=n1")
}
