package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNewLogger_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)

	logger.Log(context.Background(), LevelTrace, "very detailed")
	assert.Contains(t, buf.String(), "TRACE")
}

func TestTraceLogger_NilSafe(t *testing.T) {
	var tl *TraceLogger
	tl.Log(MatchEvent{Member: "(m1=10.00)"})
	tl.Close()
}

func TestNewTraceLogger_InfoLevelDisabled(t *testing.T) {
	tl := NewTraceLogger(t.TempDir(), "info")
	assert.Nil(t, tl)
}

func TestTraceLogger_WritesJSONL(t *testing.T) {
	dir := t.TempDir()
	tl := NewTraceLogger(dir, "debug")
	require.NotNil(t, tl)

	tl.Log(MatchEvent{
		Member: "(m1=10.00, ecc=0.45)",
		Neighbors: []NeighborTrace{
			{Point: "(m1=10.00, ecc=0.50)", Run: "run_001", Weight: 0.75},
			{Point: "(m1=12.00, ecc=0.50)", Run: "run_002", Weight: 0.25},
		},
	})
	tl.Close()

	data, err := os.ReadFile(filepath.Join(dir, "matches.jsonl"))
	require.NoError(t, err)

	var entry MatchEvent
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "(m1=10.00, ecc=0.45)", entry.Member)
	assert.NotEmpty(t, entry.Time)

	// Every neighbor lands in the trace with its run and weight.
	require.Len(t, entry.Neighbors, 2)
	assert.Equal(t, "run_001", entry.Neighbors[0].Run)
	assert.Equal(t, 0.75, entry.Neighbors[0].Weight)
	assert.Equal(t, "run_002", entry.Neighbors[1].Run)
	assert.Equal(t, 0.25, entry.Neighbors[1].Weight)
}
