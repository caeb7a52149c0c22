package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want charmlog.Level
	}{
		{"debug", charmlog.DebugLevel},
		{"INFO", charmlog.InfoLevel},
		{"warn", charmlog.WarnLevel},
		{"warning", charmlog.WarnLevel},
		{"error", charmlog.ErrorLevel},
		{"", charmlog.InfoLevel},
		{"verbose", charmlog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Output: &buf})

	l.Info("hidden")
	l.Warn("chunked document", "chunks", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "chunked document")
	assert.Contains(t, out, "chunks=3")
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", JSON: true, Output: &buf})

	l.Debug("loaded file", "path", "a.txt")

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "loaded file", entry["msg"])
	assert.Equal(t, "a.txt", entry["path"])
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf})

	ctx := ContextWithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback)
	fallback.Error("dropped")
	assert.Empty(t, buf.String())
}
