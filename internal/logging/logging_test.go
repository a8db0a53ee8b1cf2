package logging

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatConsole, ParseFormat("pretty"))
}

func TestEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	assert.Equal(t, "debug", Env(EnvLevel, "info"))

	t.Setenv(EnvLevel, "")
	assert.Equal(t, "info", Env(EnvLevel, "info"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer

	l := New("info", FormatJSON, zapcore.AddSync(&buf))
	l.Named(ComponentSession).Debug("hidden")
	l.Named(ComponentSession).Info("resolved", zap.String("record", "User"))
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "session", entry["component"])
	assert.Equal(t, "resolved", entry["msg"])
	assert.Equal(t, "User", entry["record"])
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer

	l := New("debug", FormatConsole, zapcore.AddSync(&buf))
	l.Debug("checking")
	require.NoError(t, l.Sync())

	assert.Contains(t, buf.String(), " | ")
	assert.Contains(t, buf.String(), "checking")
}

func TestForUsesGlobal(t *testing.T) {
	var buf bytes.Buffer

	restore := zap.ReplaceGlobals(New("info", FormatJSON, zapcore.AddSync(&buf)))
	defer restore()

	For(ComponentCLI).Infow("done", "records", 2)
	require.NoError(t, Sync())

	assert.Contains(t, buf.String(), `"component":"cli"`)
	assert.Contains(t, buf.String(), `"records":2`)
}
