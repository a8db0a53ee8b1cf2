// Package logging builds the zap loggers used by the generator and its CLI.
package logging

import (
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoder.
type Format string

const (
	// FormatConsole is human-readable output.
	FormatConsole Format = "console"
	// FormatJSON is structured JSON output.
	FormatJSON Format = "json"
)

// Environment variables read when the matching flag is not set.
const (
	EnvLevel  = "SUBSTRUCT_LOG_LEVEL"
	EnvFormat = "SUBSTRUCT_LOG_FORMAT"
)

// Component names handed to For.
const (
	ComponentCLI     = "cli"
	ComponentSession = "session"
)

var mu sync.Mutex

// ParseLevel converts a level name to a zap level. Unknown names are info.
func ParseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel
	}

	return l
}

// ParseFormat converts a format name. Unknown names are console.
func ParseFormat(format string) Format {
	switch Format(strings.ToLower(format)) {
	case FormatJSON:
		return FormatJSON
	default:
		return FormatConsole
	}
}

// Env returns the value of key, or def when it is unset.
func Env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05 MST"))
}

// New creates a logger writing to w at the given level and format.
func New(level string, format Format, w zapcore.WriteSyncer) *zap.Logger {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder

	if format == FormatJSON {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeTime = timeEncoder
		cfg.ConsoleSeparator = " | "
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, w, zap.NewAtomicLevelAt(ParseLevel(level)))

	return zap.New(core, zap.AddCaller())
}

// Init installs a stderr logger as the zap global and returns it.
func Init(level string, format Format) *zap.Logger {
	mu.Lock()
	defer mu.Unlock()

	l := New(level, format, zapcore.Lock(os.Stderr))
	zap.ReplaceGlobals(l)

	return l
}

// For returns a named logger for a component, derived from the zap global.
func For(component string) *zap.SugaredLogger {
	return zap.S().Named(component)
}

// Sync flushes the global logger.
func Sync() error {
	return zap.L().Sync()
}
