package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &Config{Level: level, Format: "json"}
	return NewWithWriter(cfg, "tripcost", &buf), &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestNew_JSONFields(t *testing.T) {
	log, buf := jsonLogger("debug")

	log.WithComponent("budget").Info("fetched", Fields("path", "categories/1", FieldStatus, 200))

	entry := lastEntry(t, buf)
	assert.Equal(t, "fetched", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "budget", entry[FieldComponent])
	assert.Equal(t, "tripcost", entry["service"])
	assert.Equal(t, "categories/1", entry["path"])
	assert.Equal(t, float64(200), entry[FieldStatus])
}

func TestNew_LevelFilters(t *testing.T) {
	log, buf := jsonLogger("warn")

	log.Debug("hidden")
	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Equal(t, "shown", lastEntry(t, buf)["message"])
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, buf := jsonLogger("verbose")

	log.Debug("hidden")
	assert.Empty(t, buf.String())
	log.Info("shown")
	assert.NotEmpty(t, buf.String())
}

func TestWithContext_RequestID(t *testing.T) {
	log, buf := jsonLogger("info")

	ctx := ContextWithRequestID(context.Background(), "req-1")
	log.WithContext(ctx).Info("with id")
	assert.Equal(t, "req-1", lastEntry(t, buf)[FieldRequestID])

	same := log.WithContext(context.Background())
	assert.Same(t, log, same)

	_, ok := RequestIDFromContext(ContextWithRequestID(context.Background(), ""))
	assert.False(t, ok)
}

func TestWithFieldsAndError(t *testing.T) {
	log, buf := jsonLogger("info")

	log.WithFields(Fields("a", 1)).WithError(errors.New("boom")).Error("failed")

	entry := lastEntry(t, buf)
	assert.Equal(t, float64(1), entry["a"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Level: "info", Format: "console", NoColor: true}
	log := NewWithWriter(cfg, "tripcost", &buf)

	log.Info("hello", Fields("k", "v"))

	out := buf.String()
	assert.Contains(t, out, "[INF]")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "k:")
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Error("nothing happens")
	log.WithComponent("x").Info("still nothing")
}

func TestConfig_ApplyDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.NoError(t, cfg.Validate())

	bad := Config{Level: "loud", Format: "json"}
	assert.ErrorContains(t, bad.Validate(), "logging.level")

	bad = Config{Level: "info", Format: "xml"}
	assert.ErrorContains(t, bad.Validate(), "logging.format")
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"a": 1}, Fields("a", 1, "dangling"))
	assert.Equal(t, map[string]interface{}{"b": 2}, Fields(3, "x", "b", 2))

	ef := ErrorFields("fetch", errors.New("bad"))
	assert.Equal(t, "fetch", ef[FieldOperation])
	assert.Equal(t, "bad", ef[FieldError])

	df := DurationFields("fetch", 1500*time.Millisecond)
	assert.Equal(t, int64(1500), df[FieldDuration])
}
