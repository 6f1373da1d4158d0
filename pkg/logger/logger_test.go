package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Initialize(Config{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		globalLogger = nil
	})
	return &buf
}

func TestLogger_InfoWritesFields(t *testing.T) {
	buf := captureJSON(t, "debug")

	Info("Like toggled", Fields{"doctor_id": 7, "liked": true})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "Like toggled", line["message"])
	assert.Equal(t, float64(7), line["doctor_id"])
	assert.Equal(t, true, line["liked"])
	assert.Contains(t, line["caller"], "logger_test.go")
}

func TestLogger_ErrorIncludesErr(t *testing.T) {
	buf := captureJSON(t, "info")

	Error("Failed to approve review", errors.New("boom"))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "boom", line["error"])
}

func TestLogger_LevelFiltersDebug(t *testing.T) {
	buf := captureJSON(t, "warn")

	Debug("hidden")
	Info("hidden")

	assert.Zero(t, buf.Len())
}

func TestLogger_WithContext(t *testing.T) {
	buf := captureJSON(t, "info")

	WithContext(Fields{"request_id": "abc"}).Warn("slow request")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc", line["request_id"])
	assert.Equal(t, "warn", line["level"])
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLogLevel("DEBUG"))
	assert.Equal(t, zerolog.ErrorLevel, parseLogLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("nonsense"))
}
