// File: internal/observability/logger_test.go
package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/streamwatch-cli/internal/config"
)

// syncBuffer adapts bytes.Buffer to zapcore.WriteSyncer.
type syncBuffer struct {
	bytes.Buffer
}

func (b *syncBuffer) Sync() error { return nil }

func TestInitializeConsoleLogger(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf syncBuffer
	cfg := config.LoggerConfig{
		Level:       "debug",
		Format:      "console",
		ServiceName: "streamwatch-test",
	}
	Initialize(cfg, zapcore.Lock(&buf))

	GetLogger().Info("hello from the console core")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "hello from the console core")
	assert.Contains(t, out, "streamwatch-test.")
}

func TestInitializeJSONLogger(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf syncBuffer
	cfg := config.LoggerConfig{
		Level:       "info",
		Format:      "json",
		ServiceName: "streamwatch-test",
	}
	Initialize(cfg, zapcore.Lock(&buf))

	GetLogger().Warn("structured output")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "structured output", entry["msg"])
}

func TestInitializeWithLogFile(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logFile := filepath.Join(t.TempDir(), "streamwatch.log")
	var buf syncBuffer
	cfg := config.LoggerConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "streamwatch-test",
		LogFile:     logFile,
		MaxSize:     1,
	}
	Initialize(cfg, zapcore.Lock(&buf))

	GetLogger().Info("written to both cores")
	Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	// File core is always JSON regardless of the console format.
	assert.Contains(t, string(data), `"msg":"written to both cores"`)
}

func TestInitializeRunsOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var first, second syncBuffer
	Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "a"}, zapcore.Lock(&first))
	Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "b"}, zapcore.Lock(&second))

	GetLogger().Info("only the first writer sees this")

	assert.NotEmpty(t, first.String())
	assert.Empty(t, second.String())
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf syncBuffer
	Initialize(config.LoggerConfig{Level: "chatty", Format: "json", ServiceName: "t"}, zapcore.Lock(&buf))

	GetLogger().Debug("suppressed at info level")
	GetLogger().Info("visible at info level")

	out := buf.String()
	assert.NotContains(t, out, "suppressed at info level")
	assert.Contains(t, out, "visible at info level")
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	// Must not panic and must hand back a usable logger.
	logger := GetLogger()
	require.NotNil(t, logger)
	logger.Debug("fallback logger is usable")
}
