// internal/observability/logger_test.go
package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/dverbeek84/limelight-cli/internal/config"
)

// memSink is a WriteSyncer backed by a byte slice, letting tests inspect
// exactly what the console core emitted.
type memSink struct {
	data []byte
}

func (m *memSink) Write(p []byte) (int, error) {
	m.data = append(m.data, p...)
	return len(p), nil
}

func (m *memSink) Sync() error { return nil }

func TestInitializeConsoleFormat(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	sink := &memSink{}
	Initialize(config.LoggerConfig{
		Level:       "debug",
		Format:      "console",
		ServiceName: "limelight-test",
	}, sink)

	GetLogger().Info("hello from the console core", zap.String("slug", "barbara-palvin"))

	out := string(sink.data)
	assert.Contains(t, out, "hello from the console core")
	assert.Contains(t, out, "limelight-test.")
	assert.Contains(t, out, "barbara-palvin")
}

func TestInitializeJSONFormat(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	sink := &memSink{}
	Initialize(config.LoggerConfig{
		Level:       "info",
		Format:      "json",
		ServiceName: "limelight-test",
	}, sink)

	GetLogger().Info("structured entry", zap.Int("collected", 3))

	line := strings.TrimSpace(string(sink.data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "structured entry", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.EqualValues(t, 3, entry["collected"])
}

func TestInitializeRespectsLevel(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	sink := &memSink{}
	Initialize(config.LoggerConfig{Level: "warn", Format: "json"}, sink)

	GetLogger().Info("should be dropped")
	GetLogger().Warn("should appear")

	out := string(sink.data)
	assert.NotContains(t, out, "should be dropped")
	assert.Contains(t, out, "should appear")
}

func TestInitializeIsIdempotent(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	first := &memSink{}
	second := &memSink{}
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, first)
	Initialize(config.LoggerConfig{Level: "debug", Format: "console"}, second)

	GetLogger().Info("only the first sink wins")
	assert.Contains(t, string(first.data), "only the first sink wins")
	assert.Empty(t, second.data)
}

func TestFileCoreWritesJSON(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logFile := filepath.Join(t.TempDir(), "limelight.log")
	Initialize(config.LoggerConfig{
		Level:   "info",
		Format:  "console",
		LogFile: logFile,
	}, zapcore.AddSync(zaptest.NewTestingWriter(t)))

	GetLogger().Info("file entry")
	require.NoError(t, GetLogger().Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "file entry", entry["msg"])
}

func TestGetLoggerFallback(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	// Without initialization we still get a usable logger, never nil.
	logger := GetLogger()
	require.NotNil(t, logger)
}
