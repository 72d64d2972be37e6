package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// TestLoadConfig verifies that every section of the configuration is parsed.
func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
logging:
  encoding: console
  level: debug
server:
  http_addr: 127.0.0.1:8080
  max_connections: 16
  stop_timeout: 2s
workers:
  count: 2
  scheduler:
    delay_loop: 0.5
shutdown_timeout: 15s
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	require.NotNil(t, config.Logger)
	assert.Equal(t, "console", config.Logger.Encoding)
	assert.Equal(t, zapcore.DebugLevel, config.Logger.Level)

	require.NotNil(t, config.Server)
	assert.Equal(t, "127.0.0.1:8080", config.Server.HTTPAddr)
	assert.Equal(t, 16, config.Server.MaxConnections)
	assert.Equal(t, 2*time.Second, config.Server.GetStopTimeout())

	assert.Equal(t, 2, config.Workers.GetCount())
	assert.Equal(t, 500*time.Millisecond, config.Workers.GetScheduler().GetDelayLoop())
	assert.Equal(t, 15*time.Second, config.GetShutdownTimeout())
}

// TestLoadConfig_Defaults verifies the defaults of an empty configuration.
func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	require.NotNil(t, config.Server)
	assert.NotEmpty(t, config.Server.HTTPAddr)
	assert.Equal(t, defaultWorkers, config.Workers.GetCount())
	assert.Equal(t, defaultShutdownTimeout, config.GetShutdownTimeout())
}

// TestLoadConfig_UnknownField verifies that typos in the configuration are
// reported instead of silently ignored.
func TestLoadConfig_UnknownField(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "shutdown_timeuot: 1s\n"))
	assert.Error(t, err)
}

// TestLoadConfig_Missing verifies that a missing file is reported.
func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
