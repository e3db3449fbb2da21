package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./search_data", cfg.DataDir)
	assert.Equal(t, "ratio", cfg.Strategy)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
}

func TestLoadServerConfig_Environment(t *testing.T) {
	t.Setenv("PAYLOAD_DISTANCE_PORT", "9000")
	t.Setenv("PAYLOAD_DISTANCE_STRATEGY", "difference")

	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "difference", cfg.Strategy)
}

func TestLoadServerConfig_DotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("PAYLOAD_DISTANCE_LOG_LEVEL=debug\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("PAYLOAD_DISTANCE_LOG_LEVEL") })

	cfg, err := LoadServerConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadServerConfig_InvalidStrategy(t *testing.T) {
	t.Setenv("PAYLOAD_DISTANCE_STRATEGY", "product")

	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestServerConfig_Validate(t *testing.T) {
	valid := ServerConfig{Port: "8080", DataDir: "/tmp/data", Strategy: "Difference", MaxBodyBytes: 1}
	assert.NoError(t, valid.Validate())

	noPort := valid
	noPort.Port = ""
	assert.Error(t, noPort.Validate())

	noBody := valid
	noBody.MaxBodyBytes = 0
	assert.Error(t, noBody.Validate())
}
