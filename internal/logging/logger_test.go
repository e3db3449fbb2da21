package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		format string
		level  string
	}{
		{"JSON Info", "json", "info"},
		{"JSON Debug", "json", "debug"},
		{"JSON Error", "json", "error"},
		{"Text Info", "text", "info"},
		{"Default Format", "", "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewLogger(Config{Format: tt.format, Level: tt.level, Output: &buf})
			require.NoError(t, err)
			logger.Error().Msg("heartbeat")
			assert.Contains(t, buf.String(), "heartbeat")
		})
	}
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := NewLogger(Config{Format: "json", Level: "invalid"})
	assert.Error(t, err)

	_, err = NewLogger(Config{Format: "xml", Level: "info"})
	assert.Error(t, err)
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Config{Format: "json", Level: "info", Output: &buf})
	require.NoError(t, err)

	logger.Info().
		Str("index", "products").
		Int("hits", 42).
		Msg("search completed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "search completed", entry["message"])
	assert.Equal(t, "products", entry["index"])
	assert.Equal(t, float64(42), entry["hits"])
	assert.Equal(t, "info", entry["level"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Config{Format: "json", Level: "warn", Output: &buf})
	require.NoError(t, err)

	logger.Info().Msg("should be dropped")
	logger.Warn().Msg("should be kept")

	assert.NotContains(t, buf.String(), "should be dropped")
	assert.Contains(t, buf.String(), "should be kept")
}
