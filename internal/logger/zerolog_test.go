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

func TestZerologEmitsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Info("Coordinator", "filter applied", map[string]interface{}{"kind": "noir"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Coordinator", entry["component"])
	assert.Equal(t, "filter applied", entry["message"])
	assert.Equal(t, "noir", entry["kind"])
	assert.Equal(t, "info", entry["level"])
}

func TestZerologError(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Error("ImageSaver", errors.New("disk full"), nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "disk full", entry["error"])
}

func TestZerologLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel)

	log.Debug("Exporter", "suppressed", nil)
	assert.Zero(t, buf.Len())
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("DEBUG", "")

	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, zerolog.DebugLevel, LevelFromEnv())

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, zerolog.WarnLevel, LevelFromEnv())

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zerolog.InfoLevel, LevelFromEnv())

	t.Setenv("DEBUG", "1")
	assert.Equal(t, zerolog.DebugLevel, LevelFromEnv())
}
