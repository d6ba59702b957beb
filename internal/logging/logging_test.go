package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", false)
	log.Debug().Msg("hidden")
	log.Info().Str("destination", "Tokyo").Msg("selected")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "selected", line["message"])
	assert.Equal(t, "Tokyo", line["destination"])
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line, "version")
	assert.Contains(t, line, "time")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", true)
	log.Debug().Msg("texture ready")
	assert.Contains(t, buf.String(), "texture ready")
	assert.NotContains(t, buf.String(), `"message"`)
}
