package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, setup(&buf, tt.level, false))
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), tt.level)
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, setup(&bytes.Buffer{}, "loud", false))
}

func TestSetupWritesJSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	require.NoError(t, setup(&buf, "info", false))
	log.Info().Str("session_id", "abc").Msg("draft session created")
	log.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "draft session created", entry["message"])
	assert.Equal(t, "abc", entry["session_id"])
	assert.Equal(t, "lineupdraft", entry["service"])
}
