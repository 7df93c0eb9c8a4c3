package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/lineupdraft/go/internal/models"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.False(t, cfg.NATS.Enabled())
	assert.Equal(t, "LINEUP_EVENTS", cfg.NATS.Stream)
	assert.Equal(t, 24*time.Second, cfg.Tuning.ShotClock())
	assert.Equal(t, "2024-25", cfg.Tuning.TargetSeason)
	assert.Equal(t, 100, cfg.Tuning.LeaderboardLimit)
	assert.Equal(t, 6, cfg.Tuning.ShareCode.Length)
}

func TestLoadShotClockFallback(t *testing.T) {
	for _, v := range []string{"0", "-5"} {
		t.Setenv("SHOT_CLOCK_SECONDS", v)
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 24, cfg.Tuning.ShotClockSeconds, v)
	}

	t.Setenv("SHOT_CLOCK_SECONDS", "30")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Tuning.ShotClock())
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := Load()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestLoadRejectsBadTargetSeason(t *testing.T) {
	t.Setenv("TARGET_SEASON", "2025")
	_, err := Load()
	assert.ErrorContains(t, err, "target_season")
}

func TestLoadTuningFile(t *testing.T) {
	path := writeTuning(t, `
shot_clock_seconds: 15
leaderboard_limit: 25
scoring:
  weights:
    bpm: 0.40
    ws48: 0.25
  ranges:
    bpm: {min: -10, max: 15}
baselines:
  C: {bpm: 1.5, ws48: 0.12, vorp: 1.1, epm: 0.9}
share_code:
  length: 8
`)
	t.Setenv("TUNING_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	tn := cfg.Tuning
	assert.Equal(t, 15*time.Second, tn.ShotClock())
	assert.Equal(t, 25, tn.LeaderboardLimit)
	assert.Equal(t, 0.40, tn.Scoring.Weights.BPM)
	assert.Equal(t, 0.15, tn.Scoring.Weights.VORP)
	assert.Equal(t, -10.0, tn.Scoring.Ranges.BPM.Min)
	assert.Equal(t, 8.0, tn.Scoring.Ranges.VORP.Max)
	assert.Equal(t, 1.5, tn.Baselines[models.SlotC].BPM)
	assert.Equal(t, 0.8, tn.Baselines[models.SlotPG].BPM)
	assert.Equal(t, 8, tn.ShareCode.Length)
	assert.Equal(t, 20, tn.ShareCode.MaxAttempts)
}

func TestLoadTuningFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"weights off", "scoring:\n  weights: {bpm: 0.9}\n", "sum to 1"},
		{"empty range", "scoring:\n  ranges:\n    epm: {min: 3, max: 3}\n", "epm"},
		{"short code", "share_code:\n  length: 3\n", "share_code.length"},
		{"small alphabet", "share_code:\n  alphabet: ABC\n", "alphabet"},
		{"bad lookback", "scoring:\n  lookback_seasons: 0\n", "lookback_seasons"},
		{"not yaml", "scoring: [", "parse tuning file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TUNING_FILE", writeTuning(t, tt.body))
			_, err := Load()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	t.Setenv("TUNING_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.ErrorContains(t, err, "read tuning file")
}

func TestDefaultTuningIsValid(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())
}
