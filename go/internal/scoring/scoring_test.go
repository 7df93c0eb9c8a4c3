package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/lineupdraft/go/internal/models"
)

type stubResolver map[string]models.StatsLookup

func (s stubResolver) Resolve(name, season string) models.StatsLookup {
	if l, ok := s[name]; ok {
		l.Season = season
		return l
	}
	return models.StatsLookup{
		Season:       season,
		Stats:        models.PlayerStats{BPM: 0.6, WS48: 0.094, VORP: 0.6, EPM: 0.5},
		UsedFallback: true,
		SeasonsUsed:  []string{models.ProjectionSeason},
	}
}

func full(stats models.PlayerStats) models.StatsLookup {
	return models.StatsLookup{Stats: stats, SeasonsUsed: []string{"2024-25", "2023-24", "2022-23"}, SeasonsAveraged: 3}
}

func newEngine(r stubResolver) *Engine {
	return NewEngine(DefaultConfig(), r, "2024-25")
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"weights do not sum to one", func(c *Config) { c.Weights.BPM = 0.5 }},
		{"negative weight", func(c *Config) { c.Weights.BPM = -0.1; c.Weights.WS48 = 0.75 }},
		{"empty range", func(c *Config) { c.Ranges.VORP = Range{Min: 1, Max: 1} }},
		{"zero lookback", func(c *Config) { c.LookbackSeasons = 0 }},
		{"boost below one", func(c *Config) { c.MaxSampleBoost = 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestScorePlayerClampsExtremes(t *testing.T) {
	e := newEngine(nil)

	high := e.ScorePlayer(models.PlayerStats{BPM: 99, WS48: 2, VORP: 20, EPM: 20})
	assert.LessOrEqual(t, high.Contribution, 100.0)
	assert.Equal(t, 100.0, high.Contribution)
	assert.Equal(t, models.PlayerStats{BPM: 100, WS48: 100, VORP: 100, EPM: 100}, high.NormalizedMetrics)

	low := e.ScorePlayer(models.PlayerStats{BPM: -99, WS48: -2, VORP: -20, EPM: -20})
	assert.GreaterOrEqual(t, low.Contribution, 0.0)
	assert.Equal(t, 0.0, low.Contribution)
}

func TestScorePlayerMidpoint(t *testing.T) {
	e := newEngine(nil)
	s := e.ScorePlayer(models.PlayerStats{BPM: 2, WS48: 0.15, VORP: 3.5, EPM: 1})
	assert.InDelta(t, 50.0, s.Contribution, 1e-9)
}

func TestNormalize(t *testing.T) {
	assert.InDelta(t, 25.0, Normalize(-3, Range{Min: -8, Max: 12}), 1e-9)
	assert.Equal(t, 50.0, Normalize(7, Range{Min: 1, Max: 1}))
	assert.Equal(t, 0.0, Normalize(-100, Range{Min: -8, Max: 12}))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 12.3, Round1(12.34))
	assert.Equal(t, 12.4, Round1(12.35000001))
}

func TestScoreLineupFivePicks(t *testing.T) {
	r := stubResolver{
		"A": full(models.PlayerStats{BPM: 5, WS48: 0.2, VORP: 4, EPM: 3}),
		"B": full(models.PlayerStats{BPM: -2, WS48: 0.05, VORP: 0, EPM: -1}),
		"C": full(models.PlayerStats{BPM: 10, WS48: 0.3, VORP: 7, EPM: 6}),
		"D": full(models.PlayerStats{BPM: 1, WS48: 0.1, VORP: 1, EPM: 0}),
	}
	picks := []models.LineupPick{
		{Slot: models.SlotPG, PlayerName: "A", TeamAbbr: "AAA"},
		{Slot: models.SlotSG, PlayerName: "B", TeamAbbr: "BBB"},
		{Slot: models.SlotSF, PlayerName: "C", TeamAbbr: "CCC"},
		{Slot: models.SlotPF, PlayerName: "D", TeamAbbr: "DDD"},
		{Slot: models.SlotC, PlayerName: "Nobody", TeamAbbr: "EEE"},
	}

	got := newEngine(r).ScoreLineup(picks)
	require.Len(t, got.PlayerScores, 5)
	assert.GreaterOrEqual(t, got.TeamScore, 0.0)
	assert.LessOrEqual(t, got.TeamScore, 100.0)
	assert.True(t, got.UsedFallbackStats)

	var sum float64
	for _, p := range got.PlayerScores {
		sum += p.Contribution
	}
	assert.InDelta(t, Round1(sum/5), got.TeamScore, 1e-9)
}

func TestScoreLineupPenaltyPick(t *testing.T) {
	r := stubResolver{"A": full(models.PlayerStats{BPM: 5, WS48: 0.2, VORP: 4, EPM: 3})}
	picks := []models.LineupPick{
		{Slot: models.SlotPG, PlayerName: "A"},
		{Slot: models.SlotSG, PlayerName: "Shot Clock Violation", IsPenalty: true},
	}

	got := newEngine(r).ScoreLineup(picks)
	penalty := got.PlayerScores[1]
	assert.Equal(t, 0.0, penalty.Contribution)
	assert.False(t, penalty.UsedFallback)
	assert.True(t, penalty.IsPenalty)
	assert.Equal(t, models.PlayerStats{}, penalty.Stats)
	assert.Equal(t, models.PlayerStats{}, penalty.NormalizedMetrics)
	assert.False(t, got.UsedFallbackStats, "penalty picks never trigger disclosure")
	assert.InDelta(t, Round1(got.PlayerScores[0].Contribution/2), got.TeamScore, 1e-9)
}

func TestScoreLineupEmpty(t *testing.T) {
	got := newEngine(nil).ScoreLineup(nil)
	assert.Equal(t, 0.0, got.TeamScore)
	assert.Empty(t, got.PlayerScores)
}

func TestAdjustForSampleSize(t *testing.T) {
	e := newEngine(nil)
	base := models.PlayerStats{BPM: 1, WS48: 0.1, VORP: 1.2, EPM: 1}

	tests := []struct {
		name     string
		lookup   models.StatsLookup
		wantVORP float64
	}{
		{"one season capped at 1.6", models.StatsLookup{Stats: base, SeasonsAveraged: 1}, 1.92},
		{"two seasons", models.StatsLookup{Stats: base, SeasonsAveraged: 2}, 1.8},
		{"full window", models.StatsLookup{Stats: base, SeasonsAveraged: 3}, 1.2},
		{"fallback baseline", models.StatsLookup{Stats: base, UsedFallback: true}, 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.AdjustForSampleSize(tt.lookup)
			assert.InDelta(t, tt.wantVORP, got.Stats.VORP, 1e-9)
			assert.Equal(t, base.BPM, got.Stats.BPM)
		})
	}
}

func TestScoreLineupAppliesSampleAdjustment(t *testing.T) {
	rookie := models.StatsLookup{
		Stats:           models.PlayerStats{BPM: 1, WS48: 0.1, VORP: 1.2, EPM: 1},
		SeasonsUsed:     []string{"2024-25"},
		SeasonsAveraged: 1,
	}
	got := newEngine(stubResolver{"Rookie": rookie}).ScoreLineup([]models.LineupPick{{Slot: models.SlotC, PlayerName: "Rookie"}})
	assert.InDelta(t, 1.92, got.PlayerScores[0].Stats.VORP, 1e-9)
	assert.Equal(t, []string{"2024-25"}, got.PlayerScores[0].SeasonsUsed)
}
