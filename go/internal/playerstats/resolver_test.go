package playerstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/lineupdraft/go/internal/models"
)

type fakeSource struct {
	seasons map[string]map[string]models.PlayerStats
	slots   map[string][]models.Slot
}

func (f fakeSource) PlayerSeasons(name string) map[string]models.PlayerStats { return f.seasons[name] }
func (f fakeSource) RecordedSlots(name string) []models.Slot                { return f.slots[name] }

func newFake() fakeSource {
	return fakeSource{
		seasons: map[string]map[string]models.PlayerStats{
			"Veteran": {
				"2024-25": {BPM: 3, WS48: 0.12, VORP: 3, EPM: 3},
				"2023-24": {BPM: 6, WS48: 0.15, VORP: 6, EPM: 6},
				"2022-23": {BPM: 9, WS48: 0.18, VORP: 9, EPM: 9},
				"2021-22": {BPM: 90, WS48: 0.9, VORP: 90, EPM: 90},
			},
			"Rookie": {
				"2024-25": {BPM: 1.5, WS48: 0.11, VORP: 1.2, EPM: 1.6},
			},
			"Retired": {
				"2015-16": {BPM: 1, VORP: 1},
				"2017-18": {BPM: 3, VORP: 3},
				"2016-17": {BPM: 2, VORP: 2},
				"2014-15": {BPM: 100, VORP: 100},
			},
		},
		slots: map[string][]models.Slot{"Unknown Center": {models.SlotC, models.SlotPF}},
	}
}

func TestLookbackSeasons(t *testing.T) {
	assert.Equal(t, []string{"2024-25", "2023-24", "2022-23"}, LookbackSeasons("2024-25", 3))
	assert.Equal(t, []string{"2000-01", "1999-00"}, LookbackSeasons("2000-01", 2))
	assert.Equal(t, []string{"current"}, LookbackSeasons("current", 3))
}

func TestResolveAveragesInWindowSeasons(t *testing.T) {
	r := NewResolver(newFake(), 3, nil)

	got := r.Resolve("Veteran", "2024-25")
	assert.False(t, got.UsedFallback)
	assert.Equal(t, 3, got.SeasonsAveraged)
	assert.Equal(t, []string{"2024-25", "2023-24", "2022-23"}, got.SeasonsUsed)
	assert.InDelta(t, 6.0, got.Stats.BPM, 1e-9)
	assert.InDelta(t, 0.15, got.Stats.WS48, 1e-9)
}

func TestResolvePartialWindow(t *testing.T) {
	r := NewResolver(newFake(), 3, nil)

	got := r.Resolve("Veteran", "2026-27")
	assert.Equal(t, []string{"2024-25"}, got.SeasonsUsed)
	assert.Equal(t, 1, got.SeasonsAveraged)
	assert.InDelta(t, 3.0, got.Stats.BPM, 1e-9)
}

func TestResolveFallsBackToMostRecentSeasons(t *testing.T) {
	r := NewResolver(newFake(), 3, nil)

	got := r.Resolve("Retired", "2024-25")
	assert.False(t, got.UsedFallback)
	assert.Equal(t, []string{"2017-18", "2016-17", "2015-16"}, got.SeasonsUsed)
	assert.InDelta(t, 2.0, got.Stats.BPM, 1e-9)
}

func TestResolvePositionalBaseline(t *testing.T) {
	r := NewResolver(newFake(), 3, nil)

	center := r.Resolve("Unknown Center", "2024-25")
	assert.True(t, center.UsedFallback)
	assert.Equal(t, []string{models.ProjectionSeason}, center.SeasonsUsed)
	assert.Equal(t, 0, center.SeasonsAveraged)
	assert.Equal(t, DefaultBaselines()[models.SlotC], center.Stats)

	nobody := r.Resolve("Definitely Unknown Player", "2024-25")
	assert.Equal(t, DefaultBaselines()[models.SlotSF], nobody.Stats, "no recorded position uses SF")
	assert.Greater(t, nobody.Stats.BPM, 0.0)
}

func TestAverageEmpty(t *testing.T) {
	require.Equal(t, models.PlayerStats{}, Average(nil))
}

func TestNewResolverDefaults(t *testing.T) {
	r := NewResolver(newFake(), 0, nil)
	assert.Equal(t, DefaultLookbackSeasons, r.Lookback())
}
