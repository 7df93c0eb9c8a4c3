package refdata

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/lineupdraft/go/internal/models"
)

func testDataset() Dataset {
	return Dataset{
		Teams: []models.Team{{Abbr: "AAA", Name: "Alpha"}, {Abbr: "BBB"}},
		Rosters: map[string][]string{
			"AAA": {"Player A", "Player B", "Player A"},
			"BBB": {"Player C"},
		},
		Positions: map[string][]models.Slot{
			"Player A": {"PG", "XX", "PG", "SG"},
			"Player B": {"ZZ"},
		},
		Stats: map[string]models.PlayerStats{
			"Player A|2024-25": {BPM: 1},
			"Player A|2023-24": {BPM: 2},
			"broken-key":       {BPM: 9},
		},
	}
}

func TestNewCatalogIndexesDataset(t *testing.T) {
	c, err := NewCatalog(testDataset())
	require.NoError(t, err)

	team, ok := c.Team("BBB")
	require.True(t, ok)
	assert.Equal(t, "BBB", team.Name, "missing names default to the abbreviation")

	roster := c.Roster("AAA")
	require.Len(t, roster, 2)
	assert.Equal(t, "Player A", roster[0].Name)
	assert.Equal(t, "Player B", roster[1].Name)
	assert.True(t, c.IsPlayerOnTeam("AAA", "Player B"))
	assert.False(t, c.IsPlayerOnTeam("BBB", "Player A"))
	assert.False(t, c.IsPlayerOnTeam("ZZZ", "Player A"))
	assert.Empty(t, c.Roster("ZZZ"))

	assert.Equal(t, []models.Slot{models.SlotPG, models.SlotSG}, c.EligibleSlots("Player A"))
	assert.Equal(t, models.LineupSlots, c.EligibleSlots("Player B"), "no valid positions means every slot")
	assert.Empty(t, c.RecordedSlots("Player B"))

	assert.Len(t, c.PlayerSeasons("Player A"), 2)
	assert.Empty(t, c.PlayerSeasons("Nobody"))
}

func TestNewCatalogRejectsDuplicateTeams(t *testing.T) {
	_, err := NewCatalog(Dataset{Teams: []models.Team{{Abbr: "AAA"}, {Abbr: "AAA"}}})
	assert.ErrorContains(t, err, "duplicate team AAA")
}

func TestRosterCarriesEligibility(t *testing.T) {
	c, err := NewCatalog(testDataset())
	require.NoError(t, err)

	roster := c.Roster("AAA")
	require.Len(t, roster, 2)
	assert.Equal(t, "Player A", roster[0].Name)
	assert.Equal(t, []models.Slot{models.SlotPG, models.SlotSG}, roster[0].EligibleSlots)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"teams.json":            {Data: []byte(`[{"abbr":"AAA","name":"Alpha"}]`)},
		"rosters.json":          {Data: []byte(`{"AAA":["Player A"]}`)},
		"player_positions.json": {Data: []byte(`{"Player A":["C"]}`)},
		"stats.json":            {Data: []byte(`{"Player A|2024-25":{"bpm":1,"ws48":0.1,"vorp":1,"epm":1}}`)},
	}

	c, err := LoadFS(fsys)
	require.NoError(t, err)
	assert.Len(t, c.Teams(), 1)
	assert.Equal(t, 0.1, c.PlayerSeasons("Player A")["2024-25"].WS48)
}

func TestLoadFSMissingFile(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{})
	assert.ErrorContains(t, err, "teams.json")
}

func TestLoadEmbedded(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(c.Teams()), 5)
	for _, team := range c.Teams() {
		assert.NotEmpty(t, c.Roster(team.Abbr), team.Abbr)
	}
}
