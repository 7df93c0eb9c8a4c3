package draw

import (
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/lineupdraft/go/internal/apperr"
	"github.com/mcdev12/lineupdraft/go/internal/models"
)

var sevenTeams = []models.Team{
	{Abbr: "A", Name: "A Team"},
	{Abbr: "B", Name: "B Team"},
	{Abbr: "C", Name: "C Team"},
	{Abbr: "D", Name: "D Team"},
	{Abbr: "E", Name: "E Team"},
	{Abbr: "F", Name: "F Team"},
	{Abbr: "G", Name: "G Team"},
}

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func abbrs(teams []models.Team) []string {
	out := make([]string, len(teams))
	for i, t := range teams {
		out[i] = t.Abbr
	}
	return out
}

func TestDrawReturnsDistinctTeams(t *testing.T) {
	for i := 0; i < 50; i++ {
		seed := fmt.Sprintf("seed-%d", i)
		drawn, err := Draw(sevenTeams, 5, seed)
		require.NoError(t, err)
		require.Len(t, drawn, 5)

		seen := map[string]bool{}
		for _, team := range drawn {
			assert.False(t, seen[team.Abbr], "duplicate %s for seed %s", team.Abbr, seed)
			seen[team.Abbr] = true
		}
	}
}

func TestDrawIsDeterministicForSeed(t *testing.T) {
	first, err := Draw(sevenTeams, 5, "friends-seed")
	require.NoError(t, err)
	second, err := Draw(sevenTeams, 5, "friends-seed")
	require.NoError(t, err)

	assert.Equal(t, abbrs(first), abbrs(second))
}

func TestDrawUnseededStillDistinct(t *testing.T) {
	drawn, err := Draw(sevenTeams, 7, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, abbrs(sevenTeams), abbrs(drawn))
}

func TestDrawCapacityError(t *testing.T) {
	_, err := Draw(sevenTeams, 20, "x")
	require.Error(t, err)

	var capErr *apperr.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 20, capErr.Requested)
	assert.Equal(t, 7, capErr.Available)
	assert.Contains(t, err.Error(), "20")
	assert.Contains(t, err.Error(), "7")
}

func TestDrawNonPositiveCountIsEmpty(t *testing.T) {
	drawn, err := Draw(sevenTeams, 0, "x")
	require.NoError(t, err)
	assert.Empty(t, drawn)
}

func TestShuffleWithFixedSource(t *testing.T) {
	teams := sevenTeams[:4]
	got := Shuffle(teams, constSource(0))

	assert.Equal(t, []string{"B", "C", "D", "A"}, abbrs(got))
	assert.Equal(t, []string{"A", "B", "C", "D"}, abbrs(teams), "input must not be mutated")
}

func TestHashSeedMatchesFNV1a(t *testing.T) {
	for _, seed := range []string{"", "a", "friends-night-1", "unit-seed"} {
		h := fnv.New32a()
		_, _ = h.Write([]byte(seed))
		assert.Equal(t, h.Sum32(), HashSeed(seed), seed)
	}
	assert.Equal(t, uint32(0xe40c292c), HashSeed("a"))
}

func TestMulberry32RangeAndRepeatability(t *testing.T) {
	a := NewSeeded("replay")
	b := NewSeeded("replay")
	for i := 0; i < 1000; i++ {
		x := a.Float64()
		require.Equal(t, x, b.Float64())
		require.GreaterOrEqual(t, x, 0.0)
		require.Less(t, x, 1.0)
	}
}

func TestIndexClamps(t *testing.T) {
	assert.Equal(t, 0, Index(constSource(0.99), 1))
	assert.Equal(t, 4, Index(constSource(0.999999), 5))
	assert.Equal(t, 2, Index(constSource(0.5), 5))
}

func TestBuildDrawSequence(t *testing.T) {
	seq, err := BuildDrawSequence(sevenTeams, NewSeeded("seq"))
	require.NoError(t, err)
	assert.Len(t, seq, DrawCount)

	again, err := BuildDrawSequence(sevenTeams, NewSeeded("seq"))
	require.NoError(t, err)
	assert.Equal(t, seq, again)
}

func TestBuildDrawSequenceNeedsFiveTeams(t *testing.T) {
	_, err := BuildDrawSequence(sevenTeams[:4], NewRandomSource())
	require.Error(t, err)
	assert.True(t, apperr.IsCapacity(err))
}
