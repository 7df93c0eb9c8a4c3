// Package draw produces the ordered, duplicate-free team sequence for a session.
package draw

import (
	"github.com/mcdev12/lineupdraft/go/internal/apperr"
	"github.com/mcdev12/lineupdraft/go/internal/models"
)

// DrawCount is the number of teams drawn per session.
const DrawCount = 5

// Shuffle returns a Fisher-Yates shuffled copy of teams.
func Shuffle(teams []models.Team, src Source) []models.Team {
	out := make([]models.Team, len(teams))
	copy(out, teams)
	for i := len(out) - 1; i > 0; i-- {
		j := Index(src, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Draw picks count distinct teams. An empty seed draws non-deterministically.
func Draw(teams []models.Team, count int, seed string) ([]models.Team, error) {
	return DrawFrom(teams, count, SourceFor(seed))
}

// DrawFrom is Draw with an explicit source.
func DrawFrom(teams []models.Team, count int, src Source) ([]models.Team, error) {
	if count <= 0 {
		return []models.Team{}, nil
	}
	if count > len(teams) {
		return nil, &apperr.CapacityError{Requested: count, Available: len(teams)}
	}
	return Shuffle(teams, src)[:count], nil
}

// BuildDrawSequence returns the team codes for a full session.
func BuildDrawSequence(teams []models.Team, src Source) ([]string, error) {
	drawn, err := DrawFrom(teams, DrawCount, src)
	if err != nil {
		return nil, err
	}
	codes := make([]string, len(drawn))
	for i, t := range drawn {
		codes[i] = t.Abbr
	}
	return codes, nil
}
