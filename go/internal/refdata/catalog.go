// Package refdata holds the read-only reference tables the draft core consumes:
// teams, rosters, player positions and per-season player metrics.
package refdata

import (
	"fmt"
	"strings"

	"github.com/mcdev12/lineupdraft/go/internal/models"
)

// Dataset is the raw shape produced by the ingestion job.
// Stats keys are "<player name>|<season>", e.g. "Nikola Jokic|2024-25".
type Dataset struct {
	Teams     []models.Team                 `json:"teams"`
	Rosters   map[string][]string           `json:"rosters"`
	Positions map[string][]models.Slot      `json:"positions"`
	Stats     map[string]models.PlayerStats `json:"stats"`
}

// Catalog is an immutable, indexed view over a Dataset. Safe for concurrent reads.
type Catalog struct {
	teams       []models.Team
	teamByAbbr  map[string]models.Team
	rosters     map[string][]string
	rosterIndex map[string]map[string]struct{}
	positions   map[string][]models.Slot
	stats       map[string]map[string]models.PlayerStats
}

// NewCatalog validates and indexes a dataset.
func NewCatalog(ds Dataset) (*Catalog, error) {
	c := &Catalog{
		teamByAbbr:  make(map[string]models.Team, len(ds.Teams)),
		rosters:     make(map[string][]string, len(ds.Rosters)),
		rosterIndex: make(map[string]map[string]struct{}, len(ds.Rosters)),
		positions:   make(map[string][]models.Slot, len(ds.Positions)),
		stats:       make(map[string]map[string]models.PlayerStats),
	}

	for _, t := range ds.Teams {
		if t.Abbr == "" {
			return nil, fmt.Errorf("team with empty abbreviation")
		}
		if _, dup := c.teamByAbbr[t.Abbr]; dup {
			return nil, fmt.Errorf("duplicate team %s", t.Abbr)
		}
		if t.Name == "" {
			t.Name = t.Abbr
		}
		c.teamByAbbr[t.Abbr] = t
		c.teams = append(c.teams, t)
	}

	for abbr, names := range ds.Rosters {
		idx := make(map[string]struct{}, len(names))
		list := make([]string, 0, len(names))
		for _, n := range names {
			if _, dup := idx[n]; dup || n == "" {
				continue
			}
			idx[n] = struct{}{}
			list = append(list, n)
		}
		c.rosters[abbr] = list
		c.rosterIndex[abbr] = idx
	}

	for name, slots := range ds.Positions {
		var valid []models.Slot
		seen := map[models.Slot]bool{}
		for _, s := range slots {
			if s.Valid() && !seen[s] {
				seen[s] = true
				valid = append(valid, s)
			}
		}
		if len(valid) > 0 {
			c.positions[name] = valid
		}
	}

	for key, st := range ds.Stats {
		i := strings.LastIndex(key, "|")
		if i <= 0 || i == len(key)-1 {
			continue
		}
		name, season := key[:i], key[i+1:]
		if c.stats[name] == nil {
			c.stats[name] = make(map[string]models.PlayerStats)
		}
		c.stats[name][season] = st
	}

	return c, nil
}

// Teams returns the full team pool in dataset order.
func (c *Catalog) Teams() []models.Team {
	out := make([]models.Team, len(c.teams))
	copy(out, c.teams)
	return out
}

// Team looks up a team by abbreviation.
func (c *Catalog) Team(abbr string) (models.Team, bool) {
	t, ok := c.teamByAbbr[abbr]
	return t, ok
}

// IsPlayerOnTeam reports roster membership.
func (c *Catalog) IsPlayerOnTeam(abbr, playerName string) bool {
	_, ok := c.rosterIndex[abbr][playerName]
	return ok
}

// RecordedSlots returns only the positions present in the dataset.
func (c *Catalog) RecordedSlots(playerName string) []models.Slot {
	return append([]models.Slot(nil), c.positions[playerName]...)
}

// EligibleSlots returns the recorded positions, or every slot when none are recorded.
func (c *Catalog) EligibleSlots(playerName string) []models.Slot {
	if slots := c.positions[playerName]; len(slots) > 0 {
		return append([]models.Slot(nil), slots...)
	}
	return models.AllSlots()
}

// Roster returns the team's players with their eligible slots.
func (c *Catalog) Roster(abbr string) []models.RosterPlayer {
	names := c.rosters[abbr]
	out := make([]models.RosterPlayer, len(names))
	for i, n := range names {
		out[i] = models.RosterPlayer{Name: n, EligibleSlots: c.EligibleSlots(n)}
	}
	return out
}

// PlayerSeasons returns every recorded season for a player.
func (c *Catalog) PlayerSeasons(playerName string) map[string]models.PlayerStats {
	src := c.stats[playerName]
	out := make(map[string]models.PlayerStats, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
