package models

// RosterPlayer is a player on a team roster with its eligible slots.
type RosterPlayer struct {
	Name          string `json:"name"`
	EligibleSlots []Slot `json:"eligibleSlots"`
}

// PlayerStats holds the four advanced metrics used for scoring.
type PlayerStats struct {
	BPM  float64 `json:"bpm" yaml:"bpm"`
	WS48 float64 `json:"ws48" yaml:"ws48"`
	VORP float64 `json:"vorp" yaml:"vorp"`
	EPM  float64 `json:"epm" yaml:"epm"`
}

// ProjectionSeason marks a lookup that used the positional baseline.
const ProjectionSeason = "POS_PROJECTION"

// StatsLookup is the result of resolving a player's metrics for a season.
type StatsLookup struct {
	Season          string      `json:"season"`
	Stats           PlayerStats `json:"stats"`
	UsedFallback    bool        `json:"usedFallback"`
	SeasonsUsed     []string    `json:"seasonsUsed"`
	SeasonsAveraged int         `json:"seasonsAveraged"`
}
