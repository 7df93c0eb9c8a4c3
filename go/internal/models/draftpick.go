package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// RunPick is a scored pick stored with a finished run.
type RunPick struct {
	Slot              Slot        `json:"slot"`
	PlayerName        string      `json:"playerName"`
	TeamAbbr          string      `json:"teamAbbr"`
	TeamName          string      `json:"teamName"`
	Stats             PlayerStats `json:"stats"`
	NormalizedMetrics PlayerStats `json:"normalizedMetrics"`
	Contribution      float64     `json:"contribution"`
	UsedFallback      bool        `json:"usedFallback"`
	IsPenalty         bool        `json:"isPenalty"`
	SeasonsUsed       []string    `json:"seasonsUsed,omitempty"`
}

// Run is the persisted, shareable result of a completed session.
type Run struct {
	ID                uuid.UUID `json:"id"`
	ShareCode         string    `json:"shareCode"`
	GroupCode         *string   `json:"groupCode,omitempty"`
	Seed              *string   `json:"seed,omitempty"`
	TeamScore         float64   `json:"teamScore"`
	UsedFallbackStats bool      `json:"usedFallbackStats"`
	Picks             []RunPick `json:"picks"`
	CreatedAt         time.Time `json:"createdAt"`
}

// SortPicksBySlot orders picks PG, SG, SF, PF, C. Unknown slots go last.
func SortPicksBySlot(picks []RunPick) {
	sort.SliceStable(picks, func(i, j int) bool {
		return slotRank(picks[i].Slot) < slotRank(picks[j].Slot)
	})
}

func slotRank(s Slot) int {
	if o := s.Order(); o >= 0 {
		return o
	}
	return 99
}
