package playerstats

import "github.com/mcdev12/lineupdraft/go/internal/models"

// DefaultBaselines approximates replacement-level production by position.
func DefaultBaselines() map[models.Slot]models.PlayerStats {
	return map[models.Slot]models.PlayerStats{
		models.SlotPG: {BPM: 0.8, WS48: 0.093, VORP: 0.7, EPM: 0.7},
		models.SlotSG: {BPM: 0.5, WS48: 0.089, VORP: 0.5, EPM: 0.4},
		models.SlotSF: {BPM: 0.6, WS48: 0.094, VORP: 0.6, EPM: 0.5},
		models.SlotPF: {BPM: 0.7, WS48: 0.102, VORP: 0.8, EPM: 0.6},
		models.SlotC:  {BPM: 0.9, WS48: 0.109, VORP: 0.9, EPM: 0.7},
	}
}
