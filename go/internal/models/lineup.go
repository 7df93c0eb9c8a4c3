package models

// LineupPick is the player locked into a single slot.
type LineupPick struct {
	Slot       Slot   `json:"slot"`
	PlayerName string `json:"playerName"`
	TeamAbbr   string `json:"teamAbbr"`
	TeamName   string `json:"teamName"`
	IsPenalty  bool   `json:"isPenalty,omitempty"`
}

// LineupState maps each filled slot to its pick. A present key is locked.
type LineupState map[Slot]LineupPick

// Clone returns a shallow copy of the lineup.
func (l LineupState) Clone() LineupState {
	out := make(LineupState, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Ordered returns the filled picks in slot display order.
func (l LineupState) Ordered() []LineupPick {
	picks := make([]LineupPick, 0, len(l))
	for _, slot := range LineupSlots {
		if p, ok := l[slot]; ok {
			picks = append(picks, p)
		}
	}
	return picks
}
