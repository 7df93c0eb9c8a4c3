package models

import (
	"fmt"
	"strings"
)

// Slot is one of the five lineup positions.
type Slot string

const (
	SlotPG Slot = "PG"
	SlotSG Slot = "SG"
	SlotSF Slot = "SF"
	SlotPF Slot = "PF"
	SlotC  Slot = "C"
)

// LineupSlots lists every slot in display order.
var LineupSlots = []Slot{SlotPG, SlotSG, SlotSF, SlotPF, SlotC}

// AllSlots returns a fresh copy of LineupSlots.
func AllSlots() []Slot {
	out := make([]Slot, len(LineupSlots))
	copy(out, LineupSlots)
	return out
}

// Valid reports whether s is one of the five lineup slots.
func (s Slot) Valid() bool {
	return s.Order() >= 0
}

// Order returns the display index of the slot, or -1 for unknown slots.
func (s Slot) Order() int {
	for i, slot := range LineupSlots {
		if slot == s {
			return i
		}
	}
	return -1
}

// ParseSlot parses a slot name case-insensitively.
func ParseSlot(raw string) (Slot, error) {
	s := Slot(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("invalid slot %q", raw)
	}
	return s, nil
}

// JoinSlots renders slots as "PG, SG".
func JoinSlots(slots []Slot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
