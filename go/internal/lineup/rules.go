// Package lineup holds the slot, roster and eligibility rules for a pick.
package lineup

import (
	"fmt"
	"slices"

	"github.com/mcdev12/lineupdraft/go/internal/apperr"
	"github.com/mcdev12/lineupdraft/go/internal/models"
)

// OpenSlots lists unfilled slots in display order.
func OpenSlots(l models.LineupState) []models.Slot {
	open := make([]models.Slot, 0, len(models.LineupSlots))
	for _, s := range models.LineupSlots {
		if _, ok := l[s]; !ok {
			open = append(open, s)
		}
	}
	return open
}

// IsSlotOpen reports whether slot can still be filled.
func IsSlotOpen(l models.LineupState, slot models.Slot) bool {
	_, filled := l[slot]
	return !filled
}

// CanDraftMore reports whether any slot is still open.
func CanDraftMore(l models.LineupState) bool {
	return len(OpenSlots(l)) > 0
}

// PickRequest is everything needed to validate one pick.
type PickRequest struct {
	Slot          models.Slot
	PlayerName    string
	OnRoster      bool
	ChosenPlayers []string
	EligibleSlots []models.Slot
}

// ValidatePick returns a *apperr.ValidationError for the first failing rule.
func ValidatePick(l models.LineupState, req PickRequest) error {
	if !CanDraftMore(l) {
		return apperr.Validation("All lineup slots are already filled.")
	}
	if !IsSlotOpen(l, req.Slot) {
		return apperr.Validation("Slot %s is already locked for this round.", req.Slot)
	}
	if !req.OnRoster {
		return apperr.Validation("%s is not on the current team roster.", req.PlayerName)
	}
	if !slices.Contains(req.EligibleSlots, req.Slot) {
		return apperr.Validation("%s cannot be assigned to %s. Eligible positions: %s",
			req.PlayerName, req.Slot, models.JoinSlots(req.EligibleSlots))
	}
	if slices.Contains(req.ChosenPlayers, req.PlayerName) {
		return apperr.Validation("%s has already been selected in this round.", req.PlayerName)
	}
	return nil
}

// ApplyPick returns a new lineup with pick in its slot. Filling a locked slot
// is a caller bug and is reported as a plain error.
func ApplyPick(l models.LineupState, pick models.LineupPick) (models.LineupState, error) {
	if !IsSlotOpen(l, pick.Slot) {
		return nil, fmt.Errorf("slot %s is already filled", pick.Slot)
	}
	next := l.Clone()
	next[pick.Slot] = pick
	return next, nil
}
