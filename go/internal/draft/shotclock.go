package draft

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/lineupdraft/go/internal/draft/events"
	"github.com/mcdev12/lineupdraft/go/internal/draw"
	"github.com/mcdev12/lineupdraft/go/internal/lineup"
	"github.com/mcdev12/lineupdraft/go/internal/models"
)

// SlotPicker chooses which open slot is forfeited when the shot clock expires.
type SlotPicker interface {
	PickSlot(sess *models.DraftSession, open []models.Slot) models.Slot
}

// SeededSlotPicker replays the same choice for seeded sessions and falls back
// to its random source otherwise.
type SeededSlotPicker struct {
	random draw.Source
}

// NewSeededSlotPicker constructs a SeededSlotPicker. A nil random uses a
// non-deterministic source.
func NewSeededSlotPicker(random draw.Source) *SeededSlotPicker {
	if random == nil {
		random = draw.NewRandomSource()
	}
	return &SeededSlotPicker{random: random}
}

func (p *SeededSlotPicker) PickSlot(sess *models.DraftSession, open []models.Slot) models.Slot {
	if len(open) == 1 {
		return open[0]
	}
	src := p.random
	if sess.Seed != nil {
		src = draw.NewSeeded(fmt.Sprintf("%s:shotclock:%s:%d", *sess.Seed, sess.ID, sess.CurrentDrawIndex))
	}
	return open[draw.Index(src, len(open))]
}

// roundOver reports whether no further draws can happen.
func roundOver(sess *models.DraftSession) bool {
	return sess.CurrentDrawIndex >= draw.DrawCount ||
		sess.CurrentDrawIndex >= len(sess.DrawSequence) ||
		!lineup.CanDraftMore(sess.Lineup)
}

// applyExpiredShotClocks forfeits every draw whose clock ran out by now.
// Each forfeit advances drawStartedAt by exactly one clock so missed windows
// replay at a fixed cadence.
func (a *App) applyExpiredShotClocks(sess *models.DraftSession, now time.Time) ([]events.Event, error) {
	if sess.Status != models.DraftStatusDrafting {
		return nil, nil
	}

	var evs []events.Event
	clock := a.settings.ShotClock
	for !roundOver(sess) && !now.Before(sess.DrawStartedAt.Add(clock)) {
		open := lineup.OpenSlots(sess.Lineup)
		slot := a.slotPicker.PickSlot(sess, open)
		abbr := sess.DrawSequence[sess.CurrentDrawIndex]

		next, err := lineup.ApplyPick(sess.Lineup, models.LineupPick{
			Slot:       slot,
			PlayerName: PenaltyPlayerName,
			TeamAbbr:   abbr,
			TeamName:   a.teamName(abbr),
			IsPenalty:  true,
		})
		if err != nil {
			return nil, fmt.Errorf("apply shot clock penalty: %w", err)
		}

		expiredAt := sess.DrawStartedAt.Add(clock)
		log.Info().
			Str("session_id", sess.ID.String()).
			Int("draw_index", sess.CurrentDrawIndex).
			Str("team", abbr).
			Str("slot", string(slot)).
			Msg("shot clock expired, penalty applied")

		evs = a.appendEvent(evs, sess.ID, events.EventShotClockViolation, events.ShotClockViolationPayload{
			SessionID: sess.ID.String(),
			DrawIndex: sess.CurrentDrawIndex,
			Slot:      string(slot),
			TeamAbbr:  abbr,
			ExpiredAt: expiredAt,
		}, now)

		sess.Lineup = next
		sess.CurrentDrawIndex++
		sess.DrawStartedAt = expiredAt
	}
	return evs, nil
}

func (a *App) teamName(abbr string) string {
	if t, ok := a.catalog.Team(abbr); ok {
		return t.Name
	}
	return abbr
}
