package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/lineupdraft/go/internal/models"
)

// Persisted JSON columns are decoded against a strict shape. Anything that
// does not parse is replaced by an empty value and logged.

func encodeJSON(v any, column string) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", column, err)
	}
	return b, nil
}

func decodeDrawSequence(raw []byte, sessionID string) []string {
	var seq []string
	if err := json.Unmarshal(raw, &seq); err != nil {
		warnDecode("draw_sequence", sessionID, err)
		return []string{}
	}
	if seq == nil {
		return []string{}
	}
	return seq
}

func decodeLineup(raw []byte, sessionID string) models.LineupState {
	var rawMap map[string]models.LineupPick
	if err := json.Unmarshal(raw, &rawMap); err != nil {
		warnDecode("lineup", sessionID, err)
		return models.LineupState{}
	}

	lineup := make(models.LineupState, len(rawMap))
	for key, pick := range rawMap {
		slot, err := models.ParseSlot(key)
		if err != nil {
			log.Warn().Str("session_id", sessionID).Str("slot", key).Msg("dropping lineup entry with unknown slot")
			continue
		}
		pick.Slot = slot
		lineup[slot] = pick
	}
	return lineup
}

func decodeChosenPlayers(raw []byte, sessionID string) []string {
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		warnDecode("chosen_players", sessionID, err)
		return []string{}
	}

	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func decodeSeasons(raw json.RawMessage) []string {
	var seasons []string
	if err := json.Unmarshal(raw, &seasons); err != nil {
		log.Warn().Err(err).Msg("failed to decode seasons_used, ignoring")
		return nil
	}
	return seasons
}

func warnDecode(column, sessionID string, err error) {
	log.Warn().
		Err(err).
		Str("column", column).
		Str("session_id", sessionID).
		Msg("failed to decode persisted session field, using default")
}

func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
