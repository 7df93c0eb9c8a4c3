package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftStatus defines the status of a draft session.
type DraftStatus string

const (
	DraftStatusDrafting  DraftStatus = "DRAFTING"
	DraftStatusCompleted DraftStatus = "COMPLETED"
)

// ParseDraftStatus maps unknown persisted values to DRAFTING.
func ParseDraftStatus(raw string) DraftStatus {
	switch DraftStatus(raw) {
	case DraftStatusCompleted:
		return DraftStatusCompleted
	default:
		return DraftStatusDrafting
	}
}

// DraftSession is a single five-draw round for one participant.
type DraftSession struct {
	ID               uuid.UUID   `json:"id"`
	SessionToken     string      `json:"session_token"`
	GroupCode        *string     `json:"group_code,omitempty"`
	Seed             *string     `json:"seed,omitempty"`
	DrawSequence     []string    `json:"draw_sequence"`
	CurrentDrawIndex int         `json:"current_draw_index"`
	Lineup           LineupState `json:"lineup"`
	ChosenPlayers    []string    `json:"chosen_players"`
	DrawStartedAt    time.Time   `json:"draw_started_at"`
	Status           DraftStatus `json:"status"`
	RunID            *uuid.UUID  `json:"run_id,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	// RunShareCode is loaded alongside the session when a run is linked.
	RunShareCode *string `json:"run_share_code,omitempty"`
}

// Clone returns a deep copy so callers can mutate freely.
func (s *DraftSession) Clone() *DraftSession {
	c := *s
	c.DrawSequence = append([]string(nil), s.DrawSequence...)
	c.ChosenPlayers = append([]string(nil), s.ChosenPlayers...)
	c.Lineup = s.Lineup.Clone()
	if s.GroupCode != nil {
		v := *s.GroupCode
		c.GroupCode = &v
	}
	if s.Seed != nil {
		v := *s.Seed
		c.Seed = &v
	}
	if s.RunID != nil {
		v := *s.RunID
		c.RunID = &v
	}
	if s.RunShareCode != nil {
		v := *s.RunShareCode
		c.RunShareCode = &v
	}
	return &c
}
