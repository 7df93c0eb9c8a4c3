package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types published by the draft app.
const (
	EventSessionCreated     = "SessionCreated"
	EventPickLocked         = "PickLocked"
	EventShotClockViolation = "ShotClockViolation"
	EventRunCompleted       = "RunCompleted"
)

// Event is a domain event emitted after a session transaction commits.
type Event struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// New marshals payload into an Event with a fresh id.
func New(sessionID uuid.UUID, eventType string, payload any, at time.Time) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:        uuid.New(),
		SessionID: sessionID,
		EventType: eventType,
		Payload:   data,
		CreatedAt: at,
	}, nil
}

// SessionCreatedPayload is the payload for a SessionCreated event
type SessionCreatedPayload struct {
	SessionID    string    `json:"session_id"`
	GroupCode    *string   `json:"group_code,omitempty"`
	Seeded       bool      `json:"seeded"`
	DrawSequence []string  `json:"draw_sequence"`
	StartedAt    time.Time `json:"started_at"`
}

// PickLockedPayload is the payload for a PickLocked event
type PickLockedPayload struct {
	SessionID  string    `json:"session_id"`
	DrawIndex  int       `json:"draw_index"`
	Slot       string    `json:"slot"`
	PlayerName string    `json:"player_name"`
	TeamAbbr   string    `json:"team_abbr"`
	MadeAt     time.Time `json:"made_at"`
}

// ShotClockViolationPayload is the payload for a ShotClockViolation event
type ShotClockViolationPayload struct {
	SessionID string    `json:"session_id"`
	DrawIndex int       `json:"draw_index"`
	Slot      string    `json:"slot"`
	TeamAbbr  string    `json:"team_abbr"`
	ExpiredAt time.Time `json:"expired_at"`
}

// RunCompletedPayload is the payload for a RunCompleted event
type RunCompletedPayload struct {
	SessionID         string    `json:"session_id"`
	RunID             string    `json:"run_id"`
	ShareCode         string    `json:"share_code"`
	GroupCode         *string   `json:"group_code,omitempty"`
	TeamScore         float64   `json:"team_score"`
	UsedFallbackStats bool      `json:"used_fallback_stats"`
	Penalties         int       `json:"penalties"`
	CompletedAt       time.Time `json:"completed_at"`
}
