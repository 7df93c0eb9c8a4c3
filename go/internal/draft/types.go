package draft

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/lineupdraft/go/internal/draw"
	"github.com/mcdev12/lineupdraft/go/internal/models"
	"github.com/mcdev12/lineupdraft/go/internal/scoring"
	"github.com/mcdev12/lineupdraft/go/internal/sharecode"
)

const (
	// PenaltyPlayerName fills a slot forfeited to the shot clock.
	PenaltyPlayerName = "Shot Clock Violation"

	DefaultShotClock        = 24 * time.Second
	DefaultLeaderboardLimit = 100
	MaxPlayerNameLength     = 80

	// shareCodeInsertAttempts bounds retries when a freshly checked code is
	// taken by a concurrent round before the run insert lands.
	shareCodeInsertAttempts = 3
)

// Catalog is the read-only reference data the app draws from.
type Catalog interface {
	Teams() []models.Team
	Team(abbr string) (models.Team, bool)
	IsPlayerOnTeam(abbr, playerName string) bool
	EligibleSlots(playerName string) []models.Slot
	Roster(abbr string) []models.RosterPlayer
}

// Scorer scores a completed lineup.
type Scorer interface {
	ScoreLineup(picks []models.LineupPick) scoring.LineupScore
}

// Settings tunes the app. Zero values fall back to defaults.
type Settings struct {
	ShotClock        time.Duration
	LeaderboardLimit int
	ShareCode        sharecode.Options

	// ShareCodeSource, when set, supplies the source a session's share code
	// is drawn from. A nil result falls back to the app's random source.
	ShareCodeSource func(seed *string) draw.Source
}

func (s Settings) withDefaults() Settings {
	if s.ShotClock <= 0 {
		s.ShotClock = DefaultShotClock
	}
	if s.LeaderboardLimit <= 0 {
		s.LeaderboardLimit = DefaultLeaderboardLimit
	}
	return s
}

// DraftView is the read model returned to callers after shot-clock catch-up.
type DraftView struct {
	SessionID         uuid.UUID             `json:"sessionId"`
	Status            models.DraftStatus    `json:"status"`
	GroupCode         *string               `json:"groupCode,omitempty"`
	Seed              *string               `json:"seed,omitempty"`
	CurrentTeamAbbr   *string               `json:"currentTeamAbbr"`
	CurrentTeamName   *string               `json:"currentTeamName"`
	CurrentRoster     []models.RosterPlayer `json:"currentRoster"`
	DrawSequence      []string              `json:"drawSequence"`
	CurrentDrawIndex  int                   `json:"currentDrawIndex"`
	RemainingTeams    []string              `json:"remainingTeams"`
	Lineup            models.LineupState    `json:"lineup"`
	OpenSlots         []models.Slot         `json:"openSlots"`
	ChosenPlayers     []string              `json:"chosenPlayers"`
	ShotClockSeconds  int                   `json:"shotClockSeconds"`
	ShotClockDeadline *time.Time            `json:"shotClockDeadline"`
	RunShareCode      *string               `json:"runShareCode,omitempty"`
}

// PickResult is returned by SubmitPick.
type PickResult struct {
	Completed bool    `json:"completed"`
	ShareCode *string `json:"shareCode,omitempty"`
}
