// Package draft runs the single-round lineup draft: drawing teams, locking
// picks, forfeiting expired shot clocks and scoring the finished lineup.
package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/lineupdraft/go/internal/apperr"
	"github.com/mcdev12/lineupdraft/go/internal/draft/events"
	"github.com/mcdev12/lineupdraft/go/internal/draft/repository"
	"github.com/mcdev12/lineupdraft/go/internal/draw"
	"github.com/mcdev12/lineupdraft/go/internal/lineup"
	"github.com/mcdev12/lineupdraft/go/internal/models"
	"github.com/mcdev12/lineupdraft/go/internal/sharecode"
)

// App handles draft session business logic
type App struct {
	store      repository.Store
	catalog    Catalog
	scorer     Scorer
	publisher  events.Publisher
	clock      clockwork.Clock
	random     draw.Source
	slotPicker SlotPicker
	codes      *sharecode.Generator
	settings   Settings
}

// NewApp creates a new draft App. A nil publisher drops events and a nil
// clock uses the real clock.
func NewApp(store repository.Store, catalog Catalog, scorer Scorer, publisher events.Publisher, clock clockwork.Clock, settings Settings) *App {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	random := draw.NewRandomSource()
	return &App{
		store:      store,
		catalog:    catalog,
		scorer:     scorer,
		publisher:  publisher,
		clock:      clock,
		random:     random,
		slotPicker: NewSeededSlotPicker(random),
		codes:      sharecode.NewGenerator(random, settings.ShareCode),
		settings:   settings.withDefaults(),
	}
}

// ShotClock returns the per-draw time budget.
func (a *App) ShotClock() time.Duration { return a.settings.ShotClock }

// CreateSession draws a team sequence and persists a new session. The seed,
// when present, makes the draw reproducible.
func (a *App) CreateSession(ctx context.Context, groupCode, seed *string) (*models.DraftSession, error) {
	groupCode = sharecode.NormalizeGroupCode(groupCode)
	seed = sharecode.NormalizeSeed(seed)

	src := a.random
	if seed != nil {
		src = draw.NewSeeded(*seed)
	}
	seq, err := draw.BuildDrawSequence(a.catalog.Teams(), src)
	if err != nil {
		return nil, fmt.Errorf("failed to draw teams: %w", err)
	}

	now := a.clock.Now()
	sess := &models.DraftSession{
		ID:            uuid.New(),
		SessionToken:  uuid.NewString(),
		GroupCode:     groupCode,
		Seed:          seed,
		DrawSequence:  seq,
		Lineup:        models.LineupState{},
		ChosenPlayers: []string{},
		DrawStartedAt: now,
		Status:        models.DraftStatusDrafting,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := a.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info().
		Str("session_id", sess.ID.String()).
		Strs("draw_sequence", seq).
		Bool("seeded", seed != nil).
		Msg("draft session created")

	a.publish(ctx, a.appendEvent(nil, sess.ID, events.EventSessionCreated, events.SessionCreatedPayload{
		SessionID:    sess.ID.String(),
		GroupCode:    groupCode,
		Seeded:       seed != nil,
		DrawSequence: seq,
		StartedAt:    now,
	}, now))
	return sess, nil
}

// GetView returns the session state after applying any expired shot clocks.
func (a *App) GetView(ctx context.Context, token string) (*DraftView, error) {
	var (
		view *DraftView
		evs  []events.Event
	)
	err := a.store.WithinTx(ctx, func(tx repository.Tx) error {
		sess, err := lockSession(ctx, tx, token)
		if err != nil {
			return err
		}
		now := a.clock.Now()
		evs, err = a.sync(ctx, tx, sess, now)
		if err != nil {
			return err
		}
		view = a.buildView(sess)
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.publish(ctx, evs)
	return view, nil
}

// SubmitPick locks playerName into slot for the team currently on the clock.
// A session that is already complete returns its completion result.
func (a *App) SubmitPick(ctx context.Context, token, playerName, rawSlot string) (*PickResult, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, apperr.Validation("Player name is required.")
	}
	if len([]rune(playerName)) > MaxPlayerNameLength {
		return nil, apperr.Validation("Player name must be at most %d characters.", MaxPlayerNameLength)
	}
	slot, err := models.ParseSlot(rawSlot)
	if err != nil {
		return nil, apperr.Validation("Slot must be one of %s.", models.JoinSlots(models.LineupSlots))
	}

	var (
		result  *PickResult
		evs     []events.Event
		pickErr error
	)
	err = a.store.WithinTx(ctx, func(tx repository.Tx) error {
		sess, err := lockSession(ctx, tx, token)
		if err != nil {
			return err
		}

		now := a.clock.Now()
		// Catch-up is committed even when the pick itself is rejected.
		evs, err = a.sync(ctx, tx, sess, now)
		if err != nil {
			return err
		}
		if sess.Status == models.DraftStatusCompleted {
			result = &PickResult{Completed: true, ShareCode: sess.RunShareCode}
			return nil
		}

		pickEvs, err := a.lockPick(ctx, tx, sess, playerName, slot, now)
		if err != nil {
			if apperr.IsValidation(err) || apperr.IsState(err) {
				pickErr = err
				return nil
			}
			return err
		}
		evs = append(evs, pickEvs...)
		result = &PickResult{Completed: sess.Status == models.DraftStatusCompleted, ShareCode: sess.RunShareCode}
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.publish(ctx, evs)
	if pickErr != nil {
		return nil, pickErr
	}
	return result, nil
}

func lockSession(ctx context.Context, tx repository.Tx, token string) (*models.DraftSession, error) {
	sess, err := tx.LockSessionByToken(ctx, token)
	if apperr.IsNotFound(err) {
		return nil, &apperr.NotFoundError{
			Resource: "session",
			Key:      token,
			Message:  "Draft session not found. Start a new game.",
		}
	}
	return sess, err
}

// lockPick validates and applies a human pick, completing the round when it
// fills the lineup. The session is written back on success.
func (a *App) lockPick(ctx context.Context, tx repository.Tx, sess *models.DraftSession, playerName string, slot models.Slot, now time.Time) ([]events.Event, error) {
	idx := sess.CurrentDrawIndex
	if idx >= draw.DrawCount || idx >= len(sess.DrawSequence) {
		return nil, apperr.State("The round is already complete.")
	}
	abbr := sess.DrawSequence[idx]
	team, ok := a.catalog.Team(abbr)
	if !ok {
		return nil, apperr.State("Current team is invalid. Start a new game.")
	}

	if err := lineup.ValidatePick(sess.Lineup, lineup.PickRequest{
		Slot:          slot,
		PlayerName:    playerName,
		OnRoster:      a.catalog.IsPlayerOnTeam(abbr, playerName),
		ChosenPlayers: sess.ChosenPlayers,
		EligibleSlots: a.catalog.EligibleSlots(playerName),
	}); err != nil {
		return nil, err
	}

	next, err := lineup.ApplyPick(sess.Lineup, models.LineupPick{
		Slot:       slot,
		PlayerName: playerName,
		TeamAbbr:   team.Abbr,
		TeamName:   team.Name,
	})
	if err != nil {
		return nil, err
	}

	sess.Lineup = next
	sess.ChosenPlayers = append(sess.ChosenPlayers, playerName)
	sess.CurrentDrawIndex++
	sess.DrawStartedAt = now
	sess.UpdatedAt = now

	log.Info().
		Str("session_id", sess.ID.String()).
		Int("draw_index", idx).
		Str("team", abbr).
		Str("slot", string(slot)).
		Str("player", playerName).
		Msg("pick locked")

	evs := a.appendEvent(nil, sess.ID, events.EventPickLocked, events.PickLockedPayload{
		SessionID:  sess.ID.String(),
		DrawIndex:  idx,
		Slot:       string(slot),
		PlayerName: playerName,
		TeamAbbr:   abbr,
		MadeAt:     now,
	}, now)

	if roundOver(sess) {
		runEv, err := a.complete(ctx, tx, sess, now)
		if err != nil {
			return nil, err
		}
		evs = append(evs, runEv...)
	}

	if err := tx.UpdateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save pick: %w", err)
	}
	return evs, nil
}

// sync applies expired shot clocks, completing the round if they fill it,
// and writes the session back when anything changed.
func (a *App) sync(ctx context.Context, tx repository.Tx, sess *models.DraftSession, now time.Time) ([]events.Event, error) {
	evs, err := a.applyExpiredShotClocks(sess, now)
	if err != nil {
		return nil, err
	}
	if len(evs) == 0 {
		return nil, nil
	}

	if roundOver(sess) {
		runEv, err := a.complete(ctx, tx, sess, now)
		if err != nil {
			return nil, err
		}
		evs = append(evs, runEv...)
	}

	sess.UpdatedAt = now
	if err := tx.UpdateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save shot clock penalties: %w", err)
	}
	return evs, nil
}

// complete scores the lineup, issues a share code and links the new run.
func (a *App) complete(ctx context.Context, tx repository.Tx, sess *models.DraftSession, now time.Time) ([]events.Event, error) {
	picks := sess.Lineup.Ordered()
	if len(picks) != len(models.LineupSlots) {
		return nil, apperr.State("Round cannot finish until all slots are filled.")
	}

	score := a.scorer.ScoreLineup(picks)
	run := &models.Run{
		ID:                uuid.New(),
		GroupCode:         sess.GroupCode,
		Seed:              sess.Seed,
		TeamScore:         score.TeamScore,
		UsedFallbackStats: score.UsedFallbackStats,
		Picks:             score.PlayerScores,
		CreatedAt:         now,
	}
	if err := a.insertRun(ctx, tx, sess, run); err != nil {
		return nil, err
	}
	code := run.ShareCode

	sess.Status = models.DraftStatusCompleted
	sess.RunID = &run.ID
	sess.RunShareCode = &run.ShareCode

	penalties := 0
	for _, p := range picks {
		if p.IsPenalty {
			penalties++
		}
	}

	log.Info().
		Str("session_id", sess.ID.String()).
		Str("run_id", run.ID.String()).
		Str("share_code", code).
		Float64("team_score", run.TeamScore).
		Int("penalties", penalties).
		Msg("draft round completed")

	return a.appendEvent(nil, sess.ID, events.EventRunCompleted, events.RunCompletedPayload{
		SessionID:         sess.ID.String(),
		RunID:             run.ID.String(),
		ShareCode:         code,
		GroupCode:         run.GroupCode,
		TeamScore:         run.TeamScore,
		UsedFallbackStats: run.UsedFallbackStats,
		Penalties:         penalties,
		CompletedAt:       now,
	}, now), nil
}

// insertRun issues a share code and saves run under it. A code claimed by a
// concurrent round between the check and the insert is replaced.
func (a *App) insertRun(ctx context.Context, tx repository.Tx, sess *models.DraftSession, run *models.Run) error {
	codes := a.codes
	if a.settings.ShareCodeSource != nil {
		if src := a.settings.ShareCodeSource(sess.Seed); src != nil {
			codes = sharecode.NewGenerator(src, a.settings.ShareCode)
		}
	}

	for attempt := 1; ; attempt++ {
		code, err := codes.Issue(ctx, tx.ShareCodeExists)
		if err != nil {
			return err
		}
		run.ShareCode = code

		err = tx.InsertRun(ctx, run)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateShareCode) || attempt >= shareCodeInsertAttempts {
			return fmt.Errorf("failed to save run: %w", err)
		}
		log.Warn().
			Str("session_id", sess.ID.String()).
			Str("share_code", code).
			Int("attempt", attempt).
			Msg("share code taken at insert, retrying")
	}
}

func (a *App) buildView(sess *models.DraftSession) *DraftView {
	view := &DraftView{
		SessionID:        sess.ID,
		Status:           sess.Status,
		GroupCode:        sess.GroupCode,
		Seed:             sess.Seed,
		CurrentRoster:    []models.RosterPlayer{},
		DrawSequence:     sess.DrawSequence,
		CurrentDrawIndex: sess.CurrentDrawIndex,
		RemainingTeams:   []string{},
		Lineup:           sess.Lineup,
		OpenSlots:        lineup.OpenSlots(sess.Lineup),
		ChosenPlayers:    sess.ChosenPlayers,
		ShotClockSeconds: int(a.settings.ShotClock / time.Second),
		RunShareCode:     sess.RunShareCode,
	}

	idx := sess.CurrentDrawIndex
	if sess.Status == models.DraftStatusDrafting && idx < len(sess.DrawSequence) {
		view.RemainingTeams = append(view.RemainingTeams, sess.DrawSequence[idx:]...)
	}
	if idx < draw.DrawCount && idx < len(sess.DrawSequence) && sess.Status == models.DraftStatusDrafting {
		abbr := sess.DrawSequence[idx]
		name := a.teamName(abbr)
		view.CurrentTeamAbbr = &abbr
		view.CurrentTeamName = &name
		view.CurrentRoster = a.catalog.Roster(abbr)
		deadline := sess.DrawStartedAt.Add(a.settings.ShotClock)
		view.ShotClockDeadline = &deadline
	}
	return view
}

// GetRunByShareCode returns a finished run.
func (a *App) GetRunByShareCode(ctx context.Context, code string) (*models.Run, error) {
	code = sharecode.NormalizeShareCode(code)
	if code == "" {
		return nil, apperr.NotFound("run", code)
	}
	return a.store.GetRunByShareCode(ctx, code)
}

// ListLeaderboard returns the best runs, optionally for one group.
func (a *App) ListLeaderboard(ctx context.Context, groupCode *string) ([]models.Run, error) {
	runs, err := a.store.ListLeaderboard(ctx, sharecode.NormalizeGroupCode(groupCode), a.settings.LeaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	return runs, nil
}

// Teams lists the team pool.
func (a *App) Teams() []models.Team { return a.catalog.Teams() }

// Roster lists a team's players with their eligible slots.
func (a *App) Roster(abbr string) ([]models.RosterPlayer, error) {
	abbr = strings.ToUpper(strings.TrimSpace(abbr))
	if _, ok := a.catalog.Team(abbr); !ok {
		return nil, apperr.NotFound("team", abbr)
	}
	return a.catalog.Roster(abbr), nil
}

func (a *App) appendEvent(evs []events.Event, sessionID uuid.UUID, eventType string, payload any, at time.Time) []events.Event {
	ev, err := events.New(sessionID, eventType, payload, at)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to build event")
		return evs
	}
	return append(evs, ev)
}

// publish sends committed events. Failures are logged, never returned.
func (a *App) publish(ctx context.Context, evs []events.Event) {
	for _, ev := range evs {
		if err := a.publisher.Publish(ctx, ev); err != nil {
			log.Error().
				Err(err).
				Str("session_id", ev.SessionID.String()).
				Str("event_type", ev.EventType).
				Msg("failed to publish event")
		}
	}
}
