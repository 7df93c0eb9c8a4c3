package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sqlc-dev/pqtype"

	"github.com/mcdev12/lineupdraft/go/internal/apperr"
	"github.com/mcdev12/lineupdraft/go/internal/models"
	"github.com/mcdev12/lineupdraft/go/internal/sqlutil"
)

// SQLStore persists sessions and runs through database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLStore wraps an open database.
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// Migrate creates the tables if they do not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate %s schema: %w", s.dialect.Name, err)
		}
	}
	log.Info().Str("dialect", s.dialect.Name).Msg("schema migrated")
	return nil
}

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) CreateSession(ctx context.Context, sess *models.DraftSession) error {
	seq, err := encodeJSON(sess.DrawSequence, "draw_sequence")
	if err != nil {
		return err
	}
	lineup, err := encodeJSON(sess.Lineup, "lineup")
	if err != nil {
		return err
	}
	chosen, err := encodeJSON(nonNil(sess.ChosenPlayers), "chosen_players")
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.dialect.rebind(`
		INSERT INTO draft_sessions (
			id, session_token, group_code, seed, draw_sequence, current_draw_index,
			lineup, chosen_players, draw_started_at, status, run_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		sess.ID, sess.SessionToken, sqlutil.Null(sess.GroupCode), sqlutil.Null(sess.Seed),
		seq, sess.CurrentDrawIndex, lineup, chosen, toMillis(sess.DrawStartedAt), string(sess.Status),
		sqlutil.NullUUID(sess.RunID), toMillis(sess.CreatedAt), toMillis(sess.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *SQLStore) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	return sqlutil.Run(ctx, s.db,
		func(tx *sql.Tx) *sqlTx { return &sqlTx{tx: tx, dialect: s.dialect} },
		func(q *sqlTx) error { return fn(q) },
	)
}

const runColumns = `id, share_code, group_code, seed, team_score, used_fallback_stats, created_at`

func (s *SQLStore) GetRunByShareCode(ctx context.Context, code string) (*models.Run, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT `+runColumns+` FROM runs WHERE share_code = ?`), code)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("run", code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	runs := []models.Run{*run}
	if err := s.attachPicks(ctx, runs); err != nil {
		return nil, err
	}
	return &runs[0], nil
}

func (s *SQLStore) ListLeaderboard(ctx context.Context, groupCode *string, limit int) ([]models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if groupCode != nil {
		query += ` WHERE group_code = ?`
		args = append(args, *groupCode)
	}
	query += ` ORDER BY team_score DESC, created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	defer rows.Close()

	runs := []models.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	if err := s.attachPicks(ctx, runs); err != nil {
		return nil, err
	}
	return runs, nil
}

const pickColumns = `run_id, slot, player_name, team_abbr, team_name, bpm, ws48, vorp, epm,
	norm_bpm, norm_ws48, norm_vorp, norm_epm, contribution, used_fallback, is_penalty, seasons_used`

func (s *SQLStore) attachPicks(ctx context.Context, runs []models.Run) error {
	if len(runs) == 0 {
		return nil
	}
	index := make(map[uuid.UUID]int, len(runs))
	args := make([]any, len(runs))
	for i, r := range runs {
		index[r.ID] = i
		args[i] = r.ID
		runs[i].Picks = []models.RunPick{}
	}

	rows, err := s.db.QueryContext(ctx,
		s.dialect.rebind(`SELECT `+pickColumns+` FROM run_picks WHERE run_id IN (`+placeholders(len(runs))+`)`),
		args...)
	if err != nil {
		return fmt.Errorf("failed to load run picks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			runID   uuid.UUID
			slot    string
			p       models.RunPick
			seasons pqtype.NullRawMessage
		)
		if err := rows.Scan(&runID, &slot, &p.PlayerName, &p.TeamAbbr, &p.TeamName,
			&p.Stats.BPM, &p.Stats.WS48, &p.Stats.VORP, &p.Stats.EPM,
			&p.NormalizedMetrics.BPM, &p.NormalizedMetrics.WS48, &p.NormalizedMetrics.VORP, &p.NormalizedMetrics.EPM,
			&p.Contribution, &p.UsedFallback, &p.IsPenalty, &seasons,
		); err != nil {
			return fmt.Errorf("failed to scan run pick: %w", err)
		}
		p.Slot = models.Slot(slot)
		if seasons.Valid {
			p.SeasonsUsed = decodeSeasons(seasons.RawMessage)
		}
		if i, ok := index[runID]; ok {
			runs[i].Picks = append(runs[i].Picks, p)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate run picks: %w", err)
	}

	for i := range runs {
		models.SortPicksBySlot(runs[i].Picks)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var (
		run       models.Run
		groupCode sql.Null[string]
		seed      sql.Null[string]
		createdAt int64
	)
	if err := row.Scan(&run.ID, &run.ShareCode, &groupCode, &seed, &run.TeamScore, &run.UsedFallbackStats, &createdAt); err != nil {
		return nil, err
	}
	run.GroupCode = sqlutil.Ptr(groupCode)
	run.Seed = sqlutil.Ptr(seed)
	run.CreatedAt = fromMillis(createdAt)
	return &run, nil
}

type sqlTx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *sqlTx) LockSessionByToken(ctx context.Context, token string) (*models.DraftSession, error) {
	row := t.tx.QueryRowContext(ctx, t.dialect.rebind(`
		SELECT s.id, s.session_token, s.group_code, s.seed, s.draw_sequence, s.current_draw_index,
		       s.lineup, s.chosen_players, s.draw_started_at, s.status, s.run_id,
		       s.created_at, s.updated_at, r.share_code
		FROM draft_sessions s
		LEFT JOIN runs r ON r.id = s.run_id
		WHERE s.session_token = ?`+t.dialect.lockSuffix), token)

	var (
		sess                          models.DraftSession
		groupCode, seed, shareCode    sql.Null[string]
		seq, lineup, chosen           []byte
		status                        string
		runID                         uuid.NullUUID
		drawStarted, created, updated int64
	)
	err := row.Scan(&sess.ID, &sess.SessionToken, &groupCode, &seed, &seq, &sess.CurrentDrawIndex,
		&lineup, &chosen, &drawStarted, &status, &runID, &created, &updated, &shareCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("session", token)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	id := sess.ID.String()
	sess.GroupCode = sqlutil.Ptr(groupCode)
	sess.Seed = sqlutil.Ptr(seed)
	sess.DrawSequence = decodeDrawSequence(seq, id)
	sess.Lineup = decodeLineup(lineup, id)
	sess.ChosenPlayers = decodeChosenPlayers(chosen, id)
	sess.DrawStartedAt = fromMillis(drawStarted)
	sess.Status = models.ParseDraftStatus(status)
	sess.RunID = sqlutil.UUIDPtr(runID)
	sess.CreatedAt = fromMillis(created)
	sess.UpdatedAt = fromMillis(updated)
	sess.RunShareCode = sqlutil.Ptr(shareCode)
	return &sess, nil
}

func (t *sqlTx) UpdateSession(ctx context.Context, sess *models.DraftSession) error {
	lineup, err := encodeJSON(sess.Lineup, "lineup")
	if err != nil {
		return err
	}
	chosen, err := encodeJSON(nonNil(sess.ChosenPlayers), "chosen_players")
	if err != nil {
		return err
	}

	res, err := t.tx.ExecContext(ctx, t.dialect.rebind(`
		UPDATE draft_sessions
		SET current_draw_index = ?, lineup = ?, chosen_players = ?, draw_started_at = ?,
		    status = ?, run_id = ?, updated_at = ?
		WHERE id = ?`),
		sess.CurrentDrawIndex, lineup, chosen, toMillis(sess.DrawStartedAt),
		string(sess.Status), sqlutil.NullUUID(sess.RunID), toMillis(sess.UpdatedAt), sess.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.NotFound("session", sess.ID.String())
	}
	return nil
}

func (t *sqlTx) ShareCodeExists(ctx context.Context, code string) (bool, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, t.dialect.rebind(`SELECT COUNT(*) FROM runs WHERE share_code = ?`), code).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check share code: %w", err)
	}
	return n > 0, nil
}

func (t *sqlTx) InsertRun(ctx context.Context, run *models.Run) error {
	// DO NOTHING keeps the transaction usable when the code is taken.
	res, err := t.tx.ExecContext(ctx, t.dialect.rebind(`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (share_code) DO NOTHING`),
		run.ID, run.ShareCode, sqlutil.Null(run.GroupCode), sqlutil.Null(run.Seed),
		run.TeamScore, run.UsedFallbackStats, toMillis(run.CreatedAt),
	)
	if err != nil {
		if t.dialect.isUnique(err) {
			return fmt.Errorf("insert run %s: %w", run.ShareCode, ErrDuplicateShareCode)
		}
		return fmt.Errorf("failed to insert run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("insert run %s: %w", run.ShareCode, ErrDuplicateShareCode)
	}

	insertPick := t.dialect.rebind(`INSERT INTO run_picks (` + pickColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, p := range run.Picks {
		seasons := pqtype.NullRawMessage{}
		if p.SeasonsUsed != nil {
			raw, err := json.Marshal(p.SeasonsUsed)
			if err != nil {
				return fmt.Errorf("failed to marshal seasons_used: %w", err)
			}
			seasons = pqtype.NullRawMessage{RawMessage: raw, Valid: true}
		}
		_, err := t.tx.ExecContext(ctx, insertPick,
			run.ID, string(p.Slot), p.PlayerName, p.TeamAbbr, p.TeamName,
			p.Stats.BPM, p.Stats.WS48, p.Stats.VORP, p.Stats.EPM,
			p.NormalizedMetrics.BPM, p.NormalizedMetrics.WS48, p.NormalizedMetrics.VORP, p.NormalizedMetrics.EPM,
			p.Contribution, p.UsedFallback, p.IsPenalty, seasons,
		)
		if err != nil {
			return fmt.Errorf("failed to insert run pick %s: %w", p.Slot, err)
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
