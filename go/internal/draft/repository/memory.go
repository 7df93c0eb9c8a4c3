package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mcdev12/lineupdraft/go/internal/apperr"
	"github.com/mcdev12/lineupdraft/go/internal/models"
)

// MemoryStore keeps everything in process. Transactions are serialized by a
// single mutex and staged until commit.
type MemoryStore struct {
	mu         sync.Mutex
	sessions   map[string]*models.DraftSession
	runs       map[uuid.UUID]*models.Run
	runsByCode map[string]uuid.UUID
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:   make(map[string]*models.DraftSession),
		runs:       make(map[uuid.UUID]*models.Run),
		runsByCode: make(map[string]uuid.UUID),
	}
}

func (m *MemoryStore) CreateSession(_ context.Context, s *models.DraftSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.SessionToken]; ok {
		return fmt.Errorf("session token already exists")
	}
	m.sessions[s.SessionToken] = s.Clone()
	return nil
}

func (m *MemoryStore) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{
		store:    m,
		sessions: make(map[string]*models.DraftSession),
		codes:    make(map[string]bool),
	}
	if err := fn(tx); err != nil {
		return err
	}

	for token, s := range tx.sessions {
		m.sessions[token] = s
	}
	for _, r := range tx.runs {
		m.runs[r.ID] = r
		m.runsByCode[r.ShareCode] = r.ID
	}
	return nil
}

func (m *MemoryStore) GetRunByShareCode(_ context.Context, code string) (*models.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.runsByCode[code]
	if !ok {
		return nil, apperr.NotFound("run", code)
	}
	return cloneRun(m.runs[id]), nil
}

func (m *MemoryStore) ListLeaderboard(_ context.Context, groupCode *string, limit int) ([]models.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	runs := make([]models.Run, 0, len(m.runs))
	for _, r := range m.runs {
		if groupCode != nil && (r.GroupCode == nil || *r.GroupCode != *groupCode) {
			continue
		}
		runs = append(runs, *cloneRun(r))
	}
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].TeamScore != runs[j].TeamScore {
			return runs[i].TeamScore > runs[j].TeamScore
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *MemoryStore) Close() error { return nil }

type memoryTx struct {
	store    *MemoryStore
	sessions map[string]*models.DraftSession
	runs     []*models.Run
	codes    map[string]bool
}

func (t *memoryTx) LockSessionByToken(_ context.Context, token string) (*models.DraftSession, error) {
	s, ok := t.sessions[token]
	if !ok {
		s, ok = t.store.sessions[token]
	}
	if !ok {
		return nil, apperr.NotFound("session", token)
	}

	out := s.Clone()
	out.RunShareCode = nil
	if out.RunID != nil {
		if r := t.findRun(*out.RunID); r != nil {
			code := r.ShareCode
			out.RunShareCode = &code
		}
	}
	return out, nil
}

func (t *memoryTx) findRun(id uuid.UUID) *models.Run {
	for _, r := range t.runs {
		if r.ID == id {
			return r
		}
	}
	return t.store.runs[id]
}

func (t *memoryTx) UpdateSession(_ context.Context, s *models.DraftSession) error {
	if _, ok := t.store.sessions[s.SessionToken]; !ok {
		return apperr.NotFound("session", s.SessionToken)
	}
	t.sessions[s.SessionToken] = s.Clone()
	return nil
}

func (t *memoryTx) ShareCodeExists(_ context.Context, code string) (bool, error) {
	_, ok := t.store.runsByCode[code]
	return ok || t.codes[code], nil
}

func (t *memoryTx) InsertRun(ctx context.Context, run *models.Run) error {
	taken, _ := t.ShareCodeExists(ctx, run.ShareCode)
	if taken {
		return fmt.Errorf("insert run %s: %w", run.ShareCode, ErrDuplicateShareCode)
	}
	t.codes[run.ShareCode] = true
	t.runs = append(t.runs, cloneRun(run))
	return nil
}

func cloneRun(r *models.Run) *models.Run {
	out := *r
	out.Picks = make([]models.RunPick, len(r.Picks))
	for i, p := range r.Picks {
		if p.SeasonsUsed != nil {
			p.SeasonsUsed = append([]string(nil), p.SeasonsUsed...)
		}
		out.Picks[i] = p
	}
	models.SortPicksBySlot(out.Picks)
	return &out
}
