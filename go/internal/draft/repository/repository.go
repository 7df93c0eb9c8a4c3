// Package repository persists draft sessions and finished runs.
package repository

import (
	"context"
	"errors"

	"github.com/mcdev12/lineupdraft/go/internal/models"
)

// ErrDuplicateShareCode is returned by InsertRun when the code is taken.
var ErrDuplicateShareCode = errors.New("share code already exists")

// Store is the persistence collaborator used by the draft app.
type Store interface {
	CreateSession(ctx context.Context, s *models.DraftSession) error
	// WithinTx runs fn atomically. Sessions loaded through the Tx stay locked
	// until fn returns.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
	GetRunByShareCode(ctx context.Context, code string) (*models.Run, error)
	// ListLeaderboard orders by team score desc, then newest first. A nil
	// groupCode lists every run.
	ListLeaderboard(ctx context.Context, groupCode *string, limit int) ([]models.Run, error)
	Close() error
}

// Tx is the transactional view of a Store.
type Tx interface {
	LockSessionByToken(ctx context.Context, token string) (*models.DraftSession, error)
	UpdateSession(ctx context.Context, s *models.DraftSession) error
	ShareCodeExists(ctx context.Context, code string) (bool, error)
	InsertRun(ctx context.Context, run *models.Run) error
}
