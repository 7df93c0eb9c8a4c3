package draft

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/lineupdraft/go/internal/apperr"
	"github.com/mcdev12/lineupdraft/go/internal/models"
)

const maxRequestBody = 16 << 10

// DraftApp defines what the service layer needs from the draft application
type DraftApp interface {
	CreateSession(ctx context.Context, groupCode, seed *string) (*models.DraftSession, error)
	GetView(ctx context.Context, token string) (*DraftView, error)
	SubmitPick(ctx context.Context, token, playerName, rawSlot string) (*PickResult, error)
	GetRunByShareCode(ctx context.Context, code string) (*models.Run, error)
	ListLeaderboard(ctx context.Context, groupCode *string) ([]models.Run, error)
	Teams() []models.Team
	Roster(abbr string) ([]models.RosterPlayer, error)
	ShotClock() time.Duration
}

// Service exposes the draft app as a JSON HTTP API.
type Service struct {
	app DraftApp
}

// NewService creates a new draft HTTP service
func NewService(app DraftApp) *Service {
	return &Service{app: app}
}

var _ DraftApp = (*App)(nil)

// Routes returns the API router. Mount it under /api.
func (s *Service) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/sessions", s.CreateSession)
	r.Get("/sessions/{token}", s.GetSession)
	r.Post("/sessions/{token}/picks", s.SubmitPick)
	r.Get("/runs/{code}", s.GetRun)
	r.Get("/leaderboard", s.Leaderboard)
	r.Get("/teams", s.ListTeams)
	r.Get("/teams/{abbr}/roster", s.TeamRoster)
	return r
}

type createSessionRequest struct {
	GroupCode *string `json:"groupCode"`
	Seed      *string `json:"seed"`
}

type createSessionResponse struct {
	SessionID         uuid.UUID `json:"sessionId"`
	SessionToken      string    `json:"sessionToken"`
	DrawSequence      []string  `json:"drawSequence"`
	ShotClockSeconds  int       `json:"shotClockSeconds"`
	ShotClockDeadline time.Time `json:"shotClockDeadline"`
}

type submitPickRequest struct {
	PlayerName string `json:"playerName"`
	Slot       string `json:"slot"`
}

type leaderboardResponse struct {
	Runs []models.Run `json:"runs"`
}

type teamsResponse struct {
	Teams []models.Team `json:"teams"`
}

type rosterResponse struct {
	TeamAbbr string                `json:"teamAbbr"`
	Players  []models.RosterPlayer `json:"players"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateSession starts a new draft. An empty body is allowed.
func (s *Service) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := s.app.CreateSession(r.Context(), req.GroupCode, req.Seed)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID:         sess.ID,
		SessionToken:      sess.SessionToken,
		DrawSequence:      sess.DrawSequence,
		ShotClockSeconds:  int(s.app.ShotClock() / time.Second),
		ShotClockDeadline: sess.DrawStartedAt.Add(s.app.ShotClock()),
	})
}

// GetSession returns the current view of a session.
func (s *Service) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.app.GetView(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SubmitPick locks a player for the team on the clock.
func (s *Service) SubmitPick(w http.ResponseWriter, r *http.Request) {
	var req submitPickRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.app.SubmitPick(r.Context(), chi.URLParam(r, "token"), req.PlayerName, req.Slot)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Service) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.app.GetRunByShareCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// Leaderboard lists the best runs. ?group= narrows it to one group code.
func (s *Service) Leaderboard(w http.ResponseWriter, r *http.Request) {
	var group *string
	if g := strings.TrimSpace(r.URL.Query().Get("group")); g != "" {
		group = &g
	}

	runs, err := s.app.ListLeaderboard(r.Context(), group)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if runs == nil {
		runs = []models.Run{}
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{Runs: runs})
}

func (s *Service) ListTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, teamsResponse{Teams: s.app.Teams()})
}

func (s *Service) TeamRoster(w http.ResponseWriter, r *http.Request) {
	abbr := strings.ToUpper(chi.URLParam(r, "abbr"))
	players, err := s.app.Roster(abbr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rosterResponse{TeamAbbr: abbr, Players: players})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return apperr.Validation("Request body must be a JSON object.")
	}
	return nil
}

// statusFor maps the apperr kinds onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	case apperr.IsState(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		msg = "Something went wrong. Please try again."
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
