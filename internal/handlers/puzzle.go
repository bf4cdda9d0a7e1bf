package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andrsk/aquarium-server/internal/aquarium"
	"github.com/andrsk/aquarium-server/internal/config"
	"github.com/andrsk/aquarium-server/internal/middleware"
	"github.com/andrsk/aquarium-server/internal/repository"
)

type PuzzleHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
}

func NewPuzzleHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
) *PuzzleHandler {
	return &PuzzleHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
	}
}

// Create stores a fresh all-Empty puzzle session built from the posted
// construction input.
func (h PuzzleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreatePuzzleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	board, err := dto.Board()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	state, err := board.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to encode board state", "error", err)
		return
	}

	var playerId *int64
	if claims, ok := middleware.PlayerClaims(r); ok {
		h.logger.Debug("creating player session", "claims", claims)
		playerId = &claims.PlayerId
	} else {
		h.logger.Debug("creating anonymous session")
	}

	session, err := h.repo.CreatePuzzleSession(
		r.Context(), repository.CreatePuzzleSessionParams{
			PlayerId: playerId,
			Width:    board.Width(),
			Height:   board.Height(),
			State:    state,
		},
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create puzzle session", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewPuzzleSessionDTO(session, board))
}

// fetchSession loads a session and its board, replying with an
// appropriate status on failure. Returns nils after writing an error.
func (h PuzzleHandler) fetchSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.PuzzleSession, *aquarium.Board) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil
	}

	session, err := h.repo.FetchPuzzleSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch session from db", "error", err)
		return nil, nil
	}

	board, err := aquarium.DecodeBoard(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid puzzle_session.state", "error", err)
		return nil, nil
	}

	return session, board
}

func (h PuzzleHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, board := h.fetchSession(w, r)
	if session == nil {
		return
	}
	sendJSONOrLog(w, h.logger, NewPuzzleSessionDTO(session, board))
}

// Solve runs propagation to quiescence and persists the result.
func (h PuzzleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	session, board := h.fetchSession(w, r)
	if session == nil {
		return
	}

	moves := board.Solve(nil)
	session, ok := h.persist(w, r, session, board, len(moves))
	if !ok {
		return
	}

	sendJSONOrLog(w, h.logger, NewPuzzleSessionDTO(session, board))
}

// Render replies with the plain-text drawing of the board.
func (h PuzzleHandler) Render(w http.ResponseWriter, r *http.Request) {
	session, board := h.fetchSession(w, r)
	if session == nil {
		return
	}

	dto, err := ParseRenderDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	w.Header().Add("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(board.Render(aquarium.RenderOptions{
		ShowRegions: dto.ShowRegions,
	}))); err != nil {
		h.logger.Error("unable to send rendered board", "error", err)
	}
}

// List returns the logged-in player's recent sessions.
func (h PuzzleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	sessions, err := h.repo.ListPlayerSessions(r.Context(), claims.PlayerId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to list sessions", "error", err)
		return
	}

	dtos := make([]*PuzzleSessionSummaryDTO, 0, len(sessions))
	for _, session := range sessions {
		dtos = append(dtos, NewPuzzleSessionSummaryDTO(session))
	}
	sendJSONOrLog(w, h.logger, dtos)
}

// persistBoard writes the board back to the session row, stamping
// solved_at the first time the hints come out satisfied.
func (h PuzzleHandler) persistBoard(
	ctx context.Context,
	session *repository.PuzzleSession,
	board *aquarium.Board,
	moves int,
) (*repository.PuzzleSession, error) {
	state, err := board.Bytes()
	if err != nil {
		return nil, fmt.Errorf("unable to encode board state: %w", err)
	}

	solved := board.IsSolved()
	var solvedAt *time.Time
	if session.SolvedAt.Valid {
		solvedAt = &session.SolvedAt.Time
	} else if solved {
		now := time.Now().UTC()
		solvedAt = &now
	}

	updated, err := h.repo.UpdatePuzzleSession(
		ctx, repository.UpdatePuzzleSessionParams{
			PuzzleSessionId: session.PuzzleSessionId,
			State:           state,
			Solved:          solved,
			Moves:           session.Moves + moves,
			SolvedAt:        solvedAt,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("unable to update session in db: %w", err)
	}

	return updated, nil
}

// persist is persistBoard with HTTP error reporting. Reports false
// after replying with an error.
func (h PuzzleHandler) persist(
	w http.ResponseWriter,
	r *http.Request,
	session *repository.PuzzleSession,
	board *aquarium.Board,
	moves int,
) (*repository.PuzzleSession, bool) {
	updated, err := h.persistBoard(r.Context(), session, board, moves)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to persist board", "error", err)
		return nil, false
	}
	return updated, true
}
