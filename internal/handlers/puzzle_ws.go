package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/andrsk/aquarium-server/internal/aquarium"
)

type solveSummary struct {
	Solved bool                 `json:"solved"`
	Moves  int                  `json:"moves"`
	States []aquarium.CellState `json:"states"`
}

// ConnectWS upgrades the connection, runs the solver and streams one
// frame per move as it fires, followed by a summary frame. The solved
// state is persisted before the socket closes.
func (h PuzzleHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, board := h.fetchSession(w, r)
	if session == nil {
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade", "error", err)
		return
	}
	defer c.Close()

	var writeErr error
	moves := board.Solve(func(m aquarium.Move) {
		if writeErr != nil {
			return
		}
		writeErr = c.WriteJSON(m)
	})
	if writeErr != nil {
		h.logger.Warn("ws client left mid-solve", "error", writeErr)
	}

	// persist regardless of whether the client is still listening; the
	// solve has already happened
	if _, err := h.persistBoard(r.Context(), session, board, len(moves)); err != nil {
		h.logger.Error("unable to persist board", "error", err)
		return
	}

	if writeErr == nil {
		err = c.WriteJSON(solveSummary{
			Solved: board.IsSolved(),
			Moves:  len(moves),
			States: board.States(),
		})
		if err != nil {
			h.logger.Error("unable to write summary frame", "error", err)
			return
		}
		c.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
	}
}
