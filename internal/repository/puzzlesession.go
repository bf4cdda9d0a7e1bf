package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type PuzzleSession struct {
	PuzzleSessionId int64
	PlayerId        *int64
	Width           int
	Height          int
	Solved          bool
	Moves           int
	State           []byte
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
	SolvedAt        pgtype.Timestamptz
}

type CreatePuzzleSessionParams struct {
	PlayerId *int64
	Width    int
	Height   int
	State    []byte
}

func (q *Queries) CreatePuzzleSession(
	ctx context.Context, params CreatePuzzleSessionParams,
) (*PuzzleSession, error) {
	args := pgx.NamedArgs{
		"width":  params.Width,
		"height": params.Height,
		"state":  params.State,
	}
	if params.PlayerId != nil {
		args["player_id"] = *params.PlayerId
	} else {
		args["player_id"] = nil
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO puzzle_session (player_id, width, height, state)
		VALUES (@player_id, @width, @height, @state)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PuzzleSession])
}

func (q *Queries) FetchPuzzleSession(
	ctx context.Context, puzzleSessionId int64,
) (*PuzzleSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM puzzle_session WHERE puzzle_session_id = $1",
		puzzleSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PuzzleSession])
}

type UpdatePuzzleSessionParams struct {
	PuzzleSessionId int64
	State           []byte
	Solved          bool
	Moves           int
	SolvedAt        *time.Time
}

func (q *Queries) UpdatePuzzleSession(
	ctx context.Context, params UpdatePuzzleSessionParams,
) (*PuzzleSession, error) {
	args := pgx.NamedArgs{
		"puzzle_session_id": params.PuzzleSessionId,
		"state":             params.State,
		"solved":            params.Solved,
		"moves":             params.Moves,
	}
	if params.SolvedAt != nil {
		args["solved_at"] = *params.SolvedAt
	} else {
		args["solved_at"] = nil
	}

	rows, _ := q.db.Query(
		ctx,
		`UPDATE puzzle_session
		SET state = @state,
			solved = @solved,
			moves = @moves,
			solved_at = @solved_at,
			updated_at = now()
		WHERE puzzle_session_id = @puzzle_session_id
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PuzzleSession])
}

func (q *Queries) ListPlayerSessions(
	ctx context.Context, playerId int64,
) ([]*PuzzleSession, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT * FROM puzzle_session
		WHERE player_id = $1
		ORDER BY created_at DESC
		LIMIT 50`,
		playerId,
	)
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[PuzzleSession])
}
