package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/andrsk/aquarium-server/internal/aquarium"
	"github.com/andrsk/aquarium-server/internal/repository"
)

// CreatePuzzleDTO is the construction input: dimensions, hints and the
// partitioning, given either as explicit region ids or as wall/floor
// separator flags. Region ids win when both are present.
type CreatePuzzleDTO struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	RowHints []int  `json:"row_hints"`
	ColHints []int  `json:"col_hints"`
	Regions  []int  `json:"regions,omitempty"`
	Walls    []bool `json:"walls,omitempty"`
	Floors   []bool `json:"floors,omitempty"`
}

// Board builds the aquarium board this DTO describes.
func (dto CreatePuzzleDTO) Board() (*aquarium.Board, error) {
	if dto.Regions != nil {
		return aquarium.NewBoard(
			dto.Width, dto.Height, dto.Regions, dto.RowHints, dto.ColHints,
		)
	}
	if dto.Walls != nil || dto.Floors != nil {
		return aquarium.NewBoardFromSeparators(
			dto.Width, dto.Height, dto.Walls, dto.Floors, dto.RowHints, dto.ColHints,
		)
	}
	return nil, fmt.Errorf("either regions or walls+floors must be given")
}

type RenderDTO struct {
	ShowRegions bool `schema:"regions"`
}

func ParseRenderDTO(src map[string][]string) (RenderDTO, error) {
	var dto RenderDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type PuzzleSessionDTO struct {
	PuzzleSessionId string               `json:"puzzle_session_id"`
	Width           int                  `json:"width"`
	Height          int                  `json:"height"`
	RowHints        []int                `json:"row_hints"`
	ColHints        []int                `json:"col_hints"`
	Regions         []int                `json:"regions"`
	States          []aquarium.CellState `json:"states"`
	Solved          bool                 `json:"solved"`
	Moves           int                  `json:"moves"`
	CreatedAt       int64                `json:"created_at"`
	SolvedAt        *int64               `json:"solved_at,omitempty"`
}

func timestampMilli(t pgtype.Timestamptz) *int64 {
	if !t.Valid {
		return nil
	}
	ms := t.Time.UnixMilli()
	return &ms
}

func NewPuzzleSessionDTO(
	session *repository.PuzzleSession, b *aquarium.Board,
) *PuzzleSessionDTO {
	var createdAt int64
	if ms := timestampMilli(session.CreatedAt); ms != nil {
		createdAt = *ms
	}
	return &PuzzleSessionDTO{
		PuzzleSessionId: strconv.FormatInt(session.PuzzleSessionId, 10),
		Width:           b.Width(),
		Height:          b.Height(),
		RowHints:        b.RowHints(),
		ColHints:        b.ColHints(),
		Regions:         b.Regions(),
		States:          b.States(),
		Solved:          session.Solved,
		Moves:           session.Moves,
		CreatedAt:       createdAt,
		SolvedAt:        timestampMilli(session.SolvedAt),
	}
}

// PuzzleSessionSummaryDTO is the listing shape: no grid payload.
type PuzzleSessionSummaryDTO struct {
	PuzzleSessionId string `json:"puzzle_session_id"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Solved          bool   `json:"solved"`
	Moves           int    `json:"moves"`
	CreatedAt       int64  `json:"created_at"`
	SolvedAt        *int64 `json:"solved_at,omitempty"`
}

func NewPuzzleSessionSummaryDTO(session *repository.PuzzleSession) *PuzzleSessionSummaryDTO {
	var createdAt int64
	if ms := timestampMilli(session.CreatedAt); ms != nil {
		createdAt = *ms
	}
	return &PuzzleSessionSummaryDTO{
		PuzzleSessionId: strconv.FormatInt(session.PuzzleSessionId, 10),
		Width:           session.Width,
		Height:          session.Height,
		Solved:          session.Solved,
		Moves:           session.Moves,
		CreatedAt:       createdAt,
		SolvedAt:        timestampMilli(session.SolvedAt),
	}
}
