package aquarium

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"slices"
)

// Board is an aquarium puzzle: a width x height grid of cells stored in
// row-major order, one region id per cell, and a required flooded-cell
// count for every row and column. Row indices grow downward, so "below"
// means a higher y.
//
// Region membership is fixed at construction. Walls and floors are not
// stored: two adjacent cells are separated iff their region ids differ.
type Board struct {
	width, height int
	cells         []Cell
	rowHints      []int
	colHints      []int
}

// NewBoard builds an all-Empty board from a region-id array of length
// width*height. Hints must be within the capacity of their line.
func NewBoard(width, height int, regions, rowHints, colHints []int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("board dimensions must be positive, got %dx%d", width, height)
	}
	if len(regions) != width*height {
		return nil, fmt.Errorf("want %d region ids, got %d", width*height, len(regions))
	}
	if len(rowHints) != height {
		return nil, fmt.Errorf("want %d row hints, got %d", height, len(rowHints))
	}
	if len(colHints) != width {
		return nil, fmt.Errorf("want %d column hints, got %d", width, len(colHints))
	}
	for y, hint := range rowHints {
		if hint < 0 || hint > width {
			return nil, fmt.Errorf("row %d hint %d outside 0..%d", y, hint, width)
		}
	}
	for x, hint := range colHints {
		if hint < 0 || hint > height {
			return nil, fmt.Errorf("column %d hint %d outside 0..%d", x, hint, height)
		}
	}

	cells := make([]Cell, width*height)
	for i, region := range regions {
		cells[i] = Cell{State: Empty, Region: region}
	}

	return &Board{
		width:    width,
		height:   height,
		cells:    cells,
		rowHints: slices.Clone(rowHints),
		colHints: slices.Clone(colHints),
	}, nil
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) RowHint(y int) int {
	assertf(0 <= y && y < b.height, "row %d outside 0..%d", y, b.height-1)
	return b.rowHints[y]
}

func (b *Board) ColHint(x int) int {
	assertf(0 <= x && x < b.width, "column %d outside 0..%d", x, b.width-1)
	return b.colHints[x]
}

// panics [AssertionError]
func (b *Board) index(x, y int) int {
	assertf(0 <= x && x < b.width && 0 <= y && y < b.height,
		"cell (%d, %d) outside %dx%d board", x, y, b.width, b.height)
	return y*b.width + x
}

func (b *Board) CellAt(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

func (b *Board) StateAt(x, y int) CellState {
	return b.cells[b.index(x, y)].State
}

func (b *Board) RegionAt(x, y int) int {
	return b.cells[b.index(x, y)].Region
}

// SetState writes one cell directly, with no region-wide propagation.
// It exists for construction and test fixtures; solving goes through
// Flood and Invalidate only.
func (b *Board) SetState(x, y int, state CellState) {
	b.cells[b.index(x, y)].State = state
}

// HasWall reports whether a wall separates (x, y) from (x+1, y).
func (b *Board) HasWall(x, y int) bool {
	assertf(x+1 < b.width, "no wall slot right of column %d on a %d-wide board", x, b.width)
	return b.RegionAt(x, y) != b.RegionAt(x+1, y)
}

// HasFloor reports whether a floor separates (x, y) from (x, y+1).
func (b *Board) HasFloor(x, y int) bool {
	assertf(y+1 < b.height, "no floor slot below row %d on a %d-tall board", y, b.height)
	return b.RegionAt(x, y) != b.RegionAt(x, y+1)
}

// Flood marks Flooded every still-Empty cell that shares a region with
// (x, y) and sits in row y or below. Water settles downward, so a known
// flooded cell drags the rest of its region under it along. Returns the
// number of cells actually changed; decided cells are left alone.
func (b *Board) Flood(x, y int) int {
	region := b.RegionAt(x, y)
	changed := 0
	for yy := y; yy < b.height; yy++ {
		for xx := range b.width {
			c := &b.cells[yy*b.width+xx]
			if c.Region == region && c.State == Empty {
				c.State = Flooded
				changed++
			}
		}
	}
	return changed
}

// Invalidate marks Invalid every still-Empty cell that shares a region
// with (x, y) and sits in row y or above. An air pocket cannot have
// water hanging over it. Returns the number of cells actually changed.
func (b *Board) Invalidate(x, y int) int {
	region := b.RegionAt(x, y)
	changed := 0
	for yy := 0; yy <= y; yy++ {
		for xx := range b.width {
			c := &b.cells[yy*b.width+xx]
			if c.Region == region && c.State == Empty {
				c.State = Invalid
				changed++
			}
		}
	}
	return changed
}

func (b *Board) FloodedInRow(y int) int {
	assertf(0 <= y && y < b.height, "row %d outside 0..%d", y, b.height-1)
	count := 0
	for x := range b.width {
		if b.cells[y*b.width+x].State == Flooded {
			count++
		}
	}
	return count
}

func (b *Board) FloodedInCol(x int) int {
	assertf(0 <= x && x < b.width, "column %d outside 0..%d", x, b.width-1)
	count := 0
	for y := range b.height {
		if b.cells[y*b.width+x].State == Flooded {
			count++
		}
	}
	return count
}

// RowRemainder is how many more cells row y still needs flooded.
func (b *Board) RowRemainder(y int) int {
	return b.RowHint(y) - b.FloodedInRow(y)
}

// ColRemainder is how many more cells column x still needs flooded.
func (b *Board) ColRemainder(x int) int {
	return b.ColHint(x) - b.FloodedInCol(x)
}

// IsSolved reports whether every row and column holds exactly as many
// flooded cells as its hint demands. Read-only; callable mid-solve.
func (b *Board) IsSolved() bool {
	for y := range b.height {
		if b.FloodedInRow(y) != b.rowHints[y] {
			return false
		}
	}
	for x := range b.width {
		if b.FloodedInCol(x) != b.colHints[x] {
			return false
		}
	}
	return true
}

// States returns a copy of all cell states in row-major order.
func (b *Board) States() []CellState {
	states := make([]CellState, len(b.cells))
	for i, c := range b.cells {
		states[i] = c.State
	}
	return states
}

// Regions returns a copy of all region ids in row-major order.
func (b *Board) Regions() []int {
	regions := make([]int, len(b.cells))
	for i, c := range b.cells {
		regions[i] = c.Region
	}
	return regions
}

func (b *Board) RowHints() []int { return slices.Clone(b.rowHints) }
func (b *Board) ColHints() []int { return slices.Clone(b.colHints) }

type boardState struct {
	Width, Height int
	Regions       []int
	States        []CellState
	RowHints      []int
	ColHints      []int
}

// Bytes gob-encodes the board for storage.
func (b *Board) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(boardState{
		Width:    b.width,
		Height:   b.height,
		Regions:  b.Regions(),
		States:   b.States(),
		RowHints: b.rowHints,
		ColHints: b.colHints,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBoard restores a board from [Board.Bytes] output.
func DecodeBoard(buf []byte) (*Board, error) {
	var state boardState
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&state); err != nil {
		return nil, err
	}
	b, err := NewBoard(
		state.Width, state.Height, state.Regions, state.RowHints, state.ColHints,
	)
	if err != nil {
		return nil, err
	}
	if len(state.States) != len(b.cells) {
		return nil, fmt.Errorf("want %d cell states, got %d", len(b.cells), len(state.States))
	}
	for i, s := range state.States {
		b.cells[i].State = s
	}
	return b, nil
}
