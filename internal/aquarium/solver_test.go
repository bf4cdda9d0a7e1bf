package aquarium

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	m.Run()
}

// checkPhysics asserts the water-settling invariants: within any row a
// region's cells share one state, and along the rows a region's Invalid
// cells form a prefix from the top while Flooded cells form a suffix
// from the bottom.
func checkPhysics(t *testing.T, b *Board) {
	t.Helper()

	for y := range b.Height() {
		states := make(map[int]CellState)
		for x := range b.Width() {
			c := b.CellAt(x, y)
			if seen, ok := states[c.Region]; ok {
				require.Equal(t, seen, c.State,
					"region %d holds two states in row %d", c.Region, y)
			} else {
				states[c.Region] = c.State
			}
		}
	}

	// per region, the row-state sequence must match Invalid* Empty* Flooded*
	rowStates := make(map[int][]CellState)
	for y := range b.Height() {
		seen := make(map[int]bool)
		for x := range b.Width() {
			c := b.CellAt(x, y)
			if !seen[c.Region] {
				seen[c.Region] = true
				rowStates[c.Region] = append(rowStates[c.Region], c.State)
			}
		}
	}
	for region, states := range rowStates {
		phase := Invalid
		for i, state := range states {
			switch state {
			case Invalid:
				require.Equal(t, Invalid, phase,
					"region %d has an Invalid row below a decided one (row seq index %d)", region, i)
			case Empty:
				require.NotEqual(t, Flooded, phase,
					"region %d has an Empty row below a Flooded one (row seq index %d)", region, i)
				phase = Empty
			case Flooded:
				phase = Flooded
			}
		}
	}
}

func TestSolveSampleBoard(t *testing.T) {
	b := sampleBoard(t)

	moves := b.Solve(nil)

	assert.Equal(t, sampleSolution, b.States())
	assert.True(t, b.IsSolved())
	assert.NotEmpty(t, moves)
	assert.LessOrEqual(t, len(moves), b.Width()*b.Height())
}

func TestSolvePreservesPhysics(t *testing.T) {
	b := sampleBoard(t)
	b.Solve(func(Move) {
		checkPhysics(t, b)
	})
	checkPhysics(t, b)
}

func TestSolveMonotone(t *testing.T) {
	b := sampleBoard(t)

	var before []CellState
	observe := func(Move) {
		if before != nil {
			for i, state := range b.States() {
				if before[i] != Empty {
					require.Equal(t, before[i], state, "cell %d reversed state", i)
				}
			}
		}
		before = b.States()
	}

	b.Solve(observe)
}

func TestSolveIdempotentAtQuiescence(t *testing.T) {
	b := sampleBoard(t)

	b.Solve(nil)
	states := b.States()

	again := b.Solve(nil)
	assert.Empty(t, again)
	assert.Equal(t, states, b.States())
}

func TestSolveObserverSeesEveryMove(t *testing.T) {
	b := sampleBoard(t)

	var observed []Move
	moves := b.Solve(func(m Move) {
		observed = append(observed, m)
	})

	assert.Equal(t, moves, observed)
}

func TestSolveSingleRegionColumn(t *testing.T) {
	// one aquarium covering a 2x2 grid: the bottom row must flood to
	// meet its hint of 2, the top row must stay dry to meet its hint
	// of 0
	b, err := NewBoard(2, 2,
		[]int{0, 0, 0, 0},
		[]int{0, 2},
		[]int{1, 1},
	)
	require.NoError(t, err)

	b.Solve(nil)

	assert.Equal(t, []CellState{Invalid, Invalid, Flooded, Flooded}, b.States())
	assert.True(t, b.IsSolved())
}

func TestSolveAmbiguousBoardStaysEmpty(t *testing.T) {
	// four single-cell aquariums with 1-1 hints admit two solutions;
	// local propagation alone cannot pick one
	b, err := NewBoard(2, 2,
		[]int{0, 1, 2, 3},
		[]int{1, 1},
		[]int{1, 1},
	)
	require.NoError(t, err)

	moves := b.Solve(nil)

	assert.Empty(t, moves)
	assert.Equal(t, []CellState{Empty, Empty, Empty, Empty}, b.States())
	assert.False(t, b.IsSolved())
}

func TestSolveFromSeparatorBoard(t *testing.T) {
	// the sample puzzle expressed as walls and floors must solve the
	// same way as its region-id form
	b := sampleBoard(t)

	walls := make([]bool, (b.Width()-1)*b.Height())
	for y := range b.Height() {
		for x := range b.Width() - 1 {
			walls[y*(b.Width()-1)+x] = b.HasWall(x, y)
		}
	}
	floors := make([]bool, b.Width()*(b.Height()-1))
	for y := range b.Height() - 1 {
		for x := range b.Width() {
			floors[y*b.Width()+x] = b.HasFloor(x, y)
		}
	}

	derived, err := NewBoardFromSeparators(
		b.Width(), b.Height(), walls, floors, sampleRowHints, sampleColHints,
	)
	require.NoError(t, err)

	derived.Solve(nil)

	assert.Equal(t, sampleSolution, derived.States())
	assert.True(t, derived.IsSolved())
}

func TestColumnViewRowsAscend(t *testing.T) {
	b := sampleBoard(t)

	for x := range b.Width() {
		order, regions, _ := b.columnView(x)
		assert.NotEmpty(t, order)
		for _, id := range order {
			rows := regions[id].rows
			for i := 1; i < len(rows); i++ {
				assert.Less(t, rows[i-1], rows[i],
					"column %d region %d rows out of order", x, id)
			}
		}
	}
}
