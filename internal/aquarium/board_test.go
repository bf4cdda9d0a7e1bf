package aquarium

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 6x6 "Easy ID: 3,095,209" from puzzle-aquarium.com.
var (
	sampleRegions = []int{
		0, 0, 0, 0, 1, 1,
		0, 0, 2, 2, 1, 1,
		3, 0, 3, 2, 4, 5,
		3, 3, 3, 2, 4, 5,
		3, 3, 3, 3, 3, 5,
		3, 3, 5, 5, 5, 5,
	}
	sampleRowHints = []int{2, 4, 3, 2, 1, 4}
	sampleColHints = []int{1, 2, 1, 3, 5, 4}

	sampleSolution = []CellState{
		Invalid, Invalid, Invalid, Invalid, Flooded, Flooded,
		Flooded, Flooded, Invalid, Invalid, Flooded, Flooded,
		Invalid, Flooded, Invalid, Flooded, Flooded, Invalid,
		Invalid, Invalid, Invalid, Flooded, Flooded, Invalid,
		Invalid, Invalid, Invalid, Invalid, Invalid, Flooded,
		Invalid, Invalid, Flooded, Flooded, Flooded, Flooded,
	}
)

func sampleBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoard(6, 6, sampleRegions, sampleRowHints, sampleColHints)
	require.NoError(t, err)
	return b
}

func TestNewBoardValidation(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		regions  []int
		rowHints []int
		colHints []int
	}{
		{"zero width", 0, 2, []int{}, []int{0, 0}, []int{}},
		{"short regions", 2, 2, []int{0, 0, 0}, []int{0, 0}, []int{0, 0}},
		{"short row hints", 2, 2, []int{0, 0, 0, 0}, []int{0}, []int{0, 0}},
		{"short col hints", 2, 2, []int{0, 0, 0, 0}, []int{0, 0}, []int{0}},
		{"negative row hint", 2, 2, []int{0, 0, 0, 0}, []int{-1, 0}, []int{0, 0}},
		{"row hint over width", 2, 2, []int{0, 0, 0, 0}, []int{3, 0}, []int{0, 0}},
		{"col hint over height", 2, 2, []int{0, 0, 0, 0}, []int{0, 0}, []int{0, 3}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewBoard(
				test.width, test.height, test.regions, test.rowHints, test.colHints,
			)
			assert.Error(t, err)
		})
	}
}

func TestAccessors(t *testing.T) {
	b := sampleBoard(t)

	assert.Equal(t, 6, b.Width())
	assert.Equal(t, 6, b.Height())
	assert.Equal(t, 4, b.RowHint(1))
	assert.Equal(t, 5, b.ColHint(4))
	assert.Equal(t, Cell{State: Empty, Region: 2}, b.CellAt(2, 1))
	assert.Equal(t, 3, b.RegionAt(0, 2))
	assert.Equal(t, Empty, b.StateAt(5, 5))

	b.SetState(5, 5, Flooded)
	assert.Equal(t, Flooded, b.StateAt(5, 5))
}

func TestBoundsContract(t *testing.T) {
	b := sampleBoard(t)

	for _, fn := range []func(){
		func() { b.CellAt(6, 0) },
		func() { b.CellAt(0, 6) },
		func() { b.CellAt(-1, 0) },
		func() { b.SetState(0, 7, Flooded) },
		func() { b.HasWall(5, 0) },
		func() { b.HasFloor(0, 5) },
		func() { b.RowHint(6) },
		func() { b.ColHint(-1) },
	} {
		assert.Panics(t, fn)
	}

	// the panic value names the violated contract
	func() {
		defer func() {
			err, ok := recover().(AssertionError)
			require.True(t, ok)
			assert.Contains(t, err.Error(), "outside")
		}()
		b.CellAt(6, 0)
	}()
}

func TestSeparatorQueriesDeriveFromRegions(t *testing.T) {
	b := sampleBoard(t)

	// region 0 spans (3,0)-(4,0) boundary? no: (3,0)=0, (4,0)=1
	assert.True(t, b.HasWall(3, 0))
	assert.False(t, b.HasWall(0, 0))
	assert.True(t, b.HasFloor(2, 1))  // 2 over 3
	assert.False(t, b.HasFloor(0, 0)) // 0 over 0
}

func TestFloodFillsRegionAtAndBelow(t *testing.T) {
	b := sampleBoard(t)

	changed := b.Flood(1, 2) // region 0, anchored mid-region
	assert.Equal(t, 1, changed)
	assert.Equal(t, Flooded, b.StateAt(1, 2))

	// rows above the anchor stay untouched
	assert.Equal(t, Empty, b.StateAt(0, 0))
	assert.Equal(t, Empty, b.StateAt(0, 1))

	changed = b.Flood(0, 0)
	assert.Equal(t, 6, changed) // the 7-cell region minus the one already flooded
	for _, xy := range [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {0, 1}, {1, 1}} {
		assert.Equal(t, Flooded, b.StateAt(xy[0], xy[1]))
	}
}

func TestInvalidateFillsRegionAtAndAbove(t *testing.T) {
	b := sampleBoard(t)

	changed := b.Invalidate(1, 1) // region 0, second row
	assert.Equal(t, 6, changed)
	for _, xy := range [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {0, 1}, {1, 1}} {
		assert.Equal(t, Invalid, b.StateAt(xy[0], xy[1]))
	}
	// same region, lower row: untouched
	assert.Equal(t, Empty, b.StateAt(1, 2))
}

func TestFloodAndInvalidateSkipDecidedCells(t *testing.T) {
	b := sampleBoard(t)

	require.Equal(t, 1, b.Flood(1, 2))
	assert.Equal(t, 0, b.Flood(1, 2))

	// invalidating at the flooded row leaves the flooded cell alone
	changed := b.Invalidate(1, 2)
	assert.Equal(t, 6, changed)
	assert.Equal(t, Flooded, b.StateAt(1, 2))
}

func TestRemainders(t *testing.T) {
	b := sampleBoard(t)

	assert.Equal(t, 2, b.RowRemainder(0))
	assert.Equal(t, 5, b.ColRemainder(4))

	b.Flood(4, 0) // region 1: four cells in rows 0-1, columns 4-5
	assert.Equal(t, 0, b.RowRemainder(0))
	assert.Equal(t, 2, b.RowRemainder(1))
	assert.Equal(t, 3, b.ColRemainder(4))
	assert.Equal(t, 2, b.ColRemainder(5))
}

func TestIsSolved(t *testing.T) {
	b := sampleBoard(t)
	assert.False(t, b.IsSolved())

	for i, state := range sampleSolution {
		b.SetState(i%6, i/6, state)
	}
	assert.True(t, b.IsSolved())

	// flipping any one cell breaks a hint
	b.SetState(4, 0, Invalid)
	assert.False(t, b.IsSolved())
}

func TestBoardGobRoundTrip(t *testing.T) {
	b := sampleBoard(t)
	b.Flood(0, 4)
	b.Invalidate(2, 1)

	buf, err := b.Bytes()
	require.NoError(t, err)

	restored, err := DecodeBoard(buf)
	require.NoError(t, err)

	assert.Equal(t, b.Width(), restored.Width())
	assert.Equal(t, b.Height(), restored.Height())
	assert.Equal(t, b.Regions(), restored.Regions())
	assert.Equal(t, b.States(), restored.States())
	assert.Equal(t, b.RowHints(), restored.RowHints())
	assert.Equal(t, b.ColHints(), restored.ColHints())
}

func TestDecodeBoardRejectsGarbage(t *testing.T) {
	_, err := DecodeBoard([]byte("not a gob stream"))
	assert.Error(t, err)
}
