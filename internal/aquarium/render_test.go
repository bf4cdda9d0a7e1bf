package aquarium

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoColumnBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoard(2, 2,
		[]int{0, 1, 0, 1},
		[]int{1, 1},
		[]int{2, 0},
	)
	require.NoError(t, err)
	return b
}

func TestRenderEmptyBoard(t *testing.T) {
	b := twoColumnBoard(t)

	want := strings.Join([]string{
		"     2   0  ",
		"   #########",
		" 1 #   #   #  1",
		"   #---#---#",
		" 1 #   #   #  1",
		"   #########",
		"     2   0  ",
		"",
	}, "\n")

	assert.Equal(t, want, b.Render(RenderOptions{}))
}

func TestRenderDecidedBoard(t *testing.T) {
	b := twoColumnBoard(t)
	b.Flood(0, 0)
	b.Invalidate(1, 1)

	want := strings.Join([]string{
		"     2   0  ",
		"   #########",
		" 1 #*  #X  #  0",
		"   #---#---#",
		" 1 #*  #X  #  0",
		"   #########",
		"     0   0  ",
		"",
	}, "\n")

	assert.Equal(t, want, b.Render(RenderOptions{}))
}

func TestRenderShowRegions(t *testing.T) {
	b := twoColumnBoard(t)
	b.Flood(0, 0)

	got := b.Render(RenderOptions{ShowRegions: true})
	assert.Contains(t, got, " 1 #* 0#  1#  0")
}

func TestRenderSampleBoardSeparators(t *testing.T) {
	b := sampleBoard(t)
	got := b.Render(RenderOptions{})

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 16) // hints, bounds, 6 cell rows, 5 floor rows, bounds, remainders, trailing newline

	assert.Equal(t, "     1   2   1   3   5   4  ", lines[0])
	// wall between regions 0 and 1 after column 3 of the top row
	assert.Equal(t, " 2 #   |   |   |   #   |   #  2", lines[2])
	// region 2 pokes into row 1 between walls
	assert.Equal(t, " 4 #   |   #   |   #   |   #  4", lines[4])
}
