package aquarium

import (
	"fmt"
	"strings"
)

// RenderOptions controls the ASCII rendering of a board.
type RenderOptions struct {
	// ShowRegions prints each cell's region id next to its state glyph.
	ShowRegions bool
}

const (
	cellGlyphWidth = 3
	leftMargin     = "   "
)

func cellGlyph(c Cell, showRegions bool) string {
	if showRegions {
		return fmt.Sprintf("%s%2d", c.State, c.Region)
	}
	return c.State.String() + "  "
}

// Render draws the board as text: column hints on top, row hints on the
// left, live remainders (hint minus flooded count) on the right and
// bottom. Walls and floors print as '#', open cell boundaries as '|'
// and '-'. Cell glyphs: ' ' empty, '*' flooded, 'X' invalid.
func (b *Board) Render(opts RenderOptions) string {
	var sb strings.Builder

	bounds := strings.Repeat("#", 1+(cellGlyphWidth+1)*b.width)

	sb.WriteString(leftMargin + " ")
	for x := range b.width {
		fmt.Fprintf(&sb, "%2d  ", b.colHints[x])
	}
	sb.WriteByte('\n')
	sb.WriteString(leftMargin + bounds + "\n")

	for y := range b.height {
		fmt.Fprintf(&sb, "%2d #", b.rowHints[y])
		for x := range b.width {
			sb.WriteString(cellGlyph(b.CellAt(x, y), opts.ShowRegions))
			if x+1 != b.width {
				if b.HasWall(x, y) {
					sb.WriteByte('#')
				} else {
					sb.WriteByte('|')
				}
			}
		}
		fmt.Fprintf(&sb, "# %2d\n", b.RowRemainder(y))

		if y+1 != b.height {
			b.renderFloorRow(&sb, y)
		}
	}

	sb.WriteString(leftMargin + bounds + "\n")
	sb.WriteString(leftMargin + " ")
	for x := range b.width {
		fmt.Fprintf(&sb, "%2d  ", b.ColRemainder(x))
	}
	sb.WriteByte('\n')

	return sb.String()
}

// renderFloorRow draws the separator line between rows y and y+1. The
// junction after each cell prints as '#' when at least two of its four
// incident boundaries are closed, '+' otherwise.
func (b *Board) renderFloorRow(sb *strings.Builder, y int) {
	sb.WriteString(leftMargin + "#")
	for x := range b.width {
		floor := b.HasFloor(x, y)
		if floor {
			sb.WriteString(strings.Repeat("#", cellGlyphWidth))
		} else {
			sb.WriteString(strings.Repeat("-", cellGlyphWidth))
		}

		up := x+1 == b.width || b.HasWall(x, y)
		right := x+1 == b.width || b.HasFloor(x+1, y)
		down := x+1 == b.width || b.HasWall(x, y+1)

		closed := 0
		for _, v := range []bool{up, floor, right, down} {
			if v {
				closed++
			}
		}
		if closed >= 2 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('+')
		}
	}
	sb.WriteByte('\n')
}
