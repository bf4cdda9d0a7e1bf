package aquarium

import "log/slog"

var Log *slog.Logger = slog.Default()

// Rule identifies which deduction fired a move.
type Rule int8

const (
	RowInvalidate Rule = iota + 1 // region too large for the row's remaining budget
	RowFlood                      // row hint unreachable without this region
	ColInvalidate                 // region has more empty cells in the column than the column needs
	ColFlood                      // column hint unreachable without this region
)

func (r Rule) String() string {
	switch r {
	case RowInvalidate:
		return "row_invalidate"
	case RowFlood:
		return "row_flood"
	case ColInvalidate:
		return "col_invalidate"
	case ColFlood:
		return "col_flood"
	default:
		return "?"
	}
}

// Move is one flood or invalidate issued by the solver, anchored at the
// cell the rule fired on.
type Move struct {
	Rule Rule `json:"rule"`
	X    int  `json:"x"`
	Y    int  `json:"y"`
}

// Solve runs local-consistency propagation until quiescence: rounds of
// row invalidation, row flooding and the two column rules, stopping
// when a full round decides no cell. Hints that require guessing leave
// cells Empty; that is expected, not an error.
//
// Every applied move is passed to observe (if non-nil) as it happens
// and collected into the returned slice. Since each recorded move
// decides at least one cell and cells never revert, at most
// width*height moves can ever fire.
func (b *Board) Solve(observe func(Move)) []Move {
	var moves []Move
	record := func(m Move) {
		Log.Debug("solver move",
			slog.String("rule", m.Rule.String()),
			slog.Int("x", m.X),
			slog.Int("y", m.Y),
		)
		moves = append(moves, m)
		if observe != nil {
			observe(m)
		}
	}

	for {
		before := len(moves)
		b.invalidateRows(record)
		b.floodRows(record)
		b.applyColumnRules(record)
		if len(moves) == before {
			break
		}
	}

	return moves
}

// rowRegionSizes counts how many cells of each region sit in row y.
func (b *Board) rowRegionSizes(y int) map[int]int {
	sizes := make(map[int]int)
	for x := range b.width {
		sizes[b.cells[y*b.width+x].Region]++
	}
	return sizes
}

// rowRegionStates maps each region present in row y to its state in
// that row. All cells of one region in one row share a state, so the
// first cell seen speaks for the region.
func (b *Board) rowRegionStates(y int) map[int]CellState {
	states := make(map[int]CellState)
	for x := range b.width {
		c := b.cells[y*b.width+x]
		if _, ok := states[c.Region]; !ok {
			states[c.Region] = c.State
		}
	}
	return states
}

// rowStateTotals sums region sizes grouped by the state each region
// holds in the row.
func rowStateTotals(sizes map[int]int, states map[int]CellState) map[CellState]int {
	totals := make(map[CellState]int)
	for region, state := range states {
		totals[state] += sizes[region]
	}
	return totals
}

// invalidateRows works bottom-up: a region whose share of a row exceeds
// what the row hint still allows can never be flooded there.
func (b *Board) invalidateRows(record func(Move)) {
	for y := b.height - 1; y >= 0; y-- {
		sizes := b.rowRegionSizes(y)
		totals := rowStateTotals(sizes, b.rowRegionStates(y))
		remaining := b.rowHints[y] - totals[Flooded]

		for x := range b.width {
			c := b.cells[y*b.width+x]
			if c.State != Empty {
				continue
			}
			if sizes[c.Region] > remaining {
				if b.Invalidate(x, y) > 0 {
					record(Move{RowInvalidate, x, y})
				}
			}
		}
	}
}

// floodRows works top-down: if flooding every other empty region
// in the row still cannot meet the hint, this region must be flooded.
func (b *Board) floodRows(record func(Move)) {
	for y := range b.height {
		sizes := b.rowRegionSizes(y)
		totals := rowStateTotals(sizes, b.rowRegionStates(y))
		remaining := b.rowHints[y] - totals[Flooded]

		for x := range b.width {
			c := b.cells[y*b.width+x]
			if c.State != Empty {
				continue
			}
			if totals[Empty]-sizes[c.Region] < remaining {
				if b.Flood(x, y) > 0 {
					record(Move{RowFlood, x, y})
				}
			}
		}
	}
}

// columnRegion aggregates one region's presence in one column.
type columnRegion struct {
	rows    []int // rows of the column holding this region, ascending
	empty   int
	invalid int
}

// columnView gathers per-region aggregates for column x. Scanning y
// upward to downward keeps every rows list sorted ascending, which the
// column rules rely on when they index into it.
func (b *Board) columnView(x int) (order []int, regions map[int]*columnRegion, flooded int) {
	regions = make(map[int]*columnRegion)
	for y := range b.height {
		c := b.cells[y*b.width+x]
		reg, ok := regions[c.Region]
		if !ok {
			reg = &columnRegion{}
			regions[c.Region] = reg
			order = append(order, c.Region)
		}
		reg.rows = append(reg.rows, y)
		switch c.State {
		case Empty:
			reg.empty++
		case Invalid:
			reg.invalid++
		case Flooded:
			flooded++
		}
	}
	return order, regions, flooded
}

// applyColumnRules runs the column invalidate and flood deductions on
// every column.
//
// Within a region's rows list the invalid cells form a prefix and the
// flooded cells a suffix, so the empty cells occupy indices
// [invalid, invalid+empty). The invalidate rule marks down to the last
// row that cannot hold water; the flood rule fills up from the bottom
// of the empty range by however many cells the column cannot find
// elsewhere. Invalidate and Flood then spread the decision across the
// region's other columns.
func (b *Board) applyColumnRules(record func(Move)) {
	for x := range b.width {
		order, regions, flooded := b.columnView(x)
		remainder := b.colHints[x] - flooded

		totalEmpty := 0
		for _, reg := range regions {
			totalEmpty += reg.empty
		}

		for _, id := range order {
			reg := regions[id]

			// even with every other cell counted, this region holds
			// `extra` empty cells too many; the topmost `extra` of them
			// can never be flooded.
			if extra := reg.empty - remainder; extra > 0 && extra <= reg.empty {
				y := reg.rows[reg.invalid+extra-1]
				if b.Invalidate(x, y) > 0 {
					record(Move{ColInvalidate, x, y})
				}
			}

			// flooding every empty cell of every other region still
			// leaves a shortfall this region must cover, counted upward
			// from the bottom of its empty range.
			otherEmpty := totalEmpty - reg.empty
			if required := remainder - otherEmpty; required > 0 && required <= reg.empty {
				y := reg.rows[reg.invalid+reg.empty-required]
				if b.Flood(x, y) > 0 {
					record(Move{ColFlood, x, y})
				}
			}
		}
	}
}
