package aquarium

// CellState is the solving status of a single cell.
//
// A cell starts Empty and may move to exactly one of the two terminal
// states: Flooded (holds water, counts toward hints) or Invalid (can
// never hold water). No other transition is legal; [Board.Flood] and
// [Board.Invalidate] are the only mutators the solver uses.
type CellState int8

const (
	Empty CellState = iota
	Flooded
	Invalid
)

func (s CellState) String() string {
	switch s {
	case Flooded:
		return "*"
	case Invalid:
		return "X"
	default:
		return " "
	}
}

// Cell belongs to exactly one aquarium region for its whole lifetime.
type Cell struct {
	State  CellState
	Region int
}
