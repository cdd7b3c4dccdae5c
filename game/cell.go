package game

// Cell is the content of one board square.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

// Opponent returns the other color. Calling it on Empty returns Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}
