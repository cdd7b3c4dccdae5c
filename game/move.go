package game

import "fmt"

// Move places a disc of Side on the (Row, Col) square. Coordinates are
// 0-indexed with (0,0) at the top-left corner.
type Move struct {
	Row  int
	Col  int
	Side Cell
}

// Notation renders the target square in board notation: column letter
// a-h followed by the 1-based row number, e.g. (2,3) -> "d3".
func (m Move) Notation() string {
	return fmt.Sprintf("%c%d", 'a'+rune(m.Col), m.Row+1)
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s", m.Side, m.Notation())
}

// ParseSquare converts board notation back into 0-indexed coordinates.
// It accepts "a1" through "h8" and reports failure for anything else.
func ParseSquare(s string) (row, col int, ok bool) {
	if len(s) != 2 {
		return 0, 0, false
	}
	col = int(s[0] - 'a')
	row = int(s[1] - '1')
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return 0, 0, false
	}
	return row, col, true
}

// IllegalMoveError reports an attempt to apply a move outside the legal
// set for the current position.
type IllegalMoveError struct {
	Move   Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}
