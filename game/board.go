package game

import "strings"

// Size is the edge length of the Othello board.
const Size = 8

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Board is the 8x8 grid of cells. It is a value type: operations that
// change the grid return a modified copy, never mutate in place.
type Board [Size][Size]Cell

// NewBoard returns the standard opening position: white on d4 and e5,
// black on e4 and d5 (0-indexed: (3,3)=White, (3,4)=Black, (4,3)=Black,
// (4,4)=White).
func NewBoard() Board {
	var b Board
	b[3][3] = White
	b[3][4] = Black
	b[4][3] = Black
	b[4][4] = White
	return b
}

// Cell returns the content of the square at (row, col).
func (b Board) Cell(row, col int) Cell {
	return b[row][col]
}

// flipsAlong counts the opponent discs that a disc of side placed at
// (row, col) would flip in direction (dr, dc). The run qualifies only
// when it is bounded by a disc of side; otherwise the count is 0.
func (b Board) flipsAlong(row, col int, side Cell, dr, dc int) int {
	opponent := side.Opponent()
	count := 0
	r, c := row+dr, col+dc
	for r >= 0 && r < Size && c >= 0 && c < Size && b[r][c] == opponent {
		count++
		r += dr
		c += dc
	}
	if count == 0 || r < 0 || r >= Size || c < 0 || c >= Size || b[r][c] != side {
		return 0
	}
	return count
}

// isLegal reports whether side may place a disc at (row, col).
func (b Board) isLegal(row, col int, side Cell) bool {
	if b[row][col] != Empty {
		return false
	}
	for _, d := range directions {
		if b.flipsAlong(row, col, side, d[0], d[1]) > 0 {
			return true
		}
	}
	return false
}

// LegalMoves returns every legal move for side in row-major order. The
// ordering is stable and is relied on for deterministic tie-breaking.
func (b Board) LegalMoves(side Cell) []Move {
	var moves []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.isLegal(row, col, side) {
				moves = append(moves, Move{Row: row, Col: col, Side: side})
			}
		}
	}
	return moves
}

// HasLegalMove reports whether side has at least one legal move.
func (b Board) HasLegalMove(side Cell) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.isLegal(row, col, side) {
				return true
			}
		}
	}
	return false
}

// apply places the move's disc and flips every qualifying run. It
// returns the new board and the number of flipped discs.
func (b Board) apply(mv Move) (Board, int, error) {
	if mv.Row < 0 || mv.Row >= Size || mv.Col < 0 || mv.Col >= Size {
		return b, 0, &IllegalMoveError{Move: mv, Reason: "out of bounds"}
	}
	if b[mv.Row][mv.Col] != Empty {
		return b, 0, &IllegalMoveError{Move: mv, Reason: "square occupied"}
	}

	flipped := 0
	next := b
	for _, d := range directions {
		run := b.flipsAlong(mv.Row, mv.Col, mv.Side, d[0], d[1])
		for i := 1; i <= run; i++ {
			next[mv.Row+i*d[0]][mv.Col+i*d[1]] = mv.Side
		}
		flipped += run
	}
	if flipped == 0 {
		return b, 0, &IllegalMoveError{Move: mv, Reason: "flips no opponent disc"}
	}
	next[mv.Row][mv.Col] = mv.Side
	return next, flipped, nil
}

// Scores returns the disc counts for black and white.
func (b Board) Scores() (black, white int) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			switch b[row][col] {
			case Black:
				black++
			case White:
				white++
			}
		}
	}
	return black, white
}

// Full reports whether every square is occupied.
func (b Board) Full() bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b[row][col] == Empty {
				return false
			}
		}
	}
	return true
}

func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for row := 0; row < Size; row++ {
		sb.WriteByte(byte('1' + row))
		for col := 0; col < Size; col++ {
			sb.WriteByte(' ')
			switch b[row][col] {
			case Black:
				sb.WriteByte('x')
			case White:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
