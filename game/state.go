package game

import "errors"

// ErrTerminalState is returned when a move is requested for a position
// where the game is already over.
var ErrTerminalState = errors.New("game is over: no move to select")

// StateKey is a canonical fingerprint of (board layout, side to move):
// one side character ('B' or 'W') followed by 64 cell characters, '0'
// empty, '1' black, '2' white, in row-major order. Two states with the
// same layout and side to move always map to the same key. Symmetric
// positions (rotations, reflections) are deliberately not collapsed.
type StateKey string

// State is a full game position: the board, the side to move, the
// ordered history of moves played, and the terminal flag. States are
// immutable; Play returns a new State and never mutates the receiver.
type State struct {
	board    Board
	side     Cell
	history  []Move
	passes   int
	terminal bool
}

// NewState returns the starting position with Black to move.
func NewState() *State {
	return &State{board: NewBoard(), side: Black}
}

// Board returns the current grid.
func (s *State) Board() Board {
	return s.board
}

// Side returns the side to move. Meaningless once Terminal is true.
func (s *State) Side() Cell {
	return s.side
}

// History returns the moves played so far. Passes are not recorded as
// moves; Passes counts them separately.
func (s *State) History() []Move {
	return s.history
}

// Passes returns how many times a side had to pass so far.
func (s *State) Passes() int {
	return s.passes
}

// Terminal reports whether the game is over: neither side has a legal
// move, which includes the full-board case.
func (s *State) Terminal() bool {
	return s.terminal
}

// LegalMoves returns the legal moves for the side to move, in row-major
// order. It is empty only on terminal states: Play hands the turn to
// whichever side can move, so a live position always has at least one.
func (s *State) LegalMoves() []Move {
	if s.terminal {
		return nil
	}
	return s.board.LegalMoves(s.side)
}

// Play applies a legal move and returns the resulting position. The
// side to move advances to the opponent unless the opponent has no
// legal reply, in which case the turn passes back without consuming a
// move; when neither side can move the new state is terminal.
func (s *State) Play(mv Move) (*State, error) {
	if s.terminal {
		return nil, ErrTerminalState
	}
	if mv.Side != s.side {
		return nil, &IllegalMoveError{Move: mv, Reason: "not this side's turn"}
	}

	board, _, err := s.board.apply(mv)
	if err != nil {
		return nil, err
	}

	history := make([]Move, len(s.history), len(s.history)+1)
	copy(history, s.history)
	history = append(history, mv)

	next := &State{board: board, history: history, passes: s.passes}
	opponent := s.side.Opponent()
	switch {
	case board.HasLegalMove(opponent):
		next.side = opponent
	case board.HasLegalMove(s.side):
		next.side = s.side
		next.passes++
	default:
		next.side = s.side
		next.terminal = true
	}
	return next, nil
}

// Scores returns the disc counts for black and white.
func (s *State) Scores() (black, white int) {
	return s.board.Scores()
}

// Winner returns the side with more discs, or Empty on a draw. Only
// meaningful on terminal states.
func (s *State) Winner() Cell {
	black, white := s.board.Scores()
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return Empty
	}
}

// Key returns the canonical fingerprint of this position.
func (s *State) Key() StateKey {
	buf := make([]byte, 0, 1+Size*Size)
	if s.side == White {
		buf = append(buf, 'W')
	} else {
		buf = append(buf, 'B')
	}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			buf = append(buf, '0'+byte(s.board[row][col]))
		}
	}
	return StateKey(buf)
}
