package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	s := NewState()

	require.Equal(t, Black, s.Side(), "Black always starts")
	require.False(t, s.Terminal())
	require.Empty(t, s.History())
	require.Len(t, s.LegalMoves(), 4)
}

func TestPlayAdvancesTurn(t *testing.T) {
	s := NewState()

	next, err := s.Play(Move{Row: 2, Col: 3, Side: Black})

	require.NoError(t, err)
	require.Equal(t, White, next.Side())
	require.Len(t, next.History(), 1)
	require.Equal(t, "d3", next.History()[0].Notation())

	// The original state is untouched.
	require.Equal(t, Black, s.Side())
	require.Empty(t, s.History())
}

func TestPlayRejectsWrongSide(t *testing.T) {
	s := NewState()

	_, err := s.Play(Move{Row: 2, Col: 3, Side: White})

	var illegal *IllegalMoveError
	require.ErrorAs(t, err, &illegal)
}

func TestPlayPassesWhenOpponentStuck(t *testing.T) {
	// White to move. After White plays c1 and flips b1, Black has no
	// legal reply anywhere but White still has c3: the turn must pass
	// back to White without consuming a move.
	var b Board
	b[0][0] = White
	b[0][1] = Black
	b[2][0] = White
	b[2][1] = Black
	s := &State{board: b, side: White}

	require.False(t, s.Terminal())

	next, err := s.Play(Move{Row: 0, Col: 2, Side: White})

	require.NoError(t, err)
	require.False(t, next.Terminal())
	require.Equal(t, White, next.Side(), "turn passes back to White")
	require.Equal(t, 1, next.Passes())
	require.Len(t, next.History(), 1, "the pass consumes no move")
}

func TestPlayReachesTerminalOnDoublePass(t *testing.T) {
	// Same shape as above with only one cluster: once White flips the
	// last Black disc, neither side can move again.
	var b Board
	b[0][0] = White
	b[0][1] = Black
	s := &State{board: b, side: White}

	next, err := s.Play(Move{Row: 0, Col: 2, Side: White})

	require.NoError(t, err)
	require.True(t, next.Terminal())
	require.Empty(t, next.LegalMoves())
	require.Equal(t, White, next.Winner())

	_, err = next.Play(Move{Row: 0, Col: 3, Side: White})
	require.ErrorIs(t, err, ErrTerminalState)
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name   string
		black  int
		white  int
		winner Cell
	}{
		{"black ahead", 5, 3, Black},
		{"white ahead", 2, 6, White},
		{"draw", 4, 4, Empty},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b Board
			for i := 0; i < tc.black; i++ {
				b[0][i] = Black
			}
			for i := 0; i < tc.white; i++ {
				b[7][i] = White
			}
			s := &State{board: b, terminal: true}

			require.Equal(t, tc.winner, s.Winner())
		})
	}
}

func TestKey(t *testing.T) {
	s := NewState()

	key := s.Key()
	require.Len(t, string(key), 1+Size*Size)
	require.Equal(t, byte('B'), key[0])

	// Same layout and side always give the same key.
	require.Equal(t, key, NewState().Key())

	// Side to move distinguishes otherwise identical layouts.
	flipped := &State{board: s.board, side: White}
	require.NotEqual(t, key, flipped.Key())

	// The key tracks the layout exactly.
	next, err := s.Play(Move{Row: 2, Col: 3, Side: Black})
	require.NoError(t, err)
	require.NotEqual(t, key, next.Key())
	require.Equal(t, byte('W'), next.Key()[0])
}
