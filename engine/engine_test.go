package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"othello/game"
	"othello/player"
)

func seat(t *testing.T, cfg player.Config) player.Player {
	t.Helper()
	p, err := player.New(cfg)
	require.NoError(t, err)
	return p
}

func TestRunPlaysFullGame(t *testing.T) {
	black := seat(t, player.Config{Kind: player.AlphaBeta, Depth: 2, Heuristic: game.Global})
	white := seat(t, player.Config{Kind: player.Minimax, Depth: 1, Heuristic: game.Absolute})

	final, err := New(black, white).Run()
	require.NoError(t, err)

	require.True(t, final.Terminal())
	require.NotEmpty(t, final.History())

	blackScore, whiteScore := final.Scores()
	require.Positive(t, blackScore+whiteScore)
	require.LessOrEqual(t, blackScore+whiteScore, game.Size*game.Size)

	// The history replays from the opening to the exact same position.
	replay := game.NewState()
	for _, mv := range final.History() {
		next, err := replay.Play(mv)
		require.NoError(t, err)
		replay = next
	}
	require.Equal(t, final.Key(), replay.Key())
}

func TestRunRepromptsHumanOnIllegalMove(t *testing.T) {
	// The scripted seat tries an occupied square first, then an empty
	// square that flips nothing, then a legal move. The engine must
	// swallow the first two and accept the third.
	script := []game.Move{
		{Row: 3, Col: 3, Side: game.Black},
		{Row: 0, Col: 0, Side: game.Black},
		{Row: 2, Col: 3, Side: game.Black},
	}
	calls := 0
	human := seat(t, player.Config{Kind: player.Human, Input: func(state *game.State) (game.Move, error) {
		mv := script[calls]
		calls++
		return mv, nil
	}})

	e := New(human, nil)
	next, mv, err := e.takeTurn(human)
	require.NoError(t, err)
	require.Equal(t, script[2], mv)
	require.Equal(t, 3, calls, "both illegal attempts must be re-prompted")
	require.Equal(t, game.White, next.Side())
}

func TestRunAbortsOnAIError(t *testing.T) {
	// A "human" flag off means a single illegal move is fatal.
	bad := badPlayer{}
	good := seat(t, player.Config{Kind: player.Minimax, Depth: 1, Heuristic: game.Absolute})

	_, err := New(bad, good).Run()

	var illegal *game.IllegalMoveError
	require.ErrorAs(t, err, &illegal)
}

// badPlayer always plays the occupied center square.
type badPlayer struct{}

func (badPlayer) NextMove(state *game.State) (game.Move, error) {
	return game.Move{Row: 3, Col: 3, Side: state.Side()}, nil
}

func (badPlayer) IsHuman() bool { return false }
