package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"othello/game"
)

func newSearcher(t *testing.T, options ...Option) *Searcher {
	t.Helper()
	s, err := New(options...)
	require.NoError(t, err)
	return s
}

func TestNewRejectsBadDepth(t *testing.T) {
	_, err := New(WithDepth(0))
	require.Error(t, err)

	_, err = New(WithDepth(-3))
	require.Error(t, err)
}

func TestFindMoveOnTerminalState(t *testing.T) {
	// Drive a position to its end, then ask for one more move.
	state := playRandomGame(t, rand.New(rand.NewSource(7)))
	require.True(t, state.Terminal())

	for _, algorithm := range []Algorithm{Minimax, AlphaBeta} {
		s := newSearcher(t, WithAlgorithm(algorithm), WithDepth(3))
		_, err := s.FindMove(state)
		require.ErrorIs(t, err, game.ErrTerminalState, "%s must fail fast on terminal states", algorithm)
	}
}

func TestFindMoveIsDeterministic(t *testing.T) {
	state := game.NewState()
	for _, algorithm := range []Algorithm{Minimax, AlphaBeta} {
		s := newSearcher(t, WithAlgorithm(algorithm), WithDepth(3))

		first, err := s.FindMove(state)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := s.FindMove(state)
			require.NoError(t, err)
			require.Equal(t, first, again, "%s must be a pure function of the position", algorithm)
		}
	}
}

func TestFindMovePrefersObviousCapture(t *testing.T) {
	// Minimax at depth 1 maximizes the static score of the position
	// after its own move; with the absolute heuristic that is simply
	// the move flipping the most discs.
	s := newSearcher(t, WithAlgorithm(Minimax), WithDepth(1), WithHeuristic(game.Absolute))

	state := game.NewState()
	mv, err := s.FindMove(state)
	require.NoError(t, err)

	next, err := state.Play(mv)
	require.NoError(t, err)
	black, white := next.Scores()
	require.Equal(t, 4, black, "every opening move flips exactly one disc")
	require.Equal(t, 1, white)
}

// TestAlphaBetaMatchesMinimax checks the pruning variant against plain
// Minimax over the opening tree and over random positions sampled
// within the first 10 plies: the values of the chosen moves must agree
// exactly (the moves themselves may differ when several tie).
func TestAlphaBetaMatchesMinimax(t *testing.T) {
	const depth = 3

	minimax := newSearcher(t, WithAlgorithm(Minimax), WithDepth(depth))
	alphabeta := newSearcher(t, WithAlgorithm(AlphaBeta), WithDepth(depth))

	check := func(state *game.State) {
		t.Helper()
		_, minimaxValue, err := minimax.findBest(state)
		require.NoError(t, err)
		_, alphabetaValue, err := alphabeta.findBest(state)
		require.NoError(t, err)
		require.Equal(t, minimaxValue, alphabetaValue,
			"value mismatch on position:\n%s", state.Board())
	}

	t.Run("exhaustive opening tree to 3 plies", func(t *testing.T) {
		frontier := []*game.State{game.NewState()}
		for ply := 0; ply < 3; ply++ {
			var next []*game.State
			for _, state := range frontier {
				check(state)
				for _, mv := range state.LegalMoves() {
					child, err := state.Play(mv)
					require.NoError(t, err)
					if !child.Terminal() {
						next = append(next, child)
					}
				}
			}
			frontier = next
		}
	})

	t.Run("random positions within 10 plies", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 30; i++ {
			state := game.NewState()
			plies := rng.Intn(10) + 1
			for p := 0; p < plies && !state.Terminal(); p++ {
				moves := state.LegalMoves()
				next, err := state.Play(moves[rng.Intn(len(moves))])
				require.NoError(t, err)
				state = next
			}
			if !state.Terminal() {
				check(state)
			}
		}
	})
}

func TestSearchHandlesForcedPass(t *testing.T) {
	// Play a seeded game to a position with at least one pass in its
	// past and make sure the searchers still return a legal move; the
	// pass recursion must not be mistaken for a terminal position.
	rng := rand.New(rand.NewSource(3))
	for attempt := 0; attempt < 50; attempt++ {
		state := game.NewState()
		for !state.Terminal() && state.Passes() == 0 {
			moves := state.LegalMoves()
			next, err := state.Play(moves[rng.Intn(len(moves))])
			require.NoError(t, err)
			state = next
		}
		if state.Terminal() {
			continue
		}

		for _, algorithm := range []Algorithm{Minimax, AlphaBeta} {
			s := newSearcher(t, WithAlgorithm(algorithm), WithDepth(4))
			mv, err := s.FindMove(state)
			require.NoError(t, err)
			_, err = state.Play(mv)
			require.NoError(t, err, "%s returned an illegal move", algorithm)
		}
		return
	}
	t.Fatal("no position with a forced pass found")
}

func TestMetricsCountWork(t *testing.T) {
	metrics := &Metrics{}
	s := newSearcher(t, WithAlgorithm(AlphaBeta), WithDepth(4), WithMetrics(metrics))

	_, err := s.FindMove(game.NewState())
	require.NoError(t, err)

	require.Positive(t, metrics.Nodes())

	metrics.Reset()
	require.Zero(t, metrics.Nodes())
	require.Zero(t, metrics.Cutoffs())
}

func playRandomGame(t *testing.T, rng *rand.Rand) *game.State {
	t.Helper()
	state := game.NewState()
	for !state.Terminal() {
		moves := state.LegalMoves()
		next, err := state.Play(moves[rng.Intn(len(moves))])
		require.NoError(t, err)
		state = next
	}
	return state
}
