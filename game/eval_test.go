package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHeuristic(t *testing.T) {
	for _, name := range []string{"absolute", "positional", "mobility", "mixed", "global"} {
		h, err := ParseHeuristic(name)
		require.NoError(t, err)
		require.Equal(t, name, h.String())
	}

	_, err := ParseHeuristic("bogus")
	require.Error(t, err)
}

func TestEvaluateOpeningIsBalanced(t *testing.T) {
	// The opening position is symmetric, so every heuristic must score
	// it 0 for both sides.
	s := NewState()
	for _, h := range []Heuristic{Absolute, Positional, Mobility, Mixed, Global} {
		require.Zero(t, h.Evaluate(s, Black, &WeightsA), "%s for black", h)
		require.Zero(t, h.Evaluate(s, White, &WeightsA), "%s for white", h)
	}
}

func TestEvaluatePerspectivesAreOpposite(t *testing.T) {
	s := NewState()
	s, err := s.Play(Move{Row: 2, Col: 3, Side: Black})
	require.NoError(t, err)

	for _, h := range []Heuristic{Absolute, Positional, Mobility, Global} {
		black := h.Evaluate(s, Black, &WeightsA)
		white := h.Evaluate(s, White, &WeightsA)
		require.Equal(t, black, -white, "%s must be zero-sum across perspectives", h)
	}
}

func TestEvaluateAbsolute(t *testing.T) {
	s := NewState()
	s, err := s.Play(Move{Row: 2, Col: 3, Side: Black})
	require.NoError(t, err)

	// 4 black vs 1 white after d3.
	require.Equal(t, 3, Absolute.Evaluate(s, Black, &WeightsA))
	require.Equal(t, -3, Absolute.Evaluate(s, White, &WeightsA))
}

func TestEvaluatePositionalValuesCorners(t *testing.T) {
	var b Board
	b[0][0] = Black
	b[1][1] = White
	s := &State{board: b, side: Black}

	// Corner (+100) against the opponent's X-square (-50).
	require.Equal(t, 150, Positional.Evaluate(s, Black, &WeightsA))
}

func TestWeightTablesAreSymmetric(t *testing.T) {
	for _, w := range []*Weights{&WeightsA, &WeightsB} {
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				require.Equal(t, w[row][col], w[col][row], "transpose symmetry at (%d,%d)", row, col)
				require.Equal(t, w[row][col], w[Size-1-row][Size-1-col], "rotational symmetry at (%d,%d)", row, col)
			}
		}
	}
}
