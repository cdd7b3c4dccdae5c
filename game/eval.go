package game

import "fmt"

// Heuristic selects the static evaluation used by the tree searchers
// and anywhere else a position needs a score.
type Heuristic int

const (
	// Absolute is the disc differential: own discs minus opponent discs.
	Absolute Heuristic = iota
	// Positional sums a per-square weight table over own discs minus
	// the same sum over opponent discs; corners weigh heaviest.
	Positional
	// Mobility is the legal-move count differential.
	Mobility
	// Mixed switches by game phase: Positional for the first 20 moves,
	// Mobility up to move 40, Absolute in the endgame.
	Mixed
	// Global sums Absolute, Positional and Mobility.
	Global
)

func (h Heuristic) String() string {
	switch h {
	case Absolute:
		return "absolute"
	case Positional:
		return "positional"
	case Mobility:
		return "mobility"
	case Mixed:
		return "mixed"
	case Global:
		return "global"
	default:
		return fmt.Sprintf("heuristic(%d)", int(h))
	}
}

// ParseHeuristic maps a flag value to a Heuristic.
func ParseHeuristic(name string) (Heuristic, error) {
	switch name {
	case "absolute":
		return Absolute, nil
	case "positional":
		return Positional, nil
	case "mobility":
		return Mobility, nil
	case "mixed":
		return Mixed, nil
	case "global":
		return Global, nil
	default:
		return 0, fmt.Errorf("unknown heuristic %q", name)
	}
}

// Weights is a per-square evaluation table.
type Weights [Size][Size]int

// WeightsA is the default table: strong corners, poisoned X- and
// C-squares next to them.
var WeightsA = Weights{
	{100, -20, 10, 5, 5, 10, -20, 100},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{100, -20, 10, 5, 5, 10, -20, 100},
}

// WeightsB is an alternative table with sharper corner emphasis and a
// valued center.
var WeightsB = Weights{
	{500, -150, 30, 10, 10, 30, -150, 500},
	{-150, -250, 0, 0, 0, 0, -250, -150},
	{30, 0, 1, 2, 2, 1, 0, 30},
	{10, 0, 2, 16, 16, 2, 0, 10},
	{10, 0, 2, 16, 16, 2, 0, 10},
	{30, 0, 1, 2, 2, 1, 0, 30},
	{-150, -250, 0, 0, 0, 0, -250, -150},
	{500, -150, 30, 10, 10, 30, -150, 500},
}

// Evaluate scores the position from side's perspective; positive means
// side is better off.
func (h Heuristic) Evaluate(s *State, side Cell, w *Weights) int {
	switch h {
	case Absolute:
		return evalAbsolute(s, side)
	case Positional:
		return evalPositional(s, side, w)
	case Mobility:
		return evalMobility(s, side)
	case Mixed:
		if moves := len(s.History()); moves < 20 {
			return evalPositional(s, side, w)
		} else if moves < 40 {
			return evalMobility(s, side)
		}
		return evalAbsolute(s, side)
	case Global:
		return evalAbsolute(s, side) + evalPositional(s, side, w) + evalMobility(s, side)
	default:
		panic(fmt.Sprintf("unknown heuristic %d", int(h)))
	}
}

func evalAbsolute(s *State, side Cell) int {
	black, white := s.Scores()
	if side == Black {
		return black - white
	}
	return white - black
}

func evalPositional(s *State, side Cell, w *Weights) int {
	score := 0
	opponent := side.Opponent()
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			switch s.board[row][col] {
			case side:
				score += w[row][col]
			case opponent:
				score -= w[row][col]
			}
		}
	}
	return score
}

func evalMobility(s *State, side Cell) int {
	return len(s.board.LegalMoves(side)) - len(s.board.LegalMoves(side.Opponent()))
}
