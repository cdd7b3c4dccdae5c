// Package searcher implements deterministic game-tree search for
// Othello: plain Minimax and an Alpha-Beta variant that must agree with
// Minimax on the value of the chosen move.
package searcher

import (
	"fmt"
	"math"
	"sort"

	"othello/game"
)

// Algorithm selects the search variant.
type Algorithm int

const (
	Minimax Algorithm = iota
	AlphaBeta
)

func (a Algorithm) String() string {
	switch a {
	case Minimax:
		return "minimax"
	case AlphaBeta:
		return "alphabeta"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps a flag value to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "minimax":
		return Minimax, nil
	case "alphabeta":
		return AlphaBeta, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q", name)
	}
}

type Option func(*Searcher)

func WithAlgorithm(a Algorithm) Option {
	return func(s *Searcher) {
		s.algorithm = a
	}
}

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		s.depth = depth
	}
}

func WithHeuristic(h game.Heuristic) Option {
	return func(s *Searcher) {
		s.heuristic = h
	}
}

func WithWeights(w *game.Weights) Option {
	return func(s *Searcher) {
		if w != nil {
			s.weights = w
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Searcher) {
		if m != nil {
			s.metrics = m
		}
	}
}

// Searcher is a pure function of (state, depth): it holds no mutable
// search state, so one instance may be shared by concurrent callers.
type Searcher struct {
	algorithm Algorithm
	depth     int
	heuristic game.Heuristic
	weights   *game.Weights
	metrics   *Metrics
}

// New builds a Searcher. Depth must be at least 1.
func New(options ...Option) (*Searcher, error) {
	s := &Searcher{
		algorithm: AlphaBeta,
		depth:     4,
		heuristic: game.Global,
		weights:   &game.WeightsA,
		metrics:   &Metrics{},
	}
	for _, option := range options {
		option(s)
	}
	if s.depth < 1 {
		return nil, fmt.Errorf("search depth must be >= 1, got %d", s.depth)
	}
	return s, nil
}

// FindMove returns the best move for the side to move, searching to the
// configured depth. Ties on value resolve to the earliest move in the
// deterministic root ordering. Calling it on a terminal state is an
// error (game.ErrTerminalState), never an arbitrary move.
func (s *Searcher) FindMove(state *game.State) (game.Move, error) {
	move, _, err := s.findBest(state)
	return move, err
}

// findBest returns the chosen move together with its search value; the
// value is what the equivalence property between Minimax and Alpha-Beta
// is stated over.
func (s *Searcher) findBest(state *game.State) (game.Move, int, error) {
	if state.Terminal() {
		return game.Move{}, 0, game.ErrTerminalState
	}

	root := state.Side()
	moves := s.ordered(state)

	best := moves[0]
	bestValue := math.MinInt
	alpha, beta := math.MinInt, math.MaxInt
	for _, mv := range moves {
		child, err := state.Play(mv)
		if err != nil {
			return game.Move{}, 0, err
		}
		var value int
		if s.algorithm == AlphaBeta {
			value = s.alphabeta(child, root, s.depth-1, alpha, beta)
		} else {
			value = s.minimax(child, root, s.depth-1)
		}
		if value > bestValue {
			bestValue = value
			best = mv
		}
		if value > alpha {
			alpha = value
		}
	}
	return best, bestValue, nil
}

// minimax evaluates state to the given remaining depth from root's
// perspective. The side to move at each node decides whether the layer
// maximizes or minimizes; a forced pass keeps the same side to move
// without consuming depth, which falls out of State.Play handing the
// turn only to a side with a legal reply.
func (s *Searcher) minimax(state *game.State, root game.Cell, depth int) int {
	s.metrics.addNode()
	if depth == 0 || state.Terminal() {
		return s.heuristic.Evaluate(state, root, s.weights)
	}

	maximizing := state.Side() == root
	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}
	for _, mv := range state.LegalMoves() {
		child, err := state.Play(mv)
		if err != nil {
			panic(err) // legal move rejected: programming error
		}
		value := s.minimax(child, root, depth-1)
		if maximizing && value > best || !maximizing && value < best {
			best = value
		}
	}
	return best
}

// alphabeta is minimax with pruning: branches whose bound cannot enter
// the (alpha, beta) window are skipped. Children are ordered by static
// square weight to tighten the window early.
func (s *Searcher) alphabeta(state *game.State, root game.Cell, depth, alpha, beta int) int {
	s.metrics.addNode()
	if depth == 0 || state.Terminal() {
		return s.heuristic.Evaluate(state, root, s.weights)
	}

	maximizing := state.Side() == root
	for _, mv := range s.ordered(state) {
		child, err := state.Play(mv)
		if err != nil {
			panic(err)
		}
		value := s.alphabeta(child, root, depth-1, alpha, beta)
		if maximizing {
			if value > alpha {
				alpha = value
			}
		} else {
			if value < beta {
				beta = value
			}
		}
		if alpha >= beta {
			s.metrics.addCutoff()
			break
		}
	}
	if maximizing {
		return alpha
	}
	return beta
}

// ordered returns the legal moves sorted by descending static weight of
// the destination square, with the row-major order breaking ties. The
// result is deterministic for a given position.
func (s *Searcher) ordered(state *game.State) []game.Move {
	moves := state.LegalMoves()
	if s.algorithm == Minimax {
		return moves // already row-major
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return s.weights[moves[i].Row][moves[i].Col] > s.weights[moves[j].Row][moves[j].Col]
	})
	return moves
}
