package qlearn

import (
	"golang.org/x/exp/rand"

	"othello/game"
)

type AgentOption func(*Agent)

// WithEpsilon sets the exploration probability.
func WithEpsilon(epsilon float64) AgentOption {
	return func(a *Agent) {
		a.epsilon = epsilon
	}
}

// WithRates sets the learning rate and the discount factor.
func WithRates(alpha, gamma float64) AgentOption {
	return func(a *Agent) {
		a.alpha = alpha
		a.gamma = gamma
	}
}

// WithSeed makes the agent's exploration reproducible.
func WithSeed(seed uint64) AgentOption {
	return func(a *Agent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// Agent is an epsilon-greedy policy over a shared Table. The table may
// be shared across agents and goroutines; the agent itself (epsilon,
// rng) belongs to a single goroutine.
type Agent struct {
	table   *Table
	epsilon float64
	alpha   float64
	gamma   float64
	rng     *rand.Rand
}

// NewAgent builds an agent around the given table. Defaults: epsilon 0
// (fully greedy), alpha 0.8, gamma 0.99.
func NewAgent(table *Table, options ...AgentOption) *Agent {
	a := &Agent{
		table: table,
		alpha: 0.8,
		gamma: 0.99,
		rng:   rand.New(rand.NewSource(1)),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Epsilon returns the current exploration probability.
func (a *Agent) Epsilon() float64 {
	return a.epsilon
}

// DecayEpsilon multiplies epsilon by factor, typically once per episode.
func (a *Agent) DecayEpsilon(factor float64) {
	a.epsilon *= factor
}

// SelectMove picks a move for the side to move: uniformly at random
// with probability epsilon, otherwise the move with the highest learned
// value (unseen entries count as 0, ties resolve to the earliest move
// in row-major order).
func (a *Agent) SelectMove(state *game.State) (game.Move, error) {
	if state.Terminal() {
		return game.Move{}, game.ErrTerminalState
	}
	moves := state.LegalMoves()
	if a.epsilon > 0 && a.rng.Float64() < a.epsilon {
		return moves[a.rng.Intn(len(moves))], nil
	}
	best, _ := a.table.ArgMax(state.Key(), moves)
	return best, nil
}

// Learn applies one temporal-difference update for the transition
// (prev, move) -> next with the given reward:
//
//	Q(s,a) <- Q(s,a) + alpha * (reward + gamma*max_a' Q(s',a') - Q(s,a))
//
// The bootstrap term is 0 when next is terminal.
func (a *Agent) Learn(prev game.StateKey, mv game.Move, reward float64, next *game.State) {
	if a.alpha == 0 {
		return // nothing to learn, and no phantom zero-entries either
	}
	target := reward
	if next != nil && !next.Terminal() {
		target += a.gamma * a.table.Max(next.Key(), next.LegalMoves())
	}
	alpha := a.alpha
	a.table.Update(prev, mv, func(old float64) float64 {
		return old + alpha*(target-old)
	})
}
