// Package player dispatches "given a state, produce a move" uniformly
// across the player kinds: a human (whose moves come from an injected
// input collaborator), the two tree searchers, and the Q-learning
// agent.
package player

import (
	"fmt"

	"othello/game"
	"othello/qlearn"
	"othello/searcher"
)

// Kind tags the player variant a seat is configured with.
type Kind int

const (
	Human Kind = iota
	Minimax
	AlphaBeta
	QLearning
)

func (k Kind) String() string {
	switch k {
	case Human:
		return "human"
	case Minimax:
		return "minimax"
	case AlphaBeta:
		return "alphabeta"
	case QLearning:
		return "qlearning"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a flag value to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "human":
		return Human, nil
	case "minimax":
		return Minimax, nil
	case "alphabeta":
		return AlphaBeta, nil
	case "qlearning":
		return QLearning, nil
	default:
		return 0, fmt.Errorf("unknown player kind %q", name)
	}
}

// ConfigurationError reports invalid player parameters. It is raised
// before any game starts.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid player configuration: " + e.Reason
}

// MoveProvider supplies a move for the side to move. It is how the UI's
// input layer plugs a human seat into the engine; the returned move is
// still validated by State.Play.
type MoveProvider func(state *game.State) (game.Move, error)

// Config describes one seat.
type Config struct {
	Kind      Kind
	Depth     int            // search depth, Minimax/AlphaBeta only
	Heuristic game.Heuristic // evaluation for search kinds
	Epsilon   float64        // exploration, QLearning only
	Seed      uint64         // exploration seed, QLearning only
	Table     *qlearn.Table  // learned values, QLearning only
	Input     MoveProvider   // move source, Human only
}

// Validate fails fast on parameters no player could run with.
func (c Config) Validate() error {
	switch c.Kind {
	case Human:
		if c.Input == nil {
			return &ConfigurationError{Reason: "human seat needs a move provider"}
		}
	case Minimax, AlphaBeta:
		if c.Depth < 1 {
			return &ConfigurationError{Reason: fmt.Sprintf("search depth must be >= 1, got %d", c.Depth)}
		}
	case QLearning:
		if c.Table == nil {
			return &ConfigurationError{Reason: "qlearning seat needs a Q-table"}
		}
		if c.Epsilon < 0 || c.Epsilon > 1 {
			return &ConfigurationError{Reason: fmt.Sprintf("epsilon must be in [0,1], got %g", c.Epsilon)}
		}
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("unknown player kind %d", int(c.Kind))}
	}
	return nil
}

// Player produces moves for one seat.
type Player interface {
	// NextMove returns the move to play for the side to move in state.
	NextMove(state *game.State) (game.Move, error)
	// IsHuman reports whether illegal moves should be re-prompted
	// rather than treated as a programming error.
	IsHuman() bool
}

// New builds the player a config describes.
func New(c Config) (Player, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Kind {
	case Human:
		return &humanPlayer{input: c.Input}, nil
	case Minimax, AlphaBeta:
		algorithm := searcher.Minimax
		if c.Kind == AlphaBeta {
			algorithm = searcher.AlphaBeta
		}
		s, err := searcher.New(
			searcher.WithAlgorithm(algorithm),
			searcher.WithDepth(c.Depth),
			searcher.WithHeuristic(c.Heuristic),
		)
		if err != nil {
			return nil, &ConfigurationError{Reason: err.Error()}
		}
		return &searchPlayer{searcher: s}, nil
	case QLearning:
		agent := qlearn.NewAgent(c.Table,
			qlearn.WithEpsilon(c.Epsilon),
			qlearn.WithSeed(c.Seed),
		)
		return &agentPlayer{agent: agent}, nil
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown player kind %d", int(c.Kind))}
	}
}

type humanPlayer struct {
	input MoveProvider
}

func (p *humanPlayer) NextMove(state *game.State) (game.Move, error) {
	return p.input(state)
}

func (p *humanPlayer) IsHuman() bool { return true }

type searchPlayer struct {
	searcher *searcher.Searcher
}

func (p *searchPlayer) NextMove(state *game.State) (game.Move, error) {
	return p.searcher.FindMove(state)
}

func (p *searchPlayer) IsHuman() bool { return false }

type agentPlayer struct {
	agent *qlearn.Agent
}

func (p *agentPlayer) NextMove(state *game.State) (game.Move, error) {
	return p.agent.SelectMove(state)
}

func (p *agentPlayer) IsHuman() bool { return false }
