// Package engine runs one Othello game between two players to its
// terminal state, handling forced passes and the re-prompt loop for
// human seats.
package engine

import (
	"errors"

	"github.com/rs/zerolog/log"

	"othello/game"
	"othello/player"
)

// maxHumanRetries bounds the re-prompt loop so a broken input provider
// cannot spin the engine forever.
const maxHumanRetries = 100

// Engine drives a single game. Seat 0 plays Black, seat 1 plays White.
type Engine struct {
	players [2]player.Player
	state   *game.State
}

// New sets up a game from the opening position.
func New(black, white player.Player) *Engine {
	return &Engine{
		players: [2]player.Player{black, white},
		state:   game.NewState(),
	}
}

// State returns the current position.
func (e *Engine) State() *game.State {
	return e.state
}

// Run plays the game to completion and returns the terminal state.
// Illegal moves from a human seat are re-prompted; an illegal move from
// an AI seat is a programming error and aborts the game with the error.
func (e *Engine) Run() (*game.State, error) {
	log.Debug().Msg("game starting")

	for !e.state.Terminal() {
		seat := 0
		if e.state.Side() == game.White {
			seat = 1
		}

		next, mv, err := e.takeTurn(e.players[seat])
		if err != nil {
			return nil, err
		}

		log.Debug().
			Stringer("side", mv.Side).
			Str("square", mv.Notation()).
			Int("move", len(next.History())).
			Msg("move played")

		e.state = next
	}

	black, white := e.state.Scores()
	log.Info().
		Int("black", black).
		Int("white", white).
		Stringer("winner", e.state.Winner()).
		Msg("game over")

	return e.state, nil
}

func (e *Engine) takeTurn(p player.Player) (*game.State, game.Move, error) {
	retries := maxHumanRetries
	if !p.IsHuman() {
		retries = 1
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		mv, err := p.NextMove(e.state)
		if err == nil {
			var next *game.State
			next, err = e.state.Play(mv)
			if err == nil {
				return next, mv, nil
			}
		}
		lastErr = err

		var illegal *game.IllegalMoveError
		if !p.IsHuman() || !errors.As(err, &illegal) {
			// AI seats never get a second attempt: an illegal move from
			// a searcher or agent is a bug, not user error.
			return nil, game.Move{}, err
		}
		log.Warn().Err(err).Msg("rejected input, prompting again")
	}
	return nil, game.Move{}, lastErr
}
