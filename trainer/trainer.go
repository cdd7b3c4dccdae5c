// Package trainer orchestrates concurrent self-play training of the
// Q-learning agent: N workers each play complete games against
// themselves or a fixed search opponent, updating one shared Q-table,
// with periodic consistent checkpoints to disk.
package trainer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"othello/game"
	"othello/qlearn"
)

// ConfigurationError reports training parameters the coordinator
// refuses to start with.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid training configuration: " + e.Reason
}

// MovePicker is the fixed-opponent contract; *searcher.Searcher
// satisfies it.
type MovePicker interface {
	FindMove(state *game.State) (game.Move, error)
}

// Config parameterizes a training run.
type Config struct {
	Workers      int     // concurrent self-play workers
	Episodes     int     // episodes per worker
	Alpha        float64 // learning rate
	Gamma        float64 // discount factor
	Epsilon      float64 // initial exploration probability
	EpsilonDecay float64 // multiplied into epsilon after each episode

	// Opponent, when non-nil, plays the OpponentSide seat while the
	// learner plays the other; nil means self-play on both seats.
	Opponent     MovePicker
	OpponentSide game.Cell

	CheckpointEvery int    // snapshot after this many total episodes, 0 disables
	CheckpointPath  string // snapshot destination

	Seed uint64 // base seed; each worker derives its own stream
}

// Validate fails fast before any game starts.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("workers must be >= 1, got %d", c.Workers)}
	}
	if c.Episodes < 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("episodes must be >= 1, got %d", c.Episodes)}
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("alpha must be in [0,1], got %g", c.Alpha)}
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("gamma must be in [0,1], got %g", c.Gamma)}
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("epsilon must be in [0,1], got %g", c.Epsilon)}
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("epsilon decay must be in (0,1], got %g", c.EpsilonDecay)}
	}
	if c.Opponent != nil && c.OpponentSide != game.Black && c.OpponentSide != game.White {
		return &ConfigurationError{Reason: "opponent needs a side to play"}
	}
	if c.CheckpointEvery < 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("checkpoint interval must be >= 0, got %d", c.CheckpointEvery)}
	}
	if c.CheckpointEvery > 0 && c.CheckpointPath == "" {
		return &ConfigurationError{Reason: "checkpointing needs a path"}
	}
	return nil
}

// Summary describes a finished (or cancelled) run.
type Summary struct {
	Episodes int // completed episodes across all workers
	Aborted  int // episodes lost to worker faults
	States   int // distinct states in the table afterwards
	Duration time.Duration
}

// Coordinator owns the shared table for the duration of a run.
type Coordinator struct {
	cfg   Config
	table *qlearn.Table

	episodes atomic.Int64
	aborted  atomic.Int64

	checkpointMu sync.Mutex

	recordsMu sync.Mutex
	records   []EpisodeRecord
}

// New validates the config and builds a coordinator around table.
func New(cfg Config, table *qlearn.Table) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		table = qlearn.NewTable()
	}
	return &Coordinator{cfg: cfg, table: table}, nil
}

// Table returns the shared table, e.g. to hand to Persistence or to a
// playing agent after the run.
func (c *Coordinator) Table() *qlearn.Table {
	return c.table
}

// Records returns the per-episode records collected during Run.
func (c *Coordinator) Records() []EpisodeRecord {
	c.recordsMu.Lock()
	defer c.recordsMu.Unlock()
	out := make([]EpisodeRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Run executes the configured number of episodes on each worker and
// blocks until all workers have drained. Cancellation via ctx is
// honored between episodes: in-flight games finish, no new ones start.
// A fault inside one worker's game aborts only that episode; the
// returned error aggregates worker faults, if any.
func (c *Coordinator) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	log.Info().
		Int("workers", c.cfg.Workers).
		Int("episodes", c.cfg.Episodes).
		Float64("alpha", c.cfg.Alpha).
		Float64("gamma", c.cfg.Gamma).
		Float64("epsilon", c.cfg.Epsilon).
		Msg("training starting")

	errCh := make(chan error, c.cfg.Workers)
	var wg sync.WaitGroup
	for id := 0; id < c.cfg.Workers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			errCh <- c.worker(ctx, id)
		}(id)
	}
	wg.Wait()
	close(errCh)

	var merr *multierror.Error
	for err := range errCh {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if c.cfg.CheckpointPath != "" {
		c.checkpoint()
	}

	summary := Summary{
		Episodes: int(c.episodes.Load()),
		Aborted:  int(c.aborted.Load()),
		States:   c.table.States(),
		Duration: time.Since(start),
	}
	log.Info().
		Int("episodes", summary.Episodes).
		Int("aborted", summary.Aborted).
		Int("states", summary.States).
		Dur("duration", summary.Duration).
		Msg("training finished")
	return summary, merr.ErrorOrNil()
}

func (c *Coordinator) worker(ctx context.Context, id int) error {
	agent := qlearn.NewAgent(c.table,
		qlearn.WithRates(c.cfg.Alpha, c.cfg.Gamma),
		qlearn.WithEpsilon(c.cfg.Epsilon),
		qlearn.WithSeed(c.cfg.Seed+uint64(id)*0x9e3779b97f4a7c15+1),
	)

	var faults *multierror.Error
	for episode := 0; episode < c.cfg.Episodes; episode++ {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Int("episode", episode).Msg("worker stopping on cancellation")
			return faults.ErrorOrNil()
		default:
		}

		record, err := c.runEpisode(agent, id, episode)
		if err != nil {
			// The shared table only ever sees completed Update calls,
			// so a mid-game fault cannot corrupt it for other workers.
			c.aborted.Add(1)
			faults = multierror.Append(faults, errors.Wrapf(err, "worker %d episode %d", id, episode))
			log.Error().Err(err).Int("worker", id).Int("episode", episode).Msg("episode aborted")
			continue
		}

		c.recordsMu.Lock()
		c.records = append(c.records, record)
		c.recordsMu.Unlock()

		agent.DecayEpsilon(c.cfg.EpsilonDecay)
		total := c.episodes.Add(1)
		if c.cfg.CheckpointEvery > 0 && total%int64(c.cfg.CheckpointEvery) == 0 {
			c.checkpoint()
		}
	}
	return faults.ErrorOrNil()
}

// runEpisode plays one complete game and applies a TD update after
// every learner move. Panics are converted to an episode-local error.
func (c *Coordinator) runEpisode(agent *qlearn.Agent, worker, episode int) (record EpisodeRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("episode panicked: %v", r)
		}
	}()

	start := time.Now()
	var final *game.State
	if c.cfg.Opponent == nil {
		final, err = c.selfPlay(agent)
	} else {
		final, err = c.versusOpponent(agent)
	}
	if err != nil {
		return EpisodeRecord{}, err
	}

	return EpisodeRecord{
		Worker:   worker,
		Episode:  episode,
		Moves:    len(final.History()),
		Winner:   final.Winner().String(),
		Epsilon:  agent.Epsilon(),
		Duration: time.Since(start),
	}, nil
}

// selfPlay has the agent fill both seats, updating after every single
// move: the transition target is the position the move produced, with
// the other side to move.
func (c *Coordinator) selfPlay(agent *qlearn.Agent) (*game.State, error) {
	state := game.NewState()
	for !state.Terminal() {
		side := state.Side()
		mv, err := agent.SelectMove(state)
		if err != nil {
			return nil, err
		}
		next, err := state.Play(mv)
		if err != nil {
			return nil, err
		}
		reward := 0.0
		if next.Terminal() {
			reward = outcome(next, side)
		}
		agent.Learn(state.Key(), mv, reward, next)
		state = next
	}
	return state, nil
}

// versusOpponent has the agent play one seat against the configured
// fixed opponent. The learner's transition spans its own move plus any
// opponent replies, ending at the next position where the learner is to
// move again (or the terminal position).
func (c *Coordinator) versusOpponent(agent *qlearn.Agent) (*game.State, error) {
	learner := c.cfg.OpponentSide.Opponent()
	state := game.NewState()

	var pendingKey game.StateKey
	var pendingMove game.Move
	pending := false

	for !state.Terminal() {
		if state.Side() == learner {
			if pending {
				agent.Learn(pendingKey, pendingMove, 0, state)
				pending = false
			}
			mv, err := agent.SelectMove(state)
			if err != nil {
				return nil, err
			}
			next, err := state.Play(mv)
			if err != nil {
				return nil, err
			}
			if next.Terminal() {
				agent.Learn(state.Key(), mv, outcome(next, learner), next)
			} else {
				pendingKey, pendingMove, pending = state.Key(), mv, true
			}
			state = next
		} else {
			mv, err := c.cfg.Opponent.FindMove(state)
			if err != nil {
				return nil, err
			}
			next, err := state.Play(mv)
			if err != nil {
				return nil, err
			}
			if next.Terminal() && pending {
				agent.Learn(pendingKey, pendingMove, outcome(next, learner), next)
				pending = false
			}
			state = next
		}
	}
	return state, nil
}

// outcome is the terminal reward from side's perspective.
func outcome(terminal *game.State, side game.Cell) float64 {
	switch terminal.Winner() {
	case side:
		return 1
	case side.Opponent():
		return -1
	default:
		return 0
	}
}

// checkpoint snapshots the shared table to disk. Serialized by a mutex
// so overlapping triggers from different workers cannot interleave
// writes; SaveFile itself replaces the file atomically.
func (c *Coordinator) checkpoint() {
	c.checkpointMu.Lock()
	defer c.checkpointMu.Unlock()
	if err := qlearn.SaveFile(c.cfg.CheckpointPath, c.table); err != nil {
		log.Error().Err(err).Str("path", c.cfg.CheckpointPath).Msg("checkpoint failed")
		return
	}
	log.Info().
		Str("path", c.cfg.CheckpointPath).
		Int("states", c.table.States()).
		Msg("checkpoint written")
}
