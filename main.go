package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"othello/engine"
	"othello/game"
	"othello/player"
	"othello/qlearn"
	"othello/searcher"
	"othello/trainer"
)

func main() {
	mode := flag.String("mode", "play", "play or train")
	verbose := flag.Bool("v", false, "log every move")

	// Seats (play mode)
	blackKind := flag.String("black", "human", "black seat: human, minimax, alphabeta or qlearning")
	whiteKind := flag.String("white", "alphabeta", "white seat: human, minimax, alphabeta or qlearning")
	depth := flag.Int("depth", 4, "search depth for minimax/alphabeta seats")
	heuristicName := flag.String("heuristic", "global", "evaluation: absolute, positional, mobility, mixed or global")
	tablePath := flag.String("table", "", "Q-table snapshot to load for qlearning seats")

	// Training
	episodes := flag.Int("episodes", 1000, "training episodes per worker")
	workers := flag.Int("workers", 4, "concurrent training workers")
	alpha := flag.Float64("alpha", 0.8, "learning rate")
	gamma := flag.Float64("gamma", 0.99, "discount factor")
	epsilon := flag.Float64("epsilon", 1.0, "initial exploration probability")
	decay := flag.Float64("decay", 0.999, "epsilon decay per episode")
	checkpointEvery := flag.Int("checkpoint-every", 500, "episodes between checkpoints, 0 disables")
	out := flag.String("out", "q_table.bin", "Q-table destination for training")
	recordsPath := flag.String("records", "", "optional CSV of per-episode training records")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "training seed")
	opponentName := flag.String("opponent", "self", "training opponent: self, minimax or alphabeta")
	opponentDepth := flag.Int("opponent-depth", 2, "search depth of a fixed training opponent")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var err error
	switch *mode {
	case "play":
		err = runPlay(*blackKind, *whiteKind, *depth, *heuristicName, *tablePath)
	case "train":
		err = runTrain(trainFlags{
			episodes:        *episodes,
			workers:         *workers,
			alpha:           *alpha,
			gamma:           *gamma,
			epsilon:         *epsilon,
			decay:           *decay,
			checkpointEvery: *checkpointEvery,
			out:             *out,
			records:         *recordsPath,
			seed:            *seed,
			opponent:        *opponentName,
			opponentDepth:   *opponentDepth,
			heuristic:       *heuristicName,
		})
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func runPlay(blackKind, whiteKind string, depth int, heuristicName, tablePath string) error {
	heuristic, err := game.ParseHeuristic(heuristicName)
	if err != nil {
		return err
	}

	var table *qlearn.Table
	input := stdinMoves(bufio.NewReader(os.Stdin))

	seat := func(name string) (player.Player, error) {
		kind, err := player.ParseKind(name)
		if err != nil {
			return nil, err
		}
		if kind == player.QLearning && table == nil {
			if tablePath == "" {
				table = qlearn.NewTable()
			} else {
				table, err = qlearn.LoadFile(tablePath)
				if err != nil {
					return nil, err
				}
			}
		}
		return player.New(player.Config{
			Kind:      kind,
			Depth:     depth,
			Heuristic: heuristic,
			Table:     table,
			Input:     input,
		})
	}

	black, err := seat(blackKind)
	if err != nil {
		return err
	}
	white, err := seat(whiteKind)
	if err != nil {
		return err
	}

	final, err := engine.New(black, white).Run()
	if err != nil {
		return err
	}

	blackScore, whiteScore := final.Scores()
	fmt.Println(final.Board())
	if winner := final.Winner(); winner == game.Empty {
		fmt.Printf("draw, %d-%d\n", blackScore, whiteScore)
	} else {
		fmt.Printf("%s wins %d-%d\n", winner, blackScore, whiteScore)
	}
	return nil
}

type trainFlags struct {
	episodes        int
	workers         int
	alpha           float64
	gamma           float64
	epsilon         float64
	decay           float64
	checkpointEvery int
	out             string
	records         string
	seed            uint64
	opponent        string
	opponentDepth   int
	heuristic       string
}

func runTrain(f trainFlags) error {
	cfg := trainer.Config{
		Workers:         f.workers,
		Episodes:        f.episodes,
		Alpha:           f.alpha,
		Gamma:           f.gamma,
		Epsilon:         f.epsilon,
		EpsilonDecay:    f.decay,
		CheckpointEvery: f.checkpointEvery,
		CheckpointPath:  f.out,
		Seed:            f.seed,
	}

	if f.opponent != "self" {
		algorithm, err := searcher.ParseAlgorithm(f.opponent)
		if err != nil {
			return fmt.Errorf("unknown opponent %q", f.opponent)
		}
		heuristic, err := game.ParseHeuristic(f.heuristic)
		if err != nil {
			return err
		}
		opponent, err := searcher.New(
			searcher.WithAlgorithm(algorithm),
			searcher.WithDepth(f.opponentDepth),
			searcher.WithHeuristic(heuristic),
		)
		if err != nil {
			return err
		}
		cfg.Opponent = opponent
		cfg.OpponentSide = game.White
	}

	coordinator, err := trainer.New(cfg, qlearn.NewTable())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := coordinator.Run(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("training finished with worker faults")
	}
	fmt.Printf("episodes=%d aborted=%d states=%d duration=%s\n",
		summary.Episodes, summary.Aborted, summary.States, summary.Duration)

	if f.records != "" {
		if err := trainer.WriteRecords(f.records, coordinator.Records()); err != nil {
			return err
		}
	}
	return nil
}

// stdinMoves is the input collaborator for human seats: it prints the
// position, reads a square in board notation and hands back the move.
// Unparseable or illegal input comes back as IllegalMoveError, which
// the engine answers with another prompt.
func stdinMoves(r *bufio.Reader) player.MoveProvider {
	return func(state *game.State) (game.Move, error) {
		fmt.Println(state.Board())
		fmt.Printf("%s to move (e.g. d3): ", state.Side())
		line, err := r.ReadString('\n')
		if err != nil {
			return game.Move{}, err
		}
		row, col, ok := game.ParseSquare(strings.TrimSpace(line))
		if !ok {
			return game.Move{}, &game.IllegalMoveError{
				Move:   game.Move{Side: state.Side()},
				Reason: fmt.Sprintf("unparseable square %q", strings.TrimSpace(line)),
			}
		}
		return game.Move{Row: row, Col: col, Side: state.Side()}, nil
	}
}
