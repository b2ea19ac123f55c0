package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brensch/blokus/config"
	"github.com/brensch/blokus/logging"
	"github.com/brensch/blokus/rules"
	"github.com/brensch/blokus/selfplay"
	"github.com/brensch/blokus/store"
)

func main() {
	env := config.Load()

	board := flag.String("board", env.Board, "Board: mini, mono, duo, classic or a size N")
	players := flag.Int("players", env.Players, "Number of players")
	agents := flag.String("agents", env.Agents, "Comma separated agents per seat, or one for every seat")
	seed := flag.Int64("seed", env.Seed, "Random seed (0 uses the clock)")
	outDir := flag.String("out-dir", "debug_games", "Output directory for the debug game; empty skips export")
	logLevel := flag.String("log-level", env.LogLevel, "Log level")
	flag.Parse()

	closer, err := logging.Setup(logging.Options{Level: *logLevel, Pretty: true})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	cfg, err := rules.ParsePreset(*board, *players)
	if err != nil {
		log.Fatal().Err(err).Msg("bad board")
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	seats, err := selfplay.ParseAgents(*agents, *players, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatal().Err(err).Msg("bad agents")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Info().Str("board", *board).Str("agents", *agents).Int64("seed", *seed).Msg("generating debug game")
	out, err := selfplay.PlayGame(ctx, cfg, seats, selfplay.PlayOptions{Source: "debug"})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate debug game")
	}

	// Replaying the exported rows checks they are enough to rebuild the game.
	_, err = selfplay.Replay(cfg, out.Moves, func(row store.MoveRow, state *rules.GameState) {
		fmt.Printf("Ply %3d | P%d %-8s %-6s %-8s moves=%d\n", row.Ply, row.Player, row.Agent, row.Action, row.Shape, row.Moves)
		fmt.Println(selfplay.RenderBoard(state))
	})
	if err != nil {
		log.Fatal().Err(err).Msg("replay of exported rows failed")
	}
	log.Info().Int("plies", out.Plies).Ints("scores", out.Scores).Ints("winners", out.Winners).Msg("game complete")

	if *outDir == "" {
		return
	}
	for _, w := range []func() (string, error){
		func() (string, error) { return writeBatch(*outDir, store.MovePrefix, store.MoveSchema, out.Moves) },
		func() (string, error) { return writeBatch(*outDir, store.SeatPrefix, store.SeatSchema, out.Seats) },
	} {
		path, err := w()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to write debug game")
		}
		log.Info().Str("path", path).Str("game_id", out.GameID).Msg("debug game written")
	}
}

func writeBatch[T any](outDir, prefix, schema string, rows []T) (string, error) {
	w, err := store.NewBatchWriter[T](outDir, prefix, schema)
	if err != nil {
		return "", err
	}
	if err := w.WriteRows(rows); err != nil {
		_, _, _, _ = w.Finalize()
		return "", err
	}
	w.NoteGameWritten()
	path, _, _, err := w.Finalize()
	return path, err
}
