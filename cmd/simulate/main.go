package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/brensch/blokus/config"
	"github.com/brensch/blokus/logging"
	"github.com/brensch/blokus/rules"
	"github.com/brensch/blokus/selfplay"
)

func main() {
	env := config.Load()

	games := flag.Int("games", env.Games, "Number of games to play")
	workers := flag.Int("workers", env.Workers, "Number of concurrent games (0 uses GOMAXPROCS)")
	board := flag.String("board", env.Board, "Board: mini, mono, duo, classic or a size N")
	players := flag.Int("players", env.Players, "Number of players")
	agents := flag.String("agents", env.Agents, "Comma separated agents per seat, or one for every seat")
	outDir := flag.String("out-dir", env.OutDir, "Output directory for parquet batches; empty disables export")
	gamesPerFlush := flag.Int("games-per-flush", env.GamesPerFlush, "Games per parquet file")
	flushEvery := flag.Duration("flush-every", env.FlushEvery, "Maximum time a parquet file stays open")
	seed := flag.Int64("seed", env.Seed, "Base random seed (0 uses the clock)")
	useTUI := flag.Bool("tui", false, "Show a live progress view; logs go to -log-file")
	logFile := flag.String("log-file", env.LogFile, "Log file (defaults to blokus-simulate.log with -tui)")
	logLevel := flag.String("log-level", env.LogLevel, "Log level")
	verbose := flag.Bool("verbose", false, "Log every board at debug level")
	flag.Parse()

	logOpts := logging.Options{Level: *logLevel, Pretty: env.LogPretty, File: *logFile}
	if *useTUI && logOpts.File == "" {
		logOpts.File = "blokus-simulate.log"
	}
	if *verbose {
		logOpts.Level = "debug"
	}
	closer, err := logging.Setup(logOpts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	cfg, err := rules.ParsePreset(*board, *players)
	if err != nil {
		log.Fatal().Err(err).Msg("bad board")
	}
	names := strings.Split(*agents, ",")
	if len(names) == 1 {
		for len(names) < *players {
			names = append(names, names[0])
		}
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	writeReqs := make(chan gameWriteRequest, 64)
	writerDone := make(chan struct{})
	go func() {
		if *outDir == "" {
			for range writeReqs {
			}
		} else {
			parquetWriterLoop(*outDir, *gamesPerFlush, *flushEvery, writeReqs)
		}
		close(writerDone)
	}()

	updates := make(chan GameUpdate, 64)
	onGame := func(out selfplay.Outcome) {
		writeReqs <- gameWriteRequest{moves: out.Moves, seats: out.Seats}
		// Avoid blocking the workers if the UI loop stops consuming.
		select {
		case updates <- GameUpdate{GameID: out.GameID, Plies: out.Plies, Scores: out.Scores, Winners: out.Winners}:
		default:
		}
	}

	simCfg := selfplay.SimConfig{
		Rules:   cfg,
		Agents:  names,
		Games:   *games,
		Workers: *workers,
		Seed:    *seed,
		Source:  selfplay.DefaultSource,
		Verbose: *verbose,
		OnStep:  func() { totalMoves.Add(1) },
	}
	log.Info().
		Str("board", *board).
		Int("players", *players).
		Strs("agents", names).
		Int("games", *games).
		Int("workers", *workers).
		Str("out_dir", *outDir).
		Msg("starting self-play")

	results := make(chan doneMsg, 1)
	uiDone := make(chan doneMsg, 1)
	startTime := time.Now()
	go func() {
		tally, err := selfplay.Simulate(ctx, simCfg, onGame)
		res := doneMsg{tally: tally, err: err}
		uiDone <- res
		results <- res
	}()

	var res doneMsg
	if *useTUI {
		p := tea.NewProgram(initialModel(*games, *players, updates, uiDone), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Error().Err(err).Msg("tui failed")
		}
		// Quitting the view stops the run.
		cancel()
		res = <-results
	} else {
		res = waitWithProgress(results, updates, startTime)
	}

	close(writeReqs)
	<-writerDone

	if res.err != nil && !errors.Is(res.err, context.Canceled) {
		log.Error().Err(res.err).Msg("self-play failed")
	}
	printTally(res.tally, names, time.Since(startTime))
	if res.err != nil && !errors.Is(res.err, context.Canceled) {
		os.Exit(1)
	}
}

// waitWithProgress logs finished games and periodic throughput until the
// run ends.
func waitWithProgress(results <-chan doneMsg, updates <-chan GameUpdate, startTime time.Time) doneMsg {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	games := 0
	for {
		select {
		case res := <-results:
			return res
		case u := <-updates:
			games++
			log.Debug().Str("game_id", u.GameID).Int("plies", u.Plies).Ints("scores", u.Scores).Ints("winners", u.Winners).Msg("game finished")
		case <-ticker.C:
			secs := time.Since(startTime).Seconds()
			log.Info().
				Int("games", games).
				Float64("games_per_sec", float64(games)/secs).
				Float64("moves_per_sec", float64(totalMoves.Load())/secs).
				Msg("progress")
		}
	}
}

func printTally(t selfplay.Tally, names []string, elapsed time.Duration) {
	fmt.Printf("%d games in %s\n", t.Games, elapsed.Round(time.Millisecond))
	for i := range t.Wins {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		fmt.Printf("P%d %-8s win %5.1f%%  mean score %6.1f\n", i+1, name, 100*t.WinRate(i+1), t.MeanScore(i+1))
	}
	fmt.Printf("ties %5.1f%%\n", 100*t.TieRate())
}
