package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/brensch/blokus/config"
	"github.com/brensch/blokus/logging"
	"github.com/brensch/blokus/rules"
	"github.com/brensch/blokus/selfplay"
	"github.com/brensch/blokus/tui"
)

const seatHuman = "human"

// seats builds one entry per player; human seats are nil.
func seats(list string, players int, rng *rand.Rand) ([]selfplay.Agent, error) {
	names := strings.Split(list, ",")
	if len(names) != players {
		return nil, fmt.Errorf("%w: %d seats for %d players", selfplay.ErrNoAgent, len(names), players)
	}
	out := make([]selfplay.Agent, players)
	for i, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), seatHuman) {
			continue
		}
		a, err := selfplay.NewAgent(n, rng)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

func main() {
	env := config.Load()

	board := flag.String("board", env.Board, "Board: mini, mono, duo, classic or a size N")
	players := flag.Int("players", env.Players, "Number of players")
	agents := flag.String("agents", "human,largest", "Comma separated seats: human, random or largest")
	seed := flag.Int64("seed", env.Seed, "Random seed for agents (0 uses the clock)")
	logFile := flag.String("log-file", "blokus-play.log", "Log file; the terminal is taken by the game")
	logLevel := flag.String("log-level", env.LogLevel, "Log level")
	flag.Parse()

	closer, err := logging.Setup(logging.Options{Level: *logLevel, File: *logFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	cfg, err := rules.ParsePreset(*board, *players)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	state, err := rules.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	seatAgents, err := seats(*agents, *players, rand.New(rand.NewSource(*seed)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	m, err := tui.New(state, seatAgents)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Info().Str("board", *board).Int("players", *players).Str("seats", *agents).Int64("seed", *seed).Msg("starting game")

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Error().Err(err).Msg("tui failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Print(selfplay.RenderBoard(state))
	log.Info().Ints("scores", state.Scores()).Ints("winners", state.Winners()).Bool("over", state.GameOver()).Msg("game finished")
}
