package selfplay

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/brensch/blokus/rules"
)

type SimConfig struct {
	Rules rules.Config
	// Agents names one agent per seat, see NewAgent.
	Agents []string
	Games  int
	// Workers defaults to GOMAXPROCS.
	Workers int
	// Seed makes a run reproducible; zero seeds from the clock. Game i uses Seed+i.
	Seed    int64
	Source  string
	Verbose bool
	// OnStep is called after every action of every game, concurrently.
	OnStep func()
}

// Tally aggregates finished games per seat. Index i holds seat i+1.
type Tally struct {
	Games      int
	Wins       []int
	Ties       int
	TotalScore []int
}

func newTally(players int) Tally {
	return Tally{Wins: make([]int, players), TotalScore: make([]int, players)}
}

func (t *Tally) add(o Outcome) {
	t.Games++
	for i, s := range o.Scores {
		t.TotalScore[i] += s
	}
	if o.Tied() {
		t.Ties++
		return
	}
	for _, w := range o.Winners {
		t.Wins[w-1]++
	}
}

// WinRate is the fraction of games seat won outright.
func (t Tally) WinRate(seat int) float64 {
	if t.Games == 0 || seat < 1 || seat > len(t.Wins) {
		return 0
	}
	return float64(t.Wins[seat-1]) / float64(t.Games)
}

func (t Tally) TieRate() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.Ties) / float64(t.Games)
}

func (t Tally) MeanScore(seat int) float64 {
	if t.Games == 0 || seat < 1 || seat > len(t.TotalScore) {
		return 0
	}
	return float64(t.TotalScore[seat-1]) / float64(t.Games)
}

// Simulate plays cfg.Games games on a bounded pool of workers. onGame, when
// set, is called once per finished game and never concurrently.
func Simulate(ctx context.Context, cfg SimConfig, onGame func(Outcome)) (Tally, error) {
	if len(cfg.Agents) != cfg.Rules.NumPlayers {
		return Tally{}, fmt.Errorf("%w: %d agents for %d players", ErrNoAgent, len(cfg.Agents), cfg.Rules.NumPlayers)
	}
	for _, name := range cfg.Agents {
		if _, err := NewAgent(name, nil); err != nil {
			return Tally{}, err
		}
	}
	if _, err := rules.New(cfg.Rules); err != nil {
		return Tally{}, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var mu sync.Mutex
	tally := newTally(cfg.Rules.NumPlayers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < cfg.Games; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(i)))
			agents := make([]Agent, len(cfg.Agents))
			for j, name := range cfg.Agents {
				a, err := NewAgent(name, rng)
				if err != nil {
					return err
				}
				agents[j] = a
			}

			out, err := PlayGame(gctx, cfg.Rules, agents, PlayOptions{Source: cfg.Source, Verbose: cfg.Verbose, OnStep: cfg.OnStep})
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			tally.add(out)
			if onGame != nil {
				onGame(out)
			}
			log.Debug().
				Int("game", i).
				Str("game_id", out.GameID).
				Ints("winners", out.Winners).
				Msg("simulated game")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return tally, err
	}
	return tally, ctx.Err()
}
