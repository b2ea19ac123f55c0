package selfplay

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/brensch/blokus/game"
	"github.com/brensch/blokus/rules"
)

var ErrNoAgent = errors.New("no agent")

const (
	AgentRandom  = "random"
	AgentLargest = "largest"
)

// Agent picks one of the legal moves offered for the current player.
// Choose is only called with a non-empty moves slice and must return an
// index into it. Agents must not mutate state.
type Agent interface {
	Name() string
	Choose(state *rules.GameState, moves []*game.Piece) int
}

// RandomAgent picks uniformly among legal moves.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{rng: rng}
}

func (a *RandomAgent) Name() string { return AgentRandom }

func (a *RandomAgent) Choose(_ *rules.GameState, moves []*game.Piece) int {
	return a.rng.Intn(len(moves))
}

// LargestPieceAgent plays the biggest shape it can. Between shapes of the
// same size it prefers the one later in the shape table, and between
// placements of that shape the first one offered.
type LargestPieceAgent struct{}

func (LargestPieceAgent) Name() string { return AgentLargest }

func (LargestPieceAgent) Choose(_ *rules.GameState, moves []*game.Piece) int {
	best := 0
	for i, m := range moves[1:] {
		b := moves[best]
		if m.Size() > b.Size() || (m.Size() == b.Size() && m.Kind() > b.Kind()) {
			best = i + 1
		}
	}
	return best
}

// NewAgent builds an agent by name. rng is only used by agents that need one.
func NewAgent(name string, rng *rand.Rand) (Agent, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case AgentRandom:
		return NewRandomAgent(rng), nil
	case AgentLargest:
		return LargestPieceAgent{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown agent %q", ErrNoAgent, name)
	}
}

// ParseAgents builds one agent per seat from a comma separated list. A single
// name is used for every seat.
func ParseAgents(list string, players int, rng *rand.Rand) ([]Agent, error) {
	names := strings.Split(list, ",")
	if len(names) == 1 {
		for len(names) < players {
			names = append(names, names[0])
		}
	}
	if len(names) != players {
		return nil, fmt.Errorf("%w: %d agents for %d players", ErrNoAgent, len(names), players)
	}
	out := make([]Agent, players)
	for i, n := range names {
		a, err := NewAgent(n, rng)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}
