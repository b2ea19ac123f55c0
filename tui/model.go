// Package tui plays a game in the terminal. Human seats steer a pending
// piece with the keyboard; agent seats move on their own.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/brensch/blokus/game"
	"github.com/brensch/blokus/rules"
	"github.com/brensch/blokus/selfplay"
)

// agentMoveMsg carries an agent's choice back to Update. A nil move means
// the agent had nothing legal and retires.
type agentMoveMsg struct {
	player int
	move   *game.Piece
}

// Model is the bubbletea model for one game.
type Model struct {
	state *rules.GameState
	// Indexed by player-1; nil marks a human seat.
	agents []selfplay.Agent

	pending  *game.Piece
	kindIdx  int
	message  string
	thinking bool
	quitting bool
}

// New returns a model over state. agents must hold one entry per player and
// a nil entry is a human seat.
func New(state *rules.GameState, agents []selfplay.Agent) (*Model, error) {
	if len(agents) != state.NumPlayers() {
		return nil, fmt.Errorf("%w: %d seats for %d players", selfplay.ErrNoAgent, len(agents), state.NumPlayers())
	}
	m := &Model{state: state, agents: agents}
	m.resetPending()
	return m, nil
}

func (m *Model) State() *rules.GameState { return m.state }

// Pending returns a copy of the piece the current human is steering, or nil
// when the seat to move is an agent or the game is over.
func (m *Model) Pending() *game.Piece {
	if m.pending == nil {
		return nil
	}
	return m.pending.Clone()
}

func (m *Model) Message() string { return m.message }

func (m *Model) human(player int) bool {
	return m.agents[player-1] == nil
}

func (m *Model) centre() game.Point {
	n := m.state.Size() / 2
	return game.Point{Row: n, Col: n}
}

// resetPending picks a fresh pending piece for the player to move.
func (m *Model) resetPending() {
	m.pending = nil
	if m.state.GameOver() || !m.human(m.state.CurrentPlayer()) {
		return
	}
	kinds := m.state.RemainingShapes(m.state.CurrentPlayer())
	if len(kinds) == 0 {
		return
	}
	m.kindIdx = (m.kindIdx%len(kinds) + len(kinds)) % len(kinds)
	p := m.state.NewPiece(kinds[m.kindIdx])
	p.SetAnchor(m.centre())
	m.pending = p
}

func (m *Model) Init() tea.Cmd {
	return m.agentCmd()
}

// agentCmd schedules the current seat's move if it is an agent. The agent
// works on a clone so the running program never shares state with it.
func (m *Model) agentCmd() tea.Cmd {
	if m.state.GameOver() || m.thinking {
		return nil
	}
	player := m.state.CurrentPlayer()
	agent := m.agents[player-1]
	if agent == nil {
		return nil
	}
	m.thinking = true
	snapshot := m.state.Clone()
	return func() tea.Msg {
		moves := snapshot.AvailableMoves()
		if len(moves) == 0 {
			return agentMoveMsg{player: player}
		}
		return agentMoveMsg{player: player, move: moves[agent.Choose(snapshot, moves)]}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case agentMoveMsg:
		m.thinking = false
		if msg.player != m.state.CurrentPlayer() || m.state.GameOver() {
			return m, m.agentCmd()
		}
		m.applyAgentMove(msg)
		m.resetPending()
		return m, m.agentCmd()
	}
	return m, nil
}

func (m *Model) applyAgentMove(msg agentMoveMsg) {
	name := m.agents[msg.player-1].Name()
	if msg.move == nil {
		m.state.Retire()
		m.message = fmt.Sprintf("P%d (%s) has no moves and retires", msg.player, name)
		return
	}
	ok, err := m.state.MaybePlace(msg.move)
	if err != nil || !ok {
		log.Warn().Err(err).Int("player", msg.player).Str("move", msg.move.String()).Msg("agent move rejected, retiring")
		m.state.Retire()
		m.message = fmt.Sprintf("P%d (%s) made an illegal move and retires", msg.player, name)
		return
	}
	m.message = fmt.Sprintf("P%d (%s) played %s", msg.player, name, msg.move.Kind())
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	player := m.state.CurrentPlayer()
	if m.state.GameOver() || !m.human(player) {
		return m, nil
	}
	if msg.String() == "p" {
		m.state.Retire()
		m.message = fmt.Sprintf("P%d retired", player)
		m.kindIdx = 0
		m.resetPending()
		return m, m.agentCmd()
	}
	if m.pending == nil {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left", "h":
		m.move(0, -1)
	case "right", "l":
		m.move(0, 1)
	case "r":
		m.transform((*game.Piece).RotateRight, (*game.Piece).RotateLeft)
	case "R":
		m.transform((*game.Piece).RotateLeft, (*game.Piece).RotateRight)
	case "f":
		m.transform((*game.Piece).FlipHorizontally, (*game.Piece).FlipHorizontally)
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	case "enter":
		ok, err := m.state.MaybePlace(m.pending)
		switch {
		case err != nil:
			m.message = err.Error()
		case !ok:
			m.message = fmt.Sprintf("%s cannot go there", m.pending.Kind())
		default:
			m.message = fmt.Sprintf("P%d played %s", player, m.pending.Kind())
			m.kindIdx = 0
			m.resetPending()
			return m, m.agentCmd()
		}
	}
	return m, nil
}

// move shifts the pending piece unless that would push it off the board.
func (m *Model) move(dr, dc int) {
	anchor, _ := m.pending.Anchor()
	m.pending.SetAnchor(anchor.Add(game.Point{Row: dr, Col: dc}))
	if hit, _ := m.state.AnyWallCollisions(m.pending); hit {
		m.pending.SetAnchor(anchor)
	}
}

// transform applies do to the pending piece and undoes it when the result
// leaves the board.
func (m *Model) transform(do, undo func(*game.Piece) error) {
	if err := do(m.pending); err != nil {
		m.message = err.Error()
		return
	}
	if hit, _ := m.state.AnyWallCollisions(m.pending); hit {
		_ = undo(m.pending)
	}
}

// cycle switches the pending piece to the next remaining shape, keeping the
// anchor when the new shape fits there.
func (m *Model) cycle(step int) {
	anchor, _ := m.pending.Anchor()
	m.kindIdx += step
	m.resetPending()
	if m.pending == nil {
		return
	}
	m.pending.SetAnchor(anchor)
	if hit, _ := m.state.AnyWallCollisions(m.pending); hit {
		m.pending.SetAnchor(m.centre())
	}
}
