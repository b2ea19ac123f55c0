package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/blokus/game"
	"github.com/brensch/blokus/rules"
	"github.com/brensch/blokus/selfplay"
)

func miniModel(t *testing.T, agents ...selfplay.Agent) *Model {
	t.Helper()
	cfg, err := rules.ParsePreset(rules.PresetMini, len(agents))
	if err != nil {
		t.Fatalf("ParsePreset: %v", err)
	}
	state, err := rules.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m, err := New(state, agents)
	if err != nil {
		t.Fatalf("tui.New: %v", err)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func anchorOf(t *testing.T, m *Model) game.Point {
	t.Helper()
	p := m.Pending()
	if p == nil {
		t.Fatalf("no pending piece")
	}
	a, ok := p.Anchor()
	if !ok {
		t.Fatalf("pending piece is not anchored")
	}
	return a
}

func TestModel_PendingStartsAtCentre(t *testing.T) {
	m := miniModel(t, nil)
	if got := m.Pending().Kind(); got != game.ShapeOne {
		t.Fatalf("pending kind = %s, want ONE", got)
	}
	if got := anchorOf(t, m); got != (game.Point{Row: 2, Col: 2}) {
		t.Fatalf("anchor = %s, want (2,2)", got)
	}
}

func TestModel_MovementStopsAtWalls(t *testing.T) {
	m := miniModel(t, nil)
	press(m, "up", "up", "up", "left", "left", "left")
	if got := anchorOf(t, m); got != (game.Point{}) {
		t.Fatalf("anchor = %s, want (0,0)", got)
	}
	press(m, "down", "right")
	if got := anchorOf(t, m); got != (game.Point{Row: 1, Col: 1}) {
		t.Fatalf("anchor = %s, want (1,1)", got)
	}
}

func TestModel_RotateUnblocksMovement(t *testing.T) {
	m := miniModel(t, nil)
	press(m, "tab", "tab", "tab", "tab")
	if got := m.Pending().Kind(); got != game.ShapeFive {
		t.Fatalf("pending kind = %s, want FIVE", got)
	}

	// Vertical, it already spans every row.
	press(m, "up")
	if got := anchorOf(t, m); got != (game.Point{Row: 2, Col: 2}) {
		t.Fatalf("anchor after blocked move = %s, want (2,2)", got)
	}

	press(m, "r", "up")
	if got := anchorOf(t, m); got != (game.Point{Row: 1, Col: 2}) {
		t.Fatalf("anchor after rotate and move = %s, want (1,2)", got)
	}
	press(m, "right")
	if got := anchorOf(t, m); got != (game.Point{Row: 1, Col: 2}) {
		t.Fatalf("horizontal piece moved through the wall: %s", got)
	}

	// Rotating back to vertical at row 1 would leave the board.
	press(m, "R")
	cells, _ := m.Pending().Cells()
	for _, c := range cells {
		if c.Row != 1 {
			t.Fatalf("rotation off the board was not undone: %v", cells)
		}
	}
}

func TestModel_CycleWrapsAround(t *testing.T) {
	m := miniModel(t, nil)
	press(m, "shift+tab")
	if got := m.Pending().Kind(); got != game.ShapeZ {
		t.Fatalf("pending kind = %s, want Z", got)
	}
	press(m, "tab")
	if got := m.Pending().Kind(); got != game.ShapeOne {
		t.Fatalf("pending kind = %s, want ONE", got)
	}
}

func TestModel_PlaceIllegalThenLegal(t *testing.T) {
	m := miniModel(t, nil)
	state := m.State()

	press(m, "enter")
	if state.Score(1) != rules.ScoreBaseline {
		t.Fatalf("illegal placement changed the score: %d", state.Score(1))
	}
	if !strings.Contains(m.Message(), "cannot go there") {
		t.Fatalf("message = %q", m.Message())
	}
	if !strings.Contains(m.View(), "ONE illegal") {
		t.Fatalf("view does not flag the placement as illegal:\n%s", m.View())
	}

	press(m, "up", "up", "left", "left")
	if !strings.Contains(m.View(), "ONE legal") {
		t.Fatalf("view does not flag the placement as legal:\n%s", m.View())
	}
	press(m, "enter")
	if state.Score(1) != rules.ScoreBaseline+1 {
		t.Fatalf("score = %d, want %d", state.Score(1), rules.ScoreBaseline+1)
	}
	if got := m.Pending().Kind(); got != game.ShapeTwo {
		t.Fatalf("next pending kind = %s, want TWO", got)
	}
	if got := anchorOf(t, m); got != (game.Point{Row: 2, Col: 2}) {
		t.Fatalf("next pending anchor = %s, want (2,2)", got)
	}
}

func TestModel_AgentReplies(t *testing.T) {
	m := miniModel(t, nil, selfplay.LargestPieceAgent{})
	state := m.State()
	if cmd := m.Init(); cmd != nil {
		t.Fatalf("Init scheduled a move for a human seat")
	}

	cmd := press(m, "up", "up", "left", "left", "enter")
	if cmd == nil {
		t.Fatalf("no agent move scheduled after the human placed")
	}
	if m.Pending() != nil {
		t.Fatalf("pending piece shown while the agent is to move")
	}
	if !strings.Contains(m.View(), "thinking") {
		t.Fatalf("view does not show the agent thinking:\n%s", m.View())
	}

	_, next := m.Update(cmd())
	if next != nil {
		t.Fatalf("agent scheduled itself again on the human's turn")
	}
	if state.CurrentPlayer() != 1 {
		t.Fatalf("current player = %d, want 1", state.CurrentPlayer())
	}
	if state.Score(2) != rules.ScoreBaseline+5 {
		t.Fatalf("agent score = %d, want a pentomino placed", state.Score(2))
	}
	if m.Pending() == nil {
		t.Fatalf("no pending piece for the human after the agent moved")
	}
}

func TestModel_StaleAgentMoveIgnored(t *testing.T) {
	m := miniModel(t, nil, selfplay.LargestPieceAgent{})
	m.Update(agentMoveMsg{player: 2})
	if m.State().IsRetired(2) {
		t.Fatalf("agent move for a seat not to move was applied")
	}
}

func TestModel_RetireEndsGame(t *testing.T) {
	m := miniModel(t, nil)
	press(m, "p")
	if !m.State().GameOver() {
		t.Fatalf("game not over after the only player retired")
	}
	if m.Pending() != nil {
		t.Fatalf("pending piece left after game over")
	}
	if !strings.Contains(m.View(), "game over, winners [1]") {
		t.Fatalf("view:\n%s", m.View())
	}
	// Keys other than quit do nothing now.
	if cmd := press(m, "enter", "p", "up"); cmd != nil {
		t.Fatalf("unexpected command after game over")
	}
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m := miniModel(t, nil)
		cmd := press(m, k)
		if cmd == nil {
			t.Fatalf("%s: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: command did not quit", k)
		}
		if m.View() != "" {
			t.Fatalf("%s: view not cleared on quit", k)
		}
	}
}

func TestNew_SeatCountMismatch(t *testing.T) {
	cfg, _ := rules.ParsePreset(rules.PresetMini, 2)
	state, err := rules.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := New(state, []selfplay.Agent{nil}); err == nil {
		t.Fatalf("expected an error for one seat in a two player game")
	}
}
