package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/blokus/game"
)

var (
	playerColors = []lipgloss.Color{"", "12", "9", "10", "11"}
	startStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func playerStyle(player int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(playerColors[player])
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%dx%d, %d players", m.state.Size(), m.state.Size(), m.state.NumPlayers())))
	sb.WriteString("\n\n")
	sb.WriteString(m.board())
	sb.WriteString("\n")
	sb.WriteString(m.status())
	sb.WriteString("\n")
	if m.message != "" {
		sb.WriteString(m.message)
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("arrows move  r/R rotate  f flip  tab next shape  enter place  p retire  q quit"))
	sb.WriteString("\n")
	return sb.String()
}

func (m *Model) board() string {
	var pending game.PointSet
	if m.pending != nil {
		cells, _ := m.pending.Cells()
		pending = game.NewPointSet(cells...)
	}
	current := m.state.CurrentPlayer()

	var sb strings.Builder
	for r, row := range m.state.Grid() {
		for c, cell := range row {
			pt := game.Point{Row: r, Col: c}
			switch {
			case pending.Contains(pt) && cell.Empty():
				sb.WriteString(playerStyle(current).Render("▒▒"))
			case pending.Contains(pt):
				sb.WriteString(badStyle.Render("XX"))
			case !cell.Empty():
				sb.WriteString(playerStyle(cell.Player).Render("██"))
			case m.state.IsStartPosition(pt):
				sb.WriteString(startStyle.Render("▞▞"))
			default:
				sb.WriteString(emptyStyle.Render("· "))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m *Model) status() string {
	parts := make([]string, 0, m.state.NumPlayers())
	for p := 1; p <= m.state.NumPlayers(); p++ {
		s := fmt.Sprintf("P%d %d", p, m.state.Score(p))
		if m.state.IsRetired(p) {
			s += " (retired)"
		}
		parts = append(parts, playerStyle(p).Render(s))
	}
	line := strings.Join(parts, "  ")

	if m.state.GameOver() {
		return line + " | game over, winners " + fmt.Sprint(m.state.Winners())
	}
	current := m.state.CurrentPlayer()
	if agent := m.agents[current-1]; agent != nil {
		return fmt.Sprintf("%s | P%d (%s) thinking", line, current, agent.Name())
	}
	if m.pending == nil {
		return fmt.Sprintf("%s | P%d has no shapes left, press p to retire", line, current)
	}
	legal, _ := m.state.LegalToPlace(m.pending)
	verdict := badStyle.Render("illegal")
	if legal {
		verdict = playerStyle(current).Render("legal")
	}
	return fmt.Sprintf("%s | P%d to move: %s %s", line, current, m.pending.Kind(), verdict)
}
