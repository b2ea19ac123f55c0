package main

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/blokus/selfplay"
)

var totalMoves atomic.Int64

type GameUpdate struct {
	GameID  string
	Plies   int
	Scores  []int
	Winners []int
}

// doneMsg is sent once the run has finished.
type doneMsg struct {
	tally selfplay.Tally
	err   error
}

type model struct {
	target      int
	gamesPlayed int
	ties        int
	wins        []int
	startTime   time.Time
	recentGames []string
	updates     chan GameUpdate
	done        chan doneMsg
	result      *doneMsg
}

var titleStyle = lipgloss.NewStyle().Bold(true)

func initialModel(target, players int, updates chan GameUpdate, done chan doneMsg) model {
	return model{
		target:    target,
		wins:      make([]int, players),
		startTime: time.Now(),
		updates:   updates,
		done:      done,
	}
}

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), waitForDone(m.done), tickCmd())
}

func waitForUpdate(updates chan GameUpdate) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func waitForDone(done chan doneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-done
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		return m, tickCmd()
	case GameUpdate:
		m.gamesPlayed++
		if len(msg.Winners) > 1 {
			m.ties++
		} else {
			for _, w := range msg.Winners {
				m.wins[w-1]++
			}
		}
		m.recentGames = append([]string{fmt.Sprintf("%s: %d plies, scores %v, winners %v",
			msg.GameID, msg.Plies, msg.Scores, msg.Winners)}, m.recentGames...)
		if len(m.recentGames) > 10 {
			m.recentGames = m.recentGames[:10]
		}
		return m, waitForUpdate(m.updates)
	case doneMsg:
		m.result = &msg
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)
	secs := max(duration.Seconds(), 1e-9)
	moves := totalMoves.Load()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Blokus self-play"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Games:          %d / %d\n", m.gamesPlayed, m.target)
	fmt.Fprintf(&sb, "Moves:          %d\n", moves)
	fmt.Fprintf(&sb, "Duration:       %s\n", duration.Round(time.Second))
	fmt.Fprintf(&sb, "Games/Sec:      %.2f\n", float64(m.gamesPlayed)/secs)
	fmt.Fprintf(&sb, "Moves/Sec:      %.2f\n\n", float64(moves)/secs)
	for i, w := range m.wins {
		fmt.Fprintf(&sb, "P%d wins:        %d\n", i+1, w)
	}
	fmt.Fprintf(&sb, "Ties:           %d\n\n", m.ties)

	sb.WriteString("Recent Games:\n")
	for _, g := range m.recentGames {
		sb.WriteString(g + "\n")
	}

	sb.WriteString("\nPress q to quit.\n")
	return sb.String()
}
