// visualize.go - Plain text boards for logs and tests.
package selfplay

import (
	"fmt"
	"strings"

	"github.com/brensch/blokus/game"
	"github.com/brensch/blokus/rules"
)

// RenderBoard draws the board one row per line: a player's digit on their
// squares, '*' on uncovered start positions and '.' elsewhere. A status line
// with scores follows.
func RenderBoard(state *rules.GameState) string {
	var sb strings.Builder
	for r, row := range state.Grid() {
		for c, cell := range row {
			switch {
			case !cell.Empty():
				sb.WriteByte(byte('0' + cell.Player))
			case state.IsStartPosition(game.Point{Row: r, Col: c}):
				sb.WriteByte('*')
			default:
				sb.WriteByte('.')
			}
			if c < len(row)-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}

	parts := make([]string, 0, state.NumPlayers())
	for p := 1; p <= state.NumPlayers(); p++ {
		mark := ""
		if state.IsRetired(p) {
			mark = " (retired)"
		}
		parts = append(parts, fmt.Sprintf("P%d=%d%s", p, state.Score(p), mark))
	}
	if state.GameOver() {
		fmt.Fprintf(&sb, "%s | game over, winners %v\n", strings.Join(parts, " "), state.Winners())
	} else {
		fmt.Fprintf(&sb, "%s | to move: P%d\n", strings.Join(parts, " "), state.CurrentPlayer())
	}
	return sb.String()
}
