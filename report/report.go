package report

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// AgentSummary aggregates every seat an agent played.
type AgentSummary struct {
	Agent      string
	Games      int64
	Wins       int64
	Ties       int64
	MeanScore  float64
	MeanPieces float64
}

func (a AgentSummary) WinRate() float64 {
	if a.Games == 0 {
		return 0
	}
	return float64(a.Wins) / float64(a.Games)
}

// ShapeUsage counts how often each shape was placed and how early.
type ShapeUsage struct {
	Shape      string
	Placements int64
	MeanPly    float64
}

// Summarize returns one row per agent found in the seat batches under root,
// ordered by agent name.
func Summarize(ctx context.Context, root string) ([]AgentSummary, error) {
	db, err := Open(root)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return querySummaries(ctx, db)
}

func querySummaries(ctx context.Context, db *sql.DB) ([]AgentSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
			agent,
			COUNT(*) AS games,
			COUNT(*) FILTER (WHERE won) AS wins,
			COUNT(*) FILTER (WHERE tied) AS ties,
			AVG(score) AS mean_score,
			AVG(pieces_placed) AS mean_pieces
		FROM seats
		GROUP BY agent
		ORDER BY agent`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AgentSummary
	for rows.Next() {
		var s AgentSummary
		if err := rows.Scan(&s.Agent, &s.Games, &s.Wins, &s.Ties, &s.MeanScore, &s.MeanPieces); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Shapes returns placement counts per shape from the move batches under
// root, most placed first.
func Shapes(ctx context.Context, root string) ([]ShapeUsage, error) {
	db, err := Open(root)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT shape, COUNT(*) AS placements, AVG(ply) AS mean_ply
		FROM moves
		WHERE action = 'place'
		GROUP BY shape
		ORDER BY placements DESC, shape`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ShapeUsage
	for rows.Next() {
		var u ShapeUsage
		if err := rows.Scan(&u.Shape, &u.Placements, &u.MeanPly); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func render(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// Format writes summaries as a table.
func Format(w io.Writer, rows []AgentSummary) error {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.Agent,
			strconv.FormatInt(r.Games, 10),
			strconv.FormatInt(r.Wins, 10),
			strconv.FormatInt(r.Ties, 10),
			fmt.Sprintf("%.1f%%", r.WinRate()*100),
			fmt.Sprintf("%.2f", r.MeanScore),
			fmt.Sprintf("%.2f", r.MeanPieces),
		})
	}
	_, err := fmt.Fprintln(w, render([]string{"agent", "seats", "wins", "ties", "win rate", "mean score", "mean pieces"}, data))
	return err
}

// FormatShapes writes shape usage as a table.
func FormatShapes(w io.Writer, rows []ShapeUsage) error {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Shape, strconv.FormatInt(r.Placements, 10), fmt.Sprintf("%.1f", r.MeanPly)})
	}
	_, err := fmt.Fprintln(w, render([]string{"shape", "placements", "mean ply"}, data))
	return err
}
