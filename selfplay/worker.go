package selfplay

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/brensch/blokus/game"
	"github.com/brensch/blokus/rules"
	"github.com/brensch/blokus/store"
)

const DefaultSource = "selfplay"

type PlayOptions struct {
	// GameID defaults to a random UUID.
	GameID string
	// Source is copied into every exported row.
	Source string
	// Verbose logs the board after every action at debug level.
	Verbose bool
	// OnStep is called after every action.
	OnStep func()
}

// Outcome is a finished game and the rows that describe it.
type Outcome struct {
	GameID  string
	Plies   int
	Scores  []int
	Winners []int
	Agents  []string
	Moves   []store.MoveRow
	Seats   []store.SeatRow
	Final   *rules.GameState
}

// Tied reports whether more than one seat shares the top score.
func (o Outcome) Tied() bool { return len(o.Winners) > 1 }

// PlayGame plays one game to completion with agents[i] in seat i+1. A player
// with no legal move retires. Cancelling ctx stops the game between actions
// and returns ctx.Err().
func PlayGame(ctx context.Context, cfg rules.Config, agents []Agent, opts PlayOptions) (Outcome, error) {
	if len(agents) != cfg.NumPlayers {
		return Outcome{}, fmt.Errorf("%w: %d agents for %d players", ErrNoAgent, len(agents), cfg.NumPlayers)
	}
	for i, a := range agents {
		if a == nil {
			return Outcome{}, fmt.Errorf("%w: seat %d", ErrNoAgent, i+1)
		}
	}
	state, err := rules.New(cfg)
	if err != nil {
		return Outcome{}, err
	}

	gameID := opts.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}
	source := opts.Source
	if source == "" {
		source = DefaultSource
	}
	logger := log.With().Str("game_id", gameID).Logger()

	out := Outcome{GameID: gameID, Agents: make([]string, len(agents))}
	for i, a := range agents {
		out.Agents[i] = a.Name()
	}
	rows := make([]store.MoveRow, 0, 64)

	for ply := 0; !state.GameOver(); ply++ {
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		default:
		}

		player := state.CurrentPlayer()
		agent := agents[player-1]
		moves := state.AvailableMoves()

		row := store.MoveRow{
			GameID:    gameID,
			Ply:       int32(ply),
			Player:    int32(player),
			Agent:     agent.Name(),
			Action:    store.ActionRetire,
			AnchorRow: -1,
			AnchorCol: -1,
			Moves:     int32(len(moves)),
			Source:    source,
		}

		if len(moves) == 0 {
			state.Retire()
		} else {
			idx := agent.Choose(state, moves)
			if idx < 0 || idx >= len(moves) {
				return Outcome{}, fmt.Errorf("agent %s chose move %d of %d", agent.Name(), idx, len(moves))
			}
			move := moves[idx]
			ok, err := state.MaybePlace(move)
			if err != nil {
				return Outcome{}, fmt.Errorf("place %s: %w", move, err)
			}
			if !ok {
				return Outcome{}, fmt.Errorf("offered move %s was rejected", move)
			}
			fillPlacement(&row, move)
		}
		row.ScoreAfter = int32(state.Score(player))
		rows = append(rows, row)

		if opts.Verbose {
			logger.Debug().
				Int("ply", ply).
				Int("player", player).
				Str("agent", agent.Name()).
				Str("action", row.Action).
				Str("shape", row.Shape).
				Int("moves", len(moves)).
				Msg("\n" + RenderBoard(state))
		}
		if opts.OnStep != nil {
			opts.OnStep()
		}
	}

	out.Plies = len(rows)
	out.Moves = rows
	out.Scores = state.Scores()
	out.Winners = state.Winners()
	out.Final = state
	out.Seats = seatRows(out, state, cfg, source)

	logger.Debug().
		Ints("scores", out.Scores).
		Ints("winners", out.Winners).
		Int("plies", out.Plies).
		Msg("game finished")
	return out, nil
}

func fillPlacement(row *store.MoveRow, move *game.Piece) {
	anchor, _ := move.Anchor()
	flipped, rotations := move.Orientation()
	cells, _ := move.Cells()

	row.Action = store.ActionPlace
	row.Shape = move.Kind().String()
	row.AnchorRow = int32(anchor.Row)
	row.AnchorCol = int32(anchor.Col)
	row.Flipped = flipped
	row.Rotations = int32(rotations)
	row.CellRows = make([]int32, len(cells))
	row.CellCols = make([]int32, len(cells))
	for i, c := range cells {
		row.CellRows[i] = int32(c.Row)
		row.CellCols[i] = int32(c.Col)
	}
}

func seatRows(out Outcome, state *rules.GameState, cfg rules.Config, source string) []store.SeatRow {
	won := make(map[int]bool, len(out.Winners))
	for _, w := range out.Winners {
		won[w] = true
	}
	seats := make([]store.SeatRow, state.NumPlayers())
	for i := range seats {
		p := i + 1
		seats[i] = store.SeatRow{
			GameID:       out.GameID,
			Seat:         int32(p),
			Agent:        out.Agents[i],
			Score:        int32(state.Score(p)),
			Won:          won[p] && !out.Tied(),
			Tied:         won[p] && out.Tied(),
			PiecesPlaced: int32(len(state.PlacedPieces(p))),
			Size:         int32(cfg.Size),
			Players:      int32(cfg.NumPlayers),
			Plies:        int32(out.Plies),
			Source:       source,
		}
	}
	return seats
}
