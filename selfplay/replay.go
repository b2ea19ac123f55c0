package selfplay

import (
	"errors"
	"fmt"
	"sort"

	"github.com/brensch/blokus/game"
	"github.com/brensch/blokus/rules"
	"github.com/brensch/blokus/store"
)

var ErrReplay = errors.New("replay mismatch")

// Replay rebuilds a game from its exported move rows, applying them in ply
// order. Each placement is rebuilt from its shape, orientation and anchor and
// must cover exactly the recorded cells. onPly, when set, sees the state
// after every row.
func Replay(cfg rules.Config, rows []store.MoveRow, onPly func(row store.MoveRow, state *rules.GameState)) (*rules.GameState, error) {
	state, err := rules.New(cfg)
	if err != nil {
		return nil, err
	}
	rows = append([]store.MoveRow(nil), rows...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Ply < rows[j].Ply })

	for _, row := range rows {
		if int(row.Player) != state.CurrentPlayer() {
			return nil, fmt.Errorf("%w: ply %d is for player %d but player %d is to move",
				ErrReplay, row.Ply, row.Player, state.CurrentPlayer())
		}
		switch row.Action {
		case store.ActionRetire:
			state.Retire()
		case store.ActionPlace:
			piece, err := pieceFromRow(state, row)
			if err != nil {
				return nil, err
			}
			ok, err := state.MaybePlace(piece)
			if err != nil {
				return nil, fmt.Errorf("ply %d: %w", row.Ply, err)
			}
			if !ok {
				return nil, fmt.Errorf("%w: ply %d placement %s is illegal", ErrReplay, row.Ply, piece)
			}
		default:
			return nil, fmt.Errorf("%w: ply %d has unknown action %q", ErrReplay, row.Ply, row.Action)
		}
		if row.ScoreAfter != int32(state.Score(int(row.Player))) {
			return nil, fmt.Errorf("%w: ply %d score %d, recorded %d",
				ErrReplay, row.Ply, state.Score(int(row.Player)), row.ScoreAfter)
		}
		if onPly != nil {
			onPly(row, state)
		}
	}
	return state, nil
}

func pieceFromRow(state *rules.GameState, row store.MoveRow) (*game.Piece, error) {
	kind, ok := game.ParseShapeKind(row.Shape)
	if !ok {
		return nil, fmt.Errorf("%w: ply %d has unknown shape %q", ErrReplay, row.Ply, row.Shape)
	}
	piece := game.NewOrientedPiece(state.Shapes().Shape(kind), row.Flipped, int(row.Rotations))
	piece.SetAnchor(game.Point{Row: int(row.AnchorRow), Col: int(row.AnchorCol)})

	cells, err := piece.Cells()
	if err != nil {
		return nil, err
	}
	if len(cells) != len(row.CellRows) || len(cells) != len(row.CellCols) {
		return nil, fmt.Errorf("%w: ply %d covers %d cells, recorded %d", ErrReplay, row.Ply, len(cells), len(row.CellRows))
	}
	recorded := make(game.PointSet, len(cells))
	for i := range row.CellRows {
		recorded.Add(game.Point{Row: int(row.CellRows[i]), Col: int(row.CellCols[i])})
	}
	for _, c := range cells {
		if !recorded.Contains(c) {
			return nil, fmt.Errorf("%w: ply %d rebuilt %s does not match recorded cells", ErrReplay, row.Ply, piece)
		}
	}
	return piece, nil
}
