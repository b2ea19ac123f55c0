// Package rules implements turn order, scoring and placement legality for
// the polyomino placement game.
//
// A GameState is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves; agents that need to look ahead
// should work on a Clone.
package rules

import (
	"fmt"
	"sort"

	"github.com/brensch/blokus/game"
)

const (
	MinPlayers   = 1
	MaxPlayers   = 4
	MinBoardSize = 5
	// MaxBoardSize bounds move enumeration, which is brute force over every cell.
	MaxBoardSize = 40

	// ScoreBaseline is minus the number of squares in the full shape set.
	ScoreBaseline  = -89
	BonusAllPlaced = 15
	BonusFinalOne  = 20
)

// Config describes a game before it starts.
type Config struct {
	NumPlayers     int
	Size           int
	StartPositions []game.Point
	// Shapes defaults to game.DefaultShapes().
	Shapes *game.ShapeTable
}

// Cell is one board square. The zero value is empty.
type Cell struct {
	Player int
	Kind   game.ShapeKind
}

func (c Cell) Empty() bool { return c.Player == 0 }

// GameState is the full state of one game.
type GameState struct {
	numPlayers int
	size       int
	starts     game.PointSet
	shapes     *game.ShapeTable

	grid    [][]Cell
	current int
	retired map[int]bool

	// Indexed by player-1.
	scores  []int
	placed  [][]*game.Piece
	played  [][game.NumShapeKinds]bool
	corners []game.PointSet
	edges   []game.PointSet
}

// New validates cfg and returns a game with player 1 to move.
func New(cfg Config) (*GameState, error) {
	if cfg.NumPlayers < MinPlayers || cfg.NumPlayers > MaxPlayers {
		return nil, fmt.Errorf("%w: players must be between %d and %d, got %d",
			ErrConfiguration, MinPlayers, MaxPlayers, cfg.NumPlayers)
	}
	if cfg.Size < MinBoardSize {
		return nil, fmt.Errorf("%w: board size must be at least %d, got %d", ErrConfiguration, MinBoardSize, cfg.Size)
	}
	if cfg.Size > MaxBoardSize {
		return nil, fmt.Errorf("%w: board size must be at most %d, got %d", ErrConfiguration, MaxBoardSize, cfg.Size)
	}
	starts := game.NewPointSet(cfg.StartPositions...)
	for p := range starts {
		if p.Row < 0 || p.Row >= cfg.Size || p.Col < 0 || p.Col >= cfg.Size {
			return nil, fmt.Errorf("%w: start position %s is off a %dx%d board", ErrConfiguration, p, cfg.Size, cfg.Size)
		}
	}
	if starts.Len() < cfg.NumPlayers {
		return nil, fmt.Errorf("%w: %d start positions for %d players", ErrConfiguration, starts.Len(), cfg.NumPlayers)
	}

	shapes := cfg.Shapes
	if shapes == nil {
		shapes = game.DefaultShapes()
	}

	s := &GameState{
		numPlayers: cfg.NumPlayers,
		size:       cfg.Size,
		starts:     starts,
		shapes:     shapes,
		grid:       make([][]Cell, cfg.Size),
		current:    1,
		retired:    make(map[int]bool),
		scores:     make([]int, cfg.NumPlayers),
		placed:     make([][]*game.Piece, cfg.NumPlayers),
		played:     make([][game.NumShapeKinds]bool, cfg.NumPlayers),
		corners:    make([]game.PointSet, cfg.NumPlayers),
		edges:      make([]game.PointSet, cfg.NumPlayers),
	}
	for r := range s.grid {
		s.grid[r] = make([]Cell, cfg.Size)
	}
	for i := 0; i < cfg.NumPlayers; i++ {
		s.scores[i] = ScoreBaseline
		s.corners[i] = make(game.PointSet)
		s.edges[i] = make(game.PointSet)
	}
	return s, nil
}

func (s *GameState) NumPlayers() int { return s.numPlayers }

func (s *GameState) Size() int { return s.size }

func (s *GameState) Shapes() *game.ShapeTable { return s.shapes }

// StartPositions returns the start cells in row-major order.
func (s *GameState) StartPositions() []game.Point { return s.starts.Sorted() }

func (s *GameState) IsStartPosition(p game.Point) bool { return s.starts.Contains(p) }

// Grid returns a copy of the board, indexed [row][col].
func (s *GameState) Grid() [][]Cell {
	out := make([][]Cell, s.size)
	for r := range s.grid {
		out[r] = append([]Cell(nil), s.grid[r]...)
	}
	return out
}

// CellAt returns the square at p; ok is false when p is off the board.
func (s *GameState) CellAt(p game.Point) (Cell, bool) {
	if !s.inBounds(p) {
		return Cell{}, false
	}
	return s.grid[p.Row][p.Col], true
}

func (s *GameState) CurrentPlayer() int { return s.current }

// RetiredPlayers returns retired player ids in ascending order.
func (s *GameState) RetiredPlayers() []int {
	out := make([]int, 0, len(s.retired))
	for p := range s.retired {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

func (s *GameState) IsRetired(player int) bool { return s.retired[player] }

func (s *GameState) validPlayer(player int) bool {
	return player >= 1 && player <= s.numPlayers
}

// PlacedPieces returns copies of the pieces player has placed, in play order.
func (s *GameState) PlacedPieces(player int) []*game.Piece {
	if !s.validPlayer(player) {
		return nil
	}
	out := make([]*game.Piece, len(s.placed[player-1]))
	for i, p := range s.placed[player-1] {
		out[i] = p.Clone()
	}
	return out
}

// RemainingShapes returns the kinds player has not played, in table order.
func (s *GameState) RemainingShapes(player int) []game.ShapeKind {
	if !s.validPlayer(player) {
		return nil
	}
	played := &s.played[player-1]
	out := make([]game.ShapeKind, 0, game.NumShapeKinds)
	for _, k := range s.shapes.Kinds() {
		if !played[k] {
			out = append(out, k)
		}
	}
	return out
}

func (s *GameState) hasPlayed(player int, kind game.ShapeKind) bool {
	return kind.Valid() && s.played[player-1][kind]
}

// Score returns player's score, including any completion bonus. Unknown
// players score zero.
func (s *GameState) Score(player int) int {
	if !s.validPlayer(player) {
		return 0
	}
	return s.scores[player-1]
}

// Scores returns every player's score; index i holds player i+1.
func (s *GameState) Scores() []int {
	return append([]int(nil), s.scores...)
}

// GameOver reports whether every player has retired or every player still
// in the game has run out of shapes.
func (s *GameState) GameOver() bool {
	if len(s.retired) == s.numPlayers {
		return true
	}
	for p := 1; p <= s.numPlayers; p++ {
		if s.retired[p] {
			continue
		}
		if len(s.placed[p-1]) < s.shapes.Len() {
			return false
		}
	}
	return true
}

// Winners returns the players sharing the top score once the game is over,
// in ascending order. It is empty while the game is in progress.
func (s *GameState) Winners() []int {
	if !s.GameOver() {
		return nil
	}
	best := s.scores[0]
	for _, sc := range s.scores[1:] {
		best = max(best, sc)
	}
	var out []int
	for i, sc := range s.scores {
		if sc == best {
			out = append(out, i+1)
		}
	}
	return out
}

// NewPiece returns an unanchored piece of kind from this game's shape table.
func (s *GameState) NewPiece(kind game.ShapeKind) *game.Piece {
	return game.NewPiece(s.shapes.Shape(kind))
}

// Clone returns a deep copy that shares no mutable state with s.
func (s *GameState) Clone() *GameState {
	out := &GameState{
		numPlayers: s.numPlayers,
		size:       s.size,
		starts:     s.starts,
		shapes:     s.shapes,
		grid:       s.Grid(),
		current:    s.current,
		retired:    make(map[int]bool, len(s.retired)),
		scores:     append([]int(nil), s.scores...),
		placed:     make([][]*game.Piece, s.numPlayers),
		played:     append([][game.NumShapeKinds]bool(nil), s.played...),
		corners:    make([]game.PointSet, s.numPlayers),
		edges:      make([]game.PointSet, s.numPlayers),
	}
	for p := range s.retired {
		out.retired[p] = true
	}
	for i := 0; i < s.numPlayers; i++ {
		out.placed[i] = make([]*game.Piece, len(s.placed[i]))
		for j, p := range s.placed[i] {
			out.placed[i][j] = p.Clone()
		}
		out.corners[i] = copySet(s.corners[i])
		out.edges[i] = copySet(s.edges[i])
	}
	return out
}

func copySet(in game.PointSet) game.PointSet {
	out := make(game.PointSet, len(in))
	for p := range in {
		out.Add(p)
	}
	return out
}

func (s *GameState) inBounds(p game.Point) bool {
	return p.Row >= 0 && p.Row < s.size && p.Col >= 0 && p.Col < s.size
}
