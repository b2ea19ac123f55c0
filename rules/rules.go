package rules

import (
	"fmt"

	"github.com/brensch/blokus/game"
)

// checkPiece enforces the preconditions shared by every legality query.
func (s *GameState) checkPiece(piece *game.Piece) ([]game.Point, error) {
	if piece == nil {
		return nil, fmt.Errorf("%w: nil piece", ErrIllegalPiece)
	}
	cells, err := piece.Cells()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIllegalPiece, err)
	}
	if !piece.Kind().Valid() || s.hasPlayed(s.current, piece.Kind()) {
		return nil, fmt.Errorf("%w: player %d has already played %s", ErrIllegalPiece, s.current, piece.Kind())
	}
	return cells, nil
}

// AnyWallCollisions reports whether any square of piece lies off the board.
func (s *GameState) AnyWallCollisions(piece *game.Piece) (bool, error) {
	cells, err := s.checkPiece(piece)
	if err != nil {
		return false, err
	}
	return s.wallCollision(cells), nil
}

// AnyCollisions reports whether piece is off the board or overlaps any
// occupied square.
func (s *GameState) AnyCollisions(piece *game.Piece) (bool, error) {
	cells, err := s.checkPiece(piece)
	if err != nil {
		return false, err
	}
	return s.collision(cells), nil
}

// LegalToPlace reports whether the current player may place piece as it is
// anchored and oriented.
func (s *GameState) LegalToPlace(piece *game.Piece) (bool, error) {
	cells, err := s.checkPiece(piece)
	if err != nil {
		return false, err
	}
	return s.legal(cells), nil
}

func (s *GameState) wallCollision(cells []game.Point) bool {
	for _, c := range cells {
		if !s.inBounds(c) {
			return true
		}
	}
	return false
}

func (s *GameState) collision(cells []game.Point) bool {
	if s.wallCollision(cells) {
		return true
	}
	for _, c := range cells {
		if !s.grid[c.Row][c.Col].Empty() {
			return true
		}
	}
	return false
}

func (s *GameState) legal(cells []game.Point) bool {
	// 1. Bounds and occupancy
	if s.collision(cells) {
		return false
	}

	// 2. First piece must cover a start position
	idx := s.current - 1
	if len(s.placed[idx]) == 0 {
		for _, c := range cells {
			if s.starts.Contains(c) {
				return true
			}
		}
		return false
	}

	// 3. Later pieces touch an own corner and no own edge.
	// Other players' pieces only matter through occupancy.
	corner := false
	for _, c := range cells {
		if s.edges[idx].Contains(c) {
			return false
		}
		if s.corners[idx].Contains(c) {
			corner = true
		}
	}
	return corner
}

// MaybePlace places piece for the current player if it is legal, scores it
// and passes the turn. It returns false without changing anything when the
// placement breaks a rule or the game is already over.
func (s *GameState) MaybePlace(piece *game.Piece) (bool, error) {
	if s.GameOver() {
		return false, nil
	}
	cells, err := s.checkPiece(piece)
	if err != nil {
		return false, err
	}
	if !s.legal(cells) {
		return false, nil
	}
	corners, err := piece.IntercardinalNeighbors()
	if err != nil {
		return false, err
	}
	edges, err := piece.CardinalNeighbors()
	if err != nil {
		return false, err
	}

	idx := s.current - 1
	kind := piece.Kind()
	for _, c := range cells {
		s.grid[c.Row][c.Col] = Cell{Player: s.current, Kind: kind}
	}
	s.placed[idx] = append(s.placed[idx], piece.Clone())
	s.played[idx][kind] = true
	for p := range corners {
		s.corners[idx].Add(p)
	}
	for p := range edges {
		s.edges[idx].Add(p)
	}

	s.scores[idx] += len(cells)
	if len(s.placed[idx]) == s.shapes.Len() {
		if kind == game.ShapeOne {
			s.scores[idx] += BonusFinalOne
		} else {
			s.scores[idx] += BonusAllPlaced
		}
	}

	s.advance()
	return true, nil
}

// Retire permanently removes the current player from the turn order.
// It does nothing once the game is over.
func (s *GameState) Retire() {
	if s.GameOver() {
		return
	}
	s.retired[s.current] = true
	s.advance()
}

// advance moves the turn to the next player who has not retired. When every
// player has retired the turn stays where it is.
func (s *GameState) advance() {
	for i := 1; i <= s.numPlayers; i++ {
		next := (s.current-1+i)%s.numPlayers + 1
		if !s.retired[next] {
			s.current = next
			return
		}
	}
}
