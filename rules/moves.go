package rules

import (
	"github.com/brensch/blokus/game"
)

// orientation is one distinct flip/rotation of a shape.
type orientation struct {
	flipped   bool
	rotations int
	cells     []game.Point
}

// orientations returns the distinct orientations of shape, flip first and
// then right rotations. Symmetric shapes have only their canonical one.
func orientations(shape game.Shape) []orientation {
	if !shape.Transformable {
		return []orientation{{cells: shape.Clone().Cells}}
	}
	seen := make(map[string]bool, 8)
	var out []orientation
	for _, flipped := range [...]bool{false, true} {
		for rot := 0; rot < 4; rot++ {
			p := game.NewOrientedPiece(shape, flipped, rot)
			p.SetAnchor(game.Point{})
			key, _ := p.Footprint()
			if seen[key] {
				continue
			}
			seen[key] = true
			cells, _ := p.Cells()
			out = append(out, orientation{flipped: flipped, rotations: rot, cells: cells})
		}
	}
	return out
}

// AvailableMoves returns every legal placement for the current player.
//
// Every remaining shape is tried in every orientation with its origin on
// every board square. Placements covering the same squares with the same
// shape are reported once. The result is ordered by shape table order, then
// anchor row, then anchor column, then orientation, and each piece is an
// independent anchored copy.
func (s *GameState) AvailableMoves() []*game.Piece {
	if s.GameOver() || s.retired[s.current] {
		return nil
	}

	var moves []*game.Piece
	seen := make(map[string]bool)
	cells := make([]game.Point, 0, 5)
	for _, kind := range s.RemainingShapes(s.current) {
		shape := s.shapes.Shape(kind)
		orients := orientations(shape)
		for r := 0; r < s.size; r++ {
			for c := 0; c < s.size; c++ {
				anchor := game.Point{Row: r, Col: c}
				for _, o := range orients {
					cells = cells[:0]
					for _, off := range o.cells {
						cells = append(cells, anchor.Add(off))
					}
					if !s.legal(cells) {
						continue
					}
					p := game.NewOrientedPiece(shape, o.flipped, o.rotations)
					p.SetAnchor(anchor)
					key, _ := p.Footprint()
					if seen[key] {
						continue
					}
					seen[key] = true
					moves = append(moves, p)
				}
			}
		}
	}
	return moves
}
