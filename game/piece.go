package game

import (
	"fmt"
	"strings"
)

// Piece is a shape positioned on the board by its anchor.
//
// Orientation is stored by transforming the piece's own shape in place, so
// every Piece holds a private copy and transforming one never affects another.
type Piece struct {
	shape    Shape
	anchor   Point
	anchored bool

	// Orientation relative to the canonical shape: flip first, then
	// rotations quarter turns clockwise.
	flipped   bool
	rotations int
}

// NewPiece returns an unanchored piece holding a copy of shape.
func NewPiece(shape Shape) *Piece {
	return &Piece{shape: shape.Clone()}
}

// NewOrientedPiece flips the copied shape first when flipped is set, then
// rotates it right rotations times (mod 4).
func NewOrientedPiece(shape Shape, flipped bool, rotations int) *Piece {
	p := NewPiece(shape)
	if flipped {
		p.flip()
	}
	for i := 0; i < mod4(rotations); i++ {
		p.rotate(1)
	}
	return p
}

func mod4(n int) int { return ((n % 4) + 4) % 4 }

func (p *Piece) flip() {
	if !p.shape.Transformable {
		return
	}
	p.shape.FlipHorizontally()
	p.flipped = !p.flipped
	p.rotations = mod4(-p.rotations)
}

// rotate turns the piece by quarter turns, clockwise when positive.
func (p *Piece) rotate(quarters int) {
	if !p.shape.Transformable {
		return
	}
	for i := 0; i < mod4(quarters); i++ {
		p.shape.RotateRight()
	}
	p.rotations = mod4(p.rotations + quarters)
}

// Orientation reports the flip and clockwise quarter turns that take the
// canonical shape to this piece's current one.
func (p *Piece) Orientation() (flipped bool, rotations int) {
	return p.flipped, p.rotations
}

// SetAnchor places the shape's origin at pt. Bounds are not checked here.
func (p *Piece) SetAnchor(pt Point) {
	p.anchor = pt
	p.anchored = true
}

func (p *Piece) Anchor() (Point, bool) { return p.anchor, p.anchored }

func (p *Piece) Kind() ShapeKind { return p.shape.Kind }

// Shape returns a copy of the piece's current orientation.
func (p *Piece) Shape() Shape { return p.shape.Clone() }

func (p *Piece) Size() int { return len(p.shape.Cells) }

func (p *Piece) Clone() *Piece {
	out := *p
	out.shape = p.shape.Clone()
	return &out
}

func (p *Piece) checkAnchor() error {
	if !p.anchored {
		return fmt.Errorf("%w: %s", ErrUnanchored, p.shape.Kind)
	}
	return nil
}

func (p *Piece) FlipHorizontally() error {
	if err := p.checkAnchor(); err != nil {
		return err
	}
	p.flip()
	return nil
}

func (p *Piece) RotateLeft() error {
	if err := p.checkAnchor(); err != nil {
		return err
	}
	p.rotate(-1)
	return nil
}

func (p *Piece) RotateRight() error {
	if err := p.checkAnchor(); err != nil {
		return err
	}
	p.rotate(1)
	return nil
}

// Cells returns the absolute squares covered by the piece, in shape order.
func (p *Piece) Cells() ([]Point, error) {
	if err := p.checkAnchor(); err != nil {
		return nil, err
	}
	out := make([]Point, len(p.shape.Cells))
	for i, c := range p.shape.Cells {
		out[i] = p.anchor.Add(c)
	}
	return out, nil
}

// CardinalNeighbors returns the squares sharing an edge with the piece,
// excluding the piece's own squares.
func (p *Piece) CardinalNeighbors() (PointSet, error) {
	cells, err := p.Cells()
	if err != nil {
		return nil, err
	}
	own := NewPointSet(cells...)
	out := make(PointSet)
	for _, c := range cells {
		for _, d := range cardinalOffsets {
			if n := c.Add(d); !own.Contains(n) {
				out.Add(n)
			}
		}
	}
	return out, nil
}

// IntercardinalNeighbors returns the squares touching the piece only at a
// corner: diagonal to some square, not owned and not a cardinal neighbor.
func (p *Piece) IntercardinalNeighbors() (PointSet, error) {
	cells, err := p.Cells()
	if err != nil {
		return nil, err
	}
	edges, err := p.CardinalNeighbors()
	if err != nil {
		return nil, err
	}
	own := NewPointSet(cells...)
	out := make(PointSet)
	for _, c := range cells {
		for _, d := range intercardinalOffsets {
			n := c.Add(d)
			if !own.Contains(n) && !edges.Contains(n) {
				out.Add(n)
			}
		}
	}
	return out, nil
}

// Footprint identifies a placement by kind and covered squares, so two
// orientations that cover the same squares compare equal.
func (p *Piece) Footprint() (string, error) {
	cells, err := p.Cells()
	if err != nil {
		return "", err
	}
	sortPoints(cells)
	var b strings.Builder
	b.WriteString(p.shape.Kind.String())
	for _, c := range cells {
		fmt.Fprintf(&b, ";%d,%d", c.Row, c.Col)
	}
	return b.String(), nil
}

func (p *Piece) String() string {
	if !p.anchored {
		return fmt.Sprintf("%s@unanchored", p.shape.Kind)
	}
	return fmt.Sprintf("%s@%s", p.shape.Kind, p.anchor)
}
