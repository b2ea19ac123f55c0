package game

import (
	"errors"
	"reflect"
	"testing"
)

func anchored(kind ShapeKind, row, col int) *Piece {
	p := NewPiece(DefaultShapes().Shape(kind))
	p.SetAnchor(Point{Row: row, Col: col})
	return p
}

func TestPiece_UnanchoredErrors(t *testing.T) {
	p := NewPiece(DefaultShapes().Shape(ShapeL))

	if _, err := p.Cells(); !errors.Is(err, ErrUnanchored) {
		t.Fatalf("Cells err=%v want ErrUnanchored", err)
	}
	if _, err := p.CardinalNeighbors(); !errors.Is(err, ErrUnanchored) {
		t.Fatalf("CardinalNeighbors err=%v want ErrUnanchored", err)
	}
	if _, err := p.IntercardinalNeighbors(); !errors.Is(err, ErrUnanchored) {
		t.Fatalf("IntercardinalNeighbors err=%v want ErrUnanchored", err)
	}
	if err := p.FlipHorizontally(); !errors.Is(err, ErrUnanchored) {
		t.Fatalf("FlipHorizontally err=%v want ErrUnanchored", err)
	}
	if err := p.RotateLeft(); !errors.Is(err, ErrUnanchored) {
		t.Fatalf("RotateLeft err=%v want ErrUnanchored", err)
	}
	if err := p.RotateRight(); !errors.Is(err, ErrUnanchored) {
		t.Fatalf("RotateRight err=%v want ErrUnanchored", err)
	}
	if _, ok := p.Anchor(); ok {
		t.Fatalf("Anchor ok=true on fresh piece")
	}
}

func TestPiece_TransformsOnCells(t *testing.T) {
	steps := []struct {
		name  string
		apply func(p *Piece)
		want  []Point
	}{
		{"flip", func(p *Piece) { _ = p.FlipHorizontally() }, pts(5, 5, 5, 4, 6, 5)},
		{"right", func(p *Piece) { _ = p.RotateRight() }, pts(5, 5, 6, 5, 5, 4)},
		{"right x2", func(p *Piece) { _ = p.RotateRight(); _ = p.RotateRight() }, pts(5, 5, 5, 4, 4, 5)},
		{"flip + right x3", func(p *Piece) {
			_ = p.FlipHorizontally()
			for i := 0; i < 3; i++ {
				_ = p.RotateRight()
			}
		}, pts(5, 5, 6, 5, 5, 6)},
		{"flip x2 + right x4", func(p *Piece) {
			_ = p.FlipHorizontally()
			_ = p.FlipHorizontally()
			for i := 0; i < 4; i++ {
				_ = p.RotateRight()
			}
		}, pts(5, 5, 5, 6, 6, 5)},
	}
	for _, tc := range steps {
		p := anchored(ShapeC, 5, 5)
		got, err := p.Cells()
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if want := pts(5, 5, 5, 6, 6, 5); !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: initial cells=%v want=%v", tc.name, got, want)
		}
		tc.apply(p)
		got, _ = p.Cells()
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: cells=%v want=%v", tc.name, got, tc.want)
		}
	}
}

func TestPiece_CardinalNeighbors(t *testing.T) {
	cases := []struct {
		piece *Piece
		want  PointSet
	}{
		{anchored(ShapeV, 3, 3), NewPointSet(pts(1, 4, 2, 3, 2, 5, 3, 2, 3, 3, 3, 5, 4, 1, 4, 5, 5, 2, 5, 3, 5, 4)...)},
		{anchored(ShapeY, 2, 4), NewPointSet(pts(0, 4, 1, 3, 1, 5, 2, 2, 2, 5, 3, 3, 3, 5, 4, 3, 4, 5, 5, 4)...)},
		{anchored(ShapeZ, 3, 3), NewPointSet(pts(1, 2, 1, 3, 2, 1, 2, 4, 3, 2, 3, 4, 4, 2, 4, 5, 5, 3, 5, 4)...)},
	}
	for _, tc := range cases {
		got, err := tc.piece.CardinalNeighbors()
		if err != nil {
			t.Fatalf("%s: %v", tc.piece, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: cardinal=%v want=%v", tc.piece, got.Sorted(), tc.want.Sorted())
		}
	}
}

func TestPiece_IntercardinalNeighbors(t *testing.T) {
	cases := []struct {
		piece *Piece
		want  PointSet
	}{
		{anchored(ShapeV, 3, 3), NewPointSet(pts(1, 3, 1, 5, 3, 1, 5, 1, 5, 5)...)},
		{anchored(ShapeY, 2, 4), NewPointSet(pts(0, 3, 0, 5, 1, 2, 3, 2, 5, 3, 5, 5)...)},
		{anchored(ShapeZ, 3, 3), NewPointSet(pts(1, 1, 1, 4, 3, 1, 3, 5, 5, 2, 5, 5)...)},
	}
	for _, tc := range cases {
		got, err := tc.piece.IntercardinalNeighbors()
		if err != nil {
			t.Fatalf("%s: %v", tc.piece, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: intercardinal=%v want=%v", tc.piece, got.Sorted(), tc.want.Sorted())
		}
	}
}

func TestPiece_CopiesDoNotAlias(t *testing.T) {
	shape := DefaultShapes().Shape(ShapeL)
	a := NewPiece(shape)
	b := NewPiece(shape)
	a.SetAnchor(Point{5, 5})
	b.SetAnchor(Point{5, 5})

	if err := a.RotateRight(); err != nil {
		t.Fatalf("RotateRight: %v", err)
	}
	bc, _ := b.Cells()
	if want := pts(3, 5, 4, 5, 5, 5, 6, 5, 6, 6); !reflect.DeepEqual(bc, want) {
		t.Fatalf("b cells=%v want=%v", bc, want)
	}
	if !reflect.DeepEqual(shape.Cells, pts(-2, 0, -1, 0, 0, 0, 1, 0, 1, 1)) {
		t.Fatalf("source shape mutated: %v", shape.Cells)
	}

	c := a.Clone()
	_ = c.FlipHorizontally()
	ac, _ := a.Cells()
	cc, _ := c.Cells()
	if reflect.DeepEqual(ac, cc) {
		t.Fatalf("clone shares orientation with original: %v", ac)
	}
}

func TestNewOrientedPiece(t *testing.T) {
	shape := DefaultShapes().Shape(ShapeC)

	p := NewOrientedPiece(shape, true, 3)
	p.SetAnchor(Point{5, 5})
	got, _ := p.Cells()
	if want := pts(5, 5, 6, 5, 5, 6); !reflect.DeepEqual(got, want) {
		t.Fatalf("flipped+3 cells=%v want=%v", got, want)
	}

	q := NewOrientedPiece(shape, false, -1)
	q.SetAnchor(Point{5, 5})
	r := NewOrientedPiece(shape, false, 3)
	r.SetAnchor(Point{5, 5})
	qc, _ := q.Cells()
	rc, _ := r.Cells()
	if !reflect.DeepEqual(qc, rc) {
		t.Fatalf("rotation -1=%v want same as 3=%v", qc, rc)
	}
}

func TestPiece_Footprint(t *testing.T) {
	shape := DefaultShapes().Shape(ShapeTwo)
	a := NewPiece(shape)
	a.SetAnchor(Point{0, 0})
	b := NewOrientedPiece(shape, false, 2)
	b.SetAnchor(Point{0, 1})

	fa, err := a.Footprint()
	if err != nil {
		t.Fatalf("Footprint: %v", err)
	}
	fb, _ := b.Footprint()
	if fa != fb {
		t.Fatalf("footprints differ: %q vs %q", fa, fb)
	}

	c := NewPiece(shape)
	if _, err := c.Footprint(); !errors.Is(err, ErrUnanchored) {
		t.Fatalf("unanchored Footprint err=%v", err)
	}
}

func TestPiece_OrientationReproducesTransforms(t *testing.T) {
	seqs := []string{"", "f", "r", "l", "fr", "rf", "lf", "frr", "rfl", "flfr", "rrrf", "llfrf"}
	for _, kind := range []ShapeKind{ShapeF, ShapeN, ShapeY, ShapeX} {
		for _, seq := range seqs {
			p := anchored(kind, 4, 4)
			for _, op := range seq {
				switch op {
				case 'f':
					_ = p.FlipHorizontally()
				case 'r':
					_ = p.RotateRight()
				case 'l':
					_ = p.RotateLeft()
				}
			}
			flipped, rot := p.Orientation()
			q := NewOrientedPiece(DefaultShapes().Shape(kind), flipped, rot)
			q.SetAnchor(Point{4, 4})

			pc, _ := p.Cells()
			qc, _ := q.Cells()
			if !reflect.DeepEqual(NewPointSet(pc...), NewPointSet(qc...)) {
				t.Errorf("%s %q: orientation (%v,%d) gives %v want %v", kind, seq, flipped, rot, qc, pc)
			}
			if kind == ShapeX && (flipped || rot != 0) {
				t.Errorf("X %q: orientation (%v,%d) want identity", seq, flipped, rot)
			}
		}
	}
}
