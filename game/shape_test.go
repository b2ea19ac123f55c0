package game

import (
	"errors"
	"reflect"
	"testing"
)

func pts(coords ...int) []Point {
	out := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, Point{Row: coords[i], Col: coords[i+1]})
	}
	return out
}

func TestDefaultShapes_Loaded(t *testing.T) {
	table := DefaultShapes()

	cases := []struct {
		kind          ShapeKind
		origin        Point
		transformable bool
		cells         []Point
	}{
		{ShapeOne, Point{0, 0}, false, pts(0, 0)},
		{ShapeTwo, Point{0, 0}, true, pts(0, 0, 0, 1)},
		{ShapeThree, Point{0, 1}, true, pts(0, -1, 0, 0, 0, 1)},
		{ShapeC, Point{0, 0}, true, pts(0, 0, 0, 1, 1, 0)},
		{ShapeFour, Point{0, 1}, true, pts(0, -1, 0, 0, 0, 1, 0, 2)},
		{ShapeSeven, Point{1, 1}, true, pts(-1, -1, -1, 0, 0, 0, 1, 0)},
		{ShapeS, Point{0, 1}, true, pts(0, 0, 0, 1, 1, -1, 1, 0)},
		{ShapeO, Point{0, 0}, false, pts(0, 0, 0, 1, 1, 0, 1, 1)},
		{ShapeA, Point{1, 1}, true, pts(-1, 0, 0, -1, 0, 0, 0, 1)},
		{ShapeF, Point{1, 1}, true, pts(-1, 0, -1, 1, 0, -1, 0, 0, 1, 0)},
		{ShapeFive, Point{2, 0}, true, pts(-2, 0, -1, 0, 0, 0, 1, 0, 2, 0)},
		{ShapeL, Point{2, 0}, true, pts(-2, 0, -1, 0, 0, 0, 1, 0, 1, 1)},
		{ShapeN, Point{1, 0}, true, pts(-1, 1, 0, 0, 0, 1, 1, 0, 2, 0)},
		{ShapeP, Point{1, 1}, true, pts(-1, -1, -1, 0, 0, -1, 0, 0, 1, -1)},
		{ShapeT, Point{1, 1}, true, pts(-1, -1, -1, 0, -1, 1, 0, 0, 1, 0)},
		{ShapeU, Point{1, 1}, true, pts(-1, -1, -1, 1, 0, -1, 0, 0, 0, 1)},
		{ShapeV, Point{1, 1}, true, pts(-1, 1, 0, 1, 1, -1, 1, 0, 1, 1)},
		{ShapeW, Point{1, 1}, true, pts(-1, 1, 0, 0, 0, 1, 1, -1, 1, 0)},
		{ShapeX, Point{1, 1}, false, pts(-1, 0, 0, -1, 0, 0, 0, 1, 1, 0)},
		{ShapeY, Point{1, 1}, true, pts(-1, 0, 0, -1, 0, 0, 1, 0, 2, 0)},
		{ShapeZ, Point{1, 1}, true, pts(-1, -1, -1, 0, 0, 0, 1, 0, 1, 1)},
	}
	if len(cases) != NumShapeKinds {
		t.Fatalf("cases=%d want=%d", len(cases), NumShapeKinds)
	}
	for _, tc := range cases {
		s := table.Shape(tc.kind)
		if s.Kind != tc.kind {
			t.Errorf("%s: kind=%s", tc.kind, s.Kind)
		}
		if s.Origin != tc.origin {
			t.Errorf("%s: origin=%v want=%v", tc.kind, s.Origin, tc.origin)
		}
		if s.Transformable != tc.transformable {
			t.Errorf("%s: transformable=%v want=%v", tc.kind, s.Transformable, tc.transformable)
		}
		if !reflect.DeepEqual(s.Cells, tc.cells) {
			t.Errorf("%s: cells=%v want=%v", tc.kind, s.Cells, tc.cells)
		}
	}
	if got := table.TotalCells(); got != 89 {
		t.Fatalf("total cells=%d want=89", got)
	}
}

func TestShape_TableReturnsCopies(t *testing.T) {
	table := DefaultShapes()
	s := table.Shape(ShapeV)
	s.RotateRight()
	s.Cells[0] = Point{9, 9}

	again := table.Shape(ShapeV)
	if !reflect.DeepEqual(again.Cells, pts(-1, 1, 0, 1, 1, -1, 1, 0, 1, 1)) {
		t.Fatalf("table shape mutated: %v", again.Cells)
	}
}

func TestShape_FlipHorizontally(t *testing.T) {
	table := DefaultShapes()

	v := table.Shape(ShapeV)
	v.FlipHorizontally()
	if want := pts(-1, -1, 0, -1, 1, 1, 1, 0, 1, -1); !reflect.DeepEqual(v.Cells, want) {
		t.Fatalf("V flipped=%v want=%v", v.Cells, want)
	}

	y := table.Shape(ShapeY)
	y.FlipHorizontally()
	if want := pts(-1, 0, 0, 1, 0, 0, 1, 0, 2, 0); !reflect.DeepEqual(y.Cells, want) {
		t.Fatalf("Y flipped=%v want=%v", y.Cells, want)
	}

	z := table.Shape(ShapeZ)
	z.FlipHorizontally()
	if want := pts(-1, 1, -1, 0, 0, 0, 1, 0, 1, -1); !reflect.DeepEqual(z.Cells, want) {
		t.Fatalf("Z flipped=%v want=%v", z.Cells, want)
	}
}

func TestShape_RotateLeft(t *testing.T) {
	table := DefaultShapes()

	v := table.Shape(ShapeV)
	v.RotateLeft()
	if want := pts(-1, -1, -1, 0, 1, 1, 0, 1, -1, 1); !reflect.DeepEqual(v.Cells, want) {
		t.Fatalf("V left=%v want=%v", v.Cells, want)
	}

	y := table.Shape(ShapeY)
	y.RotateLeft()
	if want := pts(0, -1, 1, 0, 0, 0, 0, 1, 0, 2); !reflect.DeepEqual(y.Cells, want) {
		t.Fatalf("Y left=%v want=%v", y.Cells, want)
	}

	z := table.Shape(ShapeZ)
	z.RotateLeft()
	if want := pts(1, -1, 0, -1, 0, 0, 0, 1, -1, 1); !reflect.DeepEqual(z.Cells, want) {
		t.Fatalf("Z left=%v want=%v", z.Cells, want)
	}
}

func TestShape_RotateRight(t *testing.T) {
	table := DefaultShapes()

	v := table.Shape(ShapeV)
	v.RotateRight()
	if want := pts(1, 1, 1, 0, -1, -1, 0, -1, 1, -1); !reflect.DeepEqual(v.Cells, want) {
		t.Fatalf("V right=%v want=%v", v.Cells, want)
	}

	y := table.Shape(ShapeY)
	y.RotateRight()
	if want := pts(0, 1, -1, 0, 0, 0, 0, -1, 0, -2); !reflect.DeepEqual(y.Cells, want) {
		t.Fatalf("Y right=%v want=%v", y.Cells, want)
	}

	z := table.Shape(ShapeZ)
	z.RotateRight()
	if want := pts(-1, 1, 0, 1, 0, 0, 0, -1, 1, -1); !reflect.DeepEqual(z.Cells, want) {
		t.Fatalf("Z right=%v want=%v", z.Cells, want)
	}
}

func TestShape_TransformCyclesRestoreCells(t *testing.T) {
	table := DefaultShapes()
	for _, kind := range AllShapeKinds() {
		orig := NewPointSet(table.Shape(kind).Cells...)

		s := table.Shape(kind)
		for i := 0; i < 4; i++ {
			s.RotateRight()
		}
		if !reflect.DeepEqual(NewPointSet(s.Cells...), orig) {
			t.Errorf("%s: four right rotations=%v", kind, s.Cells)
		}

		s = table.Shape(kind)
		for i := 0; i < 4; i++ {
			s.RotateLeft()
		}
		if !reflect.DeepEqual(NewPointSet(s.Cells...), orig) {
			t.Errorf("%s: four left rotations=%v", kind, s.Cells)
		}

		s = table.Shape(kind)
		s.FlipHorizontally()
		s.FlipHorizontally()
		if !reflect.DeepEqual(NewPointSet(s.Cells...), orig) {
			t.Errorf("%s: two flips=%v", kind, s.Cells)
		}

		s = table.Shape(kind)
		s.RotateLeft()
		s.RotateRight()
		if !reflect.DeepEqual(NewPointSet(s.Cells...), orig) {
			t.Errorf("%s: left then right=%v", kind, s.Cells)
		}
	}
}

func TestShape_SymmetricKindsIgnoreTransforms(t *testing.T) {
	table := DefaultShapes()
	for _, kind := range []ShapeKind{ShapeOne, ShapeO, ShapeX} {
		s := table.Shape(kind)
		want := append([]Point(nil), s.Cells...)
		s.RotateRight()
		s.FlipHorizontally()
		s.RotateLeft()
		s.RotateLeft()
		if !reflect.DeepEqual(s.Cells, want) {
			t.Errorf("%s: cells=%v want=%v", kind, s.Cells, want)
		}
	}
}

func TestParseShape(t *testing.T) {
	s, err := ParseShape(ShapeT, `
		XXX
		.O.
		.X.
	`)
	if err != nil {
		t.Fatalf("ParseShape: %v", err)
	}
	if s.Origin != (Point{1, 1}) {
		t.Fatalf("origin=%v want=(1,1)", s.Origin)
	}
	if want := pts(-1, -1, -1, 0, -1, 1, 0, 0, 1, 0); !reflect.DeepEqual(s.Cells, want) {
		t.Fatalf("cells=%v want=%v", s.Cells, want)
	}

	if _, err := ParseShape(ShapeOne, "...\n. ."); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("empty drawing err=%v want ErrInvalidShape", err)
	}
	if _, err := ParseShape(ShapeTwo, "OO"); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("two origins err=%v want ErrInvalidShape", err)
	}
}

func TestLoadShapes_MissingKind(t *testing.T) {
	defs := make(map[ShapeKind]string, len(Definitions))
	for k, v := range Definitions {
		defs[k] = v
	}
	delete(defs, ShapeW)
	if _, err := LoadShapes(defs); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("err=%v want ErrInvalidShape", err)
	}
}

func TestParseShapeKind(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want ShapeKind
	}{
		{"1", ShapeOne}, {"letter_o", ShapeO}, {"O", ShapeO}, {"seven", ShapeSeven}, {"z", ShapeZ},
	} {
		got, ok := ParseShapeKind(tc.in)
		if !ok || got != tc.want {
			t.Errorf("ParseShapeKind(%q)=%s,%v want=%s", tc.in, got, ok, tc.want)
		}
	}
	if _, ok := ParseShapeKind("Q"); ok {
		t.Fatalf("ParseShapeKind(Q) ok=true")
	}
}
