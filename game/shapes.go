package game

import (
	"fmt"
	"sync"
)

// Definitions is the canonical drawing of every shape. See ParseShape for the
// notation; '.' is used for empty squares so drawings keep their alignment.
var Definitions = map[ShapeKind]string{
	ShapeOne:   "X",
	ShapeTwo:   "XX",
	ShapeThree: "XOX",
	ShapeFour:  "XOXX",
	ShapeFive: `
X
X
O
X
X`,
	ShapeSeven: `
XX
.O
.X`,
	ShapeA: `
.X
XOX`,
	ShapeC: `
XX
X.`,
	ShapeF: `
.XX
XO.
.X.`,
	ShapeS: `
.OX
XX.`,
	ShapeL: `
X.
X.
O.
XX`,
	ShapeN: `
.X
OX
X.
X.`,
	ShapeO: `
XX
XX`,
	ShapeP: `
XX
XO
X.`,
	ShapeT: `
XXX
.O.
.X.`,
	ShapeU: `
X.X
XOX`,
	ShapeV: `
..X
.@X
XXX`,
	ShapeW: `
..X
.OX
XX.`,
	ShapeX: `
.X.
XOX
.X.`,
	ShapeY: `
.X
XO
.X
.X`,
	ShapeZ: `
XX.
.O.
.XX`,
}

// ShapeTable is an immutable set of all 21 shapes in canonical order.
type ShapeTable struct {
	shapes [NumShapeKinds]Shape
}

// LoadShapes parses one definition per kind. Every kind must be present.
func LoadShapes(defs map[ShapeKind]string) (*ShapeTable, error) {
	t := &ShapeTable{}
	for _, kind := range AllShapeKinds() {
		def, ok := defs[kind]
		if !ok {
			return nil, fmt.Errorf("%w: missing definition for %s", ErrInvalidShape, kind)
		}
		s, err := ParseShape(kind, def)
		if err != nil {
			return nil, err
		}
		t.shapes[kind] = s
	}
	return t, nil
}

var (
	defaultShapesOnce sync.Once
	defaultShapes     *ShapeTable
)

// DefaultShapes returns the canonical table, parsed once per process.
func DefaultShapes() *ShapeTable {
	defaultShapesOnce.Do(func() {
		t, err := LoadShapes(Definitions)
		if err != nil {
			panic(err) // static data
		}
		defaultShapes = t
	})
	return defaultShapes
}

// Shape returns a private copy of the shape for kind in its canonical orientation.
func (t *ShapeTable) Shape(kind ShapeKind) Shape {
	return t.shapes[kind].Clone()
}

func (t *ShapeTable) Kinds() []ShapeKind { return AllShapeKinds() }

func (t *ShapeTable) Len() int { return NumShapeKinds }

// TotalCells is the number of squares a player covers by placing every shape.
func (t *ShapeTable) TotalCells() int {
	n := 0
	for _, s := range t.shapes {
		n += len(s.Cells)
	}
	return n
}
