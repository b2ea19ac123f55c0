package game

import (
	"fmt"
	"strings"
)

// ShapeKind identifies one of the 21 canonical polyominoes.
type ShapeKind uint8

const (
	ShapeOne ShapeKind = iota
	ShapeTwo
	ShapeThree
	ShapeFour
	ShapeFive
	ShapeSeven
	ShapeA
	ShapeC
	ShapeF
	ShapeS
	ShapeL
	ShapeN
	ShapeO
	ShapeP
	ShapeT
	ShapeU
	ShapeV
	ShapeW
	ShapeX
	ShapeY
	ShapeZ

	NumShapeKinds = int(ShapeZ) + 1
)

var shapeKindNames = [NumShapeKinds]string{
	"ONE", "TWO", "THREE", "FOUR", "FIVE", "SEVEN", "A", "C", "F", "S", "L",
	"N", "LETTER_O", "P", "T", "U", "V", "W", "X", "Y", "Z",
}

var shapeKindSymbols = [NumShapeKinds]byte{
	'1', '2', '3', '4', '5', '7', 'A', 'C', 'F', 'S', 'L',
	'N', 'O', 'P', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
}

func (k ShapeKind) Valid() bool { return int(k) < NumShapeKinds }

func (k ShapeKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
	return shapeKindNames[k]
}

// Symbol is the single character used when drawing the shape on a board.
func (k ShapeKind) Symbol() byte {
	if !k.Valid() {
		return '?'
	}
	return shapeKindSymbols[k]
}

// ParseShapeKind accepts either the name ("LETTER_O") or the symbol ("O").
func ParseShapeKind(s string) (ShapeKind, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i := 0; i < NumShapeKinds; i++ {
		if s == shapeKindNames[i] || (len(s) == 1 && s[0] == shapeKindSymbols[i]) {
			return ShapeKind(i), true
		}
	}
	return 0, false
}

// AllShapeKinds returns every kind in canonical table order.
func AllShapeKinds() []ShapeKind {
	out := make([]ShapeKind, NumShapeKinds)
	for i := range out {
		out[i] = ShapeKind(i)
	}
	return out
}

// Symmetric kinds look the same under every rotation and flip.
func (k ShapeKind) symmetric() bool {
	return k == ShapeOne || k == ShapeO || k == ShapeX
}

// Shape is a polyomino in a particular orientation.
// Cells are offsets from Origin; Origin itself is fixed when the shape is parsed.
type Shape struct {
	Kind          ShapeKind
	Origin        Point
	Transformable bool
	Cells         []Point
}

// Clone returns a copy that shares no memory with s.
func (s Shape) Clone() Shape {
	out := s
	out.Cells = append([]Point(nil), s.Cells...)
	return out
}

// Size is the number of squares in the shape.
func (s Shape) Size() int { return len(s.Cells) }

// FlipHorizontally mirrors the shape across the vertical axis through its origin.
func (s *Shape) FlipHorizontally() {
	if !s.Transformable {
		return
	}
	for i, c := range s.Cells {
		if c.Col != 0 {
			s.Cells[i] = Point{Row: c.Row, Col: -c.Col}
		}
	}
}

// RotateRight rotates the shape 90 degrees clockwise about its origin.
func (s *Shape) RotateRight() {
	if !s.Transformable {
		return
	}
	for i, c := range s.Cells {
		if c != (Point{}) {
			s.Cells[i] = Point{Row: c.Col, Col: -c.Row}
		}
	}
}

// RotateLeft rotates the shape 90 degrees counter-clockwise about its origin.
func (s *Shape) RotateLeft() {
	if !s.Transformable {
		return
	}
	for i, c := range s.Cells {
		if c != (Point{}) {
			s.Cells[i] = Point{Row: -c.Col, Col: c.Row}
		}
	}
}

// ParseShape builds a Shape from its text definition.
//
// 'X' marks a filled square, 'O' a filled square that is also the origin and
// '@' an origin on an empty square. Any other character is empty. Without an
// origin marker the origin is the top-left corner of the drawing.
func ParseShape(kind ShapeKind, definition string) (Shape, error) {
	if !kind.Valid() {
		return Shape{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidShape, uint8(kind))
	}
	lines := trimDrawing(definition)

	var filled []Point
	origin := Point{}
	origins := 0
	for r, line := range lines {
		for c, ch := range line {
			p := Point{Row: r, Col: c}
			switch ch {
			case 'X':
				filled = append(filled, p)
			case 'O':
				filled = append(filled, p)
				origin = p
				origins++
			case '@':
				origin = p
				origins++
			}
		}
	}
	if len(filled) == 0 {
		return Shape{}, fmt.Errorf("%w: %s has no filled squares", ErrInvalidShape, kind)
	}
	if origins > 1 {
		return Shape{}, fmt.Errorf("%w: %s has %d origin markers", ErrInvalidShape, kind, origins)
	}

	cells := make([]Point, len(filled))
	for i, p := range filled {
		cells[i] = Point{Row: p.Row - origin.Row, Col: p.Col - origin.Col}
	}
	return Shape{
		Kind:          kind,
		Origin:        origin,
		Transformable: !kind.symmetric(),
		Cells:         cells,
	}, nil
}

// trimDrawing drops blank leading/trailing lines and the indentation common to
// the remaining ones.
func trimDrawing(definition string) []string {
	lines := strings.Split(strings.ReplaceAll(definition, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= indent {
			out[i] = line[indent:]
		}
	}
	return out
}
