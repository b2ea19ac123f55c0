// Package game defines the geometry of the polyomino placement game.
//
// These types describe shapes, their orientations and pieces anchored on a
// square board. They carry no game rules; legality lives in the rules package.
package game

import (
	"fmt"
	"sort"
)

// Point is a board coordinate.
// Coordinates are row-major: (0,0) is the top-left cell.
type Point struct {
	Row int
	Col int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{Row: p.Row + q.Row, Col: p.Col + q.Col}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Less orders points row-major.
func (p Point) Less(q Point) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

var (
	cardinalOffsets      = [...]Point{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}
	intercardinalOffsets = [...]Point{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// PointSet is an unordered set of points.
type PointSet map[Point]struct{}

func NewPointSet(points ...Point) PointSet {
	s := make(PointSet, len(points))
	for _, p := range points {
		s[p] = struct{}{}
	}
	return s
}

func (s PointSet) Add(p Point) { s[p] = struct{}{} }

func (s PointSet) Contains(p Point) bool {
	_, ok := s[p]
	return ok
}

func (s PointSet) Len() int { return len(s) }

// Sorted returns the points in row-major order.
func (s PointSet) Sorted() []Point {
	out := make([]Point, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sortPoints(out)
	return out
}

func sortPoints(pts []Point) {
	sort.Slice(pts, func(i, j int) bool { return pts[i].Less(pts[j]) })
}
