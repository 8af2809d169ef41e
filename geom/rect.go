package geom

import (
	"fmt"
)

// Rect is an axis-aligned rectangle, described by its minimum and maximum
// corners.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns a rectangle with the extents of p0 and p1,
// ensuring that width and height are non-negative.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// NewRectFromCenter returns a rectangle with the given half extents, centered
// around the center point.
func NewRectFromCenter(center Point, extent Vec2) Rect {
	return Rect{
		X0: center.X - extent.X,
		Y0: center.Y - extent.Y,
		X1: center.X + extent.X,
		Y1: center.Y + extent.Y,
	}
}

// BoundsOf returns the smallest rectangle enclosing all of pts. It returns the
// zero rectangle for an empty slice.
func BoundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := NewRectFromPoints(pts[0], pts[0])
	for _, pt := range pts[1:] {
		r = r.UnionPoint(pt)
	}
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%g, %g, %g, %g)", r.X0, r.Y0, r.X1, r.Y1)
}

// Abs returns a new rectangle with the same extents as r, but ensuring that
// width and height are non-negative.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

func (r Rect) MinX() float64 { return min(r.X0, r.X1) }
func (r Rect) MaxX() float64 { return max(r.X0, r.X1) }
func (r Rect) MinY() float64 { return min(r.Y0, r.Y1) }
func (r Rect) MaxY() float64 { return max(r.Y0, r.Y1) }

// Origin returns the minimum corner of the rectangle.
func (r Rect) Origin() Point {
	return Point{
		X: r.X0,
		Y: r.Y0,
	}
}

// Width returns the rectangle's width, defined as X1 − X0. It may be negative.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the rectangle's height, defined as Y1 − Y0. It may be
// negative.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Size returns the rectangle's extents as a vector.
func (r Rect) Size() Vec2 {
	return Vec2{
		X: r.Width(),
		Y: r.Height(),
	}
}

func (r Rect) Center() Point {
	return Point{
		X: 0.5 * (r.X0 + r.X1),
		Y: 0.5 * (r.Y0 + r.Y1),
	}
}

func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X0 &&
		pt.X < r.X1 &&
		pt.Y >= r.Y0 &&
		pt.Y < r.Y1
}

// Union returns the smallest rectangle enclosing r and o.
//
// Results are valid only if width and height are non-negative.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// UnionPoint computes the union with one point.
//
// This method includes the perimeter of zero-area rectangles.
// Thus, a succession of UnionPoint operations on a series of
// points yields their enclosing rectangle.
//
// Results are valid only if width and height are non-negative.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}

