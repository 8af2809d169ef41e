package shape

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/vecsketch/vecsketch/geom"
)

// FlattenSteps is the number of straight spans each curved segment is sampled
// into when a shape is flattened to a point list for bounds and collider
// generation.
const FlattenSteps = 12

// Style carries the rendering attributes of a shape. It is plain data passed
// by value; there is no global style state.
type Style struct {
	StrokeColor color.RGBA
	FillColor   color.RGBA
	// PenWidth is the stroke half-thickness basis used by stroke expansion.
	PenWidth float64
	// Fill requests a solid interior in addition to the stroked outline.
	Fill bool
}

// DefaultStyle returns an opaque black hairline stroke with no fill.
func DefaultStyle() Style {
	return Style{
		StrokeColor: color.RGBA{A: 0xff},
		PenWidth:    1,
	}
}

// Snap is the result of snapping a query point to a shape: the closest point
// on the shape's boundary and the distance to it.
type Snap struct {
	Point    geom.Point
	Distance float64
}

// Outline pairs a shape's contour geometry with the style it should be
// rendered with. This is the hand-off format for external fill/stroke
// tessellation.
type Outline struct {
	Contours []geom.Contour
	Style    Style
}

// Shape is the closed set of drawable vector shapes: [Point], [Circle],
// [Ellipse], [Polyline], [Text], and [Compound].
//
// A shape is mutated in place by the transform and edit operations; any
// mutation invalidates the cached bounds and contour geometry, which are
// recomputed lazily on the next read. Shapes are not safe for concurrent
// use; each instance is owned by a single editor at a time.
type Shape interface {
	// ID returns the shape's stable identity. It is generated once at
	// construction and never changes, so external objects (colliders,
	// meshes) can be matched to the shape across edits.
	ID() string

	Style() Style
	SetStyle(Style)

	// Closed reports whether the shape's outline is a closed loop.
	Closed() bool

	// Distance returns the distance from pt to the shape's boundary.
	Distance(pt geom.Point) float64

	// Contains reports whether pt lies in the shape's interior.
	Contains(pt geom.Point) bool

	// Bounds returns the shape's axis-aligned bounding box. The result is
	// cached until the next mutation.
	Bounds() geom.Rect

	// InRect reports whether the shape lies entirely within r.
	InRect(r geom.Rect) bool

	// Snap returns the closest point on the shape's boundary to pt.
	Snap(pt geom.Point) Snap

	// Translate moves the shape by v.
	Translate(v geom.Vec2)

	// Rotate rotates the shape by the given angle in radians about a point.
	Rotate(radians float64, about geom.Point)

	// ScaleBy scales the shape about a point. Factors of zero are rejected
	// with [ErrInvalidScale] and leave the shape unchanged.
	ScaleBy(factor geom.Vec2, about geom.Point) error

	// TransformBy applies an arbitrary affine transform to the shape's
	// defining geometry.
	TransformBy(aff geom.Affine)

	// Contours returns the shape's outline as runs of cubic Bézier
	// segments, suitable for handing to an external tessellator. The
	// result is cached until the next mutation and must not be modified.
	Contours() []geom.Contour

	// Flatten returns the shape's boundary as a point list, with curved
	// segments sampled at [FlattenSteps] spans.
	Flatten() []geom.Point

	// PathData returns the outline as an SVG path "d" attribute string.
	// The y axis is flipped to SVG's y-down convention.
	PathData() string
}

// Outlines collects the renderable outlines of a shape, recursing into
// [Compound] children so that every leaf contributes its own style.
func Outlines(s Shape) []Outline {
	if c, ok := s.(*Compound); ok {
		var out []Outline
		for _, child := range c.children {
			out = append(out, Outlines(child)...)
		}
		return out
	}
	contours := s.Contours()
	if len(contours) == 0 {
		return nil
	}
	return []Outline{{Contours: contours, Style: s.Style()}}
}

// base carries the state shared by every shape variant: identity, style, and
// the dirty-flag guarded caches for bounds and contour geometry.
type base struct {
	id    string
	style Style

	bounds       geom.Rect
	boundsValid  bool
	contour      []geom.Contour
	contourValid bool
}

func newBase() base {
	return base{
		id:    uuid.NewString(),
		style: DefaultStyle(),
	}
}

func (b *base) ID() string { return b.id }

func (b *base) Style() Style { return b.style }

func (b *base) SetStyle(s Style) {
	b.style = s
	b.invalidate()
}

// invalidate drops the cached derived state. Every mutating operation must
// call this before returning.
func (b *base) invalidate() {
	b.boundsValid = false
	b.contourValid = false
}

func (b *base) cachedBounds(compute func() geom.Rect) geom.Rect {
	if !b.boundsValid {
		b.bounds = compute()
		b.boundsValid = true
	}
	return b.bounds
}

func (b *base) cachedContours(compute func() []geom.Contour) []geom.Contour {
	if !b.contourValid {
		b.contour = compute()
		b.contourValid = true
	}
	return b.contour
}
