package shape

import (
	"math"
	"slices"

	"github.com/vecsketch/vecsketch/geom"
)

// Compound aggregates an ordered list of child shapes, which it owns. All
// queries delegate to the children: distance is the minimum, containment is
// satisfied by any child, bounds are the union, and a compound is inside a
// rectangle only when every child is.
type Compound struct {
	base
	children []Shape
}

var _ Shape = (*Compound)(nil)

// NewCompound creates a compound shape owning the given children.
func NewCompound(children ...Shape) *Compound {
	return &Compound{
		base:     newBase(),
		children: slices.Clone(children),
	}
}

// Children returns the child list. The slice must not be modified directly;
// use Add and Remove.
func (c *Compound) Children() []Shape { return c.children }

// Add appends a child shape.
func (c *Compound) Add(s Shape) {
	c.children = append(c.children, s)
	c.invalidate()
}

// Remove removes the child with the given identity and reports whether it was
// found.
func (c *Compound) Remove(id string) bool {
	for i, child := range c.children {
		if child.ID() == id {
			c.children = slices.Delete(c.children, i, i+1)
			c.invalidate()
			return true
		}
	}
	return false
}

func (c *Compound) Closed() bool {
	for _, child := range c.children {
		if !child.Closed() {
			return false
		}
	}
	return len(c.children) > 0
}

func (c *Compound) Distance(pt geom.Point) float64 {
	best := math.Inf(1)
	for _, child := range c.children {
		if d := child.Distance(pt); d < best {
			best = d
		}
	}
	return best
}

func (c *Compound) Contains(pt geom.Point) bool {
	for _, child := range c.children {
		if child.Contains(pt) {
			return true
		}
	}
	return false
}

// Bounds is recomputed on every call rather than cached: children can be
// mutated directly, without going through the compound, so a cache here
// could go stale.
func (c *Compound) Bounds() geom.Rect {
	var bounds geom.Rect
	for i, child := range c.children {
		if i == 0 {
			bounds = child.Bounds()
		} else {
			bounds = bounds.Union(child.Bounds())
		}
	}
	return bounds
}

func (c *Compound) InRect(r geom.Rect) bool {
	for _, child := range c.children {
		if !child.InRect(r) {
			return false
		}
	}
	return len(c.children) > 0
}

func (c *Compound) Snap(pt geom.Point) Snap {
	best := Snap{Distance: math.Inf(1)}
	for _, child := range c.children {
		if s := child.Snap(pt); s.Distance < best.Distance {
			best = s
		}
	}
	return best
}

func (c *Compound) Translate(v geom.Vec2) {
	for _, child := range c.children {
		child.Translate(v)
	}
	c.invalidate()
}

func (c *Compound) Rotate(radians float64, about geom.Point) {
	for _, child := range c.children {
		child.Rotate(radians, about)
	}
	c.invalidate()
}

// ScaleBy scales every child. The factor is validated once up front so a
// rejected scale leaves no child modified.
func (c *Compound) ScaleBy(factor geom.Vec2, about geom.Point) error {
	if err := checkScale(factor); err != nil {
		return err
	}
	for _, child := range c.children {
		// Cannot fail: the factor was already validated.
		_ = child.ScaleBy(factor, about)
	}
	c.invalidate()
	return nil
}

func (c *Compound) TransformBy(aff geom.Affine) {
	for _, child := range c.children {
		child.TransformBy(aff)
	}
	c.invalidate()
}

// Contours concatenates the children's contours. Per-child styling is lost;
// use [Outlines] when styles matter. Like Bounds, this is not cached at the
// compound level.
func (c *Compound) Contours() []geom.Contour {
	var out []geom.Contour
	for _, child := range c.children {
		out = append(out, child.Contours()...)
	}
	return out
}

func (c *Compound) Flatten() []geom.Point {
	var pts []geom.Point
	for _, child := range c.children {
		pts = append(pts, child.Flatten()...)
	}
	return pts
}

func (c *Compound) PathData() string {
	return contoursPathData(c.Contours())
}
