package shape

import (
	"github.com/vecsketch/vecsketch/geom"
)

// ColliderKind selects which native 2D physics collider a shape maps to.
type ColliderKind int

const (
	// CircleColliderKind maps to a native circle collider.
	CircleColliderKind ColliderKind = iota + 1
	// PolygonColliderKind maps to a solid polygon collider built from the
	// flattened outline of a closed shape.
	PolygonColliderKind
	// EdgeColliderKind maps to an open chain-of-edges collider.
	EdgeColliderKind
)

// degenerateColliderRadius is substituted for shapes with no extent, so the
// physics engine still gets a usable primitive.
const degenerateColliderRadius = 1e-3

// Collider describes the 2D physics collider a shape should be backed by.
// ShapeID carries the shape's stable identity so a re-run can find and update
// the matching native collider object instead of recreating it.
type Collider struct {
	ShapeID string
	Kind    ColliderKind

	// Center and Radius are set for circle colliders.
	Center geom.Point
	Radius float64

	// Points is set for polygon and edge colliders.
	Points []geom.Point
}

// Colliders synthesizes collider descriptions for a shape. Compounds yield
// one collider per leaf child. Shapes with no sensible collider (empty
// polylines) yield none.
func Colliders(s Shape) []Collider {
	switch s := s.(type) {
	case *Compound:
		var out []Collider
		for _, child := range s.Children() {
			out = append(out, Colliders(child)...)
		}
		return out
	case *Circle:
		return []Collider{{
			ShapeID: s.ID(),
			Kind:    CircleColliderKind,
			Center:  s.Center(),
			Radius:  s.Radius(),
		}}
	case *Ellipse:
		// Approximate-circle collider: mean of the semi-axes.
		return []Collider{{
			ShapeID: s.ID(),
			Kind:    CircleColliderKind,
			Center:  s.Center(),
			Radius:  0.5 * (s.SemiMajor() + s.SemiMinor()),
		}}
	case *Point:
		return []Collider{{
			ShapeID: s.ID(),
			Kind:    CircleColliderKind,
			Center:  s.Position(),
			Radius:  degenerateColliderRadius,
		}}
	case *Text:
		return []Collider{{
			ShapeID: s.ID(),
			Kind:    CircleColliderKind,
			Center:  s.Position(),
			Radius:  degenerateColliderRadius,
		}}
	case *Polyline:
		pts := s.Flatten()
		if len(pts) < 2 {
			if len(pts) == 1 {
				return []Collider{{
					ShapeID: s.ID(),
					Kind:    CircleColliderKind,
					Center:  pts[0],
					Radius:  degenerateColliderRadius,
				}}
			}
			return nil
		}
		kind := EdgeColliderKind
		if s.Closed() {
			kind = PolygonColliderKind
		}
		return []Collider{{
			ShapeID: s.ID(),
			Kind:    kind,
			Points:  pts,
		}}
	default:
		return nil
	}
}
