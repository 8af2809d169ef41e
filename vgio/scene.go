// Package vgio reconstructs editable shapes from externally parsed vector
// data. It consumes scene graphs of transformed contours (as produced by the
// SVG reader in this package, or any other parser) and DXF-style entity
// lists, and maps them onto the shape constructors.
package vgio

import (
	"math"

	"github.com/vecsketch/vecsketch/geom"
	"github.com/vecsketch/vecsketch/shape"
)

// CircleTolerance is the relative error band of the circle recognizer.
// Samples must sit within this fraction of the fitted radius.
const CircleTolerance = 0.005

// Node is one node of a parsed scene graph. Transforms nest: a contour held
// by a node is mapped by the composition of every transform from the root
// down to that node.
type Node struct {
	Transform geom.Affine
	Contours  []geom.Contour
	Style     shape.Style
	Children  []*Node
}

// NewNode returns a node with an identity transform and default style.
func NewNode() *Node {
	return &Node{Transform: geom.Identity, Style: shape.DefaultStyle()}
}

// Reconstruct walks the scene graph and converts every contour into a shape.
// Tessellated circles are recognized and rebuilt as true circles; everything
// else becomes a polyline. The result order is a depth-first traversal.
func Reconstruct(root *Node) []shape.Shape {
	if root == nil {
		return nil
	}
	var out []shape.Shape
	reconstructNode(root, geom.Identity, &out)
	return out
}

func reconstructNode(n *Node, parent geom.Affine, out *[]shape.Shape) {
	aff := parent.Mul(n.Transform)
	for _, c := range n.Contours {
		s := reconstructContour(c.Transform(aff))
		if s == nil {
			continue
		}
		s.SetStyle(n.Style)
		*out = append(*out, s)
	}
	for _, child := range n.Children {
		reconstructNode(child, aff, out)
	}
}

// reconstructContour builds a shape from a single flattened contour,
// preferring a recognized circle over a generic polyline.
func reconstructContour(c geom.Contour) shape.Shape {
	if circ := recognizeCircle(c); circ != nil {
		return circ
	}
	p, err := shape.NewPolylineFromContour(c)
	if err != nil {
		Logger().Warn("vgio: dropping degenerate contour", "err", err)
		return nil
	}
	return p
}

// recognizeCircle reclassifies a closed contour of four curved segments
// (plus an optional straight closing segment) as a circle when all on-curve
// points and segment midpoints land within CircleTolerance of one fitted
// radius around the bounding-box center. It is a best-effort round-trip aid
// for tessellated circles, not a general fitter; anything failing the test
// stays a polyline.
func recognizeCircle(c geom.Contour) *shape.Circle {
	if !c.Closed {
		return nil
	}
	segs := c.Segments
	if len(segs) == 5 {
		last := segs[4]
		if last.P1 != last.P0 || last.P2 != last.P3 {
			return nil
		}
		segs = segs[:4]
	}
	if len(segs) != 4 {
		return nil
	}

	samples := make([]geom.Point, 0, 2*len(segs))
	var bbox geom.Rect
	for i, seg := range segs {
		if i == 0 {
			bbox = geom.NewRectFromPoints(seg.P0, seg.P0)
		}
		bbox = bbox.UnionPoint(seg.P0)
		samples = append(samples, seg.P0, seg.Eval(0.5))
	}
	center := bbox.Center()

	radius := 0.0
	for _, s := range samples {
		radius += s.Sub(center).Hypot()
	}
	radius /= float64(len(samples))
	if radius <= 0 {
		return nil
	}
	for _, s := range samples {
		if math.Abs(s.Sub(center).Hypot()-radius) > CircleTolerance*radius {
			return nil
		}
	}
	circ, err := shape.NewCircle(center, radius)
	if err != nil {
		return nil
	}
	return circ
}
