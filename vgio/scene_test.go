package vgio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecsketch/vecsketch/geom"
	"github.com/vecsketch/vecsketch/shape"
)

func TestReconstructCircleRoundTrip(t *testing.T) {
	src, err := shape.NewCircle(geom.Pt(3, -2), 7)
	require.NoError(t, err)

	node := NewNode()
	node.Contours = src.Contours()
	shapes := Reconstruct(node)
	require.Len(t, shapes, 1)

	circ, ok := shapes[0].(*shape.Circle)
	require.True(t, ok, "tessellated circle must be reclassified, got %T", shapes[0])
	assert.InDelta(t, 3, circ.Center().X, 7*CircleTolerance)
	assert.InDelta(t, -2, circ.Center().Y, 7*CircleTolerance)
	assert.InDelta(t, 7, circ.Radius(), 7*CircleTolerance)
}

func TestReconstructSquareStaysPolyline(t *testing.T) {
	square := shape.NewRect(geom.Rect{X0: 0, Y0: 0, X1: 2, Y1: 2})

	node := NewNode()
	node.Contours = square.Contours()
	shapes := Reconstruct(node)
	require.Len(t, shapes, 1)

	p, ok := shapes[0].(*shape.Polyline)
	require.True(t, ok, "got %T, expected a polyline", shapes[0])
	assert.True(t, p.Closed())
	assert.Equal(t, 4, p.VertexCount())
}

func TestReconstructEllipseStaysPolyline(t *testing.T) {
	// A 2:1 ellipse passes the segment-count check but fails the radius
	// band; it must not be misclassified as a circle.
	e, err := shape.NewEllipse(geom.Pt(0, 0), geom.Vec(4, 0), 0.866)
	require.NoError(t, err)

	node := NewNode()
	node.Contours = e.Contours()
	shapes := Reconstruct(node)
	require.Len(t, shapes, 1)
	_, ok := shapes[0].(*shape.Polyline)
	assert.True(t, ok, "got %T, expected a polyline", shapes[0])
}

func TestReconstructNestedTransforms(t *testing.T) {
	leaf := NewNode()
	leaf.Transform = geom.Translate(geom.Vec(1, 0))
	leaf.Contours = []geom.Contour{{
		Segments: []geom.CubicBez{
			{P0: geom.Pt(0, 0), P1: geom.Pt(0, 0), P2: geom.Pt(1, 0), P3: geom.Pt(1, 0)},
		},
	}}

	mid := NewNode()
	mid.Transform = geom.Scale(2, 2)
	mid.Children = []*Node{leaf}

	root := NewNode()
	root.Transform = geom.Translate(geom.Vec(10, 10))
	root.Children = []*Node{mid}

	shapes := Reconstruct(root)
	require.Len(t, shapes, 1)
	p := shapes[0].(*shape.Polyline)

	// Composition order is parent∘child: translate, then scale, then the
	// leaf's own offset.
	v0 := p.Vertex(0).Position
	v1 := p.Vertex(1).Position
	assert.InDelta(t, 12, v0.X, 1e-12)
	assert.InDelta(t, 10, v0.Y, 1e-12)
	assert.InDelta(t, 14, v1.X, 1e-12)
}

func TestReconstructAppliesStyle(t *testing.T) {
	node := NewNode()
	node.Style.PenWidth = 4
	node.Contours = []geom.Contour{{
		Segments: []geom.CubicBez{
			{P0: geom.Pt(0, 0), P1: geom.Pt(0, 0), P2: geom.Pt(1, 0), P3: geom.Pt(1, 0)},
		},
	}}
	shapes := Reconstruct(node)
	require.Len(t, shapes, 1)
	assert.Equal(t, 4.0, shapes[0].Style().PenWidth)
}

func TestRecognizeCircleWithClosingSegment(t *testing.T) {
	// Four quarter arcs plus an explicit degenerate closing line, as path
	// parsing can produce.
	src, err := shape.NewCircle(geom.Pt(0, 0), 2)
	require.NoError(t, err)
	c := src.Contours()[0]
	closing := geom.CubicBez{
		P0: c.Segments[3].P3, P1: c.Segments[3].P3,
		P2: c.Segments[0].P0, P3: c.Segments[0].P0,
	}
	c.Segments = append(c.Segments, closing)

	circ := recognizeCircle(c)
	require.NotNil(t, circ)
	assert.InDelta(t, 2, circ.Radius(), 2*CircleTolerance)
}

func TestRecognizeCircleRejectsOpen(t *testing.T) {
	src, err := shape.NewCircle(geom.Pt(0, 0), 2)
	require.NoError(t, err)
	c := src.Contours()[0]
	c.Closed = false
	assert.Nil(t, recognizeCircle(c))
}

func TestReconstructNilRoot(t *testing.T) {
	assert.Nil(t, Reconstruct(nil))
}

func TestReconstructSkipsEmptyContour(t *testing.T) {
	node := NewNode()
	node.Contours = []geom.Contour{{}}
	assert.Empty(t, Reconstruct(node))
}

func TestCircleToleranceBand(t *testing.T) {
	// A contour distorted beyond 0.5% must fall back to a polyline.
	src, err := shape.NewCircle(geom.Pt(0, 0), 10)
	require.NoError(t, err)
	c := src.Contours()[0]
	c.Segments[0].P0.X += 10 * 5 * CircleTolerance
	c.Segments[3].P3.X = c.Segments[0].P0.X
	assert.Nil(t, recognizeCircle(c))
}
