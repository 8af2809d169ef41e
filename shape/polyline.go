package shape

import (
	"math"

	"github.com/vecsketch/vecsketch/geom"
)

// Vertex is one control vertex of a [Polyline]. SegmentCurves marks the
// segment following this vertex as a cubic Bézier built from this vertex's
// exit control point and the next vertex's enter control point; otherwise the
// segment is a straight line and the control points are ignored.
type Vertex struct {
	Position     geom.Point
	EnterControl geom.Point
	ExitControl  geom.Point
	SegmentCurves bool
}

// Transform maps the vertex position and both control points.
func (v Vertex) Transform(aff geom.Affine) Vertex {
	v.Position = v.Position.Transform(aff)
	v.EnterControl = v.EnterControl.Transform(aff)
	v.ExitControl = v.ExitControl.Transform(aff)
	return v
}

// Polyline is an ordered run of vertices with per-segment straight/curved
// flags. A closed polyline connects the last vertex back to the first with a
// wrap-around segment; an open one has one fewer segment than vertices.
//
// The vertex slice is never empty after construction.
type Polyline struct {
	base
	vertices []Vertex
	closed   bool
}

var _ Shape = (*Polyline)(nil)

// NewPolyline builds a polyline from a point list. When curved is set, every
// segment is marked as a Bézier and control points are initialized with the
// tangent heuristic of [Polyline.InitializeControlPoints]. If the first and
// last points coincide, the duplicate is dropped and the polyline closed.
func NewPolyline(points []geom.Point, curved, closed bool) (*Polyline, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPolyline
	}
	if len(points) > 1 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
		closed = true
	}
	p := &Polyline{
		base:   newBase(),
		closed: closed,
	}
	p.vertices = make([]Vertex, len(points))
	for i, pt := range points {
		p.vertices[i] = Vertex{
			Position:      pt,
			EnterControl:  pt,
			ExitControl:   pt,
			SegmentCurves: curved,
		}
	}
	if curved {
		for i := range p.vertices {
			p.InitializeControlPoints(i)
		}
	}
	return p, nil
}

// NewRect builds a closed 4-vertex polyline from the corners of r.
func NewRect(r geom.Rect) *Polyline {
	p, _ := NewPolyline([]geom.Point{
		geom.Pt(r.X0, r.Y0),
		geom.Pt(r.X1, r.Y0),
		geom.Pt(r.X1, r.Y1),
		geom.Pt(r.X0, r.Y1),
	}, false, true)
	return p
}

// NewRegularPolygon builds a closed N-gon inscribed in the circle of the
// given radius. Vertex i sits at angle 2π·i/N with x = sin and y = cos, the
// screen convention that puts vertex 0 at the top and walks clockwise.
func NewRegularPolygon(center geom.Point, radius float64, sides int) (*Polyline, error) {
	if sides < 3 {
		return nil, ErrInvalidSides
	}
	if radius <= 0 || math.IsNaN(radius) {
		return nil, ErrInvalidRadius
	}
	pts := make([]geom.Point, sides)
	for i := range pts {
		th := 2 * math.Pi * float64(i) / float64(sides)
		pts[i] = center.Translate(geom.Vec(math.Sin(th), math.Cos(th)).Mul(radius))
	}
	return NewPolyline(pts, false, true)
}

// NewPolylineFromContour rebuilds an editable polyline from a contour of
// cubic segments. Each segment's interior control points become the exit
// control of its start vertex and the enter control of its end vertex.
// Segments whose control points sit on their endpoints are recognized as
// straight.
func NewPolylineFromContour(c geom.Contour) (*Polyline, error) {
	if len(c.Segments) == 0 {
		return nil, ErrEmptyPolyline
	}
	p := &Polyline{
		base:   newBase(),
		closed: c.Closed,
	}
	n := len(c.Segments)
	vcount := n + 1
	if c.Closed && c.Segments[n-1].P3 == c.Segments[0].P0 {
		vcount = n
	}
	p.vertices = make([]Vertex, vcount)
	for i := range p.vertices {
		var pos geom.Point
		if i < n {
			pos = c.Segments[i].P0
		} else {
			pos = c.Segments[n-1].P3
		}
		p.vertices[i] = Vertex{Position: pos, EnterControl: pos, ExitControl: pos}
	}
	for i, seg := range c.Segments {
		straight := seg.P1 == seg.P0 && seg.P2 == seg.P3
		v := &p.vertices[i]
		next := &p.vertices[(i+1)%vcount]
		if straight {
			continue
		}
		v.SegmentCurves = true
		v.ExitControl = seg.P1
		next.EnterControl = seg.P2
	}
	return p, nil
}

// VertexCount returns the number of vertices.
func (p *Polyline) VertexCount() int { return len(p.vertices) }

// Vertex returns a copy of vertex i.
func (p *Polyline) Vertex(i int) Vertex { return p.vertices[i] }

// SetVertex replaces vertex i.
func (p *Polyline) SetVertex(i int, v Vertex) {
	p.vertices[i] = v
	p.invalidate()
}

// SetVertexPosition moves vertex i, dragging its control points along.
func (p *Polyline) SetVertexPosition(i int, pos geom.Point) {
	d := pos.Sub(p.vertices[i].Position)
	p.vertices[i].Position = pos
	p.vertices[i].EnterControl = p.vertices[i].EnterControl.Translate(d)
	p.vertices[i].ExitControl = p.vertices[i].ExitControl.Translate(d)
	p.invalidate()
}

func (p *Polyline) Closed() bool { return p.closed }

// Close closes the polyline's topology, adding the wrap-around segment.
func (p *Polyline) Close() {
	p.closed = true
	p.invalidate()
}

// SegmentCount returns the number of drawable segments: vertexCount−1 when
// open, vertexCount when closed.
func (p *Polyline) SegmentCount() int {
	if len(p.vertices) < 2 {
		return 0
	}
	if p.closed {
		return len(p.vertices)
	}
	return len(p.vertices) - 1
}

// segmentEnds returns the endpoints of segment i, wrapping for the closing
// segment.
func (p *Polyline) segmentEnds(i int) (*Vertex, *Vertex) {
	return &p.vertices[i], &p.vertices[(i+1)%len(p.vertices)]
}

// segmentCubic returns the cubic form of segment i. Straight segments are
// degenerated with control points on the endpoints.
func (p *Polyline) segmentCubic(i int) geom.CubicBez {
	a, b := p.segmentEnds(i)
	if a.SegmentCurves {
		return geom.CubicBez{P0: a.Position, P1: a.ExitControl, P2: b.EnterControl, P3: b.Position}
	}
	return geom.CubicBez{P0: a.Position, P1: a.Position, P2: b.Position, P3: b.Position}
}

// InitializeControlPoints gives vertex i tangent-continuous control points.
//
// The tangent direction is the normalized sum of the unit vectors from the
// previous vertex to this one and from this one to the next; the enter and
// exit control points sit on that tangent at half the respective neighboring
// segment lengths. At the open ends the missing neighbor is synthesized by
// mirroring the other side's offset, so initial curvature still looks
// continuous.
func (p *Polyline) InitializeControlPoints(i int) {
	n := len(p.vertices)
	if n < 2 {
		return
	}
	v := &p.vertices[i]
	hasPrev := p.closed || i > 0
	hasNext := p.closed || i < n-1
	var prev, next geom.Point
	if hasPrev {
		prev = p.vertices[(i-1+n)%n].Position
	}
	if hasNext {
		next = p.vertices[(i+1)%n].Position
	}

	switch {
	case hasPrev && hasNext:
		din := v.Position.Sub(prev)
		dout := next.Sub(v.Position)
		tangent := din.Normalize().Add(dout.Normalize())
		if tangent.Hypot() == 0 {
			// The path doubles back on itself; fall back to the incoming
			// direction's perpendicular.
			tangent = din.Normalize().Perp()
		} else {
			tangent = tangent.Normalize()
		}
		v.EnterControl = v.Position.Translate(tangent.Mul(-0.5 * din.Hypot()))
		v.ExitControl = v.Position.Translate(tangent.Mul(0.5 * dout.Hypot()))
	case hasNext:
		dout := next.Sub(v.Position)
		v.ExitControl = v.Position.Translate(dout.Mul(0.5))
		v.EnterControl = v.Position.Translate(v.ExitControl.Sub(v.Position).Negate())
	case hasPrev:
		din := v.Position.Sub(prev)
		v.EnterControl = v.Position.Translate(din.Mul(-0.5))
		v.ExitControl = v.Position.Translate(v.EnterControl.Sub(v.Position).Negate())
	}
	p.invalidate()
}

// Contains is not implemented for polylines and always reports false.
// Point-in-polygon containment for outlines with curved segments is an open
// gap; callers needing interior tests should use [Polyline.Bounds].
func (p *Polyline) Contains(pt geom.Point) bool {
	return false
}

// Distance returns the distance from pt to the nearest segment.
func (p *Polyline) Distance(pt geom.Point) float64 {
	best := math.Inf(1)
	if len(p.vertices) == 1 {
		return pt.Distance(p.vertices[0].Position)
	}
	for i := 0; i < p.SegmentCount(); i++ {
		a, b := p.segmentEnds(i)
		var d float64
		if a.SegmentCurves {
			d = p.segmentCubic(i).Distance(pt)
		} else {
			d = geom.Line{P0: a.Position, P1: b.Position}.Distance(pt)
		}
		if d < best {
			best = d
		}
	}
	return best
}

// Snap returns the closest boundary point across all segments.
func (p *Polyline) Snap(pt geom.Point) Snap {
	if len(p.vertices) == 1 {
		pos := p.vertices[0].Position
		return Snap{Point: pos, Distance: pt.Distance(pos)}
	}
	best := Snap{Distance: math.Inf(1)}
	for i := 0; i < p.SegmentCount(); i++ {
		a, b := p.segmentEnds(i)
		var cand geom.Point
		if a.SegmentCurves {
			cand, _, _ = p.segmentCubic(i).Nearest(pt)
		} else {
			l := geom.Line{P0: a.Position, P1: b.Position}
			_, t := l.Nearest(pt)
			cand = l.Eval(t)
		}
		if d := pt.Distance(cand); d < best.Distance {
			best = Snap{Point: cand, Distance: d}
		}
	}
	return best
}

// Bounds flattens curved segments and returns the point bounds. Straight
// segments contribute their endpoints exactly.
func (p *Polyline) Bounds() geom.Rect {
	return p.cachedBounds(func() geom.Rect {
		return geom.BoundsOf(p.Flatten())
	})
}

func (p *Polyline) InRect(r geom.Rect) bool {
	b := p.Bounds()
	return b.X0 >= r.X0 && b.Y0 >= r.Y0 && b.X1 <= r.X1 && b.Y1 <= r.Y1
}

func (p *Polyline) Translate(v geom.Vec2) {
	p.TransformBy(geom.Translate(v))
}

func (p *Polyline) Rotate(radians float64, about geom.Point) {
	p.TransformBy(geom.RotateAbout(radians, about))
}

func (p *Polyline) ScaleBy(factor geom.Vec2, about geom.Point) error {
	if err := checkScale(factor); err != nil {
		return err
	}
	p.TransformBy(scaleAbout(factor, about))
	return nil
}

// TransformBy maps every vertex position and control point through aff.
func (p *Polyline) TransformBy(aff geom.Affine) {
	for i := range p.vertices {
		p.vertices[i] = p.vertices[i].Transform(aff)
	}
	p.invalidate()
}

func (p *Polyline) Contours() []geom.Contour {
	return p.cachedContours(func() []geom.Contour {
		nseg := p.SegmentCount()
		if nseg == 0 {
			return nil
		}
		segs := make([]geom.CubicBez, nseg)
		for i := range segs {
			segs[i] = p.segmentCubic(i)
		}
		return []geom.Contour{{Segments: segs, Closed: p.closed}}
	})
}

// Flatten returns the polyline as a plain point list: vertex positions for
// straight segments, [FlattenSteps] samples for curved ones. Closed
// polylines do not repeat the first point at the end.
func (p *Polyline) Flatten() []geom.Point {
	pts := make([]geom.Point, 0, len(p.vertices))
	pts = append(pts, p.vertices[0].Position)
	for i := 0; i < p.SegmentCount(); i++ {
		a, b := p.segmentEnds(i)
		if a.SegmentCurves {
			pts = p.segmentCubic(i).Flatten(FlattenSteps, pts)
		} else {
			pts = append(pts, b.Position)
		}
	}
	if p.closed && len(pts) > 1 {
		// The wrap-around segment ends where the outline started.
		pts = pts[:len(pts)-1]
	}
	return pts
}

func (p *Polyline) PathData() string {
	return polylinePathData(p)
}
