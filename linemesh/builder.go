// Package linemesh builds triangle meshes for constant-screen-width strokes.
//
// The builder turns a sequence of line, curve and circle commands into a
// directed triangle strip. Stroke width is not baked into the geometry:
// every logical point emits a mirrored pair of vertices carrying a unit
// perpendicular offset, a ±1 side sign, and the accumulated arc length, and
// a shader expands the pairs to the desired pixel width at render time.
package linemesh

import (
	"errors"
	"math"

	"github.com/vecsketch/vecsketch/geom"
)

var (
	// ErrOutOfSpace reports that the builder's fixed-capacity buffers are
	// full. Geometry submitted after the error is dropped; the mesh built
	// so far remains valid.
	ErrOutOfSpace = errors.New("linemesh: vertex buffer full")

	// ErrSessionOpen reports a Begin-style call while a polyline session
	// is already open.
	ErrSessionOpen = errors.New("linemesh: a polyline session is already open")

	// ErrNoSession reports a draw call outside a polyline session.
	ErrNoSession = errors.New("linemesh: no open polyline session")
)

// MaxVertices is the builder's soft vertex capacity. The buffers are sized
// once and reused across shapes via [Builder.Reset].
const MaxVertices = 16384

// sharpJoinThreshold triggers the bevel fan. 1 + dot(offset, prevOffset)
// falling below it is a proxy for a corner tighter than roughly 120°, where
// directly connected quads would fold over themselves.
const sharpJoinThreshold = 0.5

// Vertex is one mesh vertex. Position is on the stroke's center line; the
// renderable position is Position + Offset·Side·halfWidth, resolved by the
// consuming shader.
type Vertex struct {
	Position  geom.Point
	Offset    geom.Vec2
	Side      float64
	ArcLength float64
}

// Builder incrementally triangulates stroked polylines into a shared vertex
// and index buffer. The buffers are pooled: one builder serves many shapes,
// with Reset between meshes. Exactly one polyline session may be open at a
// time.
type Builder struct {
	vertices []Vertex
	indices  []uint32

	open       bool
	havePrev   bool
	start      geom.Point
	last       geom.Point
	prevDir    geom.Vec2
	prevOffset geom.Vec2
	arcLen     float64
	firstPair  int

	err error
}

// NewBuilder allocates a builder with full capacity.
func NewBuilder() *Builder {
	return &Builder{
		vertices: make([]Vertex, 0, MaxVertices),
		indices:  make([]uint32, 0, 6*MaxVertices),
	}
}

// Reset clears the mesh and any sticky error, retaining the allocated
// buffers for reuse. An open session is abandoned.
func (b *Builder) Reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.open = false
	b.havePrev = false
	b.arcLen = 0
	b.err = nil
}

// Err returns the first error the builder ran into since the last Reset.
func (b *Builder) Err() error { return b.err }

// Vertices returns the built vertex buffer. The slice aliases the builder's
// storage and is invalidated by Reset.
func (b *Builder) Vertices() []Vertex { return b.vertices }

// Indices returns the built triangle index buffer, three indices per
// triangle. The slice aliases the builder's storage and is invalidated by
// Reset.
func (b *Builder) Indices() []uint32 { return b.indices }

// BeginPolyLine opens a polyline session starting at pt.
func (b *Builder) BeginPolyLine(pt geom.Point) error {
	if b.open {
		return ErrSessionOpen
	}
	b.open = true
	b.havePrev = false
	b.start = pt
	b.last = pt
	b.arcLen = 0
	b.firstPair = len(b.vertices)
	return nil
}

// LineTo extends the open polyline with a straight span to pt.
func (b *Builder) LineTo(pt geom.Point) error {
	if !b.open {
		return ErrNoSession
	}
	return b.lineTo(pt, pt.Sub(b.last).Hypot())
}

// CurveTo extends the open polyline with a cubic Bézier flattened at the
// given number of uniform parameter steps. The arc length attribute advances
// by an equal share of the sampled curve length per step; it approximates
// true arc length.
func (b *Builder) CurveTo(c1, c2, pt geom.Point, steps int) error {
	if !b.open {
		return ErrNoSession
	}
	if steps < 1 {
		steps = 1
	}
	curve := geom.CubicBez{P0: b.last, P1: c1, P2: c2, P3: pt}
	samples := make([]geom.Point, 0, steps)
	samples = curve.Flatten(steps, samples)

	curveLength := 0.0
	prev := b.last
	for _, s := range samples {
		curveLength += s.Sub(prev).Hypot()
		prev = s
	}
	inc := curveLength / float64(steps)
	for _, s := range samples {
		if err := b.lineTo(s, inc); err != nil {
			return err
		}
	}
	return nil
}

// EndPolyLine closes the open session. When closed is set, a final span back
// to the session's starting point is emitted so the ring of quads wraps.
func (b *Builder) EndPolyLine(closed bool) error {
	if !b.open {
		return ErrNoSession
	}
	var err error
	if closed && b.havePrev && b.last != b.start {
		err = b.lineTo(b.start, b.start.Sub(b.last).Hypot())
	}
	b.open = false
	b.havePrev = false
	return err
}

// lineTo advances the stroke to pt, adding arcInc to the arc length. Spans of
// zero length are skipped.
func (b *Builder) lineTo(pt geom.Point, arcInc float64) error {
	if b.err != nil {
		return b.err
	}
	d := pt.Sub(b.last)
	if d.Hypot() == 0 {
		return nil
	}
	dir := d.Normalize()
	offset := dir.Perp()

	if !b.havePrev {
		// First span: emit the start pair now that a direction exists.
		if err := b.emitPair(b.last, offset, b.arcLen); err != nil {
			return err
		}
	} else {
		if 1+offset.Dot(b.prevOffset) < sharpJoinThreshold {
			// The joint would fold over; splice in a bevel fan at the
			// corner instead of connecting the quads directly.
			if err := b.emitBevel(offset, dir); err != nil {
				return err
			}
		}
	}

	prevPair := len(b.vertices) - 2
	b.arcLen += arcInc
	if err := b.emitPair(pt, offset, b.arcLen); err != nil {
		return err
	}
	b.quad(prevPair, len(b.vertices)-2)

	b.last = pt
	b.prevDir = dir
	b.prevOffset = offset
	b.havePrev = true
	return nil
}

// emitBevel emits a second vertex pair at the current corner with the new
// offset, plus a triangle on the outer side of the turn bridging the old and
// new pairs.
func (b *Builder) emitBevel(newOffset, newDir geom.Vec2) error {
	oldPair := len(b.vertices) - 2
	if err := b.emitPair(b.last, newOffset, b.arcLen); err != nil {
		return err
	}
	newPair := len(b.vertices) - 2

	// The outer side of the turn: left turns fold the right edge outward.
	outer := 0 // +side vertex
	inner := 1
	if b.prevDir.Cross(newDir) > 0 {
		outer, inner = 1, 0
	}
	b.triangle(uint32(oldPair+outer), uint32(newPair+outer), uint32(newPair+inner))
	return nil
}

// emitPair appends the mirrored vertex pair for one logical stroke point.
func (b *Builder) emitPair(pt geom.Point, offset geom.Vec2, arcLen float64) error {
	if len(b.vertices)+2 > MaxVertices {
		b.err = ErrOutOfSpace
		return b.err
	}
	b.vertices = append(b.vertices,
		Vertex{Position: pt, Offset: offset, Side: 1, ArcLength: arcLen},
		Vertex{Position: pt, Offset: offset.Negate(), Side: -1, ArcLength: arcLen},
	)
	return nil
}

// quad connects two vertex pairs with two triangles.
func (b *Builder) quad(pairA, pairB int) {
	a0, a1 := uint32(pairA), uint32(pairA+1)
	b0, b1 := uint32(pairB), uint32(pairB+1)
	b.triangle(a0, b0, a1)
	b.triangle(a1, b0, b1)
}

func (b *Builder) triangle(i0, i1, i2 uint32) {
	b.indices = append(b.indices, i0, i1, i2)
}

// Circle emits a closed ring of quads approximating a stroked circle,
// bypassing the polyline join machinery. The ring is built by rotating a
// quarter-arc's worth of offset vectors through the four quadrants; a final
// pair duplicates the first so the strip closes without a seam in the arc
// length attribute.
func (b *Builder) Circle(center geom.Point, radius float64, steps int) error {
	if b.open {
		return ErrSessionOpen
	}
	if b.err != nil {
		return b.err
	}
	if steps < 1 {
		steps = 8
	}
	total := 4 * steps
	circumference := 2 * math.Pi * radius
	first := len(b.vertices)
	for i := 0; i <= total; i++ {
		th := 2 * math.Pi * float64(i) / float64(total)
		radial := geom.VecFromAngle(th)
		pt := center.Translate(radial.Mul(radius))
		arc := circumference * float64(i) / float64(total)
		if err := b.emitPair(pt, radial, arc); err != nil {
			return err
		}
		if i > 0 {
			b.quad(first+2*(i-1), first+2*i)
		}
	}
	return nil
}
