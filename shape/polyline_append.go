package shape

import (
	"math"

	"github.com/vecsketch/vecsketch/geom"
)

// maxArcSegmentSweep bounds the sweep of a single appended arc segment; the
// single-cubic circular approximation degrades past a quarter turn.
const maxArcSegmentSweep = math.Pi / 2

// checkAppend validates the shared preconditions of the incremental
// authoring operations.
func (p *Polyline) checkAppend() error {
	if len(p.vertices) == 0 {
		return ErrEmptyPolyline
	}
	if p.closed {
		return ErrClosedPolyline
	}
	return nil
}

// LineTo appends a straight segment ending at pt.
func (p *Polyline) LineTo(pt geom.Point) error {
	if err := p.checkAppend(); err != nil {
		return err
	}
	p.vertices = append(p.vertices, Vertex{
		Position:     pt,
		EnterControl: pt,
		ExitControl:  pt,
	})
	p.invalidate()
	return nil
}

// QuadTo appends a quadratic curve segment ending at pt. The single control
// point serves as both the previous vertex's exit tangent and the new
// vertex's enter tangent.
func (p *Polyline) QuadTo(pt, control geom.Point) error {
	if err := p.checkAppend(); err != nil {
		return err
	}
	last := &p.vertices[len(p.vertices)-1]
	raised := geom.QuadBez{P0: last.Position, P1: control, P2: pt}.Raise()
	last.SegmentCurves = true
	last.ExitControl = raised.P1
	p.vertices = append(p.vertices, Vertex{
		Position:     pt,
		EnterControl: raised.P2,
		ExitControl:  pt,
	})
	p.invalidate()
	return nil
}

// CurveTo appends a cubic curve segment ending at pt with explicit control
// points for the departure and arrival tangents.
func (p *Polyline) CurveTo(pt, controlA, controlB geom.Point) error {
	if err := p.checkAppend(); err != nil {
		return err
	}
	last := &p.vertices[len(p.vertices)-1]
	last.SegmentCurves = true
	last.ExitControl = controlA
	p.vertices = append(p.vertices, Vertex{
		Position:     pt,
		EnterControl: controlB,
		ExitControl:  pt,
	})
	p.invalidate()
	return nil
}

// ArcTo appends one or more curved segments approximating the circular arc
// from the current endpoint to pt with the given signed sweep in degrees.
// The arc is subdivided so no single cubic spans more than a quarter turn.
func (p *Polyline) ArcTo(pt geom.Point, sweepDeg float64) error {
	if err := p.checkAppend(); err != nil {
		return err
	}
	return p.appendArc(pt, radians(sweepDeg))
}

// ArcToBulge appends a circular arc described by a DXF bulge factor: the
// tangent of a quarter of the included angle, signed by arc direction. A
// bulge of 0 appends a straight segment.
func (p *Polyline) ArcToBulge(pt geom.Point, bulge float64) error {
	if bulge == 0 {
		return p.LineTo(pt)
	}
	if err := p.checkAppend(); err != nil {
		return err
	}
	return p.appendArc(pt, geom.SweepFromBulge(bulge))
}

func (p *Polyline) appendArc(pt geom.Point, sweep float64) error {
	start := p.vertices[len(p.vertices)-1].Position
	if start == pt {
		return ErrInvalidSweep
	}
	center, _, ok := geom.ArcFromChord(start, pt, sweep)
	if !ok {
		// Sweep too shallow to bend; degrade to a straight segment.
		return p.LineTo(pt)
	}

	nsub := int(math.Ceil(math.Abs(sweep) / maxArcSegmentSweep))
	if nsub < 1 {
		nsub = 1
	}
	angle0 := start.Sub(center).Angle()
	r0 := start.Sub(center).Hypot()
	step := sweep / float64(nsub)
	prev := start
	for i := 1; i <= nsub; i++ {
		var next geom.Point
		if i == nsub {
			next = pt
		} else {
			next = center.Translate(geom.VecFromAngle(angle0 + step*float64(i)).Mul(r0))
		}
		cubic := geom.CircularArcCubic(center, prev, next)
		last := &p.vertices[len(p.vertices)-1]
		last.SegmentCurves = true
		last.ExitControl = cubic.P1
		p.vertices = append(p.vertices, Vertex{
			Position:     next,
			EnterControl: cubic.P2,
			ExitControl:  next,
		})
		prev = next
	}
	p.invalidate()
	return nil
}
