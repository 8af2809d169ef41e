package geom

import (
	"math"
)

// ArcSubcurves is the default number of cubic sub-curves an elliptical arc is
// split into. The split is not error-adaptive; set Subcurves on the arc to
// control accuracy.
const ArcSubcurves = 4

// Arc is an elliptical arc: a sweep along an ellipse with the given radii,
// rotated from the x axis by XRotation radians, starting at StartAngle.
// All angles are in radians; a full ellipse has SweepAngle 2π.
type Arc struct {
	Center     Point
	Radii      Vec2
	XRotation  float64
	StartAngle float64
	SweepAngle float64

	// Subcurves overrides the number of cubic segments used by
	// [Arc.Cubics]. Zero means [ArcSubcurves].
	Subcurves int
}

// Eval returns the point on the arc's ellipse at parametric angle th.
func (a Arc) Eval(th float64) Point {
	return a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, th))
}

// derivative returns the tangent vector of the underlying ellipse at
// parametric angle th.
func (a Arc) derivative(th float64) Vec2 {
	sin, cos := math.Sincos(th)
	return rotateVec(Vec2{-a.Radii.X * sin, a.Radii.Y * cos}, a.XRotation)
}

// Cubics converts the arc to a slice of cubic Bézier segments.
//
// Each sub-curve spans an equal share of the sweep. The tangent scaling uses
// the closed-form alpha = sin(Δθ)·(√(4+3t²)−1)/3 with t = tan(Δθ/4), applied
// in the ellipse's rotated frame.
func (a Arc) Cubics() []CubicBez {
	n := a.Subcurves
	if n <= 0 {
		n = ArcSubcurves
	}
	delta := a.SweepAngle / float64(n)
	t := math.Tan(0.25 * delta)
	alpha := math.Sin(delta) * (math.Sqrt(4.0+3.0*t*t) - 1.0) / 3.0

	out := make([]CubicBez, 0, n)
	th0 := a.StartAngle
	p0 := a.Eval(th0)
	d0 := a.derivative(th0)
	for i := 0; i < n; i++ {
		th1 := th0 + delta
		p3 := a.Eval(th1)
		d1 := a.derivative(th1)
		out = append(out, CubicBez{
			P0: p0,
			P1: p0.Translate(d0.Mul(alpha)),
			P2: p3.Translate(d1.Mul(-alpha)),
			P3: p3,
		})
		th0 = th1
		p0 = p3
		d0 = d1
	}
	return out
}

// CircularArcCubic returns a single cubic Bézier approximating the circular
// arc from p0 to p1 about center, traversed the short way implied by the
// order of the endpoints.
//
// The tangent length follows the standard construction
// k = 4/3·(√(2·q1·q2) − q2) / cross(a, b) with a and b the radius vectors of
// the endpoints. The approximation degrades past a quarter turn; split
// larger sweeps first.
func CircularArcCubic(center, p0, p1 Point) CubicBez {
	va := p0.Sub(center)
	vb := p1.Sub(center)
	q1 := va.Dot(va)
	q2 := q1 + va.Dot(vb)
	denom := va.Cross(vb)
	if denom == 0 {
		// Degenerate: endpoints are collinear with the center.
		return lineCubic(p0, p1)
	}
	k := (4.0 / 3.0) * (math.Sqrt(2.0*q1*q2) - q2) / denom
	return CubicBez{
		P0: p0,
		P1: Pt(center.X+va.X-k*va.Y, center.Y+va.Y+k*va.X),
		P2: Pt(center.X+vb.X+k*vb.Y, center.Y+vb.Y-k*vb.X),
		P3: p1,
	}
}

// ArcFromChord computes the center and radius of the circular arc that spans
// the chord from p0 to p1 with the given signed sweep (radians). The second
// return value is false when the sweep is too small to define an arc.
//
// Combined with [SweepFromBulge] this realizes DXF bulge semantics: the
// center is derived exactly from the chord midpoint and half sweep, which is
// compatible with how DXF writers in the wild encode bulged segments, rather
// than normative for the format.
func ArcFromChord(p0, p1 Point, sweep float64) (center Point, radius float64, ok bool) {
	half := 0.5 * sweep
	if math.Abs(math.Sin(half)) < 1e-12 {
		return Point{}, 0, false
	}
	chord := p1.Sub(p0)
	chordLen := chord.Hypot()
	if chordLen == 0 {
		return Point{}, 0, false
	}
	radius = math.Abs(0.5 * chordLen / math.Sin(half))
	// Perpendicular offset from the chord midpoint to the center, on the
	// left of the chord for positive sweeps. For a semicircle the offset is
	// zero and the center sits on the chord.
	h := 0.5 * chordLen / math.Tan(half)
	mid := p0.Midpoint(p1)
	n := chord.Normalize().Perp()
	center = mid.Translate(n.Mul(h))
	return center, radius, true
}

// SweepFromBulge converts a DXF bulge factor (tan of a quarter of the
// included angle, signed by arc direction) into a sweep angle in radians.
func SweepFromBulge(bulge float64) float64 {
	return 4.0 * math.Atan(bulge)
}

// BulgeFromSweep is the inverse of [SweepFromBulge].
func BulgeFromSweep(sweep float64) float64 {
	return math.Tan(0.25 * sweep)
}

func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	rx, ry := radii.Splat()
	return rotateVec(Vec2{rx * cos, ry * sin}, xRotation)
}

// rotateVec rotates v about the origin by angle radians.
func rotateVec(v Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}
