package geom

import (
	"math"
	"sort"
)

// BezierSteps is the number of interior samples used by the approximate
// nearest-point and distance routines on Bézier segments. The sampling is
// not adaptive; results are accurate to roughly 1/BezierSteps of the
// segment's parameter range.
const BezierSteps = 12

// MaxExtrema is the maximum number of extrema that can be reported for a
// cubic Bézier (two per coordinate).
const MaxExtrema = 4

// QuadBez is a quadratic Bézier segment.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

// Raise converts the quadratic Bézier to an equivalent cubic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

func (q QuadBez) Start() Point { return q.P0 }
func (q QuadBez) End() Point   { return q.P2 }

func (q QuadBez) IsInf() bool {
	return q.P0.IsInf() || q.P1.IsInf() || q.P2.IsInf()
}

func (q QuadBez) IsNaN() bool {
	return q.P0.IsNaN() || q.P1.IsNaN() || q.P2.IsNaN()
}

// CubicBez is a cubic Bézier segment.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

// Eval evaluates the curve at parameter t using De Casteljau style lerp
// reduction.
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			Point(Vec2(c.P0).Add(Vec2(c.P1).Mul(2.0)).Add(Vec2(c.P2)).Mul(0.25)),
			pm,
		},
		CubicBez{
			pm,
			Point(Vec2(c.P1).Add(Vec2(c.P2).Mul(2.0)).Add(Vec2(c.P3)).Mul(0.25)),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

func (c CubicBez) Start() Point { return c.P0 }
func (c CubicBez) End() Point   { return c.P3 }

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

// Translate moves the whole segment by v.
func (c CubicBez) Translate(v Vec2) CubicBez {
	return CubicBez{
		P0: c.P0.Translate(v),
		P1: c.P1.Translate(v),
		P2: c.P2.Translate(v),
		P3: c.P3.Translate(v),
	}
}

// Extrema computes the interior parameter values at which one of the
// coordinates has a local extremum. The values are reported in increasing
// order. Two calls to oneCoord, up to 2 roots per call, for a total of 4
// possible values.
func (c CubicBez) Extrema() ([MaxExtrema]float64, int) {
	var out [MaxExtrema]float64
	var outN int
	oneCoord := func(d0, d1, d2 float64) {
		a := d0 - 2*d1 + d2
		b := 2 * (d1 - d0)
		cc := d0
		roots, n := SolveQuadratic(cc, b, a)
		for _, t := range roots[:n] {
			if t > 0.0 && t < 1.0 {
				out[outN] = t
				outN++
			}
		}
	}

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	oneCoord(d0.X, d1.X, d2.X)
	oneCoord(d0.Y, d1.Y, d2.Y)
	sort.Float64s(out[:outN])
	return out, outN
}

// BoundingBox returns the smallest axis-aligned rectangle enclosing the
// segment, using the coordinate extrema.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRectFromPoints(c.P0, c.P3)
	ex, n := c.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(c.Eval(t))
	}
	return bbox
}

// Nearest returns the closest of a fixed set of sample points on the curve,
// along with its parameter and the distance to pt. It samples [BezierSteps]
// evenly spaced interior points plus both endpoints; it does not subdivide
// adaptively.
func (c CubicBez) Nearest(pt Point) (Point, float64, float64) {
	bestT := 0.0
	best := c.P0
	bestDist := pt.Distance(c.P0)
	consider := func(t float64) {
		p := c.Eval(t)
		if d := pt.Distance(p); d < bestDist {
			bestDist = d
			best = p
			bestT = t
		}
	}
	for i := 1; i <= BezierSteps; i++ {
		consider(float64(i) / float64(BezierSteps+1))
	}
	consider(1.0)
	return best, bestT, bestDist
}

// Distance returns the approximate distance from pt to the curve, using the
// same fixed sampling as [CubicBez.Nearest].
func (c CubicBez) Distance(pt Point) float64 {
	_, _, d := c.Nearest(pt)
	return d
}

// Flatten appends steps+1 points sampled at uniform parameter increments,
// excluding the start point, to dst and returns the extended slice.
func (c CubicBez) Flatten(steps int, dst []Point) []Point {
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		dst = append(dst, c.Eval(float64(i)/float64(steps)))
	}
	return dst
}

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0
//
// This function tries to be quite numerically robust. If the equation is
// nearly linear, it will return the root ignoring the quadratic term; the
// other root might be out of representable range. In the degenerate case where
// all coefficients are zero, so that all values of x satisfy the equation, a
// single 0.0 is returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		if !math.IsInf(root, 0) {
			return [2]float64{root}, 1
		} else if c0 == 0.0 && c1 == 0.0 {
			// Degenerate case
			return [2]float64{0}, 1
		} else {
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// Likely, calculation of sc1 * sc1 overflowed. Find one root
		// using sc1 x + x² = 0, other root as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if !math.IsInf(root2, 0) {
		// Sort just to be friendly and make results deterministic.
		if root2 > root1 {
			return [2]float64{root1, root2}, 2
		} else {
			return [2]float64{root2, root1}, 2
		}
	} else {
		return [2]float64{root1}, 1
	}
}
