package shape

import (
	"math"

	"github.com/vecsketch/vecsketch/geom"
)

// Ellipse is an ellipse or elliptical arc. The major axis vector encodes both
// the semi-major length and the rotation; the minor axis is perpendicular
// with length |majorAxis|·sqrt(1−e²), where e is the eccentricity (focal
// distance over semi-major length).
type Ellipse struct {
	base
	center       geom.Point
	majorAxis    geom.Vec2
	eccentricity float64
	startAngle   float64 // degrees
	sweepAngle   float64 // degrees
}

var _ Shape = (*Ellipse)(nil)

// NewEllipse creates a full ellipse. The major axis must be non-zero and the
// eccentricity in [0, 1).
func NewEllipse(center geom.Point, majorAxis geom.Vec2, eccentricity float64) (*Ellipse, error) {
	if majorAxis.Hypot() == 0 {
		return nil, ErrInvalidRadius
	}
	if eccentricity < 0 || eccentricity >= 1 || math.IsNaN(eccentricity) {
		return nil, ErrInvalidEccentricity
	}
	return &Ellipse{
		base:         newBase(),
		center:       center,
		majorAxis:    majorAxis,
		eccentricity: eccentricity,
	}, nil
}

// NewEllipseArc creates an elliptical arc spanning sweep degrees from start
// degrees.
func NewEllipseArc(center geom.Point, majorAxis geom.Vec2, eccentricity, startDeg, sweepDeg float64) (*Ellipse, error) {
	e, err := NewEllipse(center, majorAxis, eccentricity)
	if err != nil {
		return nil, err
	}
	e.startAngle = startDeg
	e.sweepAngle = sweepDeg
	return e, nil
}

func (e *Ellipse) Center() geom.Point     { return e.center }
func (e *Ellipse) MajorAxis() geom.Vec2   { return e.majorAxis }
func (e *Ellipse) Eccentricity() float64  { return e.eccentricity }
func (e *Ellipse) StartAngle() float64    { return e.startAngle }
func (e *Ellipse) SweepAngle() float64    { return e.sweepAngle }

// SemiMajor returns the semi-major axis length.
func (e *Ellipse) SemiMajor() float64 { return e.majorAxis.Hypot() }

// SemiMinor returns the derived semi-minor axis length.
func (e *Ellipse) SemiMinor() float64 {
	return e.SemiMajor() * math.Sqrt(1-e.eccentricity*e.eccentricity)
}

// Rotation returns the major axis angle in radians.
func (e *Ellipse) Rotation() float64 { return e.majorAxis.Angle() }

func (e *Ellipse) SetCenter(center geom.Point) {
	e.center = center
	e.invalidate()
}

func (e *Ellipse) SetMajorAxis(axis geom.Vec2) error {
	if axis.Hypot() == 0 {
		return ErrInvalidRadius
	}
	e.majorAxis = axis
	e.invalidate()
	return nil
}

// SetEccentricity rejects values outside [0, 1), keeping the previous value.
func (e *Ellipse) SetEccentricity(ecc float64) error {
	if ecc < 0 || ecc >= 1 || math.IsNaN(ecc) {
		return ErrInvalidEccentricity
	}
	e.eccentricity = ecc
	e.invalidate()
	return nil
}

// SetArc replaces the start and sweep angles, in degrees.
func (e *Ellipse) SetArc(startDeg, sweepDeg float64) {
	e.startAngle = startDeg
	e.sweepAngle = sweepDeg
	e.invalidate()
}

func (e *Ellipse) Closed() bool {
	return e.sweepAngle == 0 || math.Abs(e.sweepAngle) >= 360
}

// Foci returns the two focal points.
func (e *Ellipse) Foci() (geom.Point, geom.Point) {
	focal := e.majorAxis.Normalize().Mul(e.eccentricity * e.SemiMajor())
	return e.center.Translate(focal), e.center.Translate(focal.Negate())
}

// Contains uses the exact two-focus definition: a point is inside iff the
// sum of its distances to the foci is less than the major axis length.
func (e *Ellipse) Contains(pt geom.Point) bool {
	f1, f2 := e.Foci()
	return pt.Distance(f1)+pt.Distance(f2) < 2*e.SemiMajor()
}

// ClosestPoint returns the point on the ellipse's boundary closest to pt.
//
// The query point is moved into the ellipse's axis-aligned frame and the
// parametric angle refined with three Newton-like rounds, starting at 45° and
// clamped to [0, π/2] by symmetry (the Maisonobe iteration). Three rounds are
// a fixed cost, not a convergence test.
func (e *Ellipse) ClosestPoint(pt geom.Point) geom.Point {
	a := e.SemiMajor()
	b := e.SemiMinor()
	theta := e.Rotation()

	// To standard position: rotate by −θ about the center.
	local := pt.Sub(e.center)
	frame := geom.Rotate(-theta)
	p := geom.Point(local.TransformVec(frame))

	// Work in the first quadrant, restore signs afterwards.
	sx := math.Copysign(1, p.X)
	sy := math.Copysign(1, p.Y)
	px := math.Abs(p.X)
	py := math.Abs(p.Y)

	t := math.Pi / 4
	var x, y float64
	for i := 0; i < 3; i++ {
		sin, cos := math.Sincos(t)
		x = a * cos
		y = b * sin

		// Evolute of the ellipse at t: the center of curvature.
		ex := (a*a - b*b) * cos * cos * cos / a
		ey := (b*b - a*a) * sin * sin * sin / b

		rx := x - ex
		ry := y - ey
		qx := px - ex
		qy := py - ey
		r := math.Hypot(rx, ry)
		q := math.Hypot(qx, qy)
		if q == 0 {
			// The query point sits on the center of curvature for t (for a
			// circle, the center itself). All nearby boundary points are
			// equidistant and the angular correction is undefined, so the
			// current parameter stands.
			break
		}

		deltaC := r * math.Asin((rx*qy-ry*qx)/(r*q))
		deltaT := deltaC / math.Sqrt(a*a+b*b-x*x-y*y)

		t += deltaT
		t = math.Min(math.Pi/2, math.Max(0, t))
	}
	sin, cos := math.Sincos(t)
	onEllipse := geom.Pt(sx*a*cos, sy*b*sin)

	// Back out of standard position.
	world := geom.Vec2(onEllipse).TransformVec(geom.Rotate(theta))
	return e.center.Translate(world)
}

// Distance returns the approximate distance from pt to the boundary via
// [Ellipse.ClosestPoint].
func (e *Ellipse) Distance(pt geom.Point) float64 {
	return pt.Distance(e.ClosestPoint(pt))
}

// Bounds uses the closed form for a rotated ellipse: with semi-axes a, b and
// rotation θ, the half extents are sqrt(a²cos²θ + b²sin²θ) horizontally and
// sqrt(a²sin²θ + b²cos²θ) vertically.
func (e *Ellipse) Bounds() geom.Rect {
	return e.cachedBounds(func() geom.Rect {
		a := e.SemiMajor()
		b := e.SemiMinor()
		sin, cos := math.Sincos(e.Rotation())
		extentX := math.Sqrt(a*a*cos*cos + b*b*sin*sin)
		extentY := math.Sqrt(a*a*sin*sin + b*b*cos*cos)
		return geom.NewRectFromCenter(e.center, geom.Vec(extentX, extentY))
	})
}

func (e *Ellipse) InRect(r geom.Rect) bool {
	b := e.Bounds()
	return b.X0 >= r.X0 && b.Y0 >= r.Y0 && b.X1 <= r.X1 && b.Y1 <= r.Y1
}

func (e *Ellipse) Snap(pt geom.Point) Snap {
	p := e.ClosestPoint(pt)
	return Snap{Point: p, Distance: pt.Distance(p)}
}

func (e *Ellipse) Translate(v geom.Vec2) {
	e.center = e.center.Translate(v)
	e.invalidate()
}

func (e *Ellipse) Rotate(radians float64, about geom.Point) {
	aff := geom.RotateAbout(radians, about)
	e.center = e.center.Transform(aff)
	e.majorAxis = e.majorAxis.TransformVec(aff)
	e.invalidate()
}

func (e *Ellipse) ScaleBy(factor geom.Vec2, about geom.Point) error {
	if err := checkScale(factor); err != nil {
		return err
	}
	e.TransformBy(scaleAbout(factor, about))
	return nil
}

// TransformBy maps the center and major axis through aff. The eccentricity is
// kept; a strongly non-uniform map therefore only approximates the true image
// of the ellipse.
func (e *Ellipse) TransformBy(aff geom.Affine) {
	e.center = e.center.Transform(aff)
	e.majorAxis = e.majorAxis.TransformVec(aff)
	e.invalidate()
}

func (e *Ellipse) Contours() []geom.Contour {
	return e.cachedContours(func() []geom.Contour {
		a := geom.Arc{
			Center:     e.center,
			Radii:      geom.Vec(e.SemiMajor(), e.SemiMinor()),
			XRotation:  e.Rotation(),
			StartAngle: radians(e.startAngle),
			SweepAngle: 2 * math.Pi,
		}
		closed := true
		if !e.Closed() {
			a.SweepAngle = radians(e.sweepAngle)
			closed = false
		}
		return []geom.Contour{{Segments: a.Cubics(), Closed: closed}}
	})
}

func (e *Ellipse) Flatten() []geom.Point {
	return flattenContours(e.Contours())
}

func (e *Ellipse) PathData() string {
	return contoursPathData(e.Contours())
}
