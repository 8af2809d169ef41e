package shape

import (
	"math"

	"github.com/vecsketch/vecsketch/geom"
)

// Circle is a circle or circular arc. A sweep of 0 or at least 360 degrees
// makes it a full, closed circle; anything else leaves an open arc starting
// at StartAngle.
type Circle struct {
	base
	center     geom.Point
	radius     float64
	startAngle float64 // degrees
	sweepAngle float64 // degrees
}

var _ Shape = (*Circle)(nil)

// NewCircle creates a full circle. The radius must be positive.
func NewCircle(center geom.Point, radius float64) (*Circle, error) {
	if radius <= 0 || math.IsNaN(radius) {
		return nil, ErrInvalidRadius
	}
	return &Circle{
		base:   newBase(),
		center: center,
		radius: radius,
	}, nil
}

// NewArc creates a circular arc spanning sweep degrees from start degrees.
func NewArc(center geom.Point, radius, startDeg, sweepDeg float64) (*Circle, error) {
	c, err := NewCircle(center, radius)
	if err != nil {
		return nil, err
	}
	c.startAngle = startDeg
	c.sweepAngle = sweepDeg
	return c, nil
}

func (c *Circle) Center() geom.Point { return c.center }
func (c *Circle) Radius() float64    { return c.radius }
func (c *Circle) StartAngle() float64 { return c.startAngle }
func (c *Circle) SweepAngle() float64 { return c.sweepAngle }

func (c *Circle) SetCenter(center geom.Point) {
	c.center = center
	c.invalidate()
}

// SetRadius rejects non-positive radii, leaving the current value in place.
func (c *Circle) SetRadius(radius float64) error {
	if radius <= 0 || math.IsNaN(radius) {
		return ErrInvalidRadius
	}
	c.radius = radius
	c.invalidate()
	return nil
}

// SetArc replaces the start and sweep angles, in degrees.
func (c *Circle) SetArc(startDeg, sweepDeg float64) {
	c.startAngle = startDeg
	c.sweepAngle = sweepDeg
	c.invalidate()
}

// Closed reports whether the sweep covers the full circle.
func (c *Circle) Closed() bool {
	return c.sweepAngle == 0 || math.Abs(c.sweepAngle) >= 360
}

// Distance returns the distance from pt to the circle's boundary,
// |dist(pt, center) − radius|.
func (c *Circle) Distance(pt geom.Point) float64 {
	return math.Abs(pt.Distance(c.center) - c.radius)
}

// Contains reports whether pt lies strictly inside the circle.
func (c *Circle) Contains(pt geom.Point) bool {
	return pt.Distance(c.center) < c.radius
}

// Bounds returns the square inscribing the circle.
func (c *Circle) Bounds() geom.Rect {
	return c.cachedBounds(func() geom.Rect {
		return geom.NewRectFromCenter(c.center, geom.Vec(c.radius, c.radius))
	})
}

func (c *Circle) InRect(r geom.Rect) bool {
	b := c.Bounds()
	return b.X0 >= r.X0 && b.Y0 >= r.Y0 && b.X1 <= r.X1 && b.Y1 <= r.Y1
}

// Snap projects pt radially onto the circle. A query at the exact center
// snaps to the rightmost boundary point.
func (c *Circle) Snap(pt geom.Point) Snap {
	d := pt.Sub(c.center)
	if d.Hypot() == 0 {
		p := c.center.Translate(geom.Vec(c.radius, 0))
		return Snap{Point: p, Distance: c.radius}
	}
	p := c.center.Translate(d.Normalize().Mul(c.radius))
	return Snap{Point: p, Distance: pt.Distance(p)}
}

func (c *Circle) Translate(v geom.Vec2) {
	c.center = c.center.Translate(v)
	c.invalidate()
}

func (c *Circle) Rotate(radians float64, about geom.Point) {
	c.center = c.center.Transform(geom.RotateAbout(radians, about))
	c.invalidate()
}

func (c *Circle) ScaleBy(factor geom.Vec2, about geom.Point) error {
	if err := checkScale(factor); err != nil {
		return err
	}
	c.TransformBy(scaleAbout(factor, about))
	return nil
}

// TransformBy maps the center through aff and scales the radius by the
// square root of the determinant's magnitude. A circle stays a circle: a
// non-uniform map is applied in an area-preserving sense rather than
// converting to an ellipse.
func (c *Circle) TransformBy(aff geom.Affine) {
	c.center = c.center.Transform(aff)
	c.radius *= math.Sqrt(math.Abs(aff.Determinant()))
	c.invalidate()
}

func (c *Circle) Contours() []geom.Contour {
	return c.cachedContours(func() []geom.Contour {
		a := geom.Arc{
			Center:     c.center,
			Radii:      geom.Vec(c.radius, c.radius),
			StartAngle: radians(c.startAngle),
			SweepAngle: 2 * math.Pi,
		}
		closed := true
		if !c.Closed() {
			a.SweepAngle = radians(c.sweepAngle)
			closed = false
		}
		return []geom.Contour{{Segments: a.Cubics(), Closed: closed}}
	})
}

// Flatten samples the outline at [FlattenSteps] spans per quarter turn's
// worth of Bézier segment.
func (c *Circle) Flatten() []geom.Point {
	return flattenContours(c.Contours())
}

func (c *Circle) PathData() string {
	return contoursPathData(c.Contours())
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
