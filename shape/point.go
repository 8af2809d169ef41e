package shape

import (
	"github.com/vecsketch/vecsketch/geom"
)

// Point is a single marker position. It has no interior and no outline
// geometry of its own; it renders as a dot whose size comes from the style's
// pen width.
type Point struct {
	base
	position geom.Point
}

var _ Shape = (*Point)(nil)

// NewPoint creates a point marker at pos.
func NewPoint(pos geom.Point) *Point {
	return &Point{
		base:     newBase(),
		position: pos,
	}
}

func (p *Point) Position() geom.Point { return p.position }

func (p *Point) SetPosition(pos geom.Point) {
	p.position = pos
	p.invalidate()
}

func (p *Point) Closed() bool { return false }

// Distance returns the euclidean distance from pt to the marker position.
func (p *Point) Distance(pt geom.Point) float64 {
	return pt.Distance(p.position)
}

// Contains always reports false; a point has no interior.
func (p *Point) Contains(pt geom.Point) bool { return false }

func (p *Point) Bounds() geom.Rect {
	return p.cachedBounds(func() geom.Rect {
		return geom.NewRectFromPoints(p.position, p.position)
	})
}

func (p *Point) InRect(r geom.Rect) bool {
	return r.Contains(p.position)
}

func (p *Point) Snap(pt geom.Point) Snap {
	return Snap{
		Point:    p.position,
		Distance: pt.Distance(p.position),
	}
}

func (p *Point) Translate(v geom.Vec2) {
	p.position = p.position.Translate(v)
	p.invalidate()
}

func (p *Point) Rotate(radians float64, about geom.Point) {
	p.TransformBy(geom.RotateAbout(radians, about))
}

func (p *Point) ScaleBy(factor geom.Vec2, about geom.Point) error {
	if err := checkScale(factor); err != nil {
		return err
	}
	p.TransformBy(scaleAbout(factor, about))
	return nil
}

func (p *Point) TransformBy(aff geom.Affine) {
	p.position = p.position.Transform(aff)
	p.invalidate()
}

// Contours returns no geometry; markers are rendered by the host, not
// tessellated.
func (p *Point) Contours() []geom.Contour {
	return p.cachedContours(func() []geom.Contour { return nil })
}

func (p *Point) Flatten() []geom.Point {
	return []geom.Point{p.position}
}

func (p *Point) PathData() string {
	return ""
}

// scaleAbout builds the affine transform scaling by factor about a fixed
// point.
func scaleAbout(factor geom.Vec2, about geom.Point) geom.Affine {
	c := geom.Vec2(about)
	return geom.Translate(c).
		PreScale(factor.X, factor.Y).
		PreTranslate(c.Negate())
}
