package shape

import (
	"github.com/vecsketch/vecsketch/geom"
)

// Text is a text label anchored at a position. Glyph outlining is not
// implemented: the shape participates in selection and transforms through
// its anchor only, and contributes no contour geometry.
type Text struct {
	base
	position geom.Point
	rotation float64 // radians
	content  string
	font     string
	size     float64
}

var _ Shape = (*Text)(nil)

// NewText creates a text label at pos.
func NewText(pos geom.Point, content string) *Text {
	return &Text{
		base:     newBase(),
		position: pos,
		content:  content,
		size:     12,
	}
}

func (t *Text) Position() geom.Point { return t.position }
func (t *Text) RotationAngle() float64 { return t.rotation }
func (t *Text) Content() string      { return t.content }
func (t *Text) Font() string         { return t.font }
func (t *Text) Size() float64        { return t.size }

func (t *Text) SetPosition(pos geom.Point) {
	t.position = pos
	t.invalidate()
}

func (t *Text) SetContent(content string) {
	t.content = content
	t.invalidate()
}

func (t *Text) SetFont(font string) {
	t.font = font
	t.invalidate()
}

func (t *Text) SetSize(size float64) {
	t.size = size
	t.invalidate()
}

func (t *Text) Closed() bool { return false }

func (t *Text) Distance(pt geom.Point) float64 {
	return pt.Distance(t.position)
}

func (t *Text) Contains(pt geom.Point) bool { return false }

func (t *Text) Bounds() geom.Rect {
	return t.cachedBounds(func() geom.Rect {
		return geom.NewRectFromPoints(t.position, t.position)
	})
}

func (t *Text) InRect(r geom.Rect) bool {
	return r.Contains(t.position)
}

func (t *Text) Snap(pt geom.Point) Snap {
	return Snap{Point: t.position, Distance: pt.Distance(t.position)}
}

func (t *Text) Translate(v geom.Vec2) {
	t.position = t.position.Translate(v)
	t.invalidate()
}

func (t *Text) Rotate(radians float64, about geom.Point) {
	t.position = t.position.Transform(geom.RotateAbout(radians, about))
	t.rotation += radians
	t.invalidate()
}

func (t *Text) ScaleBy(factor geom.Vec2, about geom.Point) error {
	if err := checkScale(factor); err != nil {
		return err
	}
	t.TransformBy(scaleAbout(factor, about))
	return nil
}

func (t *Text) TransformBy(aff geom.Affine) {
	t.position = t.position.Transform(aff)
	t.invalidate()
}

// Contours returns nothing; glyph outlines are not generated.
func (t *Text) Contours() []geom.Contour {
	return t.cachedContours(func() []geom.Contour { return nil })
}

func (t *Text) Flatten() []geom.Point {
	return []geom.Point{t.position}
}

func (t *Text) PathData() string { return "" }
