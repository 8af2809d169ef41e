package geom

import (
	"testing"
)

func TestBoundsOf(t *testing.T) {
	got := BoundsOf([]Point{Pt(1, 2), Pt(-3, 4), Pt(5, -6)})
	diff(t, Rect{X0: -3, Y0: -6, X1: 5, Y1: 4}, got)

	diff(t, Rect{}, BoundsOf(nil))
}

func TestRectFromCenter(t *testing.T) {
	r := NewRectFromCenter(Pt(1, 1), Vec(2, 3))
	diff(t, Rect{X0: -1, Y0: -2, X1: 3, Y1: 4}, r)
	assertNear(t, r.Center(), Pt(1, 1), 1e-12)
}

func TestRectContainsUnion(t *testing.T) {
	r := Rect{X0: 0, Y0: 0, X1: 2, Y1: 1}
	if !r.Contains(Pt(1, 0.5)) {
		t.Error("expected interior point to be contained")
	}
	if r.Contains(Pt(3, 0.5)) {
		t.Error("expected outside point to not be contained")
	}

	u := r.Union(Rect{X0: -1, Y0: 0.5, X1: 1, Y1: 3})
	diff(t, Rect{X0: -1, Y0: 0, X1: 2, Y1: 3}, u)

	up := r.UnionPoint(Pt(5, -1))
	diff(t, Rect{X0: 0, Y0: -1, X1: 5, Y1: 1}, up)
}

func TestVec2Perp(t *testing.T) {
	v := Vec(3, 4)
	p := v.Perp()
	if got := v.Dot(p); got != 0 {
		t.Errorf("got dot %v, expected 0", got)
	}
	if got := v.Cross(p); got <= 0 {
		t.Errorf("got cross %v, expected a counterclockwise perpendicular", got)
	}
	diff(t, Vec(-4, 3), p)
}

func TestVec2TransformVec(t *testing.T) {
	// Only the linear part applies to vectors.
	aff := Translate(Vec(100, 100)).Mul(Scale(2, 3))
	diff(t, Vec(2, 3), Vec(1, 1).TransformVec(aff))
}

func TestRectAccessors(t *testing.T) {
	r := NewRectFromPoints(Pt(1, 2), Pt(4, 8))
	diff(t, Pt(1, 2), r.Origin())
	diff(t, Vec(3, 6), r.Size())
	diff(t, Pt(2.5, 5), r.Center())
	if r.Width() != 3 || r.Height() != 6 {
		t.Errorf("got %gx%g, expected 3x6", r.Width(), r.Height())
	}
}
