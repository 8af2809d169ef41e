package geom

import (
	"testing"
)

func TestContoursSplitting(t *testing.T) {
	elements := []PathElement{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(1, 0)),
		CubicTo(Pt(1.5, 1), Pt(0.5, 1), Pt(0, 0)),
		ClosePath(),
		MoveTo(Pt(5, 5)),
		LineTo(Pt(6, 5)),
		LineTo(Pt(6, 6)),
	}
	contours := Contours(elements)
	if len(contours) != 2 {
		t.Fatalf("got %d contours, expected 2", len(contours))
	}

	first := contours[0]
	if !first.Closed {
		t.Error("expected the first contour to be closed")
	}
	if len(first.Segments) != 2 {
		t.Fatalf("got %d segments, expected 2", len(first.Segments))
	}
	// The close needs no extra segment: the cubic already returns to the
	// starting point.
	assertNear(t, first.Segments[1].P3, first.Start(), 1e-12)

	second := contours[1]
	if second.Closed {
		t.Error("expected the second contour to be open")
	}
	if len(second.Segments) != 2 {
		t.Fatalf("got %d segments, expected 2", len(second.Segments))
	}
	assertNear(t, second.Start(), Pt(5, 5), 1e-12)
}

func TestContoursRaisesLinesAndQuads(t *testing.T) {
	const epsilon = 1e-12
	elements := []PathElement{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(4, 0)),
		QuadTo(Pt(5, 2), Pt(6, 0)),
	}
	contours := Contours(elements)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, expected 1", len(contours))
	}
	segs := contours[0].Segments

	// The straight segment keeps its control points on the endpoints.
	if segs[0].P1 != segs[0].P0 || segs[0].P2 != segs[0].P3 {
		t.Errorf("unexpected straight-segment controls %+v", segs[0])
	}

	// The raised quadratic evaluates identically.
	q := QuadBez{Pt(4, 0), Pt(5, 2), Pt(6, 0)}
	for i := 0; i <= 10; i++ {
		u := float64(i) / 10
		assertNear(t, segs[1].Eval(u), q.Eval(u), epsilon)
	}
}

func TestContoursClosingSegment(t *testing.T) {
	elements := []PathElement{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(1, 0)),
		LineTo(Pt(1, 1)),
		ClosePath(),
	}
	contours := Contours(elements)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, expected 1", len(contours))
	}
	c := contours[0]
	if !c.Closed || len(c.Segments) != 3 {
		t.Fatalf("got %d segments (closed=%v), expected 3 closed", len(c.Segments), c.Closed)
	}
	assertNear(t, c.Segments[2].P3, Pt(0, 0), 1e-12)
}

func TestContourTransform(t *testing.T) {
	c := Contour{
		Segments: []CubicBez{lineCubic(Pt(0, 0), Pt(1, 0))},
		Closed:   false,
	}
	got := c.Transform(Translate(Vec(2, 3)))
	assertNear(t, got.Segments[0].P0, Pt(2, 3), 1e-12)
	assertNear(t, got.Segments[0].P3, Pt(3, 3), 1e-12)
	// The original is untouched.
	assertNear(t, c.Segments[0].P0, Pt(0, 0), 1e-12)
}

func TestPathElementTransform(t *testing.T) {
	el := CubicTo(Pt(1, 0), Pt(2, 0), Pt(3, 0)).Transform(Scale(2, 2))
	diff(t, CubicTo(Pt(2, 0), Pt(4, 0), Pt(6, 0)), el)
}
