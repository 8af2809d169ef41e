package linemesh

import (
	"math"
	"testing"

	"github.com/vecsketch/vecsketch/geom"
)

func TestBuilderSessionContract(t *testing.T) {
	b := NewBuilder()

	if err := b.LineTo(geom.Pt(1, 0)); err != ErrNoSession {
		t.Fatalf("got %v, expected ErrNoSession", err)
	}
	if err := b.EndPolyLine(false); err != ErrNoSession {
		t.Fatalf("got %v, expected ErrNoSession", err)
	}

	if err := b.BeginPolyLine(geom.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := b.BeginPolyLine(geom.Pt(1, 1)); err != ErrSessionOpen {
		t.Fatalf("got %v, expected ErrSessionOpen", err)
	}
	if err := b.Circle(geom.Pt(0, 0), 1, 4); err != ErrSessionOpen {
		t.Fatalf("got %v, expected ErrSessionOpen", err)
	}

	if err := b.EndPolyLine(false); err != nil {
		t.Fatal(err)
	}
	if err := b.BeginPolyLine(geom.Pt(0, 0)); err != nil {
		t.Fatalf("got %v, expected a fresh session after End", err)
	}
}

func TestBuilderSingleSegment(t *testing.T) {
	b := NewBuilder()
	if err := b.BeginPolyLine(geom.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := b.LineTo(geom.Pt(10, 0)); err != nil {
		t.Fatal(err)
	}
	if err := b.EndPolyLine(false); err != nil {
		t.Fatal(err)
	}

	verts := b.Vertices()
	if len(verts) != 4 {
		t.Fatalf("got %d vertices, expected 4", len(verts))
	}
	if len(b.Indices()) != 6 {
		t.Fatalf("got %d indices, expected 6", len(b.Indices()))
	}

	// Pairs are mirrored: same position and arc length, opposite offsets.
	for i := 0; i < len(verts); i += 2 {
		a, bb := verts[i], verts[i+1]
		if a.Position != bb.Position || a.ArcLength != bb.ArcLength {
			t.Fatalf("pair %d not aligned: %+v vs %+v", i/2, a, bb)
		}
		if a.Side != 1 || bb.Side != -1 {
			t.Fatalf("pair %d has sides %v, %v", i/2, a.Side, bb.Side)
		}
		if a.Offset != bb.Offset.Negate() {
			t.Fatalf("pair %d offsets not mirrored", i/2)
		}
	}

	// Along +x the positive-side offset points up.
	if verts[0].Offset != geom.Vec(0, 1) {
		t.Errorf("got start offset %v, expected (0, 1)", verts[0].Offset)
	}
	if verts[0].ArcLength != 0 {
		t.Errorf("got start arc length %v, expected 0", verts[0].ArcLength)
	}
	if verts[2].ArcLength != 10 {
		t.Errorf("got end arc length %v, expected 10", verts[2].ArcLength)
	}
}

func TestBuilderGentleTurnConnectsDirectly(t *testing.T) {
	b := NewBuilder()
	must(t, b.BeginPolyLine(geom.Pt(0, 0)))
	must(t, b.LineTo(geom.Pt(10, 0)))
	// 45° turn, well under the bevel threshold.
	must(t, b.LineTo(geom.Pt(20, 10)))
	must(t, b.EndPolyLine(false))

	if n := len(b.Vertices()); n != 6 {
		t.Errorf("got %d vertices, expected 6 (no join pair)", n)
	}
	if n := len(b.Indices()); n != 12 {
		t.Errorf("got %d indices, expected 12 (two quads)", n)
	}
}

func TestBuilderSharpTurnEmitsBevel(t *testing.T) {
	b := NewBuilder()
	must(t, b.BeginPolyLine(geom.Pt(0, 0)))
	must(t, b.LineTo(geom.Pt(10, 0)))
	// Near-reversal, far beyond the ~120° trigger.
	must(t, b.LineTo(geom.Pt(0, 1)))
	must(t, b.EndPolyLine(false))

	// Start pair, corner pair, bevel pair at the corner, end pair.
	if n := len(b.Vertices()); n != 8 {
		t.Errorf("got %d vertices, expected 8", n)
	}
	// Two quads plus one bevel triangle.
	if n := len(b.Indices()); n != 15 {
		t.Errorf("got %d indices, expected 15", n)
	}
}

func TestBuilderClosedRing(t *testing.T) {
	b := NewBuilder()
	must(t, b.BeginPolyLine(geom.Pt(0, 0)))
	must(t, b.LineTo(geom.Pt(10, 0)))
	must(t, b.LineTo(geom.Pt(10, 10)))
	must(t, b.LineTo(geom.Pt(0, 10)))
	if err := b.EndPolyLine(true); err != nil {
		t.Fatal(err)
	}

	// The wrap-around span returns to the start point.
	verts := b.Vertices()
	last := verts[len(verts)-1]
	if last.Position != (geom.Pt(0, 0)) {
		t.Errorf("got final position %v, expected the start", last.Position)
	}
	if want := 40.0; last.ArcLength != want {
		t.Errorf("got final arc length %v, expected %v", last.ArcLength, want)
	}
}

func TestBuilderCurveArcLength(t *testing.T) {
	b := NewBuilder()
	must(t, b.BeginPolyLine(geom.Pt(0, 0)))
	// A degenerate straight "curve" has an exactly known length.
	must(t, b.CurveTo(geom.Pt(3, 0), geom.Pt(6, 0), geom.Pt(9, 0), 3))
	must(t, b.EndPolyLine(false))

	verts := b.Vertices()
	last := verts[len(verts)-1]
	if math.Abs(last.ArcLength-9) > 1e-9 {
		t.Errorf("got arc length %v, expected 9", last.ArcLength)
	}
	// Each step advances by an equal share.
	if math.Abs(verts[2].ArcLength-3) > 1e-9 {
		t.Errorf("got first-step arc length %v, expected 3", verts[2].ArcLength)
	}
}

func TestBuilderCircle(t *testing.T) {
	b := NewBuilder()
	const steps = 4
	if err := b.Circle(geom.Pt(1, 2), 5, steps); err != nil {
		t.Fatal(err)
	}

	verts := b.Vertices()
	wantPairs := 4*steps + 1
	if len(verts) != 2*wantPairs {
		t.Fatalf("got %d vertices, expected %d", len(verts), 2*wantPairs)
	}
	if len(b.Indices()) != 6*4*steps {
		t.Fatalf("got %d indices, expected %d", len(b.Indices()), 6*4*steps)
	}

	// The closing pair duplicates the first in position but carries the
	// full circumference as arc length.
	first := verts[0]
	last := verts[len(verts)-2]
	if first.Position.Distance(last.Position) > 1e-9 {
		t.Errorf("ring does not close: %v vs %v", first.Position, last.Position)
	}
	if math.Abs(last.ArcLength-2*math.Pi*5) > 1e-9 {
		t.Errorf("got closing arc length %v, expected the circumference", last.ArcLength)
	}

	// Offsets point radially outward.
	for i := 0; i < len(verts); i += 2 {
		v := verts[i]
		radial := v.Position.Sub(geom.Pt(1, 2)).Normalize()
		if radial.Sub(v.Offset).Hypot() > 1e-9 {
			t.Fatalf("pair %d offset %v is not radial %v", i/2, v.Offset, radial)
		}
	}
}

func TestBuilderOverflow(t *testing.T) {
	b := NewBuilder()
	must(t, b.BeginPolyLine(geom.Pt(0, 0)))

	var err error
	for i := 1; err == nil && i <= MaxVertices; i++ {
		err = b.LineTo(geom.Pt(float64(i), 0))
	}
	if err != ErrOutOfSpace {
		t.Fatalf("got %v, expected ErrOutOfSpace", err)
	}
	if b.Err() != ErrOutOfSpace {
		t.Fatalf("got sticky error %v, expected ErrOutOfSpace", b.Err())
	}
	if len(b.Vertices()) > MaxVertices {
		t.Errorf("vertex buffer exceeded the cap: %d", len(b.Vertices()))
	}

	// Later geometry is dropped with the same error.
	if err := b.LineTo(geom.Pt(0, 1)); err != ErrOutOfSpace {
		t.Fatalf("got %v, expected ErrOutOfSpace", err)
	}

	// Reset clears the error and reuses the buffers.
	b.Reset()
	if b.Err() != nil {
		t.Fatalf("got %v after Reset, expected nil", b.Err())
	}
	if len(b.Vertices()) != 0 || len(b.Indices()) != 0 {
		t.Fatal("Reset must empty the mesh")
	}
	must(t, b.BeginPolyLine(geom.Pt(0, 0)))
	must(t, b.LineTo(geom.Pt(1, 0)))
	if len(b.Vertices()) != 4 {
		t.Errorf("got %d vertices after reuse, expected 4", len(b.Vertices()))
	}
}

func TestBuilderZeroLengthSpansSkipped(t *testing.T) {
	b := NewBuilder()
	must(t, b.BeginPolyLine(geom.Pt(0, 0)))
	must(t, b.LineTo(geom.Pt(0, 0)))
	if n := len(b.Vertices()); n != 0 {
		t.Errorf("got %d vertices for a zero-length span, expected 0", n)
	}
	must(t, b.LineTo(geom.Pt(1, 0)))
	must(t, b.EndPolyLine(false))
	if n := len(b.Vertices()); n != 4 {
		t.Errorf("got %d vertices, expected 4", n)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
