package vgio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecsketch/vecsketch/geom"
)

func TestParsePathDataAbsolute(t *testing.T) {
	els, err := ParsePathData("M 1 2 L 3 4 C 5 6 7 8 9 10 Z")
	require.NoError(t, err)
	assert.Equal(t, []geom.PathElement{
		geom.MoveTo(geom.Pt(1, 2)),
		geom.LineTo(geom.Pt(3, 4)),
		geom.CubicTo(geom.Pt(5, 6), geom.Pt(7, 8), geom.Pt(9, 10)),
		geom.ClosePath(),
	}, els)
}

func TestParsePathDataRelative(t *testing.T) {
	els, err := ParsePathData("m 1 1 l 2 0 l 0 2")
	require.NoError(t, err)
	assert.Equal(t, []geom.PathElement{
		geom.MoveTo(geom.Pt(1, 1)),
		geom.LineTo(geom.Pt(3, 1)),
		geom.LineTo(geom.Pt(3, 3)),
	}, els)
}

func TestParsePathDataImplicitLineTo(t *testing.T) {
	// Coordinates after a moveto continue as linetos.
	els, err := ParsePathData("M 0 0 1 0 1 1")
	require.NoError(t, err)
	assert.Equal(t, []geom.PathElement{
		geom.MoveTo(geom.Pt(0, 0)),
		geom.LineTo(geom.Pt(1, 0)),
		geom.LineTo(geom.Pt(1, 1)),
	}, els)
}

func TestParsePathDataHorizontalVertical(t *testing.T) {
	els, err := ParsePathData("M 1 1 H 5 v -2 h 1 V 0")
	require.NoError(t, err)
	assert.Equal(t, []geom.PathElement{
		geom.MoveTo(geom.Pt(1, 1)),
		geom.LineTo(geom.Pt(5, 1)),
		geom.LineTo(geom.Pt(5, -1)),
		geom.LineTo(geom.Pt(6, -1)),
		geom.LineTo(geom.Pt(6, 0)),
	}, els)
}

func TestParsePathDataSmoothCubic(t *testing.T) {
	els, err := ParsePathData("M 0 0 C 0 1 1 1 1 0 S 2 -1 2 0")
	require.NoError(t, err)
	require.Len(t, els, 3)

	// The shorthand's first control is the previous second control
	// reflected about the current point.
	smooth := els[2]
	assert.Equal(t, geom.CubicToKind, smooth.Kind)
	assert.Equal(t, geom.Pt(1, -1), smooth.P0)
	assert.Equal(t, geom.Pt(2, -1), smooth.P1)
	assert.Equal(t, geom.Pt(2, 0), smooth.P2)
}

func TestParsePathDataQuadAndSmoothQuad(t *testing.T) {
	els, err := ParsePathData("M 0 0 Q 1 2 2 0 T 4 0")
	require.NoError(t, err)
	require.Len(t, els, 3)
	assert.Equal(t, geom.QuadTo(geom.Pt(1, 2), geom.Pt(2, 0)), els[1])
	// Reflected control: 2·(2,0) − (1,2) = (3,−2).
	assert.Equal(t, geom.QuadTo(geom.Pt(3, -2), geom.Pt(4, 0)), els[2])
}

func TestParsePathDataCompactSeparators(t *testing.T) {
	els, err := ParsePathData("M0,0L10,0l-5,5")
	require.NoError(t, err)
	assert.Equal(t, []geom.PathElement{
		geom.MoveTo(geom.Pt(0, 0)),
		geom.LineTo(geom.Pt(10, 0)),
		geom.LineTo(geom.Pt(5, 5)),
	}, els)

	// Negative numbers may follow without separators.
	els, err = ParsePathData("M1-2L-3-4")
	require.NoError(t, err)
	assert.Equal(t, geom.MoveTo(geom.Pt(1, -2)), els[0])
	assert.Equal(t, geom.LineTo(geom.Pt(-3, -4)), els[1])
}

func TestParsePathDataArc(t *testing.T) {
	// A unit semicircle from (0,0) to (2,0).
	els, err := ParsePathData("M 0 0 A 1 1 0 0 1 2 0")
	require.NoError(t, err)
	require.Greater(t, len(els), 1)

	contours := geom.Contours(els)
	require.Len(t, contours, 1)
	segs := contours[0].Segments
	assert.Equal(t, geom.Pt(0, 0), segs[0].P0)
	end := segs[len(segs)-1].P3
	assert.InDelta(t, 2, end.X, 1e-9)
	assert.InDelta(t, 0, end.Y, 1e-9)

	// All interior samples stay on the unit circle about (1,0).
	for _, seg := range segs {
		for i := 0; i <= 8; i++ {
			p := seg.Eval(float64(i) / 8)
			assert.InDelta(t, 1, p.Distance(geom.Pt(1, 0)), 2e-3)
		}
	}
}

func TestParsePathDataArcFlagsPacked(t *testing.T) {
	// Arc flags may abut the following coordinate, as minified SVG does.
	els, err := ParsePathData("M 0 0 A 1 1 0 0110 0")
	require.NoError(t, err)
	contours := geom.Contours(els)
	require.Len(t, contours, 1)
	end := contours[0].Segments[len(contours[0].Segments)-1].P3
	assert.InDelta(t, 10, end.X, 1e-9)
}

func TestParsePathDataDegenerateArcIsLine(t *testing.T) {
	els, err := ParsePathData("M 0 0 A 0 5 0 0 1 4 0")
	require.NoError(t, err)
	assert.Equal(t, []geom.PathElement{
		geom.MoveTo(geom.Pt(0, 0)),
		geom.LineTo(geom.Pt(4, 0)),
	}, els)
}

func TestParsePathDataErrors(t *testing.T) {
	_, err := ParsePathData("1 2 L 3 4")
	assert.Error(t, err, "path data must start with a command")
	_, err = ParsePathData("M 0 0 Z 1 1")
	assert.Error(t, err, "coordinates after a close command")
	_, err = ParsePathData("M 1")
	assert.Error(t, err)
	_, err = ParsePathData("M 0 0 A 1 1 0 2 0 1 1")
	assert.Error(t, err, "arc flags must be 0 or 1")
	_, err = ParsePathData("M 0 0 X 1 1")
	assert.Error(t, err)
}

func TestArcFromEndpointsSweepDirection(t *testing.T) {
	arc, ok := arcFromEndpoints(geom.Pt(0, 0), geom.Pt(2, 0), 1, 1, 0, false, true)
	require.True(t, ok)
	assert.InDelta(t, 1, arc.Center.X, 1e-9)
	assert.InDelta(t, 0, arc.Center.Y, 1e-9)
	assert.InDelta(t, math.Pi, arc.SweepAngle, 1e-9)

	arc, ok = arcFromEndpoints(geom.Pt(0, 0), geom.Pt(2, 0), 1, 1, 0, false, false)
	require.True(t, ok)
	assert.InDelta(t, -math.Pi, arc.SweepAngle, 1e-9)
}

func TestParsePathDataSubpathAfterClose(t *testing.T) {
	// A drawing command directly after Z starts a new subpath at the closed
	// subpath's initial point.
	els, err := ParsePathData("M 0 0 L 1 0 L 1 1 Z L 2 0")
	require.NoError(t, err)
	assert.Equal(t, []geom.PathElement{
		geom.MoveTo(geom.Pt(0, 0)),
		geom.LineTo(geom.Pt(1, 0)),
		geom.LineTo(geom.Pt(1, 1)),
		geom.ClosePath(),
		geom.MoveTo(geom.Pt(0, 0)),
		geom.LineTo(geom.Pt(2, 0)),
	}, els)

	contours := geom.Contours(els)
	require.Len(t, contours, 2)
	assert.False(t, contours[1].Closed)
	assert.Equal(t, geom.Pt(0, 0), contours[1].Start())

	// Relative commands after the close resolve against that initial point.
	els, err = ParsePathData("m 1 1 h 1 z l 1 0")
	require.NoError(t, err)
	assert.Equal(t, geom.LineTo(geom.Pt(2, 1)), els[len(els)-1])
}
