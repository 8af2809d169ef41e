package shape

import (
	"strconv"
	"strings"

	"github.com/vecsketch/vecsketch/geom"
)

// SVG path serialization. The internal coordinate system is y-up while SVG is
// y-down, so every emitted y coordinate is negated. The emitters produce
// absolute commands only: M, L, C and Z.

func writeCoord(sb *strings.Builder, v float64) {
	if v == 0 {
		// Avoid "-0" from negated zero ordinates.
		v = 0
	}
	sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
}

func writePoint(sb *strings.Builder, pt geom.Point) {
	x, y := pt.Splat()
	writeCoord(sb, x)
	sb.WriteByte(' ')
	writeCoord(sb, -y)
}

// polylinePathData emits the polyline directly from its vertices, keeping
// straight segments as L commands instead of degenerate cubics.
func polylinePathData(p *Polyline) string {
	if len(p.vertices) == 0 {
		return ""
	}
	sb := &strings.Builder{}
	sb.WriteString("M ")
	writePoint(sb, p.vertices[0].Position)
	for i := 0; i < p.SegmentCount(); i++ {
		a, b := p.segmentEnds(i)
		if a.SegmentCurves {
			sb.WriteString(" C ")
			writePoint(sb, a.ExitControl)
			sb.WriteByte(' ')
			writePoint(sb, b.EnterControl)
			sb.WriteByte(' ')
			writePoint(sb, b.Position)
		} else {
			sb.WriteString(" L ")
			writePoint(sb, b.Position)
		}
	}
	if p.closed {
		sb.WriteString(" Z")
	}
	return sb.String()
}

// contoursPathData emits contour geometry as cubic commands.
func contoursPathData(contours []geom.Contour) string {
	sb := &strings.Builder{}
	for ci, c := range contours {
		if len(c.Segments) == 0 {
			continue
		}
		if ci > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("M ")
		writePoint(sb, c.Start())
		for _, seg := range c.Segments {
			if seg.P1 == seg.P0 && seg.P2 == seg.P3 {
				sb.WriteString(" L ")
				writePoint(sb, seg.P3)
				continue
			}
			sb.WriteString(" C ")
			writePoint(sb, seg.P1)
			sb.WriteByte(' ')
			writePoint(sb, seg.P2)
			sb.WriteByte(' ')
			writePoint(sb, seg.P3)
		}
		if c.Closed {
			sb.WriteString(" Z")
		}
	}
	return sb.String()
}

// flattenContours samples contour geometry into a plain point list, with
// [FlattenSteps] spans per segment.
func flattenContours(contours []geom.Contour) []geom.Point {
	var pts []geom.Point
	for _, c := range contours {
		if len(c.Segments) == 0 {
			continue
		}
		pts = append(pts, c.Start())
		for _, seg := range c.Segments {
			pts = seg.Flatten(FlattenSteps, pts)
		}
		if c.Closed && len(pts) > 1 && pts[len(pts)-1] == pts[0] {
			pts = pts[:len(pts)-1]
		}
	}
	return pts
}
