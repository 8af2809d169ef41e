package vgio

import (
	"errors"
	"fmt"
	"math"

	"github.com/vecsketch/vecsketch/geom"
	"github.com/vecsketch/vecsketch/shape"
)

// ErrUnsupportedEntity reports a DXF entity kind or variant the importer
// cannot map onto a shape. ImportDXF skips such entities; EntityShape
// returns the error to the caller.
var ErrUnsupportedEntity = errors.New("vgio: unsupported dxf entity")

// circleRatio is the axis ratio above which an ELLIPSE entity is treated as
// a circle.
const circleRatio = 0.999

// Entity is one drawing entity of a parsed DXF file, reduced to the fields
// the importer consumes. Kind selects which fields are meaningful, matching
// the DXF entity names.
type Entity struct {
	// Kind is the DXF entity name: POINT, LINE, ARC, CIRCLE, ELLIPSE,
	// SPLINE, POLYLINE or LWPOLYLINE.
	Kind string

	// Points holds the vertex or control point list of LINE, SPLINE and
	// POLYLINE entities, and the single position of a POINT.
	Points []geom.Point

	// Bulges holds the per-vertex bulge factors of POLYLINE entities. A
	// vertex's bulge bends the segment leaving it; zero means straight.
	// May be shorter than Points, missing entries are zero.
	Bulges []float64

	// Closed marks a closed POLYLINE.
	Closed bool

	// Degree is the SPLINE degree: 1, 2 or 3.
	Degree int

	Center geom.Point

	// Radius of ARC and CIRCLE entities.
	Radius float64

	// StartAngle and EndAngle bound an ARC, in degrees counterclockwise.
	StartAngle float64
	EndAngle   float64

	// MajorAxis is the ELLIPSE major axis endpoint relative to Center.
	MajorAxis geom.Vec2

	// Ratio is the ELLIPSE minor-to-major axis ratio.
	Ratio float64

	// StartParam and EndParam bound a partial ELLIPSE, in radians. Equal
	// values (or a full 2π span) mean a full ellipse.
	StartParam float64
	EndParam   float64
}

// ImportDXF maps a parsed entity list onto shapes. Entities the importer
// does not understand are skipped with a log record; the result holds
// everything that could be built.
func ImportDXF(entities []Entity) []shape.Shape {
	out := make([]shape.Shape, 0, len(entities))
	for i, e := range entities {
		s, err := EntityShape(e)
		if err != nil {
			Logger().Warn("vgio: skipping dxf entity", "index", i, "kind", e.Kind, "err", err)
			continue
		}
		out = append(out, s)
	}
	return out
}

// EntityShape converts a single entity. Unknown kinds and degenerate
// geometry return an error wrapping ErrUnsupportedEntity.
func EntityShape(e Entity) (shape.Shape, error) {
	switch e.Kind {
	case "POINT":
		pos := e.Center
		if len(e.Points) > 0 {
			pos = e.Points[0]
		}
		return shape.NewPoint(pos), nil
	case "LINE":
		if len(e.Points) != 2 {
			return nil, fmt.Errorf("%w: LINE with %d points", ErrUnsupportedEntity, len(e.Points))
		}
		return shape.NewPolyline(e.Points, false, false)
	case "ARC":
		sweep := e.EndAngle - e.StartAngle
		for sweep <= 0 {
			sweep += 360
		}
		return shape.NewArc(e.Center, e.Radius, e.StartAngle, sweep)
	case "CIRCLE":
		return shape.NewCircle(e.Center, e.Radius)
	case "ELLIPSE":
		return ellipseShape(e)
	case "SPLINE":
		return splineShape(e)
	case "POLYLINE", "LWPOLYLINE":
		return polylineShape(e)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEntity, e.Kind)
	}
}

func ellipseShape(e Entity) (shape.Shape, error) {
	major := e.MajorAxis.Hypot()
	if major <= 0 {
		return nil, fmt.Errorf("%w: ELLIPSE with zero major axis", ErrUnsupportedEntity)
	}
	startDeg := e.StartParam * 180 / math.Pi
	sweepDeg := (e.EndParam - e.StartParam) * 180 / math.Pi
	if sweepDeg < 0 {
		sweepDeg += 360
	}
	full := sweepDeg == 0 || math.Abs(sweepDeg-360) < 1e-9
	if e.Ratio >= circleRatio {
		if full {
			return shape.NewCircle(e.Center, major)
		}
		return shape.NewArc(e.Center, major, startDeg, sweepDeg)
	}
	ecc := math.Sqrt(1 - e.Ratio*e.Ratio)
	if full {
		return shape.NewEllipse(e.Center, e.MajorAxis, ecc)
	}
	return shape.NewEllipseArc(e.Center, e.MajorAxis, ecc, startDeg, sweepDeg)
}

// splineShape treats the control points as a run of Bézier spans of the
// entity's degree. Degree 1 is a plain polyline, degree 2 consumes a control
// and an end point per span, degree 3 two controls and an end point.
func splineShape(e Entity) (shape.Shape, error) {
	pts := e.Points
	if len(pts) < 2 {
		return nil, fmt.Errorf("%w: SPLINE with %d points", ErrUnsupportedEntity, len(pts))
	}
	switch e.Degree {
	case 1:
		return shape.NewPolyline(pts, false, e.Closed)
	case 2, 3:
	default:
		return nil, fmt.Errorf("%w: SPLINE degree %d", ErrUnsupportedEntity, e.Degree)
	}
	if (len(pts)-1)%e.Degree != 0 {
		return nil, fmt.Errorf("%w: SPLINE degree %d with %d points", ErrUnsupportedEntity, e.Degree, len(pts))
	}
	p, err := shape.NewPolyline(pts[:1], false, false)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(pts); i += e.Degree {
		if e.Degree == 2 {
			err = p.QuadTo(pts[i+1], pts[i])
		} else {
			err = p.CurveTo(pts[i+2], pts[i], pts[i+1])
		}
		if err != nil {
			return nil, err
		}
	}
	if e.Closed {
		p.Close()
	}
	return p, nil
}

func polylineShape(e Entity) (shape.Shape, error) {
	if len(e.Points) < 2 {
		return nil, fmt.Errorf("%w: POLYLINE with %d points", ErrUnsupportedEntity, len(e.Points))
	}
	p, err := shape.NewPolyline(e.Points[:1], false, false)
	if err != nil {
		return nil, err
	}
	bulge := func(i int) float64 {
		if i < len(e.Bulges) {
			return e.Bulges[i]
		}
		return 0
	}
	for i := 1; i < len(e.Points); i++ {
		if b := bulge(i - 1); b != 0 {
			err = p.ArcToBulge(e.Points[i], b)
		} else {
			err = p.LineTo(e.Points[i])
		}
		if err != nil {
			return nil, err
		}
	}
	if e.Closed {
		// The last vertex's bulge bends the closing segment.
		if b := bulge(len(e.Points) - 1); b != 0 {
			if err := p.ArcToBulge(e.Points[0], b); err != nil {
				return nil, err
			}
		}
		p.Close()
	}
	return p, nil
}
