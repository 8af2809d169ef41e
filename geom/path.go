package geom

import (
	"fmt"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic bezier using the current location and the two points.
	QuadToKind
	// Draw a cubic bezier using the current location and the three points.
	CubicToKind
	// Close off the subpath.
	ClosePathKind
)

// PathElement is the element of a Bézier path.
//
// A valid path has MoveTo at the beginning of each subpath.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	var kind string
	switch el.Kind {
	case MoveToKind:
		kind = "MoveTo"
	case LineToKind:
		kind = "LineTo"
	case QuadToKind:
		kind = "QuadTo"
	case CubicToKind:
		kind = "CubicTo"
	case ClosePathKind:
		kind = "ClosePath"
	default:
		kind = "InvalidPathElement"
	}
	return fmt.Sprintf("%s(%s, %s, %s)", kind, el.P0, el.P1, el.P2)
}

func (el PathElement) Transform(aff Affine) PathElement {
	switch el.Kind {
	case MoveToKind:
		return MoveTo(el.P0.Transform(aff))
	case LineToKind:
		return LineTo(el.P0.Transform(aff))
	case QuadToKind:
		return QuadTo(el.P0.Transform(aff), el.P1.Transform(aff))
	case CubicToKind:
		return CubicTo(el.P0.Transform(aff), el.P1.Transform(aff), el.P2.Transform(aff))
	case ClosePathKind:
		return ClosePath()
	default:
		return PathElement{}
	}
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p0, p1 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p0, P1: p1}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// Contour is a single connected run of cubic Bézier segments. Each segment's
// P0 coincides with the previous segment's P3. A closed contour additionally
// connects the last segment's P3 back to the first segment's P0.
type Contour struct {
	Segments []CubicBez
	Closed   bool
}

// Transform returns a copy of the contour with every segment transformed.
func (c Contour) Transform(aff Affine) Contour {
	segs := make([]CubicBez, len(c.Segments))
	for i, seg := range c.Segments {
		segs[i] = seg.Transform(aff)
	}
	return Contour{Segments: segs, Closed: c.Closed}
}

// Start returns the contour's starting point. Contours with no segments
// return the zero point.
func (c Contour) Start() Point {
	if len(c.Segments) == 0 {
		return Point{}
	}
	return c.Segments[0].P0
}

// Contours splits a path element stream into contours of cubic segments.
// Lines and quadratic Béziers are raised to cubics. Elements before the first
// MoveTo are ignored.
func Contours(elements []PathElement) []Contour {
	var out []Contour
	var cur Contour
	var start, last Point
	started := false
	flush := func() {
		if started && len(cur.Segments) > 0 {
			out = append(out, cur)
		}
		cur = Contour{}
	}
	for _, el := range elements {
		switch el.Kind {
		case MoveToKind:
			flush()
			start = el.P0
			last = el.P0
			started = true
		case LineToKind:
			if !started {
				continue
			}
			cur.Segments = append(cur.Segments, lineCubic(last, el.P0))
			last = el.P0
		case QuadToKind:
			if !started {
				continue
			}
			cur.Segments = append(cur.Segments, QuadBez{last, el.P0, el.P1}.Raise())
			last = el.P1
		case CubicToKind:
			if !started {
				continue
			}
			cur.Segments = append(cur.Segments, CubicBez{last, el.P0, el.P1, el.P2})
			last = el.P2
		case ClosePathKind:
			if !started {
				continue
			}
			if last != start {
				cur.Segments = append(cur.Segments, lineCubic(last, start))
			}
			cur.Closed = true
			last = start
			flush()
			started = false
		}
	}
	flush()
	return out
}

// lineCubic degenerates a straight segment into cubic form, with the control
// points on the endpoints.
func lineCubic(p0, p1 Point) CubicBez {
	return CubicBez{p0, p0, p1, p1}
}
