package vgio

import (
	"fmt"
	"math"

	tdestrconv "github.com/tdewolff/parse/v2/strconv"

	"github.com/vecsketch/vecsketch/geom"
)

// ParsePathData converts an SVG path d attribute into a path element stream.
// All commands of the SVG 1.1 path grammar are supported; relative commands
// and shorthand curves are resolved, and elliptical arc commands are
// converted to cubic segments.
func ParsePathData(d string) ([]geom.PathElement, error) {
	p := &pathParser{data: []byte(d)}
	return p.parse()
}

type pathParser struct {
	data []byte
	pos  int

	elements []geom.PathElement
	current  geom.Point
	start    geom.Point

	// lastCmd and lastControl feed the S and T shorthand reflections.
	lastCmd     byte
	lastControl geom.Point
}

func (p *pathParser) parse() ([]geom.PathElement, error) {
	cmd := byte(0)
	for {
		p.skipSep()
		if p.pos >= len(p.data) {
			break
		}
		c := p.data[p.pos]
		if isCommand(c) {
			cmd = c
			p.pos++
		} else if cmd == 0 {
			return nil, fmt.Errorf("vgio: path data must start with a command, got %q", c)
		} else if cmd == 'M' {
			// Implicit coordinates after moveto are linetos.
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		} else if cmd == 'Z' || cmd == 'z' {
			return nil, fmt.Errorf("vgio: coordinates after close command at offset %d", p.pos)
		}
		if err := p.command(cmd); err != nil {
			return nil, err
		}
	}
	return p.elements, nil
}

func (p *pathParser) command(cmd byte) error {
	if (p.lastCmd == 'Z' || p.lastCmd == 'z') && cmd != 'M' && cmd != 'm' && cmd != 'Z' && cmd != 'z' {
		// A drawing command directly after a close starts a new subpath at
		// the closed subpath's initial point.
		p.emit(geom.MoveTo(p.start), p.start)
	}
	rel := cmd >= 'a'
	switch cmd {
	case 'M', 'm':
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.emit(geom.MoveTo(pt), pt)
		p.start = pt
	case 'Z', 'z':
		p.emit(geom.ClosePath(), p.start)
	case 'L', 'l':
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.emit(geom.LineTo(pt), pt)
	case 'H', 'h':
		x, err := p.number()
		if err != nil {
			return err
		}
		if rel {
			x += p.current.X
		}
		pt := geom.Pt(x, p.current.Y)
		p.emit(geom.LineTo(pt), pt)
	case 'V', 'v':
		y, err := p.number()
		if err != nil {
			return err
		}
		if rel {
			y += p.current.Y
		}
		pt := geom.Pt(p.current.X, y)
		p.emit(geom.LineTo(pt), pt)
	case 'C', 'c':
		c1, err := p.point(rel)
		if err != nil {
			return err
		}
		c2, err := p.point(rel)
		if err != nil {
			return err
		}
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.emitCurve(c1, c2, pt)
	case 'S', 's':
		c1 := p.reflected('C', 'c', 'S', 's')
		c2, err := p.point(rel)
		if err != nil {
			return err
		}
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.emitCurve(c1, c2, pt)
	case 'Q', 'q':
		c, err := p.point(rel)
		if err != nil {
			return err
		}
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.emitQuad(c, pt)
	case 'T', 't':
		c := p.reflected('Q', 'q', 'T', 't')
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.emitQuad(c, pt)
	case 'A', 'a':
		if err := p.arc(rel); err != nil {
			return err
		}
	default:
		return fmt.Errorf("vgio: unknown path command %q", cmd)
	}
	p.lastCmd = cmd
	return nil
}

// reflected returns the reflection of the previous curve's control point
// about the current point, or the current point itself when the previous
// command was not part of a matching curve run.
func (p *pathParser) reflected(cmds ...byte) geom.Point {
	for _, c := range cmds {
		if p.lastCmd == c {
			return p.current.Lerp(p.lastControl, -1)
		}
	}
	return p.current
}

func (p *pathParser) emit(el geom.PathElement, end geom.Point) {
	p.elements = append(p.elements, el)
	p.current = end
}

func (p *pathParser) emitCurve(c1, c2, pt geom.Point) {
	p.elements = append(p.elements, geom.CubicTo(c1, c2, pt))
	p.lastControl = c2
	p.current = pt
}

func (p *pathParser) emitQuad(c, pt geom.Point) {
	p.elements = append(p.elements, geom.QuadTo(c, pt))
	p.lastControl = c
	p.current = pt
}

// arc consumes one elliptical arc segment and appends its cubic
// approximation, converting the SVG endpoint parameterization to a center
// parameterization first.
func (p *pathParser) arc(rel bool) error {
	rx, err := p.number()
	if err != nil {
		return err
	}
	ry, err := p.number()
	if err != nil {
		return err
	}
	xrotDeg, err := p.number()
	if err != nil {
		return err
	}
	largeArc, err := p.flag()
	if err != nil {
		return err
	}
	sweepFlag, err := p.flag()
	if err != nil {
		return err
	}
	end, err := p.point(rel)
	if err != nil {
		return err
	}

	if rx == 0 || ry == 0 || end == p.current {
		p.emit(geom.LineTo(end), end)
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	xrot := xrotDeg * math.Pi / 180

	arc, ok := arcFromEndpoints(p.current, end, rx, ry, xrot, largeArc, sweepFlag)
	if !ok {
		p.emit(geom.LineTo(end), end)
		return nil
	}
	for _, c := range arc.Cubics() {
		p.elements = append(p.elements, geom.CubicTo(c.P1, c.P2, c.P3))
	}
	p.current = end
	return nil
}

// arcFromEndpoints implements the SVG endpoint-to-center arc conversion,
// including the out-of-range radius correction.
func arcFromEndpoints(from, to geom.Point, rx, ry, xrot float64, largeArc, sweep bool) (geom.Arc, bool) {
	sin, cos := math.Sincos(xrot)
	half := from.Sub(to).Mul(0.5)
	// Midpoint delta in the ellipse's axis-aligned frame.
	x1 := cos*half.X + sin*half.Y
	y1 := -sin*half.X + cos*half.Y

	// Scale radii up when the endpoints cannot be bridged.
	lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	if den == 0 {
		return geom.Arc{}, false
	}
	co := math.Sqrt(math.Max(0, num/den))
	if largeArc == sweep {
		co = -co
	}
	cx1 := co * rx * y1 / ry
	cy1 := -co * ry * x1 / rx

	mid := from.Midpoint(to)
	center := geom.Pt(
		mid.X+cos*cx1-sin*cy1,
		mid.Y+sin*cx1+cos*cy1,
	)

	angleOf := func(x, y float64) float64 {
		return math.Atan2(y/ry, x/rx)
	}
	theta1 := angleOf(x1-cx1, y1-cy1)
	theta2 := angleOf(-x1-cx1, -y1-cy1)
	delta := theta2 - theta1
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	return geom.Arc{
		Center:     center,
		Radii:      geom.Vec(rx, ry),
		XRotation:  xrot,
		StartAngle: theta1,
		SweepAngle: delta,
	}, true
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func (p *pathParser) skipSep() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r', ',':
			p.pos++
		default:
			return
		}
	}
}

func (p *pathParser) number() (float64, error) {
	p.skipSep()
	v, n := tdestrconv.ParseFloat(p.data[p.pos:])
	if n == 0 {
		return 0, fmt.Errorf("vgio: expected number at offset %d in path data", p.pos)
	}
	p.pos += n
	return v, nil
}

// flag reads a single arc flag digit. Flags may be packed against the
// following number without a separator, so only one byte is consumed.
func (p *pathParser) flag() (bool, error) {
	p.skipSep()
	if p.pos >= len(p.data) {
		return false, fmt.Errorf("vgio: expected arc flag at end of path data")
	}
	switch p.data[p.pos] {
	case '0':
		p.pos++
		return false, nil
	case '1':
		p.pos++
		return true, nil
	}
	return false, fmt.Errorf("vgio: expected arc flag at offset %d in path data", p.pos)
}

func (p *pathParser) point(rel bool) (geom.Point, error) {
	x, err := p.number()
	if err != nil {
		return geom.Point{}, err
	}
	y, err := p.number()
	if err != nil {
		return geom.Point{}, err
	}
	pt := geom.Pt(x, y)
	if rel {
		pt = p.current.Translate(geom.Vec2(pt))
	}
	return pt, nil
}
