package vgio

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	tdestrconv "github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/colornames"

	"github.com/vecsketch/vecsketch/geom"
	"github.com/vecsketch/vecsketch/shape"
)

// ReadSVG scans an SVG document into a scene graph ready for [Reconstruct].
// Supported elements are svg, g, path, line, rect, circle, ellipse, polyline
// and polygon; anything else is skipped with a log record. The root node
// carries a Y flip so the result lands in the package's y-up space.
func ReadSVG(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	root := NewNode()
	root.Transform = geom.FlipY
	stack := []*Node{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("vgio: decode svg token: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			top := stack[len(stack)-1]
			switch t.Name.Local {
			case "svg", "g":
				child := groupNode(top, t.Attr)
				top.Children = append(top.Children, child)
				stack = append(stack, child)
			case "path", "line", "rect", "circle", "ellipse", "polyline", "polygon":
				child, err := elementNode(top, t.Name.Local, t.Attr)
				if err != nil {
					Logger().Warn("vgio: skipping svg element", "element", t.Name.Local, "err", err)
				} else if child != nil {
					top.Children = append(top.Children, child)
				}
			case "defs", "metadata", "title", "desc", "style":
				// Non-geometry subtrees are skipped wholesale.
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("vgio: skip <%s>: %w", t.Name.Local, err)
				}
			default:
				Logger().Debug("vgio: ignoring svg element", "element", t.Name.Local)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "svg", "g":
				if len(stack) > 1 {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}
	return root, nil
}

// groupNode builds a child node inheriting the parent's style, with the
// group's transform and style attributes applied on top.
func groupNode(parent *Node, attrs []xml.Attr) *Node {
	n := &Node{Transform: geom.Identity, Style: parent.Style}
	for _, a := range attrs {
		applyStyleAttr(&n.Style, a.Name.Local, a.Value)
		if a.Name.Local == "transform" {
			n.Transform = parseTransform(a.Value)
		}
	}
	return n
}

func elementNode(parent *Node, name string, attrs []xml.Attr) (*Node, error) {
	n := groupNode(parent, attrs)
	attr := func(key string) string {
		for _, a := range attrs {
			if a.Name.Local == key {
				return a.Value
			}
		}
		return ""
	}
	num := func(key string) float64 {
		v, _ := parseNumber(attr(key))
		return v
	}

	var elements []geom.PathElement
	switch name {
	case "path":
		d := strings.TrimSpace(attr("d"))
		if d == "" {
			return nil, nil
		}
		var err error
		elements, err = ParsePathData(d)
		if err != nil {
			return nil, err
		}
	case "line":
		elements = []geom.PathElement{
			geom.MoveTo(geom.Pt(num("x1"), num("y1"))),
			geom.LineTo(geom.Pt(num("x2"), num("y2"))),
		}
	case "rect":
		x, y, w, h := num("x"), num("y"), num("width"), num("height")
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("vgio: rect %gx%g", w, h)
		}
		elements = []geom.PathElement{
			geom.MoveTo(geom.Pt(x, y)),
			geom.LineTo(geom.Pt(x+w, y)),
			geom.LineTo(geom.Pt(x+w, y+h)),
			geom.LineTo(geom.Pt(x, y+h)),
			geom.ClosePath(),
		}
	case "circle", "ellipse":
		cx, cy := num("cx"), num("cy")
		var rx, ry float64
		if name == "circle" {
			rx = num("r")
			ry = rx
		} else {
			rx, ry = num("rx"), num("ry")
		}
		if rx <= 0 || ry <= 0 {
			return nil, fmt.Errorf("vgio: %s with radius %g,%g", name, rx, ry)
		}
		arc := geom.Arc{
			Center:     geom.Pt(cx, cy),
			Radii:      geom.Vec(rx, ry),
			SweepAngle: 2 * math.Pi,
		}
		elements = arcElements(arc, true)
	case "polyline", "polygon":
		pts, err := parsePointList(attr("points"))
		if err != nil {
			return nil, err
		}
		if len(pts) < 2 {
			return nil, fmt.Errorf("vgio: %s with %d points", name, len(pts))
		}
		elements = append(elements, geom.MoveTo(pts[0]))
		for _, pt := range pts[1:] {
			elements = append(elements, geom.LineTo(pt))
		}
		if name == "polygon" {
			elements = append(elements, geom.ClosePath())
		}
	}
	n.Contours = geom.Contours(elements)
	if len(n.Contours) == 0 {
		return nil, nil
	}
	return n, nil
}

// arcElements renders an arc as a MoveTo plus its cubic segments.
func arcElements(arc geom.Arc, closed bool) []geom.PathElement {
	cubics := arc.Cubics()
	if len(cubics) == 0 {
		return nil
	}
	out := make([]geom.PathElement, 0, len(cubics)+2)
	out = append(out, geom.MoveTo(cubics[0].P0))
	for _, c := range cubics {
		out = append(out, geom.CubicTo(c.P1, c.P2, c.P3))
	}
	if closed {
		out = append(out, geom.ClosePath())
	}
	return out
}

// applyStyleAttr folds one presentation attribute into the style. The style
// attribute's declaration list is handled recursively.
func applyStyleAttr(st *shape.Style, key, value string) {
	value = strings.TrimSpace(value)
	switch key {
	case "stroke":
		if c, ok := parseColor(value); ok {
			st.StrokeColor = c
		}
	case "fill":
		if value == "none" {
			st.Fill = false
			return
		}
		if c, ok := parseColor(value); ok {
			st.FillColor = c
			st.Fill = true
		}
	case "stroke-width":
		if w, ok := parseNumber(value); ok && w > 0 {
			st.PenWidth = w
		}
	case "style":
		for _, decl := range strings.Split(value, ";") {
			k, v, found := strings.Cut(decl, ":")
			if found {
				applyStyleAttr(st, strings.TrimSpace(k), v)
			}
		}
	}
}

// parseColor understands #rgb, #rrggbb and the SVG color keywords.
func parseColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" {
		return color.RGBA{}, false
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	return color.RGBA{}, false
}

func parseHexColor(s string) (color.RGBA, bool) {
	hex := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		}
		return 0, false
	}
	switch len(s) {
	case 3:
		var c [3]uint8
		for i := 0; i < 3; i++ {
			v, ok := hex(s[i])
			if !ok {
				return color.RGBA{}, false
			}
			c[i] = v*16 + v
		}
		return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}, true
	case 6:
		var c [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hex(s[2*i])
			lo, ok2 := hex(s[2*i+1])
			if !ok1 || !ok2 {
				return color.RGBA{}, false
			}
			c[i] = hi*16 + lo
		}
		return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}, true
	}
	return color.RGBA{}, false
}

// parseNumber reads one float from the head of s, tolerating trailing units.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, n := tdestrconv.ParseFloat([]byte(s))
	if n == 0 {
		return 0, false
	}
	return v, true
}

// parseTransform evaluates an SVG transform list left to right. Supported
// functions are matrix, translate, scale and rotate; unknown functions are
// skipped with a log record.
func parseTransform(s string) geom.Affine {
	aff := geom.Identity
	for {
		s = strings.TrimLeft(s, " \t\n,")
		if s == "" {
			break
		}
		open := strings.IndexByte(s, '(')
		closing := strings.IndexByte(s, ')')
		if open < 0 || closing < open {
			Logger().Warn("vgio: malformed transform attribute", "rest", s)
			break
		}
		name := strings.TrimSpace(s[:open])
		args := transformArgs(s[open+1 : closing])
		s = s[closing+1:]

		arg := func(i int, def float64) float64 {
			if i < len(args) {
				return args[i]
			}
			return def
		}
		switch name {
		case "matrix":
			if len(args) != 6 {
				Logger().Warn("vgio: matrix with wrong arity", "args", len(args))
				continue
			}
			aff = aff.Mul(geom.NewAffine([6]float64(args)))
		case "translate":
			aff = aff.Mul(geom.Translate(geom.Vec(arg(0, 0), arg(1, 0))))
		case "scale":
			sx := arg(0, 1)
			aff = aff.Mul(geom.Scale(sx, arg(1, sx)))
		case "rotate":
			th := arg(0, 0) * math.Pi / 180
			if len(args) >= 3 {
				aff = aff.Mul(geom.RotateAbout(th, geom.Pt(args[1], args[2])))
			} else {
				aff = aff.Mul(geom.Rotate(th))
			}
		default:
			Logger().Warn("vgio: ignoring transform function", "name", name)
		}
	}
	return aff
}

func transformArgs(s string) []float64 {
	var out []float64
	b := []byte(s)
	for {
		i := 0
		for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\t' || b[i] == '\n') {
			i++
		}
		b = b[i:]
		if len(b) == 0 {
			break
		}
		v, n := tdestrconv.ParseFloat(b)
		if n == 0 {
			break
		}
		out = append(out, v)
		b = b[n:]
	}
	return out
}

// parsePointList reads the points attribute of polyline and polygon.
func parsePointList(s string) ([]geom.Point, error) {
	args := transformArgs(s)
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("vgio: odd coordinate count %d in points", len(args))
	}
	pts := make([]geom.Point, len(args)/2)
	for i := range pts {
		pts[i] = geom.Pt(args[2*i], args[2*i+1])
	}
	return pts, nil
}
