package dxf

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/draft2d/draft"
)

// linetypes written to the LTYPE table, in table order.
var linetypeNames = []struct {
	name    string
	pattern draft.StrokePattern
}{
	{"CONTINUOUS", draft.PatternSolid},
	{"DASHED", draft.PatternDashed},
	{"DOTTED", draft.PatternDotted},
	{"DASHDOT", draft.PatternDashDot},
	{"HIDDEN", draft.PatternHidden},
	{"CENTER", draft.PatternCenter},
}

// Encode writes the document as a minimal DXF stream: HEADER with the
// drawing extents, a TABLES section declaring line types and layers, an
// empty BLOCKS section, and the ENTITIES section. Coordinates are written
// as (p * Scale) + Offset with the configured precision.
//
// Output is deterministic: layers are written in z-order and entities are
// grouped by layer and sorted by identifier within each group.
func Encode(w io.Writer, doc *draft.Document, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &encoder{
		w:      bufio.NewWriter(w),
		opts:   o,
		handle: 0x100,
	}
	e.document(doc)
	return e.w.Flush()
}

// Marshal encodes the document into memory.
func Marshal(doc *draft.Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder struct {
	w      *bufio.Writer
	opts   Options
	handle int64
}

func (e *encoder) tag(code int, value string) {
	e.w.WriteString(strconv.Itoa(code))
	e.w.WriteByte('\n')
	e.w.WriteString(value)
	e.w.WriteByte('\n')
}

func (e *encoder) intTag(code, value int) {
	e.tag(code, strconv.Itoa(value))
}

func (e *encoder) floatTag(code int, value float64) {
	e.tag(code, strconv.FormatFloat(value, 'f', e.opts.Precision, 64))
}

func (e *encoder) pointTag(xCode, yCode int, p draft.Point) {
	out := e.point(p)
	e.floatTag(xCode, out.X)
	e.floatTag(yCode, out.Y)
}

// nextHandle allocates a monotonically increasing entity handle.
func (e *encoder) nextHandle() string {
	h := strconv.FormatInt(e.handle, 16)
	e.handle++
	return strings.ToUpper(h)
}

func (e *encoder) point(p draft.Point) draft.Point {
	return draft.Point{
		X: p.X*e.opts.Scale + e.opts.Offset.X,
		Y: p.Y*e.opts.Scale + e.opts.Offset.Y,
	}
}

func (e *encoder) length(v float64) float64 {
	return v * e.opts.Scale
}

func (e *encoder) document(doc *draft.Document) {
	e.header(doc)
	e.tables(doc)

	e.tag(0, "SECTION")
	e.tag(2, "BLOCKS")
	e.tag(0, "ENDSEC")

	e.entities(doc)
	e.tag(0, "EOF")
}

func (e *encoder) header(doc *draft.Document) {
	var extents draft.Bounds
	if e.opts.Extents != nil {
		extents = *e.opts.Extents
	} else {
		all := make([]draft.Entity, 0, len(doc.Entities))
		for _, ent := range doc.Entities {
			all = append(all, ent)
		}
		extents = draft.BoundsOfAll(all)
	}

	e.tag(0, "SECTION")
	e.tag(2, "HEADER")
	e.tag(9, "$ACADVER")
	e.tag(1, "AC1015")
	e.tag(9, "$INSUNITS")
	e.intTag(70, 4)
	e.tag(9, "$EXTMIN")
	e.pointTag(10, 20, draft.Pt(extents.MinX, extents.MinY))
	e.tag(9, "$EXTMAX")
	e.pointTag(10, 20, draft.Pt(extents.MaxX, extents.MaxY))
	e.tag(0, "ENDSEC")
}

func (e *encoder) tables(doc *draft.Document) {
	e.tag(0, "SECTION")
	e.tag(2, "TABLES")

	e.tag(0, "TABLE")
	e.tag(2, "LTYPE")
	e.intTag(70, len(linetypeNames))
	for _, lt := range linetypeNames {
		dashes := lt.pattern.DashArray()
		total := 0.0
		for _, d := range dashes {
			total += d
		}
		e.tag(0, "LTYPE")
		e.tag(2, lt.name)
		e.intTag(70, 0)
		e.tag(3, lt.pattern.String())
		e.intTag(72, 65)
		e.intTag(73, len(dashes))
		e.floatTag(40, total)
		for i, d := range dashes {
			// Gap elements are negative lengths in DXF.
			if i%2 == 1 {
				d = -d
			}
			e.floatTag(49, d)
		}
	}
	e.tag(0, "ENDTAB")

	layers := append([]draft.Layer(nil), doc.Layers...)
	sort.Slice(layers, func(i, j int) bool { return layers[i].Order < layers[j].Order })

	e.tag(0, "TABLE")
	e.tag(2, "LAYER")
	e.intTag(70, len(layers))
	for _, l := range layers {
		flags := 0
		if l.Locked {
			flags |= 4
		}
		aci := aciFromHex(l.Color)
		if !l.Visible {
			aci = -aci
		}
		e.tag(0, "LAYER")
		e.tag(2, l.Name)
		e.intTag(70, flags)
		e.intTag(62, aci)
		e.tag(6, "CONTINUOUS")
	}
	e.tag(0, "ENDTAB")

	e.tag(0, "ENDSEC")
}

// entities writes the ENTITIES section grouped by layer z-order.
func (e *encoder) entities(doc *draft.Document) {
	order := make(map[string]int, len(doc.Layers))
	for _, l := range doc.Layers {
		order[l.Name] = l.Order
	}

	all := make([]draft.Entity, 0, len(doc.Entities))
	for _, ent := range doc.Entities {
		all = append(all, ent)
	}
	sort.Slice(all, func(i, j int) bool {
		bi, bj := all[i].Base(), all[j].Base()
		if oi, oj := order[bi.Layer], order[bj.Layer]; oi != oj {
			return oi < oj
		}
		return bi.ID < bj.ID
	})

	e.tag(0, "SECTION")
	e.tag(2, "ENTITIES")
	for _, ent := range all {
		e.entity(ent)
	}
	e.tag(0, "ENDSEC")
}

// begin writes the record header shared by every entity: type, handle,
// layer, color, line type, and the invisibility flag.
func (e *encoder) begin(dxfType string, b *draft.EntityBase) {
	e.tag(0, dxfType)
	e.tag(5, e.nextHandle())
	e.tag(8, b.Layer)
	e.intTag(62, aciFromHex(b.Style.StrokeColor))
	e.tag(6, linetypeName(b.Style.Pattern))
	if !b.Visible {
		e.intTag(60, 1)
	}
}

func (e *encoder) entity(ent draft.Entity) {
	b := ent.Base()
	switch v := ent.(type) {
	case *draft.Line:
		e.begin("LINE", b)
		e.pointTag(10, 20, v.Start)
		e.pointTag(11, 21, v.End)

	case *draft.Circle:
		e.begin("CIRCLE", b)
		e.pointTag(10, 20, v.Center)
		e.floatTag(40, e.length(v.Radius))

	case *draft.Arc:
		// DXF arcs are always counter-clockwise; clockwise sweeps swap
		// their endpoints.
		start, end := v.StartAngle, v.EndAngle
		if !v.CCW {
			start, end = end, start
		}
		e.begin("ARC", b)
		e.pointTag(10, 20, v.Center)
		e.floatTag(40, e.length(v.Radius))
		e.floatTag(50, start)
		e.floatTag(51, end)

	case *draft.Rectangle:
		e.lwpolyline(b, v.Corners(), true)

	case *draft.Ellipse:
		rot := draft.Radians(v.Rotation)
		major := draft.Pt(e.length(v.RadiusX)*math.Cos(rot), e.length(v.RadiusX)*math.Sin(rot))
		ratio := 1.0
		if v.RadiusX != 0 {
			ratio = v.RadiusY / v.RadiusX
		}
		e.begin("ELLIPSE", b)
		e.pointTag(10, 20, v.Center)
		e.floatTag(11, major.X)
		e.floatTag(21, major.Y)
		e.floatTag(40, ratio)
		e.floatTag(41, 0)
		e.floatTag(42, 2*math.Pi)

	case *draft.Polyline:
		e.lwpolyline(b, v.Points, v.Closed)

	case *draft.TextAnnotation:
		e.text(b, v.Position, v.Text, v.Rotation, v.Style.FontSize, v.Style.Align)

	case *draft.LeaderAnnotation:
		pts := append([]draft.Point{v.Start}, v.Points...)
		e.lwpolyline(b, pts, false)
		e.text(b, v.TextPosition, v.Text, 0, v.Style.FontSize, v.Style.Align)

	case *draft.LinearDimension:
		e.begin("DIMENSION", b)
		e.intTag(70, 0)
		e.tag(1, v.Text)
		e.pointTag(13, 23, v.Start)
		e.pointTag(14, 24, v.End)
		e.pointTag(10, 20, dimensionLinePoint(v))

	case *draft.AngularDimension:
		e.begin("DIMENSION", b)
		e.intTag(70, 5)
		e.tag(1, v.Text)
		e.pointTag(15, 25, v.Vertex)
		e.pointTag(13, 23, v.Start)
		e.pointTag(14, 24, v.End)
		e.floatTag(40, e.length(v.Radius))

	case *draft.RadialDimension:
		e.begin("DIMENSION", b)
		e.intTag(70, 4)
		e.tag(1, v.Text)
		e.pointTag(10, 20, v.Center)
		e.pointTag(15, 25, v.PointOnCircle)
	}
}

func (e *encoder) lwpolyline(b *draft.EntityBase, pts []draft.Point, closed bool) {
	e.begin("LWPOLYLINE", b)
	e.intTag(90, len(pts))
	flags := 0
	if closed {
		flags |= 1
	}
	e.intTag(70, flags)
	for _, p := range pts {
		e.pointTag(10, 20, p)
	}
}

func (e *encoder) text(b *draft.EntityBase, pos draft.Point, text string, rotation, size float64, align draft.TextAlign) {
	e.begin("TEXT", b)
	e.pointTag(10, 20, pos)
	if size <= 0 {
		size = draft.DefaultStyle().FontSize
	}
	e.floatTag(40, e.length(size))
	e.tag(1, text)
	if rotation != 0 {
		e.floatTag(50, rotation)
	}
	switch align {
	case draft.AlignCenter:
		e.intTag(72, 1)
	case draft.AlignRight:
		e.intTag(72, 2)
	}
}

// dimensionLinePoint places the dimension line: the segment midpoint
// displaced by Offset along the left normal of start-to-end.
func dimensionLinePoint(d *draft.LinearDimension) draft.Point {
	mid := d.Start.Lerp(d.End, 0.5)
	dir := d.End.Sub(d.Start)
	length := dir.Length()
	if length == 0 {
		return draft.Pt(mid.X, mid.Y+d.Offset)
	}
	normal := draft.Pt(-dir.Y/length, dir.X/length)
	return mid.Add(normal.Mul(d.Offset))
}

// aciFromHex resolves a style color string to its ACI index, defaulting
// to 7 when the color does not parse.
func aciFromHex(color string) int {
	rgb, ok := draft.ParseColor(color)
	if !ok {
		return 7
	}
	return ACIFromColor(rgb)
}

func linetypeName(p draft.StrokePattern) string {
	for _, lt := range linetypeNames {
		if lt.pattern == p {
			return lt.name
		}
	}
	return "CONTINUOUS"
}
