// Package svg renders documents to Scalable Vector Graphics.
//
// The drawing's +Y-up coordinate system is mapped onto SVG's +Y-down
// canvas, so the output looks identical to the model. Entities are
// grouped per layer in z-order, and output is deterministic for a given
// document.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/draft2d/draft"
)

// Encode writes the document as an SVG image sized to the drawing
// extents plus padding. Invisible layers and entities are omitted.
func Encode(w io.Writer, doc *draft.Document, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	all := make([]draft.Entity, 0, len(doc.Entities))
	for _, ent := range doc.Entities {
		all = append(all, ent)
	}
	extents := draft.BoundsOfAll(all)

	e := &encoder{
		b:       &strings.Builder{},
		opts:    o,
		extents: extents,
	}
	e.document(doc)
	_, err := io.WriteString(w, e.b.String())
	return err
}

// Marshal renders the document into memory.
func Marshal(doc *draft.Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder struct {
	b       *strings.Builder
	opts    Options
	extents draft.Bounds
}

// x and y map model coordinates onto the canvas; the y axis flips so the
// model's +Y-up convention renders upright.
func (e *encoder) x(v float64) float64 { return v - e.extents.MinX + e.opts.Padding }
func (e *encoder) y(v float64) float64 { return e.extents.MaxY - v + e.opts.Padding }

func (e *encoder) num(v float64) string {
	s := strconv.FormatFloat(v, 'f', e.opts.Precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

func (e *encoder) document(doc *draft.Document) {
	width := e.extents.Width() + 2*e.opts.Padding
	height := e.extents.Height() + 2*e.opts.Padding

	fmt.Fprintf(e.b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		e.num(width), e.num(height), e.num(width), e.num(height))
	e.b.WriteByte('\n')

	if e.opts.Grid > 0 {
		e.grid(width, height)
	}

	layers := append([]draft.Layer(nil), doc.Layers...)
	sort.Slice(layers, func(i, j int) bool { return layers[i].Order < layers[j].Order })

	byLayer := make(map[string][]draft.Entity)
	for _, ent := range doc.Entities {
		b := ent.Base()
		if !b.Visible {
			continue
		}
		byLayer[b.Layer] = append(byLayer[b.Layer], ent)
	}

	for _, l := range layers {
		if !l.Visible {
			continue
		}
		group := byLayer[l.Name]
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Base().ID < group[j].Base().ID })

		fmt.Fprintf(e.b, "<g id=\"layer-%s\">\n", escape(l.Name))
		for _, ent := range group {
			e.entity(ent)
		}
		e.b.WriteString("</g>\n")
	}

	e.b.WriteString("</svg>\n")
}

// grid draws light reference lines across the canvas at multiples of the
// configured spacing, aligned to model coordinates.
func (e *encoder) grid(width, height float64) {
	e.b.WriteString("<g id=\"grid\" stroke=\"#DDDDDD\" stroke-width=\"0.5\">\n")

	for x := math.Ceil((e.extents.MinX-e.opts.Padding)/e.opts.Grid) * e.opts.Grid; e.x(x) <= width; x += e.opts.Grid {
		fmt.Fprintf(e.b, "<line x1=\"%s\" y1=\"0\" x2=\"%s\" y2=\"%s\"/>\n",
			e.num(e.x(x)), e.num(e.x(x)), e.num(height))
	}
	for y := math.Ceil((e.extents.MinY-e.opts.Padding)/e.opts.Grid) * e.opts.Grid; e.y(y) >= 0; y += e.opts.Grid {
		fmt.Fprintf(e.b, "<line x1=\"0\" y1=\"%s\" x2=\"%s\" y2=\"%s\"/>\n",
			e.num(e.y(y)), e.num(width), e.num(e.y(y)))
	}

	e.b.WriteString("</g>\n")
}

// stroke renders the shared stroke and fill presentation attributes in a
// fixed order.
func (e *encoder) stroke(s draft.Style, filled bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, ` stroke="%s" stroke-width="%s"`, escape(s.StrokeColor), e.num(s.StrokeWidth))
	if dashes := s.Pattern.DashArray(); dashes != nil {
		parts := make([]string, len(dashes))
		for i, d := range dashes {
			parts[i] = e.num(d * s.StrokeWidth)
		}
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	if filled && s.FillColor != "" {
		fmt.Fprintf(&b, ` fill="%s"`, escape(s.FillColor))
		// A zero opacity is an unset field, not a transparent fill.
		if s.FillOpacity > 0 && s.FillOpacity < 1 {
			fmt.Fprintf(&b, ` fill-opacity="%s"`, e.num(s.FillOpacity))
		}
	} else {
		b.WriteString(` fill="none"`)
	}
	return b.String()
}

func (e *encoder) entity(ent draft.Entity) {
	s := ent.Base().Style
	switch v := ent.(type) {
	case *draft.Line:
		fmt.Fprintf(e.b, "<line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\"%s/>\n",
			e.num(e.x(v.Start.X)), e.num(e.y(v.Start.Y)),
			e.num(e.x(v.End.X)), e.num(e.y(v.End.Y)), e.stroke(s, false))

	case *draft.Circle:
		fmt.Fprintf(e.b, "<circle cx=\"%s\" cy=\"%s\" r=\"%s\"%s/>\n",
			e.num(e.x(v.Center.X)), e.num(e.y(v.Center.Y)), e.num(v.Radius), e.stroke(s, true))

	case *draft.Arc:
		e.arc(v, s)

	case *draft.Rectangle:
		attrs := e.stroke(s, true)
		if v.Rotation != 0 {
			center := draft.Pt(v.Position.X+v.Width/2, v.Position.Y+v.Height/2)
			attrs += fmt.Sprintf(` transform="rotate(%s %s %s)"`,
				e.num(-v.Rotation), e.num(e.x(center.X)), e.num(e.y(center.Y)))
		}
		fmt.Fprintf(e.b, "<rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"%s/>\n",
			e.num(e.x(v.Position.X)), e.num(e.y(v.Position.Y+v.Height)),
			e.num(v.Width), e.num(v.Height), attrs)

	case *draft.Ellipse:
		attrs := e.stroke(s, true)
		if v.Rotation != 0 {
			attrs += fmt.Sprintf(` transform="rotate(%s %s %s)"`,
				e.num(-v.Rotation), e.num(e.x(v.Center.X)), e.num(e.y(v.Center.Y)))
		}
		fmt.Fprintf(e.b, "<ellipse cx=\"%s\" cy=\"%s\" rx=\"%s\" ry=\"%s\"%s/>\n",
			e.num(e.x(v.Center.X)), e.num(e.y(v.Center.Y)),
			e.num(v.RadiusX), e.num(v.RadiusY), attrs)

	case *draft.Polyline:
		e.polyline(v.Points, v.Closed, s)

	case *draft.TextAnnotation:
		e.text(v.Position, v.Text, v.Rotation, s)

	case *draft.LeaderAnnotation:
		e.b.WriteString("<g class=\"leader\">\n")
		pts := append([]draft.Point{v.Start}, v.Points...)
		e.polyline(pts, false, s)
		e.text(v.TextPosition, v.Text, 0, s)
		e.b.WriteString("</g>\n")

	case *draft.LinearDimension:
		e.linearDimension(v, s)

	case *draft.AngularDimension:
		e.angularDimension(v, s)

	case *draft.RadialDimension:
		e.radialDimension(v, s)
	}
}

func (e *encoder) polyline(pts []draft.Point, closed bool, s draft.Style) {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = e.num(e.x(p.X)) + "," + e.num(e.y(p.Y))
	}
	element := "polyline"
	if closed {
		element = "polygon"
	}
	fmt.Fprintf(e.b, "<%s points=\"%s\"%s/>\n", element, strings.Join(parts, " "), e.stroke(s, closed))
}

// arc renders a circular arc as an SVG path. A sweep of zero is a full
// circle. The model's counter-clockwise direction maps to SVG sweep
// flag 0 on the flipped canvas.
func (e *encoder) arc(a *draft.Arc, s draft.Style) {
	sweep := a.Sweep()
	if sweep == 0 {
		fmt.Fprintf(e.b, "<circle cx=\"%s\" cy=\"%s\" r=\"%s\"%s/>\n",
			e.num(e.x(a.Center.X)), e.num(e.y(a.Center.Y)), e.num(a.Radius), e.stroke(s, false))
		return
	}

	start, end := a.PointAt(a.StartAngle), a.PointAt(a.EndAngle)
	largeArc := 0
	if sweep > 180 {
		largeArc = 1
	}
	sweepFlag := 1
	if a.CCW {
		sweepFlag = 0
	}
	fmt.Fprintf(e.b, "<path d=\"M %s %s A %s %s 0 %d %d %s %s\"%s/>\n",
		e.num(e.x(start.X)), e.num(e.y(start.Y)),
		e.num(a.Radius), e.num(a.Radius), largeArc, sweepFlag,
		e.num(e.x(end.X)), e.num(e.y(end.Y)), e.stroke(s, false))
}

func (e *encoder) text(pos draft.Point, text string, rotation float64, s draft.Style) {
	size := s.FontSize
	if size <= 0 {
		size = draft.DefaultStyle().FontSize
	}
	family := s.FontFamily
	if family == "" {
		family = draft.DefaultStyle().FontFamily
	}

	anchor := ""
	switch s.Align {
	case draft.AlignCenter:
		anchor = ` text-anchor="middle"`
	case draft.AlignRight:
		anchor = ` text-anchor="end"`
	}

	transform := ""
	if rotation != 0 {
		transform = fmt.Sprintf(` transform="rotate(%s %s %s)"`,
			e.num(-rotation), e.num(e.x(pos.X)), e.num(e.y(pos.Y)))
	}

	fmt.Fprintf(e.b, "<text x=\"%s\" y=\"%s\" font-size=\"%s\" font-family=\"%s\" fill=\"%s\"%s%s>%s</text>\n",
		e.num(e.x(pos.X)), e.num(e.y(pos.Y)), e.num(size), escape(family),
		escape(s.StrokeColor), anchor, transform, escape(text))
}

// linearDimension draws the two extension lines, the offset dimension
// line, and the measurement label at its midpoint.
func (e *encoder) linearDimension(d *draft.LinearDimension, s draft.Style) {
	dir := d.End.Sub(d.Start)
	length := dir.Length()
	if length == 0 {
		return
	}
	normal := draft.Pt(-dir.Y/length, dir.X/length).Mul(d.Offset)
	a, b := d.Start.Add(normal), d.End.Add(normal)

	label := d.Text
	if label == "" {
		label = strconv.FormatFloat(length, 'f', 2, 64)
	}

	e.b.WriteString("<g class=\"dimension\">\n")
	e.segment(d.Start, a, s)
	e.segment(d.End, b, s)
	e.segment(a, b, s)
	e.text(a.Lerp(b, 0.5), label, 0, centered(s))
	e.b.WriteString("</g>\n")
}

// angularDimension draws the two rays and the measurement arc between
// them.
func (e *encoder) angularDimension(d *draft.AngularDimension, s draft.Style) {
	startAngle := draft.Degrees(d.Vertex.AngleTo(d.Start))
	endAngle := draft.Degrees(d.Vertex.AngleTo(d.End))
	sweep := math.Mod(endAngle-startAngle, 360)
	if sweep < 0 {
		sweep += 360
	}

	arc := &draft.Arc{
		EntityBase: draft.NewBase(),
		Center:     d.Vertex,
		Radius:     d.Radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		CCW:        true,
	}

	label := d.Text
	if label == "" {
		label = strconv.FormatFloat(sweep, 'f', 1, 64) + "°"
	}

	e.b.WriteString("<g class=\"dimension\">\n")
	e.segment(d.Vertex, d.Start, s)
	e.segment(d.Vertex, d.End, s)
	e.arc(arc, s)
	e.text(arc.PointAt(startAngle+sweep/2), label, 0, centered(s))
	e.b.WriteString("</g>\n")
}

// radialDimension draws a line from the center to the rim with an
// R-prefixed label at its midpoint.
func (e *encoder) radialDimension(d *draft.RadialDimension, s draft.Style) {
	label := d.Text
	if label == "" {
		label = "R" + strconv.FormatFloat(d.Center.Distance(d.PointOnCircle), 'f', 2, 64)
	}

	e.b.WriteString("<g class=\"dimension\">\n")
	e.segment(d.Center, d.PointOnCircle, s)
	e.text(d.Center.Lerp(d.PointOnCircle, 0.5), label, 0, centered(s))
	e.b.WriteString("</g>\n")
}

func (e *encoder) segment(a, b draft.Point, s draft.Style) {
	fmt.Fprintf(e.b, "<line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\"%s/>\n",
		e.num(e.x(a.X)), e.num(e.y(a.Y)),
		e.num(e.x(b.X)), e.num(e.y(b.Y)), e.stroke(s, false))
}

// centered copies a style with its text alignment forced to center,
// which is how dimension labels sit on their lines.
func centered(s draft.Style) draft.Style {
	s.Align = draft.AlignCenter
	return s
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
