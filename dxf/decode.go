package dxf

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/draft2d/draft"
	"github.com/draft2d/draft/internal/logging"
)

// Result reports the outcome of a decode: the converted entities and
// layers plus everything that went wrong along the way. Errors and
// warnings are accumulated, never raised mid-import, so one bad entity
// cannot abort an otherwise valid file.
type Result struct {
	Entities map[string]draft.Entity
	Layers   []draft.Layer

	Errors   []string
	Warnings []string

	// Imported and Skipped count converted entities and entities dropped
	// by warnings or layer filters.
	Imported int
	Skipped  int

	Elapsed time.Duration
}

// Success reports whether the import produced no errors. Warnings do not
// fail an import.
func (r *Result) Success() bool {
	return len(r.Errors) == 0
}

// Decode parses a DXF stream into the entity model. The parse is two
// passes: the stream is first split into group-code/value tags, then the
// tags are walked tracking SECTION and TABLE context. The HEADER section
// is skipped and BLOCKS are ignored; TABLES contributes layers and line
// types, ENTITIES contributes geometry.
//
// Decode checks ctx periodically so large imports can be cancelled; the
// returned error is non-nil only on cancellation. All parse problems are
// collected in the Result instead.
func Decode(ctx context.Context, r io.Reader, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	d := &decoder{
		opts:      o,
		res:       &Result{Entities: make(map[string]draft.Entity)},
		layers:    make(map[string]draft.Layer),
		linetypes: make(map[string]draft.StrokePattern),
	}

	var tags []Tag
	sc := NewScanner(r)
	for sc.Next() {
		t := sc.Tag()
		if err := checkValue(t); err != nil {
			d.errorf("%v", err)
			continue
		}
		tags = append(tags, t)
		if len(tags)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		d.errorf("%v", err)
	}

	if err := d.walk(ctx, tags); err != nil {
		return nil, err
	}

	d.finishLayers()
	d.res.Elapsed = time.Since(start)
	return d.res, nil
}

type decoder struct {
	opts Options
	res  *Result

	layers     map[string]draft.Layer
	layerOrder []string
	linetypes  map[string]draft.StrokePattern
}

// walk is the second pass: it tracks SECTION/TABLE context and gathers
// runs of tags between 0 codes into records, dispatching each record by
// context.
func (d *decoder) walk(ctx context.Context, tags []Tag) error {
	var (
		section, table string
		recKind        string
		rec            []Tag
		poly           []Tag
		polyOpen       bool
	)

	endRecord := func() {
		if recKind == "" {
			return
		}
		switch {
		case section == "ENTITIES":
			switch recKind {
			case "POLYLINE":
				// Legacy polylines carry their vertices as follow-up
				// VERTEX records terminated by SEQEND. The header's own
				// 10/20 point is a placeholder, not a vertex.
				polyOpen = true
				poly = nil
				for _, t := range rec {
					if t.Code != 10 && t.Code != 20 {
						poly = append(poly, t)
					}
				}
			case "VERTEX":
				if polyOpen {
					// Only the coordinates; vertex flags must not reach
					// the polyline's 70 field.
					for _, t := range rec {
						if t.Code == 10 || t.Code == 20 {
							poly = append(poly, t)
						}
					}
				} else {
					d.warnf("VERTEX outside POLYLINE")
				}
			case "SEQEND":
				if polyOpen {
					d.convert("POLYLINE", poly)
					polyOpen, poly = false, nil
				}
			default:
				d.convert(recKind, rec)
			}

		case section == "TABLES" && table == "LAYER" && recKind == "LAYER":
			d.layerRecord(rec)

		case section == "TABLES" && table == "LTYPE" && recKind == "LTYPE":
			d.ltypeRecord(rec)

			// STYLE table records carry text-style data the entity model
			// does not consume; HEADER and BLOCKS content is skipped.
		}
		recKind, rec = "", nil
	}

	for i := 0; i < len(tags); i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		t := tags[i]
		if t.Code != 0 {
			if recKind != "" {
				rec = append(rec, t)
			}
			continue
		}

		switch v := t.Text(); v {
		case "SECTION":
			endRecord()
			if i+1 < len(tags) && tags[i+1].Code == 2 {
				section = tags[i+1].Text()
				i++
			} else {
				d.errorf("line %d: SECTION without a name", t.Line)
			}

		case "ENDSEC":
			endRecord()
			if polyOpen {
				d.warnf("POLYLINE without SEQEND")
				d.convert("POLYLINE", poly)
				polyOpen, poly = false, nil
			}
			section, table = "", ""

		case "TABLE":
			endRecord()
			if i+1 < len(tags) && tags[i+1].Code == 2 {
				table = tags[i+1].Text()
				i++
			}

		case "ENDTAB":
			endRecord()
			table = ""

		case "EOF":
			endRecord()
			if section != "" {
				d.errorf("unterminated section %q", section)
			}
			return nil

		default:
			endRecord()
			if section == "ENTITIES" || (section == "TABLES" && table != "") {
				recKind = v
			}
		}
	}

	endRecord()
	if section != "" {
		d.errorf("unterminated section %q", section)
	}
	return nil
}

// point applies the configured scale and offset to a raw coordinate pair.
func (d *decoder) point(x, y float64) draft.Point {
	return draft.Point{
		X: x*d.opts.Scale + d.opts.Offset.X,
		Y: y*d.opts.Scale + d.opts.Offset.Y,
	}
}

// base extracts the attributes common to every entity record: layer name,
// ACI color, and line type.
func (d *decoder) base(rec []Tag) (layer string, style draft.Style) {
	layer = draft.DefaultLayerName
	style = draft.DefaultStyle()
	for _, t := range rec {
		switch t.Code {
		case 8:
			if name := t.Text(); name != "" {
				layer = name
			}
		case 62:
			style.StrokeColor = ColorFromACI(t.Int()).Hex()
		case 6:
			style.Pattern = patternFromLinetype(t.Text())
		}
	}
	return layer, style
}

// skipByLayer applies the layer import filters.
func (d *decoder) skipByLayer(layer string) bool {
	l, ok := d.layers[layer]
	if !ok {
		return false
	}
	if d.opts.SkipInvisibleLayers && !l.Visible {
		return true
	}
	if d.opts.SkipLockedLayers && l.Locked {
		return true
	}
	return false
}

// add finalizes a converted entity.
func (d *decoder) add(e draft.Entity, layer string, style draft.Style) {
	b := e.Base()
	b.Layer = layer
	b.Style.StrokeColor = style.StrokeColor
	b.Style.Pattern = style.Pattern
	d.res.Entities[b.ID] = e
	d.res.Imported++
}

// convert dispatches one raw entity record by type. Unrecognized types
// are warnings, not errors: the entity is skipped and the import
// continues.
func (d *decoder) convert(kind string, rec []Tag) {
	layer, style := d.base(rec)
	if d.skipByLayer(layer) {
		d.res.Skipped++
		logging.Logger().Debug("entity skipped by layer filter",
			"type", kind, "layer", layer)
		return
	}

	switch kind {
	case "LINE":
		var x1, y1, x2, y2 float64
		for _, t := range rec {
			switch t.Code {
			case 10:
				x1 = t.Float()
			case 20:
				y1 = t.Float()
			case 11:
				x2 = t.Float()
			case 21:
				y2 = t.Float()
			}
		}
		d.add(draft.NewLine(d.point(x1, y1), d.point(x2, y2)), layer, style)

	case "CIRCLE":
		var x, y, radius float64
		for _, t := range rec {
			switch t.Code {
			case 10:
				x = t.Float()
			case 20:
				y = t.Float()
			case 40:
				radius = t.Float()
			}
		}
		d.add(draft.NewCircle(d.point(x, y), radius*d.opts.Scale), layer, style)

	case "ARC":
		var x, y, radius, startAngle, endAngle float64
		for _, t := range rec {
			switch t.Code {
			case 10:
				x = t.Float()
			case 20:
				y = t.Float()
			case 40:
				radius = t.Float()
			case 50:
				startAngle = t.Float()
			case 51:
				endAngle = t.Float()
			}
		}
		d.add(draft.NewArc(d.point(x, y), radius*d.opts.Scale, startAngle, endAngle), layer, style)

	case "LWPOLYLINE", "POLYLINE":
		var pts []draft.Point
		var x float64
		closed := false
		for _, t := range rec {
			switch t.Code {
			case 10:
				x = t.Float()
			case 20:
				pts = append(pts, d.point(x, t.Float()))
			case 70:
				closed = t.Int()&1 != 0
			}
		}
		p := draft.NewPolyline(pts)
		p.Closed = closed
		d.add(p, layer, style)

	case "ELLIPSE":
		var cx, cy, mx, my float64
		ratio := 1.0
		for _, t := range rec {
			switch t.Code {
			case 10:
				cx = t.Float()
			case 20:
				cy = t.Float()
			case 11:
				mx = t.Float()
			case 21:
				my = t.Float()
			case 40:
				ratio = t.Float()
			}
		}
		rx := math.Hypot(mx, my) * d.opts.Scale
		e := draft.NewEllipse(d.point(cx, cy), rx, rx*ratio)
		e.Rotation = draft.Degrees(math.Atan2(my, mx))
		d.add(e, layer, style)

	case "TEXT", "MTEXT":
		var x, y, height, rotation float64
		var text strings.Builder
		align := draft.AlignLeft
		for _, t := range rec {
			switch t.Code {
			case 10:
				x = t.Float()
			case 20:
				y = t.Float()
			case 40:
				height = t.Float()
			case 50:
				rotation = t.Float()
			case 1, 3:
				text.WriteString(t.Text())
			case 72:
				switch t.Int() {
				case 1:
					align = draft.AlignCenter
				case 2:
					align = draft.AlignRight
				}
			}
		}
		e := draft.NewText(d.point(x, y), text.String())
		e.Rotation = rotation
		if height > 0 {
			e.Style.FontSize = height * d.opts.Scale
		}
		e.Style.Align = align
		d.add(e, layer, style)

	case "DIMENSION":
		d.convertDimension(rec, layer, style)

	default:
		d.res.Skipped++
		d.warnf("unsupported entity type %q", kind)
		logging.Logger().Debug("unsupported entity", "type", kind)
	}
}

// convertDimension maps the DIMENSION record by its type code (70, low
// bits): 0/1 linear, 2/5 angular, 4 radial. Other dimension types are
// warnings.
func (d *decoder) convertDimension(rec []Tag, layer string, style draft.Style) {
	var (
		dimType                      int
		x10, y10, x13, y13, x14, y14 float64
		x15, y15, radius             float64
		text                         string
	)
	for _, t := range rec {
		switch t.Code {
		case 70:
			dimType = t.Int() & 7
		case 1:
			text = t.Text()
		case 10:
			x10 = t.Float()
		case 20:
			y10 = t.Float()
		case 13:
			x13 = t.Float()
		case 23:
			y13 = t.Float()
		case 14:
			x14 = t.Float()
		case 24:
			y14 = t.Float()
		case 15:
			x15 = t.Float()
		case 25:
			y15 = t.Float()
		case 40:
			radius = t.Float()
		}
	}

	switch dimType {
	case 0, 1:
		e := &draft.LinearDimension{
			EntityBase: baseFor(layer, style),
			Start:      d.point(x13, y13),
			End:        d.point(x14, y14),
			Text:       text,
		}
		// The dimension-line point (10/20) encodes the offset as its
		// perpendicular distance from the measured segment.
		e.Offset = perpendicularDistance(d.point(x10, y10), e.Start, e.End)
		d.res.Entities[e.ID] = e
		d.res.Imported++

	case 2, 5:
		e := &draft.AngularDimension{
			EntityBase: baseFor(layer, style),
			Vertex:     d.point(x15, y15),
			Start:      d.point(x13, y13),
			End:        d.point(x14, y14),
			Radius:     radius * d.opts.Scale,
			Text:       text,
		}
		d.res.Entities[e.ID] = e
		d.res.Imported++

	case 4:
		e := &draft.RadialDimension{
			EntityBase:    baseFor(layer, style),
			Center:        d.point(x10, y10),
			PointOnCircle: d.point(x15, y15),
			Text:          text,
		}
		d.res.Entities[e.ID] = e
		d.res.Imported++

	default:
		d.res.Skipped++
		d.warnf("unsupported dimension type %d", dimType)
	}
}

// layerRecord converts one LAYER table entry. A negative color marks the
// layer invisible; bit 2 of the 70 flags marks it locked.
func (d *decoder) layerRecord(rec []Tag) {
	name := ""
	color := 7
	locked := false
	for _, t := range rec {
		switch t.Code {
		case 2:
			name = t.Text()
		case 62:
			color = t.Int()
		case 70:
			locked = t.Int()&4 != 0
		}
	}
	if name == "" {
		d.warnf("layer record without a name")
		return
	}

	l := draft.Layer{
		ID:      name,
		Name:    name,
		Color:   ColorFromACI(color).Hex(),
		Visible: color >= 0,
		Locked:  locked,
		Order:   len(d.layerOrder),
	}
	if _, exists := d.layers[name]; !exists {
		d.layerOrder = append(d.layerOrder, name)
	}
	d.layers[name] = l
}

// ltypeRecord registers a line-type name so entities can resolve their
// 6-code reference to a stroke pattern.
func (d *decoder) ltypeRecord(rec []Tag) {
	for _, t := range rec {
		if t.Code == 2 {
			name := t.Text()
			d.linetypes[name] = patternFromLinetype(name)
			return
		}
	}
}

// finishLayers orders the collected layers and guarantees the default
// layer exists.
func (d *decoder) finishLayers() {
	if _, ok := d.layers[draft.DefaultLayerName]; !ok {
		d.res.Layers = append(d.res.Layers, draft.DefaultLayer())
	}
	for _, name := range d.layerOrder {
		d.res.Layers = append(d.res.Layers, d.layers[name])
	}
	for i := range d.res.Layers {
		d.res.Layers[i].Order = i
	}
}

func (d *decoder) errorf(format string, args ...any) {
	d.res.Errors = append(d.res.Errors, fmt.Sprintf(format, args...))
}

func (d *decoder) warnf(format string, args ...any) {
	d.res.Warnings = append(d.res.Warnings, fmt.Sprintf(format, args...))
}

// checkValue validates a tag's value against its group-code range, so a
// malformed numeric is reported instead of silently coercing to zero.
// Group codes 10-59 carry floats; 60-79 and 170-179 carry integers.
func checkValue(t Tag) error {
	switch {
	case t.Code >= 10 && t.Code <= 59:
		if _, err := strconv.ParseFloat(strings.TrimSpace(t.Value), 64); err != nil {
			return fmt.Errorf("line %d: group code %d: bad float %q", t.Line, t.Code, t.Text())
		}
	case t.Code >= 60 && t.Code <= 79, t.Code >= 170 && t.Code <= 179:
		if _, err := strconv.Atoi(strings.TrimSpace(t.Value)); err != nil {
			return fmt.Errorf("line %d: group code %d: bad integer %q", t.Line, t.Code, t.Text())
		}
	}
	return nil
}

// baseFor builds entity attributes for conversions that construct entity
// structs directly.
func baseFor(layer string, style draft.Style) draft.EntityBase {
	b := draft.NewBase()
	b.Layer = layer
	b.Style.StrokeColor = style.StrokeColor
	b.Style.Pattern = style.Pattern
	return b
}

// perpendicularDistance is the distance from p to the infinite line
// through a and b; zero when the line is degenerate.
func perpendicularDistance(p, a, b draft.Point) float64 {
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		return 0
	}
	return math.Abs(d.Cross(p.Sub(a))) / length
}

// patternFromLinetype maps a DXF line-type name to a stroke pattern.
func patternFromLinetype(name string) draft.StrokePattern {
	switch strings.ToUpper(name) {
	case "DASHED":
		return draft.PatternDashed
	case "DOT", "DOTTED":
		return draft.PatternDotted
	case "DASHDOT":
		return draft.PatternDashDot
	case "HIDDEN":
		return draft.PatternHidden
	case "CENTER":
		return draft.PatternCenter
	default:
		return draft.PatternSolid
	}
}
