package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/draft2d/draft"
)

func marshalDoc(t *testing.T, doc *draft.Document, opts ...Option) string {
	t.Helper()
	out, err := Marshal(doc, opts...)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(out, f) {
			t.Errorf("output is missing %q", f)
		}
	}
}

func TestEncodeLineDocument(t *testing.T) {
	doc := draft.NewDocument()
	doc.Add(draft.NewLine(draft.Pt(0, 0), draft.Pt(10, 20)))

	// Extents (0,0)-(10,20) plus the default padding of 10 per side.
	out := marshalDoc(t, doc)
	assertContains(t, out,
		`<svg xmlns="http://www.w3.org/2000/svg" width="30" height="40" viewBox="0 0 30 40">`,
		`<g id="layer-0">`,
		`<line x1="10" y1="30" x2="20" y2="10"`,
		` stroke="#000000" stroke-width="1"`,
		` fill="none"`,
	)
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("output does not close the svg element")
	}
}

func TestEncodeFlipsYAxis(t *testing.T) {
	doc := draft.NewDocument()
	doc.Add(draft.NewLine(draft.Pt(0, 0), draft.Pt(0, 50)))

	// The model's topmost point lands at the top of the canvas.
	out := marshalDoc(t, doc, WithPadding(5))
	assertContains(t, out, `<line x1="5" y1="55" x2="5" y2="5"`)
}

func TestEncodeSkipsInvisible(t *testing.T) {
	doc := draft.NewDocument()
	doc.Layers = append(doc.Layers, draft.Layer{
		ID: "DRAFTS", Name: "DRAFTS", Visible: false, Order: 1,
	})

	visible := draft.NewLine(draft.Pt(0, 0), draft.Pt(10, 0))
	hiddenEntity := draft.NewCircle(draft.Pt(5, 5), 1)
	hiddenEntity.Visible = false
	onHiddenLayer := draft.NewCircle(draft.Pt(2, 2), 1)
	onHiddenLayer.Layer = "DRAFTS"

	doc.Add(visible)
	doc.Add(hiddenEntity)
	doc.Add(onHiddenLayer)

	out := marshalDoc(t, doc)
	if strings.Contains(out, "<circle") {
		t.Error("an invisible entity was rendered")
	}
	if strings.Contains(out, "layer-DRAFTS") {
		t.Error("an invisible layer got a group")
	}
	assertContains(t, out, "<line")
}

func TestEncodeDashArrayScalesWithStrokeWidth(t *testing.T) {
	l := draft.NewLine(draft.Pt(0, 0), draft.Pt(10, 0))
	l.Style.Pattern = draft.PatternDashed
	l.Style.StrokeWidth = 2
	doc := draft.NewDocument()
	doc.Add(l)

	out := marshalDoc(t, doc)
	assertContains(t, out, ` stroke-dasharray="10 6"`)
}

func TestEncodeFillOpacity(t *testing.T) {
	r := draft.NewRectangle(draft.Pt(0, 0), 4, 2)
	r.Style = draft.Style{StrokeColor: "#000000", StrokeWidth: 1, FillColor: "#FF0000"}
	doc := draft.NewDocument()
	doc.Add(r)

	// The zero opacity of a hand-built style renders opaque.
	out := marshalDoc(t, doc)
	assertContains(t, out, ` fill="#FF0000"`)
	if strings.Contains(out, "fill-opacity") {
		t.Error("unset opacity emitted as an attribute")
	}

	r.Style.FillOpacity = 0.5
	assertContains(t, marshalDoc(t, doc), ` fill-opacity="0.5"`)
}

func TestEncodeArcPath(t *testing.T) {
	doc := draft.NewDocument()
	doc.Add(draft.NewArc(draft.Pt(0, 0), 10, 0, 90))

	// Quarter arc: extents (0,0)-(10,10). Counter-clockwise in the model
	// is sweep flag 0 on the flipped canvas.
	out := marshalDoc(t, doc)
	assertContains(t, out, `<path d="M 20 20 A 10 10 0 0 0 10 10"`)
}

func TestEncodeFullCircleArc(t *testing.T) {
	doc := draft.NewDocument()
	doc.Add(draft.NewArc(draft.Pt(0, 0), 5, 45, 45))

	out := marshalDoc(t, doc)
	if strings.Contains(out, "<path") {
		t.Error("a full-circle arc was rendered as a path")
	}
	assertContains(t, out, `<circle cx="15" cy="15" r="5"`)
}

func TestEncodeRotatedRectangle(t *testing.T) {
	r := draft.NewRectangle(draft.Pt(0, 0), 4, 2)
	r.Rotation = 90
	doc := draft.NewDocument()
	doc.Add(r)

	// Rotated extents are (1,-1)-(3,3); model rotation is negated on the
	// flipped canvas and pivots on the rectangle's center.
	out := marshalDoc(t, doc)
	assertContains(t, out,
		`<rect x="9" y="11" width="4" height="2"`,
		` transform="rotate(-90 11 12)"`,
	)
}

func TestEncodeClosedPolylineIsPolygon(t *testing.T) {
	open := draft.NewPolyline([]draft.Point{draft.Pt(0, 0), draft.Pt(4, 0), draft.Pt(4, 4)})
	closed := open.Clone().(*draft.Polyline)
	closed.Closed = true

	openDoc := draft.NewDocument()
	openDoc.Add(open)
	if out := marshalDoc(t, openDoc); !strings.Contains(out, "<polyline points=") {
		t.Error("open polyline did not render as <polyline>")
	}

	closedDoc := draft.NewDocument()
	closedDoc.Add(closed)
	if out := marshalDoc(t, closedDoc); !strings.Contains(out, "<polygon points=") {
		t.Error("closed polyline did not render as <polygon>")
	}
}

func TestEncodeTextEscapedAndAnchored(t *testing.T) {
	txt := draft.NewText(draft.Pt(0, 0), "a<b & c")
	txt.Style.Align = draft.AlignCenter
	doc := draft.NewDocument()
	doc.Add(txt)

	out := marshalDoc(t, doc)
	assertContains(t, out,
		">a&lt;b &amp; c</text>",
		` text-anchor="middle"`,
		` font-family="sans-serif"`,
	)
}

func TestEncodeLinearDimension(t *testing.T) {
	d := &draft.LinearDimension{
		EntityBase: draft.NewBase(),
		Start:      draft.Pt(0, 0),
		End:        draft.Pt(10, 0),
		Offset:     5,
	}
	doc := draft.NewDocument()
	doc.Add(d)

	out := marshalDoc(t, doc)
	assertContains(t, out, `<g class="dimension">`, ">10.00</text>")
	if n := strings.Count(out, "<line"); n != 3 {
		t.Errorf("dimension drew %d lines, want 2 extension lines and 1 dimension line", n)
	}
}

func TestEncodeRadialDimensionLabel(t *testing.T) {
	d := &draft.RadialDimension{
		EntityBase:    draft.NewBase(),
		Center:        draft.Pt(0, 0),
		PointOnCircle: draft.Pt(7.5, 0),
	}
	doc := draft.NewDocument()
	doc.Add(d)

	assertContains(t, marshalDoc(t, doc), ">R7.50</text>")
}

func TestEncodeGrid(t *testing.T) {
	doc := draft.NewDocument()
	doc.Add(draft.NewLine(draft.Pt(0, 0), draft.Pt(20, 20)))

	out := marshalDoc(t, doc, WithGrid(10))
	assertContains(t, out, `<g id="grid" stroke="#DDDDDD" stroke-width="0.5">`)

	if out := marshalDoc(t, doc); strings.Contains(out, `id="grid"`) {
		t.Error("grid rendered without being enabled")
	}
}

func TestEncodeDeterministic(t *testing.T) {
	doc := draft.NewDocument()
	doc.Add(draft.NewLine(draft.Pt(0, 0), draft.Pt(1, 1)))
	doc.Add(draft.NewCircle(draft.Pt(3, 3), 1))
	doc.Add(draft.NewCircle(draft.Pt(6, 6), 2))

	a, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	b, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two encodes of the same document differ")
	}
}
