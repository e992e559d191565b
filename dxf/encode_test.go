package dxf

import (
	"bytes"
	"context"
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

func TestEncodeStructure(t *testing.T) {
	doc := draft.NewDocument()
	doc.Add(draft.NewLine(draft.Pt(0, 0), draft.Pt(10, 10)))

	out := marshalDoc(t, doc)
	for _, want := range []string{
		"2\nHEADER\n", "9\n$ACADVER\n", "9\n$EXTMIN\n", "9\n$EXTMAX\n",
		"2\nTABLES\n", "2\nLTYPE\n", "2\nLAYER\n",
		"2\nBLOCKS\n", "2\nENTITIES\n",
		"0\nLINE\n", "0\nEOF\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}
	if !strings.Contains(out, "5\n100\n") {
		t.Error("first entity handle is not 100")
	}
	if !strings.HasSuffix(out, "0\nEOF\n") {
		t.Error("output does not end with EOF")
	}
}

func TestEncodeFixedExtents(t *testing.T) {
	doc := draft.NewDocument()
	doc.Add(draft.NewLine(draft.Pt(0, 0), draft.Pt(1, 1)))

	out := marshalDoc(t, doc, WithExtents(draft.Bounds{MaxX: 210, MaxY: 297}))
	if !strings.Contains(out, "9\n$EXTMAX\n10\n210.000000\n20\n297.000000\n") {
		t.Error("header does not carry the fixed sheet extents")
	}
}

func TestEncodeDeterministic(t *testing.T) {
	doc := draft.NewDocument()
	doc.Add(draft.NewLine(draft.Pt(0, 0), draft.Pt(1, 1)))
	doc.Add(draft.NewCircle(draft.Pt(5, 5), 2))
	doc.Add(draft.NewCircle(draft.Pt(9, 9), 3))

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

func TestEncodeRectangleAsClosedPolyline(t *testing.T) {
	doc := draft.NewDocument()
	doc.Add(draft.NewRectangle(draft.Pt(0, 0), 4, 2))

	out := marshalDoc(t, doc)
	if !strings.Contains(out, "0\nLWPOLYLINE\n") {
		t.Fatal("rectangle did not encode as LWPOLYLINE")
	}
	if !strings.Contains(out, "90\n4\n") {
		t.Error("polyline vertex count is not 4")
	}
	if !strings.Contains(out, "70\n1\n") {
		t.Error("polyline is not flagged closed")
	}
}

func TestEncodeClockwiseArcSwapsAngles(t *testing.T) {
	a := draft.NewArc(draft.Pt(0, 0), 5, 30, 120)
	a.CCW = false
	doc := draft.NewDocument()
	doc.Add(a)

	res := roundTrip(t, doc)
	got := onlyEntity(t, res).(*draft.Arc)
	if got.StartAngle != 120 || got.EndAngle != 30 {
		t.Errorf("angles = %v..%v, want the clockwise sweep rewritten as 120..30",
			got.StartAngle, got.EndAngle)
	}
}

func roundTrip(t *testing.T, doc *draft.Document, opts ...Option) *Result {
	t.Helper()
	out, err := Marshal(doc, opts...)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	res, err := Decode(context.Background(), bytes.NewReader(out), opts...)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !res.Success() {
		t.Fatalf("round trip produced errors: %v", res.Errors)
	}
	return res
}

func TestRoundTripCircle(t *testing.T) {
	c := draft.NewCircle(draft.Pt(10, 10), 5)
	c.Layer = "PARTS"
	c.Style.StrokeColor = "#FF0000"

	doc := draft.NewDocument()
	doc.Layers = append(doc.Layers, draft.Layer{
		ID: "PARTS", Name: "PARTS", Color: "#FF0000", Visible: true, Order: 1,
	})
	doc.Add(c)

	res := roundTrip(t, doc)
	got, ok := onlyEntity(t, res).(*draft.Circle)
	if !ok {
		t.Fatal("round trip lost the circle")
	}
	if !approxPt(got.Center, c.Center) || !approx(got.Radius, c.Radius) {
		t.Errorf("circle = %+v r=%v", got.Center, got.Radius)
	}
	if got.Layer != "PARTS" || got.Style.StrokeColor != "#FF0000" {
		t.Errorf("attributes = layer %q color %q", got.Layer, got.Style.StrokeColor)
	}

	var parts *draft.Layer
	for i := range res.Layers {
		if res.Layers[i].Name == "PARTS" {
			parts = &res.Layers[i]
		}
	}
	if parts == nil || !parts.Visible {
		t.Errorf("PARTS layer after round trip = %+v", parts)
	}
}

func TestRoundTripLinearDimension(t *testing.T) {
	d := &draft.LinearDimension{
		EntityBase: draft.NewBase(),
		Start:      draft.Pt(0, 0),
		End:        draft.Pt(10, 0),
		Offset:     4,
		Text:       "10.00",
	}
	doc := draft.NewDocument()
	doc.Add(d)

	res := roundTrip(t, doc)
	got, ok := onlyEntity(t, res).(*draft.LinearDimension)
	if !ok {
		t.Fatal("round trip lost the dimension")
	}
	if !approxPt(got.Start, d.Start) || !approxPt(got.End, d.End) {
		t.Errorf("measured segment = %+v -> %+v", got.Start, got.End)
	}
	if !approx(got.Offset, 4) {
		t.Errorf("offset = %v, want 4", got.Offset)
	}
	if got.Text != "10.00" {
		t.Errorf("text = %q", got.Text)
	}
}

func TestRoundTripDashedStyle(t *testing.T) {
	l := draft.NewLine(draft.Pt(0, 0), draft.Pt(5, 0))
	l.Style.Pattern = draft.PatternDashed
	doc := draft.NewDocument()
	doc.Add(l)

	res := roundTrip(t, doc)
	got := onlyEntity(t, res).(*draft.Line)
	if got.Style.Pattern != draft.PatternDashed {
		t.Errorf("pattern = %v, want dashed", got.Style.Pattern)
	}
}

func TestRoundTripScale(t *testing.T) {
	doc := draft.NewDocument()
	doc.Add(draft.NewCircle(draft.Pt(1, 1), 2))

	// The same scale on both sides compounds.
	res := roundTrip(t, doc, WithScale(10))
	got := onlyEntity(t, res).(*draft.Circle)
	if !approxPt(got.Center, draft.Pt(100, 100)) || !approx(got.Radius, 200) {
		t.Errorf("circle = %+v r=%v, want (100,100) r=200", got.Center, got.Radius)
	}
}

const coordEps = 1e-4

func approx(a, b float64) bool {
	d := a - b
	return d < coordEps && d > -coordEps
}

func approxPt(a, b draft.Point) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}
