package draft

import "testing"

func TestNewEntitiesHaveDistinctIDs(t *testing.T) {
	a := NewLine(Pt(0, 0), Pt(1, 1))
	b := NewLine(Pt(0, 0), Pt(1, 1))
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids = %q, %q, want distinct non-empty", a.ID, b.ID)
	}
	if a.Layer != DefaultLayerName || !a.Visible {
		t.Errorf("defaults = layer %q visible %v", a.Layer, a.Visible)
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := NewPolyline([]Point{Pt(0, 0), Pt(1, 1)})
	c := p.Clone().(*Polyline)
	c.Points[0] = Pt(99, 99)
	if p.Points[0] != Pt(0, 0) {
		t.Error("Clone shares the points slice")
	}

	src := []Point{Pt(5, 5)}
	q := NewPolyline(src)
	src[0] = Pt(0, 0)
	if q.Points[0] != Pt(5, 5) {
		t.Error("NewPolyline aliases the caller's slice")
	}
}

func TestDocument(t *testing.T) {
	doc := NewDocument()
	if _, ok := doc.LayerByName(DefaultLayerName); !ok {
		t.Fatal("new document is missing the default layer")
	}

	l := NewLine(Pt(0, 0), Pt(1, 0))
	l.Layer = "WALLS"
	doc.Add(l)
	doc.Add(NewCircle(Pt(0, 0), 1))

	got := doc.EntitiesOnLayer("WALLS")
	if len(got) != 1 || got[0].Base().ID != l.ID {
		t.Errorf("EntitiesOnLayer = %d entities, want the one wall line", len(got))
	}
	if len(doc.EntitiesOnLayer("0")) != 1 {
		t.Error("default layer should hold the circle")
	}
}

func TestStrokePatternDashArray(t *testing.T) {
	if got := PatternSolid.DashArray(); got != nil {
		t.Errorf("solid dash array = %v, want nil", got)
	}
	got := PatternDashed.DashArray()
	if len(got) != 2 || got[0] != 5 || got[1] != 3 {
		t.Errorf("dashed dash array = %v, want [5 3]", got)
	}
}
