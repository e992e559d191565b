package draft

import (
	"testing"
)

func boundsEqual(a, b Bounds) bool {
	return approxEqual(a.MinX, b.MinX) && approxEqual(a.MinY, b.MinY) &&
		approxEqual(a.MaxX, b.MaxX) && approxEqual(a.MaxY, b.MaxY)
}

func TestBoundsBasics(t *testing.T) {
	b := Bounds{MinX: 0, MinY: 0, MaxX: 4, MaxY: 2}
	if got := b.Width(); !approxEqual(got, 4) {
		t.Errorf("Width = %v, want 4", got)
	}
	if got := b.Height(); !approxEqual(got, 2) {
		t.Errorf("Height = %v, want 2", got)
	}
	if got := b.Center(); !pointsEqual(got, Pt(2, 1)) {
		t.Errorf("Center = %+v, want (2, 1)", got)
	}
	if !b.Contains(Pt(1, 1)) || b.Contains(Pt(5, 1)) {
		t.Error("Contains misclassified a point")
	}

	u := b.Union(Bounds{MinX: -1, MinY: 1, MaxX: 2, MaxY: 5})
	if want := (Bounds{MinX: -1, MinY: 0, MaxX: 4, MaxY: 5}); !boundsEqual(u, want) {
		t.Errorf("Union = %+v, want %+v", u, want)
	}

	e := b.ExpandBy(1)
	if want := (Bounds{MinX: -1, MinY: -1, MaxX: 5, MaxY: 3}); !boundsEqual(e, want) {
		t.Errorf("ExpandBy = %+v, want %+v", e, want)
	}
}

func TestBoundsOf(t *testing.T) {
	tests := []struct {
		name string
		e    Entity
		want Bounds
	}{
		{
			"line",
			NewLine(Pt(3, 7), Pt(-1, 2)),
			Bounds{MinX: -1, MinY: 2, MaxX: 3, MaxY: 7},
		},
		{
			"circle",
			NewCircle(Pt(5, 5), 3),
			Bounds{MinX: 2, MinY: 2, MaxX: 8, MaxY: 8},
		},
		{
			"quarter arc stays in its quadrant",
			NewArc(Pt(0, 0), 10, 0, 90),
			Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		},
		{
			"rectangle unrotated",
			NewRectangle(Pt(1, 2), 4, 2),
			Bounds{MinX: 1, MinY: 2, MaxX: 5, MaxY: 4},
		},
		{
			"polyline",
			NewPolyline([]Point{Pt(0, 0), Pt(4, 1), Pt(2, -3)}),
			Bounds{MinX: 0, MinY: -3, MaxX: 4, MaxY: 1},
		},
		{
			"ellipse unrotated",
			NewEllipse(Pt(0, 0), 10, 5),
			Bounds{MinX: -10, MinY: -5, MaxX: 10, MaxY: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoundsOf(tt.e); !boundsEqual(got, tt.want) {
				t.Errorf("BoundsOf = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBoundsOfClockwiseArc(t *testing.T) {
	// A clockwise sweep from 0 to 90 travels the long way around and
	// touches all four cardinals.
	a := NewArc(Pt(0, 0), 10, 0, 90)
	a.CCW = false
	want := Bounds{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10}
	if got := BoundsOf(a); !boundsEqual(got, want) {
		t.Errorf("BoundsOf = %+v, want %+v", got, want)
	}
}

func TestBoundsOfRotatedRectangle(t *testing.T) {
	r := NewRectangle(Pt(0, 0), 4, 2)
	r.Rotation = 90
	want := Bounds{MinX: 1, MinY: -1, MaxX: 3, MaxY: 3}
	if got := BoundsOf(r); !boundsEqual(got, want) {
		t.Errorf("BoundsOf = %+v, want %+v", got, want)
	}
}

func TestBoundsOfRotatedEllipse(t *testing.T) {
	e := NewEllipse(Pt(1, 1), 10, 5)
	e.Rotation = 90
	want := Bounds{MinX: -4, MinY: -9, MaxX: 6, MaxY: 11}
	if got := BoundsOf(e); !boundsEqual(got, want) {
		t.Errorf("BoundsOf = %+v, want %+v", got, want)
	}
}

func TestBoundsFullRotationRoundTrip(t *testing.T) {
	r := NewRectangle(Pt(2, 3), 6, 4)
	r.Rotation = 25
	before := BoundsOf(r)
	after := BoundsOf(Rotate(r, Pt(0, 0), 360).(*Rectangle))
	if !boundsEqual(before, after) {
		t.Errorf("bounds after 360 degree rotation = %+v, want %+v", after, before)
	}
}

func TestBoundsOfDimensionPadded(t *testing.T) {
	d := &LinearDimension{EntityBase: NewBase(), Start: Pt(0, 0), End: Pt(10, 0), Offset: 5}
	got := BoundsOf(d)
	pad := d.Style.FontSize
	want := Bounds{MinX: -pad, MinY: -pad, MaxX: 10 + pad, MaxY: pad}
	if !boundsEqual(got, want) {
		t.Errorf("BoundsOf = %+v, want %+v", got, want)
	}
}

func TestBoundsOfAll(t *testing.T) {
	if got := BoundsOfAll(nil); !boundsEqual(got, Bounds{}) {
		t.Errorf("BoundsOfAll(nil) = %+v, want zero", got)
	}

	got := BoundsOfAll([]Entity{
		NewLine(Pt(0, 0), Pt(5, 5)),
		NewCircle(Pt(10, 0), 2),
	})
	want := Bounds{MinX: 0, MinY: -2, MaxX: 12, MaxY: 5}
	if !boundsEqual(got, want) {
		t.Errorf("BoundsOfAll = %+v, want %+v", got, want)
	}
}

func TestArcSweep(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		ccw        bool
		want       float64
	}{
		{"quarter ccw", 0, 90, true, 90},
		{"quarter cw", 90, 0, false, 90},
		{"three quarters ccw", 90, 0, true, 270},
		{"full circle", 45, 45, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArc(Pt(0, 0), 1, tt.start, tt.end)
			a.CCW = tt.ccw
			if got := a.Sweep(); !approxEqual(got, tt.want) {
				t.Errorf("Sweep = %v, want %v", got, tt.want)
			}
		})
	}
}
