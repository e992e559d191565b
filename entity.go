package draft

import "github.com/google/uuid"

// EntityKind identifies the concrete variant of an Entity.
type EntityKind string

// Entity kinds.
const (
	KindLine             EntityKind = "line"
	KindCircle           EntityKind = "circle"
	KindArc              EntityKind = "arc"
	KindRectangle        EntityKind = "rectangle"
	KindEllipse          EntityKind = "ellipse"
	KindPolyline         EntityKind = "polyline"
	KindText             EntityKind = "text"
	KindLeader           EntityKind = "leader"
	KindLinearDimension  EntityKind = "linear-dimension"
	KindAngularDimension EntityKind = "angular-dimension"
	KindRadialDimension  EntityKind = "radial-dimension"
)

// EntityBase holds the attributes shared by every drawing entity:
// a stable identifier, the owning layer name, visibility and lock flags,
// and the rendering style.
type EntityBase struct {
	ID      string
	Layer   string
	Visible bool
	Locked  bool
	Style   Style
}

// Base returns the shared entity attributes.
func (b *EntityBase) Base() *EntityBase { return b }

// NewBase creates entity attributes with a fresh identifier on the
// default layer. Use it when constructing entity variants that have no
// dedicated constructor, such as dimensions.
func NewBase() EntityBase {
	return EntityBase{
		ID:      uuid.NewString(),
		Layer:   DefaultLayerName,
		Visible: true,
		Style:   DefaultStyle(),
	}
}

// Entity is the closed set of drawing primitives. Each variant embeds
// EntityBase and is matched exhaustively by the bounds calculator, hit
// tester, transform operations, and the exporters, so adding a variant is
// a compile-time-visible change across all of them.
//
// Entities are owned by their creator; all kernel operations treat them as
// immutable and return new values.
type Entity interface {
	Kind() EntityKind
	Base() *EntityBase
	// Clone returns a deep copy, including slice-valued fields.
	Clone() Entity

	isEntity()
}

// Line is a straight segment between two points.
type Line struct {
	EntityBase
	Start, End Point
}

// Circle is a full circle. Radius must be positive for the circle to be
// geometrically meaningful; operations on a degenerate circle return
// empty results rather than failing.
type Circle struct {
	EntityBase
	Center Point
	Radius float64
}

// Arc is a circular arc. Angles are in degrees; the sweep runs from
// StartAngle to EndAngle counter-clockwise when CCW is true, clockwise
// otherwise.
type Arc struct {
	EntityBase
	Center               Point
	Radius               float64
	StartAngle, EndAngle float64
	CCW                  bool
}

// Rectangle is an axis-aligned box optionally rotated about its center.
// Position is the minimum corner before rotation; Rotation is in degrees.
type Rectangle struct {
	EntityBase
	Position      Point
	Width, Height float64
	Rotation      float64
}

// Ellipse is an axis-aligned ellipse optionally rotated about its center.
// Rotation is in degrees.
type Ellipse struct {
	EntityBase
	Center           Point
	RadiusX, RadiusY float64
	Rotation         float64
}

// Polyline is a chain of segments through Points, optionally closed back
// to the first point.
type Polyline struct {
	EntityBase
	Points []Point
	Closed bool
}

// TextAnnotation places a text label at Position, rotated by Rotation
// degrees. Font size, family, and alignment come from the entity style.
type TextAnnotation struct {
	EntityBase
	Position Point
	Text     string
	Rotation float64
}

// LeaderAnnotation is an annotation arrow: a polyline from Start through
// Points with a text label at TextPosition.
type LeaderAnnotation struct {
	EntityBase
	Start        Point
	Points       []Point
	Text         string
	TextPosition Point
}

// LinearDimension measures the distance between Start and End, with the
// dimension line offset by Offset from the measured segment. Text overrides
// the displayed value when non-empty.
type LinearDimension struct {
	EntityBase
	Start, End Point
	Offset     float64
	Text       string
}

// AngularDimension measures the angle at Vertex between the rays toward
// Start and End, drawn at the given arc Radius.
type AngularDimension struct {
	EntityBase
	Vertex, Start, End Point
	Radius             float64
	Text               string
}

// RadialDimension measures a radius from Center to PointOnCircle.
type RadialDimension struct {
	EntityBase
	Center, PointOnCircle Point
	Text                  string
}

func (*Line) Kind() EntityKind             { return KindLine }
func (*Circle) Kind() EntityKind           { return KindCircle }
func (*Arc) Kind() EntityKind              { return KindArc }
func (*Rectangle) Kind() EntityKind        { return KindRectangle }
func (*Ellipse) Kind() EntityKind          { return KindEllipse }
func (*Polyline) Kind() EntityKind         { return KindPolyline }
func (*TextAnnotation) Kind() EntityKind   { return KindText }
func (*LeaderAnnotation) Kind() EntityKind { return KindLeader }
func (*LinearDimension) Kind() EntityKind  { return KindLinearDimension }
func (*AngularDimension) Kind() EntityKind { return KindAngularDimension }
func (*RadialDimension) Kind() EntityKind  { return KindRadialDimension }

func (*Line) isEntity()             {}
func (*Circle) isEntity()           {}
func (*Arc) isEntity()              {}
func (*Rectangle) isEntity()        {}
func (*Ellipse) isEntity()          {}
func (*Polyline) isEntity()         {}
func (*TextAnnotation) isEntity()   {}
func (*LeaderAnnotation) isEntity() {}
func (*LinearDimension) isEntity()  {}
func (*AngularDimension) isEntity() {}
func (*RadialDimension) isEntity()  {}

// Clone implementations. Variants without slice fields copy by value.

func (e *Line) Clone() Entity      { c := *e; return &c }
func (e *Circle) Clone() Entity    { c := *e; return &c }
func (e *Arc) Clone() Entity       { c := *e; return &c }
func (e *Rectangle) Clone() Entity { c := *e; return &c }
func (e *Ellipse) Clone() Entity   { c := *e; return &c }

func (e *Polyline) Clone() Entity {
	c := *e
	c.Points = append([]Point(nil), e.Points...)
	return &c
}

func (e *TextAnnotation) Clone() Entity { c := *e; return &c }

func (e *LeaderAnnotation) Clone() Entity {
	c := *e
	c.Points = append([]Point(nil), e.Points...)
	return &c
}

func (e *LinearDimension) Clone() Entity  { c := *e; return &c }
func (e *AngularDimension) Clone() Entity { c := *e; return &c }
func (e *RadialDimension) Clone() Entity  { c := *e; return &c }

// NewLine creates a line with default attributes.
func NewLine(start, end Point) *Line {
	return &Line{EntityBase: NewBase(), Start: start, End: end}
}

// NewCircle creates a circle with default attributes.
func NewCircle(center Point, radius float64) *Circle {
	return &Circle{EntityBase: NewBase(), Center: center, Radius: radius}
}

// NewArc creates a counter-clockwise arc with default attributes.
// Angles are in degrees.
func NewArc(center Point, radius, startAngle, endAngle float64) *Arc {
	return &Arc{
		EntityBase: NewBase(),
		Center:     center,
		Radius:     radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		CCW:        true,
	}
}

// NewRectangle creates an unrotated rectangle with default attributes.
func NewRectangle(position Point, width, height float64) *Rectangle {
	return &Rectangle{EntityBase: NewBase(), Position: position, Width: width, Height: height}
}

// NewEllipse creates an unrotated ellipse with default attributes.
func NewEllipse(center Point, radiusX, radiusY float64) *Ellipse {
	return &Ellipse{EntityBase: NewBase(), Center: center, RadiusX: radiusX, RadiusY: radiusY}
}

// NewPolyline creates an open polyline with default attributes.
// The points slice is copied.
func NewPolyline(points []Point) *Polyline {
	return &Polyline{EntityBase: NewBase(), Points: append([]Point(nil), points...)}
}

// NewText creates a text annotation with default attributes.
func NewText(position Point, text string) *TextAnnotation {
	return &TextAnnotation{EntityBase: NewBase(), Position: position, Text: text}
}
