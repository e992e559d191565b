package draft

import "math"

// Bounds is an axis-aligned bounding box. A valid Bounds always satisfies
// MinX <= MaxX and MinY <= MaxY; degenerate entities produce a zero-area
// box. Bounds are derived on demand and never persisted.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center returns the center point of the box.
func (b Bounds) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Union returns the smallest box containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// ExpandBy returns the box grown by pad on every side.
func (b Bounds) ExpandBy(pad float64) Bounds {
	return Bounds{
		MinX: b.MinX - pad,
		MinY: b.MinY - pad,
		MaxX: b.MaxX + pad,
		MaxY: b.MaxY + pad,
	}
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// boundsOfPoints returns the extrema of a non-empty point set.
func boundsOfPoints(pts ...Point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// BoundsOf computes the axis-aligned bounding box of a single entity.
func BoundsOf(e Entity) Bounds {
	switch e := e.(type) {
	case *Line:
		return boundsOfPoints(e.Start, e.End)

	case *Circle:
		return Bounds{
			MinX: e.Center.X - e.Radius,
			MinY: e.Center.Y - e.Radius,
			MaxX: e.Center.X + e.Radius,
			MaxY: e.Center.Y + e.Radius,
		}

	case *Arc:
		return arcBounds(e)

	case *Rectangle:
		return boundsOfPoints(e.Corners()...)

	case *Ellipse:
		return ellipseBounds(e)

	case *Polyline:
		return boundsOfPoints(e.Points...)

	case *TextAnnotation:
		return boundsOfPoints(textCorners(e.Position, e.Text, e.Rotation, e.Style)...)

	case *LeaderAnnotation:
		pts := append([]Point{e.Start}, e.Points...)
		b := boundsOfPoints(pts...)
		text := boundsOfPoints(textCorners(e.TextPosition, e.Text, 0, e.Style)...)
		return b.Union(text)

	case *LinearDimension:
		return boundsOfPoints(e.Start, e.End).ExpandBy(e.Style.fontSizeOrDefault())

	case *AngularDimension:
		return boundsOfPoints(e.Vertex, e.Start, e.End).ExpandBy(e.Style.fontSizeOrDefault())

	case *RadialDimension:
		return boundsOfPoints(e.Center, e.PointOnCircle).ExpandBy(e.Style.fontSizeOrDefault())

	default:
		return Bounds{}
	}
}

// BoundsOfAll merges the per-entity bounds of a collection.
// An empty collection yields the zero box.
func BoundsOfAll(entities []Entity) Bounds {
	if len(entities) == 0 {
		return Bounds{}
	}
	b := BoundsOf(entities[0])
	for _, e := range entities[1:] {
		b = b.Union(BoundsOf(e))
	}
	return b
}

// arcBounds covers the two endpoints plus every cardinal direction the
// sweep crosses. The box around an arc is not the box around its circle
// unless the sweep crosses all four cardinals.
func arcBounds(a *Arc) Bounds {
	pts := []Point{a.PointAt(a.StartAngle), a.PointAt(a.EndAngle)}
	for _, cardinal := range []float64{0, 90, 180, 270} {
		if arcContainsAngle(a, cardinal) {
			pts = append(pts, a.PointAt(cardinal))
		}
	}
	return boundsOfPoints(pts...)
}

// PointAt returns the point on the arc's circle at the given angle in
// degrees.
func (a *Arc) PointAt(angleDeg float64) Point {
	rad := Radians(angleDeg)
	return Point{
		X: a.Center.X + a.Radius*math.Cos(rad),
		Y: a.Center.Y + a.Radius*math.Sin(rad),
	}
}

// Sweep returns the arc's angular extent in degrees, measured in the
// direction of travel; zero means a full circle.
func (a *Arc) Sweep() float64 {
	start, end := a.StartAngle, a.EndAngle
	if !a.CCW {
		start, end = end, start
	}
	return normalizeDegrees(end - start)
}

// arcContainsAngle reports whether the angle (degrees) lies within the
// arc's sweep, respecting sweep direction. A sweep whose start and end
// coincide is treated as a full circle.
func arcContainsAngle(a *Arc, angleDeg float64) bool {
	start := normalizeDegrees(a.StartAngle)
	end := normalizeDegrees(a.EndAngle)
	angle := normalizeDegrees(angleDeg)

	if !a.CCW {
		start, end = end, start
	}

	sweep := normalizeDegrees(end - start)
	if sweep == 0 {
		return true
	}
	return normalizeDegrees(angle-start) <= sweep
}

// normalizeDegrees maps an angle into [0, 360).
func normalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Corners returns the rectangle's four corners in order, after rotating
// about its center.
func (r *Rectangle) Corners() []Point {
	corners := []Point{
		r.Position,
		{X: r.Position.X + r.Width, Y: r.Position.Y},
		{X: r.Position.X + r.Width, Y: r.Position.Y + r.Height},
		{X: r.Position.X, Y: r.Position.Y + r.Height},
	}
	if r.Rotation == 0 {
		return corners
	}
	center := Point{X: r.Position.X + r.Width/2, Y: r.Position.Y + r.Height/2}
	m := RotateAboutMatrix(center, Radians(r.Rotation))
	for i, c := range corners {
		corners[i] = m.TransformPoint(c)
	}
	return corners
}

// ellipseBounds uses the closed-form extrema of a rotated ellipse: the
// half-extents along the world axes are sqrt(rx²cos²θ + ry²sin²θ) and
// sqrt(rx²sin²θ + ry²cos²θ).
func ellipseBounds(e *Ellipse) Bounds {
	rad := Radians(e.Rotation)
	cos, sin := math.Cos(rad), math.Sin(rad)
	hx := math.Sqrt(e.RadiusX*e.RadiusX*cos*cos + e.RadiusY*e.RadiusY*sin*sin)
	hy := math.Sqrt(e.RadiusX*e.RadiusX*sin*sin + e.RadiusY*e.RadiusY*cos*cos)
	return Bounds{
		MinX: e.Center.X - hx,
		MinY: e.Center.Y - hy,
		MaxX: e.Center.X + hx,
		MaxY: e.Center.Y + hy,
	}
}

// textCorners approximates a text box as glyphCount*fontSize*0.6 wide and
// fontSize*1.2 tall, anchored at position according to alignment, then
// rotated about the anchor. Exact text metrics are out of scope; the
// approximation is shared by bounds, hit testing, and the exporters.
func textCorners(position Point, text string, rotationDeg float64, s Style) []Point {
	size := s.fontSizeOrDefault()
	width := float64(len([]rune(text))) * size * 0.6
	height := size * 1.2

	var minX float64
	switch s.Align {
	case AlignCenter:
		minX = position.X - width/2
	case AlignRight:
		minX = position.X - width
	default:
		minX = position.X
	}

	corners := []Point{
		{X: minX, Y: position.Y},
		{X: minX + width, Y: position.Y},
		{X: minX + width, Y: position.Y + height},
		{X: minX, Y: position.Y + height},
	}
	if rotationDeg == 0 {
		return corners
	}
	m := RotateAboutMatrix(position, Radians(rotationDeg))
	for i, c := range corners {
		corners[i] = m.TransformPoint(c)
	}
	return corners
}
