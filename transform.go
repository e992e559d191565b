package draft

// Transform operations are pure: they return new entities and never
// mutate their inputs. Rotate, Mirror, Extend, and Trim preserve the
// entity identifier (the same logical entity, moved); Split produces two
// new entities with fresh identifiers.

// extensionReach is the length of the provisional extension used when
// extending a line toward another entity.
const extensionReach = 10000

// ExtendMode selects which endpoint(s) of a line an extend operation moves.
type ExtendMode int

// Extend modes.
const (
	ExtendEnd ExtendMode = iota
	ExtendStart
	ExtendBoth
)

// TrimMode selects which sub-segment a trim operation keeps.
type TrimMode int

// Trim modes.
const (
	// TrimClosest keeps the sub-segment nearer the reference point.
	TrimClosest TrimMode = iota
	// TrimStart keeps the sub-segment from the line start to the cut.
	TrimStart
	// TrimEnd keeps the sub-segment from the cut to the line end.
	TrimEnd
)

// Rotate returns a copy of the entity rotated by angleDeg degrees
// counter-clockwise about center. Stored rotation angles (rectangle,
// ellipse, text) and arc sweep angles advance by the same amount.
func Rotate(e Entity, center Point, angleDeg float64) Entity {
	m := RotateAboutMatrix(center, Radians(angleDeg))

	switch e := e.(type) {
	case *Line:
		c := *e
		c.Start = m.TransformPoint(e.Start)
		c.End = m.TransformPoint(e.End)
		return &c

	case *Circle:
		c := *e
		c.Center = m.TransformPoint(e.Center)
		return &c

	case *Arc:
		c := *e
		c.Center = m.TransformPoint(e.Center)
		c.StartAngle = normalizeDegrees(e.StartAngle + angleDeg)
		c.EndAngle = normalizeDegrees(e.EndAngle + angleDeg)
		return &c

	case *Rectangle:
		c := *e
		oldCenter := Point{X: e.Position.X + e.Width/2, Y: e.Position.Y + e.Height/2}
		newCenter := m.TransformPoint(oldCenter)
		c.Position = Point{X: newCenter.X - e.Width/2, Y: newCenter.Y - e.Height/2}
		c.Rotation = e.Rotation + angleDeg
		return &c

	case *Ellipse:
		c := *e
		c.Center = m.TransformPoint(e.Center)
		c.Rotation = e.Rotation + angleDeg
		return &c

	case *Polyline:
		c := e.Clone().(*Polyline)
		for i, p := range c.Points {
			c.Points[i] = m.TransformPoint(p)
		}
		return c

	case *TextAnnotation:
		c := *e
		c.Position = m.TransformPoint(e.Position)
		c.Rotation = e.Rotation + angleDeg
		return &c

	case *LeaderAnnotation:
		c := e.Clone().(*LeaderAnnotation)
		c.Start = m.TransformPoint(e.Start)
		for i, p := range c.Points {
			c.Points[i] = m.TransformPoint(p)
		}
		c.TextPosition = m.TransformPoint(e.TextPosition)
		return c

	case *LinearDimension:
		c := *e
		c.Start = m.TransformPoint(e.Start)
		c.End = m.TransformPoint(e.End)
		return &c

	case *AngularDimension:
		c := *e
		c.Vertex = m.TransformPoint(e.Vertex)
		c.Start = m.TransformPoint(e.Start)
		c.End = m.TransformPoint(e.End)
		return &c

	case *RadialDimension:
		c := *e
		c.Center = m.TransformPoint(e.Center)
		c.PointOnCircle = m.TransformPoint(e.PointOnCircle)
		return &c

	default:
		return e.Clone()
	}
}

// Mirror returns a copy of the entity reflected across the line through a
// and b. Stored rotation angles are reflected (for a mirror across the X
// axis this negates them), arc sweep angles are reflected and the sweep
// direction flips.
func Mirror(e Entity, a, b Point) Entity {
	m := MirrorMatrix(a, b)
	// Angle of the mirror line; a stored angle θ reflects to 2φ - θ.
	phi := Degrees(a.AngleTo(b))
	reflectAngle := func(deg float64) float64 { return 2*phi - deg }

	switch e := e.(type) {
	case *Line:
		c := *e
		c.Start = m.TransformPoint(e.Start)
		c.End = m.TransformPoint(e.End)
		return &c

	case *Circle:
		c := *e
		c.Center = m.TransformPoint(e.Center)
		return &c

	case *Arc:
		c := *e
		c.Center = m.TransformPoint(e.Center)
		c.StartAngle = normalizeDegrees(reflectAngle(e.StartAngle))
		c.EndAngle = normalizeDegrees(reflectAngle(e.EndAngle))
		c.CCW = !e.CCW
		return &c

	case *Rectangle:
		c := *e
		oldCenter := Point{X: e.Position.X + e.Width/2, Y: e.Position.Y + e.Height/2}
		newCenter := m.TransformPoint(oldCenter)
		c.Position = Point{X: newCenter.X - e.Width/2, Y: newCenter.Y - e.Height/2}
		c.Rotation = reflectAngle(e.Rotation)
		return &c

	case *Ellipse:
		c := *e
		c.Center = m.TransformPoint(e.Center)
		c.Rotation = reflectAngle(e.Rotation)
		return &c

	case *Polyline:
		c := e.Clone().(*Polyline)
		for i, p := range c.Points {
			c.Points[i] = m.TransformPoint(p)
		}
		return c

	case *TextAnnotation:
		c := *e
		c.Position = m.TransformPoint(e.Position)
		c.Rotation = reflectAngle(e.Rotation)
		return &c

	case *LeaderAnnotation:
		c := e.Clone().(*LeaderAnnotation)
		c.Start = m.TransformPoint(e.Start)
		for i, p := range c.Points {
			c.Points[i] = m.TransformPoint(p)
		}
		c.TextPosition = m.TransformPoint(e.TextPosition)
		return c

	case *LinearDimension:
		c := *e
		c.Start = m.TransformPoint(e.Start)
		c.End = m.TransformPoint(e.End)
		return &c

	case *AngularDimension:
		c := *e
		c.Vertex = m.TransformPoint(e.Vertex)
		c.Start = m.TransformPoint(e.Start)
		c.End = m.TransformPoint(e.End)
		return &c

	case *RadialDimension:
		c := *e
		c.Center = m.TransformPoint(e.Center)
		c.PointOnCircle = m.TransformPoint(e.PointOnCircle)
		return &c

	default:
		return e.Clone()
	}
}

// ExtendByLength returns a copy of the line with the chosen endpoint(s)
// moved outward along the line's direction. ExtendBoth splits the
// extension evenly. A zero-length line has no direction and reports
// ok = false.
func ExtendByLength(line *Line, length float64, mode ExtendMode) (*Line, bool) {
	dir := line.End.Sub(line.Start)
	if dir.LengthSquared() == 0 {
		return nil, false
	}
	dir = dir.Normalize()

	c := *line
	switch mode {
	case ExtendStart:
		c.Start = line.Start.Sub(dir.Mul(length))
	case ExtendEnd:
		c.End = line.End.Add(dir.Mul(length))
	case ExtendBoth:
		half := length / 2
		c.Start = line.Start.Sub(dir.Mul(half))
		c.End = line.End.Add(dir.Mul(half))
	default:
		return nil, false
	}
	return &c, true
}

// ExtendToEntity returns a copy of the line extended in the requested
// direction until it meets the target entity. A provisional extension of
// extensionReach units is intersected with the target and the intersection
// closest to the moving endpoint wins; with ExtendBoth, whichever endpoint
// has the nearest intersection moves. Reports ok = false when the line is
// degenerate or no intersection exists within reach.
func ExtendToEntity(line *Line, target Entity, mode ExtendMode) (*Line, bool) {
	dir := line.End.Sub(line.Start)
	if dir.LengthSquared() == 0 {
		return nil, false
	}
	dir = dir.Normalize()

	endHit, endOK := nearestExtension(line, target, dir, ExtendEnd)
	startHit, startOK := nearestExtension(line, target, dir, ExtendStart)

	switch mode {
	case ExtendEnd:
		if !endOK {
			return nil, false
		}
		c := *line
		c.End = endHit
		return &c, true

	case ExtendStart:
		if !startOK {
			return nil, false
		}
		c := *line
		c.Start = startHit
		return &c, true

	case ExtendBoth:
		switch {
		case !endOK && !startOK:
			return nil, false
		case endOK && (!startOK || endHit.Distance(line.End) <= startHit.Distance(line.Start)):
			c := *line
			c.End = endHit
			return &c, true
		default:
			c := *line
			c.Start = startHit
			return &c, true
		}

	default:
		return nil, false
	}
}

// nearestExtension intersects a provisional extension past one endpoint
// with the target and returns the intersection nearest that endpoint.
func nearestExtension(line *Line, target Entity, dir Point, mode ExtendMode) (Point, bool) {
	var prov Line
	var anchor Point
	if mode == ExtendEnd {
		prov = Line{Start: line.End, End: line.End.Add(dir.Mul(extensionReach))}
		anchor = line.End
	} else {
		prov = Line{Start: line.Start, End: line.Start.Sub(dir.Mul(extensionReach))}
		anchor = line.Start
	}

	pts := Intersections(&prov, target)
	if len(pts) == 0 {
		return Point{}, false
	}
	best := pts[0]
	for _, p := range pts[1:] {
		if p.Distance(anchor) < best.Distance(anchor) {
			best = p
		}
	}
	return best, true
}

// TrimAtEntity cuts the line where it crosses the target and keeps one
// side. TrimStart keeps start-to-cut at the first crossing along the line,
// TrimEnd keeps cut-to-end at the last crossing, and TrimClosest cuts at
// the crossing nearest ref and keeps the side whose midpoint is nearer
// ref. Reports ok = false when the line never crosses the target.
func TrimAtEntity(line *Line, target Entity, ref Point, mode TrimMode) (*Line, bool) {
	pts := Intersections(line, target)
	if len(pts) == 0 {
		return nil, false
	}
	sortAlongLine(line, pts)

	c := *line
	switch mode {
	case TrimStart:
		c.End = pts[0]
	case TrimEnd:
		c.Start = pts[len(pts)-1]
	case TrimClosest:
		cut := pts[0]
		for _, p := range pts[1:] {
			if p.Distance(ref) < cut.Distance(ref) {
				cut = p
			}
		}
		startSide := line.Start.Lerp(cut, 0.5)
		endSide := cut.Lerp(line.End, 0.5)
		if startSide.Distance(ref) <= endSide.Distance(ref) {
			c.End = cut
		} else {
			c.Start = cut
		}
	default:
		return nil, false
	}
	return &c, true
}

// SplitAtEntity cuts the line at its first intersection with the target,
// returning two new lines that share the cut point and inherit the
// original's layer and style. Reports ok = false when there is no
// intersection.
func SplitAtEntity(line *Line, target Entity) (*Line, *Line, bool) {
	pts := Intersections(line, target)
	if len(pts) == 0 {
		return nil, nil, false
	}
	sortAlongLine(line, pts)
	cut := pts[0]

	first := NewLine(line.Start, cut)
	second := NewLine(cut, line.End)
	for _, l := range []*Line{first, second} {
		l.Layer = line.Layer
		l.Visible = line.Visible
		l.Locked = line.Locked
		l.Style = line.Style
	}
	return first, second, true
}
