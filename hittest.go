package draft

import "math"

// HitTest reports whether p lies on the entity within a zoom-dependent
// tolerance. The tolerance is max(5, strokeWidth) screen units converted to
// world units, so picking stays visually consistent as the view zooms:
// zooming in shrinks the world-space tolerance. A zoom of zero or less is
// treated as 1.
func HitTest(e Entity, p Point, zoom float64) bool {
	if zoom <= 0 {
		zoom = 1
	}
	threshold := math.Max(5/zoom, e.Base().Style.StrokeWidth/zoom)

	switch e := e.(type) {
	case *Line:
		return distanceToSegment(p, e.Start, e.End) <= threshold

	case *Circle:
		return math.Abs(p.Distance(e.Center)-e.Radius) <= threshold

	case *Arc:
		if math.Abs(p.Distance(e.Center)-e.Radius) > threshold {
			return false
		}
		angle := Degrees(e.Center.AngleTo(p))
		return arcContainsAngle(e, angle)

	case *Rectangle:
		return hitRectangle(e, p, threshold)

	case *Ellipse:
		return hitEllipse(e, p, threshold)

	case *Polyline:
		return hitPolyline(e.Points, e.Closed, p, threshold)

	case *TextAnnotation:
		// Containment in the approximate text box, in the text's local frame.
		local := p
		if e.Rotation != 0 {
			local = p.RotateAbout(e.Position, -Radians(e.Rotation))
		}
		return boundsOfPoints(textCorners(e.Position, e.Text, 0, e.Style)...).Contains(local)

	case *LeaderAnnotation:
		pts := append([]Point{e.Start}, e.Points...)
		if hitPolyline(pts, false, p, threshold) {
			return true
		}
		return boundsOfPoints(textCorners(e.TextPosition, e.Text, 0, e.Style)...).Contains(p)

	case *LinearDimension, *AngularDimension, *RadialDimension:
		// Dimensions pick on their padded bounds, which already cover the
		// dimension text and arrows.
		return BoundsOf(e).Contains(p)

	default:
		return false
	}
}

// hitPolyline tests each segment, including the closing segment when the
// polyline is closed. A single-point polyline degenerates to a point test.
func hitPolyline(pts []Point, closed bool, p Point, threshold float64) bool {
	if len(pts) == 0 {
		return false
	}
	if len(pts) == 1 {
		return p.Distance(pts[0]) <= threshold
	}
	for i := 0; i < len(pts)-1; i++ {
		if distanceToSegment(p, pts[i], pts[i+1]) <= threshold {
			return true
		}
	}
	if closed && distanceToSegment(p, pts[len(pts)-1], pts[0]) <= threshold {
		return true
	}
	return false
}

// hitRectangle measures the distance from the query point to the nearest
// of the four edges, after transforming the point into the rectangle's
// local unrotated frame.
func hitRectangle(r *Rectangle, p Point, threshold float64) bool {
	local := p
	if r.Rotation != 0 {
		center := Point{X: r.Position.X + r.Width/2, Y: r.Position.Y + r.Height/2}
		local = p.RotateAbout(center, -Radians(r.Rotation))
	}

	a := r.Position
	b := Point{X: r.Position.X + r.Width, Y: r.Position.Y}
	c := Point{X: r.Position.X + r.Width, Y: r.Position.Y + r.Height}
	d := Point{X: r.Position.X, Y: r.Position.Y + r.Height}

	edges := [4][2]Point{{a, b}, {b, c}, {c, d}, {d, a}}
	for _, e := range edges {
		if distanceToSegment(local, e[0], e[1]) <= threshold {
			return true
		}
	}
	return false
}

// hitEllipse evaluates the implicit equation x²/rx² + y²/ry² in the
// ellipse's local frame; the point hits when the value is within
// threshold/min(rx, ry) of 1.
func hitEllipse(e *Ellipse, p Point, threshold float64) bool {
	if e.RadiusX <= 0 || e.RadiusY <= 0 {
		return false
	}
	local := p.Sub(e.Center)
	if e.Rotation != 0 {
		local = local.Rotate(-Radians(e.Rotation))
	}
	v := local.X*local.X/(e.RadiusX*e.RadiusX) + local.Y*local.Y/(e.RadiusY*e.RadiusY)
	return math.Abs(v-1) <= threshold/math.Min(e.RadiusX, e.RadiusY)
}
