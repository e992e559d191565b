package draft

import (
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// coincidenceTol is the tolerance for treating two intersection points as
// the same point (tangencies, shared polyline vertices).
const coincidenceTol = 1e-9

// Intersections returns the points where the line segment crosses the
// target entity. Supported targets are lines, circles, arcs, polylines,
// and rectangles; other variants and degenerate geometry yield an empty
// result. Points are returned ordered by their parameter along the line.
func Intersections(line *Line, target Entity) []Point {
	switch t := target.(type) {
	case *Line:
		if p, ok := segmentIntersection(line.Start, line.End, t.Start, t.End); ok {
			return []Point{p}
		}
		return nil

	case *Circle:
		return lineCircleIntersections(line, t.Center, t.Radius)

	case *Arc:
		pts := lineCircleIntersections(line, t.Center, t.Radius)
		var out []Point
		for _, p := range pts {
			if arcContainsAngle(t, Degrees(t.Center.AngleTo(p))) {
				out = append(out, p)
			}
		}
		return out

	case *Polyline:
		return lineSegmentsIntersections(line, t.Points, t.Closed)

	case *Rectangle:
		corners := t.Corners()
		return lineSegmentsIntersections(line, corners, true)

	default:
		return nil
	}
}

// segmentIntersection solves the 2x2 linear system for two parametric
// segments p(t) = p1 + t(p2-p1), q(u) = q1 + u(q2-q1). Parallel or
// degenerate segments have a singular system and report no intersection.
func segmentIntersection(p1, p2, q1, q2 Point) (Point, bool) {
	d1 := p2.Sub(p1)
	d2 := q2.Sub(q1)

	a := mat.NewDense(2, 2, []float64{
		d1.X, -d2.X,
		d1.Y, -d2.Y,
	})
	b := mat.NewVecDense(2, []float64{q1.X - p1.X, q1.Y - p1.Y})

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return Point{}, false
	}

	t, u := x.AtVec(0), x.AtVec(1)
	const eps = 1e-9
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return Point{}, false
	}
	return p1.Lerp(p2, clamp01(t)), true
}

// lineCircleIntersections substitutes the parametric line into the circle
// equation and keeps quadratic roots with t in [0, 1].
func lineCircleIntersections(line *Line, center Point, radius float64) []Point {
	if radius <= 0 {
		return nil
	}
	d := line.End.Sub(line.Start)
	f := line.Start.Sub(center)

	a := d.Dot(d)
	b := 2 * f.Dot(d)
	c := f.Dot(f) - radius*radius

	roots := SolveQuadraticInUnitInterval(a, b, c)
	var out []Point
	for _, t := range roots {
		out = appendUniquePoint(out, line.Start.Lerp(line.End, t))
	}
	return out
}

// lineSegmentsIntersections tests the line against each segment of a
// vertex chain, including the closing segment when closed. Intersections
// at shared vertices are reported once, ordered along the line.
func lineSegmentsIntersections(line *Line, pts []Point, closed bool) []Point {
	if len(pts) < 2 {
		return nil
	}
	var out []Point
	for i := 0; i < len(pts)-1; i++ {
		if p, ok := segmentIntersection(line.Start, line.End, pts[i], pts[i+1]); ok {
			out = appendUniquePoint(out, p)
		}
	}
	if closed {
		if p, ok := segmentIntersection(line.Start, line.End, pts[len(pts)-1], pts[0]); ok {
			out = appendUniquePoint(out, p)
		}
	}
	sortAlongLine(line, out)
	return out
}

// appendUniquePoint adds p unless a coincident point is already present.
func appendUniquePoint(pts []Point, p Point) []Point {
	for _, q := range pts {
		if scalar.EqualWithinAbs(p.X, q.X, coincidenceTol) &&
			scalar.EqualWithinAbs(p.Y, q.Y, coincidenceTol) {
			return pts
		}
	}
	return append(pts, p)
}

// sortAlongLine orders points by their parameter along the line, in place.
func sortAlongLine(line *Line, pts []Point) {
	d := line.End.Sub(line.Start)
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0; j-- {
			if pts[j].Sub(line.Start).Dot(d) < pts[j-1].Sub(line.Start).Dot(d) {
				pts[j], pts[j-1] = pts[j-1], pts[j]
			} else {
				break
			}
		}
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
