package draft

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// RotateMatrix creates a rotation matrix (angle in radians,
// counter-clockwise about the origin).
func RotateMatrix(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// RotateAboutMatrix creates a rotation matrix about an arbitrary center
// (angle in radians, counter-clockwise).
func RotateAboutMatrix(center Point, angle float64) Matrix {
	return Translate(center.X, center.Y).
		Multiply(RotateMatrix(angle)).
		Multiply(Translate(-center.X, -center.Y))
}

// MirrorMatrix creates a reflection matrix across the line through a and b.
// A degenerate line (a == b) reflects through the point a instead.
func MirrorMatrix(a, b Point) Matrix {
	d := b.Sub(a)
	lenSq := d.LengthSquared()
	if lenSq == 0 {
		// Point reflection: rotate 180 degrees about a.
		return RotateAboutMatrix(a, math.Pi)
	}
	cos2 := (d.X*d.X - d.Y*d.Y) / lenSq
	sin2 := 2 * d.X * d.Y / lenSq
	reflect := Matrix{
		A: cos2, B: sin2, C: 0,
		D: sin2, E: -cos2, F: 0,
	}
	return Translate(a.X, a.Y).
		Multiply(reflect).
		Multiply(Translate(-a.X, -a.Y))
}

// Multiply multiplies two matrices (m * other).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}
