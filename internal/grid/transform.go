package grid

import (
	"errors"
	"math"
)

// ErrSingularTransform is returned when a placement transform cannot be inverted.
var ErrSingularTransform = errors.New("grid: placement transform is not invertible")

// Affine is a 2D affine transform stored as [a, b, c, d, tx, ty]:
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
type Affine [6]float64

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Translate returns a pure translation.
func Translate(tx, ty float64) Affine {
	return Affine{1, 0, 0, 1, tx, ty}
}

// Scale returns a pure scale around the origin.
func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a counter-clockwise rotation by theta radians.
func Rotate(theta float64) Affine {
	s, c := math.Sincos(theta)
	return Affine{c, s, -s, c, 0, 0}
}

// Then returns the transform that applies m first and n second.
func (m Affine) Then(n Affine) Affine {
	return Affine{
		n[0]*m[0] + n[2]*m[1],
		n[1]*m[0] + n[3]*m[1],
		n[0]*m[2] + n[2]*m[3],
		n[1]*m[2] + n[3]*m[3],
		n[0]*m[4] + n[2]*m[5] + n[4],
		n[1]*m[4] + n[3]*m[5] + n[5],
	}
}

// Apply maps p through m.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Invert returns the inverse transform.
func (m Affine) Invert() (Affine, error) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity, ErrSingularTransform
	}
	inv := 1.0 / det
	a := m[3] * inv
	b := -m[1] * inv
	c := -m[2] * inv
	d := m[0] * inv
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, nil
}
