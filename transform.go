package engine2d

import "math"

// Transform is an entity's local placement: position, rotation in radians
// (counter-clockwise, y-up) and per-axis scale. Scale is not validated; zero
// and negative values are allowed and propagate through the hierarchy.
type Transform struct {
	Position Vec2
	Rotation float64
	Scale    Vec2
}

// NewTransform returns an unrotated, unit-scale transform at position.
func NewTransform(position Vec2) Transform {
	return Transform{Position: position, Scale: Vec2One}
}

// Combine composes a child's local transform onto its parent's world
// transform:
//
//	position = parent.Position + Rotate(local.Position * parent.Scale, parent.Rotation)
//	rotation = parent.Rotation + local.Rotation
//	scale    = parent.Scale * local.Scale
//
// Rotation and scale compose independently, so non-uniform parent scale does
// not shear rotated children.
func Combine(parent, local Transform) Transform {
	offset := local.Position.Mul(parent.Scale).Rotate(parent.Rotation)
	return Transform{
		Position: parent.Position.Add(offset),
		Rotation: parent.Rotation + local.Rotation,
		Scale:    parent.Scale.Mul(local.Scale),
	}
}

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Matrix returns the affine matrix [a, b, c, d, tx, ty] for the transform.
//
// Composition order:
//
//	Scale -> Rotate -> Translate(Position)
func (t Transform) Matrix() [6]float64 {
	sin, cos := math.Sincos(t.Rotation)
	sx, sy := t.Scale.X, t.Scale.Y
	return [6]float64{
		cos * sx, sin * sx,
		-sin * sy, cos * sy,
		t.Position.X, t.Position.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
