// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "math"

// Affine2D represents an affine 2D transformation. The zero value of Affine2D
// represents the identity transform.
type Affine2D struct {
	// in order to make the zero value of Affine2D represent the identity
	// transform we store it with the identity matrix subtracted, that is
	// if the actual transformation matrix is:
	// [sx, hx, ox]
	// [hy, sy, oy]
	// [ 0,  0,  1]
	// we store a = sx-1 and e = sy-1
	a, b, c float32
	d, e, f float32
}

// NewAffine2D creates a new Affine2D transform from the matrix elements
// in row major order. The rows are: [sx, hx, ox], [hy, sy, oy], [0, 0, 1].
func NewAffine2D(sx, hx, ox, hy, sy, oy float32) Affine2D {
	return Affine2D{
		a: sx - 1, b: hx, c: ox,
		d: hy, e: sy - 1, f: oy,
	}
}

// Offset the transformation.
func (A Affine2D) Offset(offset Point) Affine2D {
	return Affine2D{
		A.a, A.b, A.c + offset.X,
		A.d, A.e, A.f + offset.Y,
	}
}

// Rotate the transformation by the given angle (in radians) counter clockwise around the given origin.
func (A Affine2D) Rotate(origin Point, radians float32) Affine2D {
	sin, cos := math.Sincos(float64(radians))
	s, c := float32(sin), float32(cos)
	r := NewAffine2D(c, -s, 0, s, c, 0)
	return r.Mul(A.Offset(origin.Mul(-1))).Offset(origin)
}

// Mul returns A*B.
func (A Affine2D) Mul(B Affine2D) (r Affine2D) {
	r.a = (A.a+1)*(B.a+1) + A.b*B.d - 1
	r.b = (A.a+1)*B.b + A.b*(B.e+1)
	r.c = (A.a+1)*B.c + A.b*B.f + A.c
	r.d = A.d*(B.a+1) + (A.e+1)*B.d
	r.e = A.d*B.b + (A.e+1)*(B.e+1) - 1
	r.f = A.d*B.c + (A.e+1)*B.f + A.f
	return r
}

// Transform p by returning Ap.
func (A Affine2D) Transform(p Point) Point {
	return Point{
		X: p.X*(A.a+1) + p.Y*A.b + A.c,
		Y: p.X*A.d + p.Y*(A.e+1) + A.f,
	}
}
