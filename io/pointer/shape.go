// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"math"

	"gioui.org/x/pointerevents/f32"
)

// ShapeKind determines how the dimensions of a Shape are interpreted.
type ShapeKind uint8

const (
	// Ellipse interprets width, height and angle as a rotated ellipse.
	Ellipse ShapeKind = iota
	// Rectangle interprets width, height and angle as a rotated rectangle.
	Rectangle
)

// Shape describes the contact area of a pointer. Shapes are immutable;
// the axis aligned size is computed when the Shape is created.
type Shape struct {
	kind            ShapeKind
	width, height   float32
	widthTolerance  float32
	heightTolerance float32
	// angle in degrees.
	angle float32
	// aaSize is the size of the bounding box of the rotated shape.
	aaSize f32.Point
}

// DefaultShape returns the 1x1 ellipse used when a device reports
// no contact geometry.
func DefaultShape() Shape {
	return NewShape(Ellipse, 1, 1, 0, 0, 0)
}

// NewUniformShape returns a shape with equal width and height.
func NewUniformShape(kind ShapeKind, size, tolerance float32) Shape {
	return NewShape(kind, size, size, tolerance, tolerance, 0)
}

// NewShape returns a shape of the given kind. Negative or NaN
// dimensions are clamped to zero.
func NewShape(kind ShapeKind, width, height, widthTolerance, heightTolerance, angleDeg float32) Shape {
	if kind != Ellipse && kind != Rectangle {
		kind = Ellipse
	}
	s := Shape{
		kind:            kind,
		width:           nonNegative(width),
		height:          nonNegative(height),
		widthTolerance:  nonNegative(widthTolerance),
		heightTolerance: nonNegative(heightTolerance),
		angle:           finite(angleDeg),
	}
	s.aaSize = s.axisAlignedSize()
	return s
}

func (s Shape) Kind() ShapeKind { return s.kind }
func (s Shape) Width() float32 { return s.width }
func (s Shape) Height() float32 { return s.height }
func (s Shape) WidthTolerance() float32 { return s.widthTolerance }
func (s Shape) HeightTolerance() float32 { return s.heightTolerance }

// Angle returns the clockwise rotation of the shape in degrees.
func (s Shape) Angle() float32 { return s.angle }

// AngleRad returns the rotation of the shape in radians.
func (s Shape) AngleRad() float32 { return s.angle * math.Pi / 180 }

// AxisAlignedSize returns the width and height of the smallest
// axis aligned rectangle containing the rotated shape.
func (s Shape) AxisAlignedSize() f32.Point { return s.aaSize }

// AxisAlignedWidth is short for AxisAlignedSize().X.
func (s Shape) AxisAlignedWidth() float32 { return s.aaSize.X }

// AxisAlignedHeight is short for AxisAlignedSize().Y.
func (s Shape) AxisAlignedHeight() float32 { return s.aaSize.Y }

func (s Shape) axisAlignedSize() f32.Point {
	if s.angle == 0 {
		return f32.Pt(s.width, s.height)
	}
	switch s.kind {
	case Rectangle:
		hw, hh := s.width/2, s.height/2
		rot := f32.Affine2D{}.Rotate(f32.Point{}, s.AngleRad())
		b := f32.Bounds(
			rot.Transform(f32.Pt(-hw, -hh)),
			rot.Transform(f32.Pt(hw, -hh)),
			rot.Transform(f32.Pt(hw, hh)),
			rot.Transform(f32.Pt(-hw, hh)),
		)
		return b.Size()
	default:
		sin, cos := math.Sincos(float64(s.AngleRad()))
		a, b := float64(s.width)/2, float64(s.height)/2
		w := 2 * math.Sqrt(a*a*cos*cos+b*b*sin*sin)
		h := 2 * math.Sqrt(a*a*sin*sin+b*b*cos*cos)
		return f32.Pt(float32(w), float32(h))
	}
}

func (k ShapeKind) String() string {
	switch k {
	case Rectangle:
		return "RECTANGLE"
	default:
		return "ELLIPSE"
	}
}
