// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"math"
	"testing"
)

func TestShapeAxisAlignedSize(t *testing.T) {
	sqrt2 := float32(math.Sqrt2)
	for _, tc := range []struct {
		name string
		s    Shape
		w, h float32
	}{
		{"default", DefaultShape(), 1, 1},
		{"rect unrotated", NewShape(Rectangle, 4, 2, 0, 0, 0), 4, 2},
		{"rect 90", NewShape(Rectangle, 4, 2, 0, 0, 90), 2, 4},
		{"rect 45", NewShape(Rectangle, 2, 2, 0, 0, 45), 2 * sqrt2, 2 * sqrt2},
		{"rect -30", NewShape(Rectangle, 4, 2, 0, 0, -30), 4*float32(math.Cos(math.Pi/6)) + 2*0.5, 4*0.5 + 2*float32(math.Cos(math.Pi/6))},
		{"ellipse 90", NewShape(Ellipse, 4, 2, 0, 0, 90), 2, 4},
		{"circle", NewUniformShape(Ellipse, 3, 0.5), 3, 3},
		{"ellipse 45", NewShape(Ellipse, 4, 2, 0, 0, 45), 2 * float32(math.Sqrt(2.5)), 2 * float32(math.Sqrt(2.5))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.s.AxisAlignedSize()
			if !approxEqual(got.X, tc.w) || !approxEqual(got.Y, tc.h) {
				t.Errorf("got %v, want (%g,%g)", got, tc.w, tc.h)
			}
			if got.X != tc.s.AxisAlignedWidth() || got.Y != tc.s.AxisAlignedHeight() {
				t.Errorf("AxisAlignedWidth/Height disagree with AxisAlignedSize")
			}
		})
	}
}

func TestShapeClamping(t *testing.T) {
	s := NewShape(ShapeKind(7), -1, float32(math.NaN()), -2, 3, 10)
	if s.Kind() != Ellipse {
		t.Errorf("invalid kind: got %v, want ELLIPSE", s.Kind())
	}
	if s.Width() != 0 || s.Height() != 0 || s.WidthTolerance() != 0 || s.HeightTolerance() != 3 {
		t.Errorf("dimensions not clamped: %+v", s)
	}
	if s.Angle() != 10 || !approxEqual(s.AngleRad(), math.Pi/18) {
		t.Errorf("angle: got %g (%g rad)", s.Angle(), s.AngleRad())
	}
}

func TestShapeDeterministic(t *testing.T) {
	a := NewShape(Rectangle, 13, 7, 1, 1, 17)
	b := NewShape(a.Kind(), a.Width(), a.Height(), a.WidthTolerance(), a.HeightTolerance(), a.Angle())
	if a != b {
		t.Errorf("recomputed shape differs: %+v != %+v", a, b)
	}
}
