// SPDX-License-Identifier: Unlicense OR MIT

package f32

import (
	"math"
	"testing"
)

func eq(p1, p2 Point) bool {
	tol := 1e-5
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	return math.Abs(math.Sqrt(float64(dx*dx+dy*dy))) < tol
}

func TestTransformOffset(t *testing.T) {
	p := Point{X: 1, Y: 2}
	o := Point{X: 2, Y: -3}

	r := Affine2D{}.Offset(o).Transform(p)
	if !eq(r, Pt(3, -1)) {
		t.Errorf("offset transformation mismatch: have %v, want {3 -1}", r)
	}
	i := Affine2D{}.Offset(o).Offset(o.Mul(-1)).Transform(p)
	if !eq(i, p) {
		t.Errorf("offset and opposite offset mismatch: have %v, want %v", i, p)
	}
}

func TestTransformRotate(t *testing.T) {
	p := Point{X: 1, Y: 0}
	a := float32(math.Pi / 2)

	r := Affine2D{}.Rotate(Point{}, a).Transform(p)
	if !eq(r, Pt(0, 1)) {
		t.Errorf("rotate transformation mismatch: have %v, want {0 1}", r)
	}
	i := Affine2D{}.Rotate(Point{}, a).Rotate(Point{}, -a).Transform(p)
	if !eq(i, p) {
		t.Errorf("rotate and opposite rotate mismatch: have %v, want %v", i, p)
	}
}

func TestTransformRotateAround(t *testing.T) {
	p := Pt(-1, -1)
	pt := Affine2D{}.Rotate(Pt(1, 1), -math.Pi/2).Transform(p)
	target := Pt(-1, 3)
	if !eq(pt, target) {
		t.Log(pt, "!=", target)
		t.Error("Rotate not as expected")
	}
}

func TestMulOrder(t *testing.T) {
	A := Affine2D{}.Offset(Pt(100, 100))
	B := Affine2D{}.Rotate(Point{}, math.Pi/2)

	T1 := Affine2D{}.Offset(Pt(100, 100)).Rotate(Point{}, math.Pi/2)
	T2 := B.Mul(A)

	p := Pt(1, 2)
	if !eq(T1.Transform(p), T2.Transform(p)) {
		t.Log(T1)
		t.Log(T2)
		t.Error("multiplication / transform order not as expected")
	}
	if want := Pt(-102, 101); !eq(T1.Transform(p), want) {
		t.Errorf("got %v, want %v", T1.Transform(p), want)
	}
}

func TestBounds(t *testing.T) {
	r := Bounds(Pt(1, 5), Pt(-2, 3), Pt(4, -1))
	if want := (Rectangle{Min: Pt(-2, -1), Max: Pt(4, 5)}); r != want {
		t.Errorf("got %v, want %v", r, want)
	}
	if r := Bounds(); r != (Rectangle{}) {
		t.Errorf("empty bounds: got %v", r)
	}
}
