// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"testing"
	"time"
)

func TestDecomposeQR(t *testing.T) {
	A := &matrix{
		rows: 3, cols: 3,
		data: []float32{
			12, 6, -4,
			-51, 167, 24,
			4, -68, -41,
		},
	}
	Q, Rt, ok := decomposeQR(A)
	if !ok {
		t.Fatal("decomposeQR failed")
	}
	R := Rt.transpose()
	QR := Q.mul(R)
	if !A.approxEqual(QR) {
		t.Log("A\n", A)
		t.Log("Q\n", Q)
		t.Log("R\n", R)
		t.Log("QR\n", QR)
		t.Fatal("Q*R not approximately equal to A")
	}
}

func TestFit(t *testing.T) {
	X := []float32{-1, 0, 1}
	Y := []float32{2, 0, 2}

	got, ok := polyFit(X, Y)
	if !ok {
		t.Fatal("polyFit failed")
	}
	want := coefficients{0, 0, 2}
	if !got.approxEqual(want) {
		t.Fatalf("polyFit: got %v want %v", got, want)
	}
}

func TestEstimateLinear(t *testing.T) {
	var e Extrapolation
	for i := 0; i < 8; i++ {
		ts := time.Duration(i) * 10 * time.Millisecond
		e.Sample(ts, 100*float32(ts.Seconds()))
	}
	est := e.Estimate()
	if !approxEqual(est.Velocity, 100) {
		t.Errorf("velocity: got %g, want 100", est.Velocity)
	}
	if !approxEqual(est.Distance, 7) {
		t.Errorf("distance: got %g, want 7", est.Distance)
	}
}

func TestEstimateTooFewSamples(t *testing.T) {
	var e Extrapolation
	e.Sample(0, 1)
	e.Sample(time.Millisecond, 2)
	if est := e.Estimate(); est != (Estimate{}) {
		t.Errorf("got %+v from two samples", est)
	}
}

func TestEstimatePauseResets(t *testing.T) {
	var e Extrapolation
	for i := 0; i < 5; i++ {
		e.Sample(time.Duration(i)*time.Millisecond, float32(i))
	}
	e.Sample(time.Second, 0)
	if n := e.Len(); n != 1 {
		t.Errorf("samples after pause: got %d, want 1", n)
	}
}

func TestHistoryWraps(t *testing.T) {
	var e Extrapolation
	for i := 0; i < historySize*2; i++ {
		ts := time.Duration(i) * 5 * time.Millisecond
		e.Sample(ts, -50*float32(ts.Seconds()))
	}
	if n := e.Len(); n != historySize {
		t.Fatalf("len: got %d, want %d", n, historySize)
	}
	if est := e.Estimate(); !approxEqual(est.Velocity, -50) {
		t.Errorf("velocity: got %g, want -50", est.Velocity)
	}
}
