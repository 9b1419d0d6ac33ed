// SPDX-License-Identifier: Unlicense OR MIT

/*
Package fling estimates the velocity of a pointer from its recent
samples by fitting a quadratic polynomial with least squares.
*/
package fling

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Extrapolation computes a 1-dimensional velocity estimate
// for a set of timestamped points using the least squares
// fit of a 2nd order polynomial. The same method is used
// by Android.
type Extrapolation struct {
	// Index of the next sample.
	idx int
	// Circular buffer of samples.
	samples []sample
	// Scratch space for the fit.
	times  []float32
	values []float32
}

// Estimate is the result of an Extrapolation.
type Estimate struct {
	// Velocity in units per second at the time of the most
	// recent sample.
	Velocity float32
	// Distance covered by the samples used for the estimate.
	Distance float32
}

type sample struct {
	t time.Duration
	v float32
}

type matrix struct {
	rows, cols int
	data       []float32
}

type coefficients [degree + 1]float32

const (
	degree       = 2
	historySize  = 20
	maxSampleAge = 100 * time.Millisecond
	// Pauses longer than this reset the estimate.
	maxPause = 40 * time.Millisecond
)

// Sample adds a sample of value v at time t.
func (e *Extrapolation) Sample(t time.Duration, v float32) {
	if len(e.samples) > 0 && t-e.lastSample().t > maxPause {
		e.Reset()
	}
	s := sample{t: t, v: v}
	if len(e.samples) < historySize {
		e.samples = append(e.samples, s)
		return
	}
	e.samples[e.idx] = s
	e.idx = (e.idx + 1) % historySize
}

// Reset forgets all samples.
func (e *Extrapolation) Reset() {
	e.idx = 0
	e.samples = e.samples[:0]
}

// Len returns the number of samples.
func (e *Extrapolation) Len() int {
	return len(e.samples)
}

func (e *Extrapolation) lastSample() sample {
	i := e.idx - 1
	if i < 0 {
		i = len(e.samples) - 1
	}
	return e.samples[i]
}

// Estimate the velocity at the time of the most recent sample.
func (e *Extrapolation) Estimate() Estimate {
	if len(e.samples) <= degree {
		return Estimate{}
	}
	last := e.lastSample()
	e.times = e.times[:0]
	e.values = e.values[:0]
	var first sample
	// Walk the samples from newest to oldest.
	for i := 0; i < len(e.samples); i++ {
		j := (e.idx - 1 - i + 2*len(e.samples)) % len(e.samples)
		s := e.samples[j]
		age := last.t - s.t
		if age > maxSampleAge {
			break
		}
		first = s
		e.times = append(e.times, float32(-age.Seconds()))
		e.values = append(e.values, s.v-last.v)
	}
	if len(e.times) <= degree {
		return Estimate{}
	}
	coef, ok := polyFit(e.times, e.values)
	if !ok {
		return Estimate{}
	}
	return Estimate{
		Velocity: coef[1],
		Distance: last.v - first.v,
	}
}

// polyFit finds the least squares fit of a degree 2 polynomial
// to the points (X[i], Y[i]).
func polyFit(X, Y []float32) (coefficients, bool) {
	if len(X) != len(Y) || len(X) <= degree {
		return coefficients{}, false
	}
	m := len(X)
	// The Vandermonde matrix of X.
	A := newMatrix(m, degree+1)
	for i, x := range X {
		xn := float32(1)
		for j := 0; j <= degree; j++ {
			A.set(i, j, xn)
			xn *= x
		}
	}
	Q, Rt, ok := decomposeQR(A)
	if !ok {
		return coefficients{}, false
	}
	// Solve R*c = Q^T*Y by back substitution.
	var qty coefficients
	for j := 0; j <= degree; j++ {
		var sum float64
		for i := 0; i < m; i++ {
			sum += float64(Q.get(i, j)) * float64(Y[i])
		}
		qty[j] = float32(sum)
	}
	var c coefficients
	for i := degree; i >= 0; i-- {
		sum := float64(qty[i])
		for j := i + 1; j <= degree; j++ {
			// R[i][j] == Rt[j][i].
			sum -= float64(Rt.get(j, i)) * float64(c[j])
		}
		c[i] = float32(sum / float64(Rt.get(i, i)))
	}
	return c, true
}

// decomposeQR computes the QR decomposition of A with the modified
// Gram-Schmidt process. It returns Q and the transpose of R.
func decomposeQR(A *matrix) (*matrix, *matrix, bool) {
	if A.rows < A.cols {
		return nil, nil, false
	}
	m, n := A.rows, A.cols
	Q := newMatrix(m, n)
	Rt := newMatrix(n, n)
	cols := make([][]float64, n)
	for j := range cols {
		cols[j] = make([]float64, m)
		for i := 0; i < m; i++ {
			cols[j][i] = float64(A.get(i, j))
		}
	}
	for j := 0; j < n; j++ {
		norm := 0.0
		for _, v := range cols[j] {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm < 1e-9 {
			return nil, nil, false
		}
		for i := range cols[j] {
			cols[j][i] /= norm
			Q.set(i, j, float32(cols[j][i]))
		}
		Rt.set(j, j, float32(norm))
		for k := j + 1; k < n; k++ {
			dot := 0.0
			for i := 0; i < m; i++ {
				dot += cols[j][i] * cols[k][i]
			}
			for i := 0; i < m; i++ {
				cols[k][i] -= dot * cols[j][i]
			}
			Rt.set(k, j, float32(dot))
		}
	}
	return Q, Rt, true
}

func newMatrix(rows, cols int) *matrix {
	return &matrix{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

func (m *matrix) get(row, col int) float32 {
	return m.data[row*m.cols+col]
}

func (m *matrix) set(row, col int, v float32) {
	m.data[row*m.cols+col] = v
}

func (m *matrix) transpose() *matrix {
	t := newMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.set(j, i, m.get(i, j))
		}
	}
	return t
}

func (m *matrix) mul(m2 *matrix) *matrix {
	if m.cols != m2.rows {
		panic("mismatched matrices")
	}
	r := newMatrix(m.rows, m2.cols)
	for i := 0; i < r.rows; i++ {
		for j := 0; j < r.cols; j++ {
			var v float32
			for k := 0; k < m.cols; k++ {
				v += m.get(i, k) * m2.get(k, j)
			}
			r.set(i, j, v)
		}
	}
	return r
}

func (m *matrix) approxEqual(m2 *matrix) bool {
	if m.rows != m2.rows || m.cols != m2.cols {
		return false
	}
	for i, v := range m.data {
		if !approxEqual(v, m2.data[i]) {
			return false
		}
	}
	return true
}

func (m *matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconvFloat(m.get(i, j)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c coefficients) approxEqual(c2 coefficients) bool {
	for i, v := range c {
		if !approxEqual(v, c2[i]) {
			return false
		}
	}
	return true
}

func approxEqual(a, b float32) bool {
	const epsilon = 1e-3
	d := math.Abs(float64(a - b))
	return d <= epsilon*math.Max(1, math.Abs(float64(a)))
}

func strconvFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', 5, 32)
}
