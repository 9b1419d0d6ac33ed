// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"time"

	"gioui.org/x/pointerevents/f32"
	"gioui.org/x/pointerevents/internal/fling"
	"gioui.org/x/pointerevents/io/pointer"
)

// Predictor extrapolates the future positions of a pointer from its
// recent events.
type Predictor struct {
	x, y fling.Extrapolation
	last pointer.Event
	n    int
}

// Sample adds e to the history of the pointer.
func (p *Predictor) Sample(e pointer.Event) {
	pos := e.Position()
	p.x.Sample(e.Time, pos.X)
	p.y.Sample(e.Time, pos.Y)
	p.last = e
	p.n++
}

// Predict returns count events evenly spaced over the duration ahead
// of the most recent sample, extrapolated with the estimated velocity
// of the pointer. It returns nil if the pointer isn't moving or there
// are too few samples.
func (p *Predictor) Predict(ahead time.Duration, count int) []pointer.Event {
	if p.n == 0 || ahead <= 0 || count <= 0 {
		return nil
	}
	vx, vy := p.x.Estimate().Velocity, p.y.Estimate().Velocity
	if vx == 0 && vy == 0 {
		return nil
	}
	v := f32.Pt(vx, vy)
	base := p.last
	base.CoalescedEvents = nil
	base.PredictedEvents = nil
	base.Coalesced = false
	base.Predicted = true
	base.EstimatedProperties = nil
	base.EstimatedPropertiesExpectingUpdates = nil
	pt := base.Point
	events := make([]pointer.Event, count)
	for i := range events {
		dt := ahead * time.Duration(i+1) / time.Duration(count)
		pos := pt.Position().Add(v.Mul(float32(dt.Seconds())))
		precise := pt.PrecisePosition().Add(v.Mul(float32(dt.Seconds())))
		e := base
		e.Time = (base.Time + dt).Truncate(time.Microsecond)
		e.Point = pointer.NewPoint(pos, precise, pt.Shape(), pt.Pressure(), pt.TangentialPressure(), pt.Twist(), pt.TiltX(), pt.TiltY())
		events[i] = e
	}
	return events
}
