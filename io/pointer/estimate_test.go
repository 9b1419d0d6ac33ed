// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"reflect"
	"testing"

	"gioui.org/x/pointerevents/f32"
)

func estimatedEvent(seq uint64, pressure float32, props ...string) Event {
	e := Event{
		PointerID:                           1,
		SequenceIndex:                       seq,
		Point:                               NewPoint(f32.Pt(5, 5), f32.Pt(5, 5), DefaultShape(), pressure, 0, 0, 0, 0),
		EstimatedProperties:                 NewProperties(props...),
		EstimatedPropertiesExpectingUpdates: NewProperties(props...),
	}
	e.Type = Move
	return e
}

func TestUpdateEstimated(t *testing.T) {
	e := estimatedEvent(5, 0.5, PropertyPressure)
	e.CoalescedEvents = []Event{e}
	shared := e.CoalescedEvents
	if !e.IsEstimated() {
		t.Fatal("event should be estimated")
	}
	correction := estimatedEvent(5, 0.8)
	if !e.UpdateEstimated(correction) {
		t.Fatal("correction with matching sequence failed")
	}
	if got := e.Point.Pressure(); !approxEqual(got, 0.8) {
		t.Errorf("pressure: got %g, want 0.8", got)
	}
	if e.EstimatedPropertiesExpectingUpdates.Contains(PropertyPressure) {
		t.Errorf("pressure still expecting updates")
	}
	if e.IsEstimated() {
		t.Errorf("event still estimated after all corrections: %v", e.EstimatedProperties)
	}
	if got := e.CoalescedEvents[0].Point.Pressure(); !approxEqual(got, 0.8) {
		t.Errorf("coalesced copy not corrected: pressure %g", got)
	}
	if got := shared[0].Point.Pressure(); !approxEqual(got, 0.5) {
		t.Errorf("correction leaked into a shared coalesced list: pressure %g", got)
	}
	if e.UpdateEstimated(correction) {
		t.Errorf("second correction should find nothing to update")
	}
}

func TestUpdateEstimatedSequenceMismatch(t *testing.T) {
	e := estimatedEvent(5, 0.5, PropertyPressure)
	before := e
	if e.UpdateEstimated(estimatedEvent(6, 0.8)) {
		t.Fatal("correction with a different sequence succeeded")
	}
	if !reflect.DeepEqual(e, before) {
		t.Errorf("failed correction modified the event")
	}
}

func TestUpdateEstimatedPartial(t *testing.T) {
	e := estimatedEvent(9, 0.5, PropertyPosition, PropertyTiltX)
	// Tilt is still an estimate in the correction.
	c := Event{
		SequenceIndex:       9,
		Point:               NewPoint(f32.Pt(7, 8), f32.Pt(7.5, 8.5), DefaultShape(), 0, 0, 0, 30, 0),
		EstimatedProperties: NewProperties(PropertyTiltX),
	}
	if !e.UpdateEstimated(c) {
		t.Fatal("position correction failed")
	}
	if got := e.Position(); got != f32.Pt(7, 8) {
		t.Errorf("position: got %v", got)
	}
	if got := e.Point.PrecisePosition(); got != f32.Pt(7.5, 8.5) {
		t.Errorf("precise position: got %v", got)
	}
	if e.Point.TiltX() != 0 {
		t.Errorf("estimated tilt was copied from the correction")
	}
	if got := e.EstimatedPropertiesExpectingUpdates; !reflect.DeepEqual(got, NewProperties(PropertyTiltX)) {
		t.Errorf("expecting updates: got %v", got)
	}
	if !e.IsEstimated() {
		t.Errorf("tilt is still estimated")
	}
	c.EstimatedProperties = nil
	if !e.UpdateEstimated(c) {
		t.Fatal("tilt correction failed")
	}
	if e.Point.TiltX() != 30 || e.Point.Azimuth() != 0 || !approxEqual(e.Point.Altitude(), 60) {
		t.Errorf("tilt: got %v azimuth %g altitude %g", e.Point, e.Point.Azimuth(), e.Point.Altitude())
	}
	if e.IsEstimated() {
		t.Errorf("event still estimated")
	}
}

func TestUpdateEstimatedNotExpected(t *testing.T) {
	// Estimated but no update expected.
	e := estimatedEvent(1, 0.5)
	e.EstimatedProperties = NewProperties(PropertyPressure)
	if e.UpdateEstimated(estimatedEvent(1, 0.9)) {
		t.Errorf("updated a property that expects no correction")
	}
	if !e.IsEstimated() {
		t.Errorf("estimate without pending correction should remain")
	}
}
