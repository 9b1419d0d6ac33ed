// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"golang.org/x/exp/slices"
)

// UpdateEstimated applies the measured values of correction to the
// estimated properties of e. The correction must have the same
// SequenceIndex as e.
//
// A property is corrected if it is both estimated and expecting an
// update in e, and correction doesn't itself mark it as estimated.
// Corrected properties are removed from EstimatedProperties and
// EstimatedPropertiesExpectingUpdates. Coalesced copies of e with the
// same sequence index are corrected as well.
//
// UpdateEstimated reports whether any property was corrected. If not, e
// is left unchanged.
func (e *Event) UpdateEstimated(correction Event) bool {
	if e.SequenceIndex != correction.SequenceIndex {
		return false
	}
	pt, updated := correctPoint(*e, correction)
	if len(updated) == 0 {
		return false
	}
	e.apply(pt, updated)
	if len(e.CoalescedEvents) > 0 {
		coalesced := slices.Clone(e.CoalescedEvents)
		for i := range coalesced {
			c := &coalesced[i]
			if c.SequenceIndex != e.SequenceIndex {
				continue
			}
			if pt, updated := correctPoint(*c, correction); len(updated) > 0 {
				c.apply(pt, updated)
			}
		}
		e.CoalescedEvents = coalesced
	}
	tracer().Debugf("pointer %d: corrected %v at sequence %d", e.PointerID, updated, e.SequenceIndex)
	return true
}

func (e *Event) apply(pt Point, updated Properties) {
	e.Point = pt
	e.EstimatedProperties = e.EstimatedProperties.Without(updated...)
	e.EstimatedPropertiesExpectingUpdates = e.EstimatedPropertiesExpectingUpdates.Without(updated...)
}

// correctPoint returns the geometry of e with the corrections from c
// applied, along with the corrected property names.
func correctPoint(e, c Event) (Point, Properties) {
	p := e.Point
	pos, precise := p.Position(), p.PrecisePosition()
	pressure := p.Pressure()
	tiltX, tiltY := p.TiltX(), p.TiltY()
	var updated []string
	for _, name := range e.EstimatedPropertiesExpectingUpdates {
		if !e.EstimatedProperties.Contains(name) || c.EstimatedProperties.Contains(name) {
			continue
		}
		switch name {
		case PropertyPosition:
			pos, precise = c.Point.Position(), c.Point.PrecisePosition()
		case PropertyPressure:
			pressure = c.Point.Pressure()
		case PropertyTiltX:
			tiltX = c.Point.TiltX()
		case PropertyTiltY:
			tiltY = c.Point.TiltY()
		default:
			tracer().Debugf("pointer %d: no correction for property %q", e.PointerID, name)
			continue
		}
		updated = append(updated, name)
	}
	if len(updated) == 0 {
		return p, nil
	}
	return NewPoint(pos, precise, p.Shape(), pressure, p.TangentialPressure(), p.Twist(), tiltX, tiltY), NewProperties(updated...)
}
