// SPDX-License-Identifier: Unlicense OR MIT

/*
Package stroke groups the pointer events of a contact into strokes.

A Stroke holds the events of one pointer from its first event until it
is released or cancelled. A Tracker assembles strokes for every pointer
of a stream of events and forgets strokes that saw no events for a
while.
*/
package stroke

import (
	"time"

	"gioui.org/x/pointerevents/io/pointer"
	"golang.org/x/exp/slices"
)

// Stroke is the ordered sequence of events of one pointer. The zero
// value is an empty, open stroke.
type Stroke struct {
	events    []pointer.Event
	id        pointer.ID
	finished  bool
	cancelled bool
	// expecting counts the events still expecting updates.
	expecting int

	minSeq, maxSeq   uint64
	minTime, maxTime time.Duration
}

// Add appends e to the stroke. The first event sets the pointer id of
// the stroke. Add fails without modifying the stroke if e belongs to
// another pointer or the stroke is finished.
func (s *Stroke) Add(e pointer.Event) bool {
	if s.finished {
		return false
	}
	if len(s.events) == 0 {
		s.id = e.PointerID
		s.minSeq, s.maxSeq = e.SequenceIndex, e.SequenceIndex
		s.minTime, s.maxTime = e.Time, e.Time
	} else {
		if e.PointerID != s.id {
			tracer().Debugf("stroke of pointer %d: rejected event of pointer %d", s.id, e.PointerID)
			return false
		}
		if e.SequenceIndex < s.minSeq {
			s.minSeq = e.SequenceIndex
		}
		if e.SequenceIndex > s.maxSeq {
			s.maxSeq = e.SequenceIndex
		}
		if e.Time < s.minTime {
			s.minTime = e.Time
		}
		if e.Time > s.maxTime {
			s.maxTime = e.Time
		}
	}
	s.events = append(s.events, e)
	if e.IsExpectingUpdates() {
		s.expecting++
	}
	switch e.Type {
	case pointer.Up:
		s.finished = true
	case pointer.Cancel:
		s.finished = true
		s.cancelled = true
	}
	return true
}

// Update applies the corrections of a pointerupdate event to the event
// of the stroke with the same sequence index. Finished strokes accept
// updates.
func (s *Stroke) Update(correction pointer.Event) bool {
	if len(s.events) == 0 || correction.PointerID != s.id {
		return false
	}
	for i := len(s.events) - 1; i >= 0; i-- {
		e := &s.events[i]
		if e.SequenceIndex != correction.SequenceIndex || !e.IsExpectingUpdates() {
			continue
		}
		if !e.UpdateEstimated(correction) {
			return false
		}
		if !e.IsExpectingUpdates() {
			s.expecting--
		}
		return true
	}
	return false
}

// PointerID returns the pointer of the stroke, or 0 if it is empty.
func (s *Stroke) PointerID() pointer.ID {
	return s.id
}

func (s *Stroke) MinSequenceIndex() uint64 { return s.minSeq }
func (s *Stroke) MaxSequenceIndex() uint64 { return s.maxSeq }
func (s *Stroke) MinTime() time.Duration { return s.minTime }
func (s *Stroke) MaxTime() time.Duration { return s.maxTime }

// IsFinished reports whether the stroke ended with a pointerup or a
// pointercancel event.
func (s *Stroke) IsFinished() bool {
	return s.finished
}

// IsCancelled reports whether the stroke ended with a pointercancel
// event.
func (s *Stroke) IsCancelled() bool {
	return s.cancelled
}

// IsExpectingUpdates reports whether any event of the stroke waits for
// corrections of its estimated properties.
func (s *Stroke) IsExpectingUpdates() bool {
	return s.expecting > 0
}

func (s *Stroke) Len() int {
	return len(s.events)
}

func (s *Stroke) Empty() bool {
	return len(s.events) == 0
}

// Events returns a copy of the events of the stroke.
func (s *Stroke) Events() []pointer.Event {
	return slices.Clone(s.events)
}

// Last returns the most recent event of the stroke.
func (s *Stroke) Last() (pointer.Event, bool) {
	if len(s.events) == 0 {
		return pointer.Event{}, false
	}
	return s.events[len(s.events)-1], true
}
