// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"time"

	"gioui.org/x/pointerevents/io/pointer"
)

// Coalescer merges the pointermove events of a pointer that arrive
// within one frame into a single event. The owner of the frame clock
// pushes events as they arrive and flushes once per frame.
//
// Events for one pointer are never reordered: any event other than a
// move ends the current batch of its pointer.
type Coalescer struct {
	// Predict is how far ahead of a flushed move event predicted events
	// are extrapolated. Zero disables prediction.
	Predict time.Duration
	// Predictions is the number of predicted events per move event. Zero
	// means one.
	Predictions int

	batches    []batch
	predictors map[pointer.ID]*Predictor
}

type batch struct {
	id     pointer.ID
	events []pointer.Event
	// open batches accept more moves.
	open bool
}

// Push queues e until the next Flush.
func (c *Coalescer) Push(e pointer.Event) {
	if e.Type == pointer.Move {
		for i := len(c.batches) - 1; i >= 0; i-- {
			b := &c.batches[i]
			if b.id != e.PointerID {
				continue
			}
			if b.open {
				b.events = append(b.events, e)
				return
			}
			break
		}
	}
	c.batches = append(c.batches, batch{
		id:     e.PointerID,
		events: []pointer.Event{e},
		open:   e.Type == pointer.Move,
	})
}

// Pending returns the number of events Flush would return.
func (c *Coalescer) Pending() int {
	return len(c.batches)
}

// Flush returns one event per batch in the order the batches started.
// The latest event of a batch is returned with every event of the batch
// in CoalescedEvents.
func (c *Coalescer) Flush() []pointer.Event {
	if len(c.batches) == 0 {
		return nil
	}
	out := make([]pointer.Event, 0, len(c.batches))
	for _, b := range c.batches {
		out = append(out, c.merge(b))
	}
	for i := range c.batches {
		c.batches[i] = batch{}
	}
	c.batches = c.batches[:0]
	return out
}

func (c *Coalescer) merge(b batch) pointer.Event {
	e := b.events[len(b.events)-1]
	samples := make([]pointer.Event, len(b.events))
	for i, s := range b.events {
		s.CoalescedEvents = nil
		s.PredictedEvents = nil
		s.Coalesced = true
		samples[i] = s
	}
	e.CoalescedEvents = samples
	e.PredictedEvents = nil
	if c.Predict <= 0 {
		return e
	}
	switch e.Type {
	case pointer.Down, pointer.Move:
		p := c.predictor(e.PointerID)
		for _, s := range b.events {
			p.Sample(s)
		}
		if e.Type == pointer.Move {
			n := c.Predictions
			if n <= 0 {
				n = 1
			}
			e.PredictedEvents = p.Predict(c.Predict, n)
		}
	case pointer.Up, pointer.Cancel:
		delete(c.predictors, e.PointerID)
	}
	return e
}

func (c *Coalescer) predictor(id pointer.ID) *Predictor {
	if c.predictors == nil {
		c.predictors = make(map[pointer.ID]*Predictor)
	}
	p, ok := c.predictors[id]
	if !ok {
		p = new(Predictor)
		c.predictors[id] = p
	}
	return p
}
