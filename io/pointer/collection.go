// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Collection stores events in the order they were added and indexes
// them by pointer id. The zero value is an empty Collection.
type Collection struct {
	events []Event
	// index maps pointer ids to the positions of their events in
	// events, in increasing order.
	index map[ID][]int
}

// Len returns the number of events.
func (c *Collection) Len() int {
	return len(c.events)
}

// Empty reports whether c contains no events.
func (c *Collection) Empty() bool {
	return len(c.events) == 0
}

// Clear removes all events.
func (c *Collection) Clear() {
	c.events = nil
	c.index = nil
}

// NumPointers returns the number of distinct pointer ids.
func (c *Collection) NumPointers() int {
	return len(c.index)
}

// HasPointerID reports whether c contains events for id.
func (c *Collection) HasPointerID(id ID) bool {
	_, ok := c.index[id]
	return ok
}

// PointerIDs returns the pointer ids in c in increasing order.
func (c *Collection) PointerIDs() []ID {
	ids := maps.Keys(c.index)
	slices.Sort(ids)
	return ids
}

// Add appends e.
func (c *Collection) Add(e Event) {
	if c.index == nil {
		c.index = make(map[ID][]int)
	}
	c.events = append(c.events, e)
	c.index[e.PointerID] = append(c.index[e.PointerID], len(c.events)-1)
}

// RemovePointerID removes every event for id. Removing an id without
// events does nothing.
func (c *Collection) RemovePointerID(id ID) {
	if _, ok := c.index[id]; !ok {
		return
	}
	kept := c.events[:0]
	for _, e := range c.events {
		if e.PointerID != id {
			kept = append(kept, e)
		}
	}
	// Clear the tail so removed events don't linger in the backing array.
	for i := len(kept); i < len(c.events); i++ {
		c.events[i] = Event{}
	}
	c.events = kept
	c.reindex()
}

func (c *Collection) reindex() {
	c.index = make(map[ID][]int)
	for i, e := range c.events {
		c.index[e.PointerID] = append(c.index[e.PointerID], i)
	}
}

// Events returns a copy of all events in insertion order.
func (c *Collection) Events() []Event {
	return slices.Clone(c.events)
}

// EventsForPointerID returns the events for id in insertion order.
func (c *Collection) EventsForPointerID(id ID) []Event {
	idx := c.index[id]
	if len(idx) == 0 {
		return nil
	}
	events := make([]Event, len(idx))
	for i, j := range idx {
		events[i] = c.events[j]
	}
	return events
}

// First returns the first event for id.
func (c *Collection) First(id ID) (Event, bool) {
	idx := c.index[id]
	if len(idx) == 0 {
		return Event{}, false
	}
	return c.events[idx[0]], true
}

// Last returns the most recent event for id.
func (c *Collection) Last(id ID) (Event, bool) {
	idx := c.index[id]
	if len(idx) == 0 {
		return Event{}, false
	}
	return c.events[idx[len(idx)-1]], true
}
