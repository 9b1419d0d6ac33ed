// SPDX-License-Identifier: Unlicense OR MIT

package router

import (
	"math"

	"gioui.org/x/pointerevents/io/pointer"
	"github.com/hashicorp/golang-lru/simplelru"
)

// DefaultPending is the default number of events a Reconciler keeps.
const DefaultPending = 256

// Reconciler remembers the events delivered by a Router that expect
// updates to their estimated properties, and delivers each correction
// as a pointerupdate event.
type Reconciler struct {
	r       *Router
	pending *simplelru.LRU
}

type pendingKey struct {
	id  pointer.ID
	seq uint64
}

// NewReconciler returns a Reconciler watching the events delivered by r.
// At most size events are kept, forgetting the least recently delivered
// or corrected first. A size <= 0 means DefaultPending.
func NewReconciler(r *Router, size int) *Reconciler {
	if size <= 0 {
		size = DefaultPending
	}
	pending, err := simplelru.NewLRU(size, func(key, _ interface{}) {
		k := key.(pendingKey)
		tracer().Debugf("dropping uncorrected event %d of pointer %d", k.seq, k.id)
	})
	if err != nil {
		// Only reachable with a non-positive size.
		panic(err)
	}
	rc := &Reconciler{r: r, pending: pending}
	// Watch ahead of every other handler, so consumed events are seen
	// too.
	r.RegisterEvent(rc, math.MinInt)
	return rc
}

// PointerEvent implements EventHandler. It never consumes e.
func (rc *Reconciler) PointerEvent(e pointer.Event) bool {
	if e.Type == pointer.Update {
		return false
	}
	if e.IsExpectingUpdates() {
		rc.pending.Add(pendingKey{e.PointerID, e.SequenceIndex}, e)
	}
	for _, c := range e.CoalescedEvents {
		if c.SequenceIndex != e.SequenceIndex && c.IsExpectingUpdates() {
			rc.pending.Add(pendingKey{c.PointerID, c.SequenceIndex}, c)
		}
	}
	return false
}

// Correct applies correction to the delivered event of the same pointer
// and sequence index and delivers the result as a pointerupdate event. It
// reports whether such an event was waiting for the correction.
func (rc *Reconciler) Correct(correction pointer.Event) bool {
	k := pendingKey{correction.PointerID, correction.SequenceIndex}
	v, ok := rc.pending.Get(k)
	if !ok {
		return false
	}
	e := v.(pointer.Event)
	if !e.UpdateEstimated(correction) {
		return false
	}
	if e.IsExpectingUpdates() {
		rc.pending.Add(k, e)
	} else {
		rc.pending.Remove(k)
	}
	rc.r.Queue(e.WithType(pointer.Update))
	return true
}

// Pending returns the number of events waiting for corrections.
func (rc *Reconciler) Pending() int {
	return rc.pending.Len()
}

// Unwatch unregisters rc from its Router and forgets every pending
// event.
func (rc *Reconciler) Unwatch() {
	rc.r.UnregisterEvent(rc)
	rc.pending.Purge()
}
