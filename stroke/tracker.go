// SPDX-License-Identifier: Unlicense OR MIT

package stroke

import (
	"time"

	"gioui.org/x/pointerevents/io/pointer"
	"github.com/hashicorp/golang-lru/simplelru"
	"golang.org/x/exp/slices"
)

// Tracker assembles the strokes of every pointer from a stream of
// events. A new stroke starts with the first event of a pointer that
// has no open stroke.
//
// The strokes of at most Settings.MaxPointers pointers are kept. When
// another pointer appears, the strokes of the pointer with the oldest
// activity are dropped.
type Tracker struct {
	timeout time.Duration
	strokes map[pointer.ID][]*Stroke
	// recent orders pointers by activity.
	recent *simplelru.LRU
}

// NewTracker returns a Tracker configured by s. Zero fields of s take
// their default values.
func NewTracker(s Settings) *Tracker {
	def := DefaultSettings()
	if s.TimeoutMillis <= 0 {
		s.TimeoutMillis = def.TimeoutMillis
	}
	if s.MaxPointers <= 0 {
		s.MaxPointers = def.MaxPointers
	}
	t := &Tracker{
		timeout: s.Timeout(),
		strokes: make(map[pointer.ID][]*Stroke),
	}
	recent, err := simplelru.NewLRU(s.MaxPointers, func(key, _ interface{}) {
		delete(t.strokes, key.(pointer.ID))
	})
	if err != nil {
		panic(err)
	}
	t.recent = recent
	return t
}

// Add adds e to the strokes of its pointer, and reports whether e was
// used. Pointerupdate events correct the events of existing strokes.
// Events of other types than down, move, up, cancel and update are
// ignored.
func (t *Tracker) Add(e pointer.Event) bool {
	switch e.Type {
	case pointer.Update:
		return t.update(e)
	case pointer.Down, pointer.Move, pointer.Up, pointer.Cancel:
	default:
		return false
	}
	strokes := t.strokes[e.PointerID]
	var s *Stroke
	if n := len(strokes); n > 0 && !strokes[n-1].IsFinished() {
		s = strokes[n-1]
	} else {
		s = new(Stroke)
		strokes = append(strokes, s)
	}
	if !s.Add(e) {
		return false
	}
	t.strokes[e.PointerID] = strokes
	t.recent.Add(e.PointerID, nil)
	return true
}

func (t *Tracker) update(e pointer.Event) bool {
	strokes := t.strokes[e.PointerID]
	for i := len(strokes) - 1; i >= 0; i-- {
		s := strokes[i]
		if e.SequenceIndex < s.MinSequenceIndex() || e.SequenceIndex > s.MaxSequenceIndex() {
			continue
		}
		if s.Update(e) {
			return true
		}
	}
	return false
}

// PointerEvent adds e and never consumes it, so a Tracker can observe
// the events of a router.
func (t *Tracker) PointerEvent(e pointer.Event) bool {
	t.Add(e)
	return false
}

// Evict drops the strokes whose most recent event is older than the
// timeout at time now, and returns the number of dropped strokes.
func (t *Tracker) Evict(now time.Duration) int {
	n := 0
	for id, strokes := range t.strokes {
		kept := strokes[:0]
		for _, s := range strokes {
			if now-s.MaxTime() > t.timeout {
				n++
				continue
			}
			kept = append(kept, s)
		}
		if len(kept) == 0 {
			t.recent.Remove(id)
			delete(t.strokes, id)
			continue
		}
		t.strokes[id] = kept
	}
	if n > 0 {
		tracer().Debugf("evicted %d strokes", n)
	}
	return n
}

// Strokes returns the strokes of the pointer id, oldest first.
func (t *Tracker) Strokes(id pointer.ID) []*Stroke {
	return slices.Clone(t.strokes[id])
}

// Current returns the most recent stroke of the pointer id.
func (t *Tracker) Current(id pointer.ID) (*Stroke, bool) {
	strokes := t.strokes[id]
	if len(strokes) == 0 {
		return nil, false
	}
	return strokes[len(strokes)-1], true
}

// PointerIDs returns the pointers with strokes in increasing order.
func (t *Tracker) PointerIDs() []pointer.ID {
	ids := make([]pointer.ID, 0, len(t.strokes))
	for id := range t.strokes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of strokes.
func (t *Tracker) Len() int {
	n := 0
	for _, strokes := range t.strokes {
		n += len(strokes)
	}
	return n
}

// Clear drops every stroke.
func (t *Tracker) Clear() {
	t.recent.Purge()
	for id := range t.strokes {
		delete(t.strokes, id)
	}
}
