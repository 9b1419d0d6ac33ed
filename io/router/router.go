// SPDX-License-Identifier: Unlicense OR MIT

/*
Package router dispatches pointer events to prioritized handlers.

A Router delivers every event to the generic handlers registered with
RegisterEvent, and then to the handlers of the event's type registered
with Register. Handlers run in ascending priority order and the first
handler to consume an event ends its delivery.
*/
package router

import (
	"reflect"

	"gioui.org/x/pointerevents/io/event"
	"gioui.org/x/pointerevents/io/input"
	"gioui.org/x/pointerevents/io/pointer"
	"golang.org/x/exp/slices"
)

// Handler receives pointer events by type. A method returns true to
// consume the event.
type Handler interface {
	PointerDown(e pointer.Event) bool
	PointerUp(e pointer.Event) bool
	PointerMove(e pointer.Event) bool
	PointerCancel(e pointer.Event) bool
	PointerUpdate(e pointer.Event) bool
}

// EventHandler receives every pointer event.
type EventHandler interface {
	PointerEvent(e pointer.Event) bool
}

// HandlerFunc adapts functions to Handler. Nil functions don't consume
// their events. Register a *HandlerFunc to be able to unregister it.
type HandlerFunc struct {
	Down, Up, Move, Cancel, Update func(e pointer.Event) bool
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(e pointer.Event) bool

// Router dispatches pointer events. The zero value is ready to use. A
// Router must not be used concurrently.
type Router struct {
	// Normalizer converts the raw events passed to Mouse and Touch.
	Normalizer input.Normalizer

	generic channel
	down    channel
	up      channel
	move    channel
	cancel  channel
	update  channel
}

type channel []listener

type listener struct {
	prio  int
	owner interface{}
	fn    func(e pointer.Event) bool
}

// Register subscribes h to the down, up, move, cancel and update events.
// Handlers with lower priority run first; handlers with equal priority
// run in registration order.
func (r *Router) Register(h Handler, prio int) {
	r.down.add(listener{prio: prio, owner: h, fn: h.PointerDown})
	r.up.add(listener{prio: prio, owner: h, fn: h.PointerUp})
	r.move.add(listener{prio: prio, owner: h, fn: h.PointerMove})
	r.cancel.add(listener{prio: prio, owner: h, fn: h.PointerCancel})
	r.update.add(listener{prio: prio, owner: h, fn: h.PointerUpdate})
}

// Unregister removes every registration of h made with Register.
func (r *Router) Unregister(h Handler) {
	for _, c := range r.channels() {
		c.remove(h)
	}
}

// RegisterEvent subscribes h to every event, ahead of the handlers
// registered with Register.
func (r *Router) RegisterEvent(h EventHandler, prio int) {
	r.generic.add(listener{prio: prio, owner: h, fn: h.PointerEvent})
}

// UnregisterEvent removes every registration of h made with
// RegisterEvent.
func (r *Router) UnregisterEvent(h EventHandler) {
	r.generic.remove(h)
}

// Queue delivers e and reports whether a handler consumed it.
func (r *Router) Queue(e pointer.Event) bool {
	if r.generic.deliver(e) {
		return true
	}
	c := r.channel(e.Type)
	if c == nil {
		return false
	}
	return c.deliver(e)
}

// Mouse normalizes and delivers a raw mouse event.
func (r *Router) Mouse(src event.Tag, e input.MouseEvent) bool {
	return r.Queue(r.Normalizer.Mouse(src, e))
}

// Touch normalizes and delivers a raw touch or pen event.
func (r *Router) Touch(src event.Tag, e input.TouchEvent) bool {
	return r.Queue(r.Normalizer.Touch(src, e))
}

// CancelAll delivers a pointercancel event for every active touch and pen
// contact.
func (r *Router) CancelAll(src event.Tag) {
	for _, e := range r.Normalizer.CancelAll(src) {
		r.Queue(e)
	}
}

func (r *Router) channel(typ string) *channel {
	switch typ {
	case pointer.Down:
		return &r.down
	case pointer.Up:
		return &r.up
	case pointer.Move:
		return &r.move
	case pointer.Cancel:
		return &r.cancel
	case pointer.Update:
		return &r.update
	default:
		return nil
	}
}

func (r *Router) channels() []*channel {
	return []*channel{&r.down, &r.up, &r.move, &r.cancel, &r.update}
}

func (c *channel) add(l listener) {
	i := len(*c)
	for j, o := range *c {
		if o.prio > l.prio {
			i = j
			break
		}
	}
	*c = slices.Insert(*c, i, l)
}

func (c *channel) remove(owner interface{}) {
	n := 0
	for _, l := range *c {
		if !sameOwner(l.owner, owner) {
			(*c)[n] = l
			n++
		}
	}
	for i := n; i < len(*c); i++ {
		(*c)[i] = listener{}
	}
	*c = (*c)[:n]
}

// deliver calls the listeners of c in order until one consumes e.
// Listeners added or removed during delivery take effect for the next
// event.
func (c channel) deliver(e pointer.Event) bool {
	for _, l := range slices.Clone(c) {
		if l.fn(e) {
			tracer().Debugf("%s for pointer %d consumed at priority %d", e.Type, e.PointerID, l.prio)
			return true
		}
	}
	return false
}

// sameOwner is like a == b but false for values that can't be
// compared.
func sameOwner(a, b interface{}) bool {
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	return a == b
}

func (h *HandlerFunc) PointerDown(e pointer.Event) bool { return call(h.Down, e) }
func (h *HandlerFunc) PointerUp(e pointer.Event) bool { return call(h.Up, e) }
func (h *HandlerFunc) PointerMove(e pointer.Event) bool { return call(h.Move, e) }
func (h *HandlerFunc) PointerCancel(e pointer.Event) bool { return call(h.Cancel, e) }
func (h *HandlerFunc) PointerUpdate(e pointer.Event) bool { return call(h.Update, e) }

func call(f func(e pointer.Event) bool, e pointer.Event) bool {
	return f != nil && f(e)
}

func (f EventHandlerFunc) PointerEvent(e pointer.Event) bool {
	return f(e)
}
