// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"math"
	"time"

	"gioui.org/x/pointerevents/f32"
	"gioui.org/x/pointerevents/io/event"
	"gioui.org/x/pointerevents/io/key"
	"gioui.org/x/pointerevents/io/pointer"
	"golang.org/x/exp/slices"
)

// MouseKind is the kind of a raw mouse event.
type MouseKind uint8

const (
	MouseMove MouseKind = iota
	// MouseDrag is a move with at least one button pressed.
	MouseDrag
	MousePress
	MouseRelease
	MouseScroll
	MouseEnter
	MouseLeave
)

// MouseEvent is a mouse event as reported by a window system.
type MouseEvent struct {
	Kind     MouseKind
	Position f32.Point
	// Button is the button that changed state, in the numbering of
	// pointer.Event.Button, or pointer.NoButton.
	Button    int16
	Buttons   pointer.Buttons
	Modifiers key.Modifiers
	Scroll    f32.Point
}

// TouchKind is the kind of a raw touch event.
type TouchKind uint8

const (
	TouchDown TouchKind = iota
	TouchMove
	TouchUp
	TouchCancel
	TouchDoubleTap
)

// Tool is the object in contact with a touch surface.
type Tool uint8

const (
	ToolFinger Tool = iota
	ToolPen
	ToolEraser
)

// TouchEvent is a touch or pen event as reported by a window system or
// input device.
type TouchEvent struct {
	Kind     TouchKind
	DeviceID int64
	// Slot is the device specific index of the contact.
	Slot     int
	Tool     Tool
	Position f32.Point
	// Pressure in [0, 1]. NaN or values <= 0 mean the device doesn't
	// report pressure.
	Pressure float32
	// Width and Height are the major and minor axes of the contact
	// ellipse, rotated by Angle degrees. Zero if not reported.
	Width, Height float32
	Angle         float32
	// Pen orientation in degrees.
	TiltX, TiltY, Twist float32
	// Sequence is a hardware sequence number, or 0.
	Sequence uint64
	// Buttons are extra buttons held, such as a pen barrel button.
	Buttons   pointer.Buttons
	Modifiers key.Modifiers
}

// MousePointerID is the pointer id of the mouse. Touch and pen pointer
// ids never collide with it.
const MousePointerID pointer.ID = 1

// touchIDBase is the first touch and pen pointer id.
const touchIDBase pointer.ID = 1 << 32

// maxIdleIDs bounds the number of remembered ids of released slots.
const maxIdleIDs = 256

// defaultPressure is reported for active contacts on devices without
// pressure sensing.
const defaultPressure = 0.5

// Normalizer converts raw mouse and touch events to pointer events. It
// tracks active contacts to assign sequence indices and to elect the
// primary pointer of each device type: a contact is primary if no other
// contact of its type was active when it went down. Primacy lasts for
// the lifetime of the contact.
//
// The zero value is ready to use. A Normalizer must not be used
// concurrently.
type Normalizer struct {
	// Now returns the current time. If nil, the time since the first
	// event is used.
	Now func() time.Duration

	start    time.Time
	contacts map[slotKey]*contact
	ids      map[slotKey]pointer.ID
	nextID   pointer.ID
	mouse    contact
}

type slotKey struct {
	deviceID int64
	slot     int
}

type contact struct {
	id         pointer.ID
	deviceType pointer.DeviceType
	deviceID   int64
	slot       int
	primary    bool
	// seq is the last sequence index, valid if started is set.
	seq     uint64
	started bool
	// last is the most recent geometry of the contact.
	last pointer.Point
}

// TouchPointerID returns the pointer id of slot of a touch device. A slot
// keeps its id while it is in use. Distinct slots never share an id.
func (n *Normalizer) TouchPointerID(deviceID int64, slot int) pointer.ID {
	k := slotKey{deviceID, slot}
	if id, ok := n.ids[k]; ok {
		return id
	}
	if n.ids == nil {
		n.ids = make(map[slotKey]pointer.ID)
		n.nextID = touchIDBase
	}
	id := n.nextID
	n.nextID++
	n.ids[k] = id
	return id
}

// forgetIdleIDs drops the ids of released slots once there are too many
// of them. Slots get fresh ids when used again.
func (n *Normalizer) forgetIdleIDs() {
	if len(n.ids)-len(n.contacts) <= maxIdleIDs {
		return
	}
	for k := range n.ids {
		if _, ok := n.contacts[k]; !ok {
			delete(n.ids, k)
		}
	}
}

// next returns the sequence index of the next event of c. Device
// sequence numbers are used when present, but never below an index
// already reported for the contact.
func (c *contact) next(device uint64) uint64 {
	switch {
	case !c.started:
		c.seq = device
	case device > c.seq:
		c.seq = device
	case device == 0:
		c.seq++
	}
	c.started = true
	return c.seq
}

// Mouse converts a raw mouse event. The mouse is always the primary
// pointer; multiple mice are reported as one.
func (n *Normalizer) Mouse(src event.Tag, e MouseEvent) pointer.Event {
	if e.Kind == MousePress {
		n.mouse.started = false
	}
	pressure := float32(0)
	if e.Buttons != 0 {
		pressure = defaultPressure
	}
	pe := pointer.Event{
		Args: event.Args{
			Source: src,
			Type:   mouseType(e.Kind),
			Time:   n.now(),
		},
		Point:         pointer.NewPoint(e.Position, e.Position, pointer.DefaultShape(), pressure, 0, 0, 0, 0),
		PointerID:     MousePointerID,
		PointerIndex:  -1,
		SequenceIndex: n.mouse.next(0),
		DeviceType:    pointer.Mouse,
		Primary:       true,
		Button:        e.Button,
		Buttons:       e.Buttons,
		Modifiers:     e.Modifiers,
		Scroll:        finitePoint(e.Scroll),
	}
	return withSelf(pe)
}

// Touch converts a raw touch or pen event.
func (n *Normalizer) Touch(src event.Tag, e TouchEvent) pointer.Event {
	dt := pointer.Touch
	if e.Tool == ToolPen || e.Tool == ToolEraser {
		dt = pointer.Pen
	}
	k := slotKey{e.DeviceID, e.Slot}
	id := n.TouchPointerID(e.DeviceID, e.Slot)
	if n.contacts == nil {
		n.contacts = make(map[slotKey]*contact)
	}
	down := e.Kind == TouchDown || e.Kind == TouchDoubleTap
	c, active := n.contacts[k]
	switch {
	case !active:
		c = &contact{id: id, deviceType: dt, deviceID: e.DeviceID, slot: e.Slot, primary: !n.hasContacts(dt)}
		if down {
			n.contacts[k] = c
			tracer().Debugf("contact %#x down, primary=%v", uint64(id), c.primary)
		} else {
			n.forgetIdleIDs()
		}
	case down:
		// A repeated down starts a new sequence for the contact.
		c.started = false
	}

	pe := pointer.Event{
		Args: event.Args{
			Source: src,
			Type:   touchType(e.Kind),
			Time:   n.now(),
		},
		PointerID:    id,
		DeviceID:     e.DeviceID,
		PointerIndex: int64(e.Slot),
		DeviceType:   dt,
		Primary:      c.primary,
		Button:       0,
		Modifiers:    e.Modifiers,
	}
	contactButton := pointer.ButtonPrimary
	if e.Tool == ToolEraser {
		contactButton = pointer.ButtonEraser
		pe.Button = 5
	}
	var inContact bool
	switch e.Kind {
	case TouchDoubleTap:
		pe.Detail = 2
		inContact = true
	case TouchDown:
		inContact = true
	case TouchMove:
		pe.Button = pointer.NoButton
		inContact = active
	case TouchCancel:
		pe.Button = pointer.NoButton
	}
	pe.Buttons = e.Buttons &^ contactButton
	if inContact {
		pe.Buttons |= contactButton
	}

	pe.SequenceIndex = c.next(e.Sequence)

	pressure := e.Pressure
	if !(pressure > 0) {
		pressure = 0
		if inContact {
			pressure = defaultPressure
		}
	}
	shape := pointer.DefaultShape()
	if e.Width > 0 || e.Height > 0 {
		w, h := e.Width, e.Height
		if h <= 0 {
			h = w
		}
		if w <= 0 {
			w = h
		}
		shape = pointer.NewShape(pointer.Ellipse, w, h, 0, 0, e.Angle)
	}
	pe.Point = pointer.NewPoint(e.Position, e.Position, shape, pressure, 0, e.Twist, e.TiltX, e.TiltY)
	c.last = pe.Point

	if e.Kind == TouchUp || e.Kind == TouchCancel {
		delete(n.contacts, k)
		n.forgetIdleIDs()
		tracer().Debugf("contact %#x released", uint64(id))
	}
	return withSelf(pe)
}

// Active returns the ids of the touch and pen contacts that are down,
// in increasing order.
func (n *Normalizer) Active() []pointer.ID {
	ids := make([]pointer.ID, 0, len(n.contacts))
	for _, c := range n.contacts {
		ids = append(ids, c.id)
	}
	slices.Sort(ids)
	return ids
}

// CancelAll ends every active contact, for example when a window loses
// focus. It returns a pointercancel event for each contact in increasing
// pointer id order.
func (n *Normalizer) CancelAll(src event.Tag) []pointer.Event {
	keys := make([]slotKey, 0, len(n.contacts))
	for k := range n.contacts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b slotKey) bool {
		return n.contacts[a].id < n.contacts[b].id
	})
	var events []pointer.Event
	for _, k := range keys {
		c := n.contacts[k]
		pe := pointer.Event{
			Args: event.Args{
				Source: src,
				Type:   pointer.Cancel,
				Time:   n.now(),
			},
			Point:         c.last,
			PointerID:     c.id,
			DeviceID:      c.deviceID,
			PointerIndex:  int64(c.slot),
			SequenceIndex: c.next(0),
			DeviceType:    c.deviceType,
			Primary:       c.primary,
			Button:        pointer.NoButton,
		}
		events = append(events, withSelf(pe))
		delete(n.contacts, k)
	}
	n.forgetIdleIDs()
	return events
}

func (n *Normalizer) hasContacts(dt pointer.DeviceType) bool {
	for _, c := range n.contacts {
		if c.deviceType == dt {
			return true
		}
	}
	return false
}

func (n *Normalizer) now() time.Duration {
	if n.Now != nil {
		return n.Now().Truncate(time.Microsecond)
	}
	if n.start.IsZero() {
		n.start = time.Now()
	}
	return time.Since(n.start).Truncate(time.Microsecond)
}

func finitePoint(p f32.Point) f32.Point {
	if !finite(p.X) || !finite(p.Y) {
		tracer().Debugf("non-finite value %v replaced", p)
	}
	return f32.Pt(finiteOr0(p.X), finiteOr0(p.Y))
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

func finiteOr0(v float32) float32 {
	if !finite(v) {
		return 0
	}
	return v
}

// withSelf sets the coalesced events of e to a copy of e.
func withSelf(e pointer.Event) pointer.Event {
	self := e
	self.CoalescedEvents = nil
	self.PredictedEvents = nil
	e.CoalescedEvents = []pointer.Event{self}
	return e
}

func mouseType(k MouseKind) string {
	switch k {
	case MouseMove, MouseDrag:
		return pointer.Move
	case MousePress:
		return pointer.Down
	case MouseRelease:
		return pointer.Up
	case MouseScroll:
		return pointer.Scroll
	case MouseEnter:
		return pointer.Enter
	case MouseLeave:
		return pointer.Leave
	default:
		return event.TypeUnknown
	}
}

func touchType(k TouchKind) string {
	switch k {
	case TouchDown, TouchDoubleTap:
		return pointer.Down
	case TouchMove:
		return pointer.Move
	case TouchUp:
		return pointer.Up
	case TouchCancel:
		return pointer.Cancel
	default:
		return event.TypeUnknown
	}
}
