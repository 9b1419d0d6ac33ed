// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pointer implements a device independent pointer event model
in the spirit of the W3C Pointer Events specification.

An Event describes one interaction frame of a mouse, pen or touch
contact. Its geometry is a Point, whose contact area is a Shape. Events
for the same pointer share a PointerID from the first contact until the
pointer is released or cancelled.

Events are values. Frame coalesced samples and predicted future samples
are attached to an event as CoalescedEvents and PredictedEvents.
Properties that were only estimated when the event was delivered are
listed in EstimatedProperties, and later corrections are applied with
UpdateEstimated.
*/
package pointer

import (
	"fmt"
	"strings"

	"gioui.org/x/pointerevents/f32"
	"gioui.org/x/pointerevents/io/event"
	"gioui.org/x/pointerevents/io/key"
)

// Event is a pointer event.
type Event struct {
	event.Args
	// Point is the geometry of the pointer.
	Point Point
	// PointerID identifies the pointer from the first contact until
	// release or cancellation. IDs are unique among active pointers but
	// may be reused afterwards.
	PointerID ID
	// DeviceID identifies the input device.
	DeviceID int64
	// PointerIndex is the device specific index of the pointer, such as a
	// touch slot, or -1 if not applicable.
	PointerIndex int64
	// SequenceIndex increases monotonically during the lifetime of a
	// contact. It is 0 if unsupported.
	SequenceIndex uint64
	DeviceType    DeviceType
	// Primary reports whether the pointer is the primary pointer of its
	// device type.
	Primary   bool
	Coalesced bool
	Predicted bool
	// Button is the button whose state changed with this event, or
	// NoButton.
	Button    int16
	Buttons   Buttons
	Modifiers key.Modifiers
	// Scroll is the scroll amount of a pointerscroll event.
	Scroll f32.Point
	// CoalescedEvents are the samples merged into this event, including
	// a copy of the event itself.
	CoalescedEvents []Event
	// PredictedEvents are extrapolated future samples.
	PredictedEvents []Event
	// EstimatedProperties lists the properties whose values are provisional.
	EstimatedProperties Properties
	// EstimatedPropertiesExpectingUpdates lists the estimated properties
	// for which a correction is expected.
	EstimatedPropertiesExpectingUpdates Properties
}

// ID uniquely identifies an active pointer.
type ID uint64

// DeviceType classifies the device generating an Event.
type DeviceType string

// Buttons is a set of pressed buttons.
type Buttons uint16

// Event types.
const (
	Over        = "pointerover"
	Enter       = "pointerenter"
	Down        = "pointerdown"
	Move        = "pointermove"
	Up          = "pointerup"
	Cancel      = "pointercancel"
	Update      = "pointerupdate"
	Out         = "pointerout"
	Leave       = "pointerleave"
	GotCapture  = "gotpointercapture"
	LostCapture = "lostpointercapture"
	// Scroll is an extension for mouse wheel and trackpad scrolling.
	Scroll = "pointerscroll"
)

const (
	Mouse   DeviceType = "mouse"
	Pen     DeviceType = "pen"
	Touch   DeviceType = "touch"
	Unknown DeviceType = "unknown"
)

// Names of properties that may be estimated.
const (
	PropertyPosition = "position"
	PropertyPressure = "pressure"
	PropertyTiltX    = "tilt_x"
	PropertyTiltY    = "tilt_y"
)

// NoButton is the Button value of events that changed no button state.
const NoButton int16 = -1

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user, the pen tip or a touch contact.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user, or the pen barrel button.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
	ButtonBack
	ButtonForward
	// ButtonEraser is the eraser end of a pen.
	ButtonEraser
)

// Position is short for e.Point.Position().
func (e Event) Position() f32.Point {
	return e.Point.Position()
}

// IsEstimated reports whether any property of e is provisional.
func (e Event) IsEstimated() bool {
	return len(e.EstimatedProperties) > 0
}

// IsExpectingUpdates reports whether corrections are pending for e.
func (e Event) IsExpectingUpdates() bool {
	return len(e.EstimatedPropertiesExpectingUpdates) > 0
}

// WithType returns a copy of e with the event type replaced.
func (e Event) WithType(typ string) Event {
	e.Type = typ
	return e
}

func (e Event) String() string {
	return fmt.Sprintf("%s id=%d device=%s(%d) index=%d seq=%d t=%dus primary=%v button=%d buttons=%v mods=%v %v",
		e.Type, e.PointerID, e.DeviceType, e.DeviceID, e.PointerIndex, e.SequenceIndex,
		e.TimestampMicros(), e.Primary, e.Button, e.Buttons, e.Modifiers, e.Point)
}

// Contain reports whether the set b contains
// all of the buttons.
func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonPrimary) {
		strs = append(strs, "ButtonPrimary")
	}
	if b.Contain(ButtonSecondary) {
		strs = append(strs, "ButtonSecondary")
	}
	if b.Contain(ButtonTertiary) {
		strs = append(strs, "ButtonTertiary")
	}
	if b.Contain(ButtonBack) {
		strs = append(strs, "ButtonBack")
	}
	if b.Contain(ButtonForward) {
		strs = append(strs, "ButtonForward")
	}
	if b.Contain(ButtonEraser) {
		strs = append(strs, "ButtonEraser")
	}
	return strings.Join(strs, "|")
}

func (Event) ImplementsEvent() {}
