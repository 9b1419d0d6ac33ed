// SPDX-License-Identifier: Unlicense OR MIT

/*
Package evdev decodes the event stream of Linux input devices into raw
touch and pen events.

Touch screens are expected to use multi-touch protocol B. Pens are
decoded from the single touch axes while a pen or eraser tool is in
range.
*/
package evdev

import (
	"encoding/binary"

	"gioui.org/x/pointerevents/f32"
	"gioui.org/x/pointerevents/io/input"
	"gioui.org/x/pointerevents/io/pointer"
	"github.com/npillmayer/schuko/tracing"
)

// Event types.
const (
	EV_SYN = 0x00
	EV_KEY = 0x01
	EV_ABS = 0x03
)

// SYN codes.
const (
	SYN_REPORT  = 0x00
	SYN_DROPPED = 0x03
)

// Key codes.
const (
	BTN_TOOL_PEN    = 0x140
	BTN_TOOL_RUBBER = 0x141
	BTN_TOUCH       = 0x14a
	BTN_STYLUS      = 0x14b
	BTN_STYLUS2     = 0x14c
)

// Absolute axes.
const (
	ABS_X              = 0x00
	ABS_Y              = 0x01
	ABS_PRESSURE       = 0x18
	ABS_TILT_X         = 0x1a
	ABS_TILT_Y         = 0x1b
	ABS_MT_SLOT        = 0x2f
	ABS_MT_TOUCH_MAJOR = 0x30
	ABS_MT_TOUCH_MINOR = 0x31
	ABS_MT_ORIENTATION = 0x34
	ABS_MT_POSITION_X  = 0x35
	ABS_MT_POSITION_Y  = 0x36
	ABS_MT_TOOL_TYPE   = 0x37
	ABS_MT_TRACKING_ID = 0x39
	ABS_MT_PRESSURE    = 0x3a
)

// mtToolPen is the ABS_MT_TOOL_TYPE value of a pen.
const mtToolPen = 1

// PenSlot is the slot reported for pen events decoded from the single
// touch axes.
const PenSlot = -1

// maxSlots bounds the slot numbers accepted from a device.
const maxSlots = 64

// Range is the range of an absolute axis.
type Range struct {
	Min, Max int32
}

// Axes are the ranges of the absolute axes of a device. A zero Range
// means the axis is missing.
type Axes struct {
	X, Y, Pressure, TiltX, TiltY        Range
	MTX, MTY, MTPressure, MTOrientation Range
}

// Decoder turns input_event records into touch events. Events are
// collected until a SYN_REPORT and then emitted as a batch.
type Decoder struct {
	// DeviceID is copied to every event.
	DeviceID int64
	// Size is the target size that positions are scaled to. A zero Size
	// leaves positions in device units.
	Size f32.Point
	Axes Axes
	// RecordSize is the size of an input_event record: 24 bytes on 64-bit
	// systems, 16 bytes on 32-bit systems. Zero means 24.
	RecordSize int

	buf     []byte
	slot    int
	slots   []slot
	pen     pen
	dropped bool
}

type slot struct {
	active, reported, dirty bool
	tool                    int32
	x, y, pressure          int32
	major, minor, orient    int32
}

type pen struct {
	tool              int32
	inRange, touching bool
	reported, dirty   bool
	x, y, pressure    int32
	tiltX, tiltY      int32
	buttons           pointer.Buttons
}

func tracer() tracing.Trace {
	return tracing.Select("evdev")
}

// Feed decodes the records in p. Trailing partial records are kept for
// the next call.
func (d *Decoder) Feed(p []byte) []input.TouchEvent {
	size := d.RecordSize
	if size == 0 {
		size = 24
	}
	d.buf = append(d.buf, p...)
	var events []input.TouchEvent
	for len(d.buf) >= size {
		r := d.buf[:size]
		// The timestamp precedes type, code and value.
		off := size - 8
		typ := binary.LittleEndian.Uint16(r[off:])
		code := binary.LittleEndian.Uint16(r[off+2:])
		value := int32(binary.LittleEndian.Uint32(r[off+4:]))
		events = append(events, d.Event(typ, code, value)...)
		d.buf = d.buf[size:]
	}
	if len(d.buf) == 0 {
		d.buf = nil
	}
	return events
}

// Event decodes a single input event. It returns the touch events
// completed by a SYN_REPORT.
func (d *Decoder) Event(typ, code uint16, value int32) []input.TouchEvent {
	switch typ {
	case EV_SYN:
		switch code {
		case SYN_REPORT:
			if d.dropped {
				d.dropped = false
				return nil
			}
			return d.sync()
		case SYN_DROPPED:
			d.dropped = true
			return d.cancel()
		}
	case EV_KEY:
		if !d.dropped {
			d.key(code, value)
		}
	case EV_ABS:
		if !d.dropped {
			d.abs(code, value)
		}
	}
	return nil
}

func (d *Decoder) key(code uint16, value int32) {
	down := value != 0
	switch code {
	case BTN_TOOL_PEN, BTN_TOOL_RUBBER:
		if down {
			d.pen.tool = int32(code)
		}
		d.pen.inRange = down
	case BTN_TOUCH:
		d.pen.touching = down
	case BTN_STYLUS:
		d.pen.buttons = setButton(d.pen.buttons, pointer.ButtonSecondary, down)
	case BTN_STYLUS2:
		d.pen.buttons = setButton(d.pen.buttons, pointer.ButtonTertiary, down)
	default:
		return
	}
	d.pen.dirty = true
}

func setButton(b, btn pointer.Buttons, down bool) pointer.Buttons {
	if down {
		return b | btn
	}
	return b &^ btn
}

func (d *Decoder) abs(code uint16, value int32) {
	switch code {
	case ABS_X:
		d.pen.x = value
	case ABS_Y:
		d.pen.y = value
	case ABS_PRESSURE:
		d.pen.pressure = value
	case ABS_TILT_X:
		d.pen.tiltX = value
	case ABS_TILT_Y:
		d.pen.tiltY = value
	case ABS_MT_SLOT:
		if value < 0 || value >= maxSlots {
			tracer().Errorf("evdev: slot %d out of range", value)
			return
		}
		d.slot = int(value)
		return
	default:
		d.mtAbs(code, value)
		return
	}
	d.pen.dirty = true
}

func (d *Decoder) mtAbs(code uint16, value int32) {
	for len(d.slots) <= d.slot {
		d.slots = append(d.slots, slot{})
	}
	s := &d.slots[d.slot]
	switch code {
	case ABS_MT_TRACKING_ID:
		s.active = value >= 0
	case ABS_MT_POSITION_X:
		s.x = value
	case ABS_MT_POSITION_Y:
		s.y = value
	case ABS_MT_PRESSURE:
		s.pressure = value
	case ABS_MT_TOUCH_MAJOR:
		s.major = value
	case ABS_MT_TOUCH_MINOR:
		s.minor = value
	case ABS_MT_ORIENTATION:
		s.orient = value
	case ABS_MT_TOOL_TYPE:
		s.tool = value
	default:
		return
	}
	s.dirty = true
}

func (d *Decoder) sync() []input.TouchEvent {
	var events []input.TouchEvent
	for i := range d.slots {
		s := &d.slots[i]
		var kind input.TouchKind
		switch {
		case s.active && !s.reported:
			kind = input.TouchDown
		case s.active && s.dirty:
			kind = input.TouchMove
		case !s.active && s.reported:
			kind = input.TouchUp
		default:
			continue
		}
		events = append(events, d.slotEvent(i, kind))
		s.reported = s.active
		s.dirty = false
	}
	p := &d.pen
	contact := p.inRange && p.touching
	var kind input.TouchKind
	emit := true
	switch {
	case contact && !p.reported:
		kind = input.TouchDown
	case contact && p.dirty:
		kind = input.TouchMove
	case !contact && p.reported:
		kind = input.TouchUp
	default:
		emit = false
	}
	if emit {
		events = append(events, d.penEvent(kind))
		p.reported = contact
	}
	p.dirty = false
	return events
}

// cancel ends every reported contact after the kernel dropped events.
func (d *Decoder) cancel() []input.TouchEvent {
	tracer().Infof("evdev: device %d dropped events", d.DeviceID)
	var events []input.TouchEvent
	for i := range d.slots {
		s := &d.slots[i]
		if s.reported {
			events = append(events, d.slotEvent(i, input.TouchCancel))
		}
		*s = slot{}
	}
	if d.pen.reported {
		events = append(events, d.penEvent(input.TouchCancel))
	}
	d.pen = pen{}
	return events
}

func (d *Decoder) slotEvent(i int, kind input.TouchKind) input.TouchEvent {
	s := d.slots[i]
	a := d.Axes
	tool := input.ToolFinger
	if s.tool == mtToolPen {
		tool = input.ToolPen
	}
	e := input.TouchEvent{
		Kind:     kind,
		DeviceID: d.DeviceID,
		Slot:     i,
		Tool:     tool,
		Position: f32.Pt(scale(s.x, a.MTX, d.Size.X), scale(s.y, a.MTY, d.Size.Y)),
		Pressure: unit(s.pressure, a.MTPressure),
	}
	if s.major > 0 {
		// Contact axes are in the units of the position axes.
		e.Width = scaleLen(s.major, a.MTX, d.Size.X)
		e.Height = e.Width
		if s.minor > 0 {
			e.Height = scaleLen(s.minor, a.MTX, d.Size.X)
		}
		if r := a.MTOrientation; r.Max > 0 {
			e.Angle = float32(float64(s.orient) * 90 / float64(r.Max))
		}
	}
	return e
}

func (d *Decoder) penEvent(kind input.TouchKind) input.TouchEvent {
	p := d.pen
	a := d.Axes
	tool := input.ToolPen
	if p.tool == BTN_TOOL_RUBBER {
		tool = input.ToolEraser
	}
	return input.TouchEvent{
		Kind:     kind,
		DeviceID: d.DeviceID,
		Slot:     PenSlot,
		Tool:     tool,
		Position: f32.Pt(scale(p.x, a.X, d.Size.X), scale(p.y, a.Y, d.Size.Y)),
		Pressure: unit(p.pressure, a.Pressure),
		TiltX:    tilt(p.tiltX, a.TiltX),
		TiltY:    tilt(p.tiltY, a.TiltY),
		Buttons:  p.buttons,
	}
}

// scale maps v from r to [0, size].
func scale(v int32, r Range, size float32) float32 {
	if r.Max <= r.Min || size == 0 {
		return float32(v)
	}
	return float32(span(int64(v)-int64(r.Min), r, float64(size)))
}

// scaleLen maps the length v in the units of r to the target size.
func scaleLen(v int32, r Range, size float32) float32 {
	if r.Max <= r.Min || size == 0 {
		return float32(v)
	}
	return float32(span(int64(v), r, float64(size)))
}

// unit maps v from r to [0, 1]. It returns 0 for a missing axis.
func unit(v int32, r Range) float32 {
	if r.Max <= r.Min {
		return 0
	}
	return float32(span(int64(v)-int64(r.Min), r, 1))
}

// tilt maps v from r to [-90, 90] degrees.
func tilt(v int32, r Range) float32 {
	if r.Max <= r.Min {
		return 0
	}
	return float32(span(int64(v)-int64(r.Min), r, 180) - 90)
}

// span returns d*size/(r.Max-r.Min). The product is computed before the
// division so that exact fractions of size stay exact.
func span(d int64, r Range, size float64) float64 {
	return float64(d) * size / float64(int64(r.Max)-int64(r.Min))
}
