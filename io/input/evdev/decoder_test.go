// SPDX-License-Identifier: Unlicense OR MIT

package evdev

import (
	"encoding/binary"
	"testing"

	"gioui.org/x/pointerevents/f32"
	"gioui.org/x/pointerevents/io/input"
	"gioui.org/x/pointerevents/io/pointer"
)

type record struct {
	typ, code uint16
	value     int32
}

func encode(size int, records ...record) []byte {
	var b []byte
	for _, r := range records {
		buf := make([]byte, size)
		off := size - 8
		binary.LittleEndian.PutUint16(buf[off:], r.typ)
		binary.LittleEndian.PutUint16(buf[off+2:], r.code)
		binary.LittleEndian.PutUint32(buf[off+4:], uint32(r.value))
		b = append(b, buf...)
	}
	return b
}

var syn = record{EV_SYN, SYN_REPORT, 0}

func newDecoder() *Decoder {
	return &Decoder{
		DeviceID: 2,
		Size:     f32.Pt(100, 50),
		Axes: Axes{
			MTX:        Range{0, 1000},
			MTY:        Range{0, 1000},
			MTPressure: Range{0, 255},
			X:          Range{0, 1000},
			Y:          Range{0, 1000},
			Pressure:   Range{0, 4096},
			TiltX:      Range{-90, 90},
			TiltY:      Range{-90, 90},
		},
	}
}

func TestTwoFingers(t *testing.T) {
	d := newDecoder()
	stream := encode(24,
		record{EV_ABS, ABS_MT_SLOT, 0},
		record{EV_ABS, ABS_MT_TRACKING_ID, 10},
		record{EV_ABS, ABS_MT_POSITION_X, 500},
		record{EV_ABS, ABS_MT_POSITION_Y, 500},
		syn,
		record{EV_ABS, ABS_MT_SLOT, 1},
		record{EV_ABS, ABS_MT_TRACKING_ID, 11},
		record{EV_ABS, ABS_MT_POSITION_X, 100},
		record{EV_ABS, ABS_MT_POSITION_Y, 200},
		record{EV_ABS, ABS_MT_PRESSURE, 255},
		syn,
		record{EV_ABS, ABS_MT_SLOT, 0},
		record{EV_ABS, ABS_MT_POSITION_X, 600},
		syn,
		record{EV_ABS, ABS_MT_TRACKING_ID, -1},
		record{EV_ABS, ABS_MT_SLOT, 1},
		record{EV_ABS, ABS_MT_TRACKING_ID, -1},
		syn,
	)
	events := d.Feed(stream)
	want := []struct {
		kind input.TouchKind
		slot int
		pos  f32.Point
	}{
		{input.TouchDown, 0, f32.Pt(50, 25)},
		{input.TouchDown, 1, f32.Pt(10, 10)},
		{input.TouchMove, 0, f32.Pt(60, 25)},
		{input.TouchUp, 0, f32.Pt(60, 25)},
		{input.TouchUp, 1, f32.Pt(10, 10)},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, w := range want {
		e := events[i]
		if e.Kind != w.kind || e.Slot != w.slot || e.Position != w.pos {
			t.Errorf("event %d: got %+v, want kind %d slot %d at %v", i, e, w.kind, w.slot, w.pos)
		}
		if e.DeviceID != 2 || e.Tool != input.ToolFinger {
			t.Errorf("event %d: device %d tool %d", i, e.DeviceID, e.Tool)
		}
	}
	if p := events[1].Pressure; p != 1 {
		t.Errorf("pressure = %v, want 1", p)
	}
	if p := events[0].Pressure; p != 0 {
		t.Errorf("unreported pressure = %v, want 0", p)
	}
}

func TestWideRange(t *testing.T) {
	d := &Decoder{
		Size: f32.Pt(1000, 1000),
		Axes: Axes{
			MTX:        Range{-2000000000, 2000000000},
			MTY:        Range{0, 4},
			MTPressure: Range{-2000000000, 2000000000},
		},
	}
	d.Event(EV_ABS, ABS_MT_TRACKING_ID, 1)
	d.Event(EV_ABS, ABS_MT_POSITION_X, 2000000000)
	d.Event(EV_ABS, ABS_MT_POSITION_Y, 1)
	d.Event(EV_ABS, ABS_MT_PRESSURE, 0)
	events := d.Event(EV_SYN, SYN_REPORT, 0)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Position.X != 1000 {
		t.Errorf("x = %v, want 1000", e.Position.X)
	}
	if e.Position.Y != 250 {
		t.Errorf("y = %v, want 250", e.Position.Y)
	}
	if e.Pressure != 0.5 {
		t.Errorf("pressure = %v, want 0.5", e.Pressure)
	}
}

func TestPartialRecords(t *testing.T) {
	d := newDecoder()
	d.RecordSize = 16
	stream := encode(16,
		record{EV_ABS, ABS_MT_TRACKING_ID, 1},
		record{EV_ABS, ABS_MT_POSITION_X, 1000},
		syn,
	)
	if events := d.Feed(stream[:20]); len(events) != 0 {
		t.Fatalf("events before SYN_REPORT: %+v", events)
	}
	events := d.Feed(stream[20:])
	if len(events) != 1 || events[0].Kind != input.TouchDown || events[0].Position.X != 100 {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestPen(t *testing.T) {
	d := newDecoder()
	var events []input.TouchEvent
	for _, r := range []record{
		{EV_KEY, BTN_TOOL_PEN, 1},
		{EV_ABS, ABS_X, 250},
		{EV_ABS, ABS_Y, 250},
		syn,
		{EV_KEY, BTN_TOUCH, 1},
		{EV_ABS, ABS_PRESSURE, 2048},
		{EV_ABS, ABS_TILT_X, 45},
		{EV_KEY, BTN_STYLUS, 1},
		syn,
		{EV_ABS, ABS_X, 500},
		syn,
		{EV_KEY, BTN_TOUCH, 0},
		syn,
	} {
		events = append(events, d.Event(r.typ, r.code, r.value)...)
	}
	kinds := []input.TouchKind{input.TouchDown, input.TouchMove, input.TouchUp}
	if len(events) != len(kinds) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(kinds), events)
	}
	for i, k := range kinds {
		e := events[i]
		if e.Kind != k || e.Tool != input.ToolPen || e.Slot != PenSlot {
			t.Errorf("event %d: %+v", i, e)
		}
	}
	down := events[0]
	if down.Pressure != 0.5 || down.TiltX != 45 || down.Position != f32.Pt(25, 12.5) {
		t.Errorf("down: %+v", down)
	}
	if !down.Buttons.Contain(pointer.ButtonSecondary) {
		t.Errorf("barrel button not reported: %v", down.Buttons)
	}
	if x := events[1].Position.X; x != 50 {
		t.Errorf("move x = %v, want 50", x)
	}
}

func TestEraser(t *testing.T) {
	d := newDecoder()
	d.Event(EV_KEY, BTN_TOOL_RUBBER, 1)
	d.Event(EV_KEY, BTN_TOUCH, 1)
	events := d.Event(EV_SYN, SYN_REPORT, 0)
	if len(events) != 1 || events[0].Tool != input.ToolEraser {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestDropped(t *testing.T) {
	d := newDecoder()
	d.Event(EV_ABS, ABS_MT_TRACKING_ID, 5)
	d.Event(EV_SYN, SYN_REPORT, 0)
	events := d.Event(EV_SYN, SYN_DROPPED, 0)
	if len(events) != 1 || events[0].Kind != input.TouchCancel {
		t.Fatalf("unexpected events %+v", events)
	}
	// Events until the next SYN_REPORT are discarded.
	d.Event(EV_ABS, ABS_MT_TRACKING_ID, 6)
	if events := d.Event(EV_SYN, SYN_REPORT, 0); len(events) != 0 {
		t.Errorf("events after drop: %+v", events)
	}
	d.Event(EV_ABS, ABS_MT_TRACKING_ID, 7)
	if events := d.Event(EV_SYN, SYN_REPORT, 0); len(events) != 1 || events[0].Kind != input.TouchDown {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestNormalizedTwoFingers(t *testing.T) {
	d := newDecoder()
	var n input.Normalizer
	var events []pointer.Event
	for _, r := range []record{
		{EV_ABS, ABS_MT_SLOT, 0},
		{EV_ABS, ABS_MT_TRACKING_ID, 1},
		syn,
		{EV_ABS, ABS_MT_SLOT, 1},
		{EV_ABS, ABS_MT_TRACKING_ID, 2},
		syn,
	} {
		for _, te := range d.Event(r.typ, r.code, r.value) {
			events = append(events, n.Touch(nil, te))
		}
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if !events[0].Primary || events[1].Primary {
		t.Errorf("primary = %v, %v; want true, false", events[0].Primary, events[1].Primary)
	}
	if events[0].PointerID == events[1].PointerID {
		t.Error("fingers share a pointer id")
	}
	if events[1].PointerID != n.TouchPointerID(2, 1) {
		t.Errorf("pointer id = %#x", uint64(events[1].PointerID))
	}
}
