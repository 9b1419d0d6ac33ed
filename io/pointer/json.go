// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"encoding/json"
	"fmt"

	"gioui.org/x/pointerevents/f32"
	"gioui.org/x/pointerevents/io/event"
	"gioui.org/x/pointerevents/io/key"
)

// The JSON form of events uses snake case keys. Missing keys decode to
// the defaults of the corresponding constructors; unknown shape kinds
// and device types decode to Ellipse and Unknown.

type jsonVec struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type jsonShape struct {
	ShapeType       ShapeKind `json:"shape_type"`
	Width           float32   `json:"width"`
	Height          float32   `json:"height"`
	WidthTolerance  float32   `json:"width_tolerance"`
	HeightTolerance float32   `json:"height_tolerance"`
	AngleDeg        float32   `json:"angle_deg"`
}

type jsonPoint struct {
	Position           jsonVec `json:"position"`
	PrecisePosition    jsonVec `json:"precise_position"`
	Shape              Shape   `json:"shape"`
	Pressure           float32 `json:"pressure"`
	TangentialPressure float32 `json:"tangential_pressure"`
	TwistDeg           float32 `json:"twist_deg"`
	TiltXDeg           float32 `json:"tilt_x_deg"`
	TiltYDeg           float32 `json:"tilt_y_deg"`
}

type jsonEvent struct {
	EventType                           string        `json:"event_type"`
	TimestampMicros                     uint64        `json:"timestamp_micros"`
	Detail                              uint64        `json:"detail"`
	Point                               Point         `json:"point"`
	PointerID                           ID            `json:"pointer_id"`
	DeviceID                            int64         `json:"device_id"`
	PointerIndex                        int64         `json:"pointer_index"`
	SequenceIndex                       uint64        `json:"sequence_index"`
	DeviceType                          DeviceType    `json:"device_type"`
	IsCoalesced                         bool          `json:"is_coalesced"`
	IsPredicted                         bool          `json:"is_predicted"`
	IsPrimary                           bool          `json:"is_primary"`
	Button                              int16         `json:"button"`
	Buttons                             Buttons       `json:"buttons"`
	Modifiers                           key.Modifiers `json:"modifiers"`
	Scroll                              *jsonVec      `json:"scroll,omitempty"`
	CoalescedPointerEvents              []Event       `json:"coalesced_pointer_events"`
	PredictedPointerEvents              []Event       `json:"predicted_pointer_events"`
	EstimatedProperties                 Properties    `json:"estimated_properties"`
	EstimatedPropertiesExpectingUpdates Properties    `json:"estimated_properties_expecting_updates"`
}

func vec(p f32.Point) jsonVec { return jsonVec{X: p.X, Y: p.Y} }
func (v jsonVec) pt() f32.Point { return f32.Pt(v.X, v.Y) }

func (k ShapeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ShapeKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("pointer: shape type: %w", err)
	}
	switch s {
	case "ELLIPSE":
		*k = Ellipse
	case "RECTANGLE":
		*k = Rectangle
	default:
		tracer().Errorf("unknown shape type %q, using ELLIPSE", s)
		*k = Ellipse
	}
	return nil
}

func (d *DeviceType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("pointer: device type: %w", err)
	}
	switch dt := DeviceType(s); dt {
	case Mouse, Pen, Touch, Unknown:
		*d = dt
	default:
		tracer().Errorf("unknown device type %q, using %q", s, Unknown)
		*d = Unknown
	}
	return nil
}

func (p Properties) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(p))
}

func (p *Properties) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return fmt.Errorf("pointer: properties: %w", err)
	}
	*p = NewProperties(names...)
	return nil
}

func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonShape{
		ShapeType:       s.kind,
		Width:           s.width,
		Height:          s.height,
		WidthTolerance:  s.widthTolerance,
		HeightTolerance: s.heightTolerance,
		AngleDeg:        s.angle,
	})
}

func (s *Shape) UnmarshalJSON(b []byte) error {
	js := jsonShape{ShapeType: Ellipse, Width: 1, Height: 1}
	if err := json.Unmarshal(b, &js); err != nil {
		return fmt.Errorf("pointer: shape: %w", err)
	}
	*s = NewShape(js.ShapeType, js.Width, js.Height, js.WidthTolerance, js.HeightTolerance, js.AngleDeg)
	return nil
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPoint{
		Position:           vec(p.position),
		PrecisePosition:    vec(p.precisePosition),
		Shape:              p.shape,
		Pressure:           p.pressure,
		TangentialPressure: p.tangentialPressure,
		TwistDeg:           p.twist,
		TiltXDeg:           p.tiltX,
		TiltYDeg:           p.tiltY,
	})
}

func (p *Point) UnmarshalJSON(b []byte) error {
	jp := jsonPoint{Shape: DefaultShape()}
	if err := json.Unmarshal(b, &jp); err != nil {
		return fmt.Errorf("pointer: point: %w", err)
	}
	*p = NewPoint(jp.Position.pt(), jp.PrecisePosition.pt(), jp.Shape,
		jp.Pressure, jp.TangentialPressure, jp.TwistDeg, jp.TiltXDeg, jp.TiltYDeg)
	return nil
}

func (e Event) MarshalJSON() ([]byte, error) {
	je := jsonEvent{
		EventType:                           e.Type,
		TimestampMicros:                     e.TimestampMicros(),
		Detail:                              e.Detail,
		Point:                               e.Point,
		PointerID:                           e.PointerID,
		DeviceID:                            e.DeviceID,
		PointerIndex:                        e.PointerIndex,
		SequenceIndex:                       e.SequenceIndex,
		DeviceType:                          e.DeviceType,
		IsCoalesced:                         e.Coalesced,
		IsPredicted:                         e.Predicted,
		IsPrimary:                           e.Primary,
		Button:                              e.Button,
		Buttons:                             e.Buttons,
		Modifiers:                           e.Modifiers,
		CoalescedPointerEvents:              e.CoalescedEvents,
		PredictedPointerEvents:              e.PredictedEvents,
		EstimatedProperties:                 e.EstimatedProperties,
		EstimatedPropertiesExpectingUpdates: e.EstimatedPropertiesExpectingUpdates,
	}
	if je.DeviceType == "" {
		je.DeviceType = Unknown
	}
	if je.CoalescedPointerEvents == nil {
		je.CoalescedPointerEvents = []Event{}
	}
	if je.PredictedPointerEvents == nil {
		je.PredictedPointerEvents = []Event{}
	}
	if e.Scroll != (f32.Point{}) {
		s := vec(e.Scroll)
		je.Scroll = &s
	}
	return json.Marshal(je)
}

func (e *Event) UnmarshalJSON(b []byte) error {
	je := jsonEvent{
		EventType:  event.TypeUnknown,
		Point:      NewPositionPoint(f32.Point{}),
		DeviceType: Unknown,
	}
	if err := json.Unmarshal(b, &je); err != nil {
		return fmt.Errorf("pointer: event: %w", err)
	}
	*e = Event{
		Args: event.Args{
			Type:   je.EventType,
			Time:   event.Micros(je.TimestampMicros),
			Detail: je.Detail,
		},
		Point:                               je.Point,
		PointerID:                           je.PointerID,
		DeviceID:                            je.DeviceID,
		PointerIndex:                        je.PointerIndex,
		SequenceIndex:                       je.SequenceIndex,
		DeviceType:                          je.DeviceType,
		Coalesced:                           je.IsCoalesced,
		Predicted:                           je.IsPredicted,
		Primary:                             je.IsPrimary,
		Button:                              je.Button,
		Buttons:                             je.Buttons,
		Modifiers:                           je.Modifiers,
		EstimatedProperties:                 je.EstimatedProperties,
		EstimatedPropertiesExpectingUpdates: je.EstimatedPropertiesExpectingUpdates,
	}
	if je.Scroll != nil {
		e.Scroll = je.Scroll.pt()
	}
	if len(je.CoalescedPointerEvents) > 0 {
		e.CoalescedEvents = je.CoalescedPointerEvents
	}
	if len(je.PredictedPointerEvents) > 0 {
		e.PredictedEvents = je.PredictedPointerEvents
	}
	return nil
}
