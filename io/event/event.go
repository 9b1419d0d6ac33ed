// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains types for event handling.
package event

import "time"

// Tag is the stable identifier for an event source, such as
// a window. For a source s, the tag is typically &s. Tags are
// compared but never dereferenced.
type Tag interface{}

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}

// TypeUnknown is the type of events that carry no type.
const TypeUnknown = "unknown"

// Args contains the fields common to every event delivered
// by this module. It is embedded by value in concrete event
// types.
type Args struct {
	// Source identifies where the event originated.
	Source Tag
	// Type describes the event, such as "pointerdown".
	Type string
	// Time is when the event was received, relative to an undefined
	// base. It has microsecond resolution.
	Time time.Duration
	// Detail is optional event specific data.
	Detail uint64
}

// TimestampMicros returns Time in microseconds.
func (a Args) TimestampMicros() uint64 {
	if a.Time < 0 {
		return 0
	}
	return uint64(a.Time / time.Microsecond)
}

// TimestampMillis returns Time in milliseconds.
func (a Args) TimestampMillis() uint64 {
	return a.TimestampMicros() / 1000
}

// Micros converts a microsecond timestamp to a Duration.
func Micros(us uint64) time.Duration {
	return time.Duration(us) * time.Microsecond
}
