// SPDX-License-Identifier: Unlicense OR MIT

/*
Package key defines the keyboard modifier state carried by pointer
events.
*/
package key

import "strings"

// Modifiers is a bitmask of the modifier keys held down when an
// event was generated.
type Modifiers uint16

const (
	// ModShift is the shift modifier key.
	ModShift Modifiers = 1 << iota
	// ModCtrl is the ctrl modifier key.
	ModCtrl
	// ModAlt is the alt modifier key, or the option
	// key on Apple keyboards.
	ModAlt
	// ModSuper is the "logo" modifier key, often
	// represented by a Windows logo.
	ModSuper
	// ModCommand is the command modifier key
	// found on Apple keyboards.
	ModCommand
)

// Names of modifier keys.
const (
	NameCtrl    = "Ctrl"
	NameShift   = "Shift"
	NameAlt     = "Alt"
	NameSuper   = "Super"
	NameCommand = "⌘"
)

// Contain reports whether m contains all modifiers
// in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

func (m Modifiers) String() string {
	var strs []string
	if m.Contain(ModCtrl) {
		strs = append(strs, NameCtrl)
	}
	if m.Contain(ModCommand) {
		strs = append(strs, NameCommand)
	}
	if m.Contain(ModShift) {
		strs = append(strs, NameShift)
	}
	if m.Contain(ModAlt) {
		strs = append(strs, NameAlt)
	}
	if m.Contain(ModSuper) {
		strs = append(strs, NameSuper)
	}
	return strings.Join(strs, "-")
}
