// SPDX-License-Identifier: Unlicense OR MIT

package event

import (
	"testing"
	"time"
)

func TestTimestamps(t *testing.T) {
	a := Args{Time: 1500*time.Millisecond + 250*time.Microsecond + 999}
	if got, want := a.TimestampMicros(), uint64(1500250); got != want {
		t.Errorf("micros: got %d, want %d", got, want)
	}
	if got, want := a.TimestampMillis(), uint64(1500); got != want {
		t.Errorf("millis: got %d, want %d", got, want)
	}
	if got := Micros(a.TimestampMicros()); got != 1500250*time.Microsecond {
		t.Errorf("Micros: got %v", got)
	}
	if got := (Args{Time: -time.Second}).TimestampMicros(); got != 0 {
		t.Errorf("negative time: got %d, want 0", got)
	}
}
