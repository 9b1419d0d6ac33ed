// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"fmt"
	"math"

	"gioui.org/x/pointerevents/f32"
	"golang.org/x/exp/constraints"
)

// Point is the geometry of a pointer at one instant: its position,
// contact shape and the pressure and orientation of a pen. Points are
// immutable; azimuth and altitude are derived from the tilt angles when
// the Point is created.
type Point struct {
	position        f32.Point
	precisePosition f32.Point
	shape           Shape
	// pressure and tangentialPressure are normalized to [0, 1].
	pressure           float32
	tangentialPressure float32
	// Angles in degrees.
	twist    float32
	tiltX    float32
	tiltY    float32
	azimuth  float32
	altitude float32
}

// NewPoint returns a Point. Pressures are clamped to [0, 1], the twist is
// wrapped into [0, 360) and the tilts are clamped to [-90, 90]. NaN values
// and infinite positions, twists and angles become 0.
func NewPoint(position, precisePosition f32.Point, shape Shape, pressure, tangentialPressure, twistDeg, tiltXDeg, tiltYDeg float32) Point {
	p := Point{
		position:           finitePoint(position),
		precisePosition:    finitePoint(precisePosition),
		shape:              shape,
		pressure:           clamp(notNaN(pressure), 0, 1),
		tangentialPressure: clamp(notNaN(tangentialPressure), 0, 1),
		twist:              wrapDegrees(finite(twistDeg)),
		tiltX:              clamp(notNaN(tiltXDeg), -90, 90),
		tiltY:              clamp(notNaN(tiltYDeg), -90, 90),
	}
	p.azimuth, p.altitude = tiltToSpherical(p.tiltX, p.tiltY)
	return p
}

// NewPositionPoint returns a Point at pos with the default shape and no
// pressure or tilt.
func NewPositionPoint(pos f32.Point) Point {
	return NewPoint(pos, pos, DefaultShape(), 0, 0, 0, 0, 0)
}

// Position returns the position in the coordinates of the event source.
func (p Point) Position() f32.Point { return p.position }

// PrecisePosition returns the position with sub-pixel accuracy if the
// device supports it, otherwise it equals Position.
func (p Point) PrecisePosition() f32.Point { return p.precisePosition }

func (p Point) Shape() Shape { return p.shape }

// Pressure returns the normalized pressure in [0, 1].
func (p Point) Pressure() float32 { return p.pressure }

// TangentialPressure returns the normalized barrel pressure in [0, 1].
func (p Point) TangentialPressure() float32 { return p.tangentialPressure }

// Twist returns the clockwise rotation of a pen around its own axis in
// degrees, in [0, 360).
func (p Point) Twist() float32 { return p.twist }
func (p Point) TwistRad() float32 { return radians(p.twist) }

// TiltX returns the angle between the Y-Z plane and the plane
// containing the pen axis and the Y axis, in degrees.
func (p Point) TiltX() float32 { return p.tiltX }
func (p Point) TiltXRad() float32 { return radians(p.tiltX) }

// TiltY returns the angle between the X-Z plane and the plane
// containing the pen axis and the X axis, in degrees.
func (p Point) TiltY() float32 { return p.tiltY }
func (p Point) TiltYRad() float32 { return radians(p.tiltY) }

// Azimuth returns the azimuth angle of the pen in degrees, in [0, 360).
func (p Point) Azimuth() float32 { return p.azimuth }
func (p Point) AzimuthRad() float32 { return radians(p.azimuth) }

// Altitude returns the altitude angle of the pen in degrees, in [0, 90].
// A pen perpendicular to the surface has altitude 90.
func (p Point) Altitude() float32 { return p.altitude }
func (p Point) AltitudeRad() float32 { return radians(p.altitude) }

func (p Point) String() string {
	return fmt.Sprintf("%v precise=%v pressure=%g tangential=%g twist=%g tilt=(%g,%g)",
		p.position, p.precisePosition, p.pressure, p.tangentialPressure, p.twist, p.tiltX, p.tiltY)
}

// tiltToSpherical converts tilt angles to azimuth and altitude, both in
// degrees.
func tiltToSpherical(tiltX, tiltY float32) (azimuth, altitude float32) {
	tx := float64(tiltX) * math.Pi / 180
	ty := float64(tiltY) * math.Pi / 180
	vertical := math.Abs(float64(tiltX)) == 90 || math.Abs(float64(tiltY)) == 90

	var az, alt float64
	switch {
	case tiltX == 0:
		if tiltY > 0 {
			az = math.Pi / 2
		} else if tiltY < 0 {
			az = 3 * math.Pi / 2
		}
	case tiltY == 0:
		if tiltX < 0 {
			az = math.Pi
		}
	case vertical:
		// Not enough information to determine the azimuth.
		az = 0
	default:
		az = math.Atan2(math.Tan(ty), math.Tan(tx))
		if az < 0 {
			az += 2 * math.Pi
		}
	}
	switch {
	case vertical:
		alt = 0
	case tiltX == 0:
		alt = math.Pi/2 - math.Abs(ty)
	case tiltY == 0:
		alt = math.Pi/2 - math.Abs(tx)
	default:
		tanX, tanY := math.Tan(tx), math.Tan(ty)
		alt = math.Atan(1 / math.Sqrt(tanX*tanX+tanY*tanY))
	}
	azimuth = float32(az * 180 / math.Pi)
	if azimuth >= 360 {
		azimuth = 0
	}
	altitude = clamp(float32(alt*180/math.Pi), 0, 90)
	return azimuth, altitude
}

func radians(deg float32) float32 {
	return deg * math.Pi / 180
}

func wrapDegrees(deg float32) float32 {
	d := float32(math.Mod(float64(deg), 360))
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

func clamp[T constraints.Float | constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float32) float32 {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0
	}
	return v
}

// notNaN returns v, or 0 if v is NaN. Infinities are left for clamping.
func notNaN(v float32) float32 {
	if v != v {
		return 0
	}
	return v
}

func finitePoint(p f32.Point) f32.Point {
	return f32.Pt(finite(p.X), finite(p.Y))
}

func nonNegative(v float32) float32 {
	v = finite(v)
	if v < 0 {
		return 0
	}
	return v
}
