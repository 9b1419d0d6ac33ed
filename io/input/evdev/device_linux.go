// SPDX-License-Identifier: Unlicense OR MIT

package evdev

import (
	"fmt"
	"os"
	"unsafe"

	"gioui.org/x/pointerevents/f32"
	"gioui.org/x/pointerevents/io/input"
	"golang.org/x/sys/unix"
)

// Device is an open evdev device node.
type Device struct {
	Decoder
	f   *os.File
	buf []byte
}

type absInfo struct {
	Value      int32
	Min        int32
	Max        int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// ioctl request encoding.
const (
	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr(dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift)
}

// Open opens the device node at path, such as /dev/input/event3, and
// reads the ranges of its absolute axes. Positions are scaled to size.
func Open(path string, deviceID int64, size f32.Point) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("evdev: %w", err)
	}
	d := &Device{
		f:   f,
		buf: make([]byte, 64*recordSize),
	}
	d.DeviceID = deviceID
	d.Size = size
	d.RecordSize = recordSize
	fd := f.Fd()
	axes := []struct {
		code uint32
		r    *Range
	}{
		{ABS_X, &d.Axes.X},
		{ABS_Y, &d.Axes.Y},
		{ABS_PRESSURE, &d.Axes.Pressure},
		{ABS_TILT_X, &d.Axes.TiltX},
		{ABS_TILT_Y, &d.Axes.TiltY},
		{ABS_MT_POSITION_X, &d.Axes.MTX},
		{ABS_MT_POSITION_Y, &d.Axes.MTY},
		{ABS_MT_PRESSURE, &d.Axes.MTPressure},
		{ABS_MT_ORIENTATION, &d.Axes.MTOrientation},
	}
	for _, a := range axes {
		info, err := absRange(fd, a.code)
		if err != nil {
			// The device doesn't have the axis.
			continue
		}
		*a.r = Range{Min: info.Min, Max: info.Max}
	}
	tracer().Debugf("evdev: opened %s with axes %+v", path, d.Axes)
	return d, nil
}

// recordSize is the size of struct input_event.
const recordSize = int(unsafe.Sizeof(unix.Timeval{})) + 8

func absRange(fd uintptr, code uint32) (absInfo, error) {
	var info absInfo
	req := ioc(iocRead, 'E', 0x40+code, uint32(unsafe.Sizeof(info)))
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return absInfo{}, errno
	}
	return info, nil
}

// Grab requests exclusive access to the device.
func (d *Device) Grab() error {
	var one int32 = 1
	req := ioc(iocWrite, 'E', 0x90, uint32(unsafe.Sizeof(one)))
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.f.Fd(), req, uintptr(unsafe.Pointer(&one)))
	if errno != 0 {
		return fmt.Errorf("evdev: grab: %w", errno)
	}
	return nil
}

// Read blocks until the device reports events and returns the touch
// events they complete, which may be none.
func (d *Device) Read() ([]input.TouchEvent, error) {
	n, err := d.f.Read(d.buf)
	if err != nil {
		return nil, fmt.Errorf("evdev: read: %w", err)
	}
	return d.Feed(d.buf[:n]), nil
}

// Close closes the device and unblocks a pending Read.
func (d *Device) Close() error {
	return d.f.Close()
}
