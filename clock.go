// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package swtimer

import (
	"errors"
	"math"
	"time"

	"github.com/xmidt-org/chronon"
)

const (
	// DefaultTickUnit is the duration of one tick for a WallClock when no
	// unit is configured.
	DefaultTickUnit time.Duration = time.Millisecond
)

// Clock is the source of ticks for an Engine. Ticks must never decrease,
// except for the single wraparound from math.MaxUint32 back to zero.
//
// The unit of a tick is up to the application, but it must be the same
// unit used for every interval passed to Engine.Set.
type Clock interface {
	// Ticks returns the current tick count.
	Ticks() uint32
}

// ClockFunc adapts a plain function into a Clock.
type ClockFunc func() uint32

// Ticks invokes this function.
func (cf ClockFunc) Ticks() uint32 {
	return cf()
}

// now is a closure used to produce the current wall time.
type now func() time.Time

// WallClock is a Clock that counts ticks of a fixed duration since an epoch,
// using a chronon.Clock as its time source. The count wraps at 32 bits in the
// same way a hardware counter does.
type WallClock struct {
	now   now
	epoch time.Time
	unit  time.Duration
}

// WallClockOption is a configurable option for tailoring a WallClock.
type WallClockOption interface {
	apply(*WallClock) error
}

type wallClockOptionFunc func(*WallClock) error

func (f wallClockOptionFunc) apply(wc *WallClock) error { return f(wc) }

// WithChrononClock sets the time source for a WallClock. If unset or nil,
// chronon.SystemClock() is used.
func WithChrononClock(c chronon.Clock) WallClockOption {
	return wallClockOptionFunc(func(wc *WallClock) error {
		if c != nil {
			wc.now = c.Now
		}

		return nil
	})
}

// WithTickUnit sets the duration of a single tick. If unset, DefaultTickUnit
// is used. The unit must be positive.
func WithTickUnit(u time.Duration) WallClockOption {
	return wallClockOptionFunc(func(wc *WallClock) error {
		if u <= 0 {
			return errors.New("the tick unit must be positive")
		}

		wc.unit = u
		return nil
	})
}

// WithEpoch sets the instant at which the WallClock reads zero ticks. If
// unset, or set to the zero time.Time, the current time of the clock's time
// source at construction is used. An epoch in the future is allowed; the
// clock then reads ticks counting up toward the wrap until the epoch passes.
func WithEpoch(t time.Time) WallClockOption {
	return wallClockOptionFunc(func(wc *WallClock) error {
		wc.epoch = t
		return nil
	})
}

// NewWallClock constructs a WallClock from the given options.
func NewWallClock(opts ...WallClockOption) (*WallClock, error) {
	wc := &WallClock{
		now:  chronon.SystemClock().Now,
		unit: DefaultTickUnit,
	}

	for _, o := range opts {
		if err := o.apply(wc); err != nil {
			return nil, err
		}
	}

	if wc.epoch.IsZero() {
		wc.epoch = wc.now()
	}

	return wc, nil
}

// Unit returns the duration of one tick.
func (wc *WallClock) Unit() time.Duration {
	return wc.unit
}

// Epoch returns the instant at which this clock reads zero.
func (wc *WallClock) Epoch() time.Time {
	return wc.epoch
}

// Ticks returns the number of whole units elapsed since the epoch, modulo 2^32.
// Every tick lasts exactly one unit, including those before the epoch.
func (wc *WallClock) Ticks() uint32 {
	elapsed := wc.now().Sub(wc.epoch)
	n := elapsed / wc.unit
	if elapsed%wc.unit < 0 {
		// floor, so the tick before the epoch is -1 rather than 0
		n--
	}

	// truncation to 32 bits is the wraparound
	return uint32(int64(n))
}

// Duration converts a tick count into a time.Duration using this clock's unit.
// Results that don't fit in a time.Duration are clamped to math.MaxInt64.
func (wc *WallClock) Duration(ticks uint32) time.Duration {
	if time.Duration(ticks) > math.MaxInt64/wc.unit {
		return math.MaxInt64
	}

	return time.Duration(ticks) * wc.unit
}

// Interval converts a time.Duration into a tick count for this clock, rounding
// down to whole ticks. Durations that don't fit in 32 bits are clamped to
// math.MaxUint32, and negative durations yield zero.
func (wc *WallClock) Interval(d time.Duration) uint32 {
	switch n := d / wc.unit; {
	case n <= 0:
		return 0

	case n > 1<<32-1:
		return 1<<32 - 1

	default:
		return uint32(n)
	}
}
