// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package swtimer

// Timer is a software timer record. A Timer is owned entirely by its caller
// and is typically declared as a plain value, either statically or on the
// stack. An Engine arms and queries a Timer, but never retains it.
//
// There is no inactive state. The zero value behaves as a timer armed at
// tick 0 with an interval of 0, so it reports itself as expired. Always arm
// a Timer with Engine.Set before relying on its queries.
type Timer struct {
	// start is the tick captured when this timer was armed.
	start uint32

	// interval is the number of ticks after start at which this timer expires.
	interval uint32

	// evaluated records that Engine.IsExpiredEvaluatedOnce has already
	// reported expiration for the current arming.
	evaluated bool
}

// Start returns the tick at which this timer was last armed.
func (t Timer) Start() uint32 {
	return t.start
}

// Interval returns the duration, in ticks, this timer was last armed with.
func (t Timer) Interval() uint32 {
	return t.interval
}

// Evaluated reports whether the one-shot expiration for the current arming
// has already been consumed.
func (t Timer) Evaluated() bool {
	return t.evaluated
}

// elapsed is the overflow-safe number of ticks since start. Unsigned
// subtraction wraps, so this stays correct across a counter wraparound.
func (t *Timer) elapsed(ticks uint32) uint32 {
	return ticks - t.start
}

// expired is the inclusive expiration test shared by all queries.
func (t *Timer) expired(ticks uint32) bool {
	return t.elapsed(ticks) >= t.interval
}
