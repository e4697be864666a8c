// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package swtimer

// Engine arms and queries Timers against a single Clock. An application
// typically creates one Engine at startup and passes it wherever timers are
// used. Several Engines with different clocks may coexist.
//
// An Engine performs no locking. Init must not run concurrently with any
// other method, and a given Timer must not be used from several goroutines
// without external synchronization. Every other method is a short, bounded
// computation that never blocks or allocates.
//
// The zero Engine has no clock. Init must be called on it before use, and
// it panics on precondition violations.
type Engine struct {
	// clock is the tick source shared by every timer this Engine touches.
	clock Clock

	// failFunc receives precondition violations. If unset,
	// PanicOnViolation is used.
	failFunc FailFunc
}

// EngineOption is a configurable option for tailoring an Engine.
type EngineOption interface {
	apply(*Engine) error
}

type engineOptionFunc func(*Engine) error

func (f engineOptionFunc) apply(e *Engine) error { return f(e) }

// WithClock sets the Engine's clock, exactly as Init does.
func WithClock(c Clock) EngineOption {
	return engineOptionFunc(func(e *Engine) error {
		if c == nil {
			return ErrNilClock
		}

		e.clock = c
		return nil
	})
}

// WithFailFunc sets the hook that receives precondition violations. If
// unset or nil, PanicOnViolation is used.
func WithFailFunc(f FailFunc) EngineOption {
	return engineOptionFunc(func(e *Engine) error {
		e.failFunc = f
		return nil
	})
}

// NewEngine constructs an Engine from the given options. If WithClock is not
// supplied, Init must be called on the returned Engine before any timer is armed.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	e := new(Engine)
	for _, o := range opts {
		if err := o.apply(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Init sets the clock used by this Engine, replacing any previous clock.
// Passing a nil clock is a precondition violation, and the previous clock
// is retained.
func (e *Engine) Init(c Clock) {
	if checksEnabled && c == nil {
		e.fail(newViolation(2, "Init", "clock != nil", ErrNilClock))
		return
	}

	e.clock = c
}

// fail dispatches a violation to this Engine's hook.
func (e *Engine) fail(v *Violation) {
	f := FailFunc(PanicOnViolation)
	if e != nil && e.failFunc != nil {
		f = e.failFunc
	}

	f(v)
}

// usable verifies the preconditions shared by all timer operations. It must
// be called directly from the exported method so that violations are
// attributed to that method's caller.
func (e *Engine) usable(op string, t *Timer, needTimer bool) bool {
	switch {
	case e == nil || e.clock == nil:
		e.fail(newViolation(3, op, "clock != nil", ErrNoClock))
		return false

	case needTimer && t == nil:
		e.fail(newViolation(3, op, "timer != nil", ErrNilTimer))
		return false

	default:
		return true
	}
}

// Now returns the current tick of this Engine's clock.
func (e *Engine) Now() uint32 {
	if checksEnabled && !e.usable("Now", nil, false) {
		return 0
	}

	return e.clock.Ticks()
}

// Set arms a timer to expire interval ticks from now. Any prior state of the
// timer is overwritten, including a consumed one-shot expiration, so Set may
// be used at any time to restart or reconfigure a timer.
//
// An interval of zero produces a timer that is already expired.
func (e *Engine) Set(t *Timer, interval uint32) {
	if checksEnabled && !e.usable("Set", t, true) {
		return
	}

	t.start = e.clock.Ticks()
	t.interval = interval
	t.evaluated = false
}

// IsExpired reports whether at least the timer's interval has elapsed since it
// was armed. Once true, this method keeps returning true until the timer is
// armed again. The timer is not modified.
//
// The elapsed time is computed with unsigned 32-bit subtraction, so the result
// is correct across a wraparound of the clock as long as fewer than 2^32 ticks
// have actually elapsed.
func (e *Engine) IsExpired(t *Timer) bool {
	if checksEnabled && !e.usable("IsExpired", t, true) {
		return false
	}

	return t.expired(e.clock.Ticks())
}

// Remaining returns the number of ticks left before the timer expires, or
// zero if it has expired. Remaining is zero exactly when IsExpired is true.
// The timer is not modified.
func (e *Engine) Remaining(t *Timer) uint32 {
	if checksEnabled && !e.usable("Remaining", t, true) {
		return 0
	}

	elapsed := t.elapsed(e.clock.Ticks())
	if elapsed >= t.interval {
		return 0
	}

	return t.interval - elapsed
}

// IsExpiredEvaluatedOnce is the edge-triggered form of IsExpired. It returns
// true on the first call that observes the timer as expired, and false on
// every call after that until the timer is armed again with Set.
//
// Unlike IsExpired, this method modifies the timer.
func (e *Engine) IsExpiredEvaluatedOnce(t *Timer) bool {
	if checksEnabled && !e.usable("IsExpiredEvaluatedOnce", t, true) {
		return false
	}

	if t.evaluated {
		return false
	}

	if t.expired(e.clock.Ticks()) {
		t.evaluated = true
		return true
	}

	return false
}

// Elapsed returns the number of ticks since the timer was armed, computed
// with the same wraparound-safe arithmetic as IsExpired.
func (e *Engine) Elapsed(t *Timer) uint32 {
	if checksEnabled && !e.usable("Elapsed", t, true) {
		return 0
	}

	return t.elapsed(e.clock.Ticks())
}

// State classifies the timer without modifying it.
func (e *Engine) State(t *Timer) State {
	if checksEnabled && !e.usable("State", t, true) {
		return StateRunning
	}

	switch {
	case t.evaluated:
		return StateEvaluated

	case t.expired(e.clock.Ticks()):
		return StateExpired

	default:
		return StateRunning
	}
}
