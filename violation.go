// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package swtimer

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNilTimer indicates that a nil *Timer was passed to an Engine.
	ErrNilTimer = errors.New("the timer is nil")

	// ErrNilClock indicates that Engine.Init was passed a nil Clock.
	ErrNilClock = errors.New("the clock is nil")

	// ErrNoClock indicates that an Engine was used before a Clock was set.
	ErrNoClock = errors.New("no clock has been set")
)

// Violation describes a failed precondition. Violations are developer errors,
// such as a nil Timer or an Engine used before Init, and never describe the
// outcome of a timer query.
//
// A Violation wraps one of ErrNilTimer, ErrNilClock, or ErrNoClock, so
// errors.Is can be used to categorize it.
type Violation struct {
	// Op is the name of the Engine method that detected the violation.
	Op string

	// Condition is the precondition that failed, e.g. "timer != nil".
	Condition string

	// File and Line locate the code that called Op.
	File string
	Line int

	// Err is the categorizing sentinel error.
	Err error
}

// newViolation creates a Violation whose location is taken from the stack frame
// at the given runtime.Caller depth.
func newViolation(callerSkip int, op, condition string, err error) *Violation {
	v := &Violation{
		Op:        op,
		Condition: condition,
		Err:       err,
	}

	var ok bool
	if _, v.File, v.Line, ok = runtime.Caller(callerSkip); !ok {
		v.File = "unknown"
	}

	return v
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s:%d: %s: precondition [%s] failed: %s", v.File, v.Line, v.Op, v.Condition, v.Err)
}

func (v *Violation) Unwrap() error {
	return v.Err
}

// FailFunc is the fail-fast hook an Engine invokes with each Violation. If a
// FailFunc returns, the operation that detected the violation does nothing and
// returns its zero result.
type FailFunc func(*Violation)

// PanicOnViolation is the default FailFunc. It panics with the Violation.
func PanicOnViolation(v *Violation) {
	panic(v)
}

// IgnoreViolations is a FailFunc that drops every Violation.
func IgnoreViolations(*Violation) {}

// LogViolations returns a FailFunc that logs each Violation at error level
// to the given logger and then continues. If l is nil, the logrus standard
// logger is used.
func LogViolations(l logrus.FieldLogger) FailFunc {
	if l == nil {
		l = logrus.StandardLogger()
	}

	return func(v *Violation) {
		l.WithFields(logrus.Fields{
			"op":        v.Op,
			"condition": v.Condition,
			"file":      v.File,
			"line":      v.Line,
		}).WithError(v.Err).Error("timer precondition violated")
	}
}
