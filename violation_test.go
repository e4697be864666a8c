// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

//go:build !swtimer_nocheck

package swtimer

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
)

type ViolationTestSuite struct {
	suite.Suite

	clock      *fakeTicks
	violations []*Violation
}

func (suite *ViolationTestSuite) SetupTest() {
	suite.clock = new(fakeTicks)
	suite.violations = nil
}

func (suite *ViolationTestSuite) SetupSubTest() {
	suite.SetupTest()
}

// record is a FailFunc that captures violations and continues.
func (suite *ViolationTestSuite) record(v *Violation) {
	suite.violations = append(suite.violations, v)
}

// newEngine creates an Engine that records violations instead of panicking.
func (suite *ViolationTestSuite) newEngine(opts ...EngineOption) *Engine {
	e, err := NewEngine(append(opts, WithFailFunc(suite.record))...)
	suite.Require().NoError(err)
	suite.Require().NotNil(e)
	return e
}

// assertViolation checks the single recorded violation.
func (suite *ViolationTestSuite) assertViolation(op, condition string, target error) {
	suite.Require().Len(suite.violations, 1)
	v := suite.violations[0]
	suite.Equal(op, v.Op)
	suite.Equal(condition, v.Condition)
	suite.ErrorIs(v, target)
	suite.Contains(v.Error(), condition)

	// attributed to the code calling the Engine, i.e. this file
	suite.Equal("violation_test.go", filepath.Base(v.File))
	suite.Positive(v.Line)
}

func (suite *ViolationTestSuite) TestNilTimer() {
	suite.Run("Set", func() {
		suite.newEngine(WithClock(suite.clock)).Set(nil, 10)
		suite.assertViolation("Set", "timer != nil", ErrNilTimer)
	})

	suite.Run("IsExpired", func() {
		suite.False(suite.newEngine(WithClock(suite.clock)).IsExpired(nil))
		suite.assertViolation("IsExpired", "timer != nil", ErrNilTimer)
	})

	suite.Run("Remaining", func() {
		suite.Zero(suite.newEngine(WithClock(suite.clock)).Remaining(nil))
		suite.assertViolation("Remaining", "timer != nil", ErrNilTimer)
	})

	suite.Run("IsExpiredEvaluatedOnce", func() {
		suite.False(suite.newEngine(WithClock(suite.clock)).IsExpiredEvaluatedOnce(nil))
		suite.assertViolation("IsExpiredEvaluatedOnce", "timer != nil", ErrNilTimer)
	})

	suite.Run("Elapsed", func() {
		suite.Zero(suite.newEngine(WithClock(suite.clock)).Elapsed(nil))
		suite.assertViolation("Elapsed", "timer != nil", ErrNilTimer)
	})

	suite.Run("State", func() {
		suite.Equal(StateRunning, suite.newEngine(WithClock(suite.clock)).State(nil))
		suite.assertViolation("State", "timer != nil", ErrNilTimer)
	})
}

func (suite *ViolationTestSuite) TestNoClock() {
	var t Timer

	suite.Run("Set", func() {
		suite.newEngine().Set(&t, 10)
		suite.assertViolation("Set", "clock != nil", ErrNoClock)
		suite.Zero(t.Interval())
	})

	suite.Run("IsExpired", func() {
		suite.False(suite.newEngine().IsExpired(&t))
		suite.assertViolation("IsExpired", "clock != nil", ErrNoClock)
	})

	suite.Run("Remaining", func() {
		suite.Zero(suite.newEngine().Remaining(&t))
		suite.assertViolation("Remaining", "clock != nil", ErrNoClock)
	})

	suite.Run("IsExpiredEvaluatedOnce", func() {
		suite.False(suite.newEngine().IsExpiredEvaluatedOnce(&t))
		suite.assertViolation("IsExpiredEvaluatedOnce", "clock != nil", ErrNoClock)
		suite.False(t.Evaluated())
	})

	suite.Run("Now", func() {
		suite.Zero(suite.newEngine().Now())
		suite.assertViolation("Now", "clock != nil", ErrNoClock)
	})
}

func (suite *ViolationTestSuite) TestInitNilClock() {
	e := suite.newEngine(WithClock(suite.clock))
	e.Init(nil)
	suite.assertViolation("Init", "clock != nil", ErrNilClock)

	// the previous clock is retained
	suite.clock.Set(77)
	suite.Equal(uint32(77), e.Now())
}

func (suite *ViolationTestSuite) TestPanicByDefault() {
	suite.Run("ZeroEngine", func() {
		var e Engine
		var t Timer
		suite.assertPanic(ErrNoClock, func() { e.Set(&t, 1) })
	})

	suite.Run("NilEngine", func() {
		var e *Engine
		suite.assertPanic(ErrNoClock, func() { e.Now() })
	})

	suite.Run("NilTimer", func() {
		e, err := NewEngine(WithClock(suite.clock))
		suite.Require().NoError(err)
		suite.assertPanic(ErrNilTimer, func() { e.IsExpired(nil) })
	})

	suite.Run("InitNilClock", func() {
		var e Engine
		suite.assertPanic(ErrNilClock, func() { e.Init(nil) })
	})
}

// assertPanic verifies that f panics with a *Violation wrapping target.
func (suite *ViolationTestSuite) assertPanic(target error, f func()) {
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		f()
	}()

	suite.Require().NotNil(recovered)
	v, ok := recovered.(*Violation)
	suite.Require().True(ok)
	suite.ErrorIs(v, target)
}

func (suite *ViolationTestSuite) TestIgnoreViolations() {
	e, err := NewEngine(WithFailFunc(IgnoreViolations))
	suite.Require().NoError(err)

	var t Timer
	suite.NotPanics(func() {
		e.Set(&t, 5)
		suite.False(e.IsExpired(&t))
		e.Init(nil)
	})
}

func (suite *ViolationTestSuite) TestLogViolations() {
	logger, hook := logtest.NewNullLogger()
	e, err := NewEngine(WithFailFunc(LogViolations(logger)))
	suite.Require().NoError(err)

	var t Timer
	suite.False(e.IsExpired(&t))

	entry := hook.LastEntry()
	suite.Require().NotNil(entry)
	suite.Equal(logrus.ErrorLevel, entry.Level)
	suite.Equal("IsExpired", entry.Data["op"])
	suite.Equal("clock != nil", entry.Data["condition"])
	suite.Equal("violation_test.go", filepath.Base(entry.Data["file"].(string)))

	loggedErr, ok := entry.Data[logrus.ErrorKey].(error)
	suite.Require().True(ok)
	suite.True(errors.Is(loggedErr, ErrNoClock))
}

func (suite *ViolationTestSuite) TestLogViolationsStandardLogger() {
	std := logrus.StandardLogger()
	previousOut := std.Out
	previousHooks := std.ReplaceHooks(make(logrus.LevelHooks))
	defer func() {
		std.SetOutput(previousOut)
		std.ReplaceHooks(previousHooks)
	}()

	std.SetOutput(io.Discard)
	hook := logtest.NewLocal(std)

	f := LogViolations(nil)
	suite.Require().NotNil(f)
	f(&Violation{Op: "Set", Condition: "timer != nil", File: "main.go", Line: 7, Err: ErrNilTimer})

	suite.Require().Len(hook.AllEntries(), 1)
	entry := hook.LastEntry()
	suite.Equal(logrus.ErrorLevel, entry.Level)
	suite.Equal("Set", entry.Data["op"])
	suite.Equal("main.go", entry.Data["file"])
	suite.Equal(7, entry.Data["line"])
	suite.Equal(ErrNilTimer, entry.Data[logrus.ErrorKey])
}

func (suite *ViolationTestSuite) TestUnwrap() {
	v := &Violation{Op: "Set", Condition: "timer != nil", File: "main.go", Line: 12, Err: ErrNilTimer}
	suite.Same(ErrNilTimer, v.Unwrap())
	suite.Equal("main.go:12: Set: precondition [timer != nil] failed: the timer is nil", v.Error())
}

func TestViolation(t *testing.T) {
	suite.Run(t, new(ViolationTestSuite))
}
