// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xmidt-org/chronon"
	"github.com/xmidt-org/swtimer"
)

// config holds the command line settings for the demo.
type config struct {
	initial  time.Duration
	interval time.Duration
	poll     time.Duration
	unit     time.Duration
	count    int
	lenient  bool
	verbose  bool
}

func parseConfig(args []string, output io.Writer) (cfg config, err error) {
	fs := flag.NewFlagSet("swtimer-demo", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.DurationVar(&cfg.initial, "initial", 5*time.Second, "delay before the first expiration")
	fs.DurationVar(&cfg.interval, "interval", 2*time.Second, "delay between subsequent expirations")
	fs.DurationVar(&cfg.poll, "poll", time.Millisecond, "how often the timer is polled")
	fs.DurationVar(&cfg.unit, "unit", swtimer.DefaultTickUnit, "duration of one clock tick")
	fs.IntVar(&cfg.count, "count", 0, "exit after this many expirations (0 runs forever)")
	fs.BoolVar(&cfg.lenient, "lenient", false, "log timer precondition violations instead of panicking")
	fs.BoolVar(&cfg.verbose, "verbose", false, "log the remaining ticks on each poll")

	err = fs.Parse(args)
	switch {
	case err != nil:
		return

	case cfg.poll <= 0:
		err = fmt.Errorf("the poll interval must be positive: %s", cfg.poll)

	case cfg.count < 0:
		err = fmt.Errorf("the count cannot be negative: %d", cfg.count)
	}

	return
}

// run polls a single timer, logging and re-arming it each time it expires.
// Both the timer's ticks and the wait between polls come from the given clock.
func run(ctx context.Context, cfg config, source chronon.Clock, logger logrus.FieldLogger) error {
	clock, err := swtimer.NewWallClock(
		swtimer.WithChrononClock(source),
		swtimer.WithTickUnit(cfg.unit),
	)

	if err != nil {
		return err
	}

	var failFunc swtimer.FailFunc = swtimer.PanicOnViolation
	if cfg.lenient {
		failFunc = swtimer.LogViolations(logger)
	}

	engine, err := swtimer.NewEngine(
		swtimer.WithClock(clock),
		swtimer.WithFailFunc(failFunc),
	)

	if err != nil {
		return err
	}

	var t swtimer.Timer
	engine.Set(&t, clock.Interval(cfg.initial))
	logger.WithField("ticks", t.Interval()).Info("timer armed")

	for fired := 0; ; {
		if engine.IsExpired(&t) {
			fired++
			logger.WithFields(logrus.Fields{
				"count": fired,
				"tick":  engine.Now(),
			}).Info("timer expired")

			if cfg.count > 0 && fired >= cfg.count {
				return nil
			}

			engine.Set(&t, clock.Interval(cfg.interval))
		} else if cfg.verbose {
			logger.WithField("remaining", engine.Remaining(&t)).Debug("waiting")
		}

		pt := source.NewTimer(cfg.poll)
		select {
		case <-ctx.Done():
			pt.Stop()
			return ctx.Err()

		case <-pt.C():
		}
	}
}

func main() {
	logger := logrus.New()
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}

		logger.WithError(err).Error("invalid arguments")
		os.Exit(2)
	}

	if cfg.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, chronon.SystemClock(), logger)
	stop()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("demo failed")
		os.Exit(1)
	}
}
