// Package runner drives a model from outside: it paces steps, applies queued
// commands between steps, samples populations and reports progress.
package runner

import (
	"context"
	"fmt"
	"maps"
	"time"

	"cellsociety/internal/core"

	"github.com/charmbracelet/log"
)

// Recorder receives population samples for one run.
type Recorder interface {
	Record(generation int, counts map[string]int) error
	Finish(steps int) error
}

// Command mutates the model on the runner's goroutine.
type Command func(m core.Model) error

// Options configures Run.
type Options struct {
	// Steps bounds the run; zero runs until the context ends or Until holds.
	Steps int
	// TPS limits steps per second; zero steps as fast as possible.
	TPS int
	// SampleEvery records every Nth generation. Zero means every generation.
	SampleEvery int

	Recorder Recorder
	Logger   *log.Logger

	// Inbox delivers commands that are applied before the next step.
	Inbox <-chan Command
	// Observe is called after every step with the runner still owning m.
	Observe func(m core.Model)
	// Until stops the run early once it reports true.
	Until func(m core.Model) bool
}

// Result summarizes a finished run.
type Result struct {
	Steps      int
	Generation int
	Population map[string]int
	Elapsed    time.Duration
	// Settled is true when Until ended the run.
	Settled bool
}

// Run steps m until opts.Steps is reached, Until holds or ctx ends. A
// cancelled context is reported as ctx.Err() alongside the partial result.
func Run(ctx context.Context, m core.Model, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	every := opts.SampleEvery
	if every <= 0 {
		every = 1
	}

	var tick <-chan time.Time
	var pace *core.FixedStep
	if opts.TPS > 0 {
		pace = core.NewFixedStep(opts.TPS)
		ticker := time.NewTicker(pace.Interval())
		defer ticker.Stop()
		tick = ticker.C
	}

	inbox := opts.Inbox
	start := time.Now()
	res := Result{}
	finish := func(err error) (Result, error) {
		res.Generation = m.Generation()
		res.Population = m.Population()
		res.Elapsed = time.Since(start)
		if opts.Recorder != nil {
			if ferr := opts.Recorder.Finish(res.Steps); ferr != nil && err == nil {
				err = fmt.Errorf("runner: finish: %w", ferr)
			}
		}
		logger.Info("run finished", "model", m.Name(), "steps", res.Steps, "generation", res.Generation,
			"elapsed", res.Elapsed.Round(time.Millisecond), "population", res.Population)
		return res, err
	}

	if err := sample(opts.Recorder, m); err != nil {
		return finish(err)
	}
	logger.Debug("run started", "model", m.Name(), "generation", m.Generation(), "population", m.Population())

	for opts.Steps <= 0 || res.Steps < opts.Steps {
		if tick != nil {
			select {
			case <-ctx.Done():
				return finish(ctx.Err())
			case cmd, ok := <-inbox:
				if !ok {
					inbox = nil
					continue
				}
				apply(m, cmd, logger)
				if opts.Observe != nil {
					opts.Observe(m)
				}
				continue
			case now := <-tick:
				if !pace.Advance(now) {
					continue
				}
			}
		} else if err := ctx.Err(); err != nil {
			return finish(err)
		}
		inbox = drain(m, inbox, logger)

		m.Update()
		res.Steps++
		if m.Generation()%every == 0 {
			if err := sample(opts.Recorder, m); err != nil {
				return finish(err)
			}
		}
		if logger.GetLevel() <= log.DebugLevel {
			logger.Debug("step", "generation", m.Generation(), "population", m.Population())
		}
		if opts.Observe != nil {
			opts.Observe(m)
		}
		if opts.Until != nil && opts.Until(m) {
			res.Settled = true
			break
		}
	}
	return finish(nil)
}

func sample(r Recorder, m core.Model) error {
	if r == nil {
		return nil
	}
	if err := r.Record(m.Generation(), maps.Clone(m.Population())); err != nil {
		return fmt.Errorf("runner: record generation %d: %w", m.Generation(), err)
	}
	return nil
}

// apply runs cmd. A rejected command leaves the model unchanged and the run
// continues.
func apply(m core.Model, cmd Command, logger *log.Logger) {
	if cmd == nil {
		return
	}
	if err := cmd(m); err != nil {
		logger.Warn("command rejected", "err", err)
	}
}

// drain applies every queued command and returns the inbox, or nil once it
// has been closed.
func drain(m core.Model, inbox <-chan Command, logger *log.Logger) <-chan Command {
	for {
		select {
		case cmd, ok := <-inbox:
			if !ok {
				return nil
			}
			apply(m, cmd, logger)
		default:
			return inbox
		}
	}
}
