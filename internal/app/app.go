// Package app drives a simulation from its initial state until the infection
// dies out or a step limit is reached.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"sir-ca/internal/core"
	"sir-ca/internal/sims/sir"
)

// Sim is a core.Sim that can tally its population.
type Sim interface {
	core.Sim
	Stats() sir.PopulationStats
}

// advancer is implemented by sims whose step can fail.
type advancer interface {
	Advance() error
}

// Sample is the population after a given step. Step 0 is the initial grid.
type Sample struct {
	Step int
	sir.PopulationStats
}

// Result summarises a finished run.
type Result struct {
	Steps        int
	Final        sir.PopulationStats
	PeakInfected int
	PeakStep     int
	// Extinct reports that the run ended because no cell was infected.
	Extinct bool
	Series  []Sample

	Elapsed  time.Duration
	StepMean time.Duration
	StepMax  time.Duration
}

// Options tunes a Runner. The zero value runs until extinction without
// logging progress.
type Options struct {
	MaxSteps int
	LogEvery int
	Logger   *slog.Logger
	Series   *SeriesWriter
}

// Runner steps a Sim and records its population over time.
type Runner struct {
	sim  Sim
	opts Options
	log  *slog.Logger

	timer *core.StepTimer
}

// NewRunner constructs a Runner for sim.
func NewRunner(sim Sim, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		sim:  sim,
		opts: opts,
		log:  logger.With("sim", sim.Name()),
	}
}

// Run steps the simulation until no cell is infected, MaxSteps is reached, or
// ctx is cancelled. The partial result is returned alongside any error, and
// the series writer is flushed on every return.
func (r *Runner) Run(ctx context.Context) (res Result, err error) {
	if r.opts.Series != nil {
		defer func() {
			err = errors.Join(err, r.opts.Series.Flush())
		}()
	}

	r.timer = core.NewStepTimer()
	stats := r.sim.Stats()
	res.PeakInfected = stats.Infected
	if err := r.record(&res, 0, stats); err != nil {
		return res, err
	}

	size := r.sim.Size()
	r.log.Info("run started",
		"width", size.W,
		"height", size.H,
		"susceptible", stats.Susceptible,
		"infected", stats.Infected,
		"max_steps", r.opts.MaxSteps,
	)

	for stats.Infected > 0 {
		if r.opts.MaxSteps > 0 && res.Steps >= r.opts.MaxSteps {
			break
		}
		if err := ctx.Err(); err != nil {
			r.finish(&res, stats)
			return res, err
		}

		var stepErr error
		d := r.timer.Time(func() { stepErr = r.advance() })
		if stepErr != nil {
			r.finish(&res, stats)
			return res, stepErr
		}

		res.Steps++
		stats = r.sim.Stats()
		if stats.Infected > res.PeakInfected {
			res.PeakInfected = stats.Infected
			res.PeakStep = res.Steps
		}
		if err := r.record(&res, res.Steps, stats); err != nil {
			r.finish(&res, stats)
			return res, err
		}

		if r.opts.LogEvery > 0 && res.Steps%r.opts.LogEvery == 0 {
			r.log.Info("step",
				"step", res.Steps,
				"susceptible", stats.Susceptible,
				"infected", stats.Infected,
				"recovered", stats.Recovered,
			)
		} else {
			r.log.Debug("step",
				"step", res.Steps,
				"infected", stats.Infected,
				"duration", d,
			)
		}
	}

	r.finish(&res, stats)
	if res.Extinct {
		r.log.Info("infection has died out",
			"steps", res.Steps,
			"recovered", stats.Recovered,
			"peak_infected", res.PeakInfected,
			"peak_step", res.PeakStep,
			"elapsed", res.Elapsed,
		)
	} else {
		r.log.Warn("step limit reached",
			"steps", res.Steps,
			"infected", stats.Infected,
			"elapsed", res.Elapsed,
		)
	}
	return res, nil
}

func (r *Runner) advance() error {
	if a, ok := r.sim.(advancer); ok {
		return a.Advance()
	}
	r.sim.Step()
	return nil
}

func (r *Runner) record(res *Result, step int, stats sir.PopulationStats) error {
	sample := Sample{Step: step, PopulationStats: stats}
	res.Series = append(res.Series, sample)
	if r.opts.Series != nil {
		return r.opts.Series.Write(sample)
	}
	return nil
}

func (r *Runner) finish(res *Result, stats sir.PopulationStats) {
	res.Final = stats
	res.Extinct = stats.Infected == 0
	res.Elapsed = r.timer.Elapsed()
	res.StepMean = r.timer.Mean()
	res.StepMax = r.timer.Max()
}
