package experiment

import (
	"context"
	"fmt"

	"github.com/samuelfneumann/antjump/agent"
	env "github.com/samuelfneumann/antjump/environment"
	"github.com/samuelfneumann/antjump/experiment/checkpointer"
	"github.com/samuelfneumann/antjump/experiment/trackers"
	ts "github.com/samuelfneumann/antjump/timestep"
	"github.com/samuelfneumann/antjump/utils/progressbar"
	"go.uber.org/multierr"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment
	agent.Agent
	maxSteps     int
	currentSteps int
	episodes     int

	trackers      []trackers.Tracker
	checkpointers []checkpointer.Checkpointer
	progress      *progressbar.ProgressBar
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for, the t parameter is a slice
// of trackers.Tracker which determine what data is saved, and the c
// parameter is a slice of checkpointer.Checkpointer which are called
// after every environmental step.
func NewOnline(e env.Environment, a agent.Agent, steps int,
	t []trackers.Tracker, c []checkpointer.Checkpointer) *Online {
	return &Online{
		Environment:   e,
		Agent:         a,
		maxSteps:      steps,
		trackers:      t,
		checkpointers: c,
	}
}

// Register registers a trackers.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RegisterCheckpointer registers a checkpointer.Checkpointer with an
// Experiment
func (o *Online) RegisterCheckpointer(c checkpointer.Checkpointer) {
	o.checkpointers = append(o.checkpointers, c)
}

// SetProgressBar sets a progress bar which is incremented on every
// environmental step. The bar should reach 100% after the experiment's
// step limit.
func (o *Online) SetProgressBar(p *progressbar.ProgressBar) {
	o.progress = p
}

// RunEpisode runs a single episode of the experiment. The episode ends
// early if the step limit of the experiment is reached or ctx is
// cancelled.
func (o *Online) RunEpisode(ctx context.Context) (bool, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return true, fmt.Errorf("runEpisode: could not reset: %v", err)
	}
	if err := o.Agent.ObserveFirst(step); err != nil {
		return true, fmt.Errorf("runEpisode: %v", err)
	}
	o.track(step)

	// Run the next timestep
	for !step.Last() && o.currentSteps < o.maxSteps {
		if err := ctx.Err(); err != nil {
			return true, err
		}
		o.currentSteps++

		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return true, fmt.Errorf("runEpisode: step %v: %v",
				o.currentSteps, err)
		}

		// Cache the environment step in each Tracker
		o.track(step)
		if err := o.checkpoint(step); err != nil {
			return true, fmt.Errorf("runEpisode: %v", err)
		}
		if o.progress != nil {
			o.progress.Increment()
		}

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return true, fmt.Errorf("runEpisode: %v", err)
		}
		if err := o.Agent.Step(); err != nil {
			return true, fmt.Errorf("runEpisode: %v", err)
		}
	}

	if step.Last() {
		o.episodes++
		o.Agent.EndEpisode()
	}

	// Return whether or not the max timestep limit has been reached
	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps, starting a new
// episode whenever one ends
func (o *Online) Run(ctx context.Context) error {
	if o.progress != nil {
		defer o.progress.Close()
	}

	ended := false
	for !ended {
		var err error
		if ended, err = o.RunEpisode(ctx); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}
	return nil
}

// Steps returns the number of environmental steps taken
func (o *Online) Steps() int {
	return o.currentSteps
}

// Episodes returns the number of episodes finished
func (o *Online) Episodes() int {
	return o.episodes
}

// Save saves all the data cached by the Trackers to disk. All Trackers
// are saved even if some fail.
func (o *Online) Save() error {
	var err error
	for _, tracker := range o.trackers {
		err = multierr.Append(err, tracker.Save())
	}
	return err
}

// track tracks the current timestep by caching its data in each Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}

// checkpoint passes the current timestep to each Checkpointer
func (o *Online) checkpoint(t ts.TimeStep) error {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			return err
		}
	}
	return nil
}
