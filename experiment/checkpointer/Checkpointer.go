// Package checkpointer implements Checkpointers, which periodically
// save snapshots of an experiment to disk while it runs
package checkpointer

import ts "github.com/samuelfneumann/antjump/timestep"

// Renderer is an object that can draw its current state to an image
// file
type Renderer interface {
	Render(filename string) error
}

// Checkpointer checkpoints objects based on the stream of
// timestep.TimeSteps seen in an experiment. Checkpoint is called once
// for every TimeStep returned by the environment.
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}
