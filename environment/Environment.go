// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	ts "github.com/samuelfneumann/antjump/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when episodes should be ended. If a TimeStep should
// be the last in its episode, End changes its StepType to
// timestep.Last, records the reason with SetEnd, and returns true.
type Ender interface {
	End(*ts.TimeStep) bool
}

// Environment implements a simulated environment, which includes a task
// to complete. Environments start ready to use.
type Environment interface {
	// Reset resets the environment between episodes
	Reset() (ts.TimeStep, error)

	// Step takes one environmental step given some action. The
	// returned bool reports whether the environment reached a
	// terminal state.
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)

	CurrentTimeStep() ts.TimeStep

	RewardSpec() Spec
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}

// Closer is an Environment that holds resources which must be released
// once it is no longer needed
type Closer interface {
	Environment
	Close() error
}
