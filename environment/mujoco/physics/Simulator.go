// Package physics defines the capabilities a rigid-body simulation must
// provide for MuJoCo-style locomotion environments, along with a
// registry of simulation backends.
//
// Concrete backends live behind build tags since each needs a native
// toolchain: the cgo MuJoCo backend registers itself as "mujoco" when
// built with -tags mujoco, and the OpenAI Gym backend registers itself
// as "gogym" when built with -tags gogym.
package physics

import (
	"github.com/samuelfneumann/antjump/environment"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Simulator is a loaded physics model together with the accessors of
// the base locomotion environment built on top of it. Environments
// depend only on this interface so that they can be driven by any
// backend, or by a scripted simulator in tests.
type Simulator interface {
	// DoSimulation applies the control and advances the simulation
	// nFrames integration steps
	DoSimulation(control *mat.VecDense, nFrames int) error

	// SetState sets the joint positions and velocities of the model
	SetState(qpos, qvel []float64) error

	// InitState returns copies of the initial joint positions and
	// velocities of the model
	InitState() (qpos, qvel []float64)

	// BodyXPos returns the (x, y, z) world position of a body
	BodyXPos(body string) (*mat.VecDense, error)

	// ControlCost returns the weighted control penalty of an action
	ControlCost(action *mat.VecDense) float64

	// ContactCost returns the weighted penalty of the current external
	// contact forces
	ContactCost() float64

	// Observation returns the base environment's state observation
	Observation() (*mat.VecDense, error)

	ActionSpec() environment.Spec
	Close() error
}

// Config holds the parameters of the base locomotion environment which
// backends need in order to load a model and compute costs and
// observations.
type Config struct {
	XMLFile   string
	FrameSkip int
	Seed      uint64

	CtrlCostWeight         float64
	ContactCostWeight      float64
	HealthyReward          float64
	TerminateWhenUnhealthy bool
	HealthyZRange          r1.Interval
	ContactForceRange      r1.Interval
	ResetNoiseScale        float64

	// ExcludeCurrentPositions drops the root (x, y) position from the
	// observation
	ExcludeCurrentPositions bool
}
