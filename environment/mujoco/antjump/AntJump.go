// Package antjump implements the AntJump environment. In AntJump, the
// MuJoCo Ant quadruped must jump as high as it can, or, in context
// mode, as close as it can to a goal height sampled at the start of
// each episode.
//
// The rigid-body simulation is provided by a physics.Simulator. The
// AntJump environment itself only tracks episode progress and the
// highest torso height reached, builds the sparse terminal reward, and
// appends the goal height to the base Ant observation.
package antjump

import (
	"fmt"
	"log"

	"github.com/samuelfneumann/antjump/environment"
	"github.com/samuelfneumann/antjump/environment/mujoco/physics"
	ts "github.com/samuelfneumann/antjump/timestep"
	"gonum.org/v1/gonum/mat"
)

// AntJump implements the AntJump environment.
//
// Observations are the base Ant observations (joint positions without
// the root (x, y) position if configured so, joint velocities, and
// clipped external contact forces) with the goal height of the current
// episode appended as the final element.
//
// Actions are the torques of the Ant's 8 actuators. Actions are sent
// to the simulator as is.
//
// On each step, Step reports whether the Ant fell over: whether the
// torso height is below FallHeight. Episodes are also truncated by the
// step limit, in which case the returned TimeStep is the last in the
// episode with EndType timestep.Timeout, but the Ant did not fall.
// Stepping after the last TimeStep of an episode without calling Reset
// is not supported.
//
// AntJump is not safe for concurrent use.
type AntJump struct {
	sim  physics.Simulator
	task *Jump

	// starter gives the pose, qpos followed by qvel, that episodes
	// start from
	starter environment.Starter
	nq      int

	frameSkip int
	discount  float64

	episode         Episode
	info            Info
	currentTimeStep ts.TimeStep
}

// New returns a new AntJump environment simulated by the physics
// backend named in the Config, as well as the first TimeStep of the
// first episode.
func New(c Config, seed uint64) (*AntJump, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	sim, err := physics.Open(c.Backend, c.Physics(seed))
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	a, firstStep, err := NewWithSimulator(sim, c, seed)
	if err != nil {
		sim.Close()
		return nil, ts.TimeStep{}, err
	}
	return a, firstStep, nil
}

// NewWithSimulator returns a new AntJump environment simulated by sim,
// as well as the first TimeStep of the first episode. On success, the
// environment takes ownership of sim.
func NewWithSimulator(sim physics.Simulator, c Config,
	seed uint64) (*AntJump, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newWithSimulator: %v", err)
	}

	if c.HealthyZRange.Min != FallHeight {
		log.Printf("warning: healthy z range lower bound %v differs from "+
			"the fall height %v, episodes end at the fall height",
			c.HealthyZRange.Min, FallHeight)
	}

	qpos, qvel := sim.InitState()
	initState := append(append([]float64{}, qpos...), qvel...)

	var starter environment.Starter
	if c.NoisyReset {
		starter = environment.NewNoisyStarter(initState, c.ResetNoiseScale,
			seed)
	} else {
		starter = environment.NewFixedStarter(initState)
	}

	a := &AntJump{
		sim:       sim,
		task:      NewJump(c, seed),
		starter:   starter,
		nq:        len(qpos),
		frameSkip: c.FrameSkip,
		discount:  c.Discount,
	}

	firstStep, err := a.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newWithSimulator: %v", err)
	}
	return a, firstStep, nil
}

// Reset resets the environment to begin a new episode and returns the
// first TimeStep of the episode
func (a *AntJump) Reset() (ts.TimeStep, error) {
	a.episode = a.task.NewEpisode()

	obs, err := a.resetModel()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}

	a.info = Info{MaxHeight: a.episode.MaxHeight, Goal: a.episode.Goal}
	firstStep := ts.New(ts.First, 0, a.discount, obs, 0)
	a.currentTimeStep = firstStep

	return firstStep, nil
}

// resetModel sets the simulator to the starting pose and returns the
// starting observation
func (a *AntJump) resetModel() (*mat.VecDense, error) {
	start := a.starter.Start().RawVector().Data
	if err := a.sim.SetState(start[:a.nq], start[a.nq:]); err != nil {
		return nil, fmt.Errorf("could not set starting state: %v", err)
	}

	return a.Observation()
}

// Step takes one environmental step given some action. The returned
// bool is true only if the Ant fell over on this step.
func (a *AntJump) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	a.episode = a.episode.Next()

	if err := a.sim.DoSimulation(action, a.frameSkip); err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not run "+
			"simulation: %v", err)
	}

	torso, err := a.sim.BodyXPos(Torso)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not get "+
			"torso position: %v", err)
	}
	height := torso.AtVec(2)
	a.episode = a.episode.Observe(height)

	costs := a.sim.ControlCost(action) + a.sim.ContactCost()
	fell := a.task.Fell(height)

	obs, err := a.Observation()
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not get "+
			"observation: %v", err)
	}

	t := ts.New(ts.Mid, 0, a.discount, obs, a.episode.Step)
	last := a.task.End(&t, fell)
	t.Reward = a.task.Reward(a.episode, last, costs)

	a.info = Info{
		Height:    height,
		MaxHeight: a.episode.MaxHeight,
		Goal:      a.episode.Goal,
	}
	a.currentTimeStep = t

	return t, fell, nil
}

// Observation returns the base observation of the simulator with the
// goal height of the current episode appended
func (a *AntJump) Observation() (*mat.VecDense, error) {
	base, err := a.sim.Observation()
	if err != nil {
		return nil, fmt.Errorf("observation: %v", err)
	}

	obs := make([]float64, base.Len()+1)
	copy(obs, base.RawVector().Data)
	obs[len(obs)-1] = a.episode.Goal

	return mat.NewVecDense(len(obs), obs), nil
}

// CurrentTimeStep returns the current time step
func (a *AntJump) CurrentTimeStep() ts.TimeStep {
	return a.currentTimeStep
}

// Episode returns the bookkeeping of the current episode
func (a *AntJump) Episode() Episode {
	return a.episode
}

// Info returns the torso height, episode max height, and goal height
// of the latest step
func (a *AntJump) Info() Info {
	return a.info
}

// Task returns the Jump task of the environment
func (a *AntJump) Task() *Jump {
	return a.task
}

// ObservationSpec returns the observation specification of the
// environment
func (a *AntJump) ObservationSpec() environment.Spec {
	return environment.NewUnboundedSpec(a.currentTimeStep.Observation.Len(),
		environment.Observation)
}

// ActionSpec returns the action specification of the environment
func (a *AntJump) ActionSpec() environment.Spec {
	return a.sim.ActionSpec()
}

// DiscountSpec returns the discount specification of the environment
func (a *AntJump) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	bounds := mat.NewVecDense(1, []float64{a.discount})

	return environment.NewSpec(shape, environment.Discount, bounds, bounds,
		environment.Continuous)
}

// RewardSpec returns the reward specification of the environment
func (a *AntJump) RewardSpec() environment.Spec {
	return a.task.RewardSpec()
}

// Close releases the simulator
func (a *AntJump) Close() error {
	return a.sim.Close()
}

// String implements the fmt.Stringer interface
func (a *AntJump) String() string {
	return fmt.Sprintf("AntJump  |  step: %v  |  height: %.3f  |  "+
		"max height: %.3f  |  goal: %.3f", a.episode.Step, a.info.Height,
		a.info.MaxHeight, a.info.Goal)
}
