package antjump

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/antjump/environment"
	ts "github.com/samuelfneumann/antjump/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Jump implements the jumping task for the Ant. The agent is rewarded
// only on the last step of an episode, based on the highest torso
// height it reached during the episode:
//
//	context:    -10 * |max height - goal|
//	no context: (max height - 0.7) + healthy reward * steps taken
//
// On every step, including the last, the control and contact costs of
// the step are subtracted from the reward.
//
// In context mode each episode has a goal height sampled uniformly from
// [GoalMin, GoalMax). Without context the goal is always 0.
//
// Episodes end when the torso falls below FallHeight or when the step
// limit is reached.
type Jump struct {
	context       bool
	healthyReward float64
	nonNegCosts   bool

	stepLimit *environment.StepLimit

	goals distuv.Uniform
}

// NewJump returns a new Jump task. Goals are sampled from a source
// seeded with seed.
func NewJump(c Config, seed uint64) *Jump {
	return &Jump{
		context:       c.Context,
		healthyReward: c.HealthyReward,
		nonNegCosts:   c.CtrlCostWeight >= 0 && c.ContactCostWeight >= 0,
		stepLimit:     environment.NewStepLimit(c.MaxEpisodeSteps),
		goals: distuv.Uniform{
			Min: GoalMin,
			Max: GoalMax,
			Src: rand.NewSource(seed),
		},
	}
}

// NewEpisode returns the bookkeeping for a new episode, sampling a new
// goal height if the task uses context
func (j *Jump) NewEpisode() Episode {
	var goal float64
	if j.context {
		goal = j.goals.Rand()
	}

	return Episode{Step: 0, MaxHeight: 0, Goal: goal}
}

// Fell returns whether a torso height means the Ant has fallen over
func (j *Jump) Fell(height float64) bool {
	return height < FallHeight
}

// End determines if a timestep is the last in the episode, either
// because the Ant fell or because the step limit was reached. If so,
// it changes the TimeStep's StepType to timestep.Last and sets its
// EndType. End returns whether the argument TimeStep is the last in
// the episode.
func (j *Jump) End(t *ts.TimeStep, fell bool) bool {
	if fell {
		t.StepType = ts.Last
		t.SetEnd(ts.TerminalStateReached)
		return true
	}

	return j.stepLimit.End(t)
}

// HeightReward returns the reward given on the last step of an
// episode, before costs are subtracted
func (j *Jump) HeightReward(e Episode) float64 {
	if j.context {
		// No healthy reward with context, the agent optimizes a penalty
		return -GoalDistanceScale * math.Abs(e.MaxHeight-e.Goal)
	}

	heightReward := e.MaxHeight - HeightOffset
	healthyReward := j.healthyReward * float64(e.Step)
	return heightReward + healthyReward
}

// Reward returns the reward for the latest step of an episode. The
// height reward is only given if last is true, and costs are
// subtracted on every step.
func (j *Jump) Reward(e Episode, last bool, costs float64) float64 {
	var reward float64
	if last {
		reward = j.HeightReward(e)
	}

	return reward - costs
}

// MaxEpisodeSteps returns the step limit of episodes
func (j *Jump) MaxEpisodeSteps() int {
	return j.stepLimit.EpisodeSteps()
}

// Context returns whether the task samples goal heights
func (j *Jump) Context() bool {
	return j.context
}

// Max returns the maximum possible reward
func (j *Jump) Max() float64 {
	if j.context && j.nonNegCosts {
		return 0.0
	}
	return math.Inf(1.0)
}

// Min returns the minimum possible reward
func (j *Jump) Min() float64 {
	return math.Inf(-1.0)
}

// RewardSpec returns the reward specification of the task
func (j *Jump) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	low := mat.NewVecDense(1, []float64{j.Min()})
	high := mat.NewVecDense(1, []float64{j.Max()})

	return environment.NewSpec(shape, environment.Reward, low, high,
		environment.Continuous)
}
