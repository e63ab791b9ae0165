// Package random implements an agent which selects actions uniformly
// at random from the action space of its environment and never learns.
package random

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/antjump/agent"
	"github.com/samuelfneumann/antjump/environment"
	ts "github.com/samuelfneumann/antjump/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// Config implements a configuration for the Random agent
type Config struct{}

// CreateAgent creates a new Random agent for an environment
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	return New(env.ActionSpec(), seed)
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	return nil
}

// Type returns the type of agent the Config describes
func (c Config) Type() agent.Type {
	return agent.Random
}

// Random implements an agent with a uniform random policy over a
// bounded continuous action space
type Random struct {
	policy *distmv.Uniform
	eval   bool
}

// New returns a new Random agent acting in the given action space
func New(actionSpec environment.Spec, seed uint64) (*Random, error) {
	if actionSpec.Cardinality != environment.Continuous {
		return nil, fmt.Errorf("new: random agent requires a continuous " +
			"action space")
	}

	low := actionSpec.LowerBound
	high := actionSpec.UpperBound
	bounds := make([]r1.Interval, low.Len())
	for i := range bounds {
		lo, hi := low.AtVec(i), high.AtVec(i)
		if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return nil, fmt.Errorf("new: action dimension %v is unbounded", i)
		}
		bounds[i] = r1.Interval{Min: lo, Max: hi}
	}

	source := rand.NewSource(seed)
	return &Random{policy: distmv.NewUniform(bounds, source)}, nil
}

// SelectAction samples an action uniformly from the action space
func (r *Random) SelectAction(_ ts.TimeStep) *mat.VecDense {
	action := r.policy.Rand(nil)
	return mat.NewVecDense(len(action), action)
}

// Eval sets the policy to evaluation mode
func (r *Random) Eval() { r.eval = true }

// Train sets the policy to training mode
func (r *Random) Train() { r.eval = false }

// IsEval returns whether the policy is in evaluation mode
func (r *Random) IsEval() bool { return r.eval }

// Step performs no update
func (r *Random) Step() error { return nil }

// Observe records nothing
func (r *Random) Observe(_ mat.Vector, _ ts.TimeStep) error { return nil }

// ObserveFirst records nothing
func (r *Random) ObserveFirst(_ ts.TimeStep) error { return nil }

// EndEpisode does nothing
func (r *Random) EndEpisode() {}
