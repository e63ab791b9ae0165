package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter samples starting states uniformly within a set of
// per-dimension bounds
type UniformStarter struct {
	features int
	seed     uint64
	rand     *distmv.Uniform
}

// NewUniformStarter returns a new UniformStarter which samples
// dimension i of the starting state from bounds[i]
func NewUniformStarter(bounds []r1.Interval, seed uint64) *UniformStarter {
	source := rand.NewSource(seed)
	rand := distmv.NewUniform(bounds, source)

	return &UniformStarter{len(bounds), seed, rand}
}

// NewNoisyStarter returns a UniformStarter whose samples are the
// argument state perturbed element-wise by noise drawn uniformly from
// [-scale, scale]
func NewNoisyStarter(state []float64, scale float64,
	seed uint64) *UniformStarter {
	bounds := make([]r1.Interval, len(state))
	for i := range bounds {
		bounds[i] = r1.Interval{Min: state[i] - scale, Max: state[i] + scale}
	}

	return NewUniformStarter(bounds, seed)
}

// Start samples and returns a starting state
func (u *UniformStarter) Start() *mat.VecDense {
	return mat.NewVecDense(u.features, u.rand.Rand(nil))
}

// FixedStarter always starts episodes from the same state
type FixedStarter struct {
	state []float64
}

// NewFixedStarter returns a new FixedStarter which starts episodes in
// the argument state. The state is copied.
func NewFixedStarter(state []float64) *FixedStarter {
	backing := make([]float64, len(state))
	copy(backing, state)

	return &FixedStarter{backing}
}

// Start returns a copy of the fixed starting state
func (f *FixedStarter) Start() *mat.VecDense {
	backing := make([]float64, len(f.state))
	copy(backing, f.state)

	return mat.NewVecDense(len(backing), backing)
}
