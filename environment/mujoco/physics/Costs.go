package physics

import (
	"github.com/samuelfneumann/antjump/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// ControlCost returns weight * ||action||²
func ControlCost(weight float64, action mat.Vector) float64 {
	return weight * mat.Dot(action, action)
}

// ContactForces returns the raw external contact forces clipped
// element-wise to the contact force range
func ContactForces(raw []float64, forceRange r1.Interval) []float64 {
	return floatutils.ClipSlice(raw, forceRange.Min, forceRange.Max)
}

// ContactCost returns weight * ||forces||² for already clipped contact
// forces
func ContactCost(weight float64, forces []float64) float64 {
	cost := 0.0
	for _, f := range forces {
		cost += f * f
	}
	return weight * cost
}

// BaseObservation concatenates joint positions, joint velocities, and
// clipped contact forces into the base locomotion observation. If
// exclude is true, the root (x, y) position (the first two elements
// of qpos) is dropped.
func BaseObservation(qpos, qvel, forces []float64,
	exclude bool) *mat.VecDense {
	position := qpos
	if exclude {
		position = qpos[2:]
	}

	obs := make([]float64, 0, len(position)+len(qvel)+len(forces))
	obs = append(obs, position...)
	obs = append(obs, qvel...)
	obs = append(obs, forces...)

	return mat.NewVecDense(len(obs), obs)
}
