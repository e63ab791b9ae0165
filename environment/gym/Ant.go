//go:build gogym

// Package gym provides a physics.Simulator backed by the MuJoCo Ant of
// OpenAI Gym, registered as the "gogym" physics backend.
//
// This is made possible through the Go bindings for OpenAI Gym,
// found at https://github.com/samuelfneumann/GoGym. Gym must be
// installed with its MuJoCo extras (mujoco-py) in the Python
// environment that GoGym embeds.
package gym

import (
	"fmt"

	python "github.com/DataDog/go-python3"
	"github.com/pkg/errors"
	"github.com/samuelfneumann/antjump/environment"
	"github.com/samuelfneumann/antjump/environment/mujoco/physics"
	"github.com/samuelfneumann/gogym"
	"gonum.org/v1/gonum/mat"
)

// gym.envs.mujoco.ant_v3 and numpy Python modules
var (
	antModule   *python.PyObject
	numpyModule *python.PyObject
)

// init performs setup before running
func init() {
	antModule = importModule("gym.envs.mujoco.ant_v3")
	numpyModule = importModule("numpy")

	physics.Register("gogym", func(c physics.Config) (physics.Simulator,
		error) {
		sim, err := NewAnt(c)
		if err != nil {
			return nil, err
		}
		return sim, nil
	})
}

// Finalize performs cleanup of the embedded Python interpreter. No
// Simulator can be used after Finalize is called.
func Finalize() {
	gogym.Close()
}

// Ant is a physics.Simulator which runs the Gym Ant-v3 environment.
// Only the rigid-body simulation and the cost and observation accessors
// of the Gym environment are used, the reward and termination of the
// Gym environment are ignored.
type Ant struct {
	gogym.Environment
	config physics.Config

	initQPos []float64
	initQVel []float64
}

// NewAnt returns a new Ant simulator loading the Config's XML file
func NewAnt(c physics.Config) (*Ant, error) {
	kwargs := python.PyDict_New()
	defer kwargs.DecRef()

	args := map[string]*python.PyObject{
		"xml_file":                 python.PyUnicode_FromString(c.XMLFile),
		"ctrl_cost_weight":         python.PyFloat_FromDouble(c.CtrlCostWeight),
		"contact_cost_weight":      python.PyFloat_FromDouble(c.ContactCostWeight),
		"healthy_reward":           python.PyFloat_FromDouble(c.HealthyReward),
		"terminate_when_unhealthy": pyBool(c.TerminateWhenUnhealthy),
		"healthy_z_range": pyTuple(c.HealthyZRange.Min,
			c.HealthyZRange.Max),
		"contact_force_range": pyTuple(c.ContactForceRange.Min,
			c.ContactForceRange.Max),
		"reset_noise_scale": python.PyFloat_FromDouble(c.ResetNoiseScale),
		"exclude_current_positions_from_observation": pyBool(
			c.ExcludeCurrentPositions),
	}
	for key, value := range args {
		python.PyDict_SetItemString(kwargs, key, value)
		value.DecRef()
	}

	class := antModule.GetAttrString("AntEnv")
	if class == nil {
		return nil, pyError("newAnt: no AntEnv in gym.envs.mujoco.ant_v3")
	}
	defer class.DecRef()

	noArgs := python.PyTuple_New(0)
	defer noArgs.DecRef()

	pyEnv := class.Call(noArgs, kwargs)
	if pyEnv == nil {
		return nil, pyError("newAnt: could not construct AntEnv")
	}

	pyActionSpace := pyEnv.GetAttrString("action_space")
	defer pyActionSpace.DecRef()
	actionSpace, err := gogym.FromPythonSpace(pyActionSpace)
	if err != nil {
		return nil, fmt.Errorf("newAnt: %v", err)
	}

	pyObsSpace := pyEnv.GetAttrString("observation_space")
	defer pyObsSpace.DecRef()
	obsSpace, err := gogym.FromPythonSpace(pyObsSpace)
	if err != nil {
		return nil, fmt.Errorf("newAnt: %v", err)
	}

	env := gogym.New(pyEnv, "AntJump-v3", true, actionSpace, obsSpace)
	env.Seed(int(c.Seed))

	a := &Ant{
		Environment: env,
		config:      c,
	}

	a.initQPos, err = a.floats("init_qpos")
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("newAnt: %v", err)
	}
	a.initQVel, err = a.floats("init_qvel")
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("newAnt: %v", err)
	}

	return a, nil
}

// floats returns the float array attribute attr of the Gym environment
func (a *Ant) floats(attr string) ([]float64, error) {
	array := a.Env().GetAttrString(attr)
	if array == nil {
		return nil, pyError(fmt.Sprintf("no attribute %v", attr))
	}
	defer array.DecRef()

	return fromNumpy(array)
}

// InitState returns copies of the initial joint positions and
// velocities of the model
func (a *Ant) InitState() ([]float64, []float64) {
	qpos := append([]float64{}, a.initQPos...)
	qvel := append([]float64{}, a.initQVel...)
	return qpos, qvel
}

// DoSimulation applies the control and steps the model nFrames times
func (a *Ant) DoSimulation(control *mat.VecDense, nFrames int) error {
	ctrl := toNumpy(control.RawVector().Data)
	defer ctrl.DecRef()
	frames := python.PyLong_FromGoInt(nFrames)
	defer frames.DecRef()

	result := a.Env().CallMethodArgs("do_simulation", ctrl, frames)
	if result == nil {
		return pyError("doSimulation: could not step simulation")
	}
	result.DecRef()
	return nil
}

// SetState sets the joint positions and velocities of the model
func (a *Ant) SetState(qpos, qvel []float64) error {
	pyQPos := toNumpy(qpos)
	defer pyQPos.DecRef()
	pyQVel := toNumpy(qvel)
	defer pyQVel.DecRef()

	result := a.Env().CallMethodArgs("set_state", pyQPos, pyQVel)
	if result == nil {
		return pyError("setState: could not set state")
	}
	result.DecRef()
	return nil
}

// BodyXPos returns the world position of the named body
func (a *Ant) BodyXPos(body string) (*mat.VecDense, error) {
	name := python.PyUnicode_FromString(body)
	defer name.DecRef()

	pos := a.Env().CallMethodArgs("get_body_com", name)
	if pos == nil {
		python.PyErr_Clear()
		return nil, errors.Wrapf(physics.ErrUnknownBody, "bodyXPos: %q", body)
	}
	defer pos.DecRef()

	xpos, err := fromNumpy(pos)
	if err != nil {
		return nil, fmt.Errorf("bodyXPos: %v", err)
	}
	return mat.NewVecDense(len(xpos), xpos), nil
}

// ControlCost returns the weighted control cost of an action
func (a *Ant) ControlCost(action *mat.VecDense) float64 {
	return physics.ControlCost(a.config.CtrlCostWeight, action)
}

// ContactCost returns the weighted cost of the current contact forces
func (a *Ant) ContactCost() float64 {
	cost := a.Env().GetAttrString("contact_cost")
	if cost == nil {
		panic(pyError("contactCost: could not compute contact cost"))
	}
	defer cost.DecRef()

	return python.PyFloat_AsDouble(cost)
}

// Observation returns the base Ant observation
func (a *Ant) Observation() (*mat.VecDense, error) {
	obs := a.Env().CallMethodArgs("_get_obs")
	if obs == nil {
		return nil, pyError("observation: could not get observation")
	}
	defer obs.DecRef()

	data, err := fromNumpy(obs)
	if err != nil {
		return nil, fmt.Errorf("observation: %v", err)
	}
	return mat.NewVecDense(len(data), data), nil
}

// ActionSpec returns the action specification of the simulator
func (a *Ant) ActionSpec() environment.Spec {
	space := a.ActionSpace()

	var low, high, shape *mat.VecDense
	switch space.(type) {
	case *gogym.BoxSpace:
		low = space.Low()[0]
		high = space.High()[0]
		shape = mat.NewVecDense(low.Len(), nil)
	default:
		panic("actionSpec: invalid space type, the Ant requires a " +
			"GoGym BoxSpace")
	}

	return environment.NewSpec(shape, environment.Action, low, high,
		environment.Continuous)
}

// Close performs cleanup of environment resources
func (a *Ant) Close() error {
	a.Environment.Close()
	return nil
}
