//go:build mujoco

// Package mujocoenv implements a physics.Simulator on top of the MuJoCo
// 2.0 C library.
//
// The MuJoCo headers and library must be visible to cgo, for example:
//
//	export CGO_CFLAGS="-I$HOME/.mujoco/mujoco200_linux/include -mavx"
//	export CGO_LDFLAGS="-L$HOME/.mujoco/mujoco200_linux/bin"
//
// The activation key is read from $MUJOCO_KEY, defaulting to
// ~/.mujoco/mjkey.txt.
package mujocoenv

// #cgo CFLAGS: -O2 -pthread
// #include "mujoco.h"
// #include <stdio.h>
// #include <stdlib.h>
//
// void setQPos(mjData* data, double* positions, int len) {
// 	for (int i = 0; i < len; i++) {
// 		data->qpos[i] = positions[i];
// 	}
// }
//
// void setQVel(mjData* data, double* velocities, int len) {
// 	for (int i = 0; i < len; i++){
// 		data->qvel[i] = velocities[i];
// 	}
// }
//
// void setCtrl(mjData* data, double* control, int len) {
// 	for (int i = 0; i < len; i++){
// 		data->ctrl[i] = control[i];
// 	}
// }
import "C"

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/antjump/environment"
	"github.com/samuelfneumann/antjump/environment/mujoco/physics"
	"gonum.org/v1/gonum/mat"
)

var (
	activateOnce sync.Once
	activateErr  error
)

// activate activates MuJoCo once per process
func activate() error {
	activateOnce.Do(func() {
		key, err := keyPath()
		if err != nil {
			activateErr = err
			return
		}

		mjKey := C.CString(key)
		defer C.free(unsafe.Pointer(mjKey))
		if C.mj_activate(mjKey) != 1 {
			activateErr = fmt.Errorf("could not activate with key %v", key)
		}
	})
	return activateErr
}

// MujocoEnv is a loaded MuJoCo model and its data, together with the
// cost and observation accessors of the base Ant environment.
//
// MujocoEnv is not safe for concurrent use.
type MujocoEnv struct {
	config physics.Config
	model  *C.mjModel
	data   *C.mjData

	initQPos []float64
	initQVel []float64

	Nu, Nv, Nq, NBody int
}

// New loads the model in the Config's XML file
func New(c physics.Config) (*MujocoEnv, error) {
	if err := activate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	fullPath, err := xmlPath(c.XMLFile)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("new: no such path '%v'", fullPath)
	}

	model, data, err := loadXML(fullPath)
	if err != nil {
		return nil, fmt.Errorf("new: could not load XML: %v", err)
	}

	nq := int(model.nq)
	nv := int(model.nv)

	// Seed the environment
	C.srand(C.uint(c.Seed))

	return &MujocoEnv{
		config:   c,
		model:    model,
		data:     data,
		initQPos: F64SliceC2Go(data.qpos, nq),
		initQVel: F64SliceC2Go(data.qvel, nv),
		Nu:       int(model.nu),
		Nv:       nv,
		Nq:       nq,
		NBody:    int(model.nbody),
	}, nil
}

// InitState returns copies of the joint positions and velocities the
// model was loaded with
func (m *MujocoEnv) InitState() ([]float64, []float64) {
	qpos := append([]float64{}, m.initQPos...)
	qvel := append([]float64{}, m.initQVel...)
	return qpos, qvel
}

// QPos returns the current joint positions
func (m *MujocoEnv) QPos() []float64 {
	return F64SliceC2Go(m.data.qpos, m.Nq)
}

// QVel returns the current joint velocities
func (m *MujocoEnv) QVel() []float64 {
	return F64SliceC2Go(m.data.qvel, m.Nv)
}

// SetState sets the joint positions and velocities and recomputes the
// derived quantities of the model
func (m *MujocoEnv) SetState(qpos, qvel []float64) error {
	if len(qpos) != m.Nq {
		return fmt.Errorf("setState: invalid position dimensions \n\t"+
			"have(%v) \n\twant(%v)", len(qpos), m.Nq)
	}
	if len(qvel) != m.Nv {
		return fmt.Errorf("setState: invalid velocity dimensions "+
			"\n\thave(%v) \n\twant(%v)", len(qvel), m.Nv)
	}

	C.mj_resetData(m.model, m.data)
	if m.Nq > 0 {
		C.setQPos(m.data, (*C.double)(unsafe.Pointer(&qpos[0])),
			C.int(len(qpos)))
	}
	if m.Nv > 0 {
		C.setQVel(m.data, (*C.double)(unsafe.Pointer(&qvel[0])),
			C.int(len(qvel)))
	}

	C.mj_forward(m.model, m.data)
	return nil
}

// Dt returns the simulated time of one environmental step
func (m *MujocoEnv) Dt() float64 {
	return float64(m.model.opt.timestep) * float64(m.config.FrameSkip)
}

// DoSimulation applies the control and steps the model nFrames times
func (m *MujocoEnv) DoSimulation(control *mat.VecDense, nFrames int) error {
	if control.Len() != m.Nu {
		return fmt.Errorf("doSimulation: invalid control dimensions \n\t"+
			"have(%v) \n\twant(%v)", control.Len(), m.Nu)
	}

	action := make([]float64, control.Len())
	copy(action, control.RawVector().Data)
	if m.Nu > 0 {
		C.setCtrl(m.data, (*C.double)(unsafe.Pointer(&action[0])),
			C.int(len(action)))
	}

	for i := 0; i < nFrames; i++ {
		C.mj_step(m.model, m.data)
	}
	return nil
}

// BodyXPos returns the world position of the named body
func (m *MujocoEnv) BodyXPos(body string) (*mat.VecDense, error) {
	name := C.CString(body)
	defer C.free(unsafe.Pointer(name))

	id := int(C.mj_name2id(m.model, C.int(C.mjOBJ_BODY), name))
	if id < 0 {
		return nil, errors.Wrapf(physics.ErrUnknownBody, "bodyXPos: %q", body)
	}

	xpos := F64SliceC2Go(m.data.xpos, 3*m.NBody)
	return mat.NewVecDense(3, xpos[3*id:3*id+3]), nil
}

// contactForces returns the external contact forces on every body,
// clipped to the contact force range
func (m *MujocoEnv) contactForces() []float64 {
	raw := F64SliceC2Go(m.data.cfrc_ext, 6*m.NBody)
	return physics.ContactForces(raw, m.config.ContactForceRange)
}

// ControlCost returns the weighted control cost of an action
func (m *MujocoEnv) ControlCost(action *mat.VecDense) float64 {
	return physics.ControlCost(m.config.CtrlCostWeight, action)
}

// ContactCost returns the weighted cost of the current contact forces
func (m *MujocoEnv) ContactCost() float64 {
	return physics.ContactCost(m.config.ContactCostWeight, m.contactForces())
}

// Observation returns the base Ant observation
func (m *MujocoEnv) Observation() (*mat.VecDense, error) {
	return physics.BaseObservation(m.QPos(), m.QVel(), m.contactForces(),
		m.config.ExcludeCurrentPositions), nil
}

// ActionSpec returns the actuator control ranges of the model
func (m *MujocoEnv) ActionSpec() environment.Spec {
	bounds := F64SliceC2Go(m.model.actuator_ctrlrange, m.Nu*2)

	low := make([]float64, m.Nu)
	high := make([]float64, m.Nu)
	for i := 0; i < m.Nu; i++ {
		low[i] = bounds[2*i]
		high[i] = bounds[2*i+1]
	}

	lowVec := mat.NewVecDense(m.Nu, low)
	highVec := mat.NewVecDense(m.Nu, high)
	shape := mat.NewVecDense(m.Nu, nil)

	return environment.NewSpec(shape, environment.Action, lowVec, highVec,
		environment.Continuous)
}

// Close frees the model and its data
func (m *MujocoEnv) Close() error {
	C.mj_deleteData(m.data)
	C.mj_deleteModel(m.model)
	return nil
}
