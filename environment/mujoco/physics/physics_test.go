package physics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/samuelfneumann/antjump/environment"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// nopSimulator satisfies Simulator for registry tests
type nopSimulator struct {
	c Config
}

func (n *nopSimulator) DoSimulation(*mat.VecDense, int) error { return nil }
func (n *nopSimulator) SetState(_, _ []float64) error         { return nil }
func (n *nopSimulator) InitState() ([]float64, []float64)     { return nil, nil }
func (n *nopSimulator) ControlCost(*mat.VecDense) float64     { return 0 }
func (n *nopSimulator) ContactCost() float64                  { return 0 }
func (n *nopSimulator) Close() error                          { return nil }

func (n *nopSimulator) BodyXPos(string) (*mat.VecDense, error) {
	return mat.NewVecDense(3, nil), nil
}

func (n *nopSimulator) Observation() (*mat.VecDense, error) {
	return mat.NewVecDense(1, nil), nil
}

func (n *nopSimulator) ActionSpec() environment.Spec {
	return environment.NewUnboundedSpec(1, environment.Action)
}

func TestRegistry(t *testing.T) {
	var opened Config
	Register("test-nop", func(c Config) (Simulator, error) {
		opened = c
		return &nopSimulator{c}, nil
	})

	c := Config{XMLFile: "ant.xml", FrameSkip: 5, Seed: 3}
	sim, err := Open("test-nop", c)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if sim == nil {
		t.Fatal("open: simulator should not be nil if err is nil")
	}
	if diff := cmp.Diff(c, opened); diff != "" {
		t.Errorf("open: config not forwarded (-want +have):\n%s", diff)
	}

	found := false
	for _, name := range Backends() {
		if name == "test-nop" {
			found = true
		}
	}
	if !found {
		t.Errorf("backends: registered backend missing from %v", Backends())
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	open := func(c Config) (Simulator, error) { return &nopSimulator{c}, nil }
	Register("test-dup", open)

	defer func() {
		if recover() == nil {
			t.Error("register: expected panic on duplicate backend")
		}
	}()
	Register("test-dup", open)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("no-such-backend", Config{})
	if errors.Cause(err) != ErrUnknownBackend {
		t.Errorf("open: \n\twant(%v) \n\thave(%v)", ErrUnknownBackend, err)
	}
}

func TestOpenForwardsBackendError(t *testing.T) {
	bad := errors.New("could not load XML")
	Register("test-broken", func(Config) (Simulator, error) {
		return nil, bad
	})

	_, err := Open("test-broken", Config{})
	if errors.Cause(err) != bad {
		t.Errorf("open: \n\twant(%v) \n\thave(%v)", bad, err)
	}
}

func TestCosts(t *testing.T) {
	action := mat.NewVecDense(3, []float64{1, -2, 0.5})
	if have := ControlCost(0.5, action); have != 0.5*5.25 {
		t.Errorf("controlCost: \n\twant(%v) \n\thave(%v)", 0.5*5.25, have)
	}

	forces := ContactForces([]float64{3, -0.5, -4}, r1.Interval{Min: -1,
		Max: 1})
	if diff := cmp.Diff([]float64{1, -0.5, -1}, forces); diff != "" {
		t.Errorf("contactForces: (-want +have):\n%s", diff)
	}
	if have := ContactCost(5e-4, forces); math.Abs(have-5e-4*2.25) > 1e-12 {
		t.Errorf("contactCost: \n\twant(%v) \n\thave(%v)", 5e-4*2.25, have)
	}
}

func TestBaseObservation(t *testing.T) {
	qpos := []float64{10, 20, 0.75, 1}
	qvel := []float64{0.1, 0.2}
	forces := []float64{-1}

	obs := BaseObservation(qpos, qvel, forces, true)
	want := []float64{0.75, 1, 0.1, 0.2, -1}
	if diff := cmp.Diff(want, obs.RawVector().Data); diff != "" {
		t.Errorf("baseObservation: excluding positions (-want +have):\n%s",
			diff)
	}

	obs = BaseObservation(qpos, qvel, forces, false)
	if obs.Len() != len(qpos)+len(qvel)+len(forces) {
		t.Errorf("baseObservation: wrong length \n\twant(%v) \n\thave(%v)",
			len(qpos)+len(qvel)+len(forces), obs.Len())
	}
}
