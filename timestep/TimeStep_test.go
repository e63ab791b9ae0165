package timestep

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	obs := mat.NewVecDense(2, []float64{1.0, 2.0})
	step := New(First, 0.5, 0.99, obs, 0)

	if !step.First() || step.Mid() || step.Last() {
		t.Errorf("new: wrong step type \n\twant(%v) \n\thave(%v)", First,
			step.StepType)
	}
	if step.EndType() != NotEnded {
		t.Errorf("new: wrong end type \n\twant(%v) \n\thave(%v)", NotEnded,
			step.EndType())
	}
	if step.Observation != obs {
		t.Error("new: observation should not be copied")
	}
}

func TestSetEnd(t *testing.T) {
	step := New(Mid, 0, 1, mat.NewVecDense(1, nil), 3)
	step.StepType = Last
	step.SetEnd(Timeout)

	if !step.Last() {
		t.Error("setEnd: timestep should be last")
	}
	if step.EndType() != Timeout {
		t.Errorf("setEnd: wrong end type \n\twant(%v) \n\thave(%v)", Timeout,
			step.EndType())
	}
	if s := step.String(); !strings.Contains(s, "Timeout") {
		t.Errorf("string: end type missing from %q", s)
	}
}

func TestStepTypeString(t *testing.T) {
	tests := map[StepType]string{First: "First", Mid: "Mid", Last: "Last"}
	for stepType, want := range tests {
		if have := stepType.String(); have != want {
			t.Errorf("string: \n\twant(%v) \n\thave(%v)", want, have)
		}
	}
}
