package floatutils

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestClip(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{0.5, -1, 1, 0.5},
		{2.0, -1, 1, 1.0},
		{-3.0, -1, 1, -1.0},
		{5.0, 0.3, math.Inf(1), 5.0},
	}

	for _, test := range tests {
		if have := Clip(test.value, test.min, test.max); have != test.want {
			t.Errorf("clip(%v, %v, %v): \n\twant(%v) \n\thave(%v)",
				test.value, test.min, test.max, test.want, have)
		}
	}

	if have := ClipInterval(7, r1.Interval{Min: -1, Max: 1}); have != 1 {
		t.Errorf("clipInterval: \n\twant(1) \n\thave(%v)", have)
	}
}

func TestClipSlice(t *testing.T) {
	values := []float64{-2, -0.5, 0, 0.5, 2}
	want := []float64{-1, -0.5, 0, 0.5, 1}

	have := ClipSlice(values, -1, 1)
	if diff := cmp.Diff(want, have); diff != "" {
		t.Errorf("clipSlice: (-want +have):\n%s", diff)
	}
	if values[0] != -2 {
		t.Error("clipSlice: argument slice should not be modified")
	}
}

func TestMaxMean(t *testing.T) {
	if have := Max(0.2, 1.7, 0.9); have != 1.7 {
		t.Errorf("max: \n\twant(1.7) \n\thave(%v)", have)
	}
	if have := Mean(1, 2, 3); have != 2 {
		t.Errorf("mean: \n\twant(2) \n\thave(%v)", have)
	}
	if have := Mean(); have != 0 {
		t.Errorf("mean: empty list \n\twant(0) \n\thave(%v)", have)
	}
}
