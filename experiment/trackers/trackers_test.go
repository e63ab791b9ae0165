package trackers

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samuelfneumann/antjump/environment/mujoco/antjump"
	ts "github.com/samuelfneumann/antjump/timestep"
)

// fixedInfo is an InfoSource reporting a settable Info
type fixedInfo struct {
	info antjump.Info
}

func (f *fixedInfo) Info() antjump.Info { return f.info }

// episode returns the TimeSteps of an episode of n steps with the given
// rewards, ending with end
func episode(rewards []float64, end ts.EndType) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, 0, 1, nil, 0)}
	for i, r := range rewards {
		t := ts.New(ts.Mid, r, 1, nil, i+1)
		if i == len(rewards)-1 {
			t.StepType = ts.Last
			t.SetEnd(end)
		}
		steps = append(steps, t)
	}
	return steps
}

func track(tracker Tracker, steps ...[]ts.TimeStep) {
	for _, episode := range steps {
		for _, t := range episode {
			tracker.Track(t)
		}
	}
}

func TestReturn(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "return.bin")
	r := NewReturn(filename)

	track(r, episode([]float64{-1, -1, 3}, ts.Timeout),
		episode([]float64{0.5, -2}, ts.TerminalStateReached))

	// Unfinished episode is not recorded
	track(r, episode([]float64{1, 2}, ts.Timeout)[:2])

	want := []float64{1, -1.5}
	if diff := cmp.Diff(want, r.Returns()); diff != "" {
		t.Errorf("returns: (-want +have):\n%s", diff)
	}

	if err := r.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := LoadData(filename)
	if err != nil {
		t.Fatalf("loadData: %v", err)
	}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("loadData: (-want +have):\n%s", diff)
	}
}

func TestReturnNonSequential(t *testing.T) {
	r := NewReturn("")
	r.Track(ts.New(ts.First, 0, 1, nil, 0))

	defer func() {
		if recover() == nil {
			t.Error("track: expected panic on non-sequential timesteps")
		}
	}()
	r.Track(ts.New(ts.Mid, 0, 1, nil, 2))
}

func TestEpisodeLength(t *testing.T) {
	e := NewEpisodeLength(filepath.Join(t.TempDir(), "length.bin"))
	track(e, episode([]float64{0, 0, 0}, ts.Timeout),
		episode([]float64{0}, ts.TerminalStateReached))

	if diff := cmp.Diff([]int{3, 1}, e.Lengths()); diff != "" {
		t.Errorf("lengths: (-want +have):\n%s", diff)
	}
	wantEnds := []ts.EndType{ts.Timeout, ts.TerminalStateReached}
	if diff := cmp.Diff(wantEnds, e.EndTypes()); diff != "" {
		t.Errorf("endTypes: (-want +have):\n%s", diff)
	}
	if err := e.Save(); err != nil {
		t.Errorf("save: %v", err)
	}
}

func TestJumpHeight(t *testing.T) {
	env := &fixedInfo{}
	filename := filepath.Join(t.TempDir(), "jump.bin")
	j := NewJumpHeight(env, filename)

	env.info = antjump.Info{Height: 0.5, MaxHeight: 1.25, Goal: 2.0}
	track(j, episode([]float64{0, -7.5}, ts.Timeout))

	env.info = antjump.Info{Height: 0.2, MaxHeight: 0.9, Goal: 1.1}
	track(j, episode([]float64{-2}, ts.TerminalStateReached))

	want := JumpData{
		MaxHeights: []float64{1.25, 0.9},
		Goals:      []float64{2.0, 1.1},
		Returns:    []float64{-7.5, -2},
		Lengths:    []int{2, 1},
		Fell:       []bool{false, true},
	}
	if diff := cmp.Diff(want, j.Data()); diff != "" {
		t.Errorf("data: (-want +have):\n%s", diff)
	}

	dist := j.Data().GoalDistances()
	if len(dist) != 2 || dist[0] != 0.75 {
		t.Errorf("goalDistances: \n\twant([0.75 ...]) \n\thave(%v)", dist)
	}

	if err := j.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadJumpData(filename)
	if err != nil {
		t.Fatalf("loadJumpData: %v", err)
	}
	if diff := cmp.Diff(want, loaded); diff != "" {
		t.Errorf("loadJumpData: (-want +have):\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := LoadJumpData(filepath.Join(t.TempDir(), "none")); err == nil {
		t.Error("loadJumpData: expected error for missing file")
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	env := &fixedInfo{info: antjump.Info{MaxHeight: 1.5, Goal: 2.0}}

	m, err := NewMetrics(reg, env)
	if err != nil {
		t.Fatalf("newMetrics: %v", err)
	}

	track(m, episode([]float64{0, 0, -5}, ts.Timeout),
		episode([]float64{-1}, ts.TerminalStateReached))

	if have := testutil.ToFloat64(m.steps); have != 4 {
		t.Errorf("steps: \n\twant(4) \n\thave(%v)", have)
	}
	if have := testutil.ToFloat64(m.maxHeight); have != 1.5 {
		t.Errorf("maxHeight: \n\twant(1.5) \n\thave(%v)", have)
	}
	if have := testutil.ToFloat64(m.goalDistance); have != 0.5 {
		t.Errorf("goalDistance: \n\twant(0.5) \n\thave(%v)", have)
	}

	want := `
# HELP antjump_episodes_total Number of finished episodes by how they ended.
# TYPE antjump_episodes_total counter
antjump_episodes_total{end="TerminalStateReached"} 1
antjump_episodes_total{end="Timeout"} 1
`
	if err := testutil.CollectAndCompare(m.episodes, strings.NewReader(want),
		"antjump_episodes_total"); err != nil {
		t.Errorf("episodes: %v", err)
	}

	if _, err := NewMetrics(reg, env); err == nil {
		t.Error("newMetrics: expected error registering metrics twice")
	}
}
