package experiment

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samuelfneumann/antjump/agent/random"
	"github.com/samuelfneumann/antjump/environment"
	"github.com/samuelfneumann/antjump/experiment/checkpointer"
	"github.com/samuelfneumann/antjump/experiment/trackers"
	ts "github.com/samuelfneumann/antjump/timestep"
	"github.com/samuelfneumann/antjump/utils/progressbar"
	"gonum.org/v1/gonum/mat"
)

// countdown is an environment whose episodes last a fixed number of
// steps and whose reward is always -1
type countdown struct {
	length  int
	resets  int
	current ts.TimeStep
}

func (c *countdown) Reset() (ts.TimeStep, error) {
	c.resets++
	c.current = ts.New(ts.First, 0, 1, mat.NewVecDense(1, nil), 0)
	return c.current, nil
}

func (c *countdown) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	n := c.current.Number + 1
	t := ts.New(ts.Mid, -1, 1, mat.NewVecDense(1, []float64{float64(n)}), n)
	if n >= c.length {
		t.StepType = ts.Last
		t.SetEnd(ts.Timeout)
	}
	c.current = t
	return t, false, nil
}

func (c *countdown) CurrentTimeStep() ts.TimeStep { return c.current }

func (c *countdown) RewardSpec() environment.Spec {
	return environment.NewUnboundedSpec(1, environment.Reward)
}

func (c *countdown) DiscountSpec() environment.Spec {
	return environment.NewUnboundedSpec(1, environment.Discount)
}

func (c *countdown) ObservationSpec() environment.Spec {
	return environment.NewUnboundedSpec(1, environment.Observation)
}

func (c *countdown) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(2, nil)
	low := mat.NewVecDense(2, []float64{-1, -1})
	high := mat.NewVecDense(2, []float64{1, 1})
	return environment.NewSpec(shape, environment.Action, low, high,
		environment.Continuous)
}

type countingRenderer struct {
	frames int
}

func (c *countingRenderer) Render(string) error {
	c.frames++
	return nil
}

type failingTracker struct{}

func (failingTracker) Track(ts.TimeStep) {}
func (failingTracker) Save() error      { return errors.New("cannot save") }

func newOnline(t *testing.T, length, steps int) (*Online, *countdown) {
	t.Helper()

	e := &countdown{length: length}
	a, err := random.New(e.ActionSpec(), 1)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	return NewOnline(e, a, steps, nil, nil), e
}

func TestRun(t *testing.T) {
	o, e := newOnline(t, 3, 10)

	lengths := trackers.NewEpisodeLength("")
	returns := trackers.NewReturn("")
	o.Register(lengths)
	o.Register(returns)

	renderer := &countingRenderer{}
	o.RegisterCheckpointer(checkpointer.NewNStep(4, renderer,
		checkpointer.FilenameEnumerator(0, "frame", ".png")))

	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if o.Steps() != 10 {
		t.Errorf("steps: \n\twant(10) \n\thave(%v)", o.Steps())
	}
	if o.Episodes() != 3 || e.resets != 4 {
		t.Errorf("episodes: \n\twant(3 finished, 4 resets) \n\thave(%v, %v)",
			o.Episodes(), e.resets)
	}
	if renderer.frames != 3 {
		t.Errorf("render: \n\twant(3) \n\thave(%v) frames", renderer.frames)
	}
	if len(lengths.Lengths()) != 3 {
		t.Errorf("lengths: \n\twant(3 episodes) \n\thave(%v)",
			lengths.Lengths())
	}
	for _, r := range returns.Returns() {
		if r != -3 {
			t.Errorf("return: \n\twant(-3) \n\thave(%v)", r)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	o, _ := newOnline(t, 3, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := o.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("run: \n\twant(%v) \n\thave(%v)", context.Canceled, err)
	}
	if o.Steps() != 0 {
		t.Errorf("steps: should not step after cancel, have %v", o.Steps())
	}
}

func TestProgressBar(t *testing.T) {
	o, _ := newOnline(t, 5, 20)

	var out bytes.Buffer
	o.SetProgressBar(progressbar.NewProgressBar(&out, 10, 20, time.Hour))
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("100.00%")) {
		t.Errorf("progressBar: should reach 100%%, have %q", out.String())
	}
}

func TestSave(t *testing.T) {
	o, _ := newOnline(t, 2, 4)
	o.Register(failingTracker{})
	o.Register(failingTracker{})
	o.Register(trackers.NewReturn(t.TempDir() + "/return.bin"))

	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := o.Save(); err == nil {
		t.Error("save: expected errors of failing trackers")
	}
}
