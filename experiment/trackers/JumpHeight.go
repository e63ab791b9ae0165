package trackers

import (
	"fmt"
	"math"

	ts "github.com/samuelfneumann/antjump/timestep"
)

// JumpData holds the outcome of each finished AntJump episode. The
// slices are indexed by episode.
type JumpData struct {
	MaxHeights []float64
	Goals      []float64
	Returns    []float64
	Lengths    []int
	Fell       []bool
}

// Len returns the number of episodes recorded
func (j JumpData) Len() int {
	return len(j.MaxHeights)
}

// GoalDistances returns the distance between the max height and the
// goal height of each episode
func (j JumpData) GoalDistances() []float64 {
	dist := make([]float64, j.Len())
	for i := range dist {
		dist[i] = math.Abs(j.MaxHeights[i] - j.Goals[i])
	}
	return dist
}

// JumpHeight tracks and saves the highest torso height and the goal
// height of each episode of an AntJump environment. The environment
// must be the one whose TimeSteps are tracked.
//
// Note: An episode must finish for this Tracker to save its data.
type JumpHeight struct {
	env           InfoSource
	currentReturn float64
	data          JumpData
	filename      string
}

// NewJumpHeight returns a new JumpHeight tracker for env which will
// save its data at the specified location filename
func NewJumpHeight(env InfoSource, filename string) *JumpHeight {
	return &JumpHeight{env: env, filename: filename}
}

// Track records the outcome of an episode when the TimeStep is the
// last in the episode
func (j *JumpHeight) Track(t ts.TimeStep) {
	if t.First() {
		j.currentReturn = 0.0
	}
	j.currentReturn += t.Reward

	if t.Last() {
		info := j.env.Info()
		j.data.MaxHeights = append(j.data.MaxHeights, info.MaxHeight)
		j.data.Goals = append(j.data.Goals, info.Goal)
		j.data.Returns = append(j.data.Returns, j.currentReturn)
		j.data.Lengths = append(j.data.Lengths, t.Number)
		j.data.Fell = append(j.data.Fell,
			t.EndType() == ts.TerminalStateReached)
		j.currentReturn = 0.0
	}
}

// Data returns the data recorded so far
func (j *JumpHeight) Data() JumpData {
	return j.data
}

// Save saves the data tracked by the JumpHeight Tracker to disk
func (j *JumpHeight) Save() error {
	if err := save(j.filename, j.data); err != nil {
		return fmt.Errorf("save: jump height: %v", err)
	}
	return nil
}

// LoadJumpData loads and returns the data saved by a JumpHeight
// Tracker
func LoadJumpData(filename string) (JumpData, error) {
	var data JumpData
	if err := load(filename, &data); err != nil {
		return JumpData{}, fmt.Errorf("loadJumpData: %v", err)
	}
	return data, nil
}
