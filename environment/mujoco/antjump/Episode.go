package antjump

import "math"

// Episode is the bookkeeping of a single AntJump episode
type Episode struct {
	// Step is the number of steps taken since the last reset
	Step int

	// MaxHeight is the highest torso height seen this episode. It never
	// decreases within an episode.
	MaxHeight float64

	// Goal is the target torso height of the episode, which is 0 when
	// the task does not use context
	Goal float64
}

// Next returns the Episode advanced by one step
func (e Episode) Next() Episode {
	e.Step++
	return e
}

// Observe returns the Episode after seeing the torso at height
func (e Episode) Observe(height float64) Episode {
	e.MaxHeight = math.Max(e.MaxHeight, height)
	return e
}

// Info describes the latest step of an AntJump environment
type Info struct {
	Height    float64
	MaxHeight float64
	Goal      float64
}
