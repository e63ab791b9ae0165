package checkpointer

import (
	"fmt"

	ts "github.com/samuelfneumann/antjump/timestep"
)

// nStep implements checkpointing every N steps
type nStep struct {
	interval int
	steps    int
	object   Renderer // Object to render

	// filename returns the string filename of the file to render the
	// object to.
	//
	// If each frame should be saved in a separate file with each file
	// having an incremented number as a suffix (e.g. frame00001.png,
	// frame00002.png, ..., frameK.png), then simply use the static
	// function FilenameEnumerator, which will return a function that
	// will enumerate filenames.
	filename func() string
}

// NewNStep returns a checkpointer that renders object every n steps,
// starting with the first step seen.
func NewNStep(n int, object Renderer, filename func() string) Checkpointer {
	if n <= 0 {
		panic("newNStep: interval must be positive")
	}
	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint renders the Checkpointer's tracked object if a multiple
// of n steps have been seen since the Checkpointer was created. The
// TimeStep argument is ignored, since steps are counted across episode
// boundaries.
func (n *nStep) Checkpoint(ts.TimeStep) error {
	defer func() { n.steps++ }()

	if n.steps%n.interval == 0 {
		if err := n.object.Render(n.filename()); err != nil {
			return fmt.Errorf("checkpoint: %v", err)
		}
	}
	return nil
}
