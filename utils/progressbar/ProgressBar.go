// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressBar implements a progress bar which redraws itself on the
// same terminal line. The bar is redrawn by Increment at most once per
// update interval, and always when it reaches 100%.
//
// ProgressBar does not use concurrency and is not safe for concurrent
// use.
type ProgressBar struct {
	out io.Writer

	// width determines the number of characters wide that the progress
	// bar should be
	width float64

	// maxProgress determines the number of times Increment() should
	// be called before the progress bar reaches 100%.
	maxProgress     float64
	currentProgress float64

	updateEvery time.Duration
	startTime   time.Time
	lastDisplay time.Time
	bar         strings.Builder
	closed      bool
}

// NewProgressBar returns a new progress bar printed to out that is
// width characters wide and reaches 100% capacity after max Increment()
// calls.
func NewProgressBar(out io.Writer, width, max int,
	updateEvery time.Duration) *ProgressBar {
	if max <= 0 {
		panic("newProgressBar: max progress must be positive")
	}

	now := time.Now()
	return &ProgressBar{
		out:         out,
		width:       float64(width),
		maxProgress: float64(max),
		updateEvery: updateEvery,
		startTime:   now,
		lastDisplay: now,
	}
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.closed || p.currentProgress >= p.maxProgress {
		return
	}
	p.currentProgress++

	if p.currentProgress == p.maxProgress ||
		time.Since(p.lastDisplay) >= p.updateEvery {
		p.Display()
	}
}

// Progress returns the fraction of progress made
func (p *ProgressBar) Progress() float64 {
	return p.currentProgress / p.maxProgress
}

// Display prints the progress bar over the previously printed one
func (p *ProgressBar) Display() {
	if p.closed {
		return
	}
	p.lastDisplay = time.Now()

	p.bar.Reset()
	p.bar.WriteString("|")

	currentProg := p.Progress() * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	p.bar.WriteString(fmt.Sprintf("| [%.2f%v | elapsed: %v]",
		p.Progress()*100, "%", time.Since(p.startTime).Truncate(time.Second)))

	fmt.Fprintf(p.out, "\n\033[1A\033[K%v", p.bar.String())
}

// Close performs a final display of the progress bar and moves the
// cursor to the next line. The progress bar is not displayed again
// after Close.
func (p *ProgressBar) Close() {
	if p.closed {
		return
	}
	p.Display()
	p.closed = true
	fmt.Fprintln(p.out) // Jump to next line after printed pbar
}
