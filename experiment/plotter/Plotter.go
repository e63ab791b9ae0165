// Package plotter plots the data saved by trackers during an AntJump
// experiment
package plotter

import (
	"fmt"

	"github.com/samuelfneumann/antjump/environment/mujoco/antjump"
	"github.com/samuelfneumann/antjump/experiment/trackers"
	"github.com/samuelfneumann/antjump/utils/floatutils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	width  = 8 * vg.Inch
	height = 5 * vg.Inch
)

// episodic returns the points (episode, y[episode])
func episodic(y []float64) plotter.XYs {
	points := make(plotter.XYs, len(y))
	for i, v := range y {
		points[i] = plotter.XY{
			X: float64(i + 1),
			Y: v,
		}
	}
	return points
}

// Smooth returns the moving average of y over a trailing window
func Smooth(y []float64, window int) []float64 {
	if window <= 0 {
		panic("smooth: window must be positive")
	}

	smoothed := make([]float64, len(y))
	for i := range y {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		smoothed[i] = floatutils.Mean(y[start : i+1]...)
	}
	return smoothed
}

// addLine adds a line of y against episode number to p
func addLine(p *plot.Plot, i int, name string, y []float64) error {
	line, err := plotter.NewLine(episodic(y))
	if err != nil {
		return fmt.Errorf("could not create %v line: %v", name, err)
	}
	line.Color = plotutil.Color(i)
	line.Dashes = plotutil.Dashes(i)
	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}

// JumpHeights plots the max torso height of each episode, along with
// the goal heights if the episodes had goals and the fall height, and
// saves the plot to filename. The image format is determined by the
// file extension.
func JumpHeights(data trackers.JumpData, title, filename string) error {
	if data.Len() == 0 {
		return fmt.Errorf("jumpHeights: no episodes to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Height"

	if err := addLine(p, 0, "max height", data.MaxHeights); err != nil {
		return fmt.Errorf("jumpHeights: %v", err)
	}

	if floatutils.Max(data.Goals...) > 0 {
		goals, err := plotter.NewScatter(episodic(data.Goals))
		if err != nil {
			return fmt.Errorf("jumpHeights: could not create goals: %v",
				err)
		}
		goals.Color = plotutil.Color(1)
		goals.Shape = plotutil.Shape(1)
		p.Add(goals)
		p.Legend.Add("goal", goals)
	}

	fall := plotter.NewFunction(func(float64) float64 {
		return antjump.FallHeight
	})
	fall.Color = plotutil.Color(2)
	fall.Dashes = plotutil.Dashes(2)
	p.Add(fall)
	p.Legend.Add("fall height", fall)

	p.X.Min = 1
	p.X.Max = float64(data.Len())
	p.Y.Min = 0
	p.Legend.Top = true

	if err := p.Save(width, height, filename); err != nil {
		return fmt.Errorf("jumpHeights: could not save plot: %v", err)
	}
	return nil
}

// Returns plots the return of each episode together with its moving
// average over window episodes, and saves the plot to filename
func Returns(returns []float64, window int, title, filename string) error {
	if len(returns) == 0 {
		return fmt.Errorf("returns: no episodes to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Return"

	if err := addLine(p, 0, "return", returns); err != nil {
		return fmt.Errorf("returns: %v", err)
	}
	name := fmt.Sprintf("mean over %v", window)
	if err := addLine(p, 1, name, Smooth(returns, window)); err != nil {
		return fmt.Errorf("returns: %v", err)
	}

	if err := p.Save(width, height, filename); err != nil {
		return fmt.Errorf("returns: could not save plot: %v", err)
	}
	return nil
}
