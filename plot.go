package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/samuelfneumann/antjump/experiment/plotter"
	"github.com/samuelfneumann/antjump/experiment/trackers"
	"github.com/spf13/cobra"
)

// Plots written to each run directory
const (
	heightsPlot = "jump_heights.png"
	returnsPlot = "returns.png"
)

// smoothing is the moving average window of the returns plot
var smoothing = 10

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot RUN_DIR",
		Short: "Plot the jump heights and returns of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runDir := args[0]

			data, err := trackers.LoadJumpData(filepath.Join(runDir,
				heightsFile))
			if err != nil {
				return fmt.Errorf("plot: %v", err)
			}
			returns, err := trackers.LoadData(filepath.Join(runDir,
				returnsFile))
			if err != nil {
				return fmt.Errorf("plot: %v", err)
			}

			return plotRun(runDir, data, returns)
		},
	}
	cmd.Flags().IntVar(&smoothing, "window", smoothing,
		"moving average window of the returns plot")

	return cmd
}

// plotRun saves the jump height and return plots of a run to runDir
func plotRun(runDir string, data trackers.JumpData, returns []float64) error {
	if data.Len() == 0 {
		log.Println("no complete episodes, skipping plots")
		return nil
	}

	title := filepath.Base(runDir)
	err := plotter.JumpHeights(data, title, filepath.Join(runDir,
		heightsPlot))
	if err != nil {
		return fmt.Errorf("plotRun: %v", err)
	}

	err = plotter.Returns(returns, smoothing, title, filepath.Join(runDir,
		returnsPlot))
	if err != nil {
		return fmt.Errorf("plotRun: %v", err)
	}
	return nil
}
