package main

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/samuelfneumann/antjump/experiment/trackers"
	ts "github.com/samuelfneumann/antjump/timestep"
	"github.com/samuelfneumann/antjump/utils/floatutils"
)

type runSummary struct {
	dir      string
	steps    int
	episodes int
	elapsed  time.Duration
	data     trackers.JumpData
	endTypes []ts.EndType
}

// printSummary writes a table summarizing a finished run to w
func printSummary(w io.Writer, s runSummary) {
	var falls, timeouts int
	for _, end := range s.endTypes {
		switch end {
		case ts.TerminalStateReached:
			falls++
		case ts.Timeout:
			timeouts++
		}
	}

	rows := [][]string{
		{"run", s.dir},
		{"steps", fmt.Sprint(s.steps)},
		{"episodes", fmt.Sprint(s.episodes)},
		{"falls", fmt.Sprint(falls)},
		{"timeouts", fmt.Sprint(timeouts)},
		{"elapsed", s.elapsed.Round(time.Millisecond).String()},
	}
	if s.data.Len() > 0 {
		rows = append(rows,
			[]string{"best max height",
				fmt.Sprintf("%.3f", floatutils.Max(s.data.MaxHeights...))},
			[]string{"mean max height",
				fmt.Sprintf("%.3f", floatutils.Mean(s.data.MaxHeights...))},
			[]string{"mean return",
				fmt.Sprintf("%.3f", floatutils.Mean(s.data.Returns...))},
		)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}
