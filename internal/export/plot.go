// Package export renders stored trajectories to image files.
package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/feiyulu/L96-demo/internal/ode"
)

// SeriesPlot draws the selected state components against time and saves
// to path; the format follows the file extension (png, svg, pdf).
func SeriesPlot(path, title string, times []float64, states []ode.State, indices []int) error {
	if len(states) == 0 {
		return fmt.Errorf("export: empty trajectory")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = "X"

	for _, idx := range indices {
		if idx < 0 || idx >= len(states[0]) {
			return fmt.Errorf("export: state index %d out of range", idx)
		}
		xys := make(plotter.XYs, 0, len(states))
		for i, s := range states {
			if s == nil {
				break
			}
			xys = append(xys, plotter.XY{X: times[i], Y: s[idx]})
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(idx)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("x%d", idx), line)
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// PhasePlot draws component yIdx against component xIdx.
func PhasePlot(path, title string, states []ode.State, xIdx, yIdx int) error {
	if len(states) == 0 {
		return fmt.Errorf("export: empty trajectory")
	}
	if xIdx < 0 || xIdx >= len(states[0]) || yIdx < 0 || yIdx >= len(states[0]) {
		return fmt.Errorf("export: phase indices out of range")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = fmt.Sprintf("x%d", xIdx)
	p.Y.Label.Text = fmt.Sprintf("x%d", yIdx)

	xys := make(plotter.XYs, 0, len(states))
	for _, s := range states {
		if s == nil {
			break
		}
		xys = append(xys, plotter.XY{X: s[xIdx], Y: s[yIdx]})
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
