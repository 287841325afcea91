// Package export writes singular-value trajectory charts to image files.
package export

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"ortholab/internal/trajectory"
)

// Chart renders the three singular value series of a run to path. The
// output format follows the file extension (.png, .svg, .pdf, ...).
// Non-finite samples are dropped; an entirely unstable run is an error
// since there is nothing to draw.
func Chart(path string, snapshots []trajectory.Snapshot) error {
	series := make([]plotter.XYs, 3)
	for _, snap := range snapshots {
		for i := 0; i < 3; i++ {
			v := snap.Sigma[i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			series[i] = append(series[i], plotter.XY{X: float64(snap.Step), Y: v})
		}
	}

	if len(series[0]) == 0 {
		return fmt.Errorf("export: no finite snapshots to chart")
	}

	p := plot.New()
	p.Title.Text = "singular values"
	p.X.Label.Text = "step"
	p.Y.Label.Text = "sigma"
	p.Legend.Top = true

	if err := plotutil.AddLinePoints(p,
		"sigma1", series[0],
		"sigma2", series[1],
		"sigma3", series[2],
	); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
