package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"ortholab/internal/mat3"
	"ortholab/internal/trajectory"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	unstableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	stableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

// SigmaPlot renders the three singular value series against the step
// index. Series are cut at the first non-finite value; asciigraph has no
// notion of a NaN sample.
func SigmaPlot(snapshots []trajectory.Snapshot, width, height int) string {
	series := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		series[i] = make([]float64, 0, len(snapshots))
	}

	for _, snap := range snapshots {
		done := false
		for i := 0; i < 3; i++ {
			v := snap.Sigma[i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				done = true
				break
			}
		}
		if done {
			break
		}
		for i := 0; i < 3; i++ {
			series[i] = append(series[i], snap.Sigma[i])
		}
	}

	if len(series[0]) == 0 {
		return dimStyle.Render("no finite snapshots to plot")
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("singular values vs step"),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
		asciigraph.SeriesLegends("sigma1", "sigma2", "sigma3"),
	)
}

// MatrixString renders a 3x3 grid with aligned columns.
func MatrixString(m mat3.Matrix) string {
	var b strings.Builder
	for r := 0; r < 3; r++ {
		b.WriteString("  [")
		for c := 0; c < 3; c++ {
			if c > 0 {
				b.WriteString("  ")
			}
			b.WriteString(fmt.Sprintf("% 12.6g", m[r][c]))
		}
		b.WriteString(" ]\n")
	}
	return b.String()
}

// SnapshotTable renders one line per snapshot: step, singular values and
// stability marker.
func SnapshotTable(snapshots []trajectory.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("STEP      SIGMA1        SIGMA2        SIGMA3    STATE"))
	b.WriteString("\n")

	for _, snap := range snapshots {
		state := stableStyle.Render("ok")
		if snap.Unstable {
			state = unstableStyle.Render("unstable")
		}
		b.WriteString(fmt.Sprintf("%4d  %s  %s  %s    %s\n",
			snap.Step,
			formatSigma(snap.Sigma[0]),
			formatSigma(snap.Sigma[1]),
			formatSigma(snap.Sigma[2]),
			state,
		))
	}

	return b.String()
}

func formatSigma(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return dimStyle.Render(fmt.Sprintf("%12s", "-"))
	}
	return fmt.Sprintf("%12.8f", v)
}

// Summary renders the one-line outcome of a run.
func Summary(result *trajectory.Result) string {
	if result.FirstUnstable < 0 {
		return stableStyle.Render(fmt.Sprintf("stable through %d steps", result.Steps()))
	}
	return unstableStyle.Render(fmt.Sprintf("blew up at step %d", result.FirstUnstable))
}
