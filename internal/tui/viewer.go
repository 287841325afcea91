// Package tui is a terminal browser for recorded runs: scrub through the
// snapshot sequence step by step.
package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ortholab/internal/trajectory"
	"ortholab/internal/viz"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	unstableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

const barWidth = 40

type Model struct {
	snapshots []trajectory.Snapshot
	cursor    int
	width     int
}

func NewModel(snapshots []trajectory.Snapshot) Model {
	return Model{snapshots: snapshots, width: 80}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < len(m.snapshots)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.snapshots) - 1
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.snapshots) == 0 {
		return dimStyle.Render("no snapshots") + "\n"
	}

	snap := m.snapshots[m.cursor]

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("step %d / %d", snap.Step, m.snapshots[len(m.snapshots)-1].Step)))
	if snap.Unstable {
		b.WriteString("  " + unstableStyle.Render("UNSTABLE"))
	}
	b.WriteString("\n\n")

	b.WriteString(viz.MatrixString(snap.Matrix))
	b.WriteString("\n")

	scale := sigmaScale(m.snapshots)
	for i := 0; i < 3; i++ {
		b.WriteString(sigmaBar(i+1, snap.Sigma[i], scale))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("←/→ step · g/G first/last · q quit"))
	b.WriteString("\n")
	return b.String()
}

// sigmaScale finds the largest finite singular value across the run so
// the bars stay comparable while scrubbing.
func sigmaScale(snapshots []trajectory.Snapshot) float64 {
	max := 0.0
	for _, snap := range snapshots {
		for _, v := range snap.Sigma {
			if !math.IsNaN(v) && !math.IsInf(v, 0) && v > max {
				max = v
			}
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

func sigmaBar(index int, v, scale float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("  sigma%d %s", index, dimStyle.Render("n/a"))
	}

	n := int(v / scale * barWidth)
	if n > barWidth {
		n = barWidth
	}
	return fmt.Sprintf("  sigma%d %s %.6f", index, barStyle.Render(strings.Repeat("█", n)), v)
}

// Run opens the browser over a snapshot sequence and blocks until quit.
func Run(snapshots []trajectory.Snapshot) error {
	p := tea.NewProgram(NewModel(snapshots), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
