package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"qbloch/internal/scene"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// formatAngle formats radians, using pi notation when possible.
// Recognizes common pi fractions: pi, pi/2, pi/4, pi/3, pi/6, pi/8, 2pi, 3pi/4, etc.
func formatAngle(val float64) string {
	type piForm struct {
		value   float64
		display string
	}
	piForms := []piForm{
		{2 * math.Pi, "2pi"},
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 3, "pi/3"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 6, "pi/6"},
		{math.Pi / 8, "pi/8"},
		{3 * math.Pi / 4, "3pi/4"},
		{3 * math.Pi / 2, "3pi/2"},
		{2 * math.Pi / 3, "2pi/3"},
		{7 * math.Pi / 4, "7pi/4"},
	}

	if math.Abs(val) < 1e-6 {
		return "0"
	}
	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-6 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-6 {
			return "-" + pf.display
		}
	}
	return fmt.Sprintf("%.3f", val)
}

func formatVec(x, y, z float64) string {
	return fmt.Sprintf("(%+.3f, %+.3f, %+.3f)", x, y, z)
}

// ──────────────────────────── Panels ────────────────────────────

// renderSpherePanel draws the sphere, the rotation path up to the current
// frame and the history trails.
func (m Model) renderSpherePanel(width, height int) string {
	var sb strings.Builder

	title := "Bloch sphere"
	if m.focus == focusSphere {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("  ")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("elev %.0f° azim %.0f°", m.camera.Elevation, m.camera.Azimuth)))
	sb.WriteString("\n")

	canvasW := max(width-4, 8)
	canvasH := max(height-4, 4)
	if m.sceneErr != nil {
		sb.WriteString(errorStyle.Render(m.sceneErr.Error()))
	} else {
		c := scene.NewCanvas(canvasW, canvasH, m.camera)
		c.Draw(m.scene, m.player.frame, sphereFront, sphereBack)
		sb.WriteString(c.String())
	}

	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.scene.FromColor)).Render("◆ from"))
	sb.WriteString("  ")
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.scene.ToColor)).Render("◆ to"))
	sb.WriteString("  ")
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.scene.AxisColor)).Render("╌ axis"))
	if len(m.scene.Trails) > 0 {
		sb.WriteString("  ")
		last := m.scene.Trails[len(m.scene.Trails)-1]
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(last.Color)).Render("∙ history"))
	}

	return spherePanelStyle.Width(width).Height(height).Render(sb.String())
}

// renderFieldsPanel shows the matrix as a 2×2 grid and the two amplitudes.
func (m Model) renderFieldsPanel(width int) string {
	var sb strings.Builder

	title := "Unitary matrix"
	if m.focus == focusFields {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	for r := 0; r < 2; r++ {
		sb.WriteString(m.renderField(r))
		sb.WriteString(" ")
		sb.WriteString(m.renderField(r + 2))
		sb.WriteString("\n")
	}

	sb.WriteString(titleStyle.Render("State"))
	sb.WriteString("\n")
	sb.WriteString(m.renderField(numMatrixFields))
	sb.WriteString(" ")
	sb.WriteString(m.renderField(numMatrixFields + 1))

	if m.focus == focusFields {
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("Tab Next  ⏎ Save  Esc Back"))
	}

	return fieldsPanelStyle.Width(width).Render(sb.String())
}

func (m Model) renderField(i int) string {
	label := fmt.Sprintf("%-4s", fieldLabels[i])
	if m.focus == focusFields && fieldOrder[m.fieldIdx] == i {
		label = activeStyle.Render(label)
	} else {
		label = labelStyle.Render(label)
	}
	return label + m.inputs[i].View()
}

// renderInfoPanel shows the rotation, both states, the history and the
// component chart.
func (m Model) renderInfoPanel(width, height int) string {
	var sb strings.Builder

	frame := m.sess.Frame()
	to := frame.Gate.Apply(frame.State)

	sb.WriteString(titleStyle.Render("Rotation"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("gate "), gateStyle.Render(frame.Gate.String()))
	ax := m.scene.Axis
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("axis "), formatVec(ax.X, ax.Y, ax.Z))
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("angle"), formatAngle(m.scene.Angle))

	fmt.Fprintf(&sb, "%s %s  θ=%s φ=%s\n", labelStyle.Render("from "),
		frame.State, formatAngle(frame.State.Theta()), formatAngle(frame.State.Phi()))
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("to   "), to)
	p0, p1 := to.Probabilities()
	fmt.Fprintf(&sb, "%s P(0)=%.3f P(1)=%.3f\n", labelStyle.Render("     "), p0, p1)

	sb.WriteString(titleStyle.Render(fmt.Sprintf("History %d/%d", len(frame.History), m.cfg.HistorySize)))
	sb.WriteString("\n")
	if len(frame.History) == 0 {
		sb.WriteString(dimStyle.Render("empty"))
		sb.WriteString("\n")
	}
	for i := len(frame.History) - 1; i >= 0; i-- {
		snap := frame.History[i]
		fmt.Fprintf(&sb, "%s %s · %s\n",
			dimStyle.Render(snap.ID.String()[:8]), gateStyle.Render(snap.Gate.String()), snap.State)
	}

	if chart := scene.Chart(m.scene.Path, m.player.frame+1, max(width-12, 10), chartH); chart != "" {
		sb.WriteString(chart)
	}

	return infoPanelStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help bar and status line.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(m.help.View(m.keys))
	sb.WriteString("\n")
	if m.statusMsg != "" {
		sb.WriteString(activeStyle.Render(m.statusMsg))
	}

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// position (x, y). Columns are counted in visible cells, so styled
// backgrounds keep their escape sequences.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	for i, ovLine := range strings.Split(overlay, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		line := bgLines[row]
		left := ansi.Truncate(line, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(ovLine), "")
		bgLines[row] = left + ovLine + right
	}
	return strings.Join(bgLines, "\n")
}
