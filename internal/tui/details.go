package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/pranshuparmar/portls/internal/output"
)

// renderDetailsPanel renders the right-side details panel
func (m Model) renderDetailsPanel(width, height int) string {
	e := m.currentEntry()
	if e == nil {
		empty := lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(width-4).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Select a process")
		return panelStyle.Width(width).Height(height).Render(empty)
	}

	inner := max(width-4, 10)
	title := fmt.Sprintf("%s PID %d", e.Icon, e.PID)
	sections := []string{detailsTitleStyle.Render(strings.TrimSpace(title))}

	sections = append(sections, m.renderDetailSection("NAME", e.Label, inner))
	sections = append(sections, m.renderDetailSection("PORTS", output.JoinPorts(e.Ports), inner))
	sections = append(sections, m.renderDetailSection("URL", e.URL(), inner))

	if e.IsContainer() {
		sections = append(sections, m.renderDetailSection("CONTAINER", e.Container, inner))
		sections = append(sections, m.renderDetailSection("RUNTIME", e.Command, inner))
	} else {
		if e.Command != "" && e.Command != e.Label {
			sections = append(sections, m.renderDetailSection("COMMAND", e.Command, inner))
		}
		if e.Cmdline != "" {
			sections = append(sections, m.renderDetailSection("CMDLINE", e.Cmdline, inner))
		}
		workDir := e.WorkingDir
		if workDir == "" {
			workDir = "unknown"
		}
		sections = append(sections, m.renderDetailSection("WORKDIR", workDir, inner))
	}

	return panelStyle.
		Width(width).
		Height(height).
		Render(strings.Join(sections, "\n\n"))
}

// renderDetailSection renders a labeled section, wrapping long values
func (m Model) renderDetailSection(label, value string, width int) string {
	return detailsLabelStyle.Render(label) + "\n" + detailsValueStyle.Render(wrap.String(value, width))
}
