package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/pranshuparmar/portls/internal/output"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// 68% table, the rest details
	tableWidth := int(float64(m.width) * 0.68)
	detailsWidth := m.width - tableWidth - 4
	panelHeight := max(m.height-6, 3)

	header := m.renderHeader()
	mainContent := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTablePanel(tableWidth, panelHeight),
		m.renderDetailsPanel(detailsWidth, panelHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, m.renderStatusBar(), m.help.View(m.keys))
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("portls")
	var flags []string
	if m.includeSystem {
		flags = append(flags, "system")
	}
	if m.devOnly {
		flags = append(flags, "dev only")
	}
	flags = append(flags, "sort:"+m.sortField.String())
	return title + " " + statusDescStyle.Render(strings.Join(flags, " · "))
}

// table column widths, excluding the label which takes the rest
const (
	colMarker = 2
	colPID    = 7
	colPorts  = 16
)

// renderTablePanel renders the process table
func (m Model) renderTablePanel(width, height int) string {
	inner := width - 4
	labelWidth := max(inner-colMarker-colPID-colPorts-3, 8)

	var sb strings.Builder
	sb.WriteString(strings.Join([]string{
		lipgloss.NewStyle().Width(colMarker).Render(""),
		tableHeaderStyle.Width(colPID).Render("PID"),
		tableHeaderStyle.Width(colPorts).Render("PORTS"),
		tableHeaderStyle.Width(labelWidth).Render("NAME"),
	}, " "))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(colorBorder).Render(strings.Repeat("─", max(inner, 0))))
	sb.WriteString("\n")

	rows := height - 2
	switch {
	case m.err != nil:
		sb.WriteString(errorStyle.Width(inner).Render("Error: " + m.err.Error()))
	case len(m.filtered) == 0:
		msg := "No listening processes"
		if m.refreshing && m.lastRefresh.IsZero() {
			msg = "Scanning..."
		}
		sb.WriteString(lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(inner).
			Align(lipgloss.Center).
			Render(msg))
	default:
		start, end := visibleRange(m.cursorIndex, len(m.filtered), rows)
		for i := start; i < end; i++ {
			sb.WriteString(m.renderTableRow(i, labelWidth))
			if i < end-1 {
				sb.WriteString("\n")
			}
		}
	}

	return panelStyle.Width(width).Height(height).Render(sb.String())
}

// visibleRange scrolls the window so the cursor stays in view.
func visibleRange(cursor, total, rows int) (int, int) {
	if rows <= 0 || total <= rows {
		return 0, total
	}
	start := max(cursor-rows+1, 0)
	return start, start + rows
}

// renderTableRow renders a single table row
func (m Model) renderTableRow(idx, labelWidth int) string {
	e := m.filtered[idx]
	isCursor := idx == m.cursorIndex

	marker := "  "
	if isCursor {
		marker = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("> ")
	}

	label := e.Label
	if e.Icon != "" {
		label = e.Icon + " " + label
	}
	label = truncate.StringWithTail(label, uint(labelWidth), "…")
	ports := truncate.StringWithTail(output.JoinPorts(e.Ports), colPorts, "…")

	labelCell := lipgloss.NewStyle().Width(labelWidth)
	portsCell := lipgloss.NewStyle().Width(colPorts)
	if !isCursor {
		portsCell = portsCell.Inherit(portStyle)
		if e.IsContainer() {
			labelCell = labelCell.Inherit(containerStyle)
		}
	}

	row := strings.Join([]string{
		marker,
		lipgloss.NewStyle().Width(colPID).Render(strconv.Itoa(e.PID)),
		portsCell.Render(ports),
		labelCell.Render(label),
	}, " ")

	if isCursor {
		row = tableSelectedStyle.Render(row)
	}
	return row
}

// renderStatusBar renders the filter prompt or refresh state and the last notice
func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.filterMode:
		status = m.filter.View()
	case m.paused:
		status = pausedStyle.Render("⏸ PAUSED")
	case m.refreshing:
		status = refreshingStyle.Render("↻ refreshing...")
	default:
		status = statusDescStyle.Render("updated " + formatTimeSince(m.lastRefresh, time.Now()))
	}
	if q := m.filter.Value(); q != "" && !m.filterMode {
		status += statusDescStyle.Render(fmt.Sprintf(" | filter: %s", q))
	}
	status += statusDescStyle.Render(fmt.Sprintf(" | %d/%d", len(m.filtered), len(m.entries)))

	if m.notice != "" {
		status += "  " + noticeStyle.Render(m.notice)
	}
	return statusBarStyle.Width(m.width).Render(status)
}

// formatTimeSince formats the age of the last refresh
func formatTimeSince(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := now.Sub(t)
	if d < time.Second {
		return "just now"
	}
	return fmt.Sprintf("%ds ago", int(d.Seconds()))
}
