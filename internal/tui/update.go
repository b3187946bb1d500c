package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pranshuparmar/portls/internal/proc"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if !m.paused && !m.refreshing {
			m.refreshing = true
			return m, tea.Batch(m.refreshCmd(), m.tickCmd())
		}
		return m, m.tickCmd()

	case entriesMsg:
		// a scan started before the last system toggle
		if msg.includeSystem != m.includeSystem {
			return m, nil
		}
		m.refreshing = false
		m.lastRefresh = time.Now()
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.entries = msg.entries
		m.applyFilter()
		return m, nil

	case killResultMsg:
		m.notice = killNotice(msg)
		if msg.err != nil && !errors.Is(msg.err, proc.ErrNoSuchProcess) {
			return m, nil
		}
		m.refreshing = true
		return m, m.refreshCmd()

	case actionMsg:
		if msg.err != nil {
			m.notice = "Error: " + msg.err.Error()
		} else {
			m.notice = msg.notice
		}
		return m, nil
	}

	return m, nil
}

func killNotice(msg killResultMsg) string {
	sig := "SIGTERM"
	if msg.force {
		sig = "SIGKILL"
	}
	switch {
	case msg.err == nil:
		return fmt.Sprintf("Sent %s to %s (PID %d)", sig, msg.label, msg.pid)
	case errors.Is(msg.err, proc.ErrNoSuchProcess):
		return fmt.Sprintf("PID %d already exited", msg.pid)
	case errors.Is(msg.err, proc.ErrPermissionDenied):
		return fmt.Sprintf("Permission denied killing PID %d; try again with sudo", msg.pid)
	default:
		return "Error: " + msg.err.Error()
	}
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterMode {
		return m.handleFilterInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursorIndex > 0 {
			m.cursorIndex--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursorIndex < len(m.filtered)-1 {
			m.cursorIndex++
		}
		return m, nil

	case key.Matches(msg, m.keys.Kill):
		return m.handleKill(false)

	case key.Matches(msg, m.keys.ForceKill):
		return m.handleKill(true)

	case key.Matches(msg, m.keys.Open):
		if e := m.currentEntry(); e != nil && len(e.Ports) > 0 {
			return m, m.openCmd(e.Ports[0])
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if e := m.currentEntry(); e != nil && len(e.Ports) > 0 {
			return m, m.copyCmd(e.URL())
		}
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filterMode = true
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.Sort):
		m.sortField = (m.sortField + 1) % sortFieldCount
		m.applyFilter()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSystem):
		// the system filter is applied by the scan itself
		m.includeSystem = !m.includeSystem
		m.refreshing = true
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.ToggleDev):
		m.devOnly = !m.devOnly
		m.applyFilter()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.notice = ""
		return m, nil
	}

	return m, nil
}

// handleFilterInput handles input in filter mode
func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.filterMode = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.filterMode = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// handleKill signals the entry under the cursor. Container entries share
// the runtime's PID, so killing one would take down every container.
func (m Model) handleKill(force bool) (tea.Model, tea.Cmd) {
	e := m.currentEntry()
	if e == nil {
		return m, nil
	}
	if e.IsContainer() {
		m.notice = fmt.Sprintf("%s is managed by docker; use docker stop %s", e.Label, e.Container)
		return m, nil
	}
	return m, m.killCmd(*e, force)
}
