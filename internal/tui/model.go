package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pranshuparmar/portls/internal/browser"
	"github.com/pranshuparmar/portls/internal/directory"
	"github.com/pranshuparmar/portls/internal/proc"
	"github.com/pranshuparmar/portls/pkg/model"
)

// Scanner produces snapshots of listening processes.
type Scanner interface {
	Scan(includeSystem bool) ([]model.ProcessEntry, error)
}

// Options configures the dashboard. Zero-valued actions fall back to the
// host implementations.
type Options struct {
	Scanner       Scanner
	Interval      time.Duration
	IncludeSystem bool
	DevOnly       bool

	Terminate func(pid int, force bool) error
	Open      func(port int) error
	Copy      func(text string) error
}

type sortField int

const (
	sortLabel sortField = iota
	sortPID
	sortPort
	sortFieldCount
)

func (s sortField) String() string {
	switch s {
	case sortPID:
		return "pid"
	case sortPort:
		return "port"
	default:
		return "name"
	}
}

// Model is the watch-mode dashboard.
type Model struct {
	opts   Options
	keys   KeyMap
	help   help.Model
	filter textinput.Model

	entries     []model.ProcessEntry // latest snapshot, never modified
	filtered    []model.ProcessEntry
	cursorIndex int
	sortField   sortField

	filterMode    bool
	paused        bool
	refreshing    bool
	includeSystem bool
	devOnly       bool
	lastRefresh   time.Time

	notice string
	err    error

	width  int
	height int
}

// NewModel creates the dashboard model.
func NewModel(opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	if opts.Terminate == nil {
		opts.Terminate = proc.Terminate
	}
	if opts.Open == nil {
		opts.Open = browser.Open
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Placeholder = "name, pid or port"
	ti.CharLimit = 64
	ti.Prompt = "/"
	ti.PromptStyle = filterPromptStyle
	ti.TextStyle = filterInputStyle

	return Model{
		opts:          opts,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		filter:        ti,
		includeSystem: opts.IncludeSystem,
		devOnly:       opts.DevOnly,
		refreshing:    true,
	}
}

// Run starts the dashboard in the alternate screen.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}

// Init starts the first scan and the refresh ticker
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.tickCmd())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) refreshCmd() tea.Cmd {
	scanner, includeSystem := m.opts.Scanner, m.includeSystem
	return func() tea.Msg {
		entries, err := scanner.Scan(includeSystem)
		return entriesMsg{entries: entries, includeSystem: includeSystem, err: err}
	}
}

func (m Model) killCmd(e model.ProcessEntry, force bool) tea.Cmd {
	terminate := m.opts.Terminate
	return func() tea.Msg {
		return killResultMsg{pid: e.PID, label: e.Label, force: force, err: terminate(e.PID, force)}
	}
}

func (m Model) openCmd(port int) tea.Cmd {
	open := m.opts.Open
	return func() tea.Msg {
		if err := open(port); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{notice: "Opened " + model.LocalURL(port)}
	}
}

func (m Model) copyCmd(url string) tea.Cmd {
	copyText := m.opts.Copy
	return func() tea.Msg {
		if err := copyText(url); err != nil {
			return actionMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return actionMsg{notice: "Copied " + url}
	}
}

// currentEntry returns the entry under the cursor
func (m Model) currentEntry() *model.ProcessEntry {
	if m.cursorIndex < 0 || m.cursorIndex >= len(m.filtered) {
		return nil
	}
	return &m.filtered[m.cursorIndex]
}

// applyFilter rebuilds the visible rows from the snapshot, keeping the
// cursor on the same entry when it is still visible.
func (m *Model) applyFilter() {
	var selectedKey string
	if e := m.currentEntry(); e != nil {
		selectedKey = e.Key()
	}

	visible := m.entries
	if m.devOnly {
		visible = directory.FilterDevOnly(visible)
	}

	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.filtered = make([]model.ProcessEntry, 0, len(visible))
	for _, e := range visible {
		if query == "" || matches(e, query) {
			m.filtered = append(m.filtered, e)
		}
	}
	m.sortEntries()

	m.cursorIndex = 0
	for i, e := range m.filtered {
		if e.Key() == selectedKey {
			m.cursorIndex = i
			break
		}
	}
}

func matches(e model.ProcessEntry, query string) bool {
	if strings.Contains(strings.ToLower(e.Label), query) ||
		strings.Contains(strconv.Itoa(e.PID), query) ||
		strings.Contains(strings.ToLower(e.WorkingDir), query) {
		return true
	}
	for _, p := range e.Ports {
		if strings.Contains(strconv.Itoa(p), query) {
			return true
		}
	}
	return false
}

func (m *Model) sortEntries() {
	slices.SortStableFunc(m.filtered, func(a, b model.ProcessEntry) int {
		switch m.sortField {
		case sortPID:
			return cmp.Compare(a.PID, b.PID)
		case sortPort:
			return cmp.Compare(lowestPort(a), lowestPort(b))
		default:
			return cmp.Compare(a.Label, b.Label)
		}
	})
}

func lowestPort(e model.ProcessEntry) int {
	if len(e.Ports) == 0 {
		return 0
	}
	return e.Ports[0]
}
