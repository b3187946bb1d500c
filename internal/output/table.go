package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/muesli/reflow/truncate"

	"github.com/pranshuparmar/portls/pkg/model"
)

var (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
	colorPlain  = "\033[39m"
)

const (
	maxLabelWidth   = 32
	maxWorkDirWidth = 28
)

// TableRenderer prints entries as an aligned table.
type TableRenderer struct {
	out          io.Writer
	writer       *tabwriter.Writer
	colorEnabled bool
	rowCount     int
}

func NewTableRenderer(out io.Writer, colorEnabled bool) *TableRenderer {
	return &TableRenderer{
		out:          out,
		writer:       tabwriter.NewWriter(out, 0, 0, 2, ' ', 0),
		colorEnabled: colorEnabled,
	}
}

func (t *TableRenderer) PrintHeader() {
	t.header(" PID\tPORTS\tNAME\tWORKDIR", " ───\t─────\t────\t───────")
}

func (t *TableRenderer) header(columns, rule string) {
	if t.colorEnabled {
		fmt.Fprintf(t.writer, "%s%s%s\n", colorBlue, columns, colorReset)
	} else {
		fmt.Fprintln(t.writer, columns)
	}
	fmt.Fprintln(t.writer, rule)
}

func (t *TableRenderer) AddRow(e model.ProcessEntry) {
	label := truncate.StringWithTail(e.Label, maxLabelWidth, "…")
	if e.Icon != "" {
		label = e.Icon + " " + label
	}
	ports := JoinPorts(e.Ports)
	workDir := shortenTail(e.WorkingDir, maxWorkDirWidth)

	if t.colorEnabled {
		// every cell in a column carries escapes of the same length, which
		// tabwriter counts as width
		ports = colorCyan + ports + colorReset
		labelColor := colorPlain
		if e.IsContainer() {
			labelColor = colorYellow
		}
		label = labelColor + label + colorReset
		if workDir != "" {
			workDir = colorDim + workDir + colorReset
		}
	}
	fmt.Fprintf(t.writer, " %d\t%s\t%s\t%s\n", e.PID, ports, label, workDir)
	t.rowCount++
}

// Flush writes buffered rows; tabwriter needs every row to align columns.
func (t *TableRenderer) Flush() {
	t.writer.Flush()
}

func (t *TableRenderer) PrintFooter(elapsed time.Duration) {
	noun := "processes"
	if t.rowCount == 1 {
		noun = "process"
	}
	fmt.Fprintln(t.out)
	if t.colorEnabled {
		fmt.Fprintf(t.out, "%sFound %d listening %s%s", colorGreen, t.rowCount, noun, colorReset)
	} else {
		fmt.Fprintf(t.out, "Found %d listening %s", t.rowCount, noun)
	}
	fmt.Fprintf(t.out, " (%.1fs)\n", elapsed.Seconds())
}

// RenderTable prints a complete table of entries.
func RenderTable(out io.Writer, entries []model.ProcessEntry, colorEnabled bool, elapsed time.Duration) {
	t := NewTableRenderer(out, colorEnabled)
	t.PrintHeader()
	for _, e := range entries {
		t.AddRow(e)
	}
	t.Flush()
	t.PrintFooter(elapsed)
}

// RenderPorts prints one row per port with every process bound to it.
func RenderPorts(out io.Writer, bindings []model.PortBinding, colorEnabled bool) {
	t := NewTableRenderer(out, colorEnabled)
	t.header(" PORT\tPID\tNAME", " ────\t───\t────")
	for _, b := range bindings {
		port := strconv.Itoa(b.Port)
		if t.colorEnabled {
			port = colorCyan + port + colorReset
		}
		pids := make([]string, len(b.Owners))
		labels := make([]string, len(b.Owners))
		for i, o := range b.Owners {
			pids[i] = strconv.Itoa(o.PID)
			labels[i] = o.Label
		}
		fmt.Fprintf(t.writer, " %s\t%s\t%s\n", port, strings.Join(pids, ","), strings.Join(labels, ", "))
	}
	t.Flush()
}

// JoinPorts renders ports as "3000, 3001".
func JoinPorts(ports []int) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}

// shortenTail keeps the end of a path, which is the informative part.
func shortenTail(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return "…" + string(r[len(r)-width+1:])
}
