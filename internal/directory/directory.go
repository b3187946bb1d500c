// Package directory composes socket listing, process resolution, container
// correlation and name enhancement into snapshots of listening processes.
package directory

import (
	"cmp"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/pranshuparmar/portls/internal/classify"
	"github.com/pranshuparmar/portls/internal/container"
	"github.com/pranshuparmar/portls/internal/proc"
	"github.com/pranshuparmar/portls/pkg/model"
)

type SocketLister interface {
	ListListeningSockets() ([]model.SocketRow, error)
}

// ProcessResolver performs batched per-PID lookups. Missing PIDs are
// simply absent from the returned maps.
type ProcessResolver interface {
	ResolveNames(pids []int) map[int]string
	ResolveCommandLines(pids []int) map[int]string
	ResolveWorkingDirs(pids []int) map[int]string
}

type ContainerLister interface {
	ListContainers() []model.Container
}

type Enhancer interface {
	Enhance(rawName, cmdline, workDir string) string
}

type IconResolver interface {
	Icon(label string) string
}

// Directory produces sorted snapshots of listening processes. Concurrent
// Scan calls share a single in-flight scan.
type Directory struct {
	sockets    SocketLister
	resolver   ProcessResolver
	containers ContainerLister
	enhancer   Enhancer
	icons      IconResolver

	group singleflight.Group
}

// New builds a Directory. containers and icons may be nil.
func New(sockets SocketLister, resolver ProcessResolver, containers ContainerLister, enhancer Enhancer, icons IconResolver) *Directory {
	return &Directory{
		sockets:    sockets,
		resolver:   resolver,
		containers: containers,
		enhancer:   enhancer,
		icons:      icons,
	}
}

// Scan lists every listening process, sorted by label. System processes are
// dropped unless includeSystem is set. The returned entries must not be
// modified; they may be shared with concurrent callers.
func (d *Directory) Scan(includeSystem bool) ([]model.ProcessEntry, error) {
	v, err, shared := d.group.Do("scan", func() (any, error) {
		return d.scan()
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("scan coalesced")
	}
	snapshot := v.([]model.ProcessEntry)
	if includeSystem {
		return slices.Clone(snapshot), nil
	}
	return FilterSystem(snapshot), nil
}

// lookups holds the batched per-PID results of one scan.
type lookups struct {
	names      map[int]string
	cmdlines   map[int]string
	dirs       map[int]string
	containers []model.Container
}

type accumulator struct {
	entry model.ProcessEntry
	ports map[int]struct{}
}

func (d *Directory) scan() ([]model.ProcessEntry, error) {
	start := time.Now()

	rows, err := d.sockets.ListListeningSockets()
	if err != nil {
		return nil, err
	}
	slog.Debug("sockets listed", "rows", len(rows), "elapsed", time.Since(start))

	pids, needContainers := distinctPIDs(rows)
	l := d.lookup(pids, needContainers)

	acc := make(map[string]*accumulator)
	for _, row := range rows {
		key, entry := d.route(row, l)
		a, ok := acc[key]
		if !ok {
			a = &accumulator{entry: entry, ports: make(map[int]struct{})}
			acc[key] = a
		}
		a.ports[row.Port] = struct{}{}
	}

	entries := make([]model.ProcessEntry, 0, len(acc))
	for _, a := range acc {
		entries = append(entries, d.materialize(a))
	}
	sortByLabel(entries)

	slog.Debug("scan complete", "rows", len(rows), "entries", len(entries), "elapsed", time.Since(start))
	return entries, nil
}

func distinctPIDs(rows []model.SocketRow) ([]int, bool) {
	seen := make(map[int]struct{})
	needContainers := false
	for _, row := range rows {
		seen[row.PID] = struct{}{}
		if container.IsRuntimeLabel(row.Label) {
			needContainers = true
		}
	}
	return slices.Sorted(maps.Keys(seen)), needContainers
}

// lookup runs the batched resolver queries and the container listing in
// parallel. Each is best-effort; failures surface as missing data.
func (d *Directory) lookup(pids []int, needContainers bool) lookups {
	start := time.Now()
	var l lookups
	var g errgroup.Group
	g.Go(func() error {
		l.names = d.resolver.ResolveNames(pids)
		return nil
	})
	g.Go(func() error {
		l.cmdlines = d.resolver.ResolveCommandLines(pids)
		return nil
	})
	g.Go(func() error {
		l.dirs = d.resolver.ResolveWorkingDirs(pids)
		return nil
	})
	if needContainers && d.containers != nil {
		g.Go(func() error {
			l.containers = d.containers.ListContainers()
			return nil
		})
	}
	_ = g.Wait()

	slog.Debug("processes resolved",
		"pids", len(pids),
		"names", len(l.names),
		"dirs", len(l.dirs),
		"containers", len(l.containers),
		"elapsed", time.Since(start))
	return l
}

// route returns the accumulator key for a row and the entry to create when
// the key is first seen.
func (d *Directory) route(row model.SocketRow, l lookups) (string, model.ProcessEntry) {
	if container.IsRuntimeLabel(row.Label) {
		key, name := container.Key(l.containers, row.Port)
		return key, model.ProcessEntry{
			PID:       row.PID,
			Label:     key,
			Command:   row.Label,
			Container: name,
		}
	}

	name := l.names[row.PID]
	if name == "" {
		name = row.Label
	}
	return strconv.Itoa(row.PID), model.ProcessEntry{
		PID:        row.PID,
		Label:      name,
		Command:    name,
		Cmdline:    l.cmdlines[row.PID],
		WorkingDir: l.dirs[row.PID],
	}
}

// materialize enhances the label once per entry and freezes the port set.
func (d *Directory) materialize(a *accumulator) model.ProcessEntry {
	e := a.entry
	e.Ports = slices.Sorted(maps.Keys(a.ports))
	if !e.IsContainer() {
		if d.enhancer != nil {
			e.Label = d.enhancer.Enhance(e.Command, e.Cmdline, e.WorkingDir)
		}
		e.WorkingDir = proc.ShortenPath(e.WorkingDir)
	}
	if d.icons != nil {
		e.Icon = d.icons.Icon(e.Label)
	}
	return e
}

func sortByLabel(entries []model.ProcessEntry) {
	slices.SortFunc(entries, func(a, b model.ProcessEntry) int {
		return cmp.Or(
			cmp.Compare(a.Label, b.Label),
			cmp.Compare(a.PID, b.PID),
		)
	})
}

// canonicalName is the command name before enhancement. Both classifiers
// judge it rather than the label, which may carry a project name.
func canonicalName(e model.ProcessEntry) string {
	if e.Command != "" {
		return e.Command
	}
	return e.Label
}

// FilterSystem returns the entries that are not OS daemons.
func FilterSystem(entries []model.ProcessEntry) []model.ProcessEntry {
	out := make([]model.ProcessEntry, 0, len(entries))
	for _, e := range entries {
		if !e.IsContainer() && classify.IsSystemProcess(canonicalName(e)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterDevOnly narrows an existing snapshot to development processes
// without rescanning.
func FilterDevOnly(entries []model.ProcessEntry) []model.ProcessEntry {
	out := make([]model.ProcessEntry, 0, len(entries))
	for _, e := range entries {
		if classify.IsDevProcess(canonicalName(e), e.Label, e.WorkingDir) {
			out = append(out, e)
		}
	}
	return out
}

// ByPort indexes a snapshot by port, ascending. Owners keep snapshot order.
func ByPort(entries []model.ProcessEntry) []model.PortBinding {
	index := make(map[int][]model.PortOwner)
	for _, e := range entries {
		for _, port := range e.Ports {
			index[port] = append(index[port], model.PortOwner{PID: e.PID, Label: e.Label})
		}
	}
	bindings := make([]model.PortBinding, 0, len(index))
	for _, port := range slices.Sorted(maps.Keys(index)) {
		bindings = append(bindings, model.PortBinding{Port: port, Owners: index[port]})
	}
	return bindings
}
