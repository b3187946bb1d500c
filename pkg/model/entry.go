package model

import "strconv"

// ContainerLabelPrefix marks entries keyed by container name instead of PID.
const ContainerLabelPrefix = "docker: "

// SocketRow is one parsed line of the listening-socket listing.
type SocketRow struct {
	Label string // process label as printed by lsof (may be truncated)
	PID   int
	Port  int
}

// Container is a running container and its raw port mapping text,
// e.g. "0.0.0.0:8080->80/tcp, :::8080->80/tcp".
type Container struct {
	Name  string `json:"name" yaml:"name"`
	Ports string `json:"ports" yaml:"ports"`
}

// ProcessEntry is one process (or container) with the TCP ports it listens on.
type ProcessEntry struct {
	PID        int    `json:"pid" yaml:"pid"`
	Label      string `json:"label" yaml:"label"`
	Command    string `json:"command,omitempty" yaml:"command,omitempty"` // canonical name before enhancement
	Cmdline    string `json:"cmdline,omitempty" yaml:"cmdline,omitempty"`
	Ports      []int  `json:"ports" yaml:"ports"` // sorted ascending, never empty
	WorkingDir string `json:"workdir,omitempty" yaml:"workdir,omitempty"` // ~-relativized
	Container  string `json:"container,omitempty" yaml:"container,omitempty"`
	Icon       string `json:"-" yaml:"-"`
}

// Key identifies an entry within one snapshot. Container entries share the
// runtime's PID, so they are keyed by their synthetic label.
func (e ProcessEntry) Key() string {
	if e.Container != "" {
		return e.Label
	}
	return strconv.Itoa(e.PID)
}

// IsContainer reports whether the entry was synthesized from a container mapping.
func (e ProcessEntry) IsContainer() bool {
	return e.Container != ""
}

// URL returns the localhost URL for the entry's lowest port.
func (e ProcessEntry) URL() string {
	if len(e.Ports) == 0 {
		return ""
	}
	return LocalURL(e.Ports[0])
}

// LocalURL builds the browser URL for a local port.
func LocalURL(port int) string {
	return "http://localhost:" + strconv.Itoa(port)
}

// PortOwner is one process bound to a port in the port-indexed view.
type PortOwner struct {
	PID   int    `json:"pid" yaml:"pid"`
	Label string `json:"label" yaml:"label"`
}

// PortBinding lists every entry listening on one port. Unrelated processes
// may share a port (e.g. IPv4 and IPv6 listeners on 5432).
type PortBinding struct {
	Port   int         `json:"port" yaml:"port"`
	Owners []PortOwner `json:"owners" yaml:"owners"`
}
