// Package container recovers container identities for ports registered by
// the container runtime, whose process label lsof truncates.
package container

import (
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pranshuparmar/portls/internal/proc"
	"github.com/pranshuparmar/portls/pkg/model"
)

// FallbackName labels runtime-owned ports no container mapping accounts for.
const FallbackName = "runtime"

// runtimeLabels are the (possibly truncated) lsof labels of processes that
// bind host ports on behalf of containers.
var runtimeLabels = []string{
	"com.docke", // com.docker.backend, truncated to 9 chars by lsof
	"docker-pr", // docker-proxy
	"vpnkit",
}

// wellKnownPaths covers installs missing from a GUI-launched PATH.
var wellKnownPaths = []string{
	"/usr/local/bin/docker",
	"/opt/homebrew/bin/docker",
	"/Applications/Docker.app/Contents/Resources/bin/docker",
}

// IsRuntimeLabel reports whether a socket row belongs to the container runtime.
func IsRuntimeLabel(label string) bool {
	for _, prefix := range runtimeLabels {
		if strings.HasPrefix(label, prefix) {
			return true
		}
	}
	return false
}

// Docker lists running containers through the docker CLI.
type Docker struct {
	// Binary overrides auto-detection when set.
	Binary string
}

// Locate returns the docker binary path, or "" when the runtime is not installed.
func (d Docker) Locate() string {
	if d.Binary != "" {
		if isExecutable(d.Binary) {
			return d.Binary
		}
		return ""
	}
	if path, err := exec.LookPath("docker"); err == nil {
		return path
	}
	for _, path := range wellKnownPaths {
		if isExecutable(path) {
			return path
		}
	}
	return ""
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode()&0o111 != 0
}

// ListContainers returns running containers and their port mappings. It is a
// no-op when docker is not installed; a stalled or stopped daemon yields an
// empty list.
func (d Docker) ListContainers() []model.Container {
	bin := d.Locate()
	if bin == "" {
		return nil
	}

	out, err := proc.Run(bin, "ps", "--format", "{{.Names}}: {{.Ports}}")
	if err != nil {
		slog.Debug("docker ps failed", "err", err)
		return nil
	}
	return ParseContainers(string(out))
}

// ParseContainers parses "name: mappings" lines.
func ParseContainers(out string) []model.Container {
	var containers []model.Container
	for line := range strings.Lines(out) {
		line = strings.TrimSpace(line)
		name, ports, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(name) == "" {
			continue
		}
		containers = append(containers, model.Container{
			Name:  strings.TrimSpace(name),
			Ports: strings.TrimSpace(ports),
		})
	}
	return containers
}

// Correlate finds the first container whose mapping publishes port on the host.
func Correlate(containers []model.Container, port int) (string, bool) {
	p := strconv.Itoa(port)
	anyHost := "0.0.0.0:" + p + "->"
	host := ":" + p + "->"
	for _, c := range containers {
		if strings.Contains(c.Ports, host) || strings.Contains(c.Ports, anyHost) {
			return c.Name, true
		}
	}
	return "", false
}

// Key returns the synthetic accumulator key and label for a runtime-owned port.
func Key(containers []model.Container, port int) (key, name string) {
	name, ok := Correlate(containers, port)
	if !ok {
		name = FallbackName
	}
	return model.ContainerLabelPrefix + name, name
}
